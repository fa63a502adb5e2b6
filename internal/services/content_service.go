package services

import (
	"context"
	"errors"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/pagination"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ContentService serves the read-only portfolio content. baseURL is the
// scheme://host the client used; it makes asset URLs absolute.
type ContentService interface {
	GetProfile(ctx context.Context, db *gorm.DB, baseURL string) (*dto.ProfileResponse, error)
	ListResearch(ctx context.Context, db *gorm.DB, page, perPage int) (*dto.Page[dto.LinkEntryResponse], error)
	ListPublications(ctx context.Context, db *gorm.DB, page, perPage int) (*dto.Page[dto.LinkEntryResponse], error)
	ListProjects(ctx context.Context, db *gorm.DB, page, perPage int) (*dto.Page[dto.LinkEntryResponse], error)
	ListAwards(ctx context.Context, db *gorm.DB, baseURL string, page, perPage int) (*dto.Page[dto.AwardResponse], error)
	ListGallery(ctx context.Context, db *gorm.DB, baseURL string, page, perPage int) (*dto.Page[dto.GalleryImageResponse], error)
	GetActiveCV(ctx context.Context, db *gorm.DB, baseURL string) (*dto.CVResponse, error)
	GetStats(ctx context.Context, db *gorm.DB) (*dto.StatsResponse, error)
}

type contentService struct {
	researchRepo    repositories.OrderedRepository[models.Research]
	publicationRepo repositories.OrderedRepository[models.Publication]
	projectRepo     repositories.OrderedRepository[models.Project]
	awardRepo       repositories.OrderedRepository[models.Award]
	galleryRepo     repositories.OrderedRepository[models.GalleryImage]
	profileRepo     repositories.ProfileRepository
	statsRepo       repositories.StatsRepository
	storage         storage.Storage
}

func NewContentService(
	researchRepo repositories.OrderedRepository[models.Research],
	publicationRepo repositories.OrderedRepository[models.Publication],
	projectRepo repositories.OrderedRepository[models.Project],
	awardRepo repositories.OrderedRepository[models.Award],
	galleryRepo repositories.OrderedRepository[models.GalleryImage],
	profileRepo repositories.ProfileRepository,
	statsRepo repositories.StatsRepository,
	store storage.Storage,
) ContentService {
	return &contentService{
		researchRepo:    researchRepo,
		publicationRepo: publicationRepo,
		projectRepo:     projectRepo,
		awardRepo:       awardRepo,
		galleryRepo:     galleryRepo,
		profileRepo:     profileRepo,
		statsRepo:       statsRepo,
		storage:         store,
	}
}

func (s *contentService) GetProfile(ctx context.Context, db *gorm.DB, baseURL string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindFirst(db.WithContext(ctx))
	if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, apperrors.DatabaseError(err)
	}

	resp, err := dto.NewProfileResponse(ctx, profile, s.assets(baseURL))
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return &resp, nil
}

func (s *contentService) ListResearch(ctx context.Context, db *gorm.DB, page, perPage int) (*dto.Page[dto.LinkEntryResponse], error) {
	return listPage(ctx, db, s.researchRepo, page, perPage, dto.NewResearchResponse)
}

func (s *contentService) ListPublications(ctx context.Context, db *gorm.DB, page, perPage int) (*dto.Page[dto.LinkEntryResponse], error) {
	return listPage(ctx, db, s.publicationRepo, page, perPage, dto.NewPublicationResponse)
}

func (s *contentService) ListProjects(ctx context.Context, db *gorm.DB, page, perPage int) (*dto.Page[dto.LinkEntryResponse], error) {
	return listPage(ctx, db, s.projectRepo, page, perPage, dto.NewProjectResponse)
}

func (s *contentService) ListAwards(ctx context.Context, db *gorm.DB, baseURL string, page, perPage int) (*dto.Page[dto.AwardResponse], error) {
	return listPage(ctx, db, s.awardRepo, page, perPage, dto.AwardMapper(s.assets(baseURL)))
}

func (s *contentService) ListGallery(ctx context.Context, db *gorm.DB, baseURL string, page, perPage int) (*dto.Page[dto.GalleryImageResponse], error) {
	return listPage(ctx, db, s.galleryRepo, page, perPage, dto.GalleryMapper(s.assets(baseURL)))
}

func (s *contentService) GetActiveCV(ctx context.Context, db *gorm.DB, baseURL string) (*dto.CVResponse, error) {
	cv, err := s.cv(ctx, db)
	if err != nil {
		return nil, err
	}

	resp, err := dto.NewCVResponse(ctx, cv, s.assets(baseURL))
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return &resp, nil
}

func (s *contentService) GetStats(ctx context.Context, db *gorm.DB) (*dto.StatsResponse, error) {
	counts, err := s.statsRepo.CountContent(db.WithContext(ctx))
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	resp := dto.NewStatsResponse(counts)
	return &resp, nil
}

func (s *contentService) cv(ctx context.Context, db *gorm.DB) (*models.CVFile, error) {
	cv, err := s.profileRepo.FindActiveCV(db.WithContext(ctx))
	if errors.Is(err, repositories.ErrNoActiveCV) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return cv, nil
}

func (s *contentService) assets(baseURL string) *dto.AssetResolver {
	return dto.NewAssetResolver(s.storage, baseURL)
}

// listPage counts, resolves the window against that count, then fetches
// only the window. A concurrent insert can change count but never push
// current_page out of range.
func listPage[M repositories.OrderedRecord, R any](
	ctx context.Context,
	db *gorm.DB,
	repo repositories.OrderedRepository[M],
	page, perPage int,
	mapFn func(context.Context, M) (R, error),
) (*dto.Page[R], error) {
	db = db.WithContext(ctx)

	count, err := repo.Count(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	w := pagination.NewWindow(count, page, perPage)

	items, err := repo.FindWindow(db, w.Offset, w.Limit)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	results, err := dto.MapList(ctx, items, mapFn)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	logger.CtxDebug(ctx, "Collection page served",
		"count", w.Count, "page", w.CurrentPage, "per_page", w.PerPage, "requested_page", page)

	p := dto.NewPage(results, w)
	return &p, nil
}
