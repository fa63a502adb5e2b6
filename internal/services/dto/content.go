package dto

import (
	"context"
	"fmt"
	"strings"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/pagination"
	"portfolio_backend/internal/repositories"
)

// Page is the collection envelope. Results is never null.
type Page[T any] struct {
	Results     []T   `json:"results"`
	Count       int64 `json:"count"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
}

func NewPage[T any](items []T, w pagination.Window) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Results:     items,
		Count:       w.Count,
		TotalPages:  w.TotalPages,
		CurrentPage: w.CurrentPage,
	}
}

// MapList applies fn to every record, keeping order.
func MapList[M, R any](ctx context.Context, items []M, fn func(context.Context, M) (R, error)) ([]R, error) {
	out := make([]R, 0, len(items))
	for _, it := range items {
		r, err := fn(ctx, it)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

type ProfileResponse struct {
	AboutText string  `json:"about_text"`
	HeroImage *string `json:"hero_image"`
}

// NewProfileResponse maps a missing profile to empty text and no image.
func NewProfileResponse(ctx context.Context, p *models.Profile, assets *AssetResolver) (ProfileResponse, error) {
	if p == nil {
		return ProfileResponse{}, nil
	}
	hero, err := assets.URL(ctx, p.HeroImage)
	if err != nil {
		return ProfileResponse{}, err
	}
	return ProfileResponse{AboutText: p.AboutText, HeroImage: hero}, nil
}

// LinkEntryResponse is the shape of research items, publications and projects.
type LinkEntryResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LinkURL     string `json:"link_url"`
	LinkText    string `json:"link_text"`
}

func NewLinkEntryResponse(e models.LinkEntry) LinkEntryResponse {
	return LinkEntryResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		LinkURL:     e.LinkURL,
		LinkText:    orDefault(e.LinkText, models.DefaultLinkText),
	}
}

func NewResearchResponse(_ context.Context, r models.Research) (LinkEntryResponse, error) {
	return NewLinkEntryResponse(r.LinkEntry), nil
}

func NewPublicationResponse(_ context.Context, p models.Publication) (LinkEntryResponse, error) {
	return NewLinkEntryResponse(p.LinkEntry), nil
}

func NewProjectResponse(_ context.Context, p models.Project) (LinkEntryResponse, error) {
	return NewLinkEntryResponse(p.LinkEntry), nil
}

type AwardResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

// AwardMapper returns the award mapping bound to assets.
func AwardMapper(assets *AssetResolver) func(context.Context, models.Award) (AwardResponse, error) {
	return func(ctx context.Context, a models.Award) (AwardResponse, error) {
		img, err := assets.URL(ctx, a.Image)
		if err != nil {
			return AwardResponse{}, err
		}
		return AwardResponse{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Image:       img,
		}, nil
	}
}

type GalleryImageResponse struct {
	ID    uint    `json:"id"`
	Title string  `json:"title"`
	Image *string `json:"image"`
}

// GalleryMapper returns the gallery mapping bound to assets. Untitled images
// are called "Image {id}".
func GalleryMapper(assets *AssetResolver) func(context.Context, models.GalleryImage) (GalleryImageResponse, error) {
	return func(ctx context.Context, g models.GalleryImage) (GalleryImageResponse, error) {
		img, err := assets.URL(ctx, g.Image)
		if err != nil {
			return GalleryImageResponse{}, err
		}
		return GalleryImageResponse{
			ID:    g.ID,
			Title: orDefault(g.Title, fmt.Sprintf("Image %d", g.ID)),
			Image: img,
		}, nil
	}
}

type CVResponse struct {
	URL   *string `json:"url"`
	Label *string `json:"label"`
}

// NewCVResponse maps a missing CV, or one without a usable file, to
// {url: null, label: null}.
func NewCVResponse(ctx context.Context, cv *models.CVFile, assets *AssetResolver) (CVResponse, error) {
	if cv == nil {
		return CVResponse{}, nil
	}
	u, err := assets.URL(ctx, cv.File)
	if err != nil {
		return CVResponse{}, err
	}
	if u == nil {
		return CVResponse{}, nil
	}
	label := orDefault(cv.Label, models.DefaultCVLabel)
	return CVResponse{URL: u, Label: &label}, nil
}

type StatsResponse struct {
	ResearchCount     int64 `json:"research_count"`
	PublicationsCount int64 `json:"publications_count"`
	ProjectsCount     int64 `json:"projects_count"`
	AwardsCount       int64 `json:"awards_count"`
	GalleryCount      int64 `json:"gallery_count"`
}

func NewStatsResponse(c *repositories.ContentCounts) StatsResponse {
	return StatsResponse{
		ResearchCount:     c.Research,
		PublicationsCount: c.Publications,
		ProjectsCount:     c.Projects,
		AwardsCount:       c.Awards,
		GalleryCount:      c.Gallery,
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
