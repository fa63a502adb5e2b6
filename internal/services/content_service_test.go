package services

import (
	"context"
	"fmt"
	"testing"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/pagination"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/storage"
	"portfolio_backend/internal/testutil"
	"portfolio_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://portfolio.test"

func newContentService(t *testing.T) ContentService {
	t.Helper()
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return NewContentService(
		repositories.NewResearchRepository(),
		repositories.NewPublicationRepository(),
		repositories.NewProjectRepository(),
		repositories.NewAwardRepository(),
		repositories.NewGalleryRepository(),
		repositories.NewProfileRepository(),
		repositories.NewStatsRepository(),
		store,
	)
}

func TestContentService_ListResearch_Pagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContentService(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		testutil.Create(t, db, &models.Research{
			LinkEntry: testutil.Entry(fmt.Sprintf("r%02d", i), uint(i), testutil.At(i)),
		})
	}

	page, err := svc.ListResearch(ctx, db, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Count)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.CurrentPage)
	require.Len(t, page.Results, 5)
	assert.Equal(t, "r20", page.Results[0].Title)
	assert.Equal(t, "Read more", page.Results[0].LinkText)

	// out of range pages are clamped, not rejected
	page, err = svc.ListResearch(ctx, db, 99, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Len(t, page.Results, 5)

	page, err = svc.ListResearch(ctx, db, -1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, "r00", page.Results[0].Title)
}

func TestContentService_EmptyCollection(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContentService(t)

	page, err := svc.ListPublications(context.Background(), db, 5, pagination.DefaultPerPage)
	require.NoError(t, err)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
	assert.Equal(t, int64(0), page.Count)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestContentService_ListProjects_LinkTextPassThrough(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContentService(t)

	entry := testutil.Entry("compiler", 0, testutil.At(0))
	entry.LinkText = "Source code"
	testutil.Create(t, db, &models.Project{LinkEntry: entry})

	page, err := svc.ListProjects(context.Background(), db, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Source code", page.Results[0].LinkText)
}

func TestContentService_ListGallery(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContentService(t)

	untitled := &models.GalleryImage{Image: "gallery/a.jpg"}
	titled := &models.GalleryImage{Title: "Sunset", Image: "gallery/b.jpg", Ordered: models.Ordered{SortOrder: 1}}
	testutil.Create(t, db, untitled, titled)

	page, err := svc.ListGallery(context.Background(), db, testBaseURL, 1, pagination.DefaultGalleryPerPage)
	require.NoError(t, err)
	require.Len(t, page.Results, 2)

	assert.Equal(t, fmt.Sprintf("Image %d", untitled.ID), page.Results[0].Title)
	require.NotNil(t, page.Results[0].Image)
	assert.Equal(t, testBaseURL+"/media/gallery/a.jpg", *page.Results[0].Image)
	assert.Equal(t, "Sunset", page.Results[1].Title)
}

func TestContentService_ListAwards_AbsentImageIsNull(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContentService(t)

	testutil.Create(t, db, &models.Award{Title: "Best Paper"})

	page, err := svc.ListAwards(context.Background(), db, testBaseURL, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Nil(t, page.Results[0].Image)
}

func TestContentService_GetProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContentService(t)
	ctx := context.Background()

	resp, err := svc.GetProfile(ctx, db, testBaseURL)
	require.NoError(t, err)
	assert.Equal(t, "", resp.AboutText)
	assert.Nil(t, resp.HeroImage)

	testutil.Create(t, db, &models.Profile{AboutText: "About me", HeroImage: "hero/me.jpg"})

	resp, err = svc.GetProfile(ctx, db, testBaseURL)
	require.NoError(t, err)
	assert.Equal(t, "About me", resp.AboutText)
	require.NotNil(t, resp.HeroImage)
	assert.Equal(t, testBaseURL+"/media/hero/me.jpg", *resp.HeroImage)
}

func TestContentService_GetActiveCV(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContentService(t)
	ctx := context.Background()

	resp, err := svc.GetActiveCV(ctx, db, testBaseURL)
	require.NoError(t, err)
	assert.Nil(t, resp.URL)
	assert.Nil(t, resp.Label)

	testutil.Create(t, db,
		&models.CVFile{File: "cv/2023.pdf", Label: "CV 2023", UploadedAt: testutil.At(0), IsActive: true},
		&models.CVFile{File: "cv/2024.pdf", UploadedAt: testutil.At(60), IsActive: true},
	)

	resp, err = svc.GetActiveCV(ctx, db, testBaseURL)
	require.NoError(t, err)
	require.NotNil(t, resp.URL)
	assert.Equal(t, testBaseURL+"/media/cv/2024.pdf", *resp.URL)
	require.NotNil(t, resp.Label)
	assert.Equal(t, "Download CV", *resp.Label)
}

func TestContentService_GetStats(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContentService(t)

	testutil.Create(t, db,
		&models.Research{LinkEntry: testutil.Entry("r", 0, testutil.At(0))},
		&models.GalleryImage{Image: "g.jpg"},
		&models.GalleryImage{Image: "h.jpg"},
	)

	stats, err := svc.GetStats(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ResearchCount)
	assert.Equal(t, int64(0), stats.PublicationsCount)
	assert.Equal(t, int64(2), stats.GalleryCount)
}

func TestContentService_StoreFailureIsInternal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContentService(t)
	require.NoError(t, db.Migrator().DropTable(&models.Award{}))

	_, err := svc.ListAwards(context.Background(), db, testBaseURL, 1, 10)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.HTTPCode)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)

	_, err = svc.GetStats(context.Background(), db)
	assert.Error(t, err)
}
