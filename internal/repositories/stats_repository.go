package repositories

import (
	"fmt"

	"portfolio_backend/internal/models"

	"gorm.io/gorm"
)

// ContentCounts is the number of stored records per collection.
type ContentCounts struct {
	Research     int64
	Publications int64
	Projects     int64
	Awards       int64
	Gallery      int64
}

type StatsRepository interface {
	CountContent(db *gorm.DB) (*ContentCounts, error)
}

type StatsRepositoryImpl struct{}

func NewStatsRepository() StatsRepository {
	return &StatsRepositoryImpl{}
}

func (r *StatsRepositoryImpl) CountContent(db *gorm.DB) (*ContentCounts, error) {
	var counts ContentCounts
	targets := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.Research{}, &counts.Research},
		{&models.Publication{}, &counts.Publications},
		{&models.Project{}, &counts.Projects},
		{&models.Award{}, &counts.Awards},
		{&models.GalleryImage{}, &counts.Gallery},
	}

	for _, t := range targets {
		if err := db.Model(t.model).Count(t.dst).Error; err != nil {
			return nil, fmt.Errorf("count %T: %w", t.model, err)
		}
	}
	return &counts, nil
}
