package repositories

import (
	"errors"
	"fmt"

	"portfolio_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoActiveCV      = errors.New("no active cv")
)

type ProfileRepository interface {
	// FindFirst returns the profile with the lowest id.
	FindFirst(db *gorm.DB) (*models.Profile, error)
	// FindActiveCV returns the most recently uploaded active CV.
	FindActiveCV(db *gorm.DB) (*models.CVFile, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) FindFirst(db *gorm.DB) (*models.Profile, error) {
	var profile models.Profile
	err := db.Order("id ASC").Limit(1).Take(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindActiveCV(db *gorm.DB) (*models.CVFile, error) {
	var cv models.CVFile
	err := db.Where("is_active = ?", true).
		Order("uploaded_at DESC, id DESC").
		Limit(1).
		Take(&cv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveCV
		}
		return nil, fmt.Errorf("find active cv: %w", err)
	}
	return &cv, nil
}
