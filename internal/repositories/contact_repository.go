package repositories

import (
	"fmt"

	"portfolio_backend/internal/models"

	"gorm.io/gorm"
)

// ContactRepository has no update or delete: messages are immutable once stored.
type ContactRepository interface {
	Create(db *gorm.DB, msg *models.ContactMessage) error
	FindRecent(db *gorm.DB, limit int) ([]models.ContactMessage, error)
}

type ContactRepositoryImpl struct{}

func NewContactRepository() ContactRepository {
	return &ContactRepositoryImpl{}
}

func (r *ContactRepositoryImpl) Create(db *gorm.DB, msg *models.ContactMessage) error {
	if err := db.Create(msg).Error; err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

func (r *ContactRepositoryImpl) FindRecent(db *gorm.DB, limit int) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	q := db.Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return msgs, nil
}
