package repositories

import (
	"fmt"

	"portfolio_backend/internal/models"

	"gorm.io/gorm"
)

// OrderedRecord is any collection model listed in models.DisplayOrder.
type OrderedRecord interface {
	models.Research | models.Publication | models.Project | models.Award | models.GalleryImage
}

// OrderedRepository reads one display-ordered collection.
type OrderedRepository[T OrderedRecord] interface {
	Count(db *gorm.DB) (int64, error)
	// FindWindow returns limit records starting at offset, in display order.
	FindWindow(db *gorm.DB, offset, limit int) ([]T, error)
}

type OrderedRepositoryImpl[T OrderedRecord] struct {
	// ✅ Пусто! db передаётся в каждый метод
}

func NewOrderedRepository[T OrderedRecord]() OrderedRepository[T] {
	return &OrderedRepositoryImpl[T]{}
}

func NewResearchRepository() OrderedRepository[models.Research] {
	return NewOrderedRepository[models.Research]()
}

func NewPublicationRepository() OrderedRepository[models.Publication] {
	return NewOrderedRepository[models.Publication]()
}

func NewProjectRepository() OrderedRepository[models.Project] {
	return NewOrderedRepository[models.Project]()
}

func NewAwardRepository() OrderedRepository[models.Award] {
	return NewOrderedRepository[models.Award]()
}

func NewGalleryRepository() OrderedRepository[models.GalleryImage] {
	return NewOrderedRepository[models.GalleryImage]()
}

func (r *OrderedRepositoryImpl[T]) Count(db *gorm.DB) (int64, error) {
	var count int64
	if err := db.Model(new(T)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %T: %w", *new(T), err)
	}
	return count, nil
}

func (r *OrderedRepositoryImpl[T]) FindWindow(db *gorm.DB, offset, limit int) ([]T, error) {
	items := make([]T, 0, max(limit, 0))
	if limit <= 0 {
		return items, nil
	}

	err := db.Order(models.DisplayOrder).
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list %T: %w", *new(T), err)
	}
	return items, nil
}
