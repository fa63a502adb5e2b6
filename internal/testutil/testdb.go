package testutil

import (
	"fmt"
	"testing"
	"time"

	"portfolio_backend/internal/database"
	"portfolio_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewTestDB открывает отдельную in-memory SQLite базу на каждый тест и
// создаёт в ней все таблицы.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.Options{Driver: "sqlite", DSN: dsn, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Не удалось открыть тестовую БД: %v", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Create inserts records and fails the test on error.
func Create(t *testing.T, db *gorm.DB, records ...interface{}) {
	t.Helper()
	for _, r := range records {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("Не удалось создать %T: %v", r, err)
		}
	}
}

// At returns a fixed UTC timestamp offset by minutes, for deterministic ordering.
func At(minutes int) time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
}

// Entry builds a research/publication/project row.
func Entry(title string, sortOrder uint, createdAt time.Time) models.LinkEntry {
	return models.LinkEntry{
		BaseModel:   models.BaseModel{CreatedAt: createdAt},
		Ordered:     models.Ordered{SortOrder: sortOrder},
		Title:       title,
		Description: title + " description",
		LinkURL:     "https://example.com/" + title,
	}
}
