package models

import "time"

// BaseModel is the identity and creation stamp shared by every record.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

// Ordered records are listed by SortOrder ascending, newest first within a tie.
// SortOrder values need not be unique or contiguous.
type Ordered struct {
	SortOrder uint `gorm:"column:sort_order;not null;default:0;index"`
}

// DisplayOrder is the ORDER BY clause for every Ordered collection. The id
// tie-break keeps pages stable when created_at values collide.
const DisplayOrder = "sort_order ASC, created_at DESC, id DESC"

// AllModels lists every persisted type, in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&Profile{},
		&Research{},
		&Publication{},
		&Project{},
		&Award{},
		&GalleryImage{},
		&CVFile{},
		&ContactMessage{},
	}
}
