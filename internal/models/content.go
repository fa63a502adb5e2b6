package models

// DefaultLinkText is shown when an entry has no link text of its own.
const DefaultLinkText = "Read more"

// LinkEntry is the shape shared by research items, publications and projects.
type LinkEntry struct {
	BaseModel
	Ordered
	Title       string `gorm:"size:500;not null"`
	Description string `gorm:"type:text"`
	LinkURL     string `gorm:"size:200"`
	LinkText    string `gorm:"size:200"`
}

type Research struct {
	LinkEntry
}

func (Research) TableName() string { return "research" }

type Publication struct {
	LinkEntry
}

func (Publication) TableName() string { return "publications" }

type Project struct {
	LinkEntry
}

func (Project) TableName() string { return "projects" }

type Award struct {
	BaseModel
	Ordered
	Title       string `gorm:"size:300;not null"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"size:255"` // storage key, empty when absent
}

func (Award) TableName() string { return "awards" }

type GalleryImage struct {
	BaseModel
	Ordered
	Title string `gorm:"size:200"`
	Image string `gorm:"size:255;not null"`
}

func (GalleryImage) TableName() string { return "gallery_images" }
