package models

import "time"

// Profile holds the about text and hero image. Only the first row is read.
type Profile struct {
	ID        uint   `gorm:"primaryKey"`
	HeroImage string `gorm:"size:255"`
	AboutText string `gorm:"type:text"`
}

func (Profile) TableName() string { return "profiles" }

// DefaultCVLabel is used when an active CV has a blank label.
const DefaultCVLabel = "Download CV"

// CVFile is a downloadable CV. Several rows may exist; the active one is the
// most recently uploaded row with IsActive set.
type CVFile struct {
	ID         uint      `gorm:"primaryKey"`
	File       string    `gorm:"size:255;not null"`
	Label      string    `gorm:"size:100"`
	UploadedAt time.Time `gorm:"autoCreateTime;not null;index"`
	IsActive   bool      `gorm:"not null;index"`
}

func (CVFile) TableName() string { return "cv_files" }
