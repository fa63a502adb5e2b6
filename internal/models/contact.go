package models

// ContactMessage is written once by the public contact endpoint and never updated.
type ContactMessage struct {
	BaseModel
	Name    string `gorm:"size:200;not null"`
	Email   string `gorm:"size:254;not null"`
	Subject string `gorm:"size:300"`
	Message string `gorm:"type:text;not null"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
