package domain

import "time"

// Document is a supporting file attached to a birth or death record.
// RecordID/RecordType are the gorm polymorphic keys shared by both kinds.
type Document struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	RecordID   string `gorm:"type:uuid;not null;index" json:"record_id"`
	RecordType string `gorm:"type:varchar(30);not null" json:"record_type"`

	Name    string `gorm:"not null" json:"name"`
	Type    string `gorm:"type:varchar(30);not null" json:"type"` // pdf | jpg | png ...
	FileURL string `gorm:"type:text" json:"file_url"`

	// optional metadata
	MimeType *string `gorm:"type:varchar(100)" json:"mime_type,omitempty"`
	FileSize *int64  `json:"file_size,omitempty"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
