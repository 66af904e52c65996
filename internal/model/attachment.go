package model

import "time"

// Attachment is a file stored for an item. Immutable once appended.
type Attachment struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Path        string    `json:"path"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Attachment categories.
const (
	AttachmentCategoryPhoto = "photo"
)
