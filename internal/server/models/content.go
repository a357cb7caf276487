package models

import (
	"encoding/json"
	"time"
)

// PortfolioID is the single portfolio row.
const PortfolioID = 1

type Portfolio struct {
	ID        int64     `json:"portfolio_id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Section is a configurable page block. ContentData holds raw JSON.
type Section struct {
	ID          string          `json:"section_id"`
	SectionType string          `json:"section_type"`
	ContentData json.RawMessage `json:"content_data"`
	OrderIndex  int64           `json:"order_index"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DefaultImageType is used when an upload names no image type.
const DefaultImageType = "in_post"

// Image is the metadata row for an uploaded file.
type Image struct {
	ID         string `json:"image_id"`
	PostID     string `json:"post_id"`
	FileName   string `json:"file_name"`
	OriginName string `json:"origin_name"`
	FilePath   string `json:"file_path"`
	MimeType   string `json:"mime_type"`
	ImageType  string `json:"image_type"`
}

// Kiool is a short note with a free-form tag string.
type Kiool struct {
	ID          string `json:"kiool_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"published_at"`
	Tags        string `json:"tags"`
	Content     string `json:"content"`
	WriterID    string `json:"writer_id"`
	Status      string `json:"status"`
}
