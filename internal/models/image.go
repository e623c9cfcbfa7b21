package models

import "time"

const (
	DefaultCategory = "general"
	VariantMimeType = "image/webp"
)

type Image struct {
	ID           string    `json:"id" db:"id"`
	Filename     string    `json:"filename" db:"filename"`
	OriginalName string    `json:"originalName" db:"original_name"`
	URL          string    `json:"url" db:"url"`
	OriginalURL  string    `json:"originalUrl" db:"original_url"`
	ThumbnailURL string    `json:"thumbnailUrl" db:"thumbnail_url"`
	Size         int64     `json:"size" db:"size"`
	Width        int       `json:"width" db:"width"`
	Height       int       `json:"height" db:"height"`
	MimeType     string    `json:"mimeType" db:"mime_type"`
	Category     string    `json:"category" db:"category"`
	AltText      *string   `json:"altText" db:"alt_text"`
	UploadedAt   time.Time `json:"uploadedAt" db:"uploaded_at"`
}

type ImagePage struct {
	Data        []*Image `json:"data"`
	TotalPages  int      `json:"totalPages"`
	CurrentPage int      `json:"currentPage"`
	TotalImages int      `json:"totalImages"`
}
