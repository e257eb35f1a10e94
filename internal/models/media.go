package models

// MediaType represents valid media categories for uploaded files
type MediaType string

const (
	MediaTypeStepImage MediaType = "step_image"
	MediaTypeStepAudio MediaType = "step_audio"
)

// Metadata represents file metadata in the database
type Metadata struct {
	ID          string    `json:"id" db:"id"`
	ContentType string    `json:"contentType" db:"content_type"`
	Size        int64     `json:"size" db:"size"`
	URL         string    `json:"url" db:"url"`
	Type        MediaType `json:"type" db:"type"`
}
