package projects

import "time"

// DefaultHighlightColor is the accent used by project cards when the
// admin picks none.
const DefaultHighlightColor = "#3b82f6"

// MaxGalleryImages caps the per-project gallery.
const MaxGalleryImages = 5

// Project is a portfolio entry. Archived projects stay in the store and
// the admin list but disappear from the public site.
type Project struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Title          string    `bson:"title" json:"title"`
	Description    string    `bson:"description" json:"description"`
	Category       string    `bson:"category" json:"category"`
	Results        string    `bson:"results" json:"results"`
	Archived       bool      `bson:"archived" json:"archived"`
	CoverImage     string    `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	GalleryImages  []string  `bson:"gallery_images" json:"gallery_images"`
	ProjectURL     string    `bson:"project_url,omitempty" json:"project_url,omitempty"`
	Tags           []string  `bson:"tags" json:"tags"`
	ClientName     string    `bson:"client_name,omitempty" json:"client_name,omitempty"`
	CompletionDate string    `bson:"completion_date,omitempty" json:"completion_date,omitempty"`
	HighlightColor string    `bson:"highlight_color" json:"highlight_color"`
	DisplayOrder   int       `bson:"display_order" json:"display_order"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Category       string   `json:"category" validate:"required"`
	Results        string   `json:"results" validate:"required"`
	CoverImage     string   `json:"cover_image" validate:"omitempty,url"`
	GalleryImages  []string `json:"gallery_images" validate:"omitempty,max=5,dive,url"`
	ProjectURL     string   `json:"project_url" validate:"omitempty,url"`
	Tags           []string `json:"tags"`
	ClientName     string   `json:"client_name"`
	CompletionDate string   `json:"completion_date" validate:"omitempty,date"`
	HighlightColor string   `json:"highlight_color" validate:"omitempty,hexcolor"`
	DisplayOrder   *int     `json:"display_order" validate:"omitempty,gte=0"`
}

type ArchiveRequest struct {
	Archived bool `json:"archived"`
}
