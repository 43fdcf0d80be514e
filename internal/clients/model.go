package clients

import "time"

// Client is a logo shown in the landing-page carousel. RowPosition picks
// the carousel row (1 = top, 2 = bottom).
type Client struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	LogoURL      string    `bson:"logo_url" json:"logo_url"`
	DisplayOrder int       `bson:"display_order" json:"display_order"`
	Active       bool      `bson:"active" json:"active"`
	RowPosition  int       `bson:"row_position" json:"row_position"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	Name         string `json:"name" validate:"required"`
	LogoURL      string `json:"logo_url" validate:"required,url"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,gte=0"`
	Active       *bool  `json:"active"`
	RowPosition  *int   `json:"row_position" validate:"omitempty,oneof=1 2"`
}

type ToggleRequest struct {
	Active bool `json:"active"`
}
