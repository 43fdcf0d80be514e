package services

import "time"

// Service is a card in the landing-page services carousel. BackImage and
// FrontImage are both required; the card cannot render without them.
type Service struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Title            string    `bson:"title" json:"title"`
	ShortDescription string    `bson:"short_description" json:"short_description"`
	LongDescription  string    `bson:"long_description" json:"long_description"`
	BackImage        string    `bson:"back_image" json:"back_image"`
	FrontImage       string    `bson:"front_image" json:"front_image"`
	IconImage        string    `bson:"icon_image,omitempty" json:"icon_image,omitempty"`
	DisplayOrder     int       `bson:"display_order" json:"display_order"`
	Active           bool      `bson:"active" json:"active"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	Title            string `json:"title" validate:"required"`
	ShortDescription string `json:"short_description" validate:"required,max=50"`
	LongDescription  string `json:"long_description" validate:"required"`
	BackImage        string `json:"back_image" validate:"required,url"`
	FrontImage       string `json:"front_image" validate:"required,url"`
	IconImage        string `json:"icon_image" validate:"omitempty,url"`
	DisplayOrder     *int   `json:"display_order" validate:"omitempty,gte=1"`
	Active           *bool  `json:"active"`
}

type ToggleRequest struct {
	Active bool `json:"active"`
}
