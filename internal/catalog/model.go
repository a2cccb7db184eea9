package catalog

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Gender      string    `json:"gender"`
	Category    string    `json:"category"`
	Season      string    `json:"season"`
	AgeGroup    string    `json:"ageGroup"`
	Brand       string    `json:"brand,omitempty"`
	Image       string    `json:"image,omitempty"`
	Sizes       []string  `json:"sizes"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter is a conjunction over optional product fields. Zero-valued
// fields impose no constraint.
type Filter struct {
	Categories []string
	Genders    []string
	Seasons    []string
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
}
