package model

import "time"

// Category groups cars for browsing.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryFilter narrows category listing queries.
type CategoryFilter struct {
	Name   string
	Search string
	Page   int
	Limit  int
	Sort   string
}
