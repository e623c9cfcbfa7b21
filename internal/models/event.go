package models

import "time"

type Event struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Location    string     `json:"location" db:"location"`
	StartsAt    time.Time  `json:"startsAt" db:"starts_at"`
	EndsAt      *time.Time `json:"endsAt" db:"ends_at"`
	ImageURL    *string    `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
