package models

import "time"

// Event is a scheduled church event (service, bible study, outreach...).
type Event struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Featured    bool       `json:"featured,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
}

// EventInput is the client-owned payload for create/update calls.
// ImageData/ImageName carry an optional base64-embedded image.
type EventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Featured    bool       `json:"featured,omitempty"`
	ImageData   string     `json:"image_data,omitempty"`
	ImageName   string     `json:"image_name,omitempty"`
}
