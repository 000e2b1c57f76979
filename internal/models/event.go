package models

import "time"

// Event represents a calendar entry on the alumni events page.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Date        string     `json:"date"`
	Time        string     `json:"time,omitempty"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Attendees   int        `json:"attendees,omitempty"`
	Image       string     `json:"image,omitempty"`
	Status      string     `json:"status,omitempty"` // e.g. "upcoming", "past"
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// EventPatch lists the event fields an update may touch. The record id and
// timestamps are managed by the repository and cannot be patched.
type EventPatch struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Attendees   *int    `json:"attendees"`
	Image       *string `json:"image"`
	Status      *string `json:"status"`
}

func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Attendees != nil {
		e.Attendees = *p.Attendees
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
}
