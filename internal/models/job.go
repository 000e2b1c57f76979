package models

import "time"

// Job represents a posting on the alumni job board.
type Job struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	Type        string     `json:"type,omitempty"` // e.g. "Full-time", "Contract"
	Salary      string     `json:"salary,omitempty"`
	Description string     `json:"description,omitempty"`
	Posted      string     `json:"posted,omitempty"` // display string, e.g. "2 days ago"
	PostedBy    string     `json:"postedBy,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// JobPatch lists the job fields an update may touch.
type JobPatch struct {
	Title       *string   `json:"title"`
	Company     *string   `json:"company"`
	Location    *string   `json:"location"`
	Type        *string   `json:"type"`
	Salary      *string   `json:"salary"`
	Description *string   `json:"description"`
	Posted      *string   `json:"posted"`
	PostedBy    *string   `json:"postedBy"`
	Tags        *[]string `json:"tags"`
}

func (p JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Company != nil {
		j.Company = *p.Company
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Type != nil {
		j.Type = *p.Type
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Posted != nil {
		j.Posted = *p.Posted
	}
	if p.PostedBy != nil {
		j.PostedBy = *p.PostedBy
	}
	if p.Tags != nil {
		j.Tags = *p.Tags
	}
}
