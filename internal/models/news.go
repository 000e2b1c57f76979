package models

import "time"

// NewsArticle represents an entry in the alumni news feed.
type NewsArticle struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Excerpt   string     `json:"excerpt,omitempty"`
	Date      string     `json:"date,omitempty"` // display date, e.g. "October 20, 2025"
	Content   string     `json:"content,omitempty"`
	Author    string     `json:"author,omitempty"`
	Category  string     `json:"category,omitempty"`
	Image     string     `json:"image,omitempty"`
	ReadTime  string     `json:"readTime,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewsPatch lists the article fields an update may touch.
type NewsPatch struct {
	Title    *string `json:"title"`
	Excerpt  *string `json:"excerpt"`
	Date     *string `json:"date"`
	Content  *string `json:"content"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
	Image    *string `json:"image"`
	ReadTime *string `json:"readTime"`
}

func (p NewsPatch) Apply(a *NewsArticle) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Excerpt != nil {
		a.Excerpt = *p.Excerpt
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Author != nil {
		a.Author = *p.Author
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Image != nil {
		a.Image = *p.Image
	}
	if p.ReadTime != nil {
		a.ReadTime = *p.ReadTime
	}
}
