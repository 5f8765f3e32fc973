package post

import "time"

const (
	EventPostCreated   = "PostCreated"
	EventPostUpdated   = "PostUpdated"
	EventPostPublished = "PostPublished"
	EventPostDeleted   = "PostDeleted"
)

type PostCreated struct {
	PostID    string    `json:"post_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PostUpdated struct {
	PostID    string    `json:"post_id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	CoverURL  string    `json:"cover_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostPublished struct {
	PostID      string    `json:"post_id"`
	PublishedAt time.Time `json:"published_at"`
}

type PostDeleted struct {
	PostID    string    `json:"post_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
