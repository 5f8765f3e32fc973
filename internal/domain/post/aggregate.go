package post

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tranphihao2k3/LapLap-sub001/internal/infrastructure/store"
)

const AggregateType = "Post"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidTitle = errors.New("title is required")
	ErrInvalidSlug  = errors.New("invalid slug format")
)

// slugRegex validates slug format (lowercase letters, numbers, hyphens)
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Post is a blog article on the storefront
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service handles blog post domain operations
type Service struct {
	eventStore store.EventStoreInterface
}

func NewService(es store.EventStoreInterface) *Service {
	return &Service{eventStore: es}
}

// Create creates a new draft post
func (s *Service) Create(ctx context.Context, title, slug, excerpt, content, coverURL string) (*Post, error) {
	if title == "" {
		return nil, ErrInvalidTitle
	}

	// Generate slug from title if not provided
	if slug == "" {
		slug = generateSlug(title)
	}

	if !slugRegex.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	postID := uuid.New().String()
	now := time.Now()

	event := PostCreated{
		PostID:    postID,
		Title:     title,
		Slug:      slug,
		Excerpt:   excerpt,
		Content:   content,
		CoverURL:  coverURL,
		CreatedAt: now,
	}

	_, err := s.eventStore.Append(ctx, postID, AggregateType, EventPostCreated, event)
	if err != nil {
		return nil, err
	}

	return &Post{
		ID:        postID,
		Title:     title,
		Slug:      slug,
		Excerpt:   excerpt,
		Content:   content,
		CoverURL:  coverURL,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update updates an existing post
func (s *Service) Update(ctx context.Context, postID, title, excerpt, content, coverURL string) error {
	if title == "" {
		return ErrInvalidTitle
	}

	if err := s.exists(postID); err != nil {
		return err
	}

	event := PostUpdated{
		PostID:    postID,
		Title:     title,
		Excerpt:   excerpt,
		Content:   content,
		CoverURL:  coverURL,
		UpdatedAt: time.Now(),
	}

	_, err := s.eventStore.Append(ctx, postID, AggregateType, EventPostUpdated, event)
	return err
}

// Publish makes a draft post visible on the storefront
func (s *Service) Publish(ctx context.Context, postID string) error {
	if err := s.exists(postID); err != nil {
		return err
	}

	event := PostPublished{
		PostID:      postID,
		PublishedAt: time.Now(),
	}

	_, err := s.eventStore.Append(ctx, postID, AggregateType, EventPostPublished, event)
	return err
}

// Delete removes a post
func (s *Service) Delete(ctx context.Context, postID string) error {
	if err := s.exists(postID); err != nil {
		return err
	}

	event := PostDeleted{
		PostID:    postID,
		DeletedAt: time.Now(),
	}

	_, err := s.eventStore.Append(ctx, postID, AggregateType, EventPostDeleted, event)
	return err
}

func (s *Service) exists(postID string) error {
	if len(s.eventStore.GetEvents(postID)) == 0 {
		return ErrPostNotFound
	}
	return nil
}

// generateSlug derives a URL slug from the title
func generateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
