package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-server/internal/models"
	"github.com/alumnihub/portal-server/internal/store"
)

// Kind identifies a content record family and doubles as its key prefix.
type Kind string

const (
	KindEvent Kind = "event"
	KindJob   Kind = "job"
	KindNews  Kind = "news"
)

var (
	// ErrNotFound is returned when no record exists for a kind and id.
	ErrNotFound = errors.New("record not found")
	// ErrUnknownKind is returned for content types outside event/job/news.
	ErrUnknownKind = errors.New("unknown content type")
)

// ParseKind maps a plural route segment ("events") to its record kind.
func ParseKind(plural string) (Kind, error) {
	switch plural {
	case "events":
		return KindEvent, nil
	case "jobs":
		return KindJob, nil
	case "news":
		return KindNews, nil
	}
	return "", ErrUnknownKind
}

func (k Kind) key(id string) string {
	return string(k) + ":" + id
}

func (k Kind) prefix() string {
	return string(k) + ":"
}

// AdminData bundles everything the moderation dashboard shows.
type AdminData struct {
	Events []models.Event       `json:"events"`
	Jobs   []models.Job         `json:"jobs"`
	News   []models.NewsArticle `json:"news"`
	Users  []models.User        `json:"users"`
}

// ContentServiceProvider defines the interface for content repository
// services.
type ContentServiceProvider interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, in models.Event) (models.Event, error)
	UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (models.Event, error)

	ListJobs(ctx context.Context) ([]models.Job, error)
	CreateJob(ctx context.Context, in models.Job) (models.Job, error)
	UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.Job, error)

	ListNews(ctx context.Context) ([]models.NewsArticle, error)
	CreateNews(ctx context.Context, in models.NewsArticle) (models.NewsArticle, error)
	UpdateNews(ctx context.Context, id string, patch models.NewsPatch) (models.NewsArticle, error)

	Delete(ctx context.Context, kind Kind, id string) error
	AdminData(ctx context.Context) (AdminData, error)
}

// ContentService provides CRUD over kind-prefixed records in the store.
type ContentService struct {
	store *store.Store
	users AuthServiceProvider
}

// NewContentService creates a new ContentService. The auth service supplies
// the read-only alumni view for the admin dashboard.
func NewContentService(st *store.Store, users AuthServiceProvider) *ContentService {
	return &ContentService{store: st, users: users}
}

// ListEvents returns all stored events.
func (s *ContentService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return listRecords[models.Event](ctx, s.store, KindEvent)
}

// CreateEvent stores a new event under a generated id.
func (s *ContentService) CreateEvent(ctx context.Context, in models.Event) (models.Event, error) {
	in.ID = uuid.NewString()
	in.CreatedAt = time.Now().UTC()
	in.UpdatedAt = nil
	if err := s.put(ctx, KindEvent, in.ID, in); err != nil {
		return models.Event{}, err
	}
	return in, nil
}

// UpdateEvent merge-patches an existing event. The id is pinned to the key.
func (s *ContentService) UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (models.Event, error) {
	event, err := getRecord[models.Event](ctx, s.store, KindEvent, id)
	if err != nil {
		return models.Event{}, err
	}
	patch.Apply(&event)
	event.ID = id
	now := time.Now().UTC()
	event.UpdatedAt = &now
	if err := s.put(ctx, KindEvent, id, event); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// ListJobs returns all stored job postings.
func (s *ContentService) ListJobs(ctx context.Context) ([]models.Job, error) {
	return listRecords[models.Job](ctx, s.store, KindJob)
}

// CreateJob stores a new job posting under a generated id.
func (s *ContentService) CreateJob(ctx context.Context, in models.Job) (models.Job, error) {
	in.ID = uuid.NewString()
	in.CreatedAt = time.Now().UTC()
	in.UpdatedAt = nil
	if err := s.put(ctx, KindJob, in.ID, in); err != nil {
		return models.Job{}, err
	}
	return in, nil
}

// UpdateJob merge-patches an existing job posting.
func (s *ContentService) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.Job, error) {
	job, err := getRecord[models.Job](ctx, s.store, KindJob, id)
	if err != nil {
		return models.Job{}, err
	}
	patch.Apply(&job)
	job.ID = id
	now := time.Now().UTC()
	job.UpdatedAt = &now
	if err := s.put(ctx, KindJob, id, job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

// ListNews returns all stored news articles.
func (s *ContentService) ListNews(ctx context.Context) ([]models.NewsArticle, error) {
	return listRecords[models.NewsArticle](ctx, s.store, KindNews)
}

// CreateNews stores a new article under a generated id.
func (s *ContentService) CreateNews(ctx context.Context, in models.NewsArticle) (models.NewsArticle, error) {
	in.ID = uuid.NewString()
	in.CreatedAt = time.Now().UTC()
	in.UpdatedAt = nil
	if err := s.put(ctx, KindNews, in.ID, in); err != nil {
		return models.NewsArticle{}, err
	}
	return in, nil
}

// UpdateNews merge-patches an existing article.
func (s *ContentService) UpdateNews(ctx context.Context, id string, patch models.NewsPatch) (models.NewsArticle, error) {
	article, err := getRecord[models.NewsArticle](ctx, s.store, KindNews, id)
	if err != nil {
		return models.NewsArticle{}, err
	}
	patch.Apply(&article)
	article.ID = id
	now := time.Now().UTC()
	article.UpdatedAt = &now
	if err := s.put(ctx, KindNews, id, article); err != nil {
		return models.NewsArticle{}, err
	}
	return article, nil
}

// Delete removes the record atomically; the store reports whether anything
// was actually there.
func (s *ContentService) Delete(ctx context.Context, kind Kind, id string) error {
	switch kind {
	case KindEvent, KindJob, KindNews:
	default:
		return ErrUnknownKind
	}
	if _, err := s.store.Delete(ctx, kind.key(id)); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	return nil
}

// AdminData gathers all content plus the alumni view for the dashboard.
func (s *ContentService) AdminData(ctx context.Context) (AdminData, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return AdminData{}, err
	}
	jobs, err := s.ListJobs(ctx)
	if err != nil {
		return AdminData{}, err
	}
	news, err := s.ListNews(ctx)
	if err != nil {
		return AdminData{}, err
	}
	users, err := s.users.ListAlumni(ctx)
	if err != nil {
		return AdminData{}, err
	}
	return AdminData{Events: events, Jobs: jobs, News: news, Users: users}, nil
}

func (s *ContentService) put(ctx context.Context, kind Kind, id string, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", kind, id, err)
	}
	return s.store.Set(ctx, kind.key(id), raw)
}

func getRecord[T any](ctx context.Context, st *store.Store, kind Kind, id string) (T, error) {
	var record T
	raw, err := st.Get(ctx, kind.key(id))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return record, ErrNotFound
		}
		return record, fmt.Errorf("load %s %s: %w", kind, id, err)
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return record, fmt.Errorf("decode %s %s: %w", kind, id, err)
	}
	return record, nil
}

func listRecords[T any](ctx context.Context, st *store.Store, kind Kind) ([]T, error) {
	entries, err := st.ListByPrefix(ctx, kind.prefix())
	if err != nil {
		return nil, fmt.Errorf("scan %s records: %w", kind, err)
	}
	records := make([]T, 0, len(entries))
	for _, entry := range entries {
		var record T
		if err := json.Unmarshal(entry.Value, &record); err != nil {
			return nil, fmt.Errorf("decode record at %q: %w", entry.Key, err)
		}
		records = append(records, record)
	}
	return records, nil
}
