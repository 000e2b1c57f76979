package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/portal-server/internal/auth"
	"github.com/alumnihub/portal-server/internal/models"
	"github.com/alumnihub/portal-server/internal/session"
	"github.com/alumnihub/portal-server/internal/store"
)

func newTestContentService(t *testing.T) (*ContentService, *AuthService) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	authSvc := NewAuthService(st, session.NewManager(st, time.Hour), auth.NewBcryptHasher(4))
	return NewContentService(st, authSvc), authSvc
}

func TestParseKind(t *testing.T) {
	for plural, want := range map[string]Kind{
		"events": KindEvent,
		"jobs":   KindJob,
		"news":   KindNews,
	} {
		got, err := ParseKind(plural)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("users")
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = ParseKind("event")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCreateEventGeneratesIDAndTimestamp(t *testing.T) {
	svc, _ := newTestContentService(t)

	event, err := svc.CreateEvent(context.Background(), models.Event{Title: "Gala"})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
	assert.Nil(t, event.UpdatedAt)

	events, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Gala", events[0].Title)
	assert.Equal(t, event.ID, events[0].ID)
}

func TestUpdateEventMergePatch(t *testing.T) {
	svc, _ := newTestContentService(t)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, models.Event{Title: "Gala", Location: "Grand Hotel Ballroom"})
	require.NoError(t, err)

	title := "Annual Alumni Gala 2025"
	updated, err := svc.UpdateEvent(ctx, event.ID, models.EventPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, event.ID, updated.ID)
	assert.Equal(t, "Annual Alumni Gala 2025", updated.Title)
	assert.Equal(t, "Grand Hotel Ballroom", updated.Location) // preserved
	require.NotNil(t, updated.UpdatedAt)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Annual Alumni Gala 2025", events[0].Title)
	assert.NotNil(t, events[0].UpdatedAt)
}

func TestUpdateAbsentRecord(t *testing.T) {
	svc, _ := newTestContentService(t)

	title := "x"
	_, err := svc.UpdateEvent(context.Background(), "missing", models.EventPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateJob(context.Background(), "missing", models.JobPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateNews(context.Background(), "missing", models.NewsPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsFinal(t *testing.T) {
	svc, _ := newTestContentService(t)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, models.Event{Title: "Gala"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, KindEvent, event.ID))

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	// Deleting an already-deleted id reports not found.
	assert.ErrorIs(t, svc.Delete(ctx, KindEvent, event.ID), ErrNotFound)
}

func TestDeleteUnknownKind(t *testing.T) {
	svc, _ := newTestContentService(t)

	assert.ErrorIs(t, svc.Delete(context.Background(), Kind("user"), "any"), ErrUnknownKind)
}

func TestJobAndNewsLifecycle(t *testing.T) {
	svc, _ := newTestContentService(t)
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, models.Job{
		Title:    "Software Engineer",
		Company:  "Innovation Labs",
		PostedBy: "Alumni Office",
		Tags:     []string{"Remote", "Engineering"},
	})
	require.NoError(t, err)

	salary := "$120K - $180K"
	job, err = svc.UpdateJob(ctx, job.ID, models.JobPatch{Salary: &salary})
	require.NoError(t, err)
	assert.Equal(t, "Innovation Labs", job.Company)
	assert.Equal(t, salary, job.Salary)
	// Dashboard-only fields ride through the merge untouched.
	assert.Equal(t, "Alumni Office", job.PostedBy)
	assert.Equal(t, []string{"Remote", "Engineering"}, job.Tags)

	jobs, err := svc.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Alumni Office", jobs[0].PostedBy)

	article, err := svc.CreateNews(ctx, models.NewsArticle{
		Title: "Mentorship Program Launched",
		Date:  "October 22, 2025",
	})
	require.NoError(t, err)
	assert.Equal(t, "October 22, 2025", article.Date)

	require.NoError(t, svc.Delete(ctx, KindJob, job.ID))
	require.NoError(t, svc.Delete(ctx, KindNews, article.ID))

	jobs, err = svc.ListJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestAdminDataBundlesEverything(t *testing.T) {
	svc, authSvc := newTestContentService(t)
	ctx := context.Background()

	_, _, err := authSvc.Signup(ctx, "alice@x.edu", "pw1", "Alice")
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, models.Event{Title: "Gala"})
	require.NoError(t, err)
	_, err = svc.CreateJob(ctx, models.Job{Title: "Engineer"})
	require.NoError(t, err)

	data, err := svc.AdminData(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Events, 1)
	assert.Len(t, data.Jobs, 1)
	assert.Empty(t, data.News)
	require.Len(t, data.Users, 1)
	assert.Empty(t, data.Users[0].PasswordHash)
}
