package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/portal-server/internal/auth"
	"github.com/alumnihub/portal-server/internal/models"
	"github.com/alumnihub/portal-server/internal/services"
	"github.com/alumnihub/portal-server/internal/session"
	"github.com/alumnihub/portal-server/internal/store"
)

func TestRunSeedsDemoData(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	require.NoError(t, Run(ctx, st, auth.NewBcryptHasher(4)))

	authSvc := services.NewAuthService(st, session.NewManager(st, time.Hour), auth.NewBcryptHasher(4))

	user, _, err := authSvc.Login(ctx, "admin@alumni.edu", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)

	user, _, err = authSvc.Login(ctx, "user@alumni.edu", "user123")
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)

	contentSvc := services.NewContentService(st, authSvc)
	events, err := contentSvc.ListEvents(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, events)
}

func TestRunIsIdempotent(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()
	hasher := auth.NewBcryptHasher(4)

	require.NoError(t, Run(ctx, st, hasher))

	// Change a seeded record, run again: the seed must not clobber it.
	authSvc := services.NewAuthService(st, session.NewManager(st, time.Hour), hasher)
	contentSvc := services.NewContentService(st, authSvc)
	title := "Rescheduled Gala"
	_, err = contentSvc.UpdateEvent(ctx, "demo-gala-2025", models.EventPatch{Title: &title})
	require.NoError(t, err)

	require.NoError(t, Run(ctx, st, hasher))

	users, err := authSvc.ListAlumni(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	events, err := contentSvc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	updated, err := contentSvc.UpdateEvent(ctx, "demo-gala-2025", models.EventPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Rescheduled Gala", updated.Title)
}
