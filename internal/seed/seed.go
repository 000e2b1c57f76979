// Package seed installs first-run demo data: two well-known identities and a
// handful of content records, so a fresh install has something to show.
// Every insert is guarded by an existence check, making Run safe to call on
// each start.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-server/internal/auth"
	"github.com/alumnihub/portal-server/internal/models"
	"github.com/alumnihub/portal-server/internal/services"
	"github.com/alumnihub/portal-server/internal/store"
)

// Run installs the demo identities and content records that are not already
// present.
func Run(ctx context.Context, st *store.Store, hasher auth.CredentialHasher) error {
	if err := seedUsers(ctx, st, hasher); err != nil {
		return err
	}
	return seedContent(ctx, st)
}

type demoUser struct {
	user     models.User
	password string
}

func demoUsers() []demoUser {
	return []demoUser{
		{
			password: "admin123",
			user: models.User{
				ID:         "admin-1",
				Email:      "admin@alumni.edu",
				Name:       "Admin User",
				Role:       string(auth.RoleAdmin),
				Class:      "2010",
				Major:      "Computer Science",
				Company:    "Alumni Portal Inc.",
				Position:   "System Administrator",
				Location:   "Boston, MA",
				Industries: []string{"Technology", "Education"},
			},
		},
		{
			password: "user123",
			user: models.User{
				ID:         "user-1",
				Email:      "user@alumni.edu",
				Name:       "Regular User",
				Role:       string(auth.RoleUser),
				Class:      "2018",
				Major:      "Business",
				Company:    "Startup Co",
				Position:   "Product Manager",
				Location:   "New York, NY",
				Industries: []string{"Business", "Technology"},
			},
		},
	}
}

func seedUsers(ctx context.Context, st *store.Store, hasher auth.CredentialHasher) error {
	for _, demo := range demoUsers() {
		key := services.UserKey(demo.user.Email)
		if _, err := st.Get(ctx, key); err == nil {
			continue
		} else if !errors.Is(err, store.ErrKeyNotFound) {
			return fmt.Errorf("seed: check %s: %w", key, err)
		}

		hash, err := hasher.Hash(demo.password)
		if err != nil {
			return fmt.Errorf("seed: hash credential for %s: %w", demo.user.Email, err)
		}
		user := demo.user
		user.PasswordHash = hash
		user.CreatedAt = time.Now().UTC()

		raw, err := models.EncodeUser(user)
		if err != nil {
			return fmt.Errorf("seed: encode %s: %w", demo.user.Email, err)
		}
		if err := st.Set(ctx, key, raw); err != nil {
			return fmt.Errorf("seed: store %s: %w", demo.user.Email, err)
		}
		log.Info().Str("email", user.Email).Str("role", user.Role).Msg("Seeded demo identity")
	}
	return nil
}

func seedContent(ctx context.Context, st *store.Store) error {
	now := time.Now().UTC()

	records := map[string]any{
		"event:demo-gala-2025": models.Event{
			ID:        "demo-gala-2025",
			Title:     "Annual Alumni Gala 2025",
			Date:      "November 15, 2025",
			Time:      "6:00 PM - 11:00 PM",
			Location:  "Grand Hotel Ballroom",
			Category:  "Networking",
			Attendees: 250,
			CreatedAt: now,
		},
		"event:demo-career-workshop": models.Event{
			ID:        "demo-career-workshop",
			Title:     "Career Development Workshop",
			Date:      "November 5, 2025",
			Time:      "2:00 PM - 5:00 PM",
			Location:  "Virtual Event",
			Category:  "Professional Development",
			Attendees: 180,
			CreatedAt: now,
		},
		"job:demo-product-manager": models.Job{
			ID:        "demo-product-manager",
			Title:     "Senior Product Manager",
			Company:   "TechCorp Inc.",
			Location:  "San Francisco, CA",
			Type:      "Full-time",
			Salary:    "$150K - $200K",
			CreatedAt: now,
		},
		"job:demo-software-engineer": models.Job{
			ID:        "demo-software-engineer",
			Title:     "Software Engineer",
			Company:   "Innovation Labs",
			Location:  "Remote",
			Type:      "Full-time",
			Salary:    "$120K - $180K",
			CreatedAt: now,
		},
		"news:demo-member-milestone": models.NewsArticle{
			ID:        "demo-member-milestone",
			Title:     "Alumni Network Reaches 50,000 Members Milestone",
			Excerpt:   "Our community keeps growing, with graduates from every class year joining the network.",
			Category:  "Announcement",
			ReadTime:  "3 min read",
			CreatedAt: now,
		},
		"news:demo-mentorship-launch": models.NewsArticle{
			ID:        "demo-mentorship-launch",
			Title:     "New Mentorship Program Launched for Recent Graduates",
			Excerpt:   "Experienced alumni can now be matched with recent graduates for one-on-one guidance.",
			Category:  "Programs",
			ReadTime:  "4 min read",
			CreatedAt: now,
		},
	}

	for key, record := range records {
		if _, err := st.Get(ctx, key); err == nil {
			continue
		} else if !errors.Is(err, store.ErrKeyNotFound) {
			return fmt.Errorf("seed: check %s: %w", key, err)
		}

		raw, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("seed: encode %s: %w", key, err)
		}
		if err := st.Set(ctx, key, raw); err != nil {
			return fmt.Errorf("seed: store %s: %w", key, err)
		}
	}
	return nil
}
