package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-server/internal/auth"
	"github.com/alumnihub/portal-server/internal/models"
	"github.com/alumnihub/portal-server/internal/session"
	"github.com/alumnihub/portal-server/internal/store"
)

const userKeyPrefix = "user:"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateIdentity  = errors.New("an account with this email already exists")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrMissingField       = errors.New("email, password and name are required")
)

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Signup(ctx context.Context, email, password, name string) (models.User, string, error)
	Verify(ctx context.Context, token string) (models.Session, error)
	UpdateProfile(ctx context.Context, token string, patch models.UserProfilePatch) (models.User, error)
	Logout(ctx context.Context, token string) error
	ListAlumni(ctx context.Context) ([]models.User, error)
}

// AuthService provides business logic for identities and their sessions.
type AuthService struct {
	store    *store.Store
	sessions *session.Manager
	hasher   auth.CredentialHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(st *store.Store, sessions *session.Manager, hasher auth.CredentialHasher) *AuthService {
	return &AuthService{store: st, sessions: sessions, hasher: hasher}
}

// UserKey returns the store key for an identity. Emails are normalized so a
// given address always resolves to the same record.
func UserKey(email string) string {
	return userKeyPrefix + NormalizeEmail(email)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, _, err := s.sessions.Create(ctx, user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("create session: %w", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Signup registers a new identity with the default role and opens a session.
// The stored identity is untouched when the email is already taken.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (models.User, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" || strings.TrimSpace(name) == "" {
		return models.User{}, "", ErrMissingField
	}

	if _, err := s.store.Get(ctx, UserKey(email)); err == nil {
		return models.User{}, "", ErrDuplicateIdentity
	} else if !errors.Is(err, store.ErrKeyNotFound) {
		return models.User{}, "", fmt.Errorf("check existing identity: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash credential: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         string(auth.RoleUser),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.putUser(ctx, user); err != nil {
		return models.User{}, "", err
	}

	token, _, err := s.sessions.Create(ctx, user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("create session: %w", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Verify resolves a session token to its identity snapshot.
func (s *AuthService) Verify(ctx context.Context, token string) (models.Session, error) {
	return s.sessions.Resolve(ctx, token)
}

// UpdateProfile merges the patch onto the identity behind the session, then
// refreshes the session snapshot so later requests on the same token see the
// change. Email, role and credential are out of the patch's reach by type.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, patch models.UserProfilePatch) (models.User, error) {
	snapshot, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.getUser(ctx, snapshot.Email)
	if err != nil {
		return models.User{}, err
	}

	patch.Apply(&user)
	now := time.Now().UTC()
	user.UpdatedAt = &now

	if err := s.putUser(ctx, user); err != nil {
		return models.User{}, err
	}

	// Separate write from the identity update; a crash in between leaves
	// the snapshot stale until the next successful profile update.
	if err := s.sessions.Refresh(ctx, token, user); err != nil {
		return models.User{}, fmt.Errorf("refresh session: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Logout revokes the session. Unknown tokens are treated as already logged
// out.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return nil
}

// ListAlumni returns every identity for the directory, credential hash
// cleared.
func (s *AuthService) ListAlumni(ctx context.Context) ([]models.User, error) {
	entries, err := s.store.ListByPrefix(ctx, userKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("scan identities: %w", err)
	}

	alumni := make([]models.User, 0, len(entries))
	for _, entry := range entries {
		var user models.User
		if err := json.Unmarshal(entry.Value, &user); err != nil {
			return nil, fmt.Errorf("decode identity at %q: %w", entry.Key, err)
		}
		user.PasswordHash = ""
		alumni = append(alumni, user)
	}
	return alumni, nil
}

func (s *AuthService) getUser(ctx context.Context, email string) (models.User, error) {
	raw, err := s.store.Get(ctx, UserKey(email))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return models.User{}, ErrIdentityNotFound
		}
		return models.User{}, fmt.Errorf("load identity: %w", err)
	}

	user, err := models.DecodeUser(raw)
	if err != nil {
		return models.User{}, fmt.Errorf("decode identity: %w", err)
	}
	return user, nil
}

func (s *AuthService) putUser(ctx context.Context, user models.User) error {
	raw, err := models.EncodeUser(user)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return s.store.Set(ctx, UserKey(user.Email), raw)
}
