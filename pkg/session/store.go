package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/multierr"

	"github.com/kadualabs/vendorhub/pkg/logger"
	"github.com/kadualabs/vendorhub/pkg/models"
)

// State is the durable part of the session: exactly these three fields are
// persisted; loading state never is.
type State struct {
	Vendor          *models.Vendor `json:"vendor"`
	Token           string         `json:"token"`
	IsAuthenticated bool           `json:"isAuthenticated"`
}

// Storage is the persistence port behind the store. Load returns (nil, nil)
// when nothing has been saved yet.
type Storage interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state State) error
	Clear(ctx context.Context) error
}

// Store is the single source of truth for "who is logged in". It is an
// explicit, injectable object owned by the application root, not a package
// singleton, and is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     State
	isLoading bool

	storage Storage
	logg    *logger.Logger
}

// NewStore builds a store that reports loading until Hydrate has run, so
// consumers can tell "not yet known" apart from "confirmed logged out".
func NewStore(storage Storage, logg *logger.Logger) *Store {
	return &Store{
		storage:   storage,
		logg:      logg,
		isLoading: true,
	}
}

// Hydrate restores persisted state once at startup. Storage failures are
// logged and treated as "not authenticated"; they never propagate.
func (s *Store) Hydrate(ctx context.Context) {
	var restored *State
	if s.storage != nil {
		loaded, err := s.storage.Load(ctx)
		if err != nil {
			if s.logg != nil {
				s.logg.Warn(ctx, "session rehydration failed, starting logged out")
			}
		} else {
			restored = loaded
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if restored != nil {
		s.state = *restored
	}
	s.isLoading = false
}

// SetVendor replaces the vendor record and marks the session authenticated.
func (s *Store) SetVendor(ctx context.Context, vendor models.Vendor) {
	s.mu.Lock()
	v := vendor
	s.state.Vendor = &v
	s.state.IsAuthenticated = true
	s.isLoading = false
	snapshot := s.state
	s.mu.Unlock()

	s.persist(ctx, snapshot)
}

// SetToken stores the bearer token.
func (s *Store) SetToken(ctx context.Context, token string) {
	s.mu.Lock()
	s.state.Token = token
	s.isLoading = false
	snapshot := s.state
	s.mu.Unlock()

	s.persist(ctx, snapshot)
}

// UpdateVendor shallow-merges partial fields into the current vendor. It is
// a no-op when no vendor is set.
func (s *Store) UpdateVendor(ctx context.Context, patch models.VendorPatch) {
	s.mu.Lock()
	if s.state.Vendor == nil {
		s.mu.Unlock()
		return
	}
	merged := patch.Apply(*s.state.Vendor)
	s.state.Vendor = &merged
	snapshot := s.state
	s.mu.Unlock()

	s.persist(ctx, snapshot)
}

// Logout resets the session locally and clears persisted state. It does not
// call the server; callers invoke the logout endpoint separately.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{}
	s.isLoading = false
	s.mu.Unlock()

	if s.storage == nil {
		return nil
	}
	if err := s.storage.Clear(ctx); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "clearing persisted session failed")
		}
		return multierr.Append(nil, err)
	}
	return nil
}

// Vendor returns a copy of the current vendor record, or nil when logged out.
func (s *Store) Vendor() *models.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Vendor == nil {
		return nil
	}
	v := *s.state.Vendor
	return &v
}

// Token returns the stored bearer token. The store satisfies the API
// client's token source contract through this method.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// TokenExpiresAt reads the exp claim from the stored JWT without verifying
// the signature; the client holds no signing key. The second return is false
// when no token is stored or it carries no expiry.
func (s *Store) TokenExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// persist writes the snapshot best-effort; a storage failure must never
// break the calling flow.
func (s *Store) persist(ctx context.Context, snapshot State) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(ctx, snapshot); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "persisting session failed")
	}
}
