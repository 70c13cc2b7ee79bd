package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/projtrack/internal/common"
	"github.com/dmitrijs2005/projtrack/internal/logging"
	"github.com/dmitrijs2005/projtrack/internal/models"
	"github.com/dmitrijs2005/projtrack/internal/repositories/blobs"
)

// Store is the Identity Store. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state models.IdentitySnapshot

	blobs blobs.Store
	log   logging.Logger
	newID common.IDGenerator
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the random id generator used for new users.
func WithIDGenerator(g common.IDGenerator) Option {
	return func(s *Store) { s.newID = g }
}

// NewStore loads the identity record from b. A missing record yields the two
// seeded users and no session; an unreadable one is logged and reseeded.
func NewStore(ctx context.Context, b blobs.Store, log logging.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		blobs: b,
		log:   log.With("store", "identity"),
		newID: common.NewID,
	}
	for _, o := range opts {
		o(s)
	}

	raw, err := b.Get(ctx, common.IdentityRecordKey)
	if err != nil {
		return nil, fmt.Errorf("load identity record: %w", err)
	}

	s.state = models.IdentitySnapshot{Users: defaultUsers()}
	if raw == nil {
		s.log.Debug(ctx, "identity record absent, using seeded users")
		return s, nil
	}

	snap, err := decodeIdentity(raw)
	if err != nil {
		s.log.Warn(ctx, "identity record unreadable, reseeding", "error", err)
		return s, nil
	}
	s.state = snap
	return s, nil
}

var errEmptyRoster = errors.New("identity record has no users")

// decodeIdentity parses the identity record. A null record or an empty roster
// counts as unreadable since nobody could log in again.
func decodeIdentity(raw []byte) (models.IdentitySnapshot, error) {
	var snap models.IdentitySnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return models.IdentitySnapshot{}, err
	}
	if len(snap.Users) == 0 {
		return models.IdentitySnapshot{}, errEmptyRoster
	}
	for _, u := range snap.Users {
		if u.ID == "" || u.Username == "" {
			return models.IdentitySnapshot{}, fmt.Errorf("user %q: missing id or username", u.ID)
		}
		if !u.Role.Valid() {
			return models.IdentitySnapshot{}, fmt.Errorf("user %q: %w %q", u.ID, common.ErrInvalidRole, u.Role)
		}
	}
	if cu := snap.CurrentUser; cu != nil && !cu.Role.Valid() {
		return models.IdentitySnapshot{}, fmt.Errorf("session user %q: %w %q", cu.ID, common.ErrInvalidRole, cu.Role)
	}
	return snap, nil
}

// Login authenticates username/password and starts a session on success.
// Unknown users and wrong passwords both report false with a nil error.
func (s *Store) Login(ctx context.Context, username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByUsername(username)
	if i < 0 {
		return false, nil
	}
	user := s.state.Users[i]

	creds, err := s.loadCredentials(ctx, s.blobs)
	if err != nil {
		return false, err
	}

	stored, ok := creds[user.ID]
	if !ok || stored != password {
		s.log.Debug(ctx, "login rejected", "username", username)
		return false, nil
	}

	next := s.state.Clone()
	next.CurrentUser = &user
	if err := s.commit(ctx, s.blobs, next); err != nil {
		return false, err
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return true, nil
}

// Logout clears the session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.CurrentUser = nil
	return s.commit(ctx, s.blobs, next)
}

// AddUser creates a user with the given password. It reports false if the
// username is already taken. The roster and the credential entry are written
// in one blob store transaction.
func (s *Store) AddUser(ctx context.Context, username, password string, role models.Role) (bool, error) {
	if !role.Valid() {
		return false, common.ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByUsername(username) >= 0 {
		return false, nil
	}

	user := models.User{ID: s.newID(), Username: username, Role: role}
	next := s.state.Clone()
	next.Users = append(next.Users, user)

	err := s.blobs.WithinTx(ctx, func(ctx context.Context, r blobs.Repository) error {
		creds, err := s.loadCredentials(ctx, r)
		if err != nil {
			return err
		}
		creds[user.ID] = password
		if err := saveCredentials(ctx, r, creds); err != nil {
			return err
		}
		return persist(ctx, r, next)
	})
	if err != nil {
		return false, err
	}

	s.state = next
	s.log.Info(ctx, "user added", "user_id", user.ID, "role", role)
	return true, nil
}

// UpdateUser applies u to the user with the given id. Credentials are not
// touched. If the user is the session user the session reflects the change.
func (s *Store) UpdateUser(ctx context.Context, id string, u models.UserUpdate) error {
	if u.Role != nil && !u.Role.Valid() {
		return common.ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return common.ErrNotFound
	}

	next := s.state.Clone()
	if u.Role != nil {
		next.Users[i].Role = *u.Role
	}
	if next.CurrentUser != nil && next.CurrentUser.ID == id {
		cur := next.Users[i]
		next.CurrentUser = &cur
	}

	return s.commit(ctx, s.blobs, next)
}

// DeleteUser removes the user and their credential entry. The session is
// left as is even when it belongs to the deleted user.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return common.ErrNotFound
	}

	next := s.state.Clone()
	next.Users = append(next.Users[:i], next.Users[i+1:]...)

	err := s.blobs.WithinTx(ctx, func(ctx context.Context, r blobs.Repository) error {
		if err := persist(ctx, r, next); err != nil {
			return err
		}

		raw, err := r.Get(ctx, common.CredentialRecordKey)
		if err != nil {
			return fmt.Errorf("load credentials: %w", err)
		}
		// defaults stay implicit until a credential record exists
		if raw == nil {
			return nil
		}
		creds, err := s.loadCredentials(ctx, r)
		if err != nil {
			return err
		}
		delete(creds, id)
		return saveCredentials(ctx, r, creds)
	})
	if err != nil {
		return err
	}

	s.state = next
	s.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// IsAdmin reports whether a session exists and its role is admin.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentUser != nil && s.state.CurrentUser.Role == models.RoleAdmin
}

// CurrentUser returns the session user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentUser == nil {
		return models.User{}, false
	}
	return *s.state.CurrentUser, true
}

// Users returns a copy of the roster in insertion order.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.state.Users))
	copy(out, s.state.Users)
	return out
}

// Snapshot returns a deep copy of the identity record.
func (s *Store) Snapshot() models.IdentitySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) indexByUsername(username string) int {
	for i, u := range s.state.Users {
		if u.Username == username {
			return i
		}
	}
	return -1
}

func (s *Store) indexByID(id string) int {
	for i, u := range s.state.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// commit persists next through r and swaps it in. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, r blobs.Repository, next models.IdentitySnapshot) error {
	if err := persist(ctx, r, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func persist(ctx context.Context, r blobs.Repository, snap models.IdentitySnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode identity record: %w", err)
	}
	if err := r.Set(ctx, common.IdentityRecordKey, b); err != nil {
		return fmt.Errorf("save identity record: %w", err)
	}
	return nil
}

// loadCredentials reads the credential record, falling back to the seeded
// defaults when it was never written or cannot be decoded.
func (s *Store) loadCredentials(ctx context.Context, r blobs.Repository) (models.Credentials, error) {
	raw, err := r.Get(ctx, common.CredentialRecordKey)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if raw == nil {
		return defaultCredentials(), nil
	}

	var creds models.Credentials
	if err := json.Unmarshal(raw, &creds); err != nil || creds == nil {
		s.log.Warn(ctx, "credential record unreadable, using defaults", "error", err)
		return defaultCredentials(), nil
	}
	return creds, nil
}

func saveCredentials(ctx context.Context, r blobs.Repository, creds models.Credentials) error {
	b, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := r.Set(ctx, common.CredentialRecordKey, b); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}
