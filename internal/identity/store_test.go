package identity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrijs2005/projtrack/internal/common"
	"github.com/dmitrijs2005/projtrack/internal/logging"
	"github.com/dmitrijs2005/projtrack/internal/models"
	"github.com/dmitrijs2005/projtrack/internal/repositories/blobs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errBoom = errors.New("boom")

// failingRepo fails Set for one key.
type failingRepo struct {
	blobs.Repository
	failKey string
}

func (f failingRepo) Set(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return errBoom
	}
	return f.Repository.Set(ctx, key, value)
}

type failingStore struct {
	*blobs.MemoryStore
	failKey string
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return errBoom
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *failingStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r blobs.Repository) error) error {
	return f.MemoryStore.WithinTx(ctx, func(ctx context.Context, r blobs.Repository) error {
		return fn(ctx, failingRepo{Repository: r, failKey: f.failKey})
	})
}

func newStore(t *testing.T, b blobs.Store) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), b, logging.Discard(), WithIDGenerator(common.SequentialIDs("user")))
	require.NoError(t, err)
	return s
}

func TestSeededAdmin_LoginAndLogout(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, blobs.NewMemoryStore())

	require.Len(t, s.Users(), 2)
	assert.False(t, s.IsAdmin())

	ok, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, s.IsAdmin())

	cur, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, SeedAdminID, cur.ID)

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAdmin())
	_, ok = s.CurrentUser()
	assert.False(t, ok)
}

func TestSeededViewer_IsNotAdmin(t *testing.T) {
	s := newStore(t, blobs.NewMemoryStore())

	ok, err := s.Login(context.Background(), "viewer", "viewer123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, s.IsAdmin())
}

func TestLogin_Rejections(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, blobs.NewMemoryStore())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "mallory", "admin123"},
		{"wrong password", "admin", "admin124"},
		{"username is case sensitive", "Admin", "admin123"},
		{"empty password", "viewer", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := s.Login(ctx, tt.username, tt.password)
			require.NoError(t, err)
			assert.False(t, ok)
			_, has := s.CurrentUser()
			assert.False(t, has)
		})
	}
}

func TestAddUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, blobs.NewMemoryStore())

	ok, err := s.AddUser(ctx, "alice", "secret1", models.RoleViewer)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.AddUser(ctx, "alice", "other-pass", models.RoleAdmin)
	require.NoError(t, err)
	require.False(t, ok)

	users := s.Users()
	require.Len(t, users, 3)
	n := 0
	for _, u := range users {
		if u.Username == "alice" {
			n++
			assert.Equal(t, models.RoleViewer, u.Role)
		}
	}
	assert.Equal(t, 1, n)
}

func TestAddUser_CanLoginAndSeedsStillWork(t *testing.T) {
	ctx := context.Background()
	b := blobs.NewMemoryStore()
	s := newStore(t, b)

	ok, err := s.AddUser(ctx, "alice", "secret1", models.RoleAdmin)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, s.IsAdmin())

	// the credential record now holds the defaults plus alice
	raw, err := b.Get(ctx, common.CredentialRecordKey)
	require.NoError(t, err)
	var creds models.Credentials
	require.NoError(t, json.Unmarshal(raw, &creds))
	assert.Equal(t, models.Credentials{
		SeedAdminID:  "admin123",
		SeedViewerID: "viewer123",
		"user-1":     "secret1",
	}, creds)

	ok, err = s.Login(ctx, "viewer", "viewer123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAddUser_InvalidRole(t *testing.T) {
	s := newStore(t, blobs.NewMemoryStore())
	_, err := s.AddUser(context.Background(), "bob", "secret1", models.Role("owner"))
	require.ErrorIs(t, err, common.ErrInvalidRole)
	assert.Len(t, s.Users(), 2)
}

func TestAddUser_FailedCredentialWriteLeavesNothing(t *testing.T) {
	ctx := context.Background()
	b := &failingStore{MemoryStore: blobs.NewMemoryStore(), failKey: common.CredentialRecordKey}
	s := newStore(t, b)

	_, err := s.AddUser(ctx, "alice", "secret1", models.RoleViewer)
	require.ErrorIs(t, err, errBoom)
	assert.Len(t, s.Users(), 2)

	raw, err := b.Get(ctx, common.IdentityRecordKey)
	require.NoError(t, err)
	assert.Nil(t, raw, "identity record must not be written without its credential")
}

func TestStatePersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	b := blobs.NewMemoryStore()
	s := newStore(t, b)

	ok, err := s.AddUser(ctx, "alice", "secret1", models.RoleViewer)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.True(t, ok)

	reloaded := newStore(t, b)
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())

	cur, ok := reloaded.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", cur.Username)
}

func TestNewStore_UnusableRecordReseeds(t *testing.T) {
	tests := []struct {
		name string
		rec  string
	}{
		{"null", `null`},
		{"null users", `{"users":null}`},
		{"empty roster", `{"users":[]}`},
		{"invalid role", `{"users":[{"id":"u1","username":"mallory","role":"superuser"}]}`},
		{"invalid session role", `{"users":[{"id":"u1","username":"mallory","role":"admin"}],"currentUser":{"id":"u1","username":"mallory","role":"root"}}`},
		{"malformed", `{"users":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b := blobs.NewMemoryStore()
			require.NoError(t, b.Set(ctx, common.IdentityRecordKey, []byte(tt.rec)))

			s := newStore(t, b)
			assert.Len(t, s.Users(), 2)
			assert.False(t, s.IsAdmin())

			ok, err := s.Login(ctx, "admin", "admin123")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.True(t, s.IsAdmin())
		})
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, blobs.NewMemoryStore())

	admin := models.RoleAdmin
	require.NoError(t, s.UpdateUser(ctx, SeedViewerID, models.UserUpdate{Role: &admin}))

	users := s.Users()
	assert.Equal(t, models.RoleAdmin, users[1].Role)
	assert.Equal(t, "viewer", users[1].Username)

	// password unchanged
	ok, err := s.Login(ctx, "viewer", "viewer123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, s.IsAdmin())
}

func TestUpdateUser_SessionFollowsRoleChange(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, blobs.NewMemoryStore())

	ok, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, ok)

	viewer := models.RoleViewer
	require.NoError(t, s.UpdateUser(ctx, SeedAdminID, models.UserUpdate{Role: &viewer}))
	assert.False(t, s.IsAdmin())
}

func TestUpdateUser_Errors(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, blobs.NewMemoryStore())
	before := s.Snapshot()

	admin := models.RoleAdmin
	require.ErrorIs(t, s.UpdateUser(ctx, "nope", models.UserUpdate{Role: &admin}), common.ErrNotFound)

	bogus := models.Role("root")
	require.ErrorIs(t, s.UpdateUser(ctx, SeedViewerID, models.UserUpdate{Role: &bogus}), common.ErrInvalidRole)

	assert.Equal(t, before, s.Snapshot())
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	b := blobs.NewMemoryStore()
	s := newStore(t, b)

	ok, err := s.AddUser(ctx, "alice", "secret1", models.RoleViewer)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.DeleteUser(ctx, "user-1"))
	assert.Len(t, s.Users(), 2)

	ok, err = s.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.False(t, ok)

	raw, err := b.Get(ctx, common.CredentialRecordKey)
	require.NoError(t, err)
	var creds models.Credentials
	require.NoError(t, json.Unmarshal(raw, &creds))
	assert.NotContains(t, creds, "user-1")

	require.ErrorIs(t, s.DeleteUser(ctx, "user-1"), common.ErrNotFound)
}

func TestDeleteUser_KeepsSession(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, blobs.NewMemoryStore())

	ok, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.DeleteUser(ctx, SeedAdminID))
	cur, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, SeedAdminID, cur.ID)
	assert.Len(t, s.Users(), 1)
}

func TestDeleteUser_DoesNotMaterializeCredentials(t *testing.T) {
	ctx := context.Background()
	b := blobs.NewMemoryStore()
	s := newStore(t, b)

	require.NoError(t, s.DeleteUser(ctx, SeedViewerID))

	raw, err := b.Get(ctx, common.CredentialRecordKey)
	require.NoError(t, err)
	assert.Nil(t, raw)

	ok, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewStore_UnreadableRecordsFallBack(t *testing.T) {
	ctx := context.Background()
	b := blobs.NewMemoryStore()
	require.NoError(t, b.Set(ctx, common.IdentityRecordKey, []byte("{not json")))
	require.NoError(t, b.Set(ctx, common.CredentialRecordKey, []byte("[1,2,3]")))

	s := newStore(t, b)
	require.Len(t, s.Users(), 2)

	ok, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogin_FailedWriteKeepsNoSession(t *testing.T) {
	ctx := context.Background()
	b := &failingStore{MemoryStore: blobs.NewMemoryStore(), failKey: common.IdentityRecordKey}
	s := newStore(t, b)

	ok, err := s.Login(ctx, "admin", "admin123")
	require.ErrorIs(t, err, errBoom)
	assert.False(t, ok)
	assert.False(t, s.IsAdmin())
}
