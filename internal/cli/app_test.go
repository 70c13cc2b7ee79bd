package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/projtrack/internal/common"
	"github.com/dmitrijs2005/projtrack/internal/identity"
	"github.com/dmitrijs2005/projtrack/internal/logging"
	"github.com/dmitrijs2005/projtrack/internal/models"
	"github.com/dmitrijs2005/projtrack/internal/projects"
	"github.com/dmitrijs2005/projtrack/internal/repositories/blobs"
)

type testEnv struct {
	app      *App
	out      *bytes.Buffer
	identity *identity.Store
	projects *projects.Store
}

// newTestEnv builds an App over in-memory stores. Lines feed the prompts;
// passwords are returned by getPassword in order.
func newTestEnv(t *testing.T, passwords []string, lines ...string) *testEnv {
	t.Helper()
	ctx := context.Background()
	b := blobs.NewMemoryStore()

	id, err := identity.NewStore(ctx, b, logging.Discard(), identity.WithIDGenerator(common.SequentialIDs("u")))
	require.NoError(t, err)
	ps, err := projects.NewStore(ctx, b, logging.Discard(),
		projects.WithIDGenerator(common.SequentialIDs("p")),
		projects.WithSeed(false),
	)
	require.NoError(t, err)

	origPw := getPassword
	getPassword = func(io.Writer) ([]byte, error) {
		require.NotEmpty(t, passwords, "unexpected password prompt")
		pw := passwords[0]
		passwords = passwords[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() { getPassword = origPw })

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	app := NewApp(id, ps, logging.Discard(),
		WithIO(in, &out),
		WithDownloadDir(filepath.Join(t.TempDir(), "downloads")),
	)
	return &testEnv{app: app, out: &out, identity: id, projects: ps}
}

func (e *testEnv) loginAdmin(t *testing.T) {
	t.Helper()
	ok, err := e.identity.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []string{"wrong", "admin123"}, "admin", "admin")

	require.NoError(t, env.app.Login(ctx))
	assert.Contains(t, env.out.String(), "Invalid username or password")
	assert.False(t, env.app.isLoggedIn())

	require.NoError(t, env.app.Login(ctx))
	assert.Contains(t, env.out.String(), "Logged in as admin (admin)")
	assert.True(t, env.app.isAdmin())
	assert.Equal(t, "admin:admin", env.app.status())

	require.NoError(t, env.app.Logout(ctx))
	assert.Equal(t, "guest", env.app.status())
}

func TestAddUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []string{"short", "secret1", "another"},
		"alice",
		"alice", "viewer",
		"alice", "admin",
	)
	env.loginAdmin(t)

	err := env.app.AddUser(ctx)
	require.ErrorContains(t, err, "at least 6 characters")

	require.NoError(t, env.app.AddUser(ctx))
	assert.Contains(t, env.out.String(), "User alice added")

	err = env.app.AddUser(ctx)
	require.ErrorContains(t, err, "already exists")
	assert.Len(t, env.identity.Users(), 3)
}

func TestSetRoleAndDeleteUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	env.loginAdmin(t)

	require.NoError(t, env.app.SetRole(ctx, []string{"viewer", "admin"}))
	assert.Equal(t, models.RoleAdmin, env.identity.Users()[1].Role)

	require.ErrorIs(t, env.app.SetRole(ctx, []string{"viewer", "owner"}), common.ErrInvalidRole)
	require.ErrorIs(t, env.app.SetRole(ctx, []string{"nobody", "admin"}), common.ErrNotFound)

	require.ErrorIs(t, env.app.DeleteUser(ctx, []string{"admin"}), errSelfDelete)
	require.NoError(t, env.app.DeleteUser(ctx, []string{"viewer-"}))
	require.Len(t, env.identity.Users(), 1)

	var usage errUsage
	require.ErrorAs(t, env.app.DeleteUser(ctx, nil), &usage)

	env.out.Reset()
	require.NoError(t, env.app.ListUsers(ctx))
	assert.Contains(t, env.out.String(), "admin-001")
	assert.NotContains(t, env.out.String(), "viewer-001")
}

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil,
		// addproject
		"Checkout", "New checkout flow", "in-progress", "2025-12-31",
		"Cart", "Payments", "",
		// editproject
		"", "Reworked checkout", "-",
		// addmodule
		"Shipping",
	)
	env.loginAdmin(t)

	require.NoError(t, env.app.AddProject(ctx))
	assert.Contains(t, env.out.String(), "Project p-1 created with 2 modules")

	p, ok := env.projects.Project("p-1")
	require.True(t, ok)
	require.NotNil(t, p.Deadline)
	assert.Equal(t, models.StatusInProgress, p.Status)
	require.Len(t, p.Modules, 2)
	assert.Equal(t, "p-2", p.Modules[0].ID)

	require.NoError(t, env.app.EditProject(ctx, []string{"p-1"}))
	p, _ = env.projects.Project("p-1")
	assert.Equal(t, "Checkout", p.Name)
	assert.Equal(t, "Reworked checkout", p.Description)
	assert.Nil(t, p.Deadline)

	require.NoError(t, env.app.AddModule(ctx, []string{"p-1"}))
	p, _ = env.projects.Project("p-1")
	require.Len(t, p.Modules, 3)

	// progress 100 completes the module
	require.NoError(t, env.app.SetProgress(ctx, []string{"p-1", "p-2", "100"}))
	// progress on a todo module starts it
	require.NoError(t, env.app.SetProgress(ctx, []string{"p-1", "p-3", "50%"}))
	p, _ = env.projects.Project("p-1")
	assert.Equal(t, models.StatusCompleted, p.Modules[0].Status)
	assert.Equal(t, models.StatusInProgress, p.Modules[1].Status)
	assert.Equal(t, 50, env.projects.ProjectProgress("p-1"))

	require.ErrorIs(t, env.app.SetProgress(ctx, []string{"p-1", "p-3", "120"}), common.ErrInvalidProgress)
	require.Error(t, env.app.SetProgress(ctx, []string{"p-1", "p-3", "half"}))

	require.NoError(t, env.app.ModuleStatus(ctx, []string{"p-1", "p-4", "completed"}))
	p, _ = env.projects.Project("p-1")
	assert.Equal(t, 100, p.Modules[2].Progress)

	require.NoError(t, env.app.SetStatus(ctx, []string{"p-1", "on-hold"}))
	p, _ = env.projects.Project("p-1")
	assert.Equal(t, models.StatusOnHold, p.Status)

	env.out.Reset()
	require.NoError(t, env.app.Show(ctx, []string{"p-1"}))
	assert.Contains(t, env.out.String(), "Checkout [On hold]")
	assert.Contains(t, env.out.String(), "Shipping")

	env.out.Reset()
	require.NoError(t, env.app.List(ctx, []string{"checkout", "on-hold"}))
	assert.Contains(t, env.out.String(), "p-1")
	env.out.Reset()
	require.NoError(t, env.app.List(ctx, []string{"todo"}))
	assert.Contains(t, env.out.String(), "No projects found")

	env.out.Reset()
	require.NoError(t, env.app.Stats(ctx))
	assert.Contains(t, env.out.String(), "Projects:    1")
	assert.Contains(t, env.out.String(), "Average:     83%")

	require.NoError(t, env.app.DeleteModule(ctx, []string{"p-1", "p-4"}))
	require.NoError(t, env.app.DeleteProject(ctx, []string{"p-1"}))
	assert.Empty(t, env.projects.Projects())
	require.ErrorIs(t, env.app.Show(ctx, []string{"p-1"}), common.ErrNotFound)
}

func TestAttachDownloadDetach(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	env.loginAdmin(t)

	p, err := env.projects.AddProject(ctx, models.ProjectDraft{
		Name:    "Docs",
		Modules: []models.ModuleDraft{{Name: "Specs"}},
	})
	require.NoError(t, err)
	mod := p.Modules[0]

	src := filepath.Join(t.TempDir(), "brief.pdf")
	payload := []byte("%PDF-1.7\x00\x01\x02")
	require.NoError(t, os.WriteFile(src, payload, 0o600))

	require.NoError(t, env.app.Attach(ctx, []string{p.ID, mod.ID, src}))
	got, _ := env.projects.Project(p.ID)
	require.Len(t, got.Modules[0].Documents, 1)
	doc := got.Modules[0].Documents[0]
	assert.Equal(t, "brief.pdf", doc.Name)
	assert.Equal(t, "application/pdf", doc.Type)

	env.out.Reset()
	require.NoError(t, env.app.Download(ctx, []string{p.ID, mod.ID, doc.ID}))
	saved := filepath.Join(env.app.downloadDir, "brief.pdf")
	assert.Contains(t, env.out.String(), saved)
	b, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, payload, b)

	require.NoError(t, env.app.Detach(ctx, []string{p.ID, mod.ID, doc.ID}))
	_, ok := env.projects.Document(p.ID, mod.ID, doc.ID)
	assert.False(t, ok)
	require.ErrorIs(t, env.app.Download(ctx, []string{p.ID, mod.ID, doc.ID}), common.ErrNotFound)
}

func TestResolve_Prefixes(t *testing.T) {
	items := []string{"abc-1", "abd-2", "xyz"}
	id := func(s string) string { return s }

	got, err := resolve(items, id, "item", "xy")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)

	_, err = resolve(items, id, "item", "ab")
	require.ErrorIs(t, err, errAmbiguous)

	_, err = resolve(items, id, "item", "")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestRun_ViewerCannotMutate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []string{"viewer123"},
		"login", "viewer",
		"addproject",
		"whoami",
		"exit",
	)

	env.app.Run(ctx)

	assert.Contains(t, env.out.String(), "Logged in as viewer (viewer)")
	assert.Contains(t, env.out.String(), "viewer (viewer) id=viewer-001")
	assert.Contains(t, env.out.String(), "unauthorized")
	assert.Empty(t, env.projects.Projects())
}
