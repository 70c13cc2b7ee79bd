package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/projtrack/internal/logging"
	"github.com/dmitrijs2005/projtrack/internal/models"
)

// IdentityService is the part of identity.Store the client uses.
type IdentityService interface {
	Login(ctx context.Context, username, password string) (bool, error)
	Logout(ctx context.Context) error
	AddUser(ctx context.Context, username, password string, role models.Role) (bool, error)
	UpdateUser(ctx context.Context, id string, u models.UserUpdate) error
	DeleteUser(ctx context.Context, id string) error
	IsAdmin() bool
	CurrentUser() (models.User, bool)
	Users() []models.User
}

// ProjectService is the part of projects.Store the client uses.
type ProjectService interface {
	AddProject(ctx context.Context, d models.ProjectDraft) (models.Project, error)
	UpdateProject(ctx context.Context, id string, u models.ProjectUpdate) error
	DeleteProject(ctx context.Context, id string) error
	AddModule(ctx context.Context, projectID string, d models.ModuleDraft) (models.Module, error)
	UpdateModule(ctx context.Context, projectID, moduleID string, u models.ModuleUpdate) error
	DeleteModule(ctx context.Context, projectID, moduleID string) error
	AddDocument(ctx context.Context, projectID, moduleID string, d models.DocumentDraft) (models.Document, error)
	DeleteDocument(ctx context.Context, projectID, moduleID, documentID string) error
	ProjectProgress(projectID string) int
	Projects() []models.Project
	Project(id string) (models.Project, bool)
	Document(projectID, moduleID, documentID string) (models.Document, bool)
}

type App struct {
	identity    IdentityService
	projects    ProjectService
	log         logging.Logger
	downloadDir string

	reader *bufio.Reader
	out    io.Writer
}

// Option configures an App.
type Option func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(in)
		a.out = out
	}
}

// WithDownloadDir sets where downloaded attachments are written.
func WithDownloadDir(dir string) Option {
	return func(a *App) { a.downloadDir = dir }
}

func NewApp(id IdentityService, ps ProjectService, log logging.Logger, opts ...Option) *App {
	a := &App{
		identity:    id,
		projects:    ps,
		log:         log,
		downloadDir: "downloads",
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to projtrack (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.identity.CurrentUser()
	return ok
}

func (a *App) isAdmin() bool {
	return a.identity.IsAdmin()
}

func (a *App) status() string {
	u, ok := a.identity.CurrentUser()
	if !ok {
		return "guest"
	}
	return fmt.Sprintf("%s:%s", u.Username, u.Role)
}
