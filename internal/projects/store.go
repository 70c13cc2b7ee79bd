package projects

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/projtrack/internal/common"
	"github.com/dmitrijs2005/projtrack/internal/logging"
	"github.com/dmitrijs2005/projtrack/internal/models"
	"github.com/dmitrijs2005/projtrack/internal/repositories/blobs"
)

// Store is the Project Store. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state models.ProjectSnapshot

	blobs blobs.Store
	log   logging.Logger
	newID common.IDGenerator
	now   func() time.Time
	seed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the random id generator.
func WithIDGenerator(g common.IDGenerator) Option {
	return func(s *Store) { s.newID = g }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSeed controls whether the sample projects are loaded when no readable
// record exists. It defaults to true.
func WithSeed(seed bool) Option {
	return func(s *Store) { s.seed = seed }
}

// NewStore loads the project record from b.
func NewStore(ctx context.Context, b blobs.Store, log logging.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		blobs: b,
		log:   log.With("store", "projects"),
		newID: common.NewID,
		now:   time.Now,
		seed:  true,
	}
	for _, o := range opts {
		o(s)
	}

	raw, err := b.Get(ctx, common.ProjectRecordKey)
	if err != nil {
		return nil, fmt.Errorf("load project record: %w", err)
	}

	if raw != nil {
		snap, err := DecodeSnapshot(raw)
		if err == nil {
			s.state = snap
			return s, nil
		}
		s.log.Warn(ctx, "project record unreadable, starting over", "error", err)
	}

	s.state = models.ProjectSnapshot{Projects: []models.Project{}}
	if s.seed {
		s.state.Projects = sampleProjects(s.newID, s.timestamp())
		s.log.Debug(ctx, "seeded sample projects", "count", len(s.state.Projects))
	}
	return s, nil
}

func (s *Store) timestamp() time.Time {
	// UTC drops the monotonic reading so persisted and live values compare equal
	return s.now().UTC()
}

// mutate runs fn against a copy of the state and commits the copy if fn
// succeeds and the write goes through.
func (s *Store) mutate(ctx context.Context, fn func(next *models.ProjectSnapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}

	b, err := EncodeSnapshot(next)
	if err != nil {
		return err
	}
	if err := s.blobs.Set(ctx, common.ProjectRecordKey, b); err != nil {
		return fmt.Errorf("save project record: %w", err)
	}

	s.state = next
	return nil
}

func findProject(snap *models.ProjectSnapshot, id string) (*models.Project, int) {
	for i := range snap.Projects {
		if snap.Projects[i].ID == id {
			return &snap.Projects[i], i
		}
	}
	return nil, -1
}

func findModule(p *models.Project, id string) (*models.Module, int) {
	for i := range p.Modules {
		if p.Modules[i].ID == id {
			return &p.Modules[i], i
		}
	}
	return nil, -1
}

func validModule(progress int, status models.Status) error {
	if progress < 0 || progress > 100 {
		return common.ErrInvalidProgress
	}
	if !status.Valid() {
		return common.ErrInvalidStatus
	}
	return nil
}

// AddProject appends a new project built from d. An empty status means todo.
func (s *Store) AddProject(ctx context.Context, d models.ProjectDraft) (models.Project, error) {
	if d.Status == "" {
		d.Status = models.StatusTodo
	}
	if !d.Status.Valid() {
		return models.Project{}, common.ErrInvalidStatus
	}
	for _, md := range d.Modules {
		if err := validModule(md.Progress, defaultStatus(md.Status)); err != nil {
			return models.Project{}, err
		}
	}

	var created models.Project
	err := s.mutate(ctx, func(next *models.ProjectSnapshot) error {
		now := s.timestamp()
		p := models.Project{
			ID:          s.newID(),
			Name:        d.Name,
			Description: d.Description,
			Status:      d.Status,
			Modules:     make([]models.Module, 0, len(d.Modules)),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if d.Deadline != nil {
			dl := *d.Deadline
			p.Deadline = &dl
		}
		for _, md := range d.Modules {
			p.Modules = append(p.Modules, s.newModule(md))
		}
		next.Projects = append(next.Projects, p)
		created = p.Clone()
		return nil
	})
	if err != nil {
		return models.Project{}, err
	}

	s.log.Debug(ctx, "project added", "project_id", created.ID, "modules", len(created.Modules))
	return created, nil
}

func defaultStatus(st models.Status) models.Status {
	if st == "" {
		return models.StatusTodo
	}
	return st
}

func (s *Store) newModule(d models.ModuleDraft) models.Module {
	return models.Module{
		ID:        s.newID(),
		Name:      d.Name,
		Progress:  d.Progress,
		Status:    defaultStatus(d.Status),
		Documents: []models.Document{},
	}
}

// UpdateProject applies u to the project and refreshes its UpdatedAt.
func (s *Store) UpdateProject(ctx context.Context, id string, u models.ProjectUpdate) error {
	if u.Status != nil && !u.Status.Valid() {
		return common.ErrInvalidStatus
	}

	return s.mutate(ctx, func(next *models.ProjectSnapshot) error {
		p, _ := findProject(next, id)
		if p == nil {
			return common.ErrNotFound
		}
		if u.Name != nil {
			p.Name = *u.Name
		}
		if u.Description != nil {
			p.Description = *u.Description
		}
		if u.Status != nil {
			p.Status = *u.Status
		}
		switch {
		case u.ClearDeadline:
			p.Deadline = nil
		case u.Deadline != nil:
			dl := *u.Deadline
			p.Deadline = &dl
		}
		p.UpdatedAt = s.timestamp()
		return nil
	})
}

// DeleteProject removes the project together with its modules and documents.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(next *models.ProjectSnapshot) error {
		_, i := findProject(next, id)
		if i < 0 {
			return common.ErrNotFound
		}
		next.Projects = append(next.Projects[:i], next.Projects[i+1:]...)
		return nil
	})
	if err == nil {
		s.log.Debug(ctx, "project deleted", "project_id", id)
	}
	return err
}

// AddModule appends a module to the project. An empty status means todo.
func (s *Store) AddModule(ctx context.Context, projectID string, d models.ModuleDraft) (models.Module, error) {
	if err := validModule(d.Progress, defaultStatus(d.Status)); err != nil {
		return models.Module{}, err
	}

	var created models.Module
	err := s.mutate(ctx, func(next *models.ProjectSnapshot) error {
		p, _ := findProject(next, projectID)
		if p == nil {
			return common.ErrNotFound
		}
		m := s.newModule(d)
		p.Modules = append(p.Modules, m)
		p.UpdatedAt = s.timestamp()
		created = m.Clone()
		return nil
	})
	if err != nil {
		return models.Module{}, err
	}
	return created, nil
}

// UpdateModule applies u to the module as given. It does not couple progress
// and status; see ApplyProgress and ApplyStatus.
func (s *Store) UpdateModule(ctx context.Context, projectID, moduleID string, u models.ModuleUpdate) error {
	if u.Progress != nil && (*u.Progress < 0 || *u.Progress > 100) {
		return common.ErrInvalidProgress
	}
	if u.Status != nil && !u.Status.Valid() {
		return common.ErrInvalidStatus
	}

	return s.mutate(ctx, func(next *models.ProjectSnapshot) error {
		p, _ := findProject(next, projectID)
		if p == nil {
			return common.ErrNotFound
		}
		m, _ := findModule(p, moduleID)
		if m == nil {
			return common.ErrNotFound
		}
		if u.Name != nil {
			m.Name = *u.Name
		}
		if u.Progress != nil {
			m.Progress = *u.Progress
		}
		if u.Status != nil {
			m.Status = *u.Status
		}
		p.UpdatedAt = s.timestamp()
		return nil
	})
}

// DeleteModule removes the module and its documents.
func (s *Store) DeleteModule(ctx context.Context, projectID, moduleID string) error {
	return s.mutate(ctx, func(next *models.ProjectSnapshot) error {
		p, _ := findProject(next, projectID)
		if p == nil {
			return common.ErrNotFound
		}
		_, i := findModule(p, moduleID)
		if i < 0 {
			return common.ErrNotFound
		}
		p.Modules = append(p.Modules[:i], p.Modules[i+1:]...)
		p.UpdatedAt = s.timestamp()
		return nil
	})
}

// AddDocument attaches a document to the module. Content is stored verbatim.
func (s *Store) AddDocument(ctx context.Context, projectID, moduleID string, d models.DocumentDraft) (models.Document, error) {
	var created models.Document
	err := s.mutate(ctx, func(next *models.ProjectSnapshot) error {
		p, _ := findProject(next, projectID)
		if p == nil {
			return common.ErrNotFound
		}
		m, _ := findModule(p, moduleID)
		if m == nil {
			return common.ErrNotFound
		}
		now := s.timestamp()
		created = models.Document{
			ID:         s.newID(),
			Name:       d.Name,
			Size:       d.Size,
			Type:       d.Type,
			Content:    d.Content,
			UploadedAt: now,
		}
		m.Documents = append(m.Documents, created)
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.Document{}, err
	}

	s.log.Debug(ctx, "document attached", "project_id", projectID, "module_id", moduleID, "document_id", created.ID, "size", created.Size)
	return created, nil
}

// DeleteDocument removes a document from the module.
func (s *Store) DeleteDocument(ctx context.Context, projectID, moduleID, documentID string) error {
	return s.mutate(ctx, func(next *models.ProjectSnapshot) error {
		p, _ := findProject(next, projectID)
		if p == nil {
			return common.ErrNotFound
		}
		m, _ := findModule(p, moduleID)
		if m == nil {
			return common.ErrNotFound
		}
		for i, d := range m.Documents {
			if d.ID == documentID {
				m.Documents = append(m.Documents[:i], m.Documents[i+1:]...)
				p.UpdatedAt = s.timestamp()
				return nil
			}
		}
		return common.ErrNotFound
	})
}

// ProjectProgress returns the derived progress of the project, or 0 when it
// does not exist or has no modules.
func (s *Store) ProjectProgress(projectID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, _ := findProject(&s.state, projectID)
	if p == nil {
		return 0
	}
	return Progress(*p)
}

// Projects returns a deep copy of all projects in insertion order.
func (s *Store) Projects() []models.Project {
	return s.Snapshot().Projects
}

// Project returns a copy of the project with the given id.
func (s *Store) Project(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, _ := findProject(&s.state, id)
	if p == nil {
		return models.Project{}, false
	}
	return p.Clone(), true
}

// Document looks up a single document.
func (s *Store) Document(projectID, moduleID, documentID string) (models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, _ := findProject(&s.state, projectID)
	if p == nil {
		return models.Document{}, false
	}
	m, _ := findModule(p, moduleID)
	if m == nil {
		return models.Document{}, false
	}
	for _, d := range m.Documents {
		if d.ID == documentID {
			return d, true
		}
	}
	return models.Document{}, false
}

// Snapshot returns a deep copy of the project record.
func (s *Store) Snapshot() models.ProjectSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}
