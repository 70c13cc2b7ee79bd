package models

import "time"

// Status is the manually assigned state of a project or module.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on-hold"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted, StatusOnHold}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Label returns a human readable name for s.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To do"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusOnHold:
		return "On hold"
	}
	return string(s)
}

// Project is the top-level unit of tracked work. Its status is set manually
// and is independent of the progress derived from its modules.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Modules     []Module   `json:"modules"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Module is a sub-unit of a project with its own progress percentage.
type Module struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Progress  int        `json:"progress"`
	Status    Status     `json:"status"`
	Documents []Document `json:"documents"`
}

// Document is a file attachment owned by a module. Content holds the
// base64 encoded payload and is stored and returned unchanged.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ProjectDraft carries the caller supplied fields of a new project.
type ProjectDraft struct {
	Name        string
	Description string
	Status      Status
	Modules     []ModuleDraft
	Deadline    *time.Time
}

// ModuleDraft carries the caller supplied fields of a new module.
type ModuleDraft struct {
	Name     string
	Progress int
	Status   Status
}

// DocumentDraft carries the caller supplied fields of a new document.
type DocumentDraft struct {
	Name    string
	Size    int64
	Type    string
	Content string
}

// ProjectUpdate is a partial project update; nil fields are left unchanged.
// ClearDeadline removes the deadline and takes precedence over Deadline.
type ProjectUpdate struct {
	Name          *string
	Description   *string
	Status        *Status
	Deadline      *time.Time
	ClearDeadline bool
}

// ModuleUpdate is a partial module update; nil fields are left unchanged.
type ModuleUpdate struct {
	Name     *string
	Progress *int
	Status   *Status
}

// ProjectSnapshot is the persisted project record.
type ProjectSnapshot struct {
	Projects []Project `json:"projects"`
}

// Clone returns a deep copy of p.
func (p Project) Clone() Project {
	out := p
	if p.Deadline != nil {
		d := *p.Deadline
		out.Deadline = &d
	}
	out.Modules = make([]Module, len(p.Modules))
	for i, m := range p.Modules {
		out.Modules[i] = m.Clone()
	}
	return out
}

// Clone returns a deep copy of m.
func (m Module) Clone() Module {
	out := m
	out.Documents = make([]Document, len(m.Documents))
	copy(out.Documents, m.Documents)
	return out
}

// Clone returns a deep copy of s.
func (s ProjectSnapshot) Clone() ProjectSnapshot {
	out := ProjectSnapshot{Projects: make([]Project, len(s.Projects))}
	for i, p := range s.Projects {
		out.Projects[i] = p.Clone()
	}
	return out
}
