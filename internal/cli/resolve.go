package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/projtrack/internal/common"
	"github.com/dmitrijs2005/projtrack/internal/models"
)

// resolve finds the item whose id equals ref or, failing that, the single
// item whose id starts with ref.
func resolve[T any](items []T, id func(T) string, kind, ref string) (T, error) {
	var (
		zero    T
		matches []T
	)
	for _, it := range items {
		if id(it) == ref {
			return it, nil
		}
		if ref != "" && strings.HasPrefix(id(it), ref) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return zero, fmt.Errorf("%s %q: %w", kind, ref, common.ErrNotFound)
	default:
		return zero, fmt.Errorf("%s %q: %w", kind, ref, errAmbiguous)
	}
}

func (a *App) resolveProject(ref string) (models.Project, error) {
	return resolve(a.projects.Projects(), func(p models.Project) string { return p.ID }, "project", ref)
}

func (a *App) resolveModule(projectRef, moduleRef string) (models.Project, models.Module, error) {
	p, err := a.resolveProject(projectRef)
	if err != nil {
		return models.Project{}, models.Module{}, err
	}
	m, err := resolve(p.Modules, func(m models.Module) string { return m.ID }, "module", moduleRef)
	if err != nil {
		return models.Project{}, models.Module{}, err
	}
	return p, m, nil
}

func (a *App) resolveDocument(projectRef, moduleRef, docRef string) (models.Project, models.Module, models.Document, error) {
	p, m, err := a.resolveModule(projectRef, moduleRef)
	if err != nil {
		return models.Project{}, models.Module{}, models.Document{}, err
	}
	d, err := resolve(m.Documents, func(d models.Document) string { return d.ID }, "document", docRef)
	if err != nil {
		return models.Project{}, models.Module{}, models.Document{}, err
	}
	return p, m, d, nil
}

func (a *App) resolveUser(ref string) (models.User, error) {
	users := a.identity.Users()
	for _, u := range users {
		if u.Username == ref {
			return u, nil
		}
	}
	return resolve(users, func(u models.User) string { return u.ID }, "user", ref)
}

func parseStatus(s string) (models.Status, error) {
	st := models.Status(strings.ToLower(s))
	if !st.Valid() {
		return "", fmt.Errorf("%w %q (want todo, in-progress, completed or on-hold)", common.ErrInvalidStatus, s)
	}
	return st, nil
}

func parseRole(s string) (models.Role, error) {
	r := models.Role(strings.ToLower(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w %q (want admin or viewer)", common.ErrInvalidRole, s)
	}
	return r, nil
}
