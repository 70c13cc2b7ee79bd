package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/projtrack/internal/models"
	"github.com/dmitrijs2005/projtrack/internal/projects"
)

func (a *App) AddModule(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("addmodule <project>")
	}
	p, err := a.resolveProject(args[0])
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter module name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("module name is required")
	}

	m, err := a.projects.AddModule(ctx, p.ID, models.ModuleDraft{Name: name, Status: models.StatusTodo})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Module %s added to %s\n", m.ID, p.Name)
	return nil
}

// SetProgress moves a module's progress and adjusts its status the way the
// module editor does.
func (a *App) SetProgress(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage("progress <project> <module> <0-100>")
	}
	p, m, err := a.resolveModule(args[0], args[1])
	if err != nil {
		return err
	}
	pct, err := parsePercent(args[2])
	if err != nil {
		return err
	}

	u := projects.ApplyProgress(m, pct)
	if err := a.projects.UpdateModule(ctx, p.ID, m.ID, u); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %d%% (%s), project at %d%%\n", m.Name, pct, u.Status.Label(), a.projects.ProjectProgress(p.ID))
	return nil
}

func (a *App) ModuleStatus(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage("modstatus <project> <module> <status>")
	}
	p, m, err := a.resolveModule(args[0], args[1])
	if err != nil {
		return err
	}
	st, err := parseStatus(args[2])
	if err != nil {
		return err
	}

	if err := a.projects.UpdateModule(ctx, p.ID, m.ID, projects.ApplyStatus(st)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", m.Name, st.Label())
	return nil
}

func (a *App) DeleteModule(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage("delmodule <project> <module>")
	}
	p, m, err := a.resolveModule(args[0], args[1])
	if err != nil {
		return err
	}
	if err := a.projects.DeleteModule(ctx, p.ID, m.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Module %s deleted\n", m.Name)
	return nil
}
