package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/projtrack/internal/attachments"
	"github.com/dmitrijs2005/projtrack/internal/models"
	"github.com/dmitrijs2005/projtrack/internal/projects"
)

// List prints projects, optionally filtered. A trailing argument that names a
// status filters by it; the remaining arguments form the search query.
func (a *App) List(_ context.Context, args []string) error {
	var status models.Status
	if n := len(args); n > 0 {
		if st := models.Status(strings.ToLower(args[n-1])); st.Valid() {
			status = st
			args = args[:n-1]
		}
	}
	query := strings.Join(args, " ")

	ps := projects.Filter(a.projects.Projects(), query, status)
	if len(ps) == 0 {
		fmt.Fprintln(a.out, "No projects found")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tPROGRESS\tMODULES\tDEADLINE")
	for _, p := range ps {
		deadline := "-"
		if p.Deadline != nil {
			deadline = formatDate(*p.Deadline)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\t%d\t%s\n",
			p.ID, p.Name, p.Status.Label(), a.projects.ProjectProgress(p.ID), len(p.Modules), deadline)
	}
	return tw.Flush()
}

func (a *App) Show(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("show <project>")
	}
	p, err := a.resolveProject(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s [%s]\n", p.Name, p.Status.Label())
	fmt.Fprintf(a.out, "  id:       %s\n", p.ID)
	if p.Description != "" {
		fmt.Fprintf(a.out, "  about:    %s\n", p.Description)
	}
	fmt.Fprintf(a.out, "  progress: %s\n", progressBar(a.projects.ProjectProgress(p.ID)))
	fmt.Fprintf(a.out, "  created:  %s  updated: %s\n", formatDate(p.CreatedAt), formatDate(p.UpdatedAt))
	if p.Deadline != nil {
		fmt.Fprintf(a.out, "  deadline: %s\n", formatDate(*p.Deadline))
	}

	if len(p.Modules) == 0 {
		fmt.Fprintln(a.out, "  no modules")
		return nil
	}
	fmt.Fprintln(a.out, "  modules:")
	for _, m := range p.Modules {
		fmt.Fprintf(a.out, "    %s  %-24s %-12s %s\n", m.ID, m.Name, m.Status.Label(), progressBar(m.Progress))
		for _, d := range m.Documents {
			fmt.Fprintf(a.out, "      - %s  %s (%s, %s)\n", d.ID, d.Name, attachments.FormatSize(d.Size), attachments.KindOf(d.Type))
		}
	}
	return nil
}

func (a *App) Stats(_ context.Context) error {
	st := projects.Summarize(a.projects.Projects())
	fmt.Fprintf(a.out, "Projects:    %d\n", st.Total)
	fmt.Fprintf(a.out, "In progress: %d\n", st.InProgress)
	fmt.Fprintf(a.out, "Completed:   %d\n", st.Completed)
	fmt.Fprintf(a.out, "Average:     %d%%\n", st.AverageProgress)
	return nil
}

// AddProject prompts for the project fields and an initial module list.
func (a *App) AddProject(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter project name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("project name is required")
	}

	desc, err := getSimpleText(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}

	statusText, err := getSimpleText(a.reader, "Enter status (todo/in-progress/completed/on-hold) [todo]", a.out)
	if err != nil {
		return err
	}
	status := models.StatusTodo
	if statusText != "" {
		if status, err = parseStatus(statusText); err != nil {
			return err
		}
	}

	deadlineText, err := getSimpleText(a.reader, "Enter deadline (YYYY-MM-DD, empty for none)", a.out)
	if err != nil {
		return err
	}
	deadline, err := parseDeadline(deadlineText)
	if err != nil {
		return err
	}

	names, err := GetLines(a.reader, "Enter module names, one per line", a.out)
	if err != nil {
		return err
	}

	d := models.ProjectDraft{Name: name, Description: desc, Status: status, Deadline: deadline}
	for _, n := range names {
		d.Modules = append(d.Modules, models.ModuleDraft{Name: n, Status: models.StatusTodo})
	}

	p, err := a.projects.AddProject(ctx, d)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "project created", "project_id", p.ID)
	fmt.Fprintf(a.out, "Project %s created with %d modules\n", p.ID, len(p.Modules))
	return nil
}

// EditProject prompts for each field; an empty answer keeps the current value
// and "-" clears the deadline.
func (a *App) EditProject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("editproject <project>")
	}
	p, err := a.resolveProject(args[0])
	if err != nil {
		return err
	}

	var u models.ProjectUpdate

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", p.Name), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		u.Name = &name
	}

	desc, err := getSimpleText(a.reader, fmt.Sprintf("Description [%s]", p.Description), a.out)
	if err != nil {
		return err
	}
	if desc != "" {
		u.Description = &desc
	}

	current := "none"
	if p.Deadline != nil {
		current = formatDate(*p.Deadline)
	}
	deadlineText, err := getSimpleText(a.reader, fmt.Sprintf("Deadline [%s] (YYYY-MM-DD, - to clear)", current), a.out)
	if err != nil {
		return err
	}
	switch deadlineText {
	case "":
	case "-":
		u.ClearDeadline = true
	default:
		if u.Deadline, err = parseDeadline(deadlineText); err != nil {
			return err
		}
	}

	if err := a.projects.UpdateProject(ctx, p.ID, u); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Project updated")
	return nil
}

func (a *App) SetStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage("setstatus <project> <status>")
	}
	p, err := a.resolveProject(args[0])
	if err != nil {
		return err
	}
	st, err := parseStatus(args[1])
	if err != nil {
		return err
	}
	if err := a.projects.UpdateProject(ctx, p.ID, models.ProjectUpdate{Status: &st}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", p.Name, st.Label())
	return nil
}

func (a *App) DeleteProject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("delproject <project>")
	}
	p, err := a.resolveProject(args[0])
	if err != nil {
		return err
	}
	if err := a.projects.DeleteProject(ctx, p.ID); err != nil {
		return err
	}
	a.log.Info(ctx, "project deleted", "project_id", p.ID)
	fmt.Fprintf(a.out, "Project %s deleted\n", p.Name)
	return nil
}

func parsePercent(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil {
		return 0, fmt.Errorf("progress %q is not a number", s)
	}
	return n, nil
}
