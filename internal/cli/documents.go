package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/projtrack/internal/attachments"
)

// Attach reads a local file and stores it on the module.
func (a *App) Attach(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errUsage("attach <project> <module> <path>")
	}
	p, m, err := a.resolveModule(args[0], args[1])
	if err != nil {
		return err
	}

	draft, err := attachments.FromFile(strings.Join(args[2:], " "))
	if err != nil {
		return err
	}

	d, err := a.projects.AddDocument(ctx, p.ID, m.ID, draft)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "document attached", "project_id", p.ID, "module_id", m.ID, "document_id", d.ID)
	fmt.Fprintf(a.out, "Attached %s (%s) as %s\n", d.Name, attachments.FormatSize(d.Size), d.ID)
	return nil
}

// Download writes a stored document into the download directory.
func (a *App) Download(_ context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage("download <project> <module> <doc>")
	}
	_, _, d, err := a.resolveDocument(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	path, err := attachments.Export(a.downloadDir, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}

func (a *App) Detach(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage("detach <project> <module> <doc>")
	}
	p, m, d, err := a.resolveDocument(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if err := a.projects.DeleteDocument(ctx, p.ID, m.ID, d.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %s\n", d.Name)
	return nil
}
