package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/projtrack/internal/models"
)

// minPasswordLen is the shortest password accepted for new accounts.
const minPasswordLen = 6

var errSelfDelete = errors.New("cannot delete the account you are logged in with")

func (a *App) ListUsers(_ context.Context) error {
	cur, _ := a.identity.CurrentUser()

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tROLE\t")
	for _, u := range a.identity.Users() {
		marker := ""
		if u.ID == cur.ID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, marker)
	}
	return tw.Flush()
}

// AddUser prompts for a username, password and role and creates the account.
func (a *App) AddUser(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	if username == "" {
		return errors.New("username is required")
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	roleText, err := getSimpleText(a.reader, "Enter role (admin/viewer) [viewer]", a.out)
	if err != nil {
		return err
	}
	role := models.RoleViewer
	if roleText != "" {
		if role, err = parseRole(roleText); err != nil {
			return err
		}
	}

	ok, err := a.identity.AddUser(ctx, username, string(password), role)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("username %q already exists", username)
	}

	fmt.Fprintf(a.out, "User %s added\n", username)
	return nil
}

func (a *App) SetRole(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage("setrole <user> <admin|viewer>")
	}
	u, err := a.resolveUser(args[0])
	if err != nil {
		return err
	}
	role, err := parseRole(args[1])
	if err != nil {
		return err
	}
	if err := a.identity.UpdateUser(ctx, u.ID, models.UserUpdate{Role: &role}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", u.Username, role)
	return nil
}

func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("deluser <user>")
	}
	u, err := a.resolveUser(args[0])
	if err != nil {
		return err
	}
	if cur, ok := a.identity.CurrentUser(); ok && cur.ID == u.ID {
		return errSelfDelete
	}
	if err := a.identity.DeleteUser(ctx, u.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s deleted\n", u.Username)
	return nil
}
