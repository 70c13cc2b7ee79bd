package cli

import (
	"context"
	"fmt"
)

// Login prompts for a username and password and starts a session.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	ok, err := a.identity.Login(ctx, username, string(password))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Invalid username or password")
		return nil
	}

	u, _ := a.identity.CurrentUser()
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.Username, u.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.identity.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	u, ok := a.identity.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s) id=%s\n", u.Username, u.Role, u.ID)
	return nil
}
