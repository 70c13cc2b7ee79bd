package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/projtrack/internal/common"
)

// execIface defines the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	ListUsers(ctx context.Context) error
	AddUser(ctx context.Context) error
	SetRole(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error

	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	AddProject(ctx context.Context) error
	EditProject(ctx context.Context, args []string) error
	SetStatus(ctx context.Context, args []string) error
	DeleteProject(ctx context.Context, args []string) error

	AddModule(ctx context.Context, args []string) error
	SetProgress(ctx context.Context, args []string) error
	ModuleStatus(ctx context.Context, args []string) error
	DeleteModule(ctx context.Context, args []string) error

	Attach(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Detach(ctx context.Context, args []string) error
}

// adminOnly lists commands that change state; they are refused unless the
// session user is an admin.
var adminOnly = map[string]bool{
	"users": true, "adduser": true, "setrole": true, "deluser": true,
	"addproject": true, "editproject": true, "setstatus": true, "delproject": true,
	"addmodule": true, "progress": true, "modstatus": true, "delmodule": true,
	"attach": true, "detach": true,
}

const (
	helpGuest = "Available commands: login, list [query] [status], show <project>, stats, download <project> <module> <doc>, exit"
	helpUser  = "Available commands: whoami, logout, list [query] [status], show <project>, stats, download <project> <module> <doc>, exit"
	helpAdmin = "Available commands:\n" +
		"  whoami, logout, exit\n" +
		"  users, adduser, setrole <user> <admin|viewer>, deluser <user>\n" +
		"  list [query] [status], show <project>, stats\n" +
		"  addproject, editproject <project>, setstatus <project> <status>, delproject <project>\n" +
		"  addmodule <project>, progress <project> <module> <0-100>, modstatus <project> <module> <status>, delmodule <project> <module>\n" +
		"  attach <project> <module> <path>, download <project> <module> <doc>, detach <project> <module> <doc>"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// Prompts, help and errors go to out.
// The first token is the command, the rest its arguments. The loop exits on
// EOF or when the user types "exit" or "quit". Handler errors are printed and
// the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "pt (%s)> \n", statusFn())
		// handlers prompt on the same reader, so no Scanner buffering here
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if adminOnly[cmd] && !a.isAdmin() {
			fmt.Fprintln(out, "Error:", common.ErrUnauthorized, "(admin login required)")
			continue
		}

		err = nil
		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				fmt.Fprintln(out, helpAdmin)
			case a.isLoggedIn():
				fmt.Fprintln(out, helpUser)
			default:
				fmt.Fprintln(out, helpGuest)
			}

		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)

		case "users":
			err = a.ListUsers(ctx)
		case "adduser":
			err = a.AddUser(ctx)
		case "setrole":
			err = a.SetRole(ctx, args)
		case "deluser":
			err = a.DeleteUser(ctx, args)

		case "l", "list":
			err = a.List(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "stats":
			err = a.Stats(ctx)
		case "addproject":
			err = a.AddProject(ctx)
		case "editproject":
			err = a.EditProject(ctx, args)
		case "setstatus":
			err = a.SetStatus(ctx, args)
		case "delproject":
			err = a.DeleteProject(ctx, args)

		case "addmodule":
			err = a.AddModule(ctx, args)
		case "progress":
			err = a.SetProgress(ctx, args)
		case "modstatus":
			err = a.ModuleStatus(ctx, args)
		case "delmodule":
			err = a.DeleteModule(ctx, args)

		case "attach":
			err = a.Attach(ctx, args)
		case "download":
			err = a.Download(ctx, args)
		case "detach":
			err = a.Detach(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
}

// errUsage is returned when a command gets the wrong arguments.
type errUsage string

func (e errUsage) Error() string { return "usage: " + string(e) }

var errAmbiguous = errors.New("ambiguous id prefix")
