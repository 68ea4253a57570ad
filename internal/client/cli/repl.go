package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error

	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error

	Events(ctx context.Context, args []string) error
	Event(ctx context.Context, args []string) error
	ExportICS(ctx context.Context, args []string) error
	GoogleLink(ctx context.Context, args []string) error
	Ministries(ctx context.Context) error
	Posts(ctx context.Context, args []string) error
	Post(ctx context.Context, args []string) error
	Sermons(ctx context.Context) error
	Download(ctx context.Context, args []string) error
	Gallery(ctx context.Context) error

	AddEvent(ctx context.Context) error
	EditEvent(ctx context.Context, args []string) error
	DeleteEvent(ctx context.Context, args []string) error
	AddPost(ctx context.Context) error
	DeletePost(ctx context.Context, args []string) error
	AddMinistry(ctx context.Context) error
	DeleteMinistry(ctx context.Context, args []string) error
	UploadPhoto(ctx context.Context, args []string) error
	AddResource(ctx context.Context, args []string) error
	DeleteResource(ctx context.Context, args []string) error
}

func printHelp(a execIface) {
	printlnFn("Browse: events, event <id>, ministries, posts [category], post <slug>, sermons, download <id>, gallery")
	if !a.isLoggedIn() {
		printlnFn("Account: login, register")
	} else {
		printlnFn("Account: whoami, profile, update-profile, passwd, logout")
		printlnFn("Calendar: ical <event-id>, gcal <event-id>")
	}
	if a.isAdmin() {
		printlnFn("Admin: add-event, edit-event <id>, del-event <id>, add-post, del-post <id>, add-ministry, del-ministry <id>,")
		printlnFn("       upload-photo <path>, add-resource <path>, del-resource <id>")
	}
	printlnFn("Other: help, exit")
}

// runREPL starts a read–eval–print loop. It reads a line from the
// provided scanner, parses the first token as the command, and dispatches
// to methods on 'a'. Unknown commands are reported back to the user. The
// loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers
// report their own failures. This keeps the loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("Welcome to ParishPortal (type 'help' for commands)")

	for {
		printlnFn(fmt.Sprintf("pp %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printHelp(a)

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "update-profile":
			_ = a.UpdateProfile(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "events":
			_ = a.Events(ctx, args)

		case "event":
			_ = a.Event(ctx, args)

		case "ical":
			_ = a.ExportICS(ctx, args)

		case "gcal":
			_ = a.GoogleLink(ctx, args)

		case "ministries":
			_ = a.Ministries(ctx)

		case "posts":
			_ = a.Posts(ctx, args)

		case "post":
			_ = a.Post(ctx, args)

		case "sermons":
			_ = a.Sermons(ctx)

		case "download":
			_ = a.Download(ctx, args)

		case "gallery":
			_ = a.Gallery(ctx)

		case "add-event":
			_ = a.AddEvent(ctx)

		case "edit-event":
			_ = a.EditEvent(ctx, args)

		case "del-event":
			_ = a.DeleteEvent(ctx, args)

		case "add-post":
			_ = a.AddPost(ctx)

		case "del-post":
			_ = a.DeletePost(ctx, args)

		case "add-ministry":
			_ = a.AddMinistry(ctx)

		case "del-ministry":
			_ = a.DeleteMinistry(ctx, args)

		case "upload-photo":
			_ = a.UploadPhoto(ctx, args)

		case "add-resource":
			_ = a.AddResource(ctx, args)

		case "del-resource":
			_ = a.DeleteResource(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
