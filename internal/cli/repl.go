package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Categories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context, args []string) error
	Month(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Settings(ctx context.Context, args []string) error
	Backup(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the ledger CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Signed out:
//	  - help           - show available commands
//	  - login          - authenticate
//	  - exit | quit    - leave the program
//
//	Signed in:
//	  - help           - show available commands
//	  - list           - list the selected month's transactions
//	  - add            - add a transaction (interactive)
//	  - del <id>       - delete a transaction
//	  - cats           - list categories
//	  - addcat         - add a category (interactive)
//	  - delcat <id>    - delete a category
//	  - month [next|prev] - show or shift the selected month
//	  - stats          - monthly summary and expense trend
//	  - settings       - show or change preferences
//	  - refresh        - re-run the initial load
//	  - backup         - export the ledger to object storage
//	  - logout         - sign out
//	  - exit | quit    - leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ml> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, del, cats, addcat, delcat, month, stats, settings, refresh, backup, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx)

		case "del":
			_ = a.Delete(ctx, args)

		case "cats", "categories":
			_ = a.Categories(ctx)

		case "addcat":
			_ = a.AddCategory(ctx)

		case "delcat":
			_ = a.DeleteCategory(ctx, args)

		case "month":
			_ = a.Month(ctx, args)

		case "stats":
			_ = a.Stats(ctx)

		case "settings":
			_ = a.Settings(ctx, args)

		case "backup":
			_ = a.Backup(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
