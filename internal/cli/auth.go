package cli

import (
	"context"
	"errors"
	"os"

	"github.com/meslee/moneyledger/internal/common"
)

// Login prompts for credentials and signs in. A successful sign-in fires a
// session transition, which initializes the ledger core for the new identity
// before this returns.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	sess, err := a.auth.SignIn(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Invalid email or password")
		} else {
			printlnFn("Sign-in failed:", err)
		}
		return err
	}

	printlnFn("Signed in as", sess.User.Email)
	if notice := a.core.Notice(); notice != "" {
		printlnFn("Notice:", notice)
	}
	return nil
}

// Logout signs out and empties the in-memory ledger.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		printlnFn("Sign-out failed:", err)
		return err
	}
	printlnFn("Signed out")
	return nil
}

// Refresh re-runs the initial load for the current identity. This is the
// recovery path out of a degraded state.
func (a *App) Refresh(ctx context.Context) error {
	user := a.tracker.Current()
	if user == nil {
		printlnFn("Not signed in")
		return common.ErrNoSession
	}

	if err := a.core.Init(ctx, user); err != nil {
		printlnFn("Refresh failed:", err)
		return err
	}
	printlnFn("Refreshed,", a.core.State().String())
	return nil
}
