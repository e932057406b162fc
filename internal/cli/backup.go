package cli

import (
	"context"

	"github.com/meslee/moneyledger/internal/common"
)

// Backup exports the current ledger snapshot to object storage and prints a
// time-limited download URL.
func (a *App) Backup(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in")
		return common.ErrNoSession
	}

	key, err := a.backup.Export(ctx, a.core.Snapshot())
	if err != nil {
		printlnFn("Backup failed:", err)
		return err
	}

	url, err := a.backup.PresignedGetURL(ctx, key)
	if err != nil {
		printlnFn("Backup stored as", key, "but presigning failed:", err)
		return err
	}

	printlnFn("Backup stored:", key)
	printlnFn("Download URL:", url)
	return nil
}
