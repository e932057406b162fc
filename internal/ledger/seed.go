package ledger

import (
	"context"
	"fmt"

	"github.com/meslee/moneyledger/internal/common"
	"github.com/meslee/moneyledger/internal/models"
	"github.com/meslee/moneyledger/internal/store"
)

// seedCategories populates an empty remote category collection, once per
// user. The returned list is always usable; a non-nil error means the core
// is serving the in-memory fallback and should surface the refresh notice.
//
// Two near-simultaneous initializations of the same account (duplicate app
// instances) must not both insert. The jittered sleep plus re-count narrows
// that window: whoever re-checks later sees the winner's rows and refetches
// instead of inserting. The window is narrowed, not closed: two
// initializations that both pass the re-check before either insert commits
// will still both insert. The insert is a single statement, so the worst
// case is a doubled seed set.
func (c *Core) seedCategories(ctx context.Context, user *models.User, hasHistory bool) ([]models.Category, error) {
	// A legacy account (transactions exist, categories don't) gets the
	// localized default set its transactions were recorded against; a
	// brand-new account gets the starter set.
	seed := models.StarterCategories()
	if hasHistory {
		seed = models.LegacyDefaultCategories()
	}

	c.sleep(c.jitter())

	count, err := c.gateway.Categories().CountByUser(ctx, user.ID)
	if err != nil {
		c.logger.Error(ctx, "seed re-check failed", "user", user.ID, "error", err)
		return models.LegacyDefaultCategories(), fmt.Errorf("%w: %v", common.ErrSeedingFailed, err)
	}

	if count > 0 {
		// A concurrent initialization won the race; never insert on top.
		c.logger.Info(ctx, "seed race lost, refetching categories", "user", user.ID, "count", count)
		rows, err := c.gateway.Categories().ListByUser(ctx, user.ID)
		if err != nil {
			return models.LegacyDefaultCategories(), fmt.Errorf("%w: %v", common.ErrSeedingFailed, err)
		}
		categories := make([]models.Category, 0, len(rows))
		for _, r := range rows {
			categories = append(categories, store.CategoryFromRow(r))
		}
		return categories, nil
	}

	rows := make([]store.CategoryRow, 0, len(seed))
	for _, cat := range seed {
		row := store.CategoryToRow(cat, user.ID)
		// Strip the bundled id so the store assigns fresh ones.
		row.ID = ""
		rows = append(rows, row)
	}

	inserted, err := c.gateway.Categories().InsertMany(ctx, rows)
	if err != nil {
		c.logger.Error(ctx, "seed insert failed", "user", user.ID, "error", err)
		return models.LegacyDefaultCategories(), fmt.Errorf("%w: %v", common.ErrSeedingFailed, err)
	}

	// The returned rows carry the authoritative server-assigned ids.
	categories := make([]models.Category, 0, len(inserted))
	for _, r := range inserted {
		categories = append(categories, store.CategoryFromRow(r))
	}

	c.logger.Info(ctx, "categories seeded", "user", user.ID, "count", len(categories), "legacy", hasHistory)
	return categories, nil
}
