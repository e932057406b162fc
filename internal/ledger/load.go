package ledger

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/meslee/moneyledger/internal/common"
	"github.com/meslee/moneyledger/internal/models"
	"github.com/meslee/moneyledger/internal/session"
	"github.com/meslee/moneyledger/internal/store"
)

// NoticeRefresh is the non-blocking message shown when initialization left
// the core degraded.
const NoticeRefresh = "initialization failed, please refresh"

// HandleSessionChange reacts to an auth transition. Redundant notifications
// carrying the same identity (token refresh) are ignored; a genuine identity
// change re-initializes the core for the new user, and a sign-out empties it.
func (c *Core) HandleSessionChange(ctx context.Context, user *models.User) {
	if session.SameUser(c.User(), user) {
		return
	}
	if err := c.Init(ctx, user); err != nil {
		c.logger.Error(ctx, "initialization after session change failed", "error", err)
	}
}

// Init performs the initial load for the given identity:
//
//  1. transactions and categories are fetched concurrently and translated to
//     the internal schema;
//  2. a category transport failure falls back to the built-in legacy set
//     (in-memory only) and leaves the core degraded but usable;
//  3. an empty category collection triggers the seeding protocol;
//  4. the profile record is fetched or created; an existing profile
//     overrides locally cached settings;
//  5. the new {user, transactions, categories} snapshot is published
//     atomically and the state becomes ready (or degraded).
//
// With a nil user the core resets to uninitialized with empty collections.
// Init never retries; recovery from a degraded state is the caller's
// explicit refresh.
func (c *Core) Init(ctx context.Context, user *models.User) error {
	if user == nil {
		c.mu.Lock()
		c.resetLocked()
		c.mu.Unlock()
		c.notify()
		return nil
	}

	c.mu.Lock()
	c.state = StateLoading
	c.notice = ""
	c.mu.Unlock()
	c.notify()

	var (
		transactions []models.Transaction
		categories   []models.Category
		catErr       error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := c.gateway.Transactions().ListByUser(gctx, user.ID)
		if err != nil {
			return fmt.Errorf("fetching transactions: %w", err)
		}
		transactions = make([]models.Transaction, 0, len(rows))
		for _, r := range rows {
			transactions = append(transactions, store.TransactionFromRow(r))
		}
		return nil
	})
	g.Go(func() error {
		rows, err := c.gateway.Categories().ListByUser(gctx, user.ID)
		if err != nil {
			// Transport failure here is degraded-but-usable, not fatal.
			catErr = err
			return nil
		}
		categories = make([]models.Category, 0, len(rows))
		for _, r := range rows {
			categories = append(categories, store.CategoryFromRow(r))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		c.logger.Error(ctx, "initial load failed", "user", user.ID, "error", err)
		c.publish(user, nil, nil, StateDegraded, NoticeRefresh)
		return err
	}

	degraded := false
	notice := ""

	switch {
	case catErr != nil:
		c.logger.Error(ctx, "category fetch failed, using built-in defaults", "user", user.ID, "error", catErr)
		categories = models.LegacyDefaultCategories()
		degraded = true
		notice = NoticeRefresh

	case len(categories) == 0:
		seeded, err := c.seedCategories(ctx, user, len(transactions) > 0)
		categories = seeded
		if err != nil {
			degraded = true
			notice = NoticeRefresh
		}
	}

	if err := c.loadProfile(ctx, user); err != nil {
		c.logger.Error(ctx, "profile load failed", "user", user.ID, "error", err)
	}

	state := StateReady
	if degraded {
		state = StateDegraded
	}
	c.publish(user, transactions, categories, state, notice)

	c.logger.Info(ctx, "ledger initialized",
		"user", user.ID,
		"state", state.String(),
		"transactions", len(transactions),
		"categories", len(categories))
	return nil
}

// loadProfile fetches the user's profile, creating it from the current
// settings when absent. An existing profile wins over the locally cached
// settings.
func (c *Core) loadProfile(ctx context.Context, user *models.User) error {
	row, err := c.gateway.Profiles().GetByUser(ctx, user.ID)
	if err == nil {
		c.settings.ApplyProfile(ctx, store.ProfileFromRow(*row))
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	current := c.settings.Current()
	_, err = c.gateway.Profiles().Insert(ctx, store.ProfileToRow(models.Profile{
		UserID:     user.ID,
		Language:   current.Language,
		Currency:   current.Currency,
		DateFormat: current.DateFormat,
	}))
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}
	return nil
}

// publish installs the new snapshot atomically and notifies subscribers.
func (c *Core) publish(user *models.User, transactions []models.Transaction, categories []models.Category, state State, notice string) {
	c.mu.Lock()
	c.resetLocked()

	u := *user
	c.user = &u
	c.state = state
	c.notice = notice
	for _, t := range transactions {
		c.txOrder = append(c.txOrder, t.ID)
		c.txByID[t.ID] = t
	}
	for _, cat := range categories {
		c.catOrder = append(c.catOrder, cat.ID)
		c.catByID[cat.ID] = cat
	}
	c.mu.Unlock()

	c.notify()
}
