// Package ledger owns the canonical in-memory snapshot of one user's
// transactions and categories and keeps it synchronized with the remote
// store. It is the only stateful module: views read derived data from it and
// invoke its mutation operations.
//
// One Core instance exists per app session. It must be constructed
// explicitly and re-initialized on identity changes; there is no ambient
// global state.
package ledger

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/meslee/moneyledger/internal/logging"
	"github.com/meslee/moneyledger/internal/models"
	"github.com/meslee/moneyledger/internal/period"
	"github.com/meslee/moneyledger/internal/settings"
	"github.com/meslee/moneyledger/internal/store"
)

// State is the lifecycle of the core's snapshot.
type State int

const (
	// StateUninitialized: no authenticated identity; collections are empty.
	StateUninitialized State = iota
	// StateLoading: the initial load is in flight.
	StateLoading
	// StateReady: the snapshot reflects the remote store.
	StateReady
	// StateDegraded: operational, but serving in-memory defaults after a
	// fetch or seeding failure. Recovery is an explicit refresh.
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	default:
		return "uninitialized"
	}
}

// Snapshot is an atomic copy of the core's published state.
type Snapshot struct {
	User         *models.User
	Transactions []models.Transaction
	Categories   []models.Category
	State        State
	// Notice is a non-blocking user-facing message set on degraded
	// initialization ("please refresh"), empty otherwise.
	Notice string
}

// Core is the ledger state core.
//
// Collections are held as ordered maps (order slice + map keyed by id) so
// replace/delete by id is O(1) and duplicate ids cannot accumulate, while
// reads still see a stable ordering.
type Core struct {
	gateway  store.Gateway
	settings *settings.Store
	period   *period.Selector
	logger   logging.Logger

	mu      sync.RWMutex
	state   State
	notice  string
	user    *models.User
	txOrder []string
	txByID  map[string]models.Transaction
	// catOrder preserves remote creation order (oldest first).
	catOrder []string
	catByID  map[string]models.Category
	subs     []func()

	// Seeding desynchronization delay; bounds are configurable and tests
	// zero them. sleep is a seam.
	jitterMin time.Duration
	jitterMax time.Duration
	sleep     func(time.Duration)
}

func NewCore(gw store.Gateway, st *settings.Store, sel *period.Selector, logger logging.Logger) *Core {
	c := &Core{
		gateway:   gw,
		settings:  st,
		period:    sel,
		logger:    logger.With("component", "ledger"),
		jitterMin: 100 * time.Millisecond,
		jitterMax: 600 * time.Millisecond,
		sleep:     time.Sleep,
	}
	c.resetLocked()
	return c
}

// SetSeedJitter overrides the seeding desynchronization bounds.
func (c *Core) SetSeedJitter(min, max time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jitterMin, c.jitterMax = min, max
}

func (c *Core) jitter() time.Duration {
	c.mu.RLock()
	min, max := c.jitterMin, c.jitterMax
	c.mu.RUnlock()

	if max <= min {
		return min
	}
	return min + rand.N(max-min)
}

// resetLocked empties the snapshot. Requires c.mu held (or exclusive access
// during construction).
func (c *Core) resetLocked() {
	c.state = StateUninitialized
	c.notice = ""
	c.user = nil
	c.txOrder = nil
	c.txByID = map[string]models.Transaction{}
	c.catOrder = nil
	c.catByID = map[string]models.Category{}
}

// State returns the current lifecycle state.
func (c *Core) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Notice returns the non-blocking degraded-state notice, if any.
func (c *Core) Notice() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notice
}

// User returns the identity the snapshot belongs to, nil when uninitialized.
func (c *Core) User() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Transactions returns the transaction list, newest first.
func (c *Core) Transactions() []models.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transactionsLocked()
}

func (c *Core) transactionsLocked() []models.Transaction {
	result := make([]models.Transaction, 0, len(c.txOrder))
	for _, id := range c.txOrder {
		result = append(result, c.txByID[id])
	}
	return result
}

// Categories returns the category list in remote creation order.
func (c *Core) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categoriesLocked()
}

func (c *Core) categoriesLocked() []models.Category {
	result := make([]models.Category, 0, len(c.catOrder))
	for _, id := range c.catOrder {
		result = append(result, c.catByID[id])
	}
	return result
}

// ActiveCategories returns the active categories of the given type, the
// choice set for new transactions. Inactive categories stay out of it but
// remain in Categories for historical display.
func (c *Core) ActiveCategories(t models.TransactionType) []models.Category {
	var result []models.Category
	for _, cat := range c.Categories() {
		if cat.Type == t && cat.IsActive {
			result = append(result, cat)
		}
	}
	return result
}

// CategoryByID resolves a category reference. ok is false for dangling
// references; callers render those as uncategorized, never as an error.
func (c *Core) CategoryByID(id string) (models.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cat, ok := c.catByID[id]
	return cat, ok
}

// MonthlyTransactions returns the transactions whose date falls within the
// selected period's calendar month, bounds inclusive. Recomputed on every
// call; no caching.
func (c *Core) MonthlyTransactions() []models.Transaction {
	start, end := c.period.Bounds()

	var result []models.Transaction
	for _, t := range c.Transactions() {
		if !t.Date.Before(start) && !t.Date.After(end) {
			result = append(result, t)
		}
	}
	return result
}

// Snapshot returns an atomic copy of the published state.
func (c *Core) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Transactions: c.transactionsLocked(),
		Categories:   c.categoriesLocked(),
		State:        c.state,
		Notice:       c.notice,
	}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}

// Subscribe registers fn to run after every published snapshot change.
func (c *Core) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// notify runs subscribers outside the lock.
func (c *Core) notify() {
	c.mu.RLock()
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}
