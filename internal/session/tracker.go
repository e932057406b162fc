// Package session tracks the current authenticated identity: one initial
// session fetch on start, then push notifications on every auth transition.
package session

import (
	"context"
	"sync"

	"github.com/meslee/moneyledger/internal/auth"
	"github.com/meslee/moneyledger/internal/models"
)

// Tracker holds the current user and fans session transitions out to
// subscribers. A nil user means unauthenticated, which is a valid state.
//
// Transitions are delivered for every auth event including token refreshes,
// so subscribers that trigger data loads must compare identity (SameUser)
// before reacting.
type Tracker struct {
	mu      sync.RWMutex
	current *models.User
	subs    []func(*models.User)
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Start retrieves the current session exactly once and registers for
// subsequent change events from the auth service.
func (t *Tracker) Start(ctx context.Context, svc auth.Service) error {
	sess, err := svc.CurrentSession(ctx)
	if err != nil {
		return err
	}

	if sess != nil {
		user := sess.User
		t.set(&user)
	}

	svc.OnChange(t.Notify)
	return nil
}

// Current returns the authenticated user, or nil when unauthenticated.
func (t *Tracker) Current() *models.User {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Notify records a session transition and informs subscribers.
func (t *Tracker) Notify(u *models.User) {
	t.set(u)

	t.mu.RLock()
	subs := make([]func(*models.User), len(t.subs))
	copy(subs, t.subs)
	t.mu.RUnlock()

	for _, fn := range subs {
		fn(u)
	}
}

// OnChange registers a subscriber for session transitions.
func (t *Tracker) OnChange(fn func(*models.User)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs = append(t.subs, fn)
}

func (t *Tracker) set(u *models.User) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = u
}

// SameUser reports whether both values name the same identity. Two nils are
// the same (still unauthenticated).
func SameUser(a, b *models.User) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}
