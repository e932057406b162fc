// Package settings holds the per-user preferences (language, date format,
// currency). Every update is written through to the local durable cache and
// then mirrored into the remote profile record on a best-effort basis: local
// state is the source of truth for the current session, the remote copy only
// provides cross-session continuity.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/meslee/moneyledger/internal/common"
	"github.com/meslee/moneyledger/internal/localcache"
	"github.com/meslee/moneyledger/internal/logging"
	"github.com/meslee/moneyledger/internal/models"
	"github.com/meslee/moneyledger/internal/store"
)

var ErrInvalidValue = errors.New("invalid settings value")

// Store is the settings store. One instance per app session.
type Store struct {
	mu      sync.RWMutex
	current models.Settings

	cache    localcache.Repository
	profiles store.Profiles
	logger   logging.Logger

	// userFn resolves the identity the remote mirror is keyed by; it may
	// return nil while unauthenticated, which skips the remote upsert.
	userFn func() *models.User

	// wg tracks in-flight remote upserts so tests can wait for them.
	wg sync.WaitGroup
}

func NewStore(cache localcache.Repository, profiles store.Profiles, userFn func() *models.User, logger logging.Logger) *Store {
	return &Store{
		current:  models.DefaultSettings(),
		cache:    cache,
		profiles: profiles,
		userFn:   userFn,
		logger:   logger.With("component", "settings"),
	}
}

// Current returns the settings snapshot.
func (s *Store) Current() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LoadLocal hydrates the store from the local cache. Called at startup,
// before the remote profile resolves, so the first render uses the last
// known preferences. Unknown or missing cached values keep the defaults.
func (s *Store) LoadLocal(ctx context.Context) error {
	lang, err := s.cache.Get(ctx, common.CacheKeyLanguage)
	if err != nil {
		return fmt.Errorf("loading cached settings: %w", err)
	}
	format, err := s.cache.Get(ctx, common.CacheKeyDateFormat)
	if err != nil {
		return fmt.Errorf("loading cached settings: %w", err)
	}
	currency, err := s.cache.Get(ctx, common.CacheKeyCurrency)
	if err != nil {
		return fmt.Errorf("loading cached settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v := models.Language(lang); v.Valid() {
		s.current.Language = v
	}
	if v := models.DateFormat(format); v.Valid() {
		s.current.DateFormat = v
	}
	if v := models.Currency(currency); v.Valid() {
		s.current.Currency = v
	}
	return nil
}

// ApplyProfile lets the remote profile win over the locally cached values
// and rewrites the cache to match.
func (s *Store) ApplyProfile(ctx context.Context, p models.Profile) {
	s.mu.Lock()
	if p.Language.Valid() {
		s.current.Language = p.Language
	}
	if p.DateFormat.Valid() {
		s.current.DateFormat = p.DateFormat
	}
	if p.Currency.Valid() {
		s.current.Currency = p.Currency
	}
	current := s.current
	s.mu.Unlock()

	s.writeCache(ctx, common.CacheKeyLanguage, string(current.Language))
	s.writeCache(ctx, common.CacheKeyDateFormat, string(current.DateFormat))
	s.writeCache(ctx, common.CacheKeyCurrency, string(current.Currency))
}

// SetLanguage updates the language preference.
func (s *Store) SetLanguage(ctx context.Context, v models.Language) error {
	if !v.Valid() {
		return fmt.Errorf("%w: language %q", ErrInvalidValue, v)
	}
	s.mu.Lock()
	s.current.Language = v
	s.mu.Unlock()

	s.writeCache(ctx, common.CacheKeyLanguage, string(v))
	s.syncRemote(ctx)
	return nil
}

// SetDateFormat updates the date display pattern.
func (s *Store) SetDateFormat(ctx context.Context, v models.DateFormat) error {
	if !v.Valid() {
		return fmt.Errorf("%w: date format %q", ErrInvalidValue, v)
	}
	s.mu.Lock()
	s.current.DateFormat = v
	s.mu.Unlock()

	s.writeCache(ctx, common.CacheKeyDateFormat, string(v))
	s.syncRemote(ctx)
	return nil
}

// SetCurrency updates the currency preference.
func (s *Store) SetCurrency(ctx context.Context, v models.Currency) error {
	if !v.Valid() {
		return fmt.Errorf("%w: currency %q", ErrInvalidValue, v)
	}
	s.mu.Lock()
	s.current.Currency = v
	s.mu.Unlock()

	s.writeCache(ctx, common.CacheKeyCurrency, string(v))
	s.syncRemote(ctx)
	return nil
}

// FormatMoney renders an amount in the selected currency.
func (s *Store) FormatMoney(amount float64) string {
	return models.FormatMoney(amount, s.Current().Currency)
}

// FormatDate renders a date in the selected display pattern.
func (s *Store) FormatDate(t time.Time) string {
	return s.Current().DateFormat.Format(t)
}

func (s *Store) writeCache(ctx context.Context, key, value string) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Error(ctx, "writing settings cache", "key", key, "error", err)
	}
}

// syncRemote fires a best-effort upsert of the full settings triple into the
// remote profile record. Failures are logged, never surfaced.
func (s *Store) syncRemote(ctx context.Context) {
	user := s.userFn()
	if user == nil {
		return
	}

	row := store.ProfileToRow(models.Profile{
		UserID:     user.ID,
		Language:   s.Current().Language,
		Currency:   s.Current().Currency,
		DateFormat: s.Current().DateFormat,
		UpdatedAt:  time.Now(),
	})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.profiles.Upsert(context.WithoutCancel(ctx), row); err != nil {
			s.logger.Warn(ctx, "profile sync failed", "error", err)
		}
	}()
}

// Wait blocks until in-flight remote upserts finish. Used in tests and on
// shutdown.
func (s *Store) Wait() {
	s.wg.Wait()
}
