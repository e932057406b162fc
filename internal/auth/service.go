package auth

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/meslee/moneyledger/internal/common"
	"github.com/meslee/moneyledger/internal/dbx"
	"github.com/meslee/moneyledger/internal/localcache"
	"github.com/meslee/moneyledger/internal/models"
)

// Session is an authenticated session as seen by the rest of the system.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         models.User
	ExpiresAt    time.Time
}

// Service defines the auth operations the app needs.
//
// Contract:
//   - CurrentSession: restore the cached session (refreshing if expired);
//     returns (nil, nil) when unauthenticated; absence of a session is a
//     valid state, not an error.
//   - SignIn / SignOut / Refresh: transition the session and notify
//     subscribers registered with OnChange on every transition, including
//     token refreshes that keep the same identity.
type Service interface {
	CurrentSession(ctx context.Context) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	Refresh(ctx context.Context) (*Session, error)
	OnChange(fn func(*models.User))
}

type service struct {
	api *apiClient
	db  *sql.DB

	mu      sync.Mutex
	session *Session
	subs    []func(*models.User)
}

// NewService builds a Service against the auth backend at baseURL, caching
// session material in the given local cache database.
func NewService(baseURL string, db *sql.DB) Service {
	return &service{api: newAPIClient(baseURL), db: db}
}

func (s *service) cacheRepo() localcache.Repository {
	return localcache.NewSQLiteRepository(s.db)
}

func (s *service) OnChange(fn func(*models.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *service) notify(u *models.User) {
	s.mu.Lock()
	subs := make([]func(*models.User), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

// CurrentSession restores the session from the local cache. An expired access
// token with a cached refresh token triggers a refresh; expired without one
// means unauthenticated.
func (s *service) CurrentSession(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	if s.session != nil {
		sess := *s.session
		s.mu.Unlock()
		return &sess, nil
	}
	s.mu.Unlock()

	cache := s.cacheRepo()

	accessToken, err := cache.Get(ctx, common.CacheKeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("reading cached session: %w", err)
	}
	if accessToken == "" {
		return nil, nil
	}

	user, expiresAt, err := identityFromToken(accessToken)
	if err != nil {
		return nil, nil
	}

	refreshToken, err := cache.Get(ctx, common.CacheKeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("reading cached session: %w", err)
	}

	if !expiresAt.IsZero() && time.Now().After(expiresAt) {
		if refreshToken == "" {
			return nil, nil
		}
		return s.refreshWith(ctx, refreshToken)
	}

	sess := &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
		ExpiresAt:    expiresAt,
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	return sess, nil
}

func (s *service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	tr, err := s.api.passwordGrant(email, password)
	if err != nil {
		return nil, err
	}

	sess, err := s.adopt(ctx, tr)
	if err != nil {
		return nil, err
	}

	s.notify(&sess.User)
	return sess, nil
}

func (s *service) Refresh(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	var refreshToken string
	if s.session != nil {
		refreshToken = s.session.RefreshToken
	}
	s.mu.Unlock()

	if refreshToken == "" {
		return nil, common.ErrNoSession
	}
	return s.refreshWith(ctx, refreshToken)
}

func (s *service) refreshWith(ctx context.Context, refreshToken string) (*Session, error) {
	tr, err := s.api.refreshGrant(refreshToken)
	if err != nil {
		return nil, err
	}

	sess, err := s.adopt(ctx, tr)
	if err != nil {
		return nil, err
	}

	// Refresh is a session transition too; downstream consumers compare
	// identity before reloading data.
	s.notify(&sess.User)
	return sess, nil
}

// adopt stores the token response as the active session and persists it to
// the local cache in a single transaction.
func (s *service) adopt(ctx context.Context, tr *tokenResponse) (*Session, error) {
	user := models.User{ID: tr.User.ID, Email: tr.User.Email}
	if user.ID == "" {
		// Some deployments omit the user object; fall back to the claims.
		fromToken, _, err := identityFromToken(tr.AccessToken)
		if err != nil {
			return nil, err
		}
		user = *fromToken
	}

	sess := &Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		User:         user,
		ExpiresAt:    time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localcache.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.CacheKeyAccessToken, sess.AccessToken); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.CacheKeyRefreshToken, sess.RefreshToken); err != nil {
			return err
		}
		return repo.Set(ctx, common.CacheKeyUserEmail, sess.User.Email)
	})
	if err != nil {
		return nil, fmt.Errorf("caching session: %w", err)
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	return sess, nil
}

// SignOut invalidates the session remotely (best effort), wipes the cached
// session material and notifies subscribers with a nil identity.
func (s *service) SignOut(ctx context.Context) error {
	s.mu.Lock()
	sess := s.session
	s.session = nil
	s.mu.Unlock()

	if sess != nil {
		_ = s.api.logout(sess.AccessToken)
	}

	cache := s.cacheRepo()
	for _, key := range []string{common.CacheKeyAccessToken, common.CacheKeyRefreshToken, common.CacheKeyUserEmail} {
		if err := cache.Delete(ctx, key); err != nil {
			return err
		}
	}

	s.notify(nil)
	return nil
}
