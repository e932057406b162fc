package common

// Keys for the local durable cache (internal/localcache). Settings are
// mirrored here so a cold start can render before the remote profile resolves.
const (
	CacheKeyLanguage   = "settings.language"
	CacheKeyDateFormat = "settings.date_format"
	CacheKeyCurrency   = "settings.currency"

	// Session material cached by the auth client for session restore.
	CacheKeyAccessToken  = "session.access_token"
	CacheKeyRefreshToken = "session.refresh_token"
	CacheKeyUserEmail    = "session.user_email"
)
