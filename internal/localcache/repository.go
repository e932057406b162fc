// Package localcache is the durable string-keyed cache backing instant
// cold-start rendering: settings and session material are mirrored here and
// read before any remote fetch resolves.
package localcache

import "context"

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
