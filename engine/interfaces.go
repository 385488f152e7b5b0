package engine

import "context"

// KV abstracts the key-value persistence collaborator. Balances are stored as
// decimal-integer strings and unlocked reward ids as a JSON array, under fixed
// per-user keys. A missing key on Get means "use the default seed value".
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
