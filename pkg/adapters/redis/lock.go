package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/aretw0/automata/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultLockPrefix keeps edit locks apart from the definitions under DefaultPrefix.
const DefaultLockPrefix = "automata:"

// DefaultRetryInterval is how often a blocked Lock retries SET NX.
const DefaultRetryInterval = 100 * time.Millisecond

// releaseEdit deletes the edit key only while it still holds the caller's token.
var releaseEdit = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker serializes edits of one automaton across server replicas.
// Each automaton ID maps to the key <prefix>edit:<id>.
type Locker struct {
	client *backend.Client
	prefix string
	retry  time.Duration
}

// NewLocker returns a Locker whose keys share the store prefix.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
		retry:  DefaultRetryInterval,
	}
}

// EditKey returns the Redis key guarding edits of automatonID.
func (l *Locker) EditKey(automatonID string) string {
	return l.prefix + "edit:" + automatonID
}

// Lock blocks until the edit lock of automatonID is held or ctx is done.
// The lock expires after ttl if the holder never releases it.
func (l *Locker) Lock(ctx context.Context, automatonID string, ttl time.Duration) (ports.UnlockFunc, error) {
	key := l.EditKey(automatonID)
	token, err := holderToken()
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		held, err := l.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("acquire edit lock for %q: %w", automatonID, err)
		}
		if held {
			return func(ctx context.Context) error {
				if err := releaseEdit.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
					return fmt.Errorf("release edit lock for %q: %w", automatonID, err)
				}
				return nil
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func holderToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate lock token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
