package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LockKeyPrefix namespaces provisioning locks in Redis.
const LockKeyPrefix = "lock:"

// releaseScript deletes the lock only if it still holds our token, so a
// holder whose TTL expired cannot release somebody else's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker is a best-effort distributed mutex built on SET NX PX.
type Locker struct {
	client *redis.Client
}

func NewLocker(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// Acquire tries once to take the lock. acquired is false when another holder
// owns it. release is safe to call more than once.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error) {
	lockKey := LockKeyPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", lockKey, err)
	}
	if !ok {
		return nil, false, nil
	}

	released := false
	release = func() {
		if released {
			return
		}
		released = true
		// the request context may already be cancelled here
		if err := releaseScript.Run(context.Background(), l.client, []string{lockKey}, token).Err(); err != nil {
			log.Printf("⚠️ Failed to release lock %s: %v", lockKey, err)
		}
	}
	return release, true, nil
}
