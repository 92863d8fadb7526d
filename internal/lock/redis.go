package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	redisKeyPrefix   = "examsim:lock:session:"
	redisRetryPeriod = 50 * time.Millisecond
)

// Deletes the key only while it still holds our token, so an expired lock
// re-acquired by someone else is never released by us.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Extends the key only while it still holds our token.
var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

type redisLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisLocker returns a locker shared by every process using rdb. ttl
// bounds how long a crashed holder can keep a session locked; a live holder
// keeps extending it until release.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) SessionLocker {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &redisLocker{rdb: rdb, ttl: ttl}
}

func (l *redisLocker) Lock(ctx context.Context, sessionID string) (func(), error) {
	key := redisKeyPrefix + sessionID
	token := uuid.NewString()

	ticker := time.NewTicker(redisRetryPeriod)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Join(ErrNotAcquired, ctx.Err())
			}
			return nil, fmt.Errorf("acquire session lock %s: %w", sessionID, err)
		}
		if ok {
			break
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, errors.Join(ErrNotAcquired, ctx.Err())
		}
	}

	stop := make(chan struct{})
	go l.keepAlive(key, token, sessionID, stop)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			// The caller's context may already be done; release regardless.
			if err := unlockScript.Run(context.Background(), l.rdb, []string{key}, token).Err(); err != nil {
				log.Warn().Err(err).Str("sessionID", sessionID).Msg("Failed to release session lock")
			}
		})
	}, nil
}

// refreshInterval leaves two more refresh attempts before the key expires.
func refreshInterval(ttl time.Duration) time.Duration {
	interval := ttl / 3
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	return interval
}

func (l *redisLocker) keepAlive(key, token, sessionID string, stop <-chan struct{}) {
	ticker := time.NewTicker(refreshInterval(l.ttl))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), refreshInterval(l.ttl))
		n, err := refreshScript.Run(ctx, l.rdb, []string{key}, token, l.ttl.Milliseconds()).Int()
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("sessionID", sessionID).Msg("Failed to refresh session lock")
			continue
		}
		if n == 0 {
			log.Error().Str("sessionID", sessionID).Msg("Session lock expired while held")
			return
		}
	}
}
