package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrAlreadyLocked is returned when another run holds the lock.
var ErrAlreadyLocked = errors.New("another run holds the lock")

// releaseScript deletes the key only if this runner still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Config struct {
	URL string
	Key string
	TTL time.Duration
}

// Locker is a single-runner lock backed by Redis SET NX.
type Locker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(cfg Config) (*Locker, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Locker{
		client: client,
		key:    cfg.Key,
		ttl:    cfg.TTL,
	}, nil
}

// Acquire takes the lock and returns a release function. A second caller
// gets ErrAlreadyLocked until the holder releases or the TTL expires.
func (l *Locker) Acquire(ctx context.Context) (func(context.Context) error, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyLocked
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release lock: %w", err)
		}
		return nil
	}
	return release, nil
}

func (l *Locker) Close() error {
	return l.client.Close()
}
