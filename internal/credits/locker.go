package credits

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Locker serializes ledger mutations for one key (a user). The returned
// unlock func must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// MemoryLocker is an in-process keyed mutex. Entries are removed once no
// goroutine holds or waits for them.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*keyLock)}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, kl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.release(key, kl)
		})
	}, nil
}

func (l *MemoryLocker) release(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

// RedisLockConfig tunes RedisLocker.
type RedisLockConfig struct {
	// TTL bounds how long a crashed holder can block the key.
	TTL time.Duration
	// RetryInterval is the pause between acquisition attempts.
	RetryInterval time.Duration
	// Wait is the maximum time spent acquiring before giving up.
	Wait      time.Duration
	KeyPrefix string
	Logger    *zap.Logger
}

// ErrLockTimeout is returned when a Redis lock could not be acquired in time.
var ErrLockTimeout = errors.New("timed out acquiring ledger lock")

// RedisLocker is a SET NX PX lock shared by every API instance.
type RedisLocker struct {
	client *redis.Client
	config RedisLockConfig
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisLocker(client *redis.Client, config RedisLockConfig) *RedisLocker {
	if config.TTL <= 0 {
		config.TTL = 10 * time.Second
	}
	if config.RetryInterval <= 0 {
		config.RetryInterval = 25 * time.Millisecond
	}
	if config.Wait <= 0 {
		config.Wait = 5 * time.Second
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "lock:credits:"
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &RedisLocker{client: client, config: config}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.config.KeyPrefix + key
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, l.config.Wait)
	defer cancel()

	ticker := time.NewTicker(l.config.RetryInterval)
	defer ticker.Stop()
	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.config.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", redisKey, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrLockTimeout
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the caller's context may already be cancelled
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			released, err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Int64()
			switch {
			case err != nil:
				l.config.Logger.Error("failed to release ledger lock", zap.String("key", redisKey), zap.Error(err))
			case released == 0:
				l.config.Logger.Warn("ledger lock expired before release", zap.String("key", redisKey), zap.Duration("ttl", l.config.TTL))
			}
		})
	}, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
