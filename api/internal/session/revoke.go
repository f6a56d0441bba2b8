package session

import (
	"context"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

// RevocationStore remembers logged out token ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	Revoked(ctx context.Context, id string) (bool, error)
}

const revokedKeyPrefix = "session:revoked:"

type redisRevocations struct {
	rds *redis.Redis
	now func() time.Time
}

func NewRedisRevocations(rds *redis.Redis) RevocationStore {
	return &redisRevocations{rds: rds, now: time.Now}
}

func (s *redisRevocations) Revoke(ctx context.Context, id string, until time.Time) error {
	ttl := int(until.Sub(s.now()) / time.Second)
	if ttl <= 0 {
		return nil
	}

	return s.rds.SetexCtx(ctx, revokedKeyPrefix+id, "1", ttl)
}

func (s *redisRevocations) Revoked(ctx context.Context, id string) (bool, error) {
	return s.rds.ExistsCtx(ctx, revokedKeyPrefix+id)
}

type memoryRevocations struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

// NewMemoryRevocations keeps revoked ids in process memory, for running
// without Redis.
func NewMemoryRevocations() RevocationStore {
	return &memoryRevocations{
		until: make(map[string]time.Time),
		now:   time.Now,
	}
}

func (s *memoryRevocations) Revoke(_ context.Context, id string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.until {
		if !exp.After(now) {
			delete(s.until, k)
		}
	}
	if until.After(now) {
		s.until[id] = until
	}

	return nil
}

func (s *memoryRevocations) Revoked(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.until[id]
	return ok && exp.After(s.now()), nil
}
