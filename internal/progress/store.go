package progress

import (
	"context"
	"encoding/json"
	"time"

	"exam-service/internal/exam"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "exam:session:"

// Store is a write-through cache of in-flight session snapshots. It exists
// so an exam in progress survives a service restart; it is not part of the
// result record and entries expire on their own once the clock plus a
// grace period has run out.
type Store struct {
	client *redis.Client
	grace  time.Duration
}

func NewStore(addr, password string) *Store {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &Store{client: client, grace: 5 * time.Minute}
}

// Save writes the snapshot through, keyed by session id. Nil-safe: with no
// redis configured every call is a no-op and sessions are memory-only.
func (s *Store) Save(ctx context.Context, state *exam.SessionState) error {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	ttl := time.Duration(state.RemainingSeconds)*time.Second + s.grace
	return s.client.Set(ctx, keyPrefix+state.ID, data, ttl).Err()
}

// Load returns the cached snapshot, or redis.Nil when nothing is stored.
func (s *Store) Load(ctx context.Context, sessionID string) (*exam.SessionState, error) {
	if s == nil {
		return nil, redis.Nil
	}
	data, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		return nil, err
	}
	var state exam.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Delete drops the cache entry once a session reaches Terminal.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if s == nil {
		return nil
	}
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}

// IsNotFound reports whether an error from Load means "no snapshot".
func IsNotFound(err error) bool {
	return err == redis.Nil
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
