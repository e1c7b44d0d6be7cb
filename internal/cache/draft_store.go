// Package cache implements the Redis-backed draft store used for autosaving
// in-progress layout edits. Drafts are best-effort: the store degrades to
// disabled when no Redis client is available, and entries expire on their
// own.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"venueseating/internal/domain"
)

type draftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore returns a DraftStore over the given Redis client. client
// may be nil, in which case the store reports every draft as missing and
// accepts writes as no-ops.
func NewDraftStore(client *redis.Client, ttl time.Duration) domain.DraftStore {
	return &draftStore{client: client, ttl: ttl}
}

func draftKey(chartID string) string {
	return "seating:draft:" + chartID
}

func (s *draftStore) SaveDraft(ctx context.Context, chartID string, blob []byte) error {
	if s.client == nil {
		return nil
	}
	return s.client.Set(ctx, draftKey(chartID), blob, s.ttl).Err()
}

func (s *draftStore) LoadDraft(ctx context.Context, chartID string) ([]byte, error) {
	if s.client == nil {
		return nil, domain.ErrNotFound
	}
	blob, err := s.client.Get(ctx, draftKey(chartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return blob, nil
}

func (s *draftStore) DiscardDraft(ctx context.Context, chartID string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, draftKey(chartID)).Err()
}
