// internal/intake/store.go
package intake

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/common/logger"
)

const DefaultKeyPrefix = "audit:draft:"

// Store keeps in-progress drafts in Redis. Entries expire after the TTL and
// every save refreshes it. Finished analyses are never stored.
type Store struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
	logger logger.Logger
	now    func() time.Time
	newID  func() string
}

func NewStore(rdb redis.Cmdable, prefix string, ttl time.Duration, log logger.Logger) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "draft-store"}),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.New().String() },
	}
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// Create starts and persists a new empty draft.
func (s *Store) Create(ctx context.Context) (Draft, error) {
	draft := NewDraft(s.newID(), s.now())
	if err := s.write(ctx, draft); err != nil {
		return Draft{}, err
	}
	s.logger.Debug("Draft created", map[string]interface{}{"draftId": draft.ID})
	return draft, nil
}

// Get loads a draft. A missing or expired draft yields DRAFT_NOT_FOUND.
func (s *Store) Get(ctx context.Context, id string) (Draft, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, apperrors.NewDraftNotFoundError(id)
	}
	if err != nil {
		return Draft{}, apperrors.NewDraftStoreError("get", err)
	}

	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return Draft{}, apperrors.NewDraftStoreError("decode", err)
	}
	return draft, nil
}

// Save stores draft and refreshes its TTL.
func (s *Store) Save(ctx context.Context, draft Draft) (Draft, error) {
	draft.UpdatedAt = s.now()
	if err := s.write(ctx, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// Update loads a draft, applies commands and saves the result.
func (s *Store) Update(ctx context.Context, id string, commands ...Command) (Draft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	updated, err := Apply(draft, commands...)
	if err != nil {
		return Draft{}, err
	}
	return s.Save(ctx, updated)
}

// Delete removes a draft. Deleting a missing draft is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return apperrors.NewDraftStoreError("delete", err)
	}
	s.logger.Debug("Draft deleted", map[string]interface{}{"draftId": id})
	return nil
}

func (s *Store) write(ctx context.Context, draft Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return apperrors.NewDraftStoreError("encode", err)
	}
	if err := s.rdb.Set(ctx, s.key(draft.ID), payload, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to save draft", map[string]interface{}{
			"draftId": draft.ID,
			"error":   err.Error(),
		})
		return apperrors.NewDraftStoreError("set", err)
	}
	return nil
}
