// internal/intake/store_test.go
package intake

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-audit/internal/catalog"
	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/common/logger"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewStore(rdb, "", time.Hour, logger.NewTestLogger(t))
	store.now = func() time.Time { return fixedNow }
	store.newID = func() string { return "draft-1" }
	return store, mr
}

func TestStore_CreateAndGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "draft-1", created.ID)
	assert.Equal(t, StepProject, created.Step)

	assert.True(t, mr.Exists(DefaultKeyPrefix+"draft-1"))
	assert.Equal(t, time.Hour, mr.TTL(DefaultKeyPrefix+"draft-1"))

	loaded, err := store.Get(ctx, "draft-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.True(t, created.CreatedAt.Equal(loaded.CreatedAt))
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDraftNotFound))
}

func TestStore_ExpiredDraftIsNotFound(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Get(ctx, "draft-1")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDraftNotFound))
}

func TestStore_Update(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx)
	require.NoError(t, err)
	mr.FastForward(30 * time.Minute)

	later := fixedNow.Add(30 * time.Minute)
	store.now = func() time.Time { return later }

	updated, err := store.Update(ctx, "draft-1",
		Command{Op: OpSetProject, ProjectName: "Acme"},
		Command{Op: OpNext},
		Command{Op: OpSetVisual, ID: string(catalog.VisualPalette), Status: "YES"},
	)
	require.NoError(t, err)
	assert.Equal(t, StepChecklist, updated.Step)
	assert.True(t, later.Equal(updated.UpdatedAt))
	assert.Equal(t, time.Hour, mr.TTL(DefaultKeyPrefix+"draft-1"), "save refreshes the TTL")

	raw, err := mr.Get(DefaultKeyPrefix + "draft-1")
	require.NoError(t, err)
	var stored Draft
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, "Acme", stored.Record.ProjectName)
}

func TestStore_UpdateRejectedCommandLeavesDraft(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx)
	require.NoError(t, err)

	_, err = store.Update(ctx, "draft-1", Command{Op: OpNext})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidIntakeStep))

	loaded, err := store.Get(ctx, "draft-1")
	require.NoError(t, err)
	assert.Equal(t, StepProject, loaded.Step)
}

func TestStore_Delete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "draft-1"))
	assert.False(t, mr.Exists(DefaultKeyPrefix+"draft-1"))

	assert.NoError(t, store.Delete(ctx, "draft-1"), "deleting twice is fine")
}

func TestStore_CorruptPayload(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set(DefaultKeyPrefix+"broken", "{not json"))

	_, err := store.Get(context.Background(), "broken")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDraftStoreFailed))
}

func TestStore_RedisFailures(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, "test:", time.Minute, logger.NewNoOpLogger())
	ctx := context.Background()

	mock.ExpectGet("test:abc").SetErr(errors.New("connection reset"))
	_, err := store.Get(ctx, "abc")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDraftStoreFailed))

	mock.ExpectDel("test:abc").SetErr(errors.New("connection reset"))
	err = store.Delete(ctx, "abc")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDraftStoreFailed))

	stdErr, ok := apperrors.AsStandard(err)
	require.True(t, ok)
	assert.True(t, stdErr.Retryable)

	assert.NoError(t, mock.ExpectationsWereMet())
}
