package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/internal/repository/memory"
	"ai-writing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, capacity int) (*Manager, unitofwork.RepositoryFactory) {
	t.Helper()
	factory := unitofwork.NewMemoryRepositoryFactory(memory.NewStore())
	m := NewManager(factory, capacity, logger.NewNopLogger())

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	require.NoError(t, m.Load(context.Background(), uuid.New()))
	return m, factory
}

func TestCaptureDedupAgainstNewest(t *testing.T) {
	m, _ := newTestManager(t, DefaultCap)
	ctx := context.Background()

	m.Capture(ctx, "bar", "B", entity.SnapshotTriggerManual)
	m.Capture(ctx, "foo", "A", entity.SnapshotTriggerManual)
	require.Equal(t, 2, m.Len())

	_, stored := m.Capture(ctx, "foo", "again", entity.SnapshotTriggerManual)

	assert.False(t, stored)
	assert.Equal(t, 2, m.Len())
}

func TestCaptureOnlyComparesNewest(t *testing.T) {
	m, _ := newTestManager(t, DefaultCap)
	ctx := context.Background()

	m.Capture(ctx, "bar", "B", entity.SnapshotTriggerManual)
	m.Capture(ctx, "foo", "A", entity.SnapshotTriggerManual)

	_, stored := m.Capture(ctx, "bar", "B again", entity.SnapshotTriggerManual)

	assert.True(t, stored)
	assert.Equal(t, 3, m.Len())
}

func TestCaptureSkipsBlank(t *testing.T) {
	m, _ := newTestManager(t, DefaultCap)

	_, stored := m.Capture(context.Background(), " \n\t", "blank", entity.SnapshotTriggerManual)

	assert.False(t, stored)
	assert.Zero(t, m.Len())
}

func TestCaptureCap(t *testing.T) {
	m, factory := newTestManager(t, 50)
	ctx := context.Background()

	for i := 0; i < 51; i++ {
		m.Capture(ctx, fmt.Sprintf("v%d", i), "", entity.SnapshotTriggerManual)
	}

	list := m.List()
	require.Len(t, list, 50)
	assert.Equal(t, "v50", list[0].Content)
	assert.Equal(t, "v1", list[49].Content)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].Timestamp.After(list[i].Timestamp))
	}

	reloaded := NewManager(factory, 50, logger.NewNopLogger())
	require.NoError(t, reloaded.Load(ctx, m.DocumentId()))
	assert.Equal(t, 50, reloaded.Len())
	latest, _ := reloaded.Latest()
	assert.Equal(t, "v50", latest.Content)
}

func TestRestoreCapturesBackupWhenContentDiffers(t *testing.T) {
	m, _ := newTestManager(t, DefaultCap)
	ctx := context.Background()
	v1, _ := m.Capture(ctx, "draft v1", "first", entity.SnapshotTriggerManual)
	before := m.Len()

	restored, err := m.Restore(ctx, v1.Id, "draft v2")

	require.NoError(t, err)
	assert.Equal(t, "draft v1", restored.Content)
	assert.Equal(t, before+1, m.Len())
	latest, _ := m.Latest()
	assert.Equal(t, "draft v2", latest.Content)
	assert.Equal(t, entity.SnapshotTriggerAuto, latest.Trigger)
	assert.Equal(t, RestoreBackupLabel, latest.Label)
}

func TestRestoreWithoutChangesSkipsBackup(t *testing.T) {
	m, _ := newTestManager(t, DefaultCap)
	ctx := context.Background()
	old, _ := m.Capture(ctx, "old", "", entity.SnapshotTriggerManual)
	m.Capture(ctx, "current", "", entity.SnapshotTriggerManual)

	_, err := m.Restore(ctx, old.Id, "current")

	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
}

func TestRestoreUnknownSnapshot(t *testing.T) {
	m, _ := newTestManager(t, DefaultCap)

	_, err := m.Restore(context.Background(), uuid.New(), "x")

	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestLoadSwapsHistories(t *testing.T) {
	m, _ := newTestManager(t, DefaultCap)
	ctx := context.Background()
	first := m.DocumentId()
	m.Capture(ctx, "doc one", "", entity.SnapshotTriggerManual)

	second := uuid.New()
	require.NoError(t, m.Load(ctx, second))
	assert.Zero(t, m.Len())
	m.Capture(ctx, "doc two", "", entity.SnapshotTriggerManual)

	require.NoError(t, m.Load(ctx, first))
	require.Equal(t, 1, m.Len())
	latest, _ := m.Latest()
	assert.Equal(t, "doc one", latest.Content)
}
