package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/internal/repository/memory"
	"ai-writing-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "PERSIST_DOCUMENT"

type savedRecorder struct {
	mu    sync.Mutex
	saved int
}

func (r *savedRecorder) Broadcast(eventType string, payload interface{}) {
	if eventType != constant.EventSaved {
		return
	}
	r.mu.Lock()
	r.saved++
	r.mu.Unlock()
}

func (r *savedRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

func newTestStore(t *testing.T) (IDocumentStore, unitofwork.RepositoryFactory, *savedRecorder) {
	t.Helper()
	factory := unitofwork.NewMemoryRepositoryFactory(memory.NewStore())
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	store := NewDocumentStore(factory, NewPublisherService(testTopic, pubSub), logger.NewNopLogger())
	recorder := &savedRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, NewPersistConsumerService(pubSub, testTopic, store, recorder).Consume(ctx))

	return store, factory, recorder
}

func TestEnqueuePersistsDocument(t *testing.T) {
	store, _, recorder := newTestStore(t)
	ctx := context.Background()
	doc := entity.NewBlankDocument(time.Now().Add(-time.Minute))
	require.NoError(t, store.Create(ctx, doc))

	updated := doc.Clone()
	updated.Content = "persisted later"
	updated.LastModified = time.Now()
	require.NoError(t, store.Enqueue(ctx, updated))

	assert.Eventually(t, func() bool {
		got, err := store.Get(ctx, doc.Id)
		return err == nil && got != nil && got.Content == "persisted later"
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestSaveSkipsOlderAndDeleted(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	doc := entity.NewBlankDocument(now)
	doc.Content = "current"
	require.NoError(t, store.Create(ctx, doc))

	stale := doc.Clone()
	stale.Content = "stale"
	stale.LastModified = now.Add(-time.Second)
	saved, err := store.Save(ctx, stale)
	require.NoError(t, err)
	assert.False(t, saved)

	ghost := entity.NewBlankDocument(now)
	saved, err = store.Save(ctx, ghost)
	require.NoError(t, err)
	assert.False(t, saved)

	got, err := store.Get(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, "current", got.Content)

	got, err = store.Get(ctx, ghost.Id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteRemovesSnapshotsAndActivePointer(t *testing.T) {
	store, factory, _ := newTestStore(t)
	ctx := context.Background()
	doc := entity.NewBlankDocument(time.Now())
	require.NoError(t, store.Create(ctx, doc))
	require.NoError(t, store.SetActiveId(ctx, doc.Id))

	snapshots := factory.NewUnitOfWork(ctx).SnapshotRepository()
	require.NoError(t, snapshots.Create(ctx, &entity.Snapshot{
		Id:         uuid.New(),
		DocumentId: doc.Id,
		Timestamp:  time.Now(),
		Content:    "x",
		Trigger:    entity.SnapshotTriggerManual,
	}))

	require.NoError(t, store.Delete(ctx, doc.Id))

	remaining, err := snapshots.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	active, err := store.ActiveId(ctx)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, active)

	docs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
