// Package history keeps the capped, newest-first snapshot list of the active
// document and writes it through to the snapshot repository.
package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/internal/repository/specification"
	"ai-writing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	module = "HISTORY"

	DefaultCap          = 50
	RestoreBackupLabel  = "Backup before restore"
	ManualSnapshotLabel = "Manual snapshot"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Manager is owned by the session event loop and is not safe for concurrent use.
type Manager struct {
	factory unitofwork.RepositoryFactory
	logger  logger.ILogger
	cap     int
	now     func() time.Time

	documentId uuid.UUID
	entries    []*entity.Snapshot
}

func NewManager(factory unitofwork.RepositoryFactory, capacity int, log logger.ILogger) *Manager {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Manager{
		factory: factory,
		logger:  log,
		cap:     capacity,
		now:     time.Now,
	}
}

func (m *Manager) DocumentId() uuid.UUID {
	return m.documentId
}

// Load swaps in the history of documentId.
func (m *Manager) Load(ctx context.Context, documentId uuid.UUID) error {
	repo := m.factory.NewUnitOfWork(ctx).SnapshotRepository()
	entries, err := repo.FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.NewestFirst(),
	)
	if err != nil {
		return err
	}

	if len(entries) > m.cap {
		overflow := entries[m.cap:]
		entries = entries[:m.cap]
		m.deleteQuietly(ctx, overflow)
	}

	m.documentId = documentId
	m.entries = entries
	return nil
}

// List returns copies, newest first.
func (m *Manager) List() []entity.Snapshot {
	out := make([]entity.Snapshot, len(m.entries))
	for i, s := range m.entries {
		out[i] = *s
	}
	return out
}

func (m *Manager) Len() int {
	return len(m.entries)
}

func (m *Manager) Latest() (entity.Snapshot, bool) {
	if len(m.entries) == 0 {
		return entity.Snapshot{}, false
	}
	return *m.entries[0], true
}

// Capture front-inserts a snapshot of content. Blank content and content
// equal to the newest snapshot are skipped; the second return value
// reports whether a snapshot was stored.
func (m *Manager) Capture(ctx context.Context, content, label string, trigger entity.SnapshotTrigger) (entity.Snapshot, bool) {
	if strings.TrimSpace(content) == "" {
		return entity.Snapshot{}, false
	}
	if len(m.entries) > 0 && m.entries[0].Content == content {
		return entity.Snapshot{}, false
	}

	ts := m.now().UTC().Truncate(time.Microsecond)
	if len(m.entries) > 0 && !ts.After(m.entries[0].Timestamp) {
		ts = m.entries[0].Timestamp.Add(time.Microsecond)
	}

	snapshot := &entity.Snapshot{
		Id:         uuid.New(),
		DocumentId: m.documentId,
		Timestamp:  ts,
		Content:    content,
		Label:      label,
		Trigger:    trigger,
	}

	m.entries = append([]*entity.Snapshot{snapshot}, m.entries...)
	var pruned []*entity.Snapshot
	if len(m.entries) > m.cap {
		pruned = m.entries[m.cap:]
		m.entries = m.entries[:m.cap:m.cap]
	}

	repo := m.factory.NewUnitOfWork(ctx).SnapshotRepository()
	if err := repo.Create(ctx, snapshot); err != nil {
		m.logger.Error(module, "Failed to persist snapshot", map[string]interface{}{
			"document_id": m.documentId.String(),
			"error":       err.Error(),
		})
	}
	m.deleteQuietly(ctx, pruned)

	return *snapshot, true
}

// Restore returns the content of snapshot id. When the current content
// differs from the newest snapshot it is captured first as a backup.
func (m *Manager) Restore(ctx context.Context, id uuid.UUID, currentContent string) (entity.Snapshot, error) {
	var target *entity.Snapshot
	for _, s := range m.entries {
		if s.Id == id {
			target = s
			break
		}
	}
	if target == nil {
		return entity.Snapshot{}, ErrSnapshotNotFound
	}
	restored := *target

	if len(m.entries) > 0 && m.entries[0].Content != currentContent {
		m.Capture(ctx, currentContent, RestoreBackupLabel, entity.SnapshotTriggerAuto)
	}

	return restored, nil
}

func (m *Manager) deleteQuietly(ctx context.Context, snapshots []*entity.Snapshot) {
	if len(snapshots) == 0 {
		return
	}
	ids := make([]uuid.UUID, len(snapshots))
	for i, s := range snapshots {
		ids[i] = s.Id
	}
	if err := m.factory.NewUnitOfWork(ctx).SnapshotRepository().DeleteByIds(ctx, ids); err != nil {
		m.logger.Warn(module, "Failed to prune snapshots", map[string]interface{}{
			"document_id": m.documentId.String(),
			"count":       len(ids),
			"error":       err.Error(),
		})
	}
}
