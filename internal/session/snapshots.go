package session

import (
	"context"
	"strings"

	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/history"

	"github.com/google/uuid"
)

func (s *Session) Snapshots(ctx context.Context) ([]entity.Snapshot, error) {
	var res []entity.Snapshot
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		res = s.history.List()
		return nil
	})
	return res, err
}

// CaptureSnapshot stores a manual snapshot of the current content. The
// boolean is false when it was skipped as blank or a duplicate of the newest.
func (s *Session) CaptureSnapshot(ctx context.Context, label string) (*entity.Snapshot, bool, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = history.ManualSnapshotLabel
	}

	var (
		snap   entity.Snapshot
		stored bool
	)
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		snap, stored = s.history.Capture(ctx, s.editor.Content(), label, entity.SnapshotTriggerManual)
		if stored {
			s.broadcast(constant.EventSnapshotsChanged, nil)
		}
		return nil
	})
	if err != nil || !stored {
		return nil, false, err
	}
	return &snap, true, nil
}

// RestoreSnapshot replaces the content with snapshot id. Unsnapshotted
// content is saved first as a backup.
func (s *Session) RestoreSnapshot(ctx context.Context, id uuid.UUID) (*entity.Snapshot, error) {
	var restored entity.Snapshot
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		before := s.history.Len()
		snap, err := s.history.Restore(ctx, id, s.editor.Content())
		if err != nil {
			return err
		}
		restored = snap

		if s.history.Len() != before {
			s.broadcast(constant.EventSnapshotsChanged, nil)
		}
		if s.editor.UpdateContent(snap.Content) {
			s.contentChanged()
		}

		s.publish(constant.DomainEventSnapshotRestored, map[string]interface{}{
			"document_id": s.doc.Id.String(),
			"snapshot_id": snap.Id.String(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &restored, nil
}
