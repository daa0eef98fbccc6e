package entity

import (
	"time"

	"github.com/google/uuid"
)

type SnapshotTrigger string

const (
	SnapshotTriggerManual      SnapshotTrigger = "manual"
	SnapshotTriggerAuto        SnapshotTrigger = "auto"
	SnapshotTriggerAIPreFlight SnapshotTrigger = "ai-pre-flight"
)

func (t SnapshotTrigger) Valid() bool {
	switch t {
	case SnapshotTriggerManual, SnapshotTriggerAuto, SnapshotTriggerAIPreFlight:
		return true
	}
	return false
}

// Snapshot is immutable once created.
type Snapshot struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Timestamp  time.Time
	Content    string
	Label      string
	Trigger    SnapshotTrigger
}
