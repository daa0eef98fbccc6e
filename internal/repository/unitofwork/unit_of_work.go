package unitofwork

import (
	"context"
	"errors"

	"ai-writing-be/internal/repository/contract"
)

var (
	ErrTxActive = errors.New("transaction already started")
	ErrNoTx     = errors.New("no transaction in progress")
)

// UnitOfWork scopes repositories to one transaction once Begin is called.
// Without Begin every repository call runs on its own.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	SnapshotRepository() contract.SnapshotRepository
	PreferenceRepository() contract.PreferenceRepository
}
