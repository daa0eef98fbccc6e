package unitofwork

import (
	"context"

	"ai-writing-be/internal/repository/contract"
	"ai-writing-be/internal/repository/memory"
)

// MemoryUnitOfWork writes straight into the store. A transaction holds the
// store lock and Rollback undoes the writes made through it.
type MemoryUnitOfWork struct {
	store *memory.Store
	tx    *memory.Tx
}

func NewMemoryUnitOfWork(store *memory.Store) UnitOfWork {
	return &MemoryUnitOfWork{store: store}
}

func (u *MemoryUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTxActive
	}
	u.tx = u.store.Begin()
	return nil
}

func (u *MemoryUnitOfWork) Commit() error {
	if u.tx == nil {
		return ErrNoTx
	}
	u.tx.Commit()
	u.tx = nil
	return nil
}

func (u *MemoryUnitOfWork) Rollback() error {
	if u.tx == nil {
		return ErrNoTx
	}
	u.tx.Rollback()
	u.tx = nil
	return nil
}

func (u *MemoryUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return memory.NewDocumentRepository(u.store, u.tx)
}

func (u *MemoryUnitOfWork) SnapshotRepository() contract.SnapshotRepository {
	return memory.NewSnapshotRepository(u.store, u.tx)
}

func (u *MemoryUnitOfWork) PreferenceRepository() contract.PreferenceRepository {
	return memory.NewPreferenceRepository(u.store, u.tx)
}
