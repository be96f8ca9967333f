// Package memory provides in-memory implementations of the repository
// interfaces. They back demo mode and the test suite, and are behaviorally
// equivalent to the GORM implementations: same sentinel errors, same
// compare-and-set semantics on approval decisions, insertion order
// preserved for listings.
package memory

import (
	"context"
	"sync"

	"backend/internal/model"
	"backend/internal/repository"
)

// Store holds all demo-mode records. Individual operations lock mu; logical
// units are serialized through the transaction manager's own mutex, so the
// two writes of a workflow transition never interleave with another unit.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users       []model.User
	sites       []model.Site
	materials   []model.MaterialCatalogItem
	assessments []model.Assessment
	approvals   []model.Approval
	plans       []model.ConservationPlan
	assignments []model.WorkAssignment
	audits      []model.AuditLog
}

// NewStore returns an empty in-memory store
func NewStore() *Store {
	return &Store{}
}

type txManager struct {
	store *Store
}

// TransactionManager returns a TransactionManager that serializes logical
// units. There is no rollback here; the workflow engine compensates
// half-applied dual writes itself.
func (s *Store) TransactionManager() repository.TransactionManager {
	return &txManager{store: s}
}

func (t *txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	return fn(ctx)
}
