package database

import "context"

// DataStore defines the unified interface for all data operations needed by
// the services. It is composed of smaller, domain-specific interfaces so
// consumers can depend only on what they use.
type DataStore interface {
	UserRepository
	StatusRepository
	LabelRepository
	TaskRepository

	// InTx runs fn against a DataStore bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling InTx on a transaction-bound store reuses that transaction.
	InTx(ctx context.Context, fn func(DataStore) error) error
}
