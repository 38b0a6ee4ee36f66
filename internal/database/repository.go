package database

import (
	"context"
	"database/sql"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UserRepo
	*StatusRepo
	*LabelRepo
	*TaskRepo

	db      *sql.DB // nil when bound to a transaction
	dialect Dialect
}

var _ DataStore = (*Repository)(nil)

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	r := newRepository(db, dialect)
	r.db = db
	return r
}

func newRepository(db DBTX, dialect Dialect) *Repository {
	c := conn{db: db, dialect: dialect}
	return &Repository{
		UserRepo:   &UserRepo{c: c},
		StatusRepo: &StatusRepo{c: c},
		LabelRepo:  &LabelRepo{c: c},
		TaskRepo:   &TaskRepo{c: c},
		dialect:    dialect,
	}
}

// Dialect reports the SQL flavour of the underlying database
func (r *Repository) Dialect() Dialect {
	return r.dialect
}

// InTx implements DataStore
func (r *Repository) InTx(ctx context.Context, fn func(DataStore) error) error {
	if r.db == nil {
		return fn(r)
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(newRepository(tx, r.dialect))
	})
}
