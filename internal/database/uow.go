package database

import (
    "context"
    "database/sql"
)

// UnitOfWork scopes a set of repository operations to one database
// transaction.  WithinTx begins a transaction, runs fn, commits when
// fn returns nil and rolls back otherwise.  Rollback also runs when
// fn panics, so a failed operation can never leak partial writes —
// the panic is re-raised after cleanup.
type UnitOfWork struct {
    db *sql.DB
}

// NewUnitOfWork returns a UnitOfWork over the given database handle.
func NewUnitOfWork(db *sql.DB) *UnitOfWork { return &UnitOfWork{db: db} }

// WithinTx executes fn inside a transaction.  The error returned by
// fn propagates unchanged to the caller after rollback; commit errors
// surface as-is.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
    tx, err := u.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if p := recover(); p != nil {
            _ = tx.Rollback()
            panic(p)
        }
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err = fn(tx); err != nil {
        return err
    }
    if err = tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
