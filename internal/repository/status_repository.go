package repository

import (
    "context"
    "database/sql"
    "errors"
)

// StatusRepo resolves booking and cruise status reference rows.  Both
// tables are seed data: rows are inserted at install time and never
// modified afterwards, so callers are free to cache resolved ids for
// the process lifetime (see service.StatusRegistry).
type StatusRepo struct {
    db *sql.DB
}

// NewStatusRepo returns a StatusRepo bound to the given database.
func NewStatusRepo(db *sql.DB) *StatusRepo { return &StatusRepo{db: db} }

// BookingStatusIDByName resolves a booking status name to its id.  It
// returns ErrStatusNotFound when the name has no row.
func (r *StatusRepo) BookingStatusIDByName(ctx context.Context, name string) (uint64, error) {
    const q = `SELECT booking_status_id FROM booking_statuses WHERE status_name = ? LIMIT 1`
    var id uint64
    if err := r.db.QueryRowContext(ctx, q, name).Scan(&id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrStatusNotFound
        }
        return 0, err
    }
    return id, nil
}

// BookingStatusNameByID resolves a booking status id to its name.  It
// returns ErrStatusNotFound when the id has no row; lenient display
// fallbacks are the registry's concern, not the repository's.
func (r *StatusRepo) BookingStatusNameByID(ctx context.Context, id uint64) (string, error) {
    const q = `SELECT status_name FROM booking_statuses WHERE booking_status_id = ? LIMIT 1`
    var name string
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&name); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return "", ErrStatusNotFound
        }
        return "", err
    }
    return name, nil
}

// CruiseStatusIDByName resolves a cruise status name to its id.  It
// returns ErrStatusNotFound when the name has no row.
func (r *StatusRepo) CruiseStatusIDByName(ctx context.Context, name string) (uint64, error) {
    const q = `SELECT cruise_status_id FROM cruise_statuses WHERE status_name = ? LIMIT 1`
    var id uint64
    if err := r.db.QueryRowContext(ctx, q, name).Scan(&id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrStatusNotFound
        }
        return 0, err
    }
    return id, nil
}

// CruiseStatusNameByID resolves a cruise status id to its name.
func (r *StatusRepo) CruiseStatusNameByID(ctx context.Context, id uint64) (string, error) {
    const q = `SELECT status_name FROM cruise_statuses WHERE cruise_status_id = ? LIMIT 1`
    var name string
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&name); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return "", ErrStatusNotFound
        }
        return "", err
    }
    return name, nil
}
