package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/stellarpath/cruise-booking/internal/model"
)

// HistoryRepo provides access to the booking_history audit table.
// Rows are written once, inside the same transaction as the booking
// mutation they document, and never updated or deleted afterwards.
type HistoryRepo struct {
    db *sql.DB
}

// NewHistoryRepo returns a HistoryRepo bound to the given database.
func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// InsertTx appends one transition record within the caller's
// transaction.  A zero PreviousStatusID is stored as NULL, marking
// the creation transition.  The generated id is written back to h.
func (r *HistoryRepo) InsertTx(ctx context.Context, tx *sql.Tx, h *model.BookingHistory) error {
    const q = `INSERT INTO booking_history (booking_id, previous_booking_status_id, new_booking_status_id, changed_at)
               VALUES (?, ?, ?, ?)`
    var prev interface{}
    if h.PreviousStatusID != 0 {
        prev = h.PreviousStatusID
    }
    res, err := tx.ExecContext(ctx, q, h.BookingID, prev, h.NewStatusID, h.ChangedAt)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    h.ID = uint64(id)
    return nil
}

// ListByBooking returns all transitions for one booking, most recent
// first.  The id tiebreak keeps the order stable when two transitions
// share a timestamp.
func (r *HistoryRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.BookingHistory, error) {
    const q = `SELECT history_id, booking_id, COALESCE(previous_booking_status_id, 0), new_booking_status_id, changed_at
               FROM booking_history
               WHERE booking_id = ?
               ORDER BY changed_at DESC, history_id DESC`
    return r.list(ctx, q, bookingID)
}

// HistorySearchQuery carries the optional, conjunctive criteria for
// searching the audit trail.  Nil pointers mean "no constraint";
// name-based criteria are resolved to ids by the service before the
// query reaches this layer.
type HistorySearchQuery struct {
    BookingID        *uint64
    PreviousStatusID *uint64
    NewStatusID      *uint64
    From             *time.Time
    To               *time.Time
}

// Search returns transitions matching every supplied criterion, most
// recent first.  An empty query returns the full trail; no match
// returns an empty slice, never nil.
func (r *HistoryRepo) Search(ctx context.Context, sq HistorySearchQuery) ([]model.BookingHistory, error) {
    where := []string{}
    args := []interface{}{}
    if sq.BookingID != nil {
        where = append(where, "booking_id = ?")
        args = append(args, *sq.BookingID)
    }
    if sq.PreviousStatusID != nil {
        where = append(where, "previous_booking_status_id = ?")
        args = append(args, *sq.PreviousStatusID)
    }
    if sq.NewStatusID != nil {
        where = append(where, "new_booking_status_id = ?")
        args = append(args, *sq.NewStatusID)
    }
    if sq.From != nil {
        where = append(where, "changed_at >= ?")
        args = append(args, *sq.From)
    }
    if sq.To != nil {
        where = append(where, "changed_at <= ?")
        args = append(args, *sq.To)
    }
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }
    q := `SELECT history_id, booking_id, COALESCE(previous_booking_status_id, 0), new_booking_status_id, changed_at
          FROM booking_history
          WHERE ` + cond + `
          ORDER BY changed_at DESC, history_id DESC`
    return r.list(ctx, q, args...)
}

func (r *HistoryRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.BookingHistory, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.BookingHistory, 0)
    for rows.Next() {
        var h model.BookingHistory
        if err := rows.Scan(&h.ID, &h.BookingID, &h.PreviousStatusID, &h.NewStatusID, &h.ChangedAt); err != nil {
            return nil, err
        }
        result = append(result, h)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}
