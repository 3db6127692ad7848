package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/stellarpath/cruise-booking/internal/model"
)

// BookingRepo provides persistence for booking rows.  All writes take
// an explicit *sql.Tx so the service layer can pair every status
// change with its history record inside one transaction; reads used
// purely for display go straight through the pool.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingSelect = `SELECT booking_id, google_id, cruise_id, seat_number,
              booking_date, booking_expiration, booking_status_id
       FROM bookings`

// inClause builds "?,?,?" and the matching args slice for an IN (...)
// predicate over status ids.
func inClause(ids []uint64) (string, []interface{}) {
    placeholders := make([]string, len(ids))
    args := make([]interface{}, len(ids))
    for i, id := range ids {
        placeholders[i] = "?"
        args[i] = id
    }
    return strings.Join(placeholders, ","), args
}

// CreateTx inserts a new booking, but only when no booking in a
// blocking status already holds the same (cruise, seat) pair.  The
// availability check and the insert execute as one conditional
// statement, so two concurrent creations for the same seat cannot
// both commit: the second sees zero affected rows and receives
// ErrSeatTaken.  On success the generated id is written back to b.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking, blockingStatusIDs []uint64) error {
    in, inArgs := inClause(blockingStatusIDs)
    q := `INSERT INTO bookings (google_id, cruise_id, seat_number, booking_date, booking_expiration, booking_status_id)
          SELECT ?, ?, ?, ?, ?, ?
          FROM DUAL
          WHERE NOT EXISTS (
              SELECT 1 FROM bookings
              WHERE cruise_id = ? AND seat_number = ? AND booking_status_id IN (` + in + `)
          )`
    args := []interface{}{
        b.GoogleID, b.CruiseID, b.SeatNumber, b.BookingDate, b.Expiration, b.StatusID,
        b.CruiseID, b.SeatNumber,
    }
    args = append(args, inArgs...)
    res, err := tx.ExecContext(ctx, q, args...)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrSeatTaken
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    return nil
}

// GetByID retrieves a booking by its id.  It returns
// ErrBookingNotFound when there is no matching row.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    var b model.Booking
    err := r.db.QueryRowContext(ctx, bookingSelect+` WHERE booking_id = ?`, id).
        Scan(&b.ID, &b.GoogleID, &b.CruiseID, &b.SeatNumber, &b.BookingDate, &b.Expiration, &b.StatusID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}

// GetByIDTx retrieves a booking inside the caller's transaction with a
// row lock, so the subsequent status update is not raced by another
// cancel/pay on the same booking.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    var b model.Booking
    err := tx.QueryRowContext(ctx, bookingSelect+` WHERE booking_id = ? FOR UPDATE`, id).
        Scan(&b.ID, &b.GoogleID, &b.CruiseID, &b.SeatNumber, &b.BookingDate, &b.Expiration, &b.StatusID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}

// UpdateStatusTx moves a booking to the given status within the
// caller's transaction.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID, statusID uint64) error {
    const q = `UPDATE bookings SET booking_status_id = ? WHERE booking_id = ?`
    _, err := tx.ExecContext(ctx, q, statusID, bookingID)
    return err
}

// OccupiedSeats returns the seat numbers held by bookings in any of
// the given (blocking) statuses for a cruise, ascending.  When every
// seat is free it returns an empty slice.
func (r *BookingRepo) OccupiedSeats(ctx context.Context, cruiseID uint64, blockingStatusIDs []uint64) ([]uint32, error) {
    in, inArgs := inClause(blockingStatusIDs)
    q := `SELECT seat_number FROM bookings
          WHERE cruise_id = ? AND booking_status_id IN (` + in + `)
          ORDER BY seat_number ASC`
    args := append([]interface{}{cruiseID}, inArgs...)
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    seats := make([]uint32, 0)
    for rows.Next() {
        var s uint32
        if err := rows.Scan(&s); err != nil {
            return nil, err
        }
        seats = append(seats, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return seats, nil
}

// ListByCruiseAndStatusTx returns all bookings for a cruise currently
// in one of the given statuses, locked for update.  Cascade
// cancellation and completion iterate this set so the per-booking
// transition plus history append stays race-free within the batch
// transaction.
func (r *BookingRepo) ListByCruiseAndStatusTx(ctx context.Context, tx *sql.Tx, cruiseID uint64, statusIDs []uint64) ([]model.Booking, error) {
    in, inArgs := inClause(statusIDs)
    q := bookingSelect + ` WHERE cruise_id = ? AND booking_status_id IN (` + in + `) ORDER BY booking_id ASC FOR UPDATE`
    args := append([]interface{}{cruiseID}, inArgs...)
    return r.listTx(ctx, tx, q, args...)
}

// ListExpiredTx returns Reserved bookings whose expiration timestamp
// lies before the cutoff, locked for update.  The expiration sweep
// transitions each of them to Expired.
func (r *BookingRepo) ListExpiredTx(ctx context.Context, tx *sql.Tx, reservedStatusID uint64, cutoff time.Time) ([]model.Booking, error) {
    q := bookingSelect + ` WHERE booking_status_id = ? AND booking_expiration < ? ORDER BY booking_id ASC FOR UPDATE`
    return r.listTx(ctx, tx, q, reservedStatusID, cutoff)
}

func (r *BookingRepo) listTx(ctx context.Context, tx *sql.Tx, q string, args ...interface{}) ([]model.Booking, error) {
    rows, err := tx.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.Booking, 0)
    for rows.Next() {
        var b model.Booking
        if err := rows.Scan(&b.ID, &b.GoogleID, &b.CruiseID, &b.SeatNumber, &b.BookingDate, &b.Expiration, &b.StatusID); err != nil {
            return nil, err
        }
        result = append(result, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}
