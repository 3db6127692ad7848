package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"
)

// BookingRow is the denormalized read projection of one booking joined
// with its cruise, owner, route, spaceship and status name.  Secondary
// joins are LEFT JOINs with COALESCE fallbacks, so a deleted ship or
// an unknown user degrades individual fields to empty strings instead
// of dropping the row.
type BookingRow struct {
    ID             uint64
    GoogleID       string
    UserName       string
    UserEmail      string
    CruiseID       uint64
    DepartureName  string
    ArrivalName    string
    SpaceshipName  string
    SeatNumber     uint32
    SeatPriceCents uint64
    StartsAt       time.Time
    EndsAt         time.Time
    BookingDate    time.Time
    Expiration     time.Time
    StatusID       uint64
    StatusName     string
}

const bookingRowSelect = `SELECT b.booking_id, b.google_id,
              COALESCE(u.full_name, ''), COALESCE(u.email, ''),
              b.cruise_id,
              COALESCE(dd.name, ''), COALESCE(ad.name, ''), COALESCE(sp.name, ''),
              b.seat_number, COALESCE(c.seat_price_cents, 0),
              COALESCE(c.starts_at, b.booking_date), COALESCE(c.ends_at, b.booking_date),
              b.booking_date, b.booking_expiration,
              b.booking_status_id, COALESCE(bs.status_name, '')
       FROM bookings b
       LEFT JOIN users u  ON u.google_id = b.google_id
       LEFT JOIN cruises c ON c.cruise_id = b.cruise_id
       LEFT JOIN destinations dd ON dd.destination_id = c.departure_destination_id
       LEFT JOIN destinations ad ON ad.destination_id = c.arrival_destination_id
       LEFT JOIN spaceships sp   ON sp.spaceship_id = c.spaceship_id
       LEFT JOIN booking_statuses bs ON bs.booking_status_id = b.booking_status_id`

func scanBookingRow(rows *sql.Rows) (BookingRow, error) {
    var v BookingRow
    err := rows.Scan(
        &v.ID, &v.GoogleID,
        &v.UserName, &v.UserEmail,
        &v.CruiseID,
        &v.DepartureName, &v.ArrivalName, &v.SpaceshipName,
        &v.SeatNumber, &v.SeatPriceCents,
        &v.StartsAt, &v.EndsAt,
        &v.BookingDate, &v.Expiration,
        &v.StatusID, &v.StatusName,
    )
    return v, err
}

// ViewByID returns the projection for one booking, or
// ErrBookingNotFound when the booking does not exist.
func (r *BookingRepo) ViewByID(ctx context.Context, bookingID uint64) (*BookingRow, error) {
    q := bookingRowSelect + ` WHERE b.booking_id = ?`
    var v BookingRow
    err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
        &v.ID, &v.GoogleID,
        &v.UserName, &v.UserEmail,
        &v.CruiseID,
        &v.DepartureName, &v.ArrivalName, &v.SpaceshipName,
        &v.SeatNumber, &v.SeatPriceCents,
        &v.StartsAt, &v.EndsAt,
        &v.BookingDate, &v.Expiration,
        &v.StatusID, &v.StatusName,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &v, nil
}

// ViewsByUser returns projections for every booking owned by the
// given identity, newest first.
func (r *BookingRepo) ViewsByUser(ctx context.Context, googleID string) ([]BookingRow, error) {
    q := bookingRowSelect + ` WHERE b.google_id = ? ORDER BY b.booking_date DESC, b.booking_id DESC`
    return r.listRows(ctx, q, googleID)
}

// ViewsByCruise returns projections for every booking on a cruise,
// ordered by seat number for deterministic display.
func (r *BookingRepo) ViewsByCruise(ctx context.Context, cruiseID uint64) ([]BookingRow, error) {
    q := bookingRowSelect + ` WHERE b.cruise_id = ? ORDER BY b.seat_number ASC, b.booking_id ASC`
    return r.listRows(ctx, q, cruiseID)
}

// BookingSearchQuery carries the optional, conjunctive criteria for
// the admin booking search.  Zero values mean "no constraint" for the
// scalar fields; date bounds are pointers so an explicit zero time
// can never be confused with "unset".
type BookingSearchQuery struct {
    GoogleID   string
    CruiseID   uint64
    StatusID   uint64
    SeatNumber uint32
    From       *time.Time
    To         *time.Time
}

// Search returns projections matching every supplied criterion,
// newest first.  No match returns an empty slice, never nil.
func (r *BookingRepo) Search(ctx context.Context, sq BookingSearchQuery) ([]BookingRow, error) {
    where := []string{}
    args := []interface{}{}
    if sq.GoogleID != "" {
        where = append(where, "b.google_id = ?")
        args = append(args, sq.GoogleID)
    }
    if sq.CruiseID != 0 {
        where = append(where, "b.cruise_id = ?")
        args = append(args, sq.CruiseID)
    }
    if sq.StatusID != 0 {
        where = append(where, "b.booking_status_id = ?")
        args = append(args, sq.StatusID)
    }
    if sq.SeatNumber != 0 {
        where = append(where, "b.seat_number = ?")
        args = append(args, sq.SeatNumber)
    }
    if sq.From != nil {
        where = append(where, "b.booking_date >= ?")
        args = append(args, *sq.From)
    }
    if sq.To != nil {
        where = append(where, "b.booking_date <= ?")
        args = append(args, *sq.To)
    }
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }
    q := bookingRowSelect + ` WHERE ` + cond + ` ORDER BY b.booking_date DESC, b.booking_id DESC`
    return r.listRows(ctx, q, args...)
}

func (r *BookingRepo) listRows(ctx context.Context, q string, args ...interface{}) ([]BookingRow, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]BookingRow, 0)
    for rows.Next() {
        v, err := scanBookingRow(rows)
        if err != nil {
            return nil, err
        }
        result = append(result, v)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}
