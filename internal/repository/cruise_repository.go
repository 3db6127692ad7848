package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"
)

// CruiseInfo is the denormalized cruise row the booking core works
// with: the cruise itself joined with its spaceship, ship model
// (capacity), route destinations and status name.  Secondary lookups
// use LEFT JOINs so a missing destination or ship degrades to an
// empty name instead of failing the whole row.
type CruiseInfo struct {
    ID             uint64    `json:"id"`
    SpaceshipID    uint64    `json:"spaceship_id"`
    SpaceshipName  string    `json:"spaceship_name"`
    ShipModelName  string    `json:"ship_model_name"`
    Capacity       uint32    `json:"capacity"`
    DepartureID    uint64    `json:"departure_id"`
    DepartureName  string    `json:"departure_name"`
    ArrivalID      uint64    `json:"arrival_id"`
    ArrivalName    string    `json:"arrival_name"`
    StartsAt       time.Time `json:"starts_at"`
    EndsAt         time.Time `json:"ends_at"`
    SeatPriceCents uint64    `json:"seat_price_cents"`
    StatusID       uint64    `json:"status_id"`
    StatusName     string    `json:"status"`
}

// CruiseRepo provides read access to cruises plus the single status
// write the booking core needs (marking a cruise Cancelled when its
// bookings are cascade-cancelled).  All other cruise administration
// lives outside this service.
type CruiseRepo struct {
    db *sql.DB
}

// NewCruiseRepo returns a CruiseRepo bound to the given database.
func NewCruiseRepo(db *sql.DB) *CruiseRepo { return &CruiseRepo{db: db} }

const cruiseInfoSelect = `SELECT c.cruise_id, c.spaceship_id,
              COALESCE(sp.name, ''), COALESCE(sm.name, ''), COALESCE(sm.capacity, 0),
              c.departure_destination_id, COALESCE(dd.name, ''),
              c.arrival_destination_id, COALESCE(ad.name, ''),
              c.starts_at, c.ends_at, c.seat_price_cents,
              c.cruise_status_id, COALESCE(cs.status_name, '')
       FROM cruises c
       LEFT JOIN spaceships sp   ON sp.spaceship_id = c.spaceship_id
       LEFT JOIN ship_models sm  ON sm.ship_model_id = sp.ship_model_id
       LEFT JOIN destinations dd ON dd.destination_id = c.departure_destination_id
       LEFT JOIN destinations ad ON ad.destination_id = c.arrival_destination_id
       LEFT JOIN cruise_statuses cs ON cs.cruise_status_id = c.cruise_status_id`

func scanCruiseInfo(row *sql.Row) (*CruiseInfo, error) {
    var ci CruiseInfo
    err := row.Scan(
        &ci.ID, &ci.SpaceshipID,
        &ci.SpaceshipName, &ci.ShipModelName, &ci.Capacity,
        &ci.DepartureID, &ci.DepartureName,
        &ci.ArrivalID, &ci.ArrivalName,
        &ci.StartsAt, &ci.EndsAt, &ci.SeatPriceCents,
        &ci.StatusID, &ci.StatusName,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCruiseNotFound
        }
        return nil, err
    }
    return &ci, nil
}

// GetInfoByID returns the denormalized info row for one cruise.  It
// returns ErrCruiseNotFound when there is no matching row.
func (r *CruiseRepo) GetInfoByID(ctx context.Context, id uint64) (*CruiseInfo, error) {
    const q = cruiseInfoSelect + ` WHERE c.cruise_id = ?`
    return scanCruiseInfo(r.db.QueryRowContext(ctx, q, id))
}

// GetInfoByIDTx is GetInfoByID executed inside the caller's
// transaction.  Booking creation re-reads the cruise here so the
// status and capacity checks observe the same snapshot the insert
// commits against.
func (r *CruiseRepo) GetInfoByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*CruiseInfo, error) {
    const q = cruiseInfoSelect + ` WHERE c.cruise_id = ?`
    return scanCruiseInfo(tx.QueryRowContext(ctx, q, id))
}

// ListByStatus returns all cruises currently in the named status,
// ordered by departure time ascending.  Used by the public browse
// endpoints to list Scheduled cruises.  When nothing matches it
// returns an empty slice and nil error.
func (r *CruiseRepo) ListByStatus(ctx context.Context, statusName string) ([]CruiseInfo, error) {
    const q = cruiseInfoSelect + ` WHERE cs.status_name = ? ORDER BY c.starts_at ASC`
    rows, err := r.db.QueryContext(ctx, q, statusName)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]CruiseInfo, 0)
    for rows.Next() {
        var ci CruiseInfo
        if err := rows.Scan(
            &ci.ID, &ci.SpaceshipID,
            &ci.SpaceshipName, &ci.ShipModelName, &ci.Capacity,
            &ci.DepartureID, &ci.DepartureName,
            &ci.ArrivalID, &ci.ArrivalName,
            &ci.StartsAt, &ci.EndsAt, &ci.SeatPriceCents,
            &ci.StatusID, &ci.StatusName,
        ); err != nil {
            return nil, err
        }
        result = append(result, ci)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// UpdateStatusTx moves a cruise to the given status within the
// caller's transaction.  It returns ErrCruiseNotFound when the cruise
// does not exist.
func (r *CruiseRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, cruiseID, statusID uint64) error {
    const q = `UPDATE cruises SET cruise_status_id = ? WHERE cruise_id = ?`
    res, err := tx.ExecContext(ctx, q, statusID, cruiseID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // RowsAffected is also 0 when the cruise already carries the
        // target status; verify existence before reporting not-found.
        var one int
        if err := tx.QueryRowContext(ctx, `SELECT 1 FROM cruises WHERE cruise_id = ? LIMIT 1`, cruiseID).Scan(&one); err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return ErrCruiseNotFound
            }
            return err
        }
    }
    return nil
}
