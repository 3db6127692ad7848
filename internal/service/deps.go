// Package service implements the booking core: status registries, the
// seat availability calculator, the booking lifecycle manager and the
// read-side query projections.  Services talk to storage through the
// narrow interfaces below so tests can substitute mocks; the concrete
// implementations live in internal/repository.
package service

import (
    "context"
    "database/sql"
    "time"

    "github.com/stellarpath/cruise-booking/internal/model"
    "github.com/stellarpath/cruise-booking/internal/repository"
)

// UnitOfWork supplies the transaction boundary for mutating
// operations.  Every status change and its history record run inside
// one WithinTx call; any error rolls the whole operation back.
type UnitOfWork interface {
    WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// StatusStore resolves status reference rows.  Backed by
// repository.StatusRepo; the registry layer adds caching on top.
type StatusStore interface {
    BookingStatusIDByName(ctx context.Context, name string) (uint64, error)
    BookingStatusNameByID(ctx context.Context, id uint64) (string, error)
    CruiseStatusIDByName(ctx context.Context, name string) (uint64, error)
    CruiseStatusNameByID(ctx context.Context, id uint64) (string, error)
}

// CruiseStore is the cruise collaborator contract the booking core
// consumes: capacity, status and route info plus the single status
// write used when a cruise is cancelled.
type CruiseStore interface {
    GetInfoByID(ctx context.Context, id uint64) (*repository.CruiseInfo, error)
    GetInfoByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*repository.CruiseInfo, error)
    UpdateStatusTx(ctx context.Context, tx *sql.Tx, cruiseID, statusID uint64) error
}

// BookingStore persists booking rows.
type BookingStore interface {
    CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking, blockingStatusIDs []uint64) error
    GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error)
    UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID, statusID uint64) error
    OccupiedSeats(ctx context.Context, cruiseID uint64, blockingStatusIDs []uint64) ([]uint32, error)
    ListByCruiseAndStatusTx(ctx context.Context, tx *sql.Tx, cruiseID uint64, statusIDs []uint64) ([]model.Booking, error)
    ListExpiredTx(ctx context.Context, tx *sql.Tx, reservedStatusID uint64, cutoff time.Time) ([]model.Booking, error)
}

// HistoryStore is the append-only audit ledger.
type HistoryStore interface {
    InsertTx(ctx context.Context, tx *sql.Tx, h *model.BookingHistory) error
    ListByBooking(ctx context.Context, bookingID uint64) ([]model.BookingHistory, error)
    Search(ctx context.Context, q repository.HistorySearchQuery) ([]model.BookingHistory, error)
}

// ViewStore serves the denormalized read projections.
type ViewStore interface {
    ViewByID(ctx context.Context, bookingID uint64) (*repository.BookingRow, error)
    ViewsByUser(ctx context.Context, googleID string) ([]repository.BookingRow, error)
    ViewsByCruise(ctx context.Context, cruiseID uint64) ([]repository.BookingRow, error)
    Search(ctx context.Context, q repository.BookingSearchQuery) ([]repository.BookingRow, error)
}

// Identity is the caller as established by the session middleware.
type Identity struct {
    GoogleID string
    Admin    bool
}

// Owns reports whether the identity may act on a booking owned by the
// given subject: the owner themselves, or any administrator.
func (id Identity) Owns(googleID string) bool {
    return id.Admin || id.GoogleID == googleID
}

var (
    _ StatusStore  = (*repository.StatusRepo)(nil)
    _ CruiseStore  = (*repository.CruiseRepo)(nil)
    _ BookingStore = (*repository.BookingRepo)(nil)
    _ HistoryStore = (*repository.HistoryRepo)(nil)
    _ ViewStore    = (*repository.BookingRepo)(nil)
)
