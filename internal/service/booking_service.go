package service

import (
    "context"
    "database/sql"
    "time"

    "github.com/stellarpath/cruise-booking/internal/model"
    "github.com/stellarpath/cruise-booking/internal/repository"
)

// BookingService is the booking lifecycle manager.  It owns every
// booking and booking_history write in the system: creation, payment,
// cancellation, the cruise-wide cascades and the expiration sweep.
// Each operation runs inside one unit-of-work transaction pairing the
// status change with exactly one history record; on any error the
// transaction rolls back and the error propagates unchanged.
//
// Transitions: Reserved --pay--> Paid; Reserved|Paid --cancel-->
// Cancelled; Reserved --expire--> Expired; Paid --cruise
// completion--> Completed.  Cancelled, Expired and Completed are
// terminal.
type BookingService struct {
    uow      UnitOfWork
    bookings BookingStore
    history  HistoryStore
    cruises  CruiseStore
    registry *StatusRegistry
    ttl      time.Duration
}

// NewBookingService constructs the lifecycle manager.  ttl is the
// reservation time-to-live: a created booking expires at creation
// time plus ttl unless paid first.
func NewBookingService(uow UnitOfWork, bookings BookingStore, history HistoryStore, cruises CruiseStore, registry *StatusRegistry, ttl time.Duration) *BookingService {
    return &BookingService{
        uow:      uow,
        bookings: bookings,
        history:  history,
        cruises:  cruises,
        registry: registry,
        ttl:      ttl,
    }
}

// SeatRequest names one seat on one cruise for creation.
type SeatRequest struct {
    CruiseID   uint64 `json:"cruise_id"`
    SeatNumber uint32 `json:"seat_number"`
}

// CreateBooking reserves one seat for the given identity.  The cruise
// must exist (repository.ErrCruiseNotFound), be in the Scheduled
// status (repository.ErrInvalidState), and the seat must lie within
// capacity (repository.ErrSeatOutOfRange) and not be held by a
// blocking booking (repository.ErrSeatTaken).  On success the new
// booking is Reserved with one creation history record.
func (s *BookingService) CreateBooking(ctx context.Context, googleID string, req SeatRequest) (*model.Booking, error) {
    bookings, err := s.CreateBookings(ctx, googleID, []SeatRequest{req})
    if err != nil {
        return nil, err
    }
    return bookings[0], nil
}

// CreateBookings reserves several seats in a single transaction,
// all-or-nothing: the first validation or conflict failure rolls back
// every booking in the batch.
func (s *BookingService) CreateBookings(ctx context.Context, googleID string, reqs []SeatRequest) ([]*model.Booking, error) {
    reservedID, err := s.registry.BookingStatusID(ctx, model.BookingReserved)
    if err != nil {
        return nil, err
    }
    blocking, err := s.registry.BlockingStatusIDs(ctx)
    if err != nil {
        return nil, err
    }
    created := make([]*model.Booking, 0, len(reqs))
    err = s.uow.WithinTx(ctx, func(tx *sql.Tx) error {
        now := time.Now().UTC()
        for _, req := range reqs {
            b, err := s.createTx(ctx, tx, googleID, req, reservedID, blocking, now)
            if err != nil {
                return err
            }
            created = append(created, b)
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    return created, nil
}

// createTx validates one seat request against the cruise read inside
// the transaction and performs the conditional insert plus the
// creation history record.
func (s *BookingService) createTx(ctx context.Context, tx *sql.Tx, googleID string, req SeatRequest, reservedID uint64, blocking []uint64, now time.Time) (*model.Booking, error) {
    cruise, err := s.cruises.GetInfoByIDTx(ctx, tx, req.CruiseID)
    if err != nil {
        return nil, err
    }
    if cruise.StatusName != model.CruiseScheduled {
        return nil, repository.ErrInvalidState
    }
    if req.SeatNumber == 0 || req.SeatNumber > cruise.Capacity {
        return nil, repository.ErrSeatOutOfRange
    }
    b := &model.Booking{
        GoogleID:    googleID,
        CruiseID:    req.CruiseID,
        SeatNumber:  req.SeatNumber,
        BookingDate: now,
        Expiration:  now.Add(s.ttl),
        StatusID:    reservedID,
    }
    if err := s.bookings.CreateTx(ctx, tx, b, blocking); err != nil {
        return nil, err
    }
    h := &model.BookingHistory{
        BookingID:   b.ID,
        NewStatusID: reservedID,
        ChangedAt:   now,
    }
    if err := s.history.InsertTx(ctx, tx, h); err != nil {
        return nil, err
    }
    return b, nil
}

// CancelBooking transitions a Reserved or Paid booking to Cancelled.
// The requester must own the booking or be an administrator
// (repository.ErrForbidden); cancelling a terminal booking fails with
// repository.ErrInvalidState.  The returned booking carries the new
// status.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uint64, requester Identity) (*model.Booking, error) {
    reservedID, err := s.registry.BookingStatusID(ctx, model.BookingReserved)
    if err != nil {
        return nil, err
    }
    paidID, err := s.registry.BookingStatusID(ctx, model.BookingPaid)
    if err != nil {
        return nil, err
    }
    cancelledID, err := s.registry.BookingStatusID(ctx, model.BookingCancelled)
    if err != nil {
        return nil, err
    }
    var booking *model.Booking
    err = s.uow.WithinTx(ctx, func(tx *sql.Tx) error {
        b, err := s.bookings.GetByIDTx(ctx, tx, bookingID)
        if err != nil {
            return err
        }
        if !requester.Owns(b.GoogleID) {
            return repository.ErrForbidden
        }
        if b.StatusID != reservedID && b.StatusID != paidID {
            return repository.ErrInvalidState
        }
        if err := s.transitionTx(ctx, tx, b, cancelledID, time.Now().UTC()); err != nil {
            return err
        }
        booking = b
        return nil
    })
    if err != nil {
        return nil, err
    }
    return booking, nil
}

// PayForBooking transitions a Reserved booking to Paid under the same
// ownership rule as CancelBooking.  Paying for any non-Reserved
// booking fails with repository.ErrInvalidState and appends nothing.
func (s *BookingService) PayForBooking(ctx context.Context, bookingID uint64, requester Identity) (*model.Booking, error) {
    reservedID, err := s.registry.BookingStatusID(ctx, model.BookingReserved)
    if err != nil {
        return nil, err
    }
    paidID, err := s.registry.BookingStatusID(ctx, model.BookingPaid)
    if err != nil {
        return nil, err
    }
    var booking *model.Booking
    err = s.uow.WithinTx(ctx, func(tx *sql.Tx) error {
        b, err := s.bookings.GetByIDTx(ctx, tx, bookingID)
        if err != nil {
            return err
        }
        if !requester.Owns(b.GoogleID) {
            return repository.ErrForbidden
        }
        if b.StatusID != reservedID {
            return repository.ErrInvalidState
        }
        if err := s.transitionTx(ctx, tx, b, paidID, time.Now().UTC()); err != nil {
            return err
        }
        booking = b
        return nil
    })
    if err != nil {
        return nil, err
    }
    return booking, nil
}

// CancelBookingsForCruise cancels every Reserved or Paid booking on a
// cruise, all-or-nothing in one transaction, and returns the number
// transitioned.  Terminal bookings are skipped, so repeating the call
// is idempotent and returns zero.  No ownership check applies: this
// is the system-initiated choke point other subsystems call when a
// cruise, its ship or its destination is withdrawn.
func (s *BookingService) CancelBookingsForCruise(ctx context.Context, cruiseID uint64) (int, error) {
    cancelledID, err := s.registry.BookingStatusID(ctx, model.BookingCancelled)
    if err != nil {
        return 0, err
    }
    active, err := s.activeStatusIDs(ctx)
    if err != nil {
        return 0, err
    }
    count := 0
    err = s.uow.WithinTx(ctx, func(tx *sql.Tx) error {
        if _, err := s.cruises.GetInfoByIDTx(ctx, tx, cruiseID); err != nil {
            return err
        }
        n, err := s.cascadeTx(ctx, tx, cruiseID, active, cancelledID)
        if err != nil {
            return err
        }
        count = n
        return nil
    })
    if err != nil {
        return 0, err
    }
    return count, nil
}

// CancelCruise marks the cruise itself Cancelled and cascades the
// booking cancellations in the same transaction.  Cancelling an
// already-terminal cruise fails with repository.ErrConflict.
func (s *BookingService) CancelCruise(ctx context.Context, cruiseID uint64) (int, error) {
    cruiseCancelledID, err := s.registry.CruiseStatusID(ctx, model.CruiseCancelled)
    if err != nil {
        return 0, err
    }
    bookingCancelledID, err := s.registry.BookingStatusID(ctx, model.BookingCancelled)
    if err != nil {
        return 0, err
    }
    active, err := s.activeStatusIDs(ctx)
    if err != nil {
        return 0, err
    }
    count := 0
    err = s.uow.WithinTx(ctx, func(tx *sql.Tx) error {
        ci, err := s.cruises.GetInfoByIDTx(ctx, tx, cruiseID)
        if err != nil {
            return err
        }
        if ci.StatusName == model.CruiseCancelled || ci.StatusName == model.CruiseCompleted {
            return repository.ErrConflict
        }
        if err := s.cruises.UpdateStatusTx(ctx, tx, cruiseID, cruiseCancelledID); err != nil {
            return err
        }
        n, err := s.cascadeTx(ctx, tx, cruiseID, active, bookingCancelledID)
        if err != nil {
            return err
        }
        count = n
        return nil
    })
    if err != nil {
        return 0, err
    }
    return count, nil
}

// CompleteBookingsForCruise transitions every Paid booking on a
// finished cruise to Completed and returns the number transitioned.
// Reserved bookings are left alone: an unpaid reservation on a
// completed cruise falls to the expiration sweep.
func (s *BookingService) CompleteBookingsForCruise(ctx context.Context, cruiseID uint64) (int, error) {
    paidID, err := s.registry.BookingStatusID(ctx, model.BookingPaid)
    if err != nil {
        return 0, err
    }
    completedID, err := s.registry.BookingStatusID(ctx, model.BookingCompleted)
    if err != nil {
        return 0, err
    }
    count := 0
    err = s.uow.WithinTx(ctx, func(tx *sql.Tx) error {
        if _, err := s.cruises.GetInfoByIDTx(ctx, tx, cruiseID); err != nil {
            return err
        }
        n, err := s.cascadeTx(ctx, tx, cruiseID, []uint64{paidID}, completedID)
        if err != nil {
            return err
        }
        count = n
        return nil
    })
    if err != nil {
        return 0, err
    }
    return count, nil
}

// ExpireBookings transitions every Reserved booking whose expiration
// lies before the cutoff to Expired, one history record each, in one
// transaction.  Intended to be driven by an external scheduler; the
// request path never calls it.
func (s *BookingService) ExpireBookings(ctx context.Context, cutoff time.Time) (int, error) {
    reservedID, err := s.registry.BookingStatusID(ctx, model.BookingReserved)
    if err != nil {
        return 0, err
    }
    expiredID, err := s.registry.BookingStatusID(ctx, model.BookingExpired)
    if err != nil {
        return 0, err
    }
    count := 0
    err = s.uow.WithinTx(ctx, func(tx *sql.Tx) error {
        stale, err := s.bookings.ListExpiredTx(ctx, tx, reservedID, cutoff)
        if err != nil {
            return err
        }
        now := time.Now().UTC()
        for i := range stale {
            if err := s.transitionTx(ctx, tx, &stale[i], expiredID, now); err != nil {
                return err
            }
        }
        count = len(stale)
        return nil
    })
    if err != nil {
        return 0, err
    }
    return count, nil
}

// transitionTx applies one status change and its history record.  The
// booking's StatusID is updated in place so callers observe the new
// status after the transaction commits.
func (s *BookingService) transitionTx(ctx context.Context, tx *sql.Tx, b *model.Booking, newStatusID uint64, now time.Time) error {
    if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, newStatusID); err != nil {
        return err
    }
    h := &model.BookingHistory{
        BookingID:        b.ID,
        PreviousStatusID: b.StatusID,
        NewStatusID:      newStatusID,
        ChangedAt:        now,
    }
    if err := s.history.InsertTx(ctx, tx, h); err != nil {
        return err
    }
    b.StatusID = newStatusID
    return nil
}

// cascadeTx applies one transition to every booking on the cruise
// currently in one of the fromStatusIDs.
func (s *BookingService) cascadeTx(ctx context.Context, tx *sql.Tx, cruiseID uint64, fromStatusIDs []uint64, toStatusID uint64) (int, error) {
    list, err := s.bookings.ListByCruiseAndStatusTx(ctx, tx, cruiseID, fromStatusIDs)
    if err != nil {
        return 0, err
    }
    now := time.Now().UTC()
    for i := range list {
        if err := s.transitionTx(ctx, tx, &list[i], toStatusID, now); err != nil {
            return 0, err
        }
    }
    return len(list), nil
}

// activeStatusIDs resolves the non-terminal, seat-holding statuses a
// cascade cancellation applies to (Reserved and Paid; Completed is
// terminal and stays).
func (s *BookingService) activeStatusIDs(ctx context.Context) ([]uint64, error) {
    reservedID, err := s.registry.BookingStatusID(ctx, model.BookingReserved)
    if err != nil {
        return nil, err
    }
    paidID, err := s.registry.BookingStatusID(ctx, model.BookingPaid)
    if err != nil {
        return nil, err
    }
    return []uint64{reservedID, paidID}, nil
}
