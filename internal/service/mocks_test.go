package service

import (
    "context"
    "database/sql"
    "time"

    "github.com/stretchr/testify/mock"

    "github.com/stellarpath/cruise-booking/internal/model"
    "github.com/stellarpath/cruise-booking/internal/repository"
)

// fakeUnitOfWork runs the callback with a nil transaction; store mocks
// ignore the tx argument, so lifecycle logic is exercised without a
// database.  Calls counts the transactions opened.
type fakeUnitOfWork struct{ Calls int }

func (f *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
    f.Calls++
    return fn(nil)
}

type mockStatusStore struct{ mock.Mock }

func (m *mockStatusStore) BookingStatusIDByName(ctx context.Context, name string) (uint64, error) {
    args := m.Called(ctx, name)
    return args.Get(0).(uint64), args.Error(1)
}

func (m *mockStatusStore) BookingStatusNameByID(ctx context.Context, id uint64) (string, error) {
    args := m.Called(ctx, id)
    return args.String(0), args.Error(1)
}

func (m *mockStatusStore) CruiseStatusIDByName(ctx context.Context, name string) (uint64, error) {
    args := m.Called(ctx, name)
    return args.Get(0).(uint64), args.Error(1)
}

func (m *mockStatusStore) CruiseStatusNameByID(ctx context.Context, id uint64) (string, error) {
    args := m.Called(ctx, id)
    return args.String(0), args.Error(1)
}

type mockCruiseStore struct{ mock.Mock }

func (m *mockCruiseStore) GetInfoByID(ctx context.Context, id uint64) (*repository.CruiseInfo, error) {
    args := m.Called(ctx, id)
    if v := args.Get(0); v != nil {
        return v.(*repository.CruiseInfo), args.Error(1)
    }
    return nil, args.Error(1)
}

func (m *mockCruiseStore) GetInfoByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*repository.CruiseInfo, error) {
    args := m.Called(ctx, id)
    if v := args.Get(0); v != nil {
        return v.(*repository.CruiseInfo), args.Error(1)
    }
    return nil, args.Error(1)
}

func (m *mockCruiseStore) UpdateStatusTx(ctx context.Context, tx *sql.Tx, cruiseID, statusID uint64) error {
    return m.Called(ctx, cruiseID, statusID).Error(0)
}

type mockBookingStore struct{ mock.Mock }

func (m *mockBookingStore) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking, blockingStatusIDs []uint64) error {
    args := m.Called(ctx, b, blockingStatusIDs)
    if err := args.Error(0); err != nil {
        return err
    }
    b.ID = args.Get(1).(uint64)
    return nil
}

func (m *mockBookingStore) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    args := m.Called(ctx, id)
    if v := args.Get(0); v != nil {
        return v.(*model.Booking), args.Error(1)
    }
    return nil, args.Error(1)
}

func (m *mockBookingStore) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID, statusID uint64) error {
    return m.Called(ctx, bookingID, statusID).Error(0)
}

func (m *mockBookingStore) OccupiedSeats(ctx context.Context, cruiseID uint64, blockingStatusIDs []uint64) ([]uint32, error) {
    args := m.Called(ctx, cruiseID, blockingStatusIDs)
    if v := args.Get(0); v != nil {
        return v.([]uint32), args.Error(1)
    }
    return nil, args.Error(1)
}

func (m *mockBookingStore) ListByCruiseAndStatusTx(ctx context.Context, tx *sql.Tx, cruiseID uint64, statusIDs []uint64) ([]model.Booking, error) {
    args := m.Called(ctx, cruiseID, statusIDs)
    if v := args.Get(0); v != nil {
        return v.([]model.Booking), args.Error(1)
    }
    return nil, args.Error(1)
}

func (m *mockBookingStore) ListExpiredTx(ctx context.Context, tx *sql.Tx, reservedStatusID uint64, cutoff time.Time) ([]model.Booking, error) {
    args := m.Called(ctx, reservedStatusID, cutoff)
    if v := args.Get(0); v != nil {
        return v.([]model.Booking), args.Error(1)
    }
    return nil, args.Error(1)
}

type mockHistoryStore struct{ mock.Mock }

func (m *mockHistoryStore) InsertTx(ctx context.Context, tx *sql.Tx, h *model.BookingHistory) error {
    return m.Called(ctx, h).Error(0)
}

func (m *mockHistoryStore) ListByBooking(ctx context.Context, bookingID uint64) ([]model.BookingHistory, error) {
    args := m.Called(ctx, bookingID)
    if v := args.Get(0); v != nil {
        return v.([]model.BookingHistory), args.Error(1)
    }
    return nil, args.Error(1)
}

func (m *mockHistoryStore) Search(ctx context.Context, q repository.HistorySearchQuery) ([]model.BookingHistory, error) {
    args := m.Called(ctx, q)
    if v := args.Get(0); v != nil {
        return v.([]model.BookingHistory), args.Error(1)
    }
    return nil, args.Error(1)
}

type mockViewStore struct{ mock.Mock }

func (m *mockViewStore) ViewByID(ctx context.Context, bookingID uint64) (*repository.BookingRow, error) {
    args := m.Called(ctx, bookingID)
    if v := args.Get(0); v != nil {
        return v.(*repository.BookingRow), args.Error(1)
    }
    return nil, args.Error(1)
}

func (m *mockViewStore) ViewsByUser(ctx context.Context, googleID string) ([]repository.BookingRow, error) {
    args := m.Called(ctx, googleID)
    if v := args.Get(0); v != nil {
        return v.([]repository.BookingRow), args.Error(1)
    }
    return nil, args.Error(1)
}

func (m *mockViewStore) ViewsByCruise(ctx context.Context, cruiseID uint64) ([]repository.BookingRow, error) {
    args := m.Called(ctx, cruiseID)
    if v := args.Get(0); v != nil {
        return v.([]repository.BookingRow), args.Error(1)
    }
    return nil, args.Error(1)
}

func (m *mockViewStore) Search(ctx context.Context, q repository.BookingSearchQuery) ([]repository.BookingRow, error) {
    args := m.Called(ctx, q)
    if v := args.Get(0); v != nil {
        return v.([]repository.BookingRow), args.Error(1)
    }
    return nil, args.Error(1)
}

// statusStoreWithSeed is a convenience builder: a status store mock
// preloaded with the standard seed rows used across tests.
func statusStoreWithSeed() *mockStatusStore {
    s := new(mockStatusStore)
    for name, id := range seedBookingStatuses {
        s.On("BookingStatusIDByName", mock.Anything, name).Return(id, nil).Maybe()
        s.On("BookingStatusNameByID", mock.Anything, id).Return(name, nil).Maybe()
    }
    for name, id := range seedCruiseStatuses {
        s.On("CruiseStatusIDByName", mock.Anything, name).Return(id, nil).Maybe()
        s.On("CruiseStatusNameByID", mock.Anything, id).Return(name, nil).Maybe()
    }
    return s
}

var seedBookingStatuses = map[string]uint64{
    model.BookingReserved:  1,
    model.BookingPaid:      2,
    model.BookingCompleted: 3,
    model.BookingCancelled: 4,
    model.BookingExpired:   5,
}

var seedCruiseStatuses = map[string]uint64{
    model.CruiseScheduled:  1,
    model.CruiseInProgress: 2,
    model.CruiseCompleted:  3,
    model.CruiseCancelled:  4,
}
