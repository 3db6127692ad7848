package service

import (
    "context"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/mock"
    "github.com/stretchr/testify/require"

    "github.com/stellarpath/cruise-booking/internal/model"
    "github.com/stellarpath/cruise-booking/internal/repository"
)

func TestBookingStatusIDCachesAfterFirstLookup(t *testing.T) {
    store := new(mockStatusStore)
    store.On("BookingStatusIDByName", mock.Anything, model.BookingReserved).
        Return(uint64(1), nil).Once()
    r := NewStatusRegistry(store)

    for i := 0; i < 3; i++ {
        id, err := r.BookingStatusID(context.Background(), model.BookingReserved)
        require.NoError(t, err)
        assert.Equal(t, uint64(1), id)
    }
    store.AssertExpectations(t)
}

func TestBookingStatusIDDoesNotCacheFailures(t *testing.T) {
    store := new(mockStatusStore)
    store.On("BookingStatusIDByName", mock.Anything, "Bogus").
        Return(uint64(0), repository.ErrStatusNotFound).Twice()
    r := NewStatusRegistry(store)

    _, err := r.BookingStatusID(context.Background(), "Bogus")
    assert.ErrorIs(t, err, repository.ErrStatusNotFound)
    _, err = r.BookingStatusID(context.Background(), "Bogus")
    assert.ErrorIs(t, err, repository.ErrStatusNotFound)
    store.AssertExpectations(t)
}

func TestCruiseStatusIDCachesIndependently(t *testing.T) {
    store := new(mockStatusStore)
    store.On("CruiseStatusIDByName", mock.Anything, model.CruiseScheduled).
        Return(uint64(1), nil).Once()
    r := NewStatusRegistry(store)

    id, err := r.CruiseStatusID(context.Background(), model.CruiseScheduled)
    require.NoError(t, err)
    assert.Equal(t, uint64(1), id)
    _, err = r.CruiseStatusID(context.Background(), model.CruiseScheduled)
    require.NoError(t, err)
    // Booking namespace stays untouched.
    store.AssertNotCalled(t, "BookingStatusIDByName", mock.Anything, mock.Anything)
}

func TestStatusNameFallsBackToUnknown(t *testing.T) {
    store := new(mockStatusStore)
    store.On("BookingStatusNameByID", mock.Anything, uint64(99)).
        Return("", errors.New("boom"))
    store.On("CruiseStatusNameByID", mock.Anything, uint64(99)).
        Return("", repository.ErrStatusNotFound)
    r := NewStatusRegistry(store)

    assert.Equal(t, model.StatusUnknown, r.BookingStatusName(context.Background(), 99))
    assert.Equal(t, model.StatusUnknown, r.CruiseStatusName(context.Background(), 99))
}

func TestBlockingStatusIDsOrder(t *testing.T) {
    r := NewStatusRegistry(statusStoreWithSeed())

    ids, err := r.BlockingStatusIDs(context.Background())
    require.NoError(t, err)
    assert.Equal(t, []uint64{1, 2, 3}, ids) // Reserved, Paid, Completed
}
