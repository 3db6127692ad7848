package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/mock"
    "github.com/stretchr/testify/require"

    "github.com/stellarpath/cruise-booking/internal/model"
    "github.com/stellarpath/cruise-booking/internal/repository"
)

func newAvailability(cruises *mockCruiseStore, bookings *mockBookingStore) *AvailabilityService {
    return NewAvailabilityService(cruises, bookings, NewStatusRegistry(statusStoreWithSeed()))
}

func TestAvailableSeatsComplementAscending(t *testing.T) {
    cruises := new(mockCruiseStore)
    bookings := new(mockBookingStore)
    svc := newAvailability(cruises, bookings)

    cruises.On("GetInfoByID", mock.Anything, uint64(7)).Return(scheduledCruise(7, 6), nil)
    bookings.On("OccupiedSeats", mock.Anything, uint64(7), []uint64{1, 2, 3}).
        Return([]uint32{2, 5}, nil)

    free, err := svc.AvailableSeats(context.Background(), 7)
    require.NoError(t, err)
    assert.Equal(t, []uint32{1, 3, 4, 6}, free)
}

func TestAvailableSeatsEmptyWhenFullyBooked(t *testing.T) {
    cruises := new(mockCruiseStore)
    bookings := new(mockBookingStore)
    svc := newAvailability(cruises, bookings)

    cruises.On("GetInfoByID", mock.Anything, uint64(7)).Return(scheduledCruise(7, 3), nil)
    bookings.On("OccupiedSeats", mock.Anything, uint64(7), mock.Anything).
        Return([]uint32{1, 2, 3}, nil)

    free, err := svc.AvailableSeats(context.Background(), 7)
    require.NoError(t, err)
    assert.Empty(t, free)
    assert.NotNil(t, free)
}

func TestAvailableSeatsZeroCapacity(t *testing.T) {
    cruises := new(mockCruiseStore)
    bookings := new(mockBookingStore)
    svc := newAvailability(cruises, bookings)

    cruises.On("GetInfoByID", mock.Anything, uint64(7)).Return(scheduledCruise(7, 0), nil)
    bookings.On("OccupiedSeats", mock.Anything, uint64(7), mock.Anything).
        Return([]uint32{}, nil)

    free, err := svc.AvailableSeats(context.Background(), 7)
    require.NoError(t, err)
    assert.Empty(t, free)
}

func TestAvailableSeatsUnknownCruise(t *testing.T) {
    cruises := new(mockCruiseStore)
    bookings := new(mockBookingStore)
    svc := newAvailability(cruises, bookings)

    cruises.On("GetInfoByID", mock.Anything, uint64(404)).
        Return(nil, repository.ErrCruiseNotFound)

    _, err := svc.AvailableSeats(context.Background(), 404)
    assert.ErrorIs(t, err, repository.ErrCruiseNotFound)
}

func TestAvailableSeatsRejectsNonScheduledCruise(t *testing.T) {
    for _, status := range []string{model.CruiseInProgress, model.CruiseCompleted, model.CruiseCancelled} {
        cruises := new(mockCruiseStore)
        bookings := new(mockBookingStore)
        svc := newAvailability(cruises, bookings)

        cruises.On("GetInfoByID", mock.Anything, uint64(7)).
            Return(&repository.CruiseInfo{ID: 7, Capacity: 10, StatusName: status}, nil)

        _, err := svc.AvailableSeats(context.Background(), 7)
        assert.ErrorIs(t, err, repository.ErrInvalidState, "status %s", status)
        bookings.AssertNotCalled(t, "OccupiedSeats", mock.Anything, mock.Anything, mock.Anything)
    }
}
