package service

import (
    "context"

    "github.com/stellarpath/cruise-booking/internal/model"
    "github.com/stellarpath/cruise-booking/internal/repository"
)

// AvailabilityService computes the set of unoccupied seats on a
// cruise: {1..capacity} minus the seats held by bookings in a
// blocking status.
type AvailabilityService struct {
    cruises  CruiseStore
    bookings BookingStore
    registry *StatusRegistry
}

// NewAvailabilityService constructs the seat availability calculator.
func NewAvailabilityService(cruises CruiseStore, bookings BookingStore, registry *StatusRegistry) *AvailabilityService {
    return &AvailabilityService{cruises: cruises, bookings: bookings, registry: registry}
}

// AvailableSeats returns the free seat numbers for a cruise in
// ascending order.  It returns repository.ErrCruiseNotFound when the
// cruise does not exist and repository.ErrInvalidState when the
// cruise is not open for booking (anything other than Scheduled).
// Zero capacity and a fully booked cruise both yield an empty slice.
func (s *AvailabilityService) AvailableSeats(ctx context.Context, cruiseID uint64) ([]uint32, error) {
    cruise, err := s.cruises.GetInfoByID(ctx, cruiseID)
    if err != nil {
        return nil, err
    }
    if cruise.StatusName != model.CruiseScheduled {
        return nil, repository.ErrInvalidState
    }
    blocking, err := s.registry.BlockingStatusIDs(ctx)
    if err != nil {
        return nil, err
    }
    occupied, err := s.bookings.OccupiedSeats(ctx, cruiseID, blocking)
    if err != nil {
        return nil, err
    }
    taken := make(map[uint32]struct{}, len(occupied))
    for _, seat := range occupied {
        taken[seat] = struct{}{}
    }
    free := make([]uint32, 0, int(cruise.Capacity))
    for seat := uint32(1); seat <= cruise.Capacity; seat++ {
        if _, ok := taken[seat]; !ok {
            free = append(free, seat)
        }
    }
    return free, nil
}
