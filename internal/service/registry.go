package service

import (
    "context"
    "sync"

    "github.com/stellarpath/cruise-booking/internal/model"
)

// StatusRegistry resolves status names to ids with an in-memory cache
// per resolved name.  Status tables are seed data, immutable for the
// process lifetime, so entries are populated lazily on first lookup
// and never invalidated.  Failed lookups are not cached: a missing
// name is an installation problem that should keep surfacing.
type StatusRegistry struct {
    store StatusStore

    mu        sync.Mutex
    bookingID map[string]uint64
    cruiseID  map[string]uint64
}

// NewStatusRegistry returns a registry over the given status store.
func NewStatusRegistry(store StatusStore) *StatusRegistry {
    return &StatusRegistry{
        store:     store,
        bookingID: make(map[string]uint64),
        cruiseID:  make(map[string]uint64),
    }
}

// BookingStatusID resolves a booking status name to its id, serving
// repeat lookups from cache.  Returns repository.ErrStatusNotFound
// when the name is absent from the backing store.
func (r *StatusRegistry) BookingStatusID(ctx context.Context, name string) (uint64, error) {
    r.mu.Lock()
    if id, ok := r.bookingID[name]; ok {
        r.mu.Unlock()
        return id, nil
    }
    r.mu.Unlock()
    id, err := r.store.BookingStatusIDByName(ctx, name)
    if err != nil {
        return 0, err
    }
    r.mu.Lock()
    r.bookingID[name] = id
    r.mu.Unlock()
    return id, nil
}

// CruiseStatusID resolves a cruise status name to its id, cached the
// same way as BookingStatusID.
func (r *StatusRegistry) CruiseStatusID(ctx context.Context, name string) (uint64, error) {
    r.mu.Lock()
    if id, ok := r.cruiseID[name]; ok {
        r.mu.Unlock()
        return id, nil
    }
    r.mu.Unlock()
    id, err := r.store.CruiseStatusIDByName(ctx, name)
    if err != nil {
        return 0, err
    }
    r.mu.Lock()
    r.cruiseID[name] = id
    r.mu.Unlock()
    return id, nil
}

// BookingStatusName resolves an id to its display name.  Unknown ids
// yield the "Unknown" sentinel rather than an error: this path feeds
// display code that should keep rendering whatever it has.
func (r *StatusRegistry) BookingStatusName(ctx context.Context, id uint64) string {
    name, err := r.store.BookingStatusNameByID(ctx, id)
    if err != nil {
        return model.StatusUnknown
    }
    return name
}

// CruiseStatusName resolves a cruise status id leniently, like
// BookingStatusName.
func (r *StatusRegistry) CruiseStatusName(ctx context.Context, id uint64) string {
    name, err := r.store.CruiseStatusNameByID(ctx, id)
    if err != nil {
        return model.StatusUnknown
    }
    return name
}

// BlockingStatusIDs resolves the seat-occupying statuses (Reserved,
// Paid, Completed) in declaration order.
func (r *StatusRegistry) BlockingStatusIDs(ctx context.Context) ([]uint64, error) {
    names := model.BlockingBookingStatuses()
    ids := make([]uint64, 0, len(names))
    for _, n := range names {
        id, err := r.BookingStatusID(ctx, n)
        if err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, nil
}
