package service

import (
    "context"
    "time"

    "github.com/stellarpath/cruise-booking/internal/model"
    "github.com/stellarpath/cruise-booking/internal/repository"
)

// BookingView is the read-side projection of one booking, denormalized
// for display: owner, route, ship and status are resolved to names so
// API consumers never join reference tables themselves.
type BookingView struct {
    ID             uint64         `json:"booking_id"`
    GoogleID       string         `json:"google_id"`
    UserName       string         `json:"user_name"`
    UserEmail      string         `json:"user_email"`
    CruiseID       uint64         `json:"cruise_id"`
    Departure      string         `json:"departure"`
    Arrival        string         `json:"arrival"`
    Spaceship      string         `json:"spaceship"`
    SeatNumber     uint32         `json:"seat_number"`
    SeatPriceCents uint64         `json:"seat_price_cents"`
    StartsAt       time.Time      `json:"starts_at"`
    EndsAt         time.Time      `json:"ends_at"`
    BookingDate    time.Time      `json:"booking_date"`
    Expiration     time.Time      `json:"booking_expiration"`
    Status         string         `json:"status"`
    History        []HistoryEntry `json:"history,omitempty"`
}

// HistoryEntry is one audit-trail transition with status ids resolved
// to names.  PreviousStatus is empty for the creation record.
type HistoryEntry struct {
    ID             uint64    `json:"history_id"`
    BookingID      uint64    `json:"booking_id"`
    PreviousStatus string    `json:"previous_status,omitempty"`
    NewStatus      string    `json:"new_status"`
    ChangedAt      time.Time `json:"changed_at"`
}

// BookingSearch carries admin search criteria.  Status may be given
// by name or by id; when both are set the name wins and is resolved
// through the registry before the query hits storage.
type BookingSearch struct {
    GoogleID   string
    CruiseID   uint64
    StatusName string
    StatusID   uint64
    SeatNumber uint32
    From       *time.Time
    To         *time.Time
}

// HistorySearch mirrors BookingSearch for the audit ledger, with the
// same name-over-id precedence for each status criterion.
type HistorySearch struct {
    BookingID        uint64
    PreviousStatus   string
    PreviousStatusID *uint64
    NewStatus        string
    NewStatusID      *uint64
    From             *time.Time
    To               *time.Time
}

// BookingQueryService serves the read side: single-booking views with
// embedded history, per-user and per-cruise listings and the admin
// searches.  It never writes; all projections come from one
// denormalized select in the repository layer.
type BookingQueryService struct {
    views    ViewStore
    history  HistoryStore
    cruises  CruiseStore
    registry *StatusRegistry
}

// NewBookingQueryService constructs the read-side service.
func NewBookingQueryService(views ViewStore, history HistoryStore, cruises CruiseStore, registry *StatusRegistry) *BookingQueryService {
    return &BookingQueryService{views: views, history: history, cruises: cruises, registry: registry}
}

// GetByID returns the view for one booking with its full history
// trail, most recent transition first.  Non-admin requesters may only
// view their own bookings (repository.ErrForbidden).
func (s *BookingQueryService) GetByID(ctx context.Context, bookingID uint64, requester Identity) (*BookingView, error) {
    row, err := s.views.ViewByID(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if !requester.Owns(row.GoogleID) {
        return nil, repository.ErrForbidden
    }
    trail, err := s.history.ListByBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    view := s.toView(ctx, row)
    view.History = s.toEntries(ctx, trail)
    return view, nil
}

// GetByUser returns views for every booking owned by the identity,
// newest first, without history trails.
func (s *BookingQueryService) GetByUser(ctx context.Context, googleID string) ([]BookingView, error) {
    rows, err := s.views.ViewsByUser(ctx, googleID)
    if err != nil {
        return nil, err
    }
    return s.toViews(ctx, rows), nil
}

// GetByCruise returns views for every booking on a cruise ordered by
// seat number, or repository.ErrCruiseNotFound when the cruise does
// not exist.  Admin-only; the handler enforces the role.
func (s *BookingQueryService) GetByCruise(ctx context.Context, cruiseID uint64) ([]BookingView, error) {
    if _, err := s.cruises.GetInfoByID(ctx, cruiseID); err != nil {
        return nil, err
    }
    rows, err := s.views.ViewsByCruise(ctx, cruiseID)
    if err != nil {
        return nil, err
    }
    return s.toViews(ctx, rows), nil
}

// GetHistory returns the audit trail for one booking, most recent
// first, under the same ownership rule as GetByID.
func (s *BookingQueryService) GetHistory(ctx context.Context, bookingID uint64, requester Identity) ([]HistoryEntry, error) {
    row, err := s.views.ViewByID(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if !requester.Owns(row.GoogleID) {
        return nil, repository.ErrForbidden
    }
    trail, err := s.history.ListByBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    return s.toEntries(ctx, trail), nil
}

// Search runs the admin booking search.  A status name that does not
// exist in the registry fails with repository.ErrStatusNotFound rather
// than silently matching nothing.
func (s *BookingQueryService) Search(ctx context.Context, q BookingSearch) ([]BookingView, error) {
    rq := repository.BookingSearchQuery{
        GoogleID:   q.GoogleID,
        CruiseID:   q.CruiseID,
        SeatNumber: q.SeatNumber,
        From:       q.From,
        To:         q.To,
    }
    switch {
    case q.StatusName != "":
        id, err := s.registry.BookingStatusID(ctx, q.StatusName)
        if err != nil {
            return nil, err
        }
        rq.StatusID = id
    case q.StatusID != 0:
        rq.StatusID = q.StatusID
    }
    rows, err := s.views.Search(ctx, rq)
    if err != nil {
        return nil, err
    }
    return s.toViews(ctx, rows), nil
}

// SearchHistory runs the admin audit-ledger search.  Status names are
// resolved to ids up front; id criteria pass through as given.
func (s *BookingQueryService) SearchHistory(ctx context.Context, q HistorySearch) ([]HistoryEntry, error) {
    rq := repository.HistorySearchQuery{From: q.From, To: q.To}
    if q.BookingID != 0 {
        id := q.BookingID
        rq.BookingID = &id
    }
    switch {
    case q.PreviousStatus != "":
        id, err := s.registry.BookingStatusID(ctx, q.PreviousStatus)
        if err != nil {
            return nil, err
        }
        rq.PreviousStatusID = &id
    case q.PreviousStatusID != nil:
        rq.PreviousStatusID = q.PreviousStatusID
    }
    switch {
    case q.NewStatus != "":
        id, err := s.registry.BookingStatusID(ctx, q.NewStatus)
        if err != nil {
            return nil, err
        }
        rq.NewStatusID = &id
    case q.NewStatusID != nil:
        rq.NewStatusID = q.NewStatusID
    }
    trail, err := s.history.Search(ctx, rq)
    if err != nil {
        return nil, err
    }
    return s.toEntries(ctx, trail), nil
}

func (s *BookingQueryService) toView(ctx context.Context, row *repository.BookingRow) *BookingView {
    status := row.StatusName
    if status == "" {
        status = s.registry.BookingStatusName(ctx, row.StatusID)
    }
    return &BookingView{
        ID:             row.ID,
        GoogleID:       row.GoogleID,
        UserName:       row.UserName,
        UserEmail:      row.UserEmail,
        CruiseID:       row.CruiseID,
        Departure:      row.DepartureName,
        Arrival:        row.ArrivalName,
        Spaceship:      row.SpaceshipName,
        SeatNumber:     row.SeatNumber,
        SeatPriceCents: row.SeatPriceCents,
        StartsAt:       row.StartsAt,
        EndsAt:         row.EndsAt,
        BookingDate:    row.BookingDate,
        Expiration:     row.Expiration,
        Status:         status,
    }
}

func (s *BookingQueryService) toViews(ctx context.Context, rows []repository.BookingRow) []BookingView {
    views := make([]BookingView, 0, len(rows))
    for i := range rows {
        views = append(views, *s.toView(ctx, &rows[i]))
    }
    return views
}

// toEntries resolves status ids leniently: an id with no reference row
// renders as Unknown so a stale trail still displays.
func (s *BookingQueryService) toEntries(ctx context.Context, trail []model.BookingHistory) []HistoryEntry {
    entries := make([]HistoryEntry, 0, len(trail))
    for _, h := range trail {
        e := HistoryEntry{
            ID:        h.ID,
            BookingID: h.BookingID,
            NewStatus: s.registry.BookingStatusName(ctx, h.NewStatusID),
            ChangedAt: h.ChangedAt,
        }
        if h.PreviousStatusID != 0 {
            e.PreviousStatus = s.registry.BookingStatusName(ctx, h.PreviousStatusID)
        }
        entries = append(entries, e)
    }
    return entries
}
