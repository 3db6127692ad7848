package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/mock"
    "github.com/stretchr/testify/require"

    "github.com/stellarpath/cruise-booking/internal/model"
    "github.com/stellarpath/cruise-booking/internal/repository"
)

func newQueries(views *mockViewStore, history *mockHistoryStore) *BookingQueryService {
    return NewBookingQueryService(views, history, new(mockCruiseStore), NewStatusRegistry(statusStoreWithSeed()))
}

func sampleRow() *repository.BookingRow {
    return &repository.BookingRow{
        ID:            42,
        GoogleID:      "owner",
        UserName:      "Ada Vega",
        CruiseID:      7,
        DepartureName: "Luna Port",
        ArrivalName:   "Titan Base",
        SpaceshipName: "SS Andromeda",
        SeatNumber:    12,
        StatusID:      2,
        StatusName:    model.BookingPaid,
    }
}

func TestGetByIDEmbedsResolvedHistory(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := newQueries(views, history)

    views.On("ViewByID", mock.Anything, uint64(42)).Return(sampleRow(), nil)
    history.On("ListByBooking", mock.Anything, uint64(42)).Return([]model.BookingHistory{
        {ID: 2, BookingID: 42, PreviousStatusID: 1, NewStatusID: 2},
        {ID: 1, BookingID: 42, PreviousStatusID: 0, NewStatusID: 1},
    }, nil)

    view, err := svc.GetByID(context.Background(), 42, Identity{GoogleID: "owner"})
    require.NoError(t, err)
    assert.Equal(t, model.BookingPaid, view.Status)
    assert.Equal(t, "Luna Port", view.Departure)
    require.Len(t, view.History, 2)
    assert.Equal(t, model.BookingReserved, view.History[0].PreviousStatus)
    assert.Equal(t, model.BookingPaid, view.History[0].NewStatus)
    // Creation record has no previous status.
    assert.Empty(t, view.History[1].PreviousStatus)
    assert.Equal(t, model.BookingReserved, view.History[1].NewStatus)
}

func TestGetByIDForbiddenForStranger(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := newQueries(views, history)

    views.On("ViewByID", mock.Anything, uint64(42)).Return(sampleRow(), nil)

    _, err := svc.GetByID(context.Background(), 42, Identity{GoogleID: "stranger"})
    assert.ErrorIs(t, err, repository.ErrForbidden)
    history.AssertNotCalled(t, "ListByBooking", mock.Anything, mock.Anything)
}

func TestGetByIDAdminSeesAnyBooking(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := newQueries(views, history)

    views.On("ViewByID", mock.Anything, uint64(42)).Return(sampleRow(), nil)
    history.On("ListByBooking", mock.Anything, uint64(42)).Return([]model.BookingHistory{}, nil)

    _, err := svc.GetByID(context.Background(), 42, Identity{GoogleID: "op", Admin: true})
    assert.NoError(t, err)
}

func TestSearchResolvesStatusName(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := newQueries(views, history)

    views.On("Search", mock.Anything, mock.MatchedBy(func(q repository.BookingSearchQuery) bool {
        return q.StatusID == 2 && q.GoogleID == "owner"
    })).Return([]repository.BookingRow{*sampleRow()}, nil)

    out, err := svc.Search(context.Background(), BookingSearch{GoogleID: "owner", StatusName: model.BookingPaid})
    require.NoError(t, err)
    assert.Len(t, out, 1)
}

func TestSearchRejectsUnknownStatusName(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := NewBookingQueryService(views, history, new(mockCruiseStore), NewStatusRegistry(func() *mockStatusStore {
        s := new(mockStatusStore)
        s.On("BookingStatusIDByName", mock.Anything, "Teleported").
            Return(uint64(0), repository.ErrStatusNotFound)
        return s
    }()))

    _, err := svc.Search(context.Background(), BookingSearch{StatusName: "Teleported"})
    assert.ErrorIs(t, err, repository.ErrStatusNotFound)
    views.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchHistoryResolvesStatusNames(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := newQueries(views, history)

    from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
    history.On("Search", mock.Anything, mock.MatchedBy(func(q repository.HistorySearchQuery) bool {
        return q.PreviousStatusID != nil && *q.PreviousStatusID == 1 &&
            q.NewStatusID != nil && *q.NewStatusID == 4 &&
            q.From != nil && q.From.Equal(from)
    })).Return([]model.BookingHistory{
        {ID: 9, BookingID: 42, PreviousStatusID: 1, NewStatusID: 4},
    }, nil)

    out, err := svc.SearchHistory(context.Background(), HistorySearch{
        PreviousStatus: model.BookingReserved,
        NewStatus:      model.BookingCancelled,
        From:           &from,
    })
    require.NoError(t, err)
    require.Len(t, out, 1)
    assert.Equal(t, model.BookingReserved, out[0].PreviousStatus)
    assert.Equal(t, model.BookingCancelled, out[0].NewStatus)
}

func TestGetByUserMapsRows(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := newQueries(views, history)

    views.On("ViewsByUser", mock.Anything, "owner").
        Return([]repository.BookingRow{*sampleRow()}, nil)

    out, err := svc.GetByUser(context.Background(), "owner")
    require.NoError(t, err)
    require.Len(t, out, 1)
    assert.Equal(t, uint64(42), out[0].ID)
    assert.Empty(t, out[0].History)
}

func TestGetByCruiseRequiresExistingCruise(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    cruises := new(mockCruiseStore)
    svc := NewBookingQueryService(views, history, cruises, NewStatusRegistry(statusStoreWithSeed()))

    cruises.On("GetInfoByID", mock.Anything, uint64(404)).
        Return(nil, repository.ErrCruiseNotFound)

    _, err := svc.GetByCruise(context.Background(), 404)
    assert.ErrorIs(t, err, repository.ErrCruiseNotFound)
    views.AssertNotCalled(t, "ViewsByCruise", mock.Anything, mock.Anything)
}

func TestGetByCruiseOrdersBySeat(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    cruises := new(mockCruiseStore)
    svc := NewBookingQueryService(views, history, cruises, NewStatusRegistry(statusStoreWithSeed()))

    cruises.On("GetInfoByID", mock.Anything, uint64(7)).
        Return(&repository.CruiseInfo{ID: 7, StatusName: model.CruiseScheduled}, nil)
    views.On("ViewsByCruise", mock.Anything, uint64(7)).
        Return([]repository.BookingRow{*sampleRow()}, nil)

    out, err := svc.GetByCruise(context.Background(), 7)
    require.NoError(t, err)
    assert.Len(t, out, 1)
}

func TestSearchAcceptsStatusID(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := newQueries(views, history)

    views.On("Search", mock.Anything, mock.MatchedBy(func(q repository.BookingSearchQuery) bool {
        return q.StatusID == 5
    })).Return([]repository.BookingRow{*sampleRow()}, nil)

    out, err := svc.Search(context.Background(), BookingSearch{StatusID: 5})
    require.NoError(t, err)
    assert.Len(t, out, 1)
}

func TestSearchStatusNameWinsOverID(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := newQueries(views, history)

    views.On("Search", mock.Anything, mock.MatchedBy(func(q repository.BookingSearchQuery) bool {
        return q.StatusID == 2
    })).Return([]repository.BookingRow{}, nil)

    _, err := svc.Search(context.Background(), BookingSearch{StatusName: model.BookingPaid, StatusID: 5})
    require.NoError(t, err)
    views.AssertExpectations(t)
}

func TestSearchHistoryAcceptsStatusIDs(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := newQueries(views, history)

    prev, next := uint64(2), uint64(3)
    history.On("Search", mock.Anything, mock.MatchedBy(func(q repository.HistorySearchQuery) bool {
        return q.PreviousStatusID != nil && *q.PreviousStatusID == prev &&
            q.NewStatusID != nil && *q.NewStatusID == next
    })).Return([]model.BookingHistory{
        {ID: 3, BookingID: 42, PreviousStatusID: 2, NewStatusID: 3},
    }, nil)

    out, err := svc.SearchHistory(context.Background(), HistorySearch{
        PreviousStatusID: &prev,
        NewStatusID:      &next,
    })
    require.NoError(t, err)
    require.Len(t, out, 1)
    assert.Equal(t, model.BookingPaid, out[0].PreviousStatus)
    assert.Equal(t, model.BookingCompleted, out[0].NewStatus)
}

func TestSearchHistoryNameWinsOverID(t *testing.T) {
    views := new(mockViewStore)
    history := new(mockHistoryStore)
    svc := newQueries(views, history)

    stale := uint64(5)
    history.On("Search", mock.Anything, mock.MatchedBy(func(q repository.HistorySearchQuery) bool {
        return q.NewStatusID != nil && *q.NewStatusID == 4
    })).Return([]model.BookingHistory{}, nil)

    _, err := svc.SearchHistory(context.Background(), HistorySearch{
        NewStatus:   model.BookingCancelled,
        NewStatusID: &stale,
    })
    require.NoError(t, err)
    history.AssertExpectations(t)
}
