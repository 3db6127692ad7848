package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/stellarpath/cruise-booking/internal/model"
)

func newMockDB(t *testing.T) (sqlmock.Sqlmock, *BookingRepo) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return mock, NewBookingRepo(db)
}

func sampleBooking() *model.Booking {
    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    return &model.Booking{
        GoogleID:    "google-1",
        CruiseID:    7,
        SeatNumber:  12,
        BookingDate: now,
        Expiration:  now.Add(24 * time.Hour),
        StatusID:    1,
    }
}

func TestCreateTxInsertsWhenSeatFree(t *testing.T) {
    mock, repo := newMockDB(t)

    b := sampleBooking()
    mock.ExpectBegin()
    mock.ExpectExec(`(?s)INSERT INTO bookings.+WHERE NOT EXISTS`).
        WithArgs(
            b.GoogleID, b.CruiseID, b.SeatNumber, b.BookingDate, b.Expiration, b.StatusID,
            b.CruiseID, b.SeatNumber, uint64(1), uint64(2), uint64(3),
        ).
        WillReturnResult(sqlmock.NewResult(42, 1))

    tx, err := repo.db.BeginTx(context.Background(), nil)
    require.NoError(t, err)

    err = repo.CreateTx(context.Background(), tx, b, []uint64{1, 2, 3})
    require.NoError(t, err)
    assert.Equal(t, uint64(42), b.ID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTxReturnsSeatTakenOnZeroRows(t *testing.T) {
    mock, repo := newMockDB(t)

    b := sampleBooking()
    mock.ExpectBegin()
    mock.ExpectExec(`(?s)INSERT INTO bookings.+WHERE NOT EXISTS`).
        WillReturnResult(sqlmock.NewResult(0, 0))

    tx, err := repo.db.BeginTx(context.Background(), nil)
    require.NoError(t, err)

    err = repo.CreateTx(context.Background(), tx, b, []uint64{1, 2, 3})
    assert.ErrorIs(t, err, ErrSeatTaken)
    assert.Zero(t, b.ID)
}

func TestGetByIDNotFound(t *testing.T) {
    mock, repo := newMockDB(t)

    mock.ExpectQuery(`(?s)SELECT .+FROM bookings WHERE booking_id = \?`).
        WithArgs(uint64(404)).
        WillReturnRows(sqlmock.NewRows([]string{
            "booking_id", "google_id", "cruise_id", "seat_number",
            "booking_date", "booking_expiration", "booking_status_id",
        }))

    _, err := repo.GetByID(context.Background(), 404)
    assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestOccupiedSeatsAscending(t *testing.T) {
    mock, repo := newMockDB(t)

    mock.ExpectQuery(`SELECT seat_number FROM bookings`).
        WithArgs(uint64(7), uint64(1), uint64(2), uint64(3)).
        WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).
            AddRow(uint32(2)).AddRow(uint32(5)).AddRow(uint32(9)))

    seats, err := repo.OccupiedSeats(context.Background(), 7, []uint64{1, 2, 3})
    require.NoError(t, err)
    assert.Equal(t, []uint32{2, 5, 9}, seats)
}

func TestOccupiedSeatsEmpty(t *testing.T) {
    mock, repo := newMockDB(t)

    mock.ExpectQuery(`SELECT seat_number FROM bookings`).
        WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))

    seats, err := repo.OccupiedSeats(context.Background(), 7, []uint64{1})
    require.NoError(t, err)
    assert.NotNil(t, seats)
    assert.Empty(t, seats)
}

func TestViewByIDNotFound(t *testing.T) {
    mock, repo := newMockDB(t)

    mock.ExpectQuery(`SELECT b\.booking_id`).
        WithArgs(uint64(404)).
        WillReturnRows(sqlmock.NewRows([]string{"booking_id"}))

    _, err := repo.ViewByID(context.Background(), 404)
    assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestSearchBuildsConjunctiveFilters(t *testing.T) {
    mock, repo := newMockDB(t)

    from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
    mock.ExpectQuery(`b\.google_id = \? AND b\.booking_status_id = \? AND b\.booking_date >= \?`).
        WithArgs("google-1", uint64(2), from).
        WillReturnRows(sqlmock.NewRows([]string{
            "booking_id", "google_id", "full_name", "email", "cruise_id",
            "departure", "arrival", "spaceship", "seat_number", "seat_price_cents",
            "starts_at", "ends_at", "booking_date", "booking_expiration",
            "booking_status_id", "status_name",
        }).AddRow(
            uint64(42), "google-1", "Ada Vega", "ada@example.com", uint64(7),
            "Luna Port", "Titan Base", "SS Andromeda", uint32(12), uint64(990000),
            from, from.Add(72*time.Hour), from, from.Add(24*time.Hour),
            uint64(2), "Paid",
        ))

    rows, err := repo.Search(context.Background(), BookingSearchQuery{
        GoogleID: "google-1",
        StatusID: 2,
        From:     &from,
    })
    require.NoError(t, err)
    require.Len(t, rows, 1)
    assert.Equal(t, "Paid", rows[0].StatusName)
    assert.Equal(t, "Titan Base", rows[0].ArrivalName)
}

func TestSearchNoCriteriaReturnsAll(t *testing.T) {
    mock, repo := newMockDB(t)

    mock.ExpectQuery(`WHERE 1=1 ORDER BY`).
        WillReturnRows(sqlmock.NewRows([]string{"booking_id"}))

    rows, err := repo.Search(context.Background(), BookingSearchQuery{})
    require.NoError(t, err)
    assert.Empty(t, rows)
}
