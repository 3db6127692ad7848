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

func newHistoryMock(t *testing.T) (sqlmock.Sqlmock, *HistoryRepo) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return mock, NewHistoryRepo(db)
}

func TestInsertTxStoresCreationRecordWithNullPrevious(t *testing.T) {
    mock, repo := newHistoryMock(t)

    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    mock.ExpectBegin()
    mock.ExpectExec(`INSERT INTO booking_history`).
        WithArgs(uint64(42), nil, uint64(1), now).
        WillReturnResult(sqlmock.NewResult(9, 1))

    tx, err := repo.db.BeginTx(context.Background(), nil)
    require.NoError(t, err)

    h := &model.BookingHistory{BookingID: 42, NewStatusID: 1, ChangedAt: now}
    require.NoError(t, repo.InsertTx(context.Background(), tx, h))
    assert.Equal(t, uint64(9), h.ID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertTxStoresTransitionWithPrevious(t *testing.T) {
    mock, repo := newHistoryMock(t)

    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    mock.ExpectBegin()
    mock.ExpectExec(`INSERT INTO booking_history`).
        WithArgs(uint64(42), uint64(1), uint64(2), now).
        WillReturnResult(sqlmock.NewResult(10, 1))

    tx, err := repo.db.BeginTx(context.Background(), nil)
    require.NoError(t, err)

    h := &model.BookingHistory{BookingID: 42, PreviousStatusID: 1, NewStatusID: 2, ChangedAt: now}
    require.NoError(t, repo.InsertTx(context.Background(), tx, h))
}

func TestListByBookingMostRecentFirst(t *testing.T) {
    mock, repo := newHistoryMock(t)

    base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    mock.ExpectQuery(`(?s)FROM booking_history.+ORDER BY changed_at DESC, history_id DESC`).
        WithArgs(uint64(42)).
        WillReturnRows(sqlmock.NewRows([]string{
            "history_id", "booking_id", "previous_booking_status_id", "new_booking_status_id", "changed_at",
        }).
            AddRow(uint64(2), uint64(42), uint64(1), uint64(2), base.Add(time.Hour)).
            AddRow(uint64(1), uint64(42), uint64(0), uint64(1), base))

    trail, err := repo.ListByBooking(context.Background(), 42)
    require.NoError(t, err)
    require.Len(t, trail, 2)
    assert.Equal(t, uint64(2), trail[0].ID)
    // Creation record scans its NULL previous status as zero.
    assert.Zero(t, trail[1].PreviousStatusID)
}

func TestHistorySearchAppliesCriteria(t *testing.T) {
    mock, repo := newHistoryMock(t)

    newStatus := uint64(4)
    from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
    mock.ExpectQuery(`new_booking_status_id = \? AND changed_at >= \?`).
        WithArgs(newStatus, from).
        WillReturnRows(sqlmock.NewRows([]string{
            "history_id", "booking_id", "previous_booking_status_id", "new_booking_status_id", "changed_at",
        }).AddRow(uint64(7), uint64(42), uint64(1), newStatus, from.Add(time.Hour)))

    trail, err := repo.Search(context.Background(), HistorySearchQuery{
        NewStatusID: &newStatus,
        From:        &from,
    })
    require.NoError(t, err)
    require.Len(t, trail, 1)
    assert.Equal(t, newStatus, trail[0].NewStatusID)
}
