package model

// BookingStatus and CruiseStatus mirror the 'booking_statuses' and
// 'cruise_statuses' reference tables.  Both are small closed sets of
// seed rows that never change while the process is running, which is
// why the registry layer caches resolved ids without invalidation.

// Well-known booking status names as stored in booking_statuses.status_name.
const (
    BookingReserved  = "Reserved"
    BookingPaid      = "Paid"
    BookingCompleted = "Completed"
    BookingCancelled = "Cancelled"
    BookingExpired   = "Expired"
)

// Well-known cruise status names as stored in cruise_statuses.status_name.
const (
    CruiseScheduled  = "Scheduled"
    CruiseInProgress = "InProgress"
    CruiseCompleted  = "Completed"
    CruiseCancelled  = "Cancelled"
)

// StatusUnknown is returned by lenient id→name lookups when the id has
// no matching row.  Display paths prefer a sentinel over an error.
const StatusUnknown = "Unknown"

// BlockingBookingStatuses returns the status names that occupy a seat.
// A new booking may not claim a (cruise, seat) pair while another
// booking for that pair sits in one of these statuses.
func BlockingBookingStatuses() []string {
    return []string{BookingReserved, BookingPaid, BookingCompleted}
}

// BookingStatus is one row of the booking_statuses table.
type BookingStatus struct {
    ID   uint64 // booking_statuses.booking_status_id
    Name string // booking_statuses.status_name
}

// CruiseStatus is one row of the cruise_statuses table.
type CruiseStatus struct {
    ID   uint64 // cruise_statuses.cruise_status_id
    Name string // cruise_statuses.status_name
}
