package model

import "time"

// BookingHistory is one immutable audit record per booking status
// transition.  Exactly one row is appended, in the same transaction,
// for every successful status-changing operation on a booking.
//
// Fields:
//  ID               – primary key identifier.
//  BookingID        – booking the transition belongs to.
//  PreviousStatusID – status before the change; zero on creation,
//                     when the booking had no prior status.
//  NewStatusID      – status after the change.
//  ChangedAt        – UTC timestamp of the transition.
type BookingHistory struct {
    ID               uint64    // booking_history.history_id
    BookingID        uint64    // booking_history.booking_id
    PreviousStatusID uint64    // booking_history.previous_booking_status_id (0 = none)
    NewStatusID      uint64    // booking_history.new_booking_status_id
    ChangedAt        time.Time // booking_history.changed_at
}
