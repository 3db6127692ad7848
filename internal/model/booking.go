package model

import "time"

// Booking records one passenger's claim on one seat of one cruise.
// Bookings are never deleted; Cancelled and Expired keep the row
// around for the audit trail while freeing the seat for new
// reservations.  Completed is terminal too but still occupies its
// seat.
//
// Fields:
//  ID         – primary key identifier.
//  GoogleID   – owning user's federated identity subject.
//  CruiseID   – cruise being booked.
//  SeatNumber – 1-based seat number within the spaceship capacity.
//  BookingDate – UTC creation timestamp.
//  Expiration – UTC deadline after which a Reserved booking may be
//               swept to Expired (creation + configured TTL).
//  StatusID   – current booking status.
type Booking struct {
    ID          uint64    // bookings.booking_id
    GoogleID    string    // bookings.google_id
    CruiseID    uint64    // bookings.cruise_id
    SeatNumber  uint32    // bookings.seat_number
    BookingDate time.Time // bookings.booking_date
    Expiration  time.Time // bookings.booking_expiration
    StatusID    uint64    // bookings.booking_status_id
}
