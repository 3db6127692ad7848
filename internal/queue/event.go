// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried in BookingLifecycleEvent.Type.
const (
    EventBookingCreated   = "booking.created"
    EventBookingPaid      = "booking.paid"
    EventBookingCancelled = "booking.cancelled"
)

// BookingLifecycleEvent is published after a booking transition
// commits. It carries enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type BookingLifecycleEvent struct {
    Type       string `json:"type"`
    BookingID  uint64 `json:"booking_id"`
    GoogleID   string `json:"google_id"`
    CruiseID   uint64 `json:"cruise_id"`
    SeatNumber uint32 `json:"seat_number"`
    Status     string `json:"status"`
    Departure  string `json:"departure,omitempty"`
    Arrival    string `json:"arrival,omitempty"`
    Spaceship  string `json:"spaceship,omitempty"`
    OccurredAt string `json:"occurred_at"`
}
