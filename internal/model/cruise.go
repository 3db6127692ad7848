package model

import "time"

// Cruise mirrors the 'cruises' table.  A cruise runs a spaceship from
// a departure destination to an arrival destination over a fixed
// schedule.  Seat capacity comes from the spaceship's ship model and
// is not duplicated here.
//
// Fields:
//  ID             – primary key identifier.
//  SpaceshipID    – ship assigned to the cruise.
//  DepartureID    – destination the cruise leaves from.
//  ArrivalID      – destination the cruise arrives at.
//  StartsAt       – UTC departure time.
//  EndsAt         – UTC arrival time.
//  SeatPriceCents – price per seat in cents.
//  StatusID       – current cruise status (Scheduled, InProgress,
//                   Completed, Cancelled).
type Cruise struct {
    ID             uint64    // cruises.cruise_id
    SpaceshipID    uint64    // cruises.spaceship_id
    DepartureID    uint64    // cruises.departure_destination_id
    ArrivalID      uint64    // cruises.arrival_destination_id
    StartsAt       time.Time // cruises.starts_at
    EndsAt         time.Time // cruises.ends_at
    SeatPriceCents uint64    // cruises.seat_price_cents
    StatusID       uint64    // cruises.cruise_status_id
}
