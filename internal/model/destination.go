package model

// Galaxy, StarSystem and Destination form the name-resolution chain
// used by denormalized booking views.  Administration of these tables
// happens elsewhere; the booking core only reads them.

// Galaxy is one row of the galaxies table.
type Galaxy struct {
    ID   uint64 // galaxies.galaxy_id
    Name string // galaxies.name
}

// StarSystem is one row of the star_systems table.
type StarSystem struct {
    ID       uint64 // star_systems.star_system_id
    GalaxyID uint64 // star_systems.galaxy_id
    Name     string // star_systems.name
}

// Destination is one row of the destinations table.  Cruises depart
// from and arrive at destinations.
type Destination struct {
    ID           uint64 // destinations.destination_id
    StarSystemID uint64 // destinations.star_system_id
    Name         string // destinations.name
    IsActive     bool   // destinations.is_active
}
