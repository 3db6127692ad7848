package model

// ShipModel is one row of the ship_models table.  Capacity lives on
// the model: every ship of the same model seats the same number of
// passengers, and seat numbers on a cruise run 1..Capacity.
type ShipModel struct {
    ID       uint64 // ship_models.ship_model_id
    Name     string // ship_models.name
    Capacity uint32 // ship_models.capacity
}

// Spaceship is one row of the spaceships table.
type Spaceship struct {
    ID          uint64 // spaceships.spaceship_id
    ShipModelID uint64 // spaceships.ship_model_id
    Name        string // spaceships.name
    IsActive    bool   // spaceships.is_active
}
