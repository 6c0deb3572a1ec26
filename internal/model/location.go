package model

import "time"

// Location represents a coworking site run by a manager.  A location
// groups the bookable spaces found at the same address.  This struct
// corresponds to a row in the `locations` table.
//
// Fields:
//  ID        – primary key identifier.
//  ManagerID – user ID of the site manager.
//  Name      – unique name of the location per manager.
//  Address   – street address shown to customers.
//  City      – optional city used for browsing filters.
//  CreatedAt – timestamp when the location was created.
//  UpdatedAt – timestamp of last update.
type Location struct {
    ID        uint64    // locations.id
    ManagerID uint64    // locations.manager_id
    Name      string    // locations.name
    Address   string    // locations.address
    City      *string   // locations.city (nullable)
    CreatedAt time.Time // locations.created_at
    UpdatedAt time.Time // locations.updated_at
}
