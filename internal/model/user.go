package model

import "time"

// User mirrors the 'users' table.  Accounts are created on first
// Google sign-in; the google_id column carries the federated subject
// and is the identity every booking row references.
//
// Fields:
//  ID        – primary key identifier.
//  GoogleID  – federated identity subject (unique).
//  Email     – address reported by the identity provider.
//  FullName  – display name reported by the identity provider.
//  Role      – authorization role (CUSTOMER, ADMIN).
//  IsActive  – soft-delete flag.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type User struct {
    ID        uint64    // users.id
    GoogleID  string    // users.google_id
    Email     string    // users.email
    FullName  string    // users.full_name
    Role      string    // users.role
    IsActive  bool      // users.is_active
    CreatedAt time.Time // users.created_at
    UpdatedAt time.Time // users.updated_at
}
