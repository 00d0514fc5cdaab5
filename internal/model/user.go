package model

import "time"

// User mirrors the users table.  Accounts are created and
// authenticated by the external user directory; this service only
// reads them to resolve seat recipients and attribute catches.
//
// Fields:
//  ID        – primary key identifier.
//  Email     – unique email address used for seat sharing.
//  Name      – display name shown on leaderboards.
//  Role      – ANGLER, STAFF or ADMIN.
//  CreatedAt – creation timestamp.
type User struct {
    ID        uint64    // users.id
    Email     string    // users.email
    Name      string    // users.name
    Role      string    // users.role
    CreatedAt time.Time // users.created_at
}
