package auth

import "github.com/google/uuid"

// Actor is the authenticated identity built once at request entry and
// threaded explicitly through handlers and services. Business logic never
// reads identity from ambient state.
type Actor struct {
	UserID      uuid.UUID
	RoleID      uuid.UUID
	RoleName    string
	IsSuperUser bool
}

// Owns reports whether the actor is the recorded owner of a record
func (a Actor) Owns(ownerID uuid.UUID) bool {
	return a.UserID != uuid.Nil && a.UserID == ownerID
}
