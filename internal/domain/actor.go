package domain

// Actor is the authenticated caller of a request. It is built per request
// from the access token and passed explicitly to services.
type Actor struct {
	UserID int64
	Role   UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess reports whether the actor may act on a resource owned by ownerID.
func (a Actor) CanAccess(ownerID int64) bool {
	return a.IsAdmin() || (a.UserID != 0 && a.UserID == ownerID)
}
