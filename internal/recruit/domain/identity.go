package domain

// Identity is the acting identity resolved for a request: either the guest
// (zero privileges) or an authenticated account with a role. It is a tagged
// value rather than a nullable user so handlers branch on IsGuest instead of
// probing for attribute presence.
type Identity struct {
	UserID string
	Role   Role

	authenticated bool
}

// Guest returns the zero-privilege identity used when no valid session is
// present. The zero Identity value is equivalent.
func Guest() Identity {
	return Identity{}
}

// Authenticated returns the identity of a logged-in account.
func Authenticated(userID string, role Role) Identity {
	return Identity{UserID: userID, Role: role, authenticated: true}
}

// IsGuest reports whether the identity carries no privileges.
func (i Identity) IsGuest() bool { return !i.authenticated }

// HasRole reports whether the identity is authenticated with one of the
// given roles. Always false for guests.
func (i Identity) HasRole(roles ...Role) bool {
	if i.IsGuest() {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
