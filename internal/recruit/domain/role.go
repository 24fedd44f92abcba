package domain

import "fmt"

// Role is the closed set of account roles. Authorization decisions only make
// sense against one of these values; anything else is rejected at the edges.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleApplicant Role = "applicant"
)

// ParseRole validates a stored or submitted role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleRecruiter, RoleApplicant:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is a member of the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Administrative reports whether r may manage candidate and user data.
func (r Role) Administrative() bool {
	return r == RoleAdmin || r == RoleRecruiter
}

func (r Role) String() string { return string(r) }
