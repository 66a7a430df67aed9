package domain

// Role represents a principal's access level.
type Role string

const (
	// RoleClient may operate only on accounts it owns.
	RoleClient Role = "client"

	// RoleAdmin may operate on any account and manage account lifecycle.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return r == RoleClient || r == RoleAdmin
}

// Principal is the authenticated actor behind a request. Credential
// verification happens upstream; the ledger only consumes the resulting
// identity and role.
type Principal struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the principal holds the administrative role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess is the single owner-or-admin authorization check applied at the
// boundary of every account operation.
func (p Principal) CanAccess(ownerID string) bool {
	return p.IsAdmin() || (p.ID != "" && p.ID == ownerID)
}
