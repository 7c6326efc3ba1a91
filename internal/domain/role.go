package domain

// Role enumerates the portal audiences.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
)

// Valid reports whether the role is one the portal can route.
func (r Role) Valid() bool {
	return r == RoleDonor || r == RoleVolunteer
}
