package entity

type UserRole string

const (
	RoleTraveler UserRole = "traveler"
	RoleOwner    UserRole = "owner"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleTraveler, RoleOwner, RoleAdmin:
		return true
	}
	return false
}
