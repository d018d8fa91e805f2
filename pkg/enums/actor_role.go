package enums

import "fmt"

// ActorRole identifies who performs a workflow mutation.
type ActorRole string

const (
	ActorRoleAdmin    ActorRole = "ADMIN"
	ActorRoleSupplier ActorRole = "SUPPLIER"
)

var validActorRoles = []ActorRole{
	ActorRoleAdmin,
	ActorRoleSupplier,
}

// String implements fmt.Stringer.
func (r ActorRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ActorRole.
func (r ActorRole) IsValid() bool {
	for _, candidate := range validActorRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseActorRole converts raw input into an ActorRole.
func ParseActorRole(value string) (ActorRole, error) {
	for _, candidate := range validActorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid actor role %q", value)
}
