package valueobjects

import "fmt"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleStaff:    true,
	RoleCustomer: true,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func NewRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", value)
	}
	return role, nil
}
