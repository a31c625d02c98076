package auth

import "fmt"

// Role is the closed set of account roles. The stored values keep the
// original Indonesian terms ("penjual" = seller, "pembeli" = buyer).
type Role string

const (
	RoleBuyer  Role = "pembeli"
	RoleSeller Role = "penjual"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }
