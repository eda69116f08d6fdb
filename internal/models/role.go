package models

import (
	"strings"
	"time"
)

// Role is the closed set of roles the system knows about. Decision logic
// always operates on this tag, never on the raw string from a request.
type Role string

const (
	RoleSuperAdmin Role = "SuperAdmin"
	RoleAdmin      Role = "Admin"
	RoleEmployee   Role = "Employee"
)

// DefaultRole is assigned when user creation supplies no role.
const DefaultRole = RoleEmployee

// ParseRole normalizes a case-insensitive role name to its canonical tag.
// Unrecognized names return false; they are never mapped to a default.
func ParseRole(name string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SUPERADMIN":
		return RoleSuperAdmin, true
	case "ADMIN":
		return RoleAdmin, true
	case "EMPLOYEE":
		return RoleEmployee, true
	default:
		return "", false
	}
}

// Level places the three roles on their total order: SuperAdmin > Admin > Employee.
func (r Role) Level() int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleEmployee:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return r.Level() >= other.Level()
}

func (r Role) String() string {
	return string(r)
}

// UserRole is the reference table backing the Role tag. It exists for
// referential integrity and reporting; behavior never depends on its rows.
type UserRole struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      Role      `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Users []User `gorm:"foreignKey:RoleID" json:"-"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
