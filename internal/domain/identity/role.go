package identity

// Role is the closed set of staff roles. Behavior is driven by the
// permission matrix keyed on these values, never by ad-hoc string
// comparison.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleManager       Role = "MANAGER"
	RoleCashier       Role = "CASHIER"
	RoleAccountant    Role = "ACCOUNTANT"
	RoleWinger        Role = "WINGER"
	RoleShopAssistant Role = "SHOP_ASSISTANT"
)

// AllRoles lists every role in seed order
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleCashier, RoleAccountant, RoleWinger, RoleShopAssistant}
}

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier, RoleAccountant, RoleWinger, RoleShopAssistant:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsAdmin reports whether the role bypasses permission checks
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
