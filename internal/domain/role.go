package domain

// Role is a workspace membership role.
type Role string

const (
	RoleOwner       Role = "OWNER"
	RoleAdmin       Role = "ADMIN"
	RoleContributor Role = "CONTRIBUTOR"
	RoleViewer      Role = "VIEWER"
)

// roleRanks orders roles for threshold checks. Higher rank implies every
// capability of the ranks below it.
var roleRanks = map[Role]int{
	RoleOwner:       4,
	RoleAdmin:       3,
	RoleContributor: 2,
	RoleViewer:      1,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// AtLeast reports whether r carries the capabilities of required.
func (r Role) AtLeast(required Role) bool {
	return roleRanks[r] >= roleRanks[required]
}
