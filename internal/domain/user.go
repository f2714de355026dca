package domain

import "time"

// Role enumerates account roles. Tier-2 technicians hold every Tier-1
// capability plus roster management and unrestricted ticket visibility.
type Role string

const (
	RoleEndUser Role = "END_USER"
	RoleTier1   Role = "TIER1"
	RoleTier2   Role = "TIER2"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleEndUser, RoleTier1, RoleTier2:
		return true
	}
	return false
}

// Capability names an access-controlled action.
type Capability string

const (
	CapabilityViewAllTickets   Capability = "view_all_tickets"
	CapabilityActOnTickets     Capability = "act_on_tickets"
	CapabilityManageCategories Capability = "manage_categories"
	CapabilityManageAssets     Capability = "manage_assets"
	CapabilityManageRoster     Capability = "manage_roster"
	CapabilityViewReports      Capability = "view_reports"
)

var roleCapabilities = map[Role][]Capability{
	RoleEndUser: {},
	RoleTier1: {
		CapabilityViewAllTickets,
		CapabilityActOnTickets,
		CapabilityManageCategories,
		CapabilityManageAssets,
		CapabilityViewReports,
	},
	RoleTier2: {
		CapabilityViewAllTickets,
		CapabilityActOnTickets,
		CapabilityManageCategories,
		CapabilityManageAssets,
		CapabilityViewReports,
		CapabilityManageRoster,
	},
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

// IsTechnician reports whether the role is a support tier.
func (r Role) IsTechnician() bool {
	return r == RoleTier1 || r == RoleTier2
}

// User models any account: end-users who submit tickets and the
// Tier-1/Tier-2 technician roster.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
