package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin         Role = "Managing Staff"
	RoleResident      Role = "Resident"
	RoleSecurityStaff Role = "Security Staff"
)

// ScopeUser is the authorization scope of a principal without a role claim.
const ScopeUser = "USER"

// ParseRole accepts the canonical labels plus the short aliases used by older clients.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "managing staff", "managing_staff", "admin":
		return RoleAdmin, nil
	case "resident":
		return RoleResident, nil
	case "security staff", "security_staff", "securitystaff":
		return RoleSecurityStaff, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := capabilities[r]
	return ok
}

// Scope is the coarse authorization scope derived from the role claim,
// e.g. ROLE_MANAGING_STAFF. Unknown or empty roles map to USER.
func (r Role) Scope() string {
	if !r.Valid() {
		return ScopeUser
	}
	return "ROLE_" + strings.ToUpper(strings.ReplaceAll(string(r), " ", "_"))
}

// Can reports whether the role grants capability c.
func (r Role) Can(c Capability) bool {
	_, ok := capabilities[r][c]
	return ok
}

// Capability names one action a route guard may require.
type Capability string

const (
	CapManageResidents         Capability = "residents:manage"
	CapManageStaff             Capability = "staff:manage"
	CapViewReports             Capability = "reports:view"
	CapRequestVisit            Capability = "visits:request"
	CapViewOwnVisits           Capability = "visits:own"
	CapViewVisitHistory        Capability = "visits:history"
	CapUpdateVisitStatus       Capability = "visits:status"
	CapVerifyVisitor           Capability = "visitors:verify"
	CapLogVisitorDetails       Capability = "visitors:details"
	CapViewVerificationHistory Capability = "verifications:history"
	CapViewManager             Capability = "profile:manager"
)

func capSet(cs ...Capability) map[Capability]struct{} {
	m := make(map[Capability]struct{}, len(cs))
	for _, c := range cs {
		m[c] = struct{}{}
	}
	return m
}

var capabilities = map[Role]map[Capability]struct{}{
	RoleAdmin: capSet(
		CapManageResidents,
		CapManageStaff,
		CapViewReports,
		CapViewVisitHistory,
		CapUpdateVisitStatus,
		CapViewVerificationHistory,
	),
	RoleResident: capSet(
		CapRequestVisit,
		CapViewOwnVisits,
		CapViewManager,
	),
	RoleSecurityStaff: capSet(
		CapVerifyVisitor,
		CapLogVisitorDetails,
		CapViewVerificationHistory,
		CapViewVisitHistory,
		CapUpdateVisitStatus,
	),
}
