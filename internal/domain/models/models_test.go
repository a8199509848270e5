package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "Managing Staff", want: RoleAdmin},
		{in: "admin", want: RoleAdmin},
		{in: "Resident", want: RoleResident},
		{in: "Security Staff", want: RoleSecurityStaff},
		{in: "SecurityStaff", want: RoleSecurityStaff},
		{in: "janitor", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleScope(t *testing.T) {
	assert.Equal(t, "ROLE_MANAGING_STAFF", RoleAdmin.Scope())
	assert.Equal(t, "ROLE_SECURITY_STAFF", RoleSecurityStaff.Scope())
	assert.Equal(t, ScopeUser, Role("").Scope())
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleAdmin.Can(CapManageResidents))
	assert.False(t, RoleAdmin.Can(CapVerifyVisitor))
	assert.True(t, RoleSecurityStaff.Can(CapVerifyVisitor))
	assert.False(t, RoleSecurityStaff.Can(CapManageStaff))
	assert.True(t, RoleResident.Can(CapRequestVisit))
	assert.False(t, RoleResident.Can(CapUpdateVisitStatus))
	assert.False(t, Role("").Can(CapRequestVisit))
}

func TestVisitStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to VisitStatus
		want     bool
	}{
		{VisitStatusPending, VisitStatusApproved, true},
		{VisitStatusPending, VisitStatusRejected, true},
		{VisitStatusPending, VisitStatusClosed, false},
		{VisitStatusApproved, VisitStatusClosed, true},
		{VisitStatusApproved, VisitStatusPending, false},
		{VisitStatusRejected, VisitStatusApproved, false},
		{VisitStatusClosed, VisitStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
	assert.True(t, VisitStatusRejected.Terminal())
	assert.False(t, VisitStatusPending.Terminal())
}

func TestParseVisitStatus(t *testing.T) {
	st, err := ParseVisitStatus(" approved ")
	require.NoError(t, err)
	assert.Equal(t, VisitStatusApproved, st)

	_, err = ParseVisitStatus("Whatever")
	assert.Error(t, err)
}

func TestAccountPendingApproval(t *testing.T) {
	a := &Account{Role: RoleResident, Onboarded: true}
	assert.True(t, a.PendingApproval())
	a.Approved = true
	assert.False(t, a.PendingApproval())
	assert.False(t, (&Account{Role: RoleResident}).PendingApproval())
	assert.False(t, (&Account{Role: RoleSecurityStaff, Onboarded: true}).PendingApproval())
}
