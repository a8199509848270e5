package services

import (
	"sync"
	"testing"

	"hostel-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifyFixture struct {
	*fixture
	propertyID uint
	guardID    uint
	residentID uint
}

func newVerifyFixture(t *testing.T) *verifyFixture {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	return &verifyFixture{
		fixture:    f,
		propertyID: propertyID,
		guardID:    f.guard(t, propertyID, "g@x.com", "0900", "G-IC"),
		residentID: f.resident(t, propertyID, "a@x.com", "Ann", "0100", "A-IC", true),
	}
}

func (v *verifyFixture) request(t *testing.T, residentID uint, identifier, password string) *models.VisitRequest {
	t.Helper()
	req, err := v.visits.CreateVisitRequest(residentID, VisitRequestInput{
		VisitorName: "Visitor", VisitorIdentifier: identifier, VisitorPassword: password,
	})
	require.NoError(t, err)
	return req
}

func (v *verifyFixture) auditCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, v.db.Model(&models.VerifiedVisitor{}).Count(&n).Error)
	return n
}

func (v *verifyFixture) status(t *testing.T, id uint) models.VisitStatus {
	t.Helper()
	var req models.VisitRequest
	require.NoError(t, v.db.First(&req, id).Error)
	return req.Status
}

func TestVerifyVisitorOnce(t *testing.T) {
	v := newVerifyFixture(t)
	req := v.request(t, v.residentID, "v1", "otp")

	ok, err := v.security.VerifyVisitor(v.guardID, "Ann", "v1", "otp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.VisitStatusApproved, v.status(t, req.ID))

	ok, err = v.security.VerifyVisitor(v.guardID, "Ann", "v1", "otp")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, int64(1), v.auditCount(t))
	assert.Equal(t, models.VisitStatusApproved, v.status(t, req.ID))

	var entry models.VerifiedVisitor
	require.NoError(t, v.db.First(&entry).Error)
	assert.Equal(t, v.guardID, entry.SecurityStaffID)
	assert.Equal(t, req.ID, entry.VisitRequestID)
	assert.Equal(t, models.VerificationStatusVerified, entry.Status)
}

func TestVerifyVisitorNegativeOutcomes(t *testing.T) {
	v := newVerifyFixture(t)
	req := v.request(t, v.residentID, "v1", "otp")

	tests := []struct {
		name                           string
		residentName, identifier, pass string
	}{
		{name: "wrong password", residentName: "Ann", identifier: "v1", pass: "nope"},
		{name: "unknown visitor", residentName: "Ann", identifier: "ghost", pass: "otp"},
		{name: "wrong resident", residentName: "Zed", identifier: "v1", pass: "otp"},
		{name: "empty password", residentName: "Ann", identifier: "v1", pass: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := v.security.VerifyVisitor(v.guardID, tt.residentName, tt.identifier, tt.pass)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}

	assert.Zero(t, v.auditCount(t))
	assert.Equal(t, models.VisitStatusPending, v.status(t, req.ID))
}

func TestVerifyVisitorUnknownStaff(t *testing.T) {
	v := newVerifyFixture(t)
	v.request(t, v.residentID, "v1", "otp")

	_, err := v.security.VerifyVisitor(v.residentID, "Ann", "v1", "otp")
	assert.ErrorIs(t, err, ErrStaffNotFound)
	assert.Zero(t, v.auditCount(t))
}

func TestVerifyVisitorOtherPropertyGuard(t *testing.T) {
	v := newVerifyFixture(t)
	v.request(t, v.residentID, "v1", "otp")

	_, otherProperty := v.adminWithProperty(t, "other@x.com")
	outsider := v.guard(t, otherProperty, "g2@x.com", "0901", "G2-IC")

	ok, err := v.security.VerifyVisitor(outsider, "Ann", "v1", "otp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyVisitorConcurrent(t *testing.T) {
	v := newVerifyFixture(t)
	v.request(t, v.residentID, "v1", "otp")

	var wg sync.WaitGroup
	results := make([]bool, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := v.security.VerifyVisitor(v.guardID, "Ann", "v1", "otp")
			assert.NoError(t, err)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, ok := range results {
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(1), v.auditCount(t))
}

func TestLogVisitorDetailsLatestVerificationWins(t *testing.T) {
	v := newVerifyFixture(t)
	residentB := v.resident(t, v.propertyID, "b@x.com", "Ben", "0200", "B-IC", true)

	reqA := v.request(t, v.residentID, "v1", "otp-a")
	ok, err := v.security.VerifyVisitor(v.guardID, "Ann", "v1", "otp-a")
	require.NoError(t, err)
	require.True(t, ok)

	reqB := v.request(t, residentB, "v1", "otp-b")
	ok, err = v.security.VerifyVisitor(v.guardID, "Ben", "v1", "otp-b")
	require.NoError(t, err)
	require.True(t, ok)

	details, err := v.security.LogVisitorDetailsByUsername("v1", VisitorDetailsInput{
		Name: "Vic", Email: "vic@x.com", Phone: "0300", IC: "V-IC", Gender: "Male", Address: "Town",
	})
	require.NoError(t, err)
	assert.Equal(t, reqB.ID, details.VisitRequestID)
	assert.NotEqual(t, reqA.ID, details.VisitRequestID)

	_, err = v.security.LogVisitorDetailsByUsername("v1", VisitorDetailsInput{
		Name: "Vic", Email: "vic@x.com", Phone: "0300", IC: "V-IC", Gender: "Male", Address: "Town",
	})
	assert.ErrorIs(t, err, ErrVisitorDetailsExist)
}

func TestLogVisitorDetailsTargetsVerifiedVisit(t *testing.T) {
	v := newVerifyFixture(t)
	details := VisitorDetailsInput{
		Name: "Vic", Email: "vic@x.com", Phone: "0300", IC: "V-IC", Gender: "Male", Address: "Town",
	}

	first := v.request(t, v.residentID, "v1", "otp-1")
	ok, err := v.security.VerifyVisitor(v.guardID, "Ann", "v1", "otp-1")
	require.NoError(t, err)
	require.True(t, ok)

	// the same visitor is invited again before the gate logs the first visit
	second := v.request(t, v.residentID, "v1", "otp-2")

	logged, err := v.security.LogVisitorDetailsByUsername("v1", details)
	require.NoError(t, err)
	assert.Equal(t, first.ID, logged.VisitRequestID)
	assert.Equal(t, models.VisitStatusPending, v.status(t, second.ID))

	ok, err = v.security.VerifyVisitor(v.guardID, "Ann", "v1", "otp-2")
	require.NoError(t, err)
	require.True(t, ok)

	logged, err = v.security.LogVisitorDetailsByUsername("v1", details)
	require.NoError(t, err)
	assert.Equal(t, second.ID, logged.VisitRequestID)
}

func TestVerifyVisitorRollsBackWhenAuditFails(t *testing.T) {
	v := newVerifyFixture(t)
	req := v.request(t, v.residentID, "v1", "otp")
	failWritesOf(t, v.db, &models.VerifiedVisitor{})

	ok, err := v.security.VerifyVisitor(v.guardID, "Ann", "v1", "otp")
	assert.ErrorIs(t, err, errWriteFailed)
	assert.False(t, ok)
	assert.Zero(t, v.auditCount(t))
	assert.Equal(t, models.VisitStatusPending, v.status(t, req.ID))
}

func TestLogVisitorDetailsRequiresVerification(t *testing.T) {
	v := newVerifyFixture(t)
	v.request(t, v.residentID, "v1", "otp")

	_, err := v.security.LogVisitorDetailsByUsername("v1", VisitorDetailsInput{
		Name: "Vic", Email: "vic@x.com", Phone: "0300", IC: "V-IC", Gender: "Male", Address: "Town",
	})
	assert.ErrorIs(t, err, ErrVerificationNotFound)

	_, err = v.security.LogVisitorDetailsByUsername("v1", VisitorDetailsInput{Name: "Vic"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestVerificationHistoryScopedToProperty(t *testing.T) {
	v := newVerifyFixture(t)
	v.request(t, v.residentID, "v1", "otp")
	ok, err := v.security.VerifyVisitor(v.guardID, "Ann", "v1", "otp")
	require.NoError(t, err)
	require.True(t, ok)

	history, err := v.security.VerificationHistory(v.propertyID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "v1", history[0].VisitorIdentifier)

	_, otherProperty := v.adminWithProperty(t, "other@x.com")
	history, err = v.security.VerificationHistory(otherProperty)
	require.NoError(t, err)
	assert.Empty(t, history)
}
