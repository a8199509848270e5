package services

import (
	"testing"

	"hostel-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVisitRequest(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	residentID := f.resident(t, propertyID, "r@x.com", "Ann", "01", "IC1", true)

	req, err := f.visits.CreateVisitRequest(residentID, VisitRequestInput{
		VisitorName:       "Bob",
		VisitorIdentifier: "bob01",
		VisitorPassword:   "otp-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.VisitStatusPending, req.Status)
	assert.Equal(t, "Ann", req.ResidentName)
	assert.False(t, req.RequestDate.IsZero())

	_, err = f.visits.CreateVisitRequest(residentID, VisitRequestInput{
		VisitorName: "Bob again", VisitorIdentifier: "bob01", VisitorPassword: "otp-2",
	})
	assert.ErrorIs(t, err, ErrDuplicateVisit)

	_, err = f.visits.CreateVisitRequest(9999, VisitRequestInput{
		VisitorName: "Eve", VisitorIdentifier: "eve", VisitorPassword: "x",
	})
	assert.ErrorIs(t, err, ErrResidentNotFound)

	_, err = f.visits.CreateVisitRequest(residentID, VisitRequestInput{VisitorName: "NoId"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	mine, err := f.visits.ResidentVisits(residentID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCreateVisitRequestNeedsApprovedResident(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	residentID := f.resident(t, propertyID, "r@x.com", "Ann", "01", "IC1", false)

	input := VisitRequestInput{VisitorName: "Bob", VisitorIdentifier: "bob01", VisitorPassword: "otp"}
	_, err := f.visits.CreateVisitRequest(residentID, input)
	assert.ErrorIs(t, err, ErrPendingApproval)

	var count int64
	require.NoError(t, f.db.Model(&models.VisitRequest{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = f.residents.SetApproval(propertyID, residentID, true)
	require.NoError(t, err)
	_, err = f.visits.CreateVisitRequest(residentID, input)
	assert.NoError(t, err)
}

func TestUpdateVisitStatus(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	residentID := f.resident(t, propertyID, "r@x.com", "Ann", "01", "IC1", true)

	newRequest := func(identifier string) uint {
		req, err := f.visits.CreateVisitRequest(residentID, VisitRequestInput{
			VisitorName: "V", VisitorIdentifier: identifier, VisitorPassword: "p",
		})
		require.NoError(t, err)
		return req.ID
	}

	id := newRequest("v1")
	_, err := f.visits.UpdateStatus(propertyID, id, "Whatever")
	assert.ErrorIs(t, err, ErrInvalidVisitStatus)

	_, err = f.visits.UpdateStatus(propertyID, id, "Closed")
	assert.ErrorIs(t, err, ErrVisitTransition)

	updated, err := f.visits.UpdateStatus(propertyID, id, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.VisitStatusApproved, updated.Status)

	updated, err = f.visits.UpdateStatus(propertyID, id, "Closed")
	require.NoError(t, err)
	assert.Equal(t, models.VisitStatusClosed, updated.Status)

	_, err = f.visits.UpdateStatus(propertyID, id, "Pending")
	assert.ErrorIs(t, err, ErrVisitTransition)

	rejected := newRequest("v2")
	_, err = f.visits.UpdateStatus(propertyID, rejected, "Rejected")
	require.NoError(t, err)
	_, err = f.visits.UpdateStatus(propertyID, rejected, "Approved")
	assert.ErrorIs(t, err, ErrVisitTransition)

	// another property cannot touch it
	_, otherProperty := f.adminWithProperty(t, "other@x.com")
	_, err = f.visits.UpdateStatus(otherProperty, newRequest("v3"), "Approved")
	assert.ErrorIs(t, err, ErrVisitNotFound)
}

func TestPropertyHistory(t *testing.T) {
	f := newFixture(t)
	_, p1 := f.adminWithProperty(t, "a1@x.com")
	_, p2 := f.adminWithProperty(t, "a2@x.com")
	r1 := f.resident(t, p1, "r1@x.com", "Ann", "01", "IC1", true)
	r2 := f.resident(t, p2, "r2@x.com", "Ben", "02", "IC2", true)

	for i, r := range []uint{r1, r1, r2} {
		_, err := f.visits.CreateVisitRequest(r, VisitRequestInput{
			VisitorName: "V", VisitorIdentifier: string(rune('a' + i)), VisitorPassword: "p",
		})
		require.NoError(t, err)
	}

	history, err := f.visits.PropertyHistory(p1)
	require.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Greater(t, history[0].ID, history[1].ID)
}
