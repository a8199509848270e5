package services

import (
	"context"
	"errors"
	"testing"

	"hostel-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLoginKeepsRole(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		want      models.Role
	}{
		{name: "default", requested: "", want: models.RoleResident},
		{name: "admin", requested: "Managing Staff", want: models.RoleAdmin},
		{name: "security", requested: "Security Staff", want: models.RoleSecurityStaff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			reg, err := f.auth.Register(RegisterInput{Email: "User@X.com ", Password: "pw1", Role: tt.requested})
			require.NoError(t, err)
			assert.Equal(t, "user@x.com", reg.Email)
			assert.True(t, reg.NeedsOnboarding)
			assert.NotEmpty(t, reg.Token)

			res, err := f.auth.Login("user@x.com", "pw1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Role)

			principal, ok := f.jwt.Authenticate(res.Token)
			require.True(t, ok)
			assert.Equal(t, tt.want, principal.Role)
			assert.Equal(t, reg.ID, principal.AccountID)
		})
	}
}

func TestRegisterRejectsDuplicateEmailAndBadRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(RegisterInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = f.auth.Register(RegisterInput{Email: "A@x.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.auth.Register(RegisterInput{Email: "b@x.com", Password: "pw", Role: "janitor"})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = f.auth.Register(RegisterInput{Email: "", Password: "pw"})
	assert.True(t, errors.As(err, &verr))
}

func TestLoginDoesNotRevealWhichHalfFailed(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(RegisterInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	_, errUnknown := f.auth.Login("nobody@x.com", "pw")
	_, errWrong := f.auth.Login("a@x.com", "wrong")
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

type countingCredentials struct {
	CredentialVerifier
	verifies int
}

func (c *countingCredentials) Verify(hash, password string) bool {
	c.verifies++
	return c.CredentialVerifier.Verify(hash, password)
}

func TestLoginUnknownEmailStillComparesPassword(t *testing.T) {
	f := newFixture(t)
	creds := &countingCredentials{CredentialVerifier: f.creds}
	auth := NewAuthService(f.db, f.cfg, f.jwt, creds, f.federated)

	_, err := auth.Login("nobody@x.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, creds.verifies)

	_, err = auth.Login("nobody@x.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 2, creds.verifies)
}

func TestLoginPendingApproval(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")

	// registered but not onboarded: may log in to finish onboarding
	reg, err := f.auth.Register(RegisterInput{Email: "r@x.com", Password: "pw"})
	require.NoError(t, err)
	res, err := f.auth.Login("r@x.com", "pw")
	require.NoError(t, err)
	assert.False(t, res.IsApproved)

	_, err = f.auth.OnboardResident(reg.ID, ResidentOnboardingInput{
		PropertyID: &propertyID,
		Profile:    ProfileFields{Name: "Ann", Phone: "0100", IC: "IC-1", Gender: "Female"},
		Room:       "B-2",
	})
	require.NoError(t, err)

	_, err = f.auth.Login("r@x.com", "pw")
	assert.ErrorIs(t, err, ErrPendingApproval)
}

func TestOnboardAdminOnlyOnce(t *testing.T) {
	f := newFixture(t)
	reg, err := f.auth.Register(RegisterInput{Email: "boss@x.com", Password: "pw"})
	require.NoError(t, err)

	input := AdminOnboardingInput{PropertyName: "Hall 1", PropertyAddress: "Main St", PropertyType: "Hostel"}
	first, err := f.auth.OnboardAdmin(reg.ID, input)
	require.NoError(t, err)
	assert.True(t, first.IsOnboarded)

	principal, ok := f.jwt.Authenticate(first.Token)
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, principal.Role)

	_, err = f.auth.OnboardAdmin(reg.ID, input)
	assert.ErrorIs(t, err, ErrAlreadyOnboarded)

	var count int64
	require.NoError(t, f.db.Model(&models.Property{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var account models.Account
	require.NoError(t, f.db.First(&account, reg.ID).Error)
	assert.Equal(t, models.RoleAdmin, account.Role)
	assert.True(t, account.Onboarded)
	assert.True(t, account.Approved)
	require.NotNil(t, account.PropertyID)
	assert.Equal(t, first.PropertyID, *account.PropertyID)
}

func TestOnboardAdminRejectsSecurityStaff(t *testing.T) {
	f := newFixture(t)
	reg, err := f.auth.Register(RegisterInput{Email: "g@x.com", Password: "pw", Role: "Security Staff"})
	require.NoError(t, err)

	_, err = f.auth.OnboardAdmin(reg.ID, AdminOnboardingInput{PropertyName: "P", PropertyAddress: "A", PropertyType: "T"})
	assert.ErrorIs(t, err, ErrRoleTransition)

	var count int64
	require.NoError(t, f.db.Model(&models.Property{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOnboardAdminRollsBackWhenAccountUpdateFails(t *testing.T) {
	f := newFixture(t)
	reg, err := f.auth.Register(RegisterInput{Email: "boss@x.com", Password: "pw", Role: string(models.RoleAdmin)})
	require.NoError(t, err)
	failWritesOf(t, f.db, &models.Account{})

	_, err = f.auth.OnboardAdmin(reg.ID, AdminOnboardingInput{
		PropertyName: "Hall 1", PropertyAddress: "Main St", PropertyType: "Hostel",
	})
	assert.ErrorIs(t, err, errWriteFailed)

	var count int64
	require.NoError(t, f.db.Model(&models.Property{}).Count(&count).Error)
	assert.Zero(t, count)

	var account models.Account
	require.NoError(t, f.db.First(&account, reg.ID).Error)
	assert.False(t, account.Onboarded)
	assert.Nil(t, account.PropertyID)
}

func TestOnboardResidentValidation(t *testing.T) {
	f := newFixture(t)
	reg, err := f.auth.Register(RegisterInput{Email: "r@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = f.auth.OnboardResident(reg.ID, ResidentOnboardingInput{})
	assert.ErrorIs(t, err, ErrPropertyRequired)

	missing := uint(99)
	_, err = f.auth.OnboardResident(reg.ID, ResidentOnboardingInput{
		PropertyID: &missing,
		Profile:    ProfileFields{Name: "Ann", Phone: "1", IC: "2", Gender: "F"},
		Room:       "1",
	})
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = f.auth.OnboardResident(404, ResidentOnboardingInput{PropertyID: &missing})
	assert.ErrorIs(t, err, ErrAccountNotFound)

	var account models.Account
	require.NoError(t, f.db.First(&account, reg.ID).Error)
	assert.False(t, account.Onboarded)
}

func TestResidentEndToEnd(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")

	_, err := f.auth.Register(RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	login, err := f.auth.Login("a@x.com", "pw1")
	require.NoError(t, err)
	assert.True(t, login.NeedsOnboarding)

	profile, err := f.auth.OnboardResident(login.ID, ResidentOnboardingInput{
		PropertyID: &propertyID,
		Profile:    ProfileFields{Name: "Ann", Phone: "0123", IC: "900101", Gender: "Female"},
		Room:       "C-3",
	})
	require.NoError(t, err)
	assert.False(t, profile.Approved)
	assert.Equal(t, login.ID, profile.ID)
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Equal(t, models.DefaultProfileAddress, profile.Address)

	_, err = f.auth.Login("a@x.com", "pw1")
	require.ErrorIs(t, err, ErrPendingApproval)

	_, err = f.residents.SetApproval(propertyID, profile.ID, true)
	require.NoError(t, err)

	again, err := f.auth.Login("a@x.com", "pw1")
	require.NoError(t, err)
	assert.True(t, again.IsApproved)
	assert.False(t, again.NeedsOnboarding)
	require.NotNil(t, again.PropertyID)
	assert.Equal(t, propertyID, *again.PropertyID)
}

func TestGoogleLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.GoogleClientID = ""
		_, err := f.auth.GoogleLogin(ctx, "tok", "")
		assert.ErrorIs(t, err, ErrFederatedNotConfigured)
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t)
		f.federated.err = ErrFederatedTokenInvalid
		_, err := f.auth.GoogleLogin(ctx, "tok", "")
		assert.ErrorIs(t, err, ErrFederatedTokenInvalid)
	})

	t.Run("unknown admin is not provisioned", func(t *testing.T) {
		f := newFixture(t)
		f.federated.email = "new@x.com"
		_, err := f.auth.GoogleLogin(ctx, "tok", "Managing Staff")
		assert.ErrorIs(t, err, ErrFederatedAdminUnknown)

		var count int64
		require.NoError(t, f.db.Model(&models.Account{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown resident is created with unusable password", func(t *testing.T) {
		f := newFixture(t)
		f.federated.email = "new@x.com"
		res, err := f.auth.GoogleLogin(ctx, "tok", "")
		require.NoError(t, err)
		assert.Equal(t, models.RoleResident, res.Role)
		assert.True(t, res.NeedsOnboarding)

		_, err = f.auth.Login("new@x.com", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("promotes fresh resident to admin", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.auth.Register(RegisterInput{Email: "new@x.com", Password: "pw"})
		require.NoError(t, err)
		f.federated.email = "new@x.com"

		res, err := f.auth.GoogleLogin(ctx, "tok", "admin")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, res.Role)
	})

	t.Run("does not promote onboarded resident", func(t *testing.T) {
		f := newFixture(t)
		_, propertyID := f.adminWithProperty(t, "admin@x.com")
		f.resident(t, propertyID, "r@x.com", "Ann", "01", "IC1", true)
		f.federated.email = "r@x.com"

		res, err := f.auth.GoogleLogin(ctx, "tok", "Managing Staff")
		require.NoError(t, err)
		assert.Equal(t, models.RoleResident, res.Role)
	})

	t.Run("pending resident is blocked", func(t *testing.T) {
		f := newFixture(t)
		_, propertyID := f.adminWithProperty(t, "admin@x.com")
		f.resident(t, propertyID, "r@x.com", "Ann", "01", "IC1", false)
		f.federated.email = "r@x.com"

		_, err := f.auth.GoogleLogin(ctx, "tok", "")
		assert.ErrorIs(t, err, ErrPendingApproval)
	})
}

func TestListProperties(t *testing.T) {
	f := newFixture(t)
	f.adminWithProperty(t, "admin@x.com")

	properties, err := f.auth.ListProperties()
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "Sunrise Hostel", properties[0].Name)
}
