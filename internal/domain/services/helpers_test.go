package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"
	"hostel-http-service/pkg/logger"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with every table migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.UseNop()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:   "test-secret",
		TokenTTL:       7 * 24 * time.Hour,
		SessionTTL:     time.Hour,
		GoogleClientID: "client-123.apps.googleusercontent.com",
	}
}

type fakeFederated struct {
	email string
	err   error
}

func (f *fakeFederated) VerifyEmail(_ context.Context, _, _ string) (string, error) {
	return f.email, f.err
}

// fixture wires every service over one database.
type fixture struct {
	db        *gorm.DB
	cfg       *config.Config
	jwt       InterfaceJWTService
	creds     CredentialVerifier
	federated *fakeFederated
	auth      InterfaceAuthService
	residents InterfaceResidentService
	staff     InterfaceStaffService
	visits    InterfaceVisitService
	security  InterfaceSecurityService
	profiles  InterfaceProfileService
	admins    InterfaceAdminService
	reports   InterfaceReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	f := &fixture{
		db:        db,
		cfg:       cfg,
		jwt:       jwtService,
		creds:     NewBcryptCredentials(bcrypt.MinCost),
		federated: &fakeFederated{},
	}
	f.auth = NewAuthService(db, cfg, jwtService, f.creds, f.federated)
	f.residents = NewResidentService(db, cfg)
	f.staff = NewStaffService(db, cfg)
	f.visits = NewVisitService(db, cfg)
	f.security = NewSecurityService(db, cfg)
	f.profiles = NewProfileService(db, cfg)
	f.admins = NewAdminService(db, cfg)
	f.reports = NewReportService(db, cfg)
	return f
}

// adminWithProperty registers and onboards an admin, returning the admin id and property id.
func (f *fixture) adminWithProperty(t *testing.T, email string) (uint, uint) {
	t.Helper()
	reg, err := f.auth.Register(RegisterInput{Email: email, Password: "admin-pw", Role: string(models.RoleAdmin)})
	require.NoError(t, err)
	res, err := f.auth.OnboardAdmin(reg.ID, AdminOnboardingInput{
		PropertyName:    "Sunrise Hostel",
		PropertyAddress: "1 Campus Road",
		PropertyType:    "Hostel",
	})
	require.NoError(t, err)
	return reg.ID, res.PropertyID
}

// resident registers and onboards a resident into propertyID, approved when asked.
func (f *fixture) resident(t *testing.T, propertyID uint, email, name, phone, ic string, approved bool) uint {
	t.Helper()
	reg, err := f.auth.Register(RegisterInput{Email: email, Password: "pw"})
	require.NoError(t, err)
	_, err = f.auth.OnboardResident(reg.ID, ResidentOnboardingInput{
		PropertyID: &propertyID,
		Profile:    ProfileFields{Name: name, Phone: phone, IC: ic, Gender: "Female"},
		Room:       "A-101",
	})
	require.NoError(t, err)
	if approved {
		_, err = f.residents.SetApproval(propertyID, reg.ID, true)
		require.NoError(t, err)
	}
	return reg.ID
}

// guard registers a security staff member in propertyID.
func (f *fixture) guard(t *testing.T, propertyID uint, email, phone, ic string) uint {
	t.Helper()
	reg, err := f.auth.Register(RegisterInput{Email: email, Password: "pw", Role: string(models.RoleSecurityStaff)})
	require.NoError(t, err)
	_, err = f.staff.RegisterStaff(propertyID, RegisterStaffInput{
		AccountID: reg.ID,
		Profile:   ProfileFields{Name: "Guard " + phone, Phone: phone, IC: ic, Gender: "Male"},
	})
	require.NoError(t, err)
	return reg.ID
}

var errWriteFailed = errors.New("write failed")

// failWritesOf makes every later create or update whose model has the same
// type as model fail with errWriteFailed.
func failWritesOf(t *testing.T, db *gorm.DB, model interface{}) {
	t.Helper()
	want := reflect.TypeOf(model)
	hook := func(tx *gorm.DB) {
		if tx.Statement.Model != nil && reflect.TypeOf(tx.Statement.Model) == want {
			_ = tx.AddError(errWriteFailed)
		}
	}
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_create", hook))
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_update", hook))
}
