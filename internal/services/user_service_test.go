package services

import (
	"testing"

	"github.com/eventreg/event-registration-api/internal/models"
	"github.com/eventreg/event-registration-api/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Single connection so the pragma applies to every statement.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
	))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewUserService(repository.NewUserRepository(db)), db
}

func TestUserService_Signup(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice", user.Username)

	// Stored hash verifies against the password and is not the password
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
}

func TestUserService_SignupValidation(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Signup(SignupInput{Username: "", Email: "a@b.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrMissingSignupFields)

	_, err = svc.Signup(SignupInput{Username: "   ", Email: "a@b.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrMissingSignupFields)

	_, err = svc.Signup(SignupInput{Username: "alice", Email: "not-an-email", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Signup(SignupInput{Username: "alice", Email: "a@b.com", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUserService_SignupConflicts(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Signup(SignupInput{Username: "other", Email: "alice@example.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Signup(SignupInput{Username: "alice", Email: "other@example.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserService_LoginErrorsAreIndistinguishable(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongEmail := svc.Login("nobody@example.com", "secret1")
	_, wrongPassword := svc.Login("alice@example.com", "wrong")

	require.ErrorIs(t, wrongEmail, ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.Equal(t, wrongEmail.Error(), wrongPassword.Error())

	user, err := svc.Login("alice@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
}

func TestUserService_UpdatePartial(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	username := "alice2"
	updated, err := svc.UpdateUser(user.ID, UpdateUserInput{Username: &username})
	require.NoError(t, err)
	require.Equal(t, "alice2", updated.Username)
	// Unspecified fields keep their stored value
	require.Equal(t, "alice@example.com", updated.Email)
	require.Equal(t, user.PasswordHash, updated.PasswordHash)
}

func TestUserService_UpdateRehashesPassword(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	oldHash := user.PasswordHash

	password := "newsecret"
	updated, err := svc.UpdateUser(user.ID, UpdateUserInput{Password: &password})
	require.NoError(t, err)
	require.NotEqual(t, oldHash, updated.PasswordHash)

	_, err = svc.Login("alice@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("alice@example.com", "newsecret")
	require.NoError(t, err)
}

func TestUserService_UpdateRequiresAField(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.UpdateUser(user.ID, UpdateUserInput{})
	require.ErrorIs(t, err, ErrNoUserFields)

	_, err = svc.UpdateUser(9999, UpdateUserInput{})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DeleteIsNotIdempotent(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.ID))

	// Repeating the delete reports the missing row, not success
	require.ErrorIs(t, svc.DeleteUser(user.ID), ErrUserNotFound)

	_, err = svc.GetUser(user.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DeleteCascades(t *testing.T) {
	svc, db := newUserService(t)

	user, err := svc.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	events := NewEventService(
		repository.NewEventRepository(db),
		repository.NewRegistrationRepository(db),
		repository.NewUserRepository(db),
	)
	event, err := events.CreateEvent(CreateEventInput{
		Title:       "Meetup",
		Description: "A meetup",
		Date:        "2024-12-25T18:00:00",
		Location:    "Berlin",
		OrganizerID: user.ID,
		CreatorID:   user.ID,
	})
	require.NoError(t, err)

	_, err = events.Register(event.ID, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.ID))

	var eventCount, regCount int64
	require.NoError(t, db.Model(&models.Event{}).Count(&eventCount).Error)
	require.NoError(t, db.Model(&models.Registration{}).Count(&regCount).Error)
	require.Zero(t, eventCount)
	require.Zero(t, regCount)
}
