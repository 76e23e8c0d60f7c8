package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventreg/event-registration-api/internal/models"
	"github.com/eventreg/event-registration-api/internal/repository"
	"github.com/eventreg/event-registration-api/internal/response"
	"github.com/eventreg/event-registration-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type userTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	userService *services.UserService
}

func setupUserTestEnv(t *testing.T) userTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
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

	userService := services.NewUserService(repository.NewUserRepository(db))
	tokenService := services.NewTokenService("test-secret", time.Hour)
	handler := NewUserHandler(userService, tokenService)

	r := gin.New()
	users := r.Group("/users")
	{
		users.POST("/signup", handler.Signup)
		users.POST("/login", handler.Login)
		users.GET("", handler.List)
		users.GET("/:id", handler.Get)
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}

	return userTestEnv{
		db:          db,
		router:      r,
		userService: userService,
	}
}

func (env userTestEnv) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestUserHandler_Signup(t *testing.T) {
	env := setupUserTestEnv(t)

	w := env.do(t, http.MethodPost, "/users/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeEnvelope(t, w)
	require.True(t, body.Success)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	require.NotZero(t, data["id"])
	require.Equal(t, "alice", data["username"])
	require.NotEmpty(t, data["token"])

	// The password never appears in the response, hashed or otherwise
	require.NotContains(t, data, "password")
	require.NotContains(t, data, "password_hash")
	require.NotContains(t, w.Body.String(), "secret1")
}

func TestUserHandler_SignupRejectsDuplicateEmail(t *testing.T) {
	env := setupUserTestEnv(t)

	payload := map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	}
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/users/signup", payload).Code)

	payload["username"] = "other"
	w := env.do(t, http.MethodPost, "/users/signup", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, decodeEnvelope(t, w).Success)
}

func TestUserHandler_LoginFailuresShareOneMessage(t *testing.T) {
	env := setupUserTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/users/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	}).Code)

	wrongPassword := env.do(t, http.MethodPost, "/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	wrongEmail := env.do(t, http.MethodPost, "/users/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, wrongEmail.Code)
	require.Equal(t,
		decodeEnvelope(t, wrongPassword).Message,
		decodeEnvelope(t, wrongEmail).Message,
	)
}

func TestUserHandler_Login(t *testing.T) {
	env := setupUserTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/users/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	}).Code)

	w := env.do(t, http.MethodPost, "/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := decodeEnvelope(t, w).Data.(map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, data["token"])
	require.NotContains(t, data, "password")
}

func TestUserHandler_GetAndList(t *testing.T) {
	env := setupUserTestEnv(t)

	user, err := env.userService.Signup(services.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "password")

	w = env.do(t, http.MethodGet, "/users/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeEnvelope(t, w).Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(user.ID), data["id"])
}

func TestUserHandler_UpdateAndDelete(t *testing.T) {
	env := setupUserTestEnv(t)

	_, err := env.userService.Signup(services.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodPut, "/users/1", map[string]string{"username": "alice2"})
	require.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeEnvelope(t, w).Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "alice2", data["username"])
	require.Equal(t, "alice@example.com", data["email"])

	// An update with no recognized field is rejected
	w = env.do(t, http.MethodPut, "/users/1", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/users/1", nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/users/1", nil).Code)
}
