package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/avolkov/task-manager-api/internal/auth"
	"github.com/avolkov/task-manager-api/internal/dto"
	"github.com/avolkov/task-manager-api/internal/models"
	"github.com/avolkov/task-manager-api/internal/repository"
	"github.com/avolkov/task-manager-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type userHandlerEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupUserHandlerEnv(t *testing.T) userHandlerEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Task{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo, auth.NewTokenService("test-secret"))
	handler := NewUserHandler(userService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/users/", handler.Root)
	r.POST("/users/", handler.Register)
	r.POST("/users/token", handler.Login)

	return userHandlerEnv{db: db, router: r}
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUserHandler_Root(t *testing.T) {
	env := setupUserHandlerEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/users/", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "All working", response.Message)
}

func TestUserHandler_Register(t *testing.T) {
	env := setupUserHandlerEnv(t)

	w := postJSON(t, env.router, "/users/", map[string]string{
		"email":    "a@x.com",
		"password": "123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "id")
	require.Equal(t, "a@x.com", body["email"])
	require.NotContains(t, body, "password")
	require.NotContains(t, body, "password_hash")

	var stored models.User
	require.NoError(t, env.db.Where("email = ?", "a@x.com").First(&stored).Error)
	require.NotEqual(t, "123", stored.PasswordHash)
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupUserHandlerEnv(t)

	w := postJSON(t, env.router, "/users/", map[string]string{
		"email":    "a@x.com",
		"password": "123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, env.router, "/users/", map[string]string{
		"email":    "a@x.com",
		"password": "another",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Register_MissingFields(t *testing.T) {
	env := setupUserHandlerEnv(t)

	w := postJSON(t, env.router, "/users/", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Login(t *testing.T) {
	env := setupUserHandlerEnv(t)

	w := postJSON(t, env.router, "/users/", map[string]string{
		"email":    "a@x.com",
		"password": "123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postForm(t, env.router, "/users/token", url.Values{
		"username": {"a@x.com"},
		"password": {"123"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var token dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.AccessToken)
	require.Equal(t, "bearer", token.TokenType)
}

func TestUserHandler_Login_BadCredentials(t *testing.T) {
	env := setupUserHandlerEnv(t)

	w := postJSON(t, env.router, "/users/", map[string]string{
		"email":    "a@x.com",
		"password": "123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postForm(t, env.router, "/users/token", url.Values{
		"username": {"a@x.com"},
		"password": {"32134"},
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postForm(t, env.router, "/users/token", url.Values{
		"username": {"unknown@x.com"},
		"password": {"123"},
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
