package services

import (
	"testing"

	"github.com/avolkov/task-manager-api/internal/auth"
	"github.com/avolkov/task-manager-api/internal/models"
	"github.com/avolkov/task-manager-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type userTestEnv struct {
	db      *gorm.DB
	service *UserService
}

func setupUserTestEnv(t *testing.T) userTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Task{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	service := NewUserService(repository.NewUserRepository(db), auth.NewTokenService("test-secret"))

	return userTestEnv{db: db, service: service}
}

func TestUserService_Register(t *testing.T) {
	env := setupUserTestEnv(t)

	user, err := env.service.Register(RegisterInput{Email: "a@x.com", Password: "123"})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
	require.True(t, user.IsActive)
	require.NotEqual(t, "123", user.PasswordHash)

	_, err = env.service.Register(RegisterInput{Email: "a@x.com", Password: "456"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_Register_Validation(t *testing.T) {
	env := setupUserTestEnv(t)

	_, err := env.service.Register(RegisterInput{Email: "  ", Password: "123"})
	require.ErrorIs(t, err, ErrEmailRequired)

	_, err = env.service.Register(RegisterInput{Email: "a@x.com", Password: ""})
	require.ErrorIs(t, err, ErrPasswordRequired)
}

func TestUserService_Login(t *testing.T) {
	env := setupUserTestEnv(t)

	_, err := env.service.Register(RegisterInput{Email: "a@x.com", Password: "123"})
	require.NoError(t, err)

	token, err := env.service.Login(LoginInput{Email: "a@x.com", Password: "123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := env.service.Resolve(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
}

func TestUserService_Login_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	env := setupUserTestEnv(t)

	_, err := env.service.Register(RegisterInput{Email: "a@x.com", Password: "123"})
	require.NoError(t, err)

	_, wrongPwd := env.service.Login(LoginInput{Email: "a@x.com", Password: "nope"})
	require.ErrorIs(t, wrongPwd, ErrInvalidCredentials)

	_, unknown := env.service.Login(LoginInput{Email: "b@x.com", Password: "123"})
	require.ErrorIs(t, unknown, ErrInvalidCredentials)
}

func TestUserService_Resolve_InvalidToken(t *testing.T) {
	env := setupUserTestEnv(t)

	_, err := env.service.Resolve("not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestUserService_Resolve_DeletedUser(t *testing.T) {
	env := setupUserTestEnv(t)

	user, err := env.service.Register(RegisterInput{Email: "a@x.com", Password: "123"})
	require.NoError(t, err)

	token, err := env.service.Login(LoginInput{Email: "a@x.com", Password: "123"})
	require.NoError(t, err)

	require.NoError(t, env.service.Delete(user.ID))

	_, err = env.service.Resolve(token)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete_CascadesTasks(t *testing.T) {
	env := setupUserTestEnv(t)

	user, err := env.service.Register(RegisterInput{Email: "a@x.com", Password: "123"})
	require.NoError(t, err)

	tasks := []models.Task{
		{Title: "t1", Priority: models.TaskPriorityLow, Status: models.TaskStatusNew, OwnerID: user.ID},
		{Title: "t2", Priority: models.TaskPriorityHigh, Status: models.TaskStatusNew, OwnerID: user.ID},
	}
	require.NoError(t, env.db.Create(&tasks).Error)

	require.NoError(t, env.service.Delete(user.ID))

	var remaining int64
	require.NoError(t, env.db.Model(&models.Task{}).Where("owner_id = ?", user.ID).Count(&remaining).Error)
	require.Zero(t, remaining)

	require.ErrorIs(t, env.service.Delete(user.ID), ErrUserNotFound)
}
