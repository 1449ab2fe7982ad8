package services

import (
	"testing"

	"github.com/homemanagement/todo-backend/internal/dto"
	"github.com/homemanagement/todo-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestEnsureAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	require.NoError(t, svc.EnsureAdmin("admin", "admin123", "admin@home.com"))

	var first models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&first).Error)
	assert.True(t, first.IsAdmin())
	assert.True(t, first.HasRole(models.RoleUser))

	// Seeding again must be a no-op, not a delete-and-recreate.
	require.NoError(t, svc.EnsureAdmin("admin", "admin123", "admin@home.com"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var second models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&second).Error)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Password, second.Password)
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	t.Run("valid request", func(t *testing.T) {
		user, err := svc.Create(&dto.CreateUserRequest{
			Username: "bob",
			Email:    "bob@home.com",
			Password: "secret123",
			Roles:    []string{"ROLE_USER"},
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Create(&dto.CreateUserRequest{Username: "bob", Password: "secret123"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := svc.Create(&dto.CreateUserRequest{Password: "secret123"})
		assert.ErrorIs(t, err, ErrUsernameRequired)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Create(&dto.CreateUserRequest{Username: "eve", Password: "abc"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("empty roles default to ROLE_USER", func(t *testing.T) {
		user, err := svc.Create(&dto.CreateUserRequest{Username: "carol", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, []string{models.RoleUser}, user.RoleSet())
	})
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "bob", "secret123", "ROLE_USER")
	svc := NewUserService(db)

	t.Run("blank inputs", func(t *testing.T) {
		err := svc.ChangePassword("bob", &dto.ChangePasswordRequest{})
		assert.ErrorIs(t, err, ErrPasswordRequired)
	})

	t.Run("short new password", func(t *testing.T) {
		err := svc.ChangePassword("bob", &dto.ChangePasswordRequest{
			OldPassword: "secret123", NewPassword: "abc",
		})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword("bob", &dto.ChangePasswordRequest{
			OldPassword: "wrong", NewPassword: "newsecret",
		})
		assert.ErrorIs(t, err, ErrOldPasswordMismatch)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.ChangePassword("ghost", &dto.ChangePasswordRequest{
			OldPassword: "secret123", NewPassword: "newsecret",
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("successful change", func(t *testing.T) {
		err := svc.ChangePassword("bob", &dto.ChangePasswordRequest{
			OldPassword: "secret123", NewPassword: "newsecret",
		})
		require.NoError(t, err)

		var user models.User
		require.NoError(t, db.Where("username = ?", "bob").First(&user).Error)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newsecret")))
	})
}

func TestUserAdmin(t *testing.T) {
	db := setupTestDB(t)
	bob := seedUser(t, db, "bob", "secret123", "ROLE_USER")
	userSvc := NewUserService(db)
	todoSvc := NewTodoService(db)

	_, err := todoSvc.Create(todoRequest(bob.ID), "bob")
	require.NoError(t, err)
	_, err = todoSvc.Create(todoRequest(bob.ID), "bob")
	require.NoError(t, err)

	t.Run("get returns todo count", func(t *testing.T) {
		user, todoCount, err := userSvc.Get(bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
		assert.EqualValues(t, 2, todoCount)
	})

	t.Run("get missing user", func(t *testing.T) {
		_, _, err := userSvc.Get(9999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("update email and roles", func(t *testing.T) {
		email := "bob@example.com"
		roles := []string{"ROLE_ADMIN", "ROLE_USER"}
		user, err := userSvc.Update(bob.ID, &dto.UpdateUserRequest{Email: &email, Roles: &roles})
		require.NoError(t, err)
		assert.Equal(t, email, user.Email)
		assert.True(t, user.IsAdmin())
	})

	t.Run("reset password", func(t *testing.T) {
		require.NoError(t, userSvc.ResetPassword(bob.ID, "resetsecret"))

		var user models.User
		require.NoError(t, db.First(&user, bob.ID).Error)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("resetsecret")))
	})

	t.Run("reset with short password", func(t *testing.T) {
		assert.ErrorIs(t, userSvc.ResetPassword(bob.ID, "abc"), ErrPasswordTooShort)
	})

	t.Run("delete removes user and their todos", func(t *testing.T) {
		require.NoError(t, userSvc.Delete(bob.ID))

		err := db.First(&models.User{}, bob.ID).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		var todoCount int64
		require.NoError(t, db.Model(&models.Todo{}).Where("assigned_to_id = ?", bob.ID).Count(&todoCount).Error)
		assert.Zero(t, todoCount)
	})

	t.Run("delete missing user", func(t *testing.T) {
		assert.ErrorIs(t, userSvc.Delete(9999), ErrUserNotFound)
	})
}
