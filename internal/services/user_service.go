package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/homemanagement/todo-backend/internal/dto"
	"github.com/homemanagement/todo-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var (
	ErrUsernameTaken       = errors.New("username already exists")
	ErrUsernameRequired    = errors.New("username is required")
	ErrPasswordRequired    = errors.New("old password and new password are required")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters")
	ErrOldPasswordMismatch = errors.New("current password is incorrect")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// EnsureAdmin seeds the admin account at boot. It is a find-or-create so
// restarting the server does not invalidate tokens referencing an earlier
// admin record.
func (s *UserService) EnsureAdmin(username, password, email string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Username: username,
		Password: string(hash),
		Email:    email,
		Roles:    models.JoinRoles([]string{models.RoleAdmin, models.RoleUser}),
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("admin user created", "username", username)
	return nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("id").Find(&users).Error
	return users, err
}

func (s *UserService) Get(id uint) (*models.User, int64, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, 0, ErrUserNotFound
	}

	var todoCount int64
	if err := s.db.Model(&models.Todo{}).Where("assigned_to_id = ?", id).Count(&todoCount).Error; err != nil {
		return nil, 0, err
	}

	return &user, todoCount, nil
}

func (s *UserService) Create(req *dto.CreateUserRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, ErrUsernameRequired
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
		Roles:    models.JoinRoles(req.Roles),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *UserService) Update(id uint, req *dto.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Roles != nil {
		user.Roles = models.JoinRoles(*req.Roles)
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserService) ResetPassword(id uint, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Update("password", string(hash)).Error
}

// Delete removes a user together with every todo assigned to them.
func (s *UserService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return ErrUserNotFound
		}

		if err := tx.Where("assigned_to_id = ?", id).Delete(&models.Todo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

func (s *UserService) ChangePassword(username string, req *dto.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return ErrPasswordRequired
	}
	if len(req.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrOldPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Update("password", string(hash)).Error
}
