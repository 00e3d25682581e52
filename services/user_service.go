package services

import (
	"fmt"
	"strings"

	"hotel-reservation-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type CreateUserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

type UpdateUserInput struct {
	Password  *string
	FirstName *string
	LastName  *string
	IsStaff   *bool
}

func (s *UserService) Create(in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, validationErr("username", "username is required")
	}
	if in.Password == "" {
		return nil, validationErr("password", "password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:  username,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, validationErr("username", fmt.Sprintf("username %q is already taken", username))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Authenticate checks the credentials and returns the matching user.
// gorm.ErrRecordNotFound doubles as the bad-password error so callers
// cannot tell an unknown username from a wrong password.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (s *UserService) GetAll() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("id").Find(&users).Error
	return users, err
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, validationErr("password", "password cannot be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hash)
	}
	if in.FirstName != nil {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
	}
	if in.IsStaff != nil {
		updates["is_staff"] = *in.IsStaff
	}

	if len(updates) > 0 {
		if err := s.DB.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}
	return s.GetByID(id)
}

func (s *UserService) Delete(id uint) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(user).Error
}
