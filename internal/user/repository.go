package user

import (
	"errors"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/banana-math/BananaMathServer/pkg/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(username, email, password string) (*User, error)
	ValidateUser(username, password string) (*User, error)
	GetUser(id int) (*User, error)
	FindIDByUsername(username string) (*uint, error)
}

type GormUserRepository struct{}

func NewGormUserRepository() *GormUserRepository {
	return &GormUserRepository{}
}

func (r *GormUserRepository) CreateUser(username, email, password string) (*User, error) {
	var exists User
	result := db.DB.Where("username = ? OR email = ?", username, email).First(&exists)
	if result.Error == nil {
		return nil, apperrors.NewConflictError("Username or email already exists")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewStorageError("error checking existing users", result.Error)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return nil, apperrors.NewStorageError("error hashing password", err)
	}

	newUser := User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		return nil, apperrors.NewStorageError("error creating user", err)
	}

	return &newUser, nil
}

func (r *GormUserRepository) ValidateUser(username, password string) (*User, error) {
	var u User
	result := db.DB.Where("username = ?", username).First(&u)
	if result.Error != nil {
		return nil, result.Error
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *GormUserRepository) GetUser(id int) (*User, error) {
	var u User
	result := db.DB.Where("id = ?", id).First(&u)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, apperrors.NewStorageError("error getting user", result.Error)
	}

	return &u, nil
}

// FindIDByUsername returns nil without error when the username is unknown, so
// score rows can keep a denormalized username with no account link.
func (r *GormUserRepository) FindIDByUsername(username string) (*uint, error) {
	var u User
	result := db.DB.Select("id").Where("username = ?", username).First(&u)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, apperrors.NewStorageError("error looking up user", result.Error)
	}

	return &u.ID, nil
}
