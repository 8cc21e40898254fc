package repository

import (
	"context"
	"errors"

	"github.com/te6695/LibraryWebAPI/internals/apperrors"
	"github.com/te6695/LibraryWebAPI/internals/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type userrepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userrepo{db: db}
}

func (r *userrepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userrepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	// exact, case-sensitive match
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}
