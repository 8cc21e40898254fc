package repository

import (
	"context"
	"errors"

	"github.com/te6695/LibraryWebAPI/internals/apperrors"
	"github.com/te6695/LibraryWebAPI/internals/models"

	"gorm.io/gorm"
)

type BorrowerRepository interface {
	Create(ctx context.Context, borrower *models.Borrower) error
	Save(ctx context.Context, borrower *models.Borrower) error
	Delete(ctx context.Context, id uint) error
	FindById(ctx context.Context, id uint) (*models.Borrower, error)
	FindAll(ctx context.Context) ([]models.Borrower, error)
}

type borrowerrepo struct {
	db *gorm.DB
}

func NewBorrowerRepository(db *gorm.DB) BorrowerRepository {
	return &borrowerrepo{db: db}
}

func (r *borrowerrepo) Create(ctx context.Context, borrower *models.Borrower) error {
	return r.db.WithContext(ctx).Create(borrower).Error
}

func (r *borrowerrepo) Save(ctx context.Context, borrower *models.Borrower) error {
	return r.db.WithContext(ctx).Save(borrower).Error
}

func (r *borrowerrepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Borrower{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBorrowerNotFound
	}
	return nil
}

func (r *borrowerrepo) FindById(ctx context.Context, id uint) (*models.Borrower, error) {
	var borrower models.Borrower
	result := r.db.WithContext(ctx).First(&borrower, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBorrowerNotFound
		}
		return nil, result.Error
	}
	return &borrower, nil
}

func (r *borrowerrepo) FindAll(ctx context.Context) ([]models.Borrower, error) {
	var borrowers []models.Borrower
	result := r.db.WithContext(ctx).Order("id").Find(&borrowers)
	if result.Error != nil {
		return nil, result.Error
	}
	return borrowers, nil
}
