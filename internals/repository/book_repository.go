package repository

import (
	"context"
	"errors"

	"github.com/te6695/LibraryWebAPI/internals/apperrors"
	"github.com/te6695/LibraryWebAPI/internals/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error

	// UpdateFields writes only the given columns; the copy counters are out
	// of reach of this method.
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error

	// AdjustTotalCopies changes the total and shifts available_copies by the
	// same delta in one atomic statement, then clamps it into [0, total].
	AdjustTotalCopies(ctx context.Context, id uint, newTotal int) error

	Delete(ctx context.Context, id uint) error
	FindById(ctx context.Context, id uint) (*models.Book, error)
	FindAll(ctx context.Context) ([]models.Book, error)
}

type bookrepo struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookrepo{db: db}
}

func (r *bookrepo) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookrepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBookNotFound
	}
	return nil
}

func (r *bookrepo) AdjustTotalCopies(ctx context.Context, id uint, newTotal int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The delta is computed from the row's current values inside the
		// statement, so a concurrent issue or return is never overwritten.
		result := tx.Model(&models.Book{}).Where("id = ?", id).Updates(map[string]interface{}{
			"total_copies":     newTotal,
			"available_copies": gorm.Expr("available_copies + (? - total_copies)", newTotal),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrBookNotFound
		}

		// clamp back into [0, total]
		if err := tx.Model(&models.Book{}).
			Where("id = ? AND available_copies < 0", id).
			UpdateColumn("available_copies", 0).Error; err != nil {
			return err
		}
		return tx.Model(&models.Book{}).
			Where("id = ? AND available_copies > total_copies", id).
			UpdateColumn("available_copies", gorm.Expr("total_copies")).Error
	})
}

func (r *bookrepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBookNotFound
	}
	return nil
}

func (r *bookrepo) FindById(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	result := r.db.WithContext(ctx).First(&book, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, result.Error
	}
	return &book, nil
}

func (r *bookrepo) FindAll(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	result := r.db.WithContext(ctx).Order("id").Find(&books)
	if result.Error != nil {
		return nil, result.Error
	}
	return books, nil
}
