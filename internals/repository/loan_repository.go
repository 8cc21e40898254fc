package repository

import (
	"context"
	"errors"
	"time"

	"github.com/te6695/LibraryWebAPI/internals/apperrors"
	"github.com/te6695/LibraryWebAPI/internals/models"
	logger "github.com/te6695/LibraryWebAPI/loggers"

	"gorm.io/gorm"
)

// LoanDetails is a loan row joined with the book title and borrower name,
// the shape the API returns.
type LoanDetails struct {
	Id           uint       `json:"id"`
	BookId       uint       `json:"book_id"`
	BookTitle    string     `json:"book_title"`
	BorrowerId   uint       `json:"borrower_id"`
	BorrowerName string     `json:"borrower_name"`
	LoanDate     time.Time  `json:"loan_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnDate   *time.Time `json:"return_date"`
}

type LoanRepository interface {
	// Issue atomically decrements the book's available copies and inserts the
	// loan. Either both happen or neither does.
	Issue(ctx context.Context, bookId, borrowerId uint, loanDate, dueDate time.Time) (*models.Loan, error)

	// Return atomically stamps the return date and increments the book's
	// available copies. A loan can be returned exactly once.
	Return(ctx context.Context, loanId uint, returnDate time.Time) error

	FindById(ctx context.Context, id uint) (*models.Loan, error)
	FindDetailsById(ctx context.Context, id uint) (*LoanDetails, error)
	FindOverdue(ctx context.Context, now time.Time) ([]LoanDetails, error)

	HasActiveLoanForBook(ctx context.Context, bookId uint) (bool, error)
	HasActiveLoanForBorrower(ctx context.Context, borrowerId uint) (bool, error)
	CountActiveForBook(ctx context.Context, bookId uint) (int64, error)
}

type loanrepo struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanrepo{db: db}
}

func (r *loanrepo) Issue(ctx context.Context, bookId, borrowerId uint, loanDate, dueDate time.Time) (*models.Loan, error) {
	loan := models.Loan{
		BookId:     bookId,
		BorrowerId: borrowerId,
		LoanDate:   loanDate,
		DueDate:    dueDate,
		ReturnDate: nil,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The decrement is conditioned on available_copies > 0 and re-checked
		// at commit time by the store, so two issues racing for the last copy
		// cannot both succeed.
		result := tx.Model(&models.Book{}).
			Where("id = ? AND available_copies > 0", bookId).
			UpdateColumn("available_copies", gorm.Expr("available_copies - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var book models.Book
			if err := tx.First(&book, bookId).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrBookNotFound
				}
				return err
			}
			return apperrors.ErrNoCopiesAvailable
		}

		return tx.Create(&loan).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanrepo) Return(ctx context.Context, loanId uint, returnDate time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.First(&loan, loanId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrLoanNotFound
			}
			return err
		}
		if loan.ReturnDate != nil {
			return apperrors.ErrAlreadyReturned
		}

		// Guarded by return_date IS NULL so a concurrent double return loses.
		result := tx.Model(&models.Loan{}).
			Where("id = ? AND return_date IS NULL", loanId).
			UpdateColumn("return_date", returnDate)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrAlreadyReturned
		}

		// An increment that would push available past total means the counter
		// was already wrong; surface it instead of clamping.
		result = tx.Model(&models.Book{}).
			Where("id = ? AND available_copies < total_copies", loan.BookId).
			UpdateColumn("available_copies", gorm.Expr("available_copies + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			logger.Logger.Errorf("copy counter invariant violated for book %d while returning loan %d", loan.BookId, loanId)
			return apperrors.ErrInconsistentState
		}
		return nil
	})
}

func (r *loanrepo) FindById(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	result := r.db.WithContext(ctx).First(&loan, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, result.Error
	}
	return &loan, nil
}

func (r *loanrepo) FindDetailsById(ctx context.Context, id uint) (*LoanDetails, error) {
	var details []LoanDetails
	err := r.detailsQuery(ctx).Where("loans.id = ?", id).Scan(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, apperrors.ErrLoanNotFound
	}
	return &details[0], nil
}

func (r *loanrepo) FindOverdue(ctx context.Context, now time.Time) ([]LoanDetails, error) {
	details := make([]LoanDetails, 0)
	err := r.detailsQuery(ctx).
		Where("loans.return_date IS NULL AND loans.due_date < ?", now).
		Order("loans.id").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *loanrepo) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("loans").
		Select("loans.id, loans.book_id, books.title AS book_title, loans.borrower_id, borrowers.name AS borrower_name, loans.loan_date, loans.due_date, loans.return_date").
		Joins("JOIN books ON books.id = loans.book_id").
		Joins("JOIN borrowers ON borrowers.id = loans.borrower_id")
}

func (r *loanrepo) HasActiveLoanForBook(ctx context.Context, bookId uint) (bool, error) {
	count, err := r.activeCount(ctx, "book_id", bookId)
	return count > 0, err
}

func (r *loanrepo) HasActiveLoanForBorrower(ctx context.Context, borrowerId uint) (bool, error) {
	count, err := r.activeCount(ctx, "borrower_id", borrowerId)
	return count > 0, err
}

func (r *loanrepo) CountActiveForBook(ctx context.Context, bookId uint) (int64, error) {
	return r.activeCount(ctx, "book_id", bookId)
}

func (r *loanrepo) activeCount(ctx context.Context, column string, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where(column+" = ? AND return_date IS NULL", id).
		Count(&count).Error
	return count, err
}
