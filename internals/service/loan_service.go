package service

import (
	"context"
	"time"

	"github.com/te6695/LibraryWebAPI/internals/apperrors"
	"github.com/te6695/LibraryWebAPI/internals/models"
	"github.com/te6695/LibraryWebAPI/internals/repository"
)

const (
	MinLoanDurationDays = 1
	MaxLoanDurationDays = 365
)

// LoanService is the ledger for issuing and returning books. The copy
// counter discipline lives in the repository's transactions; this layer owns
// validation and the loan state machine.
type LoanService struct {
	loans     repository.LoanRepository
	borrowers repository.BorrowerRepository
	now       func() time.Time
}

func NewLoanService(loans repository.LoanRepository, borrowers repository.BorrowerRepository) *LoanService {
	return &LoanService{loans: loans, borrowers: borrowers, now: time.Now}
}

// IssueLoan creates an active loan and takes one copy out of circulation as a
// single atomic unit. At most total_copies active loans can exist per book.
func (s *LoanService) IssueLoan(ctx context.Context, bookId, borrowerId uint, durationDays int) (*models.Loan, error) {
	if durationDays < MinLoanDurationDays || durationDays > MaxLoanDurationDays {
		return nil, apperrors.ErrInvalidDuration
	}

	if _, err := s.borrowers.FindById(ctx, borrowerId); err != nil {
		return nil, err
	}

	loanDate := s.now().UTC()
	dueDate := loanDate.AddDate(0, 0, durationDays)
	return s.loans.Issue(ctx, bookId, borrowerId, loanDate, dueDate)
}

// ReturnLoan moves an active loan to its terminal Returned state and puts the
// copy back in circulation. Returning twice fails with ErrAlreadyReturned.
func (s *LoanService) ReturnLoan(ctx context.Context, loanId uint) error {
	return s.loans.Return(ctx, loanId, s.now().UTC())
}

func (s *LoanService) GetLoan(ctx context.Context, id uint) (*repository.LoanDetails, error) {
	return s.loans.FindDetailsById(ctx, id)
}

// GetOverdueLoans lists open loans whose due date has passed, ordered by id.
func (s *LoanService) GetOverdueLoans(ctx context.Context) ([]repository.LoanDetails, error) {
	return s.loans.FindOverdue(ctx, s.now().UTC())
}
