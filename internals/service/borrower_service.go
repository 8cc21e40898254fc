package service

import (
	"context"

	"github.com/te6695/LibraryWebAPI/internals/apperrors"
	"github.com/te6695/LibraryWebAPI/internals/models"
	"github.com/te6695/LibraryWebAPI/internals/repository"
)

type CreateBorrowerInput struct {
	Name        string
	Email       string
	PhoneNumber string
}

type UpdateBorrowerInput struct {
	Name        string
	Email       string
	PhoneNumber string
}

type BorrowerService struct {
	borrowers repository.BorrowerRepository
	loans     repository.LoanRepository
}

func NewBorrowerService(borrowers repository.BorrowerRepository, loans repository.LoanRepository) *BorrowerService {
	return &BorrowerService{borrowers: borrowers, loans: loans}
}

func (s *BorrowerService) GetAllBorrowers(ctx context.Context) ([]models.Borrower, error) {
	return s.borrowers.FindAll(ctx)
}

func (s *BorrowerService) GetBorrower(ctx context.Context, id uint) (*models.Borrower, error) {
	return s.borrowers.FindById(ctx, id)
}

func (s *BorrowerService) AddBorrower(ctx context.Context, input CreateBorrowerInput) (*models.Borrower, error) {
	borrower := models.Borrower{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	}
	if err := s.borrowers.Create(ctx, &borrower); err != nil {
		return nil, err
	}
	return &borrower, nil
}

func (s *BorrowerService) UpdateBorrower(ctx context.Context, id uint, input UpdateBorrowerInput) error {
	borrower, err := s.borrowers.FindById(ctx, id)
	if err != nil {
		return err
	}

	if input.Name != "" {
		borrower.Name = input.Name
	}
	if input.Email != "" {
		borrower.Email = input.Email
	}
	if input.PhoneNumber != "" {
		borrower.PhoneNumber = input.PhoneNumber
	}

	return s.borrowers.Save(ctx, borrower)
}

// DeleteBorrower refuses while the borrower still holds books.
func (s *BorrowerService) DeleteBorrower(ctx context.Context, id uint) error {
	if _, err := s.borrowers.FindById(ctx, id); err != nil {
		return err
	}
	active, err := s.loans.HasActiveLoanForBorrower(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return apperrors.ErrBorrowerHasLoans
	}
	return s.borrowers.Delete(ctx, id)
}
