package service

import (
	"context"

	"github.com/te6695/LibraryWebAPI/internals/apperrors"
	"github.com/te6695/LibraryWebAPI/internals/models"
	"github.com/te6695/LibraryWebAPI/internals/repository"
)

type CreateBookInput struct {
	Title       string
	Author      string
	IsBn        string
	TotalCopies int
}

// UpdateBookInput carries partial updates; nil/empty fields are left alone.
type UpdateBookInput struct {
	Title       string
	Author      string
	IsBn        string
	TotalCopies *int
}

type BookService struct {
	books repository.BookRepository
	loans repository.LoanRepository
}

func NewBookService(books repository.BookRepository, loans repository.LoanRepository) *BookService {
	return &BookService{books: books, loans: loans}
}

func (s *BookService) GetAllBooks(ctx context.Context) ([]models.Book, error) {
	return s.books.FindAll(ctx)
}

func (s *BookService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	return s.books.FindById(ctx, id)
}

// AddBook registers a new title with every copy available.
func (s *BookService) AddBook(ctx context.Context, input CreateBookInput) (*models.Book, error) {
	book := models.Book{
		Title:           input.Title,
		Author:          input.Author,
		IsBn:            input.IsBn,
		TotalCopies:     input.TotalCopies,
		AvailableCopies: input.TotalCopies,
	}
	if err := s.books.Create(ctx, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook applies partial changes. Field edits never touch the copy
// counters; changing the total shifts the available count by the same delta
// atomically in the store, so a concurrent issue or return is never undone.
func (s *BookService) UpdateBook(ctx context.Context, id uint, input UpdateBookInput) error {
	if _, err := s.books.FindById(ctx, id); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if input.Title != "" {
		fields["title"] = input.Title
	}
	if input.Author != "" {
		fields["author"] = input.Author
	}
	if input.IsBn != "" {
		fields["isbn"] = input.IsBn
	}
	if err := s.books.UpdateFields(ctx, id, fields); err != nil {
		return err
	}

	if input.TotalCopies != nil {
		return s.books.AdjustTotalCopies(ctx, id, *input.TotalCopies)
	}
	return nil
}

// DeleteBook refuses while any copy is still out on loan.
func (s *BookService) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.books.FindById(ctx, id); err != nil {
		return err
	}
	active, err := s.loans.HasActiveLoanForBook(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return apperrors.ErrBookHasLoans
	}
	return s.books.Delete(ctx, id)
}
