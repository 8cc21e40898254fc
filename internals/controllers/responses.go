package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/te6695/LibraryWebAPI/internals/apperrors"
	"github.com/te6695/LibraryWebAPI/internals/models"
	"github.com/te6695/LibraryWebAPI/internals/repository"
	logger "github.com/te6695/LibraryWebAPI/loggers"

	"github.com/gin-gonic/gin"
)

type BookResponse struct {
	Id              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	AvailableCopies int    `json:"availableCopies"`
	TotalCopies     int    `json:"totalCopies"`
}

type BorrowerResponse struct {
	Id          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type LoanResponse struct {
	Id           uint       `json:"id"`
	BookId       uint       `json:"bookId"`
	BookTitle    string     `json:"bookTitle"`
	BorrowerId   uint       `json:"borrowerId"`
	BorrowerName string     `json:"borrowerName"`
	LoanDate     time.Time  `json:"loanDate"`
	DueDate      time.Time  `json:"dueDate"`
	ReturnDate   *time.Time `json:"returnDate"`
	IsOverdue    bool       `json:"isOverdue"`
}

func convertBookModelToResponse(book *models.Book) *BookResponse {
	return &BookResponse{
		Id:              book.Id,
		Title:           book.Title,
		Author:          book.Author,
		ISBN:            book.IsBn,
		AvailableCopies: book.AvailableCopies,
		TotalCopies:     book.TotalCopies,
	}
}

func convertBorrowerModelToResponse(borrower *models.Borrower) *BorrowerResponse {
	return &BorrowerResponse{
		Id:          borrower.Id,
		Name:        borrower.Name,
		Email:       borrower.Email,
		PhoneNumber: borrower.PhoneNumber,
	}
}

func convertLoanDetailsToResponse(details *repository.LoanDetails) *LoanResponse {
	return &LoanResponse{
		Id:           details.Id,
		BookId:       details.BookId,
		BookTitle:    details.BookTitle,
		BorrowerId:   details.BorrowerId,
		BorrowerName: details.BorrowerName,
		LoanDate:     details.LoanDate,
		DueDate:      details.DueDate,
		ReturnDate:   details.ReturnDate,
		IsOverdue:    details.ReturnDate == nil && details.DueDate.Before(time.Now().UTC()),
	}
}

// writeError maps service errors to HTTP statuses. Unknown errors become a
// generic 500 with the detail kept server-side.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrBookNotFound),
		errors.Is(err, apperrors.ErrBorrowerNotFound),
		errors.Is(err, apperrors.ErrLoanNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidDuration),
		errors.Is(err, apperrors.ErrNoCopiesAvailable),
		errors.Is(err, apperrors.ErrAlreadyReturned),
		errors.Is(err, apperrors.ErrUsernameTaken),
		errors.Is(err, apperrors.ErrBookHasLoans),
		errors.Is(err, apperrors.ErrBorrowerHasLoans):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInconsistentState):
		logger.Logger.Error("consistency error: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal consistency error"})
	default:
		logger.Logger.Error("storage failure: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected error occurred, please try again"})
	}
}
