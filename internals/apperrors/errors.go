package apperrors

import "errors"

// Sentinel errors shared by the service layer. Controllers map these to
// HTTP statuses; everything else is treated as a storage failure.
var (
	ErrInvalidDuration = errors.New("loan duration must be between 1 and 365 days")

	ErrBookNotFound     = errors.New("book not found")
	ErrBorrowerNotFound = errors.New("borrower not found")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrAlreadyReturned   = errors.New("loan already returned")
	ErrUsernameTaken     = errors.New("username already exists")
	ErrBookHasLoans      = errors.New("book has active loans")
	ErrBorrowerHasLoans  = errors.New("borrower has active loans")

	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInconsistentState means a copy-counter invariant was already broken
	// before the current operation ran. It must never be swallowed.
	ErrInconsistentState = errors.New("internal consistency error")
)
