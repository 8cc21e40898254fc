package models

import "time"

type Loan struct {
	Id         uint       `gorm:"primaryKey;column:id" json:"id"`
	BookId     uint       `gorm:"column:book_id;index;not null" json:"book_id"`
	BorrowerId uint       `gorm:"column:borrower_id;index;not null" json:"borrower_id"`
	LoanDate   time.Time  `gorm:"column:loan_date;not null" json:"loan_date"`
	DueDate    time.Time  `gorm:"column:due_date;not null" json:"due_date"`
	ReturnDate *time.Time `gorm:"column:return_date;index" json:"return_date"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;column:created_at" json:"-"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime;column:updated_at" json:"-"`
}

// IsReturned is derived from ReturnDate, never stored.
func (l *Loan) IsReturned() bool {
	return l.ReturnDate != nil
}

// IsOverdue reports whether the loan is still open past its due date.
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.ReturnDate == nil && l.DueDate.Before(now)
}
