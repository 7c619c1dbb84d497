package entity

import "time"

type BorrowingStatus string

const (
	BorrowingActive   BorrowingStatus = "active"
	BorrowingReturned BorrowingStatus = "returned"
)

// BorrowingFilter values accepted by the borrowings listing.
const (
	BorrowingFilterAll      = "all"
	BorrowingFilterActive   = "active"
	BorrowingFilterReturned = "returned"
	BorrowingFilterOverdue  = "overdue"
)

const LoanPeriod = 14 * 24 * time.Hour

type Borrowing struct {
	ID            string          `db:"id"`
	BookID        string          `db:"book_id"`
	BookTitle     string          `db:"book_title"`
	BorrowerName  string          `db:"borrower_name"`
	BorrowerEmail string          `db:"borrower_email"`
	BorrowDate    time.Time       `db:"borrow_date"`
	ReturnDate    time.Time       `db:"return_date"`
	ReturnedAt    *time.Time      `db:"returned_at"`
	Status        BorrowingStatus `db:"status"`
}

func (b Borrowing) IsOverdue(now time.Time) bool {
	return b.Status == BorrowingActive && b.ReturnDate.Before(now)
}
