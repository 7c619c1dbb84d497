package borrowing

import (
	"time"

	"github.com/varshasramu/Smart-library-assistant/internal/entity"
)

type BorrowBookRequest struct {
	BookID        string `json:"book_id" validate:"required,max=64"`
	BorrowerName  string `json:"borrower_name" validate:"required,max=120"`
	BorrowerEmail string `json:"borrower_email" validate:"required,email,max=254"`
}

type BorrowingFilter struct {
	Status string `query:"status" validate:"omitempty,oneof=all active returned overdue"`
}

type BorrowingResponse struct {
	ID            string     `json:"id"`
	BookID        string     `json:"book_id"`
	BookTitle     string     `json:"book_title"`
	BorrowerName  string     `json:"borrower_name"`
	BorrowerEmail string     `json:"borrower_email"`
	BorrowDate    time.Time  `json:"borrow_date"`
	ReturnDate    time.Time  `json:"return_date"`
	ReturnedAt    *time.Time `json:"returned_at,omitempty"`
	Status        string     `json:"status"`
	Overdue       bool       `json:"overdue"`
}

type BorrowingsResponse struct {
	Borrowings []BorrowingResponse `json:"borrowings"`
	Total      int                 `json:"total"`
}

type PopularTitle struct {
	BookID      string `json:"book_id" db:"book_id"`
	Title       string `json:"title" db:"book_title"`
	BorrowCount int    `json:"borrow_count" db:"borrow_count"`
}

type PopularTitlesResponse struct {
	Titles []PopularTitle `json:"titles"`
}

type GenreCount struct {
	Genre string `json:"genre" db:"genre"`
	Count int    `json:"count" db:"book_count"`
}

// DashboardSummary holds the headline counters; "this month" starts at the first
// day of the current calendar month.
type DashboardSummary struct {
	TotalBooks               int `json:"total_books" db:"total_books"`
	BorrowedBooks            int `json:"borrowed_books" db:"borrowed_books"`
	OverdueBooks             int `json:"overdue_books" db:"overdue_books"`
	UniqueBorrowers          int `json:"unique_borrowers" db:"unique_borrowers"`
	BooksAddedThisMonth      int `json:"books_added_this_month" db:"books_added_this_month"`
	BooksBorrowedThisMonth   int `json:"books_borrowed_this_month" db:"books_borrowed_this_month"`
	UniqueBorrowersThisMonth int `json:"unique_borrowers_this_month" db:"unique_borrowers_this_month"`
}

type DashboardResponse struct {
	DashboardSummary
	GenreDistribution []GenreCount        `json:"genre_distribution"`
	TopTitles         []PopularTitle      `json:"top_titles"`
	RecentActivity    []BorrowingResponse `json:"recent_activity"`
}

func MakeBorrowingResponse(b entity.Borrowing, now time.Time) BorrowingResponse {
	return BorrowingResponse{
		ID:            b.ID,
		BookID:        b.BookID,
		BookTitle:     b.BookTitle,
		BorrowerName:  b.BorrowerName,
		BorrowerEmail: b.BorrowerEmail,
		BorrowDate:    b.BorrowDate,
		ReturnDate:    b.ReturnDate,
		ReturnedAt:    b.ReturnedAt,
		Status:        string(b.Status),
		Overdue:       b.IsOverdue(now),
	}
}

func MakeBorrowingsResponse(borrowings []entity.Borrowing, now time.Time) BorrowingsResponse {
	res := BorrowingsResponse{
		Borrowings: make([]BorrowingResponse, 0, len(borrowings)),
		Total:      len(borrowings),
	}
	for _, b := range borrowings {
		res.Borrowings = append(res.Borrowings, MakeBorrowingResponse(b, now))
	}
	return res
}
