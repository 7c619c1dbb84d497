package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	"github.com/varshasramu/Smart-library-assistant/pkg/nlp"
)

const (
	queryCountBooks = `SELECT COUNT(*) FROM books`

	querySeedBook = `
INSERT INTO books (id, title, author, genre, synopsis, available, copies, added_at)
VALUES (:id, :title, :author, :genre, :synopsis, :available, :copies, :added_at)`

	querySeedBorrowing = `
INSERT INTO borrowings (id, book_id, book_title, borrower_name, borrower_email, borrow_date, return_date, status)
VALUES (:id, :book_id, :book_title, :borrower_name, :borrower_email, :borrow_date, :return_date, :status)`
)

type sampleLoan struct {
	bookID   string
	name     string
	email    string
	daysHeld int
}

var sampleLoans = []sampleLoan{
	{bookID: "2", name: "John Smith", email: "john@example.com", daysHeld: 7},
	{bookID: "6", name: "Sarah Johnson", email: "sarah@example.com", daysHeld: 3},
}

// Seed loads the demo catalog and its two open loans into an empty database.
// It is a no-op once any book exists.
func Seed(ctx context.Context, db *sqlx.DB, log *logrus.Logger, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, queryCountBooks); err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		log.WithField("books", count).Info("Catalog already populated, skipping seed")
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	titles := make(map[string]string)
	for i, b := range nlp.SampleCatalog() {
		book := entity.Book{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Genre:     b.Genre,
			Synopsis:  b.Synopsis,
			Available: b.Available,
			Copies:    b.Copies,
			AddedAt:   now.Add(time.Duration(i) * time.Second),
		}
		if _, err := tx.NamedExecContext(ctx, querySeedBook, book); err != nil {
			return fmt.Errorf("seed book %s: %w", book.ID, err)
		}
		titles[book.ID] = book.Title
	}

	for i, loan := range sampleLoans {
		borrowDate := now.Add(-time.Duration(loan.daysHeld) * 24 * time.Hour)
		borrowing := entity.Borrowing{
			ID:            fmt.Sprintf("seed-%d", i+1),
			BookID:        loan.bookID,
			BookTitle:     titles[loan.bookID],
			BorrowerName:  loan.name,
			BorrowerEmail: loan.email,
			BorrowDate:    borrowDate,
			ReturnDate:    borrowDate.Add(entity.LoanPeriod),
			Status:        entity.BorrowingActive,
		}
		if _, err := tx.NamedExecContext(ctx, querySeedBorrowing, borrowing); err != nil {
			return fmt.Errorf("seed borrowing %s: %w", borrowing.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.WithField("books", len(titles)).Info("Seeded sample catalog")
	return nil
}
