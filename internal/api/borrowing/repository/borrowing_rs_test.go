package borrowingRepository

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varshasramu/Smart-library-assistant/internal/api/borrowing"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
)

var borrowingRowColumns = []string{"id", "book_id", "book_title", "borrower_name", "borrower_email", "borrow_date", "return_date", "returned_at", "status"}

func newTestRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(sqlx.NewDb(mockDB, "postgres"), log), mock
}

func TestBorrowingRepository_ListOverdue(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	borrowed := now.Add(-20 * 24 * time.Hour)

	mock.ExpectQuery(`SELECT .* FROM borrowings\s+WHERE`).
		WithArgs("overdue", "overdue", now, "overdue").
		WillReturnRows(sqlmock.NewRows(borrowingRowColumns).
			AddRow("b1", "2", "1984", "John Smith", "john@example.com", borrowed, borrowed.Add(entity.LoanPeriod), nil, "active"))

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	rows, err := client.Borrowings.List(context.Background(), entity.BorrowingFilterOverdue, now)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, entity.BorrowingActive, rows[0].Status)
	assert.Nil(t, rows[0].ReturnedAt)
	assert.True(t, rows[0].IsOverdue(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrowingRepository_GetByIDForUpdateNotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(borrowingRowColumns))

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	_, err = client.Borrowings.GetByIDForUpdate(context.Background(), "missing")
	assert.ErrorIs(t, err, borrowing.ErrBorrowingNotFound)
}

func TestBorrowingRepository_MarkReturnedTwice(t *testing.T) {
	repo, mock := newTestRepository(t)
	returnedAt := time.Now()

	mock.ExpectExec(`UPDATE borrowings`).
		WithArgs(returnedAt, "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE borrowings`).
		WithArgs(returnedAt, "b1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	require.NoError(t, client.Borrowings.MarkReturned(context.Background(), "b1", returnedAt))
	assert.ErrorIs(t, client.Borrowings.MarkReturned(context.Background(), "b1", returnedAt), borrowing.ErrBorrowingAlreadyReturned)
}

func TestBorrowingRepository_Summary(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	monthStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`AS total_books`).
		WithArgs(now, monthStart, monthStart, monthStart).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_books", "borrowed_books", "overdue_books", "unique_borrowers",
			"books_added_this_month", "books_borrowed_this_month", "unique_borrowers_this_month",
		}).AddRow(10, 2, 1, 2, 10, 2, 2))

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	summary, err := client.Borrowings.Summary(context.Background(), now, monthStart)
	require.NoError(t, err)
	assert.Equal(t, borrowing.DashboardSummary{
		TotalBooks:               10,
		BorrowedBooks:            2,
		OverdueBooks:             1,
		UniqueBorrowers:          2,
		BooksAddedThisMonth:      10,
		BooksBorrowedThisMonth:   2,
		UniqueBorrowersThisMonth: 2,
	}, summary)
}

func TestBorrowingRepository_PopularTitles(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`GROUP BY book_id, book_title`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"book_id", "book_title", "borrow_count"}).
			AddRow("2", "1984", 3).
			AddRow("6", "Pride and Prejudice", 1))

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	titles, err := client.Borrowings.PopularTitles(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []borrowing.PopularTitle{
		{BookID: "2", Title: "1984", BorrowCount: 3},
		{BookID: "6", Title: "Pride and Prejudice", BorrowCount: 1},
	}, titles)
}

func TestBookRepository_UpdateCopiesInTransaction(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM books\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs("3").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "genre", "synopsis", "available", "copies", "added_at"}).
			AddRow("3", "The Hobbit", "J.R.R. Tolkien", "Fantasy", "", true, 1, time.Now()))
	mock.ExpectExec(`UPDATE books`).
		WithArgs(0, false, "3").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	client, err := repo.NewClient(true)
	require.NoError(t, err)

	book, err := client.Books.GetForUpdate(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, 1, book.Copies)

	require.NoError(t, client.Books.UpdateCopies(context.Background(), "3", book.Copies-1, false))
	require.NoError(t, client.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
