package borrowingRepository

const (
	borrowingColumns = `id, book_id, book_title, borrower_name, borrower_email, borrow_date, return_date, returned_at, status`

	queryCreateBorrowing = `
INSERT INTO borrowings (id, book_id, book_title, borrower_name, borrower_email, borrow_date, return_date, status)
VALUES (:id, :book_id, :book_title, :borrower_name, :borrower_email, :borrow_date, :return_date, :status)`

	queryGetBorrowingForUpdate = `
SELECT ` + borrowingColumns + `
FROM borrowings
WHERE id = :id
FOR UPDATE`

	queryListBorrowings = `
SELECT ` + borrowingColumns + `
FROM borrowings
WHERE (:filter = 'all'
       OR (:filter = 'overdue' AND status = 'active' AND return_date < :now)
       OR status = :filter)
ORDER BY borrow_date DESC, id DESC`

	queryMarkReturned = `
UPDATE borrowings
SET status = 'returned', returned_at = :returned_at
WHERE id = :id
  AND status = 'active'`

	queryRecentBorrowings = `
SELECT ` + borrowingColumns + `
FROM borrowings
ORDER BY COALESCE(returned_at, borrow_date) DESC, id DESC
LIMIT :limit`

	queryPopularTitles = `
SELECT book_id, book_title, COUNT(*) AS borrow_count
FROM borrowings
GROUP BY book_id, book_title
ORDER BY borrow_count DESC, book_title
LIMIT :limit`

	queryDashboardSummary = `
SELECT (SELECT COUNT(*) FROM books)                                AS total_books,
       (SELECT COUNT(*) FROM books WHERE NOT available)            AS borrowed_books,
       (SELECT COUNT(*) FROM borrowings
        WHERE status = 'active' AND return_date < :now)            AS overdue_books,
       (SELECT COUNT(DISTINCT LOWER(borrower_email)) FROM borrowings) AS unique_borrowers,
       (SELECT COUNT(*) FROM books WHERE added_at >= :month_start) AS books_added_this_month,
       (SELECT COUNT(*) FROM borrowings
        WHERE borrow_date >= :month_start)                         AS books_borrowed_this_month,
       (SELECT COUNT(DISTINCT LOWER(borrower_email)) FROM borrowings
        WHERE borrow_date >= :month_start)                         AS unique_borrowers_this_month`

	queryGenreDistribution = `
SELECT genre, COUNT(*) AS book_count
FROM books
GROUP BY genre
ORDER BY book_count DESC, genre`

	queryGetBookForUpdate = `
SELECT id, title, author, genre, synopsis, available, copies, added_at
FROM books
WHERE id = :id
FOR UPDATE`

	queryUpdateCopies = `
UPDATE books
SET copies = :copies, available = :available
WHERE id = :id`
)
