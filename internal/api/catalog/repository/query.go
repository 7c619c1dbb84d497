package catalogRepository

const (
	bookColumns = `id, title, author, genre, synopsis, available, copies, added_at`

	queryGetAllBooks = `
SELECT ` + bookColumns + `
FROM books
ORDER BY added_at, id`

	queryListBooks = `
SELECT ` + bookColumns + `
FROM books
WHERE (:genre = '' OR LOWER(genre) = LOWER(:genre))
  AND (:availability = 'all'
       OR (:availability = 'available' AND available)
       OR (:availability = 'borrowed' AND NOT available))
  AND (:query = ''
       OR title ILIKE '%' || :query || '%'
       OR author ILIKE '%' || :query || '%'
       OR genre ILIKE '%' || :query || '%'
       OR synopsis ILIKE '%' || :query || '%')
ORDER BY added_at, id`

	queryGetBookByID = `
SELECT ` + bookColumns + `
FROM books
WHERE id = :id`

	queryCreateBook = `
INSERT INTO books (id, title, author, genre, synopsis, available, copies, added_at)
VALUES (:id, :title, :author, :genre, :synopsis, :available, :copies, :added_at)`

	queryDeleteBook = `
DELETE FROM books
WHERE id = :id`

	queryDeleteBookBorrowings = `
DELETE FROM borrowings
WHERE book_id = :book_id`

	queryRecommendations = `
SELECT ` + bookColumns + `
FROM books
WHERE LOWER(genre) = LOWER(:genre)
  AND available
  AND copies > 0
ORDER BY added_at, id
LIMIT :limit`

	queryNewestBooks = `
SELECT ` + bookColumns + `
FROM books
ORDER BY added_at DESC, id DESC
LIMIT :limit`

	queryBookStats = `
SELECT COUNT(*)                                AS total_books,
       COUNT(*) FILTER (WHERE available)       AS available_books,
       COUNT(*) FILTER (WHERE NOT available)   AS borrowed_books,
       COALESCE((SELECT genre
                 FROM books
                 GROUP BY genre
                 ORDER BY COUNT(*) DESC, genre
                 LIMIT 1), '')                 AS popular_genre
FROM books`
)
