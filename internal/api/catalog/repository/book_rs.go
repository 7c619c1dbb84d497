package catalogRepository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/catalog"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
)

type BookDB struct {
	ID        sql.NullString `db:"id"`
	Title     sql.NullString `db:"title"`
	Author    sql.NullString `db:"author"`
	Genre     sql.NullString `db:"genre"`
	Synopsis  sql.NullString `db:"synopsis"`
	Available sql.NullBool   `db:"available"`
	Copies    sql.NullInt64  `db:"copies"`
	AddedAt   sql.NullTime   `db:"added_at"`
}

type statsDB struct {
	TotalBooks     int64  `db:"total_books"`
	AvailableBooks int64  `db:"available_books"`
	BorrowedBooks  int64  `db:"borrowed_books"`
	PopularGenre   string `db:"popular_genre"`
}

func (r *bookRepository) GetAll(c context.Context) ([]entity.Book, error) {
	return r.selectBooks(c, "GetAll", queryGetAllBooks, map[string]interface{}{})
}

func (r *bookRepository) List(c context.Context, filter catalog.BookFilter) ([]entity.Book, error) {
	availability := filter.Availability
	if availability == "" {
		availability = entity.AvailabilityAll
	}

	argsKV := map[string]interface{}{
		"genre":        filter.Genre,
		"availability": availability,
		"query":        filter.Query,
	}

	return r.selectBooks(c, "List", queryListBooks, argsKV)
}

func (r *bookRepository) GetByID(c context.Context, id string) (entity.Book, error) {
	requestID := contextPkg.GetRequestID(c)
	var book BookDB

	query, args, err := sqlx.Named(queryGetBookByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.Book{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&book); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"book_id":    id,
			}).Warn("GetByID no rows found")
			return entity.Book{}, catalog.ErrBookNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.Book{}, err
	}

	return r.makeBook(book), nil
}

func (r *bookRepository) Create(c context.Context, book entity.Book) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":        book.ID,
		"title":     book.Title,
		"author":    book.Author,
		"genre":     book.Genre,
		"synopsis":  book.Synopsis,
		"available": book.Available,
		"copies":    book.Copies,
		"added_at":  book.AddedAt,
	}

	query, args, err := sqlx.Named(queryCreateBook, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Create")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating book")
		return err
	}

	return nil
}

func (r *bookRepository) Delete(c context.Context, id string) error {
	affected, err := r.exec(c, "Delete", queryDeleteBook, map[string]interface{}{"id": id})
	if err != nil {
		return err
	}

	if affected == 0 {
		return catalog.ErrBookNotFound
	}

	return nil
}

func (r *bookRepository) DeleteBorrowings(c context.Context, bookID string) (int64, error) {
	return r.exec(c, "DeleteBorrowings", queryDeleteBookBorrowings, map[string]interface{}{"book_id": bookID})
}

func (r *bookRepository) Recommendations(c context.Context, genre string, limit int) ([]entity.Book, error) {
	argsKV := map[string]interface{}{
		"genre": genre,
		"limit": limit,
	}

	return r.selectBooks(c, "Recommendations", queryRecommendations, argsKV)
}

func (r *bookRepository) Newest(c context.Context, limit int) ([]entity.Book, error) {
	return r.selectBooks(c, "Newest", queryNewestBooks, map[string]interface{}{"limit": limit})
}

func (r *bookRepository) Stats(c context.Context) (catalog.StatsResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	var stats statsDB

	if err := r.q.QueryRowxContext(c, queryBookStats).StructScan(&stats); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Stats execution err")
		return catalog.StatsResponse{}, err
	}

	return catalog.StatsResponse{
		TotalBooks:     int(stats.TotalBooks),
		AvailableBooks: int(stats.AvailableBooks),
		BorrowedBooks:  int(stats.BorrowedBooks),
		PopularGenre:   stats.PopularGenre,
	}, nil
}

func (r *bookRepository) selectBooks(c context.Context, op, namedQuery string, argsKV map[string]interface{}) ([]entity.Book, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Errorf("%s named query preparation err", op)
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []BookDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Errorf("%s execution err", op)
		return nil, err
	}

	books := make([]entity.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, r.makeBook(row))
	}

	return books, nil
}

func (r *bookRepository) exec(c context.Context, op, namedQuery string, argsKV map[string]interface{}) (int64, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Errorf("%s named query preparation err", op)
		return 0, err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Errorf("%s execution err", op)
		return 0, err
	}

	return res.RowsAffected()
}

func (r *bookRepository) makeBook(b BookDB) entity.Book {
	return entity.Book{
		ID:        b.ID.String,
		Title:     b.Title.String,
		Author:    b.Author.String,
		Genre:     b.Genre.String,
		Synopsis:  b.Synopsis.String,
		Available: b.Available.Bool,
		Copies:    int(b.Copies.Int64),
		AddedAt:   b.AddedAt.Time,
	}
}
