package borrowingRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/borrowing"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
)

type BorrowingDB struct {
	ID            sql.NullString `db:"id"`
	BookID        sql.NullString `db:"book_id"`
	BookTitle     sql.NullString `db:"book_title"`
	BorrowerName  sql.NullString `db:"borrower_name"`
	BorrowerEmail sql.NullString `db:"borrower_email"`
	BorrowDate    sql.NullTime   `db:"borrow_date"`
	ReturnDate    sql.NullTime   `db:"return_date"`
	ReturnedAt    sql.NullTime   `db:"returned_at"`
	Status        sql.NullString `db:"status"`
}

func (r *borrowingRepository) Create(c context.Context, b entity.Borrowing) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":             b.ID,
		"book_id":        b.BookID,
		"book_title":     b.BookTitle,
		"borrower_name":  b.BorrowerName,
		"borrower_email": b.BorrowerEmail,
		"borrow_date":    b.BorrowDate,
		"return_date":    b.ReturnDate,
		"status":         string(b.Status),
	}

	query, args, err := sqlx.Named(queryCreateBorrowing, argsKV)
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
		}).Error("Database error when creating borrowing")
		return err
	}

	return nil
}

func (r *borrowingRepository) GetByIDForUpdate(c context.Context, id string) (entity.Borrowing, error) {
	requestID := contextPkg.GetRequestID(c)
	var row BorrowingDB

	query, args, err := sqlx.Named(queryGetBorrowingForUpdate, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByIDForUpdate named query preparation err")
		return entity.Borrowing{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":   requestID,
				"borrowing_id": id,
			}).Warn("GetByIDForUpdate no rows found")
			return entity.Borrowing{}, borrowing.ErrBorrowingNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByIDForUpdate execution err")
		return entity.Borrowing{}, err
	}

	return makeBorrowing(row), nil
}

func (r *borrowingRepository) List(c context.Context, filter string, now time.Time) ([]entity.Borrowing, error) {
	argsKV := map[string]interface{}{
		"filter": filter,
		"now":    now,
	}

	return r.selectBorrowings(c, "List", queryListBorrowings, argsKV)
}

func (r *borrowingRepository) MarkReturned(c context.Context, id string, returnedAt time.Time) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":          id,
		"returned_at": returnedAt,
	}

	query, args, err := sqlx.Named(queryMarkReturned, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("MarkReturned named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("MarkReturned execution err")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return borrowing.ErrBorrowingAlreadyReturned
	}

	return nil
}

func (r *borrowingRepository) Recent(c context.Context, limit int) ([]entity.Borrowing, error) {
	return r.selectBorrowings(c, "Recent", queryRecentBorrowings, map[string]interface{}{"limit": limit})
}

func (r *borrowingRepository) PopularTitles(c context.Context, limit int) ([]borrowing.PopularTitle, error) {
	var titles []borrowing.PopularTitle
	if err := r.selectInto(c, "PopularTitles", &titles, queryPopularTitles, map[string]interface{}{"limit": limit}); err != nil {
		return nil, err
	}
	return titles, nil
}

func (r *borrowingRepository) Summary(c context.Context, now, monthStart time.Time) (borrowing.DashboardSummary, error) {
	requestID := contextPkg.GetRequestID(c)
	var summary borrowing.DashboardSummary

	argsKV := map[string]interface{}{
		"now":         now,
		"month_start": monthStart,
	}

	query, args, err := sqlx.Named(queryDashboardSummary, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Summary named query preparation err")
		return borrowing.DashboardSummary{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&summary); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Summary execution err")
		return borrowing.DashboardSummary{}, err
	}

	return summary, nil
}

func (r *borrowingRepository) GenreDistribution(c context.Context) ([]borrowing.GenreCount, error) {
	var genres []borrowing.GenreCount
	if err := r.selectInto(c, "GenreDistribution", &genres, queryGenreDistribution, map[string]interface{}{}); err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *borrowingRepository) selectBorrowings(c context.Context, op, namedQuery string, argsKV map[string]interface{}) ([]entity.Borrowing, error) {
	var rows []BorrowingDB
	if err := r.selectInto(c, op, &rows, namedQuery, argsKV); err != nil {
		return nil, err
	}

	borrowings := make([]entity.Borrowing, 0, len(rows))
	for _, row := range rows {
		borrowings = append(borrowings, makeBorrowing(row))
	}
	return borrowings, nil
}

func (r *borrowingRepository) selectInto(c context.Context, op string, dest interface{}, namedQuery string, argsKV map[string]interface{}) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Errorf("%s named query preparation err", op)
		return err
	}
	query = r.q.Rebind(query)

	if err := sqlx.SelectContext(c, r.q, dest, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Errorf("%s execution err", op)
		return err
	}

	return nil
}

func makeBorrowing(b BorrowingDB) entity.Borrowing {
	res := entity.Borrowing{
		ID:            b.ID.String,
		BookID:        b.BookID.String,
		BookTitle:     b.BookTitle.String,
		BorrowerName:  b.BorrowerName.String,
		BorrowerEmail: b.BorrowerEmail.String,
		BorrowDate:    b.BorrowDate.Time,
		ReturnDate:    b.ReturnDate.Time,
		Status:        entity.BorrowingStatus(b.Status.String),
	}
	if b.ReturnedAt.Valid {
		returnedAt := b.ReturnedAt.Time
		res.ReturnedAt = &returnedAt
	}
	return res
}
