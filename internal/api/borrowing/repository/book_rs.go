package borrowingRepository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/borrowing"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
)

type bookDB struct {
	ID        sql.NullString `db:"id"`
	Title     sql.NullString `db:"title"`
	Author    sql.NullString `db:"author"`
	Genre     sql.NullString `db:"genre"`
	Synopsis  sql.NullString `db:"synopsis"`
	Available sql.NullBool   `db:"available"`
	Copies    sql.NullInt64  `db:"copies"`
	AddedAt   sql.NullTime   `db:"added_at"`
}

// GetForUpdate locks the book row for the rest of the transaction.
func (r *bookRepository) GetForUpdate(c context.Context, id string) (entity.Book, error) {
	requestID := contextPkg.GetRequestID(c)
	var row bookDB

	query, args, err := sqlx.Named(queryGetBookForUpdate, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetForUpdate named query preparation err")
		return entity.Book{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"book_id":    id,
			}).Warn("GetForUpdate no rows found")
			return entity.Book{}, borrowing.ErrBookNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetForUpdate execution err")
		return entity.Book{}, err
	}

	return entity.Book{
		ID:        row.ID.String,
		Title:     row.Title.String,
		Author:    row.Author.String,
		Genre:     row.Genre.String,
		Synopsis:  row.Synopsis.String,
		Available: row.Available.Bool,
		Copies:    int(row.Copies.Int64),
		AddedAt:   row.AddedAt.Time,
	}, nil
}

func (r *bookRepository) UpdateCopies(c context.Context, id string, copies int, available bool) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":        id,
		"copies":    copies,
		"available": available,
	}

	query, args, err := sqlx.Named(queryUpdateCopies, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCopies named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCopies execution err")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return borrowing.ErrBookNotFound
	}

	return nil
}
