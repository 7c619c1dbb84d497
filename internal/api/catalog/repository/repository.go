package catalogRepository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/catalog"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Books:    &bookRepository{q: db, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Books interface {
		GetAll(ctx context.Context) ([]entity.Book, error)
		List(ctx context.Context, filter catalog.BookFilter) ([]entity.Book, error)
		GetByID(ctx context.Context, id string) (entity.Book, error)
		Create(ctx context.Context, book entity.Book) error
		Delete(ctx context.Context, id string) error
		DeleteBorrowings(ctx context.Context, bookID string) (int64, error)
		Recommendations(ctx context.Context, genre string, limit int) ([]entity.Book, error)
		Newest(ctx context.Context, limit int) ([]entity.Book, error)
		Stats(ctx context.Context) (catalog.StatsResponse, error)
	}

	Commit   func() error
	Rollback func() error
}

type bookRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
