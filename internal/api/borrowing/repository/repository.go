package borrowingRepository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/borrowing"
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
		Borrowings: &borrowingRepository{q: db, log: r.log},
		Books:      &bookRepository{q: db, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Borrowings interface {
		Create(ctx context.Context, b entity.Borrowing) error
		GetByIDForUpdate(ctx context.Context, id string) (entity.Borrowing, error)
		List(ctx context.Context, filter string, now time.Time) ([]entity.Borrowing, error)
		MarkReturned(ctx context.Context, id string, returnedAt time.Time) error
		Recent(ctx context.Context, limit int) ([]entity.Borrowing, error)
		PopularTitles(ctx context.Context, limit int) ([]borrowing.PopularTitle, error)
		Summary(ctx context.Context, now, monthStart time.Time) (borrowing.DashboardSummary, error)
		GenreDistribution(ctx context.Context) ([]borrowing.GenreCount, error)
	}

	Books interface {
		GetForUpdate(ctx context.Context, id string) (entity.Book, error)
		UpdateCopies(ctx context.Context, id string, copies int, available bool) error
	}

	Commit   func() error
	Rollback func() error
}

type borrowingRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type bookRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
