package catalogService

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/catalog"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
	"github.com/varshasramu/Smart-library-assistant/pkg/metrics"
	"github.com/varshasramu/Smart-library-assistant/pkg/redis"
)

func (s *catalogService) ListBooks(c context.Context, filter catalog.BookFilter) ([]entity.Book, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	filter.Genre = strings.TrimSpace(filter.Genre)
	filter.Query = strings.TrimSpace(filter.Query)

	books, err := repo.Books.List(c, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list books")
		return nil, err
	}

	return books, nil
}

func (s *catalogService) GetBook(c context.Context, id string) (entity.Book, error) {
	if strings.TrimSpace(id) == "" {
		return entity.Book{}, catalog.ErrBookIDRequired
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return entity.Book{}, err
	}

	return repo.Books.GetByID(c, id)
}

func (s *catalogService) CreateBook(c context.Context, req catalog.CreateBookRequest) (entity.Book, error) {
	requestID := contextPkg.GetRequestID(c)
	now := s.now()

	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate book id")
		return entity.Book{}, err
	}

	book := entity.Book{
		ID:        id,
		Title:     strings.TrimSpace(req.Title),
		Author:    strings.TrimSpace(req.Author),
		Genre:     strings.TrimSpace(req.Genre),
		Synopsis:  strings.TrimSpace(req.Synopsis),
		Available: req.Copies > 0,
		Copies:    req.Copies,
		AddedAt:   now,
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return entity.Book{}, err
	}

	if err := repo.Books.Create(c, book); err != nil {
		return entity.Book{}, err
	}

	s.invalidateCatalog(c)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"book_id":    book.ID,
		"title":      book.Title,
		"staff":      contextPkg.GetStaff(c),
	}).Info("Book added to catalog")

	return book, nil
}

// DeleteBook removes the book together with every borrowing record that
// references it.
func (s *catalogService) DeleteBook(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)
	if strings.TrimSpace(id) == "" {
		return catalog.ErrBookIDRequired
	}

	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to begin transaction")
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := repo.Rollback(); rbErr != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      rbErr.Error(),
				}).Error("Failed to rollback transaction")
			}
		}
	}()

	removed, err := repo.Books.DeleteBorrowings(c, id)
	if err != nil {
		return err
	}

	if err = repo.Books.Delete(c, id); err != nil {
		return err
	}

	if err = repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return err
	}

	s.invalidateCatalog(c)

	s.log.WithFields(logrus.Fields{
		"request_id":         requestID,
		"book_id":            id,
		"removed_borrowings": removed,
		"staff":              contextPkg.GetStaff(c),
	}).Info("Book removed from catalog")

	return nil
}

// GetRecommendations returns up to three available books of the genre, defaulting
// to Fantasy when no genre is given.
func (s *catalogService) GetRecommendations(c context.Context, genre string) ([]entity.Book, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		genre = entity.DefaultRecommendationGenre
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Books.Recommendations(c, genre, RecommendationLimit)
}

func (s *catalogService) GetNewestBooks(c context.Context, limit int) ([]entity.Book, error) {
	if limit < 1 || limit > MaxNewestLimit {
		limit = DefaultNewestLimit
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Books.Newest(c, limit)
}

func (s *catalogService) GetStats(c context.Context) (catalog.StatsResponse, error) {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		return catalog.StatsResponse{}, err
	}

	return repo.Books.Stats(c)
}

func (s *catalogService) GetCatalogSnapshot(c context.Context) ([]entity.Book, error) {
	requestID := contextPkg.GetRequestID(c)

	if s.redisServer != nil {
		books, err := s.redisServer.GetCatalog(c)
		switch {
		case err == nil:
			metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
			return books, nil
		case errors.Is(err, redis.ErrCacheMiss):
			metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()
		default:
			metrics.CatalogCacheLookups.WithLabelValues("error").Inc()
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Catalog cache unavailable, reading from database")
		}
	}

	// The version is read before the database so a mutation committed meanwhile
	// keeps this load out of the cache.
	var (
		version    int64
		versionErr error
	)
	if s.redisServer != nil {
		version, versionErr = s.redisServer.CatalogVersion(c)
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	books, err := repo.Books.GetAll(c)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load catalog snapshot")
		return nil, catalog.ErrCatalogNotReady
	}

	if s.redisServer != nil && versionErr == nil {
		err := s.redisServer.SetCatalog(c, version, books)
		switch {
		case errors.Is(err, redis.ErrStaleSnapshot):
			s.log.WithField("request_id", requestID).Debug("Catalog changed during load, skipping cache write")
		case err != nil:
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to cache catalog snapshot")
		}
	}

	return books, nil
}

func (s *catalogService) invalidateCatalog(c context.Context) {
	if s.redisServer == nil {
		return
	}

	if err := s.redisServer.InvalidateCatalog(c); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"error":      err.Error(),
		}).Warn("Failed to invalidate catalog cache")
	}
}
