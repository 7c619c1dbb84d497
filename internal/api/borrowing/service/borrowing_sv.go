package borrowingService

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/borrowing"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
	"github.com/varshasramu/Smart-library-assistant/pkg/metrics"
)

// BorrowBook lends one copy of the book. The book row stays locked until the
// borrowing is written so two borrowers can never take the last copy.
func (s *borrowingService) BorrowBook(c context.Context, req borrowing.BorrowBookRequest) (res entity.Borrowing, err error) {
	requestID := contextPkg.GetRequestID(c)
	defer func() { recordOperation("borrow", err) }()

	now := s.now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return entity.Borrowing{}, err
	}

	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to begin transaction")
		return entity.Borrowing{}, err
	}
	defer func() {
		if err != nil {
			s.rollback(requestID, repo.Rollback)
		}
	}()

	book, err := repo.Books.GetForUpdate(c, req.BookID)
	if err != nil {
		return entity.Borrowing{}, err
	}

	if !book.Available || book.Copies <= 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"book_id":    book.ID,
			"copies":     book.Copies,
		}).Warn("Borrow rejected, no copies left")
		return entity.Borrowing{}, borrowing.ErrBookUnavailable
	}

	copies := book.Copies - 1
	if err = repo.Books.UpdateCopies(c, book.ID, copies, copies > 0); err != nil {
		return entity.Borrowing{}, err
	}

	res = entity.Borrowing{
		ID:            id,
		BookID:        book.ID,
		BookTitle:     book.Title,
		BorrowerName:  strings.TrimSpace(req.BorrowerName),
		BorrowerEmail: strings.ToLower(strings.TrimSpace(req.BorrowerEmail)),
		BorrowDate:    now,
		ReturnDate:    now.Add(entity.LoanPeriod),
		Status:        entity.BorrowingActive,
	}

	if err = repo.Borrowings.Create(c, res); err != nil {
		return entity.Borrowing{}, err
	}

	if err = repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return entity.Borrowing{}, err
	}

	s.invalidateCatalog(c)

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"borrowing_id": res.ID,
		"book_id":      res.BookID,
		"copies_left":  copies,
	}).Info("Book borrowed")

	return res, nil
}

func (s *borrowingService) ReturnBorrowing(c context.Context, id string) (res entity.Borrowing, err error) {
	requestID := contextPkg.GetRequestID(c)
	defer func() { recordOperation("return", err) }()

	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to begin transaction")
		return entity.Borrowing{}, err
	}
	defer func() {
		if err != nil {
			s.rollback(requestID, repo.Rollback)
		}
	}()

	res, err = repo.Borrowings.GetByIDForUpdate(c, id)
	if err != nil {
		return entity.Borrowing{}, err
	}

	if res.Status == entity.BorrowingReturned {
		err = borrowing.ErrBorrowingAlreadyReturned
		return entity.Borrowing{}, err
	}

	book, err := repo.Books.GetForUpdate(c, res.BookID)
	if err != nil {
		return entity.Borrowing{}, err
	}

	if err = repo.Books.UpdateCopies(c, book.ID, book.Copies+1, true); err != nil {
		return entity.Borrowing{}, err
	}

	returnedAt := s.now()
	if err = repo.Borrowings.MarkReturned(c, res.ID, returnedAt); err != nil {
		return entity.Borrowing{}, err
	}

	if err = repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return entity.Borrowing{}, err
	}

	s.invalidateCatalog(c)

	res.Status = entity.BorrowingReturned
	res.ReturnedAt = &returnedAt

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"borrowing_id": res.ID,
		"book_id":      res.BookID,
		"staff":        contextPkg.GetStaff(c),
	}).Info("Book returned")

	return res, nil
}

func (s *borrowingService) ListBorrowings(c context.Context, status string) ([]entity.Borrowing, error) {
	if status == "" {
		status = entity.BorrowingFilterAll
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Borrowings.List(c, status, s.now())
}

func (s *borrowingService) GetDashboard(c context.Context) (borrowing.DashboardResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return borrowing.DashboardResponse{}, err
	}

	summary, err := repo.Borrowings.Summary(c, now, monthStart)
	if err != nil {
		return borrowing.DashboardResponse{}, err
	}

	genres, err := repo.Borrowings.GenreDistribution(c)
	if err != nil {
		return borrowing.DashboardResponse{}, err
	}

	titles, err := repo.Borrowings.PopularTitles(c, DashboardTopTitles)
	if err != nil {
		return borrowing.DashboardResponse{}, err
	}

	recent, err := repo.Borrowings.Recent(c, DashboardRecentActivity)
	if err != nil {
		return borrowing.DashboardResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"staff":      contextPkg.GetStaff(c),
	}).Debug("Dashboard assembled")

	if genres == nil {
		genres = []borrowing.GenreCount{}
	}
	if titles == nil {
		titles = []borrowing.PopularTitle{}
	}

	return borrowing.DashboardResponse{
		DashboardSummary:  summary,
		GenreDistribution: genres,
		TopTitles:         titles,
		RecentActivity:    borrowing.MakeBorrowingsResponse(recent, now).Borrowings,
	}, nil
}

func (s *borrowingService) GetPopularTitles(c context.Context, limit int) ([]borrowing.PopularTitle, error) {
	if limit < 1 || limit > MaxPopularLimit {
		limit = DefaultPopularLimit
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	titles, err := repo.Borrowings.PopularTitles(c, limit)
	if err != nil {
		return nil, err
	}
	if titles == nil {
		titles = []borrowing.PopularTitle{}
	}

	return titles, nil
}

func (s *borrowingService) rollback(requestID string, rollback func() error) {
	if err := rollback(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to rollback transaction")
	}
}

func (s *borrowingService) invalidateCatalog(c context.Context) {
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

func recordOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.BorrowingOperations.WithLabelValues(operation, outcome).Inc()
}
