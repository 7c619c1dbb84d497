package borrowingService

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/borrowing"
	borrowingRepository "github.com/varshasramu/Smart-library-assistant/internal/api/borrowing/repository"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	"github.com/varshasramu/Smart-library-assistant/pkg/redis"
	"github.com/varshasramu/Smart-library-assistant/pkg/utils"
)

const (
	DashboardTopTitles      = 5
	DashboardRecentActivity = 5
	DefaultPopularLimit     = 5
	MaxPopularLimit         = 20
)

type BorrowingService interface {
	BorrowBook(c context.Context, req borrowing.BorrowBookRequest) (entity.Borrowing, error)
	ReturnBorrowing(c context.Context, id string) (entity.Borrowing, error)
	ListBorrowings(c context.Context, status string) ([]entity.Borrowing, error)
	GetDashboard(c context.Context) (borrowing.DashboardResponse, error)
	GetPopularTitles(c context.Context, limit int) ([]borrowing.PopularTitle, error)
	Now() time.Time
}

type borrowingService struct {
	log         *logrus.Logger
	repo        borrowingRepository.Repository
	redisServer redis.IRedis
	utils       utils.IUtils
	now         func() time.Time
}

func New(log *logrus.Logger,
	repo borrowingRepository.Repository,
	redisServer redis.IRedis,
	utils utils.IUtils,
) BorrowingService {
	return &borrowingService{
		log:         log,
		repo:        repo,
		redisServer: redisServer,
		utils:       utils,
		now:         time.Now,
	}
}

func (s *borrowingService) Now() time.Time {
	return s.now()
}
