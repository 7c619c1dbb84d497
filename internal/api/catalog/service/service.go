package catalogService

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/catalog"
	catalogRepository "github.com/varshasramu/Smart-library-assistant/internal/api/catalog/repository"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	"github.com/varshasramu/Smart-library-assistant/pkg/redis"
	"github.com/varshasramu/Smart-library-assistant/pkg/utils"
)

const (
	RecommendationLimit = 3
	DefaultNewestLimit  = 5
	MaxNewestLimit      = 50
)

type CatalogService interface {
	ListBooks(c context.Context, filter catalog.BookFilter) ([]entity.Book, error)
	GetBook(c context.Context, id string) (entity.Book, error)
	CreateBook(c context.Context, req catalog.CreateBookRequest) (entity.Book, error)
	DeleteBook(c context.Context, id string) error
	GetRecommendations(c context.Context, genre string) ([]entity.Book, error)
	GetNewestBooks(c context.Context, limit int) ([]entity.Book, error)
	GetStats(c context.Context) (catalog.StatsResponse, error)

	// GetCatalogSnapshot returns every book in insertion order, served from the
	// cache when possible.
	GetCatalogSnapshot(c context.Context) ([]entity.Book, error)
}

type catalogService struct {
	log         *logrus.Logger
	repo        catalogRepository.Repository
	redisServer redis.IRedis
	utils       utils.IUtils
	now         func() time.Time
}

func New(log *logrus.Logger,
	repo catalogRepository.Repository,
	redisServer redis.IRedis,
	utils utils.IUtils,
) CatalogService {
	return &catalogService{
		log:         log,
		repo:        repo,
		redisServer: redisServer,
		utils:       utils,
		now:         time.Now,
	}
}
