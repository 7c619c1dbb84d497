package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/entity"
)

const (
	catalogKey        = "library:catalog:snapshot"
	catalogVersionKey = "library:catalog:version"
	defaultCatalogTTL = 5 * time.Minute
)

var (
	ErrCacheMiss     = errors.New("cache miss")
	ErrStaleSnapshot = errors.New("catalog changed while the snapshot was loading")
)

// IRedis caches the ordered catalog snapshot the voice interpreter reads on every
// command. Every invalidation bumps the catalog version; a snapshot is only stored
// when the version it was loaded under is still current.
type IRedis interface {
	GetCatalog(ctx context.Context) ([]entity.Book, error)
	CatalogVersion(ctx context.Context) (int64, error)
	SetCatalog(ctx context.Context, version int64, books []entity.Book) error
	InvalidateCatalog(ctx context.Context) error
}

type redisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return NewWithClient(client, catalogTTLFromEnv())
}

func NewWithClient(client *redis.Client, ttl time.Duration) IRedis {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &redisClient{client: client, ttl: ttl}
}

func catalogTTLFromEnv() time.Duration {
	raw := os.Getenv("CATALOG_CACHE_TTL")
	if raw == "" {
		return defaultCatalogTTL
	}

	ttl, err := time.ParseDuration(raw)
	if err != nil {
		logrus.Warn(fmt.Sprintf("Invalid CATALOG_CACHE_TTL %q, using %v", raw, defaultCatalogTTL))
		return defaultCatalogTTL
	}
	return ttl
}

func (r *redisClient) GetCatalog(ctx context.Context) ([]entity.Book, error) {
	val, err := r.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		logrus.Debug("Catalog snapshot not cached")
		return nil, ErrCacheMiss
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading catalog snapshot: %v", err))
		return nil, err
	}

	var books []entity.Book
	if err := jsoniter.Unmarshal(val, &books); err != nil {
		logrus.Warn(fmt.Sprintf("Discarding undecodable catalog snapshot: %v", err))
		return nil, ErrCacheMiss
	}

	return books, nil
}

func (r *redisClient) CatalogVersion(ctx context.Context) (int64, error) {
	return readVersion(ctx, r.client)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, c getter) (int64, error) {
	version, err := c.Get(ctx, catalogVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

func (r *redisClient) SetCatalog(ctx context.Context, version int64, books []entity.Book) error {
	payload, err := jsoniter.Marshal(books)
	if err != nil {
		return err
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx)
		if err != nil {
			return err
		}
		if current != version {
			return ErrStaleSnapshot
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, catalogKey, payload, r.ttl)
			return nil
		})
		return err
	}, catalogVersionKey)

	switch {
	case errors.Is(err, redis.TxFailedErr), errors.Is(err, ErrStaleSnapshot):
		logrus.Debug("Catalog changed during load, snapshot not cached")
		return ErrStaleSnapshot
	case err != nil:
		logrus.Error(fmt.Sprintf("Error caching catalog snapshot: %v", err))
		return err
	}

	logrus.Debug(fmt.Sprintf("Cached catalog snapshot of %d books for %v", len(books), r.ttl))
	return nil
}

func (r *redisClient) InvalidateCatalog(ctx context.Context) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, catalogVersionKey)
		pipe.Del(ctx, catalogKey)
		return nil
	})
	if err != nil {
		logrus.Error(fmt.Sprintf("Error invalidating catalog snapshot: %v", err))
		return err
	}
	return nil
}
