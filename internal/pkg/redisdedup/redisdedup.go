package redisdedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"dispatch/pkg/logger"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	// dedup:{scope}:{id}
	keyPattern = "dedup:%s:%s"

	// TTL покрывает любой разумный горизонт повторной доставки из Kafka.
	dedupTTL = 48 * time.Hour

	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	maxElapsedTime  = 2 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

// Store отсекает повторную обработку внешних событий по их идентификатору.
type Store struct {
	client *redis.Client
}

func New(ctx context.Context, log logger.Logger, addr string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	dedupLog := log.With(
		logger.NewField("addr", addr),
	)

	if err := pingRedis(ctx, dedupLog, client); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			return nil, fmt.Errorf("redis connection: %w (failed to close: %w)", err, closeErr)
		}
		return nil, fmt.Errorf("redis connection: %w", err)
	}

	return &Store{client: client}, nil
}

// Seen сообщает, было ли событие уже помечено обработанным. Чтение ничего
// не пишет: пометку ставит Mark после успешной обработки, иначе упавшая
// обработка оставила бы событие навсегда «обработанным».
func (s *Store) Seen(ctx context.Context, scope, id string) (bool, error) {
	key := fmt.Sprintf(keyPattern, scope, id)

	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("dedup exists: %w", err)
	}
	return n > 0, nil
}

// Mark помечает событие обработанным.
// SET NX атомарен, поэтому из двух конкурентных воркеров пометку ставит один.
func (s *Store) Mark(ctx context.Context, scope, id string) error {
	key := fmt.Sprintf(keyPattern, scope, id)

	if err := s.client.SetNX(ctx, key, 1, dedupTTL).Err(); err != nil {
		return fmt.Errorf("dedup setnx: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func pingRedis(ctx context.Context, log logger.Logger, client *redis.Client) error {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     nil,
	}

	retrier := backoff_adapter.New(retryConfig)

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(
			logger.NewField("attempt", attempt),
		).Info("attempting Redis connection")

		return client.Ping(ctx).Err()
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("Redis connection failed after retries")
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	log.With(
		logger.NewField("attempts", attempt),
	).Info("Redis connection established")
	return nil
}
