package exporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sjsneakers/resale-gateway/pkg/logger"
	"github.com/sjsneakers/resale-gateway/pkg/redis"
)

var (
	ErrAlreadyExported    = errors.New("event already exported")
	ErrLockAcquireFailed  = errors.New("failed to acquire export lock")
	ErrMaxRetriesExceeded = errors.New("maximum export retries exceeded")
)

type IdempotencyConfig struct {
	LockTTL time.Duration

	ExportedTTL time.Duration

	MaxRetries int

	RetryKeyPrefix string

	LockKeyPrefix string

	ExportedKeyPrefix string
}

func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		LockTTL:           30 * time.Second,
		ExportedTTL:       24 * time.Hour,
		MaxRetries:        3,
		RetryKeyPrefix:    "export:retry:",
		LockKeyPrefix:     "export:lock:",
		ExportedKeyPrefix: "export:done:",
	}
}

// IdempotencyService keeps the spreadsheet mirror from double-writing rows
// when an event is redelivered. Keys are the ledger event's Key().
type IdempotencyService struct {
	redis  redis.RedisAdapter
	config IdempotencyConfig
}

func NewIdempotencyService(redisAdapter redis.RedisAdapter, config IdempotencyConfig) *IdempotencyService {
	return &IdempotencyService{
		redis:  redisAdapter,
		config: config,
	}
}

type ExportContext struct {
	EventKey     string
	RetryCount   int
	IsRetry      bool
	lockAcquired bool
	service      *IdempotencyService
}

func (s *IdempotencyService) AcquireExportLock(ctx context.Context, eventKey string) (*ExportContext, error) {
	exportedKey := s.config.ExportedKeyPrefix + eventKey
	exists, err := s.redis.Exist(exportedKey)
	if err != nil {
		logger.Warn("failed to check exported marker", "event_key", eventKey, "error", err)
		// Continue even if the check fails. A duplicate row beats a stuck queue.
	} else if exists > 0 {
		return nil, ErrAlreadyExported
	}

	retryKey := s.config.RetryKeyPrefix + eventKey
	retryCountBytes, err := s.redis.Get(retryKey)
	retryCount := 0
	if err == nil && len(retryCountBytes) > 0 {
		fmt.Sscanf(string(retryCountBytes), "%d", &retryCount)
	}

	if retryCount >= s.config.MaxRetries {
		logger.Error("max export retries exceeded", "event_key", eventKey, "retry_count", retryCount)
		return nil, fmt.Errorf("%w: event_key=%s, retries=%d", ErrMaxRetriesExceeded, eventKey, retryCount)
	}

	lockKey := s.config.LockKeyPrefix + eventKey
	lockValue := []byte(fmt.Sprintf("%d", time.Now().UnixNano()))

	acquired, err := s.redis.SetNX(lockKey, lockValue, s.config.LockTTL)
	if err != nil {
		logger.Error("failed to acquire export lock", "event_key", eventKey, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
	}
	if !acquired {
		logger.Info("export lock held by another consumer", "event_key", eventKey)
		return nil, ErrLockAcquireFailed
	}

	return &ExportContext{
		EventKey:     eventKey,
		RetryCount:   retryCount,
		IsRetry:      retryCount > 0,
		lockAcquired: true,
		service:      s,
	}, nil
}

func (s *IdempotencyService) MarkExported(ctx context.Context, ec *ExportContext) error {
	exportedKey := s.config.ExportedKeyPrefix + ec.EventKey
	err := s.redis.Set(exportedKey, []byte("1"), s.config.ExportedTTL)
	if err != nil {
		logger.Error("failed to set exported marker", "event_key", ec.EventKey, "error", err)
		return fmt.Errorf("mark exported: %w", err)
	}

	s.cleanup(ctx, ec)
	return nil
}

func (s *IdempotencyService) MarkFailure(ctx context.Context, ec *ExportContext, reason error) error {
	retryKey := s.config.RetryKeyPrefix + ec.EventKey
	newRetryCount := ec.RetryCount + 1
	retryValue := []byte(fmt.Sprintf("%d", newRetryCount))

	// Keep the counter around so retries accumulate across redeliveries.
	if err := s.redis.Set(retryKey, retryValue, s.config.ExportedTTL); err != nil {
		logger.Error("failed to increment export retry counter", "event_key", ec.EventKey, "error", err)
	}

	lockKey := s.config.LockKeyPrefix + ec.EventKey
	if err := s.redis.Del(lockKey); err != nil {
		logger.Warn("failed to remove export lock", "event_key", ec.EventKey, "error", err)
	}

	logger.Warn("event export failed, will retry",
		"event_key", ec.EventKey,
		"retry_count", newRetryCount,
		"max_retries", s.config.MaxRetries,
		"reason", reason)
	return nil
}

func (s *IdempotencyService) ReleaseLock(ctx context.Context, ec *ExportContext) error {
	if ec == nil || !ec.lockAcquired {
		return nil
	}

	lockKey := s.config.LockKeyPrefix + ec.EventKey
	if err := s.redis.Del(lockKey); err != nil {
		logger.Warn("failed to release export lock", "event_key", ec.EventKey, "error", err)
		return err
	}

	ec.lockAcquired = false
	return nil
}

func (s *IdempotencyService) cleanup(ctx context.Context, ec *ExportContext) {
	lockKey := s.config.LockKeyPrefix + ec.EventKey
	if err := s.redis.Del(lockKey); err != nil {
		logger.Warn("failed to cleanup export lock", "event_key", ec.EventKey, "error", err)
	}

	retryKey := s.config.RetryKeyPrefix + ec.EventKey
	if err := s.redis.Del(retryKey); err != nil {
		logger.Warn("failed to cleanup export retry counter", "event_key", ec.EventKey, "error", err)
	}

	ec.lockAcquired = false
}

func (s *IdempotencyService) GetRetryCount(ctx context.Context, eventKey string) (int, error) {
	retryKey := s.config.RetryKeyPrefix + eventKey
	retryCountBytes, err := s.redis.Get(retryKey)
	if err != nil {
		if err == redis.NilError {
			return 0, nil
		}
		return 0, err
	}

	retryCount := 0
	fmt.Sscanf(string(retryCountBytes), "%d", &retryCount)
	return retryCount, nil
}

func (s *IdempotencyService) IsExported(ctx context.Context, eventKey string) (bool, error) {
	exportedKey := s.config.ExportedKeyPrefix + eventKey
	exists, err := s.redis.Exist(exportedKey)
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
