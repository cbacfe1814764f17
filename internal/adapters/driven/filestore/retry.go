package filestore

import (
	"context"
	"errors"
	"syscall"
	"time"

	"github.com/custodia-labs/prrelink/internal/logger"
)

// RetryConfig configures retry behaviour for filesystem operations.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns defaults suited to network shares.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     500 * time.Millisecond,
	}
}

// isTransient reports whether err is worth retrying.
func isTransient(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case syscall.ESTALE, syscall.EAGAIN, syscall.EBUSY:
		return true
	default:
		return false
	}
}

// withRetry runs fn until it succeeds, fails permanently, the retries are
// exhausted or ctx is done.
func withRetry(ctx context.Context, cfg RetryConfig, op, path string, fn func() error) error {
	backoff := cfg.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 0 {
				logger.Info("%s succeeded on retry %d for %s", op, attempt, path)
			}
			return nil
		}

		lastErr = err
		if !isTransient(err) {
			return err
		}

		if attempt == cfg.MaxRetries {
			break
		}

		logger.Debug("%s transient error for %s, retrying in %v (attempt %d/%d)",
			op, path, backoff, attempt+1, cfg.MaxRetries)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}

		backoff *= 2
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	logger.Warn("%s failed after %d retries for %s: %v", op, cfg.MaxRetries, path, lastErr)
	return lastErr
}
