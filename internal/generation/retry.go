package generation

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	"ticketscan/internal/port"
)

// RetryingGenerator retries a failing generator a bounded number of times.
// Rate-limit errors are not retried; the fallback circuit handles those.
type RetryingGenerator struct {
	next     port.TextGenerator
	attempts uint
	delay    time.Duration
	log      *zap.Logger
}

// NewRetryingGenerator wraps next with up to retries extra attempts.
func NewRetryingGenerator(next port.TextGenerator, retries int, delay time.Duration, log *zap.Logger) *RetryingGenerator {
	if retries < 0 {
		retries = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RetryingGenerator{
		next:     next,
		attempts: uint(retries) + 1,
		delay:    delay,
		log:      log,
	}
}

func (r *RetryingGenerator) Generate(ctx context.Context, prompt string) (*port.Completion, error) {
	return retry.DoWithData(
		func() (*port.Completion, error) {
			return r.next.Generate(ctx, prompt)
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var rlErr *RateLimitError
			return !errors.As(err, &rlErr)
		}),
		retry.OnRetry(func(n uint, err error) {
			r.log.Warn("generation.RetryingGenerator: retrying",
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
}
