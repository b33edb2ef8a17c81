package generation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ticketscan/internal/config"
	"ticketscan/internal/port"
)

// NewFromConfig assembles the configured providers into one TextGenerator:
// a fallback chain when more than one tier is set, wrapped with retries, and
// every failure surfaced as an ExternalServiceError or RateLimitError.
func NewFromConfig(cfg *config.GenerationConfig, log *zap.Logger) (port.TextGenerator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tiers := []*config.GenerationProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig(), cfg.TertiaryConfig()}

	var (
		generators []port.TextGenerator
		names      []string
	)
	for _, tc := range tiers {
		if tc == nil {
			continue
		}
		g, err := NewGenerator(tc)
		if err != nil {
			return nil, fmt.Errorf("generation.NewFromConfig: %w", err)
		}
		generators = append(generators, g)
		names = append(names, tc.Provider)
		log.Info("generation provider configured", zap.String("provider", tc.Provider), zap.String("model", tc.DefaultModel))
	}

	var gen port.TextGenerator = generators[0]
	if len(generators) > 1 {
		gen = NewFallbackGenerator(generators, names, log)
	}
	if cfg.Retries > 0 {
		gen = NewRetryingGenerator(gen, cfg.Retries, cfg.RetryDelay, log)
	}
	return &guardedGenerator{next: gen, provider: names[0]}, nil
}

// guardedGenerator normalises failures so callers only see typed errors.
type guardedGenerator struct {
	next     port.TextGenerator
	provider string
}

func (g *guardedGenerator) Generate(ctx context.Context, prompt string) (*port.Completion, error) {
	out, err := g.next.Generate(ctx, prompt)
	if err != nil {
		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			return nil, err
		}
		return nil, NewExternalServiceError(g.provider, err)
	}
	if out == nil || out.Text == "" {
		return nil, NewExternalServiceError(g.provider, ErrEmptyCompletion)
	}
	return out, nil
}
