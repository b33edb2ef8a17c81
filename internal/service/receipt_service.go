package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"ticketscan/internal/domain"
	"ticketscan/internal/generation"
	"ticketscan/internal/port"
	"ticketscan/internal/repair"
)

// ReceiptService turns OCR text into a receipt record.
type ReceiptService interface {
	// Enhance asks the model to restate text as receipt JSON and runs the
	// reply through the repair pipeline. Pipeline failures are reported in the
	// result; only generation failures are returned as errors.
	Enhance(ctx context.Context, text string) (*repair.Result, error)
	// Cleanup runs the repair pipeline over a reply without calling the model.
	Cleanup(raw string) *repair.Result
}

type receiptService struct {
	gen      port.TextGenerator
	pipeline *repair.Pipeline
	timeout  time.Duration
	log      *zap.Logger
}

// NewReceiptService creates a new ReceiptService implementation.
func NewReceiptService(gen port.TextGenerator, pipeline *repair.Pipeline, timeout time.Duration, log *zap.Logger) ReceiptService {
	if log == nil {
		log = zap.NewNop()
	}
	return &receiptService{
		gen:      gen,
		pipeline: pipeline,
		timeout:  timeout,
		log:      log,
	}
}

func (s *receiptService) Enhance(ctx context.Context, text string) (*repair.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyOCRText
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	completion, err := s.gen.Generate(ctx, generation.BuildReceiptPrompt(text))
	if err != nil {
		var rlErr *generation.RateLimitError
		if errors.As(err, &rlErr) {
			return nil, err
		}
		return nil, generation.NewExternalServiceError("generation", err)
	}
	if completion == nil || completion.Text == "" {
		return nil, generation.NewExternalServiceError("generation", generation.ErrEmptyCompletion)
	}

	res := s.pipeline.Run(completion.Text)
	fields := []zap.Field{
		zap.String("provider", completion.Provider),
		zap.String("model", completion.Model),
		zap.String("state", string(res.State)),
		zap.Int("nulled", len(res.Nulled)),
		zap.Bool("fallback", res.FallbackUsed),
		zap.Duration("elapsed", time.Since(start)),
	}
	if res.Err != nil {
		s.log.Warn("receipt reply could not be parsed", append(fields, zap.Error(res.Err))...)
	} else {
		s.log.Info("receipt parsed", fields...)
	}
	return res, nil
}

func (s *receiptService) Cleanup(raw string) *repair.Result {
	res := s.pipeline.Run(raw)
	if res.Err != nil {
		s.log.Debug("cleanup failed", zap.String("state", string(res.State)), zap.Error(res.Err))
	}
	return res
}
