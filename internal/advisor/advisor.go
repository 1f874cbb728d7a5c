// Package advisor produces AI-generated financial insight text from a
// transaction snapshot. The generator is an injected capability; its errors
// never reach the caller as errors, only as a fallback message.
package advisor

import (
	"context"
	"time"

	"ledgerly/internal/core"
	"ledgerly/internal/log"
)

// Fallback messages surfaced instead of raw transport errors.
const (
	MsgNoTransactions = "Add some transactions to get AI insights!"
	MsgOffline        = "The AI financial advisor is currently offline. Please check your spending patterns manually."
)

// Summarizer turns a transaction snapshot into advisory text. It may be
// slow, fail, or be unavailable entirely.
type Summarizer interface {
	Summarize(ctx context.Context, txs []core.Transaction) (string, error)
}

type Service struct {
	summarizer Summarizer
	timeout    time.Duration
	logger     *log.Logger
}

// New creates an advisor service. summarizer may be nil, in which case every
// request resolves to the offline fallback.
func New(summarizer Summarizer, timeout time.Duration, logger *log.Logger) *Service {
	return &Service{
		summarizer: summarizer,
		timeout:    timeout,
		logger:     logger.WithComponent(log.ComponentAdvisor),
	}
}

// Insights returns advice for the given snapshot, or a graceful fallback.
// It never returns an error: generation failure is a degraded answer, not a
// caller problem.
func (s *Service) Insights(ctx context.Context, txs []core.Transaction) string {
	if len(txs) == 0 {
		return MsgNoTransactions
	}
	if s.summarizer == nil {
		return MsgOffline
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.summarizer.Summarize(ctx, txs)
	if err != nil {
		s.logger.ErrorContext(ctx, "Insight generation failed",
			log.FieldError, err, log.FieldCount, len(txs))
		return MsgOffline
	}
	if text == "" {
		return MsgOffline
	}
	return text
}
