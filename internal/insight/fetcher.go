package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/ppiankov/lovewall/internal/llm"
	"github.com/ppiankov/lovewall/internal/model"
)

// Source produces an insight for a set of items without ever failing
type Source interface {
	Fetch(ctx context.Context, items []model.ProofItem) (model.Insight, Outcome)
}

// Fetcher asks a provider for a sentiment insight and falls back to a static
// payload whenever the provider is missing, fails, or answers with junk.
type Fetcher struct {
	provider  llm.Provider // nil when no credential is configured
	logger    *zap.Logger
	metrics   *Metrics
	maxTokens int
}

// NewFetcher creates a fetcher. provider may be nil.
func NewFetcher(provider llm.Provider, logger *zap.Logger, metrics *Metrics) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		provider: provider,
		logger:   logger,
		metrics:  metrics,
	}
}

// WithMaxTokens caps the response length requested from the provider
func (f *Fetcher) WithMaxTokens(n int) *Fetcher {
	f.maxTokens = n
	return f
}

// ProviderName returns the configured provider, or "" when unconfigured
func (f *Fetcher) ProviderName() string {
	if f.provider == nil {
		return ""
	}
	return f.provider.Name()
}

// Fetch makes at most one provider call and always returns a valid insight
func (f *Fetcher) Fetch(ctx context.Context, items []model.ProofItem) (model.Insight, Outcome) {
	start := time.Now()
	result, outcome := f.fetch(ctx, items)
	f.metrics.observe(outcome, time.Since(start))
	return result, outcome
}

func (f *Fetcher) fetch(ctx context.Context, items []model.ProofItem) (model.Insight, Outcome) {
	if f.provider == nil {
		f.logger.Debug("No insight provider configured, using fallback")
		return OutcomeUnconfigured.Fallback(), OutcomeUnconfigured
	}

	req := llm.Request{
		Prompt:    llm.BuildPrompt(llm.BodiesOf(items)),
		MaxTokens: f.maxTokens,
	}

	var (
		resp *llm.Response
		err  error
		pc   panics.Catcher
	)
	pc.Try(func() {
		resp, err = f.provider.Generate(ctx, req)
	})
	if r := pc.Recovered(); r != nil {
		err = fmt.Errorf("provider panicked: %w", r.AsError())
	}

	if errors.Is(err, llm.ErrEmptyResponse) {
		f.logger.Warn("Insight provider returned an empty answer, using fallback",
			zap.String("provider", f.provider.Name()))
		return OutcomeMalformed.Fallback(), OutcomeMalformed
	}
	if err != nil {
		f.logger.Warn("Insight generation failed, using fallback",
			zap.String("provider", f.provider.Name()),
			zap.Error(err))
		return OutcomeServiceError.Fallback(), OutcomeServiceError
	}
	if resp == nil {
		f.logger.Warn("Insight provider returned no response, using fallback",
			zap.String("provider", f.provider.Name()))
		return OutcomeMalformed.Fallback(), OutcomeMalformed
	}

	insight, err := Parse(resp.Text)
	if err != nil {
		f.logger.Warn("Insight payload unusable, using fallback",
			zap.String("provider", f.provider.Name()),
			zap.String("model", resp.Model),
			zap.Error(err))
		return OutcomeMalformed.Fallback(), OutcomeMalformed
	}

	f.logger.Info("Insight generated",
		zap.String("provider", f.provider.Name()),
		zap.String("model", resp.Model),
		zap.Int("tokens", resp.TokensUsed))
	return insight, OutcomeLive
}
