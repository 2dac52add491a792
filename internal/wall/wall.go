// Package wall assembles the catalog, filter memo and insight slot behind
// one session object used by the CLI and the HTTP API.
package wall

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ppiankov/lovewall/internal/catalog"
	"github.com/ppiankov/lovewall/internal/insight"
	"github.com/ppiankov/lovewall/internal/llm"
	"github.com/ppiankov/lovewall/internal/model"
)

// EmptyMessage is shown in place of the grid when a filter matches nothing
const EmptyMessage = "No results found. Try a different search or category."

// Result is one filtered page of the wall
type Result struct {
	Items   []model.ProofItem `json:"items"`
	Count   int               `json:"count"`
	Empty   bool              `json:"empty"`
	Message string            `json:"message,omitempty"`
}

// CategoryInfo describes one filter tab
type CategoryInfo struct {
	Name  string        `json:"name"`
	Count int           `json:"count"`
	Badge catalog.Badge `json:"badge"`
}

// InsightStatus is a snapshot of the insight slot
type InsightStatus struct {
	State      string   `json:"state"`
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Outcome    string   `json:"-"`
}

// Wall is one session: an immutable catalog plus its single insight
type Wall struct {
	view    *catalog.View
	source  insight.Source
	slot    *insight.Slot
	logger  *zap.Logger
	timeout time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New loads the configured catalog and wires the insight provider.
// A missing credential is not an error; the wall then serves the static insight.
func New(ctx context.Context, cfg *model.Config, logger *zap.Logger, reg prometheus.Registerer) (*Wall, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("Catalog loaded",
		zap.Int("items", cat.Len()),
		zap.String("path", cfg.Catalog.Path))

	llmConfig := llm.ConfigFromModel(cfg.LLM)
	provider, err := llm.NewProvider(ctx, llmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create insight provider: %w", err)
	}

	fetcher := insight.NewFetcher(provider, logger, insight.NewMetrics(reg)).
		WithMaxTokens(llmConfig.MaxTokens)
	if name := fetcher.ProviderName(); name != "" {
		logger.Info("Insight provider ready",
			zap.String("provider", name),
			zap.String("model", cfg.LLM.Model))
	}

	w := NewWithSource(cat, fetcher, time.Duration(cfg.Search.MemoTTL)*time.Second, logger)
	if cfg.LLM.Timeout > 0 {
		// Leave headroom over the provider's own HTTP timeout
		w.timeout = time.Duration(cfg.LLM.Timeout)*time.Second + 5*time.Second
	}
	return w, nil
}

// NewWithSource builds a wall over an already loaded catalog
func NewWithSource(cat *catalog.Catalog, source insight.Source, memoTTL time.Duration, logger *zap.Logger) *Wall {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wall{
		view:    catalog.NewView(cat, memoTTL),
		source:  source,
		slot:    insight.NewSlot(),
		logger:  logger,
		timeout: time.Minute,
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

// Start triggers the one insight fetch of this session. Later calls are no-ops.
func (w *Wall) Start(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, w.timeout)
	if !w.slot.Start(fetchCtx, w.source, w.view.Catalog().Items()) {
		cancel()
		return
	}
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()
	w.logger.Debug("Insight fetch started")
}

// Filter returns the items matching a category filter and search query.
// An unknown category is reported as model.ErrUnknownCategory.
func (w *Wall) Filter(category, query string) (Result, error) {
	filter, err := model.ParseFilter(category)
	if err != nil {
		return Result{}, err
	}

	items := w.view.Filter(filter, query)
	result := Result{
		Items: items,
		Count: len(items),
		Empty: len(items) == 0,
	}
	if result.Empty {
		result.Message = EmptyMessage
	}
	return result, nil
}

// Categories lists the filter tabs, "all" first
func (w *Wall) Categories() []CategoryInfo {
	counts := w.view.Counts()

	infos := make([]CategoryInfo, 0, len(model.Categories())+1)
	infos = append(infos, CategoryInfo{
		Name:  model.FilterAll,
		Count: counts[model.FilterAll],
		Badge: catalog.Badge{Label: "All", Icon: "grid", Accent: "gray"},
	})
	for _, c := range model.Categories() {
		infos = append(infos, CategoryInfo{
			Name:  string(c),
			Count: counts[string(c)],
			Badge: catalog.BadgeFor(c),
		})
	}
	return infos
}

// Insight returns the current insight state without blocking
func (w *Wall) Insight() InsightStatus {
	value, ready := w.slot.Get()
	if !ready {
		state := w.slot.State()
		if state == insight.StateIdle {
			state = insight.StateLoading
		}
		return InsightStatus{State: state.String()}
	}
	return InsightStatus{
		State:      insight.StateReady.String(),
		Summary:    value.Summary,
		Highlights: value.Highlights,
		Outcome:    w.slot.Outcome().String(),
	}
}

// WaitInsight blocks until the insight is ready, starting the fetch if needed.
// If ctx ends first the fetch is cancelled and its fallback returned, so the
// result is always displayable.
func (w *Wall) WaitInsight(ctx context.Context) (model.Insight, insight.Outcome) {
	w.Start(ctx)
	if _, err := w.slot.Wait(ctx); err != nil {
		w.logger.Debug("Insight wait ended early, cancelling fetch", zap.Error(err))
		w.cancelFetch()
		<-w.slot.Done()
	}
	value, _ := w.slot.Get()
	return value, w.slot.Outcome()
}

// Item looks a single proof item up by id
func (w *Wall) Item(id string) (model.ProofItem, bool) {
	return w.view.Catalog().Get(id)
}

// Items returns the whole catalog in order
func (w *Wall) Items() []model.ProofItem {
	return w.view.Catalog().Items()
}

// Close abandons an in-flight fetch and waits for it to resolve
func (w *Wall) Close() {
	w.cancelFetch()
	w.slot.Close()
}

func (w *Wall) cancelFetch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
}
