package dynamic

import (
	"context"
	"sync"
	"time"

	"github.com/culinamind/backend/internal/domain/knowledge"
	"github.com/culinamind/backend/internal/ports/outbound"
	"go.uber.org/zap"
)

// ItemSink receives refreshed items, typically the retrieval corpus.
type ItemSink interface {
	AddItems(ctx context.Context, items []knowledge.Item) int
}

// Refresher periodically pulls content from all sources, persists it,
// and feeds it into the sink.
type Refresher struct {
	sources  []outbound.KnowledgeSource
	labels   []string
	store    *Store
	sink     ItemSink
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher creates a refresher over the given sources. Labels name
// sources in storage and logs, index-aligned with sources.
func NewRefresher(sources []outbound.KnowledgeSource, labels []string, store *Store, sink ItemSink, interval time.Duration, logger *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &Refresher{
		sources:  sources,
		labels:   labels,
		store:    store,
		sink:     sink,
		interval: interval,
		logger:   logger,
	}
}

// Start runs an immediate refresh and then refreshes on the configured
// interval until Stop is called.
func (r *Refresher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)

		r.RefreshNow(ctx)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.RefreshNow(ctx)
			}
		}
	}()
	r.logger.Info("dynamic content refresher started",
		zap.Duration("interval", r.interval))
}

// Stop cancels the refresh loop and waits for it to exit.
func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.logger.Info("dynamic content refresher stopped")
}

// RefreshNow fetches from every source once. A failing source is logged
// and skipped; the rest still refresh.
func (r *Refresher) RefreshNow(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for i, source := range r.sources {
		label := "unknown"
		if i < len(r.labels) {
			label = r.labels[i]
		}

		items, err := source.Fetch(ctx)
		if err != nil {
			r.logger.Warn("knowledge source fetch failed",
				zap.String("source", label), zap.Error(err))
			continue
		}
		if len(items) == 0 {
			continue
		}

		if err := r.store.UpsertItems(ctx, label, items); err != nil {
			r.logger.Error("dynamic content persist failed",
				zap.String("source", label), zap.Error(err))
		}
		r.sink.AddItems(ctx, items)
		total += len(items)
	}

	r.logger.Info("knowledge refresh complete", zap.Int("items", total))
	return total
}
