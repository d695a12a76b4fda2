package contextstore

import (
	stdctx "context"
	"time"

	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/ports/outbound"
	"go.uber.org/zap"
)

// Sweeper periodically removes stale session and conversation files.
type Sweeper struct {
	store    outbound.ContextStore
	interval time.Duration
	maxAge   time.Duration
	logger   *zap.Logger
	cancel   stdctx.CancelFunc
	done     chan struct{}
}

// NewSweeper builds a sweeper from the context storage config.
func NewSweeper(cfg config.ContextConfig, store outbound.ContextStore, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: cfg.SweepInterval,
		maxAge:   cfg.MaxAge,
		logger:   logger,
	}
}

// Start launches the background sweep loop. An immediate sweep runs on
// startup, then one per interval until Stop.
func (s *Sweeper) Start() {
	ctx, cancel := stdctx.WithCancel(stdctx.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.sweep(ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Sweeper) sweep(ctx stdctx.Context) {
	removed := s.store.Sweep(ctx, s.maxAge)
	if removed > 0 {
		s.logger.Info("context sweep completed", zap.Int("removed", removed))
	}
}
