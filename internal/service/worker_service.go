package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// AuditPruner deletes audit entries created before a cutoff.
type AuditPruner interface {
	PruneAuditLogs(ctx context.Context, before time.Time) (int64, error)
}

// RetentionWorker periodically drops audit entries older than the
// retention window.
type RetentionWorker struct {
	audit     AuditPruner
	retention time.Duration
	interval  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewRetentionWorker(audit AuditPruner, retention, interval time.Duration, logger zerolog.Logger) *RetentionWorker {
	return &RetentionWorker{
		audit:     audit,
		retention: retention,
		interval:  interval,
		logger:    logger.With().Str("worker", "audit_retention").Logger(),
		now:       time.Now,
	}
}

// Start prunes once, then on every tick until ctx is done. A zero
// retention or interval disables the worker.
func (w *RetentionWorker) Start(ctx context.Context) {
	if w.retention <= 0 || w.interval <= 0 {
		w.logger.Info().Msg("audit retention disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("retention", w.retention).Dur("interval", w.interval).Msg("background worker started")
	w.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("background worker stopped")
			return
		case <-ticker.C:
			w.prune(ctx)
		}
	}
}

func (w *RetentionWorker) prune(ctx context.Context) {
	cutoff := w.now().Add(-w.retention)
	n, err := w.audit.PruneAuditLogs(ctx, cutoff.UTC())
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to prune audit logs")
		return
	}
	if n > 0 {
		w.logger.Info().Int64("deleted", n).Time("before", cutoff).Msg("pruned audit logs")
	}
}
