package catalog

import (
	"context"
	"log"
	"time"
)

// Restocker periodically brings long-idle, sold-out products back to a fixed
// stock level. The scan is best-effort: a failure restocking one product is
// logged and the rest of the scan continues.
type Restocker struct {
	repo      Repository
	logger    *log.Logger
	interval  time.Duration
	idleAfter time.Duration
	level     int
}

func NewRestocker(repo Repository, logger *log.Logger, interval, idleAfter time.Duration, level int) *Restocker {
	return &Restocker{
		repo:      repo,
		logger:    logger,
		interval:  interval,
		idleAfter: idleAfter,
		level:     level,
	}
}

// Run blocks until ctx is cancelled, scanning once per interval.
func (r *Restocker) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.scan(ctx)
		}
	}
}

func (r *Restocker) scan(ctx context.Context) {
	cutoff := time.Now().Add(-r.idleAfter)
	candidates, err := r.repo.ListRestockCandidates(ctx, cutoff)
	if err != nil {
		r.logger.Printf("restock scan: %v", err)
		return
	}

	for _, p := range candidates {
		if err := r.repo.Restock(ctx, p.ID, r.level); err != nil {
			r.logger.Printf("restock %s (%s): %v", p.ID, p.Name, err)
			continue
		}
		r.logger.Printf("auto-restocked product %s (%s) to %d", p.ID, p.Name, r.level)
	}
}
