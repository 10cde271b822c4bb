package cleanup

import (
	"context"
	"log"
	"time"
)

// ScorePruner is implemented by caches that keep entries forever unless told
// otherwise, like postgres.ScoreRepo.
type ScorePruner interface {
	CleanupOldScores(ctx context.Context, daysToKeep int) (int64, error)
}

type Worker struct {
	Pruner     ScorePruner
	DaysToKeep int
	Interval   time.Duration
}

func NewWorker(pruner ScorePruner, daysToKeep int) *Worker {
	return &Worker{Pruner: pruner, DaysToKeep: daysToKeep, Interval: 1 * time.Hour}
}

// Start runs one cleanup right away, then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.runCleanup(ctx)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runCleanup(ctx)
		}
	}
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup(ctx context.Context) {
	deletedCount, err := w.Pruner.CleanupOldScores(ctx, w.DaysToKeep)
	if err != nil {
		log.Printf("[CLEANUP] Error cleaning up root scores: %v", err)
		return
	}
	if deletedCount > 0 {
		log.Printf("[CLEANUP] Removed %d expired root scores", deletedCount)
	}
}
