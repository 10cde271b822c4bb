package cleanup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingPruner struct {
	mu    sync.Mutex
	calls int
	days  int
	err   error
}

func (p *countingPruner) CleanupOldScores(_ context.Context, daysToKeep int) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.days = daysToKeep
	return 3, p.err
}

func (p *countingPruner) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestWorkerRunsImmediatelyAndStops(t *testing.T) {
	pruner := &countingPruner{}
	w := NewWorker(pruner, 30)
	w.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return pruner.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
	assert.Equal(t, 30, pruner.days)
}

func TestWorkerSurvivesErrors(t *testing.T) {
	pruner := &countingPruner{err: errors.New("db down")}
	w := NewWorker(pruner, 7)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)
	assert.Equal(t, 1, pruner.count())
}
