package bot

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

type Options struct {
	Depth    int
	Rand     *rand.Rand // tie-break source; seeded from the clock when nil
	Cache    ScoreCache // optional
	Parallel bool
	Verbose  bool
}

// Selector picks the computer's column: win now, else block, else the best
// searched column with ties broken at random.
type Selector struct {
	depth    int
	cache    ScoreCache
	parallel bool
	verbose  bool

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

func NewSelector(opts Options) *Selector {
	depth := opts.Depth
	if depth < 1 {
		depth = DefaultDepth
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{
		depth:    depth,
		cache:    opts.Cache,
		parallel: opts.Parallel,
		verbose:  opts.Verbose,
		rng:      rng,
	}
}

func (s *Selector) Depth() int {
	return s.depth
}

// ChooseMove returns the column the computer playing mark should drop into.
// ctx only bounds score cache I/O, the search itself always runs to the end.
func (s *Selector) ChooseMove(ctx context.Context, board domain.Board, mark domain.Mark) (int, error) {
	if mark != domain.Player1 && mark != domain.Player2 {
		return -1, fmt.Errorf("%w: no player for mark %d", domain.ErrInvalidMove, int(mark))
	}

	validColumns := domain.GetValidMoves(board)
	if len(validColumns) == 0 {
		return -1, domain.ErrNoLegalMoves
	}

	for _, col := range validColumns {
		if domain.WouldWin(board, col, mark) {
			s.logf("[BOT] %v wins in column %d", mark, col)
			return col, nil
		}
	}

	opponent := mark.Opponent()
	for _, col := range validColumns {
		if domain.WouldWin(board, col, opponent) {
			s.logf("[BOT] %v blocks column %d", mark, col)
			return col, nil
		}
	}

	scores, err := s.ScoreColumns(ctx, board, mark)
	if err != nil {
		return -1, err
	}

	best, bestScore := bestColumns(scores)
	s.mu.Lock()
	col := best[s.rng.Intn(len(best))]
	s.mu.Unlock()

	s.logf("[BOT] %v plays column %d (score %d, %d tied)", mark, col, bestScore, len(best))
	return col, nil
}

// ScoreColumns searches every legal root column for mark, ascending by
// column. Results are deterministic, which is what makes them cacheable.
func (s *Selector) ScoreColumns(ctx context.Context, board domain.Board, mark domain.Mark) ([]ColumnScore, error) {
	validColumns := domain.GetValidMoves(board)
	if len(validColumns) == 0 {
		return nil, domain.ErrNoLegalMoves
	}

	key := CacheKey(board, mark, s.depth)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Printf("[CACHE] lookup failed, searching instead: %v", err)
		case ok && matchesMoves(cached, validColumns):
			return cached, nil
		}
	}

	start := time.Now()
	var (
		scores []ColumnScore
		nodes  int
	)
	if s.parallel {
		scores, nodes = s.searchParallel(board, mark, validColumns)
	} else {
		scores, nodes = s.searchSequential(board, mark, validColumns)
	}
	s.logf("[BOT] searched %d nodes at depth %d in %v", nodes, s.depth, time.Since(start))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, scores); err != nil {
			log.Printf("[CACHE] store failed: %v", err)
		}
	}

	return scores, nil
}

func (s *Selector) searchSequential(board domain.Board, mark domain.Mark, columns []int) ([]ColumnScore, int) {
	var stats SearchStats
	scores := make([]ColumnScore, 0, len(columns))
	for _, col := range columns {
		scores = append(scores, ColumnScore{Column: col, Score: s.scoreRoot(board, col, mark, &stats)})
	}
	return scores, stats.Nodes
}

// searchParallel gives every root column its own goroutine, board copy and
// alpha-beta window, so results equal the sequential ones.
func (s *Selector) searchParallel(board domain.Board, mark domain.Mark, columns []int) ([]ColumnScore, int) {
	scores := make([]ColumnScore, len(columns))
	stats := make([]SearchStats, len(columns))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, col := range columns {
		g.Go(func() error {
			scores[i] = ColumnScore{Column: col, Score: s.scoreRoot(board, col, mark, &stats[i])}
			return nil
		})
	}
	_ = g.Wait()

	nodes := 0
	for _, st := range stats {
		nodes += st.Nodes
	}
	return scores, nodes
}

func (s *Selector) scoreRoot(board domain.Board, col int, mark domain.Mark, stats *SearchStats) int {
	child, _, err := domain.Drop(board, col, mark)
	if err != nil {
		// callers only pass legal columns
		return NegInf
	}
	return minimax(child, s.depth-1, false, mark, NegInf, PosInf, stats)
}

// bestColumns returns every column sharing the top score, ascending, and
// that score.
func bestColumns(scores []ColumnScore) ([]int, int) {
	bestScore := NegInf
	var best []int
	for _, cs := range scores {
		switch {
		case cs.Score > bestScore:
			bestScore = cs.Score
			best = append(best[:0], cs.Column)
		case cs.Score == bestScore:
			best = append(best, cs.Column)
		}
	}
	return best, bestScore
}

func (s *Selector) logf(format string, args ...any) {
	if s.verbose {
		log.Printf(format, args...)
	}
}
