package bot

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

type fakeCache struct {
	mu     sync.Mutex
	data   map[string][]ColumnScore
	gets   int
	sets   int
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]ColumnScore)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]ColumnScore, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	scores, ok := f.data[key]
	return scores, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, scores []ColumnScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.data[key] = scores
	return nil
}

func newTestSelector(depth int, seed int64) *Selector {
	return NewSelector(Options{Depth: depth, Rand: rand.New(rand.NewSource(seed))})
}

func TestChooseMoveTakesImmediateWin(t *testing.T) {
	// O can win in column 0, X threatens column 4: winning beats blocking
	board := domain.MustParseBoard(
		".......",
		".......",
		".......",
		"O......",
		"O......",
		"OXXX...",
	)
	for _, depth := range []int{1, 2, DefaultDepth} {
		col, err := newTestSelector(depth, 1).ChooseMove(context.Background(), board, domain.Player2)
		require.NoError(t, err)
		assert.Equal(t, 0, col, "depth %d", depth)
	}
}

func TestChooseMoveBlocksImmediateLoss(t *testing.T) {
	board := domain.MustParseBoard(
		".......",
		".......",
		".......",
		".......",
		"O......",
		"OXXX...",
	)
	for _, depth := range []int{1, 3} {
		col, err := newTestSelector(depth, 1).ChooseMove(context.Background(), board, domain.Player2)
		require.NoError(t, err)
		assert.Equal(t, 4, col, "depth %d", depth)
	}
}

func TestChooseMoveFullBoard(t *testing.T) {
	board := domain.MustParseBoard(
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
	)
	require.True(t, domain.IsBoardFull(board))

	col, err := newTestSelector(3, 1).ChooseMove(context.Background(), board, domain.Player2)
	assert.True(t, errors.Is(err, domain.ErrNoLegalMoves))
	assert.Equal(t, -1, col)
}

func TestChooseMoveRejectsEmptyMark(t *testing.T) {
	_, err := newTestSelector(2, 1).ChooseMove(context.Background(), domain.NewBoard(), domain.Empty)
	assert.ErrorIs(t, err, domain.ErrInvalidMove)
}

func TestChooseMovePrefersCentreOnEmptyBoard(t *testing.T) {
	col, err := newTestSelector(1, 1).ChooseMove(context.Background(), domain.NewBoard(), domain.Player1)
	require.NoError(t, err)
	assert.Equal(t, 3, col)
}

func TestChooseMoveIsBestUnderFullWidthSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		board := randomBoard(rng, rng.Intn(12))
		sel := newTestSelector(4, int64(i))

		scores, err := sel.ScoreColumns(ctx, board, domain.Player2)
		require.NoError(t, err)

		bestScore := NegInf
		for j, col := range domain.GetValidMoves(board) {
			child, _, err := domain.Drop(board, col, domain.Player2)
			require.NoError(t, err)
			var nodes int
			want := fullWidth(child, 3, false, domain.Player2, &nodes)
			assert.Equal(t, ColumnScore{Column: col, Score: want}, scores[j])
			bestScore = max(bestScore, want)
		}

		hasShortcut := false
		for _, col := range domain.GetValidMoves(board) {
			if domain.WouldWin(board, col, domain.Player2) || domain.WouldWin(board, col, domain.Player1) {
				hasShortcut = true
			}
		}
		if hasShortcut {
			continue
		}

		col, err := sel.ChooseMove(ctx, board, domain.Player2)
		require.NoError(t, err)
		assert.Equal(t, bestScore, scores[indexOfColumn(scores, col)].Score)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		board := randomBoard(rng, rng.Intn(10))
		seq := NewSelector(Options{Depth: 4, Rand: rand.New(rand.NewSource(1))})
		par := NewSelector(Options{Depth: 4, Rand: rand.New(rand.NewSource(1)), Parallel: true})

		want, err := seq.ScoreColumns(ctx, board, domain.Player1)
		require.NoError(t, err)
		got, err := par.ScoreColumns(ctx, board, domain.Player1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestTieBreakDrawsAmongBestColumns(t *testing.T) {
	board := domain.NewBoard()
	cache := newFakeCache()
	tied := []ColumnScore{
		{Column: 0, Score: 1}, {Column: 1, Score: 9}, {Column: 2, Score: 4},
		{Column: 3, Score: 2}, {Column: 4, Score: 3}, {Column: 5, Score: 9}, {Column: 6, Score: -5},
	}
	cache.data[CacheKey(board, domain.Player1, 3)] = tied

	sel := NewSelector(Options{Depth: 3, Rand: rand.New(rand.NewSource(8)), Cache: cache})
	seen := map[int]int{}
	for i := 0; i < 200; i++ {
		col, err := sel.ChooseMove(context.Background(), board, domain.Player1)
		require.NoError(t, err)
		seen[col]++
	}
	assert.Len(t, seen, 2)
	assert.Positive(t, seen[1])
	assert.Positive(t, seen[5])
	assert.Zero(t, cache.sets)
}

func TestTieBreakIsReproducibleWithSeed(t *testing.T) {
	board := domain.NewBoard()
	run := func() []int {
		cache := newFakeCache()
		cache.data[CacheKey(board, domain.Player2, 2)] = []ColumnScore{
			{Column: 0, Score: 0}, {Column: 1, Score: 0}, {Column: 2, Score: 0},
			{Column: 3, Score: 0}, {Column: 4, Score: 0}, {Column: 5, Score: 0}, {Column: 6, Score: 0},
		}
		sel := NewSelector(Options{Depth: 2, Rand: rand.New(rand.NewSource(1234)), Cache: cache})
		var cols []int
		for i := 0; i < 20; i++ {
			col, err := sel.ChooseMove(context.Background(), board, domain.Player2)
			require.NoError(t, err)
			cols = append(cols, col)
		}
		return cols
	}
	assert.Equal(t, run(), run())
}

func TestScoreColumnsUsesCache(t *testing.T) {
	cache := newFakeCache()
	sel := NewSelector(Options{Depth: 3, Rand: rand.New(rand.NewSource(1)), Cache: cache})
	board, _, err := domain.Drop(domain.NewBoard(), 3, domain.Player1)
	require.NoError(t, err)

	first, err := sel.ScoreColumns(context.Background(), board, domain.Player2)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := sel.ScoreColumns(context.Background(), board, domain.Player2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, cache.gets)
}

func TestScoreColumnsIgnoresStaleCacheEntry(t *testing.T) {
	cache := newFakeCache()
	board := domain.NewBoard()
	cache.data[CacheKey(board, domain.Player1, 2)] = []ColumnScore{{Column: 0, Score: 100}}

	sel := NewSelector(Options{Depth: 2, Rand: rand.New(rand.NewSource(1)), Cache: cache})
	scores, err := sel.ScoreColumns(context.Background(), board, domain.Player1)
	require.NoError(t, err)
	assert.Len(t, scores, domain.Columns)
	assert.Equal(t, 1, cache.sets)
}

func TestScoreColumnsSurvivesCacheErrors(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	sel := NewSelector(Options{Depth: 2, Rand: rand.New(rand.NewSource(1)), Cache: cache})

	col, err := sel.ChooseMove(context.Background(), domain.NewBoard(), domain.Player1)
	require.NoError(t, err)
	assert.True(t, domain.IsValidColumn(col))
}

func TestBestColumns(t *testing.T) {
	cols, score := bestColumns([]ColumnScore{{0, 5}, {1, 7}, {2, 7}, {4, 1}})
	assert.Equal(t, []int{1, 2}, cols)
	assert.Equal(t, 7, score)
}

func TestNewSelectorDefaults(t *testing.T) {
	sel := NewSelector(Options{})
	assert.Equal(t, DefaultDepth, sel.Depth())
}

func indexOfColumn(scores []ColumnScore, col int) int {
	for i, cs := range scores {
		if cs.Column == col {
			return i
		}
	}
	return -1
}
