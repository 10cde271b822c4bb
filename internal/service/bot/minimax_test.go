package bot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// fullWidth is plain minimax without pruning, used as the reference.
func fullWidth(board domain.Board, depth int, maximizing bool, mark domain.Mark, nodes *int) int {
	*nodes++
	if domain.HasLineOfFour(board, mark.Opponent()) {
		return LossScore
	}
	if domain.HasLineOfFour(board, mark) {
		return WinScore
	}
	valid := domain.GetValidMoves(board)
	if depth == 0 || len(valid) == 0 {
		return EvaluateBoard(board, mark)
	}

	mover := mark
	best := NegInf
	if !maximizing {
		mover = mark.Opponent()
		best = PosInf
	}
	for _, col := range valid {
		child, _, err := domain.Drop(board, col, mover)
		if err != nil {
			panic(err)
		}
		eval := fullWidth(child, depth-1, !maximizing, mark, nodes)
		if maximizing {
			best = max(best, eval)
		} else {
			best = min(best, eval)
		}
	}
	return best
}

func TestMinimaxTerminalSentinels(t *testing.T) {
	board := domain.MustParseBoard(
		".......",
		".......",
		".......",
		".......",
		"OOO....",
		"XXXX...",
	)
	for _, maximizing := range []bool{true, false} {
		assert.Equal(t, WinScore, Minimax(board, 3, maximizing, domain.Player1, NegInf, PosInf))
		assert.Equal(t, LossScore, Minimax(board, 3, maximizing, domain.Player2, NegInf, PosInf))
	}
	// terminal check happens before the depth cutoff
	assert.Equal(t, WinScore, Minimax(board, 0, true, domain.Player1, NegInf, PosInf))
}

func TestMinimaxCutoffEvaluates(t *testing.T) {
	board := domain.MustParseBoard(
		".......",
		".......",
		".......",
		".......",
		"...O...",
		"..XX...",
	)
	assert.Equal(t, EvaluateBoard(board, domain.Player1), Minimax(board, 0, true, domain.Player1, NegInf, PosInf))
	assert.Equal(t, EvaluateBoard(board, domain.Player2), Minimax(board, 0, false, domain.Player2, NegInf, PosInf))
}

func TestMinimaxFullBoardEvaluates(t *testing.T) {
	board := domain.MustParseBoard(
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
	)
	require.True(t, domain.IsBoardFull(board))
	require.Equal(t, domain.Empty, domain.Winner(board))
	assert.Equal(t, EvaluateBoard(board, domain.Player2), Minimax(board, 5, true, domain.Player2, NegInf, PosInf))
}

func TestMinimaxFindsWinOneMoveAhead(t *testing.T) {
	board := domain.MustParseBoard(
		".......",
		".......",
		".......",
		".......",
		"..OO...",
		".XXX...",
	)
	assert.Equal(t, WinScore, Minimax(board, 1, true, domain.Player1, NegInf, PosInf))
	// with O to move, X still wins on the other end whatever O blocks
	assert.Equal(t, WinScore, Minimax(board, 2, false, domain.Player1, NegInf, PosInf))
}

func TestAlphaBetaMatchesFullWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		board := randomBoard(rng, rng.Intn(16))
		for _, mark := range []domain.Mark{domain.Player1, domain.Player2} {
			for _, maximizing := range []bool{true, false} {
				var fullNodes int
				want := fullWidth(board, 4, maximizing, mark, &fullNodes)

				var stats SearchStats
				got := minimax(board, 4, maximizing, mark, NegInf, PosInf, &stats)

				require.Equal(t, want, got, "board:\n%s mark %v maximizing %v", board, mark, maximizing)
				assert.LessOrEqual(t, stats.Nodes, fullNodes)
			}
		}
	}
}

func TestMinimaxIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	board := randomBoard(rng, 10)
	first := Minimax(board, 5, true, domain.Player2, NegInf, PosInf)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Minimax(board, 5, true, domain.Player2, NegInf, PosInf))
	}
}
