package bot

import (
	"math"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

const (
	DefaultDepth = 6
	WinScore     = 1000000
	LossScore    = -WinScore

	// window bounds for a fresh search
	NegInf = math.MinInt
	PosInf = math.MaxInt
)

// SearchStats counts the nodes a search visited.
type SearchStats struct {
	Nodes int
}

// Minimax scores board for mark with alpha-beta pruning, searching depth
// more plies. maximizing tells whether mark is the side to move.
// The result is a pure function of its arguments.
func Minimax(board domain.Board, depth int, maximizing bool, mark domain.Mark, alpha, beta int) int {
	return minimax(board, depth, maximizing, mark, alpha, beta, nil)
}

func minimax(board domain.Board, depth int, maximizing bool, mark domain.Mark, alpha, beta int, stats *SearchStats) int {
	if stats != nil {
		stats.Nodes++
	}

	// Terminal conditions
	opponent := mark.Opponent()
	if domain.HasLineOfFour(board, opponent) {
		return LossScore
	}
	if domain.HasLineOfFour(board, mark) {
		return WinScore
	}

	validColumns := domain.GetValidMoves(board)
	if depth <= 0 || len(validColumns) == 0 {
		return EvaluateBoard(board, mark)
	}

	if maximizing {
		maxEval := NegInf
		for _, col := range validColumns {
			child, _, err := domain.Drop(board, col, mark)
			if err != nil {
				continue
			}

			eval := minimax(child, depth-1, false, mark, alpha, beta, stats)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)

			if beta <= alpha {
				break // Beta cutoff
			}
		}
		return maxEval
	}

	minEval := PosInf
	for _, col := range validColumns {
		child, _, err := domain.Drop(board, col, opponent)
		if err != nil {
			continue
		}

		eval := minimax(child, depth-1, true, mark, alpha, beta, stats)
		minEval = min(minEval, eval)
		beta = min(beta, eval)

		if beta <= alpha {
			break // Alpha cutoff
		}
	}
	return minEval
}
