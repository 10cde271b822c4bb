package bot

import (
	"github.com/iamasit07/connect4-engine/internal/domain"
)

// lineDirections are the offsets walked from every occupied cell:
// horizontal, vertical, diagonal \ and diagonal /
var lineDirections = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// EvaluateBoard is the static score of a non-terminal board from mark's side.
// Own disks earn a centre bonus plus their line potential, opponent disks
// cost their line potential.
func EvaluateBoard(board domain.Board, mark domain.Mark) int {
	opponent := mark.Opponent()
	score := 0

	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			switch board[row][col] {
			case mark:
				score += positionScore(col)
				score += linePotential(board, row, col, mark)
			case opponent:
				score -= linePotential(board, row, col, opponent)
			}
		}
	}

	return score
}

// positionScore favours the centre column: 3 for the centre, then 2, 1 and 0
// moving outwards.
func positionScore(col int) int {
	dist := col - domain.Columns/2
	if dist < 0 {
		dist = -dist
	}
	if dist > 2 {
		return 0
	}
	return 3 - dist
}

// linePotential sums, over the four directions, the mark's disks inside the
// window of four cells starting at (row, col). A window holding an opposing
// disk is worth nothing, off-board cells are skipped.
func linePotential(board domain.Board, row, col int, mark domain.Mark) int {
	score := 0
	for _, dir := range lineDirections {
		score += windowCount(board, row, col, dir[0], dir[1], mark)
	}
	return score
}

func windowCount(board domain.Board, row, col, dRow, dCol int, mark domain.Mark) int {
	opponent := mark.Opponent()
	count := 0
	for i := 0; i < domain.ToWin; i++ {
		r, c := row+i*dRow, col+i*dCol
		if !isInBounds(r, c) {
			continue
		}
		switch board[r][c] {
		case mark:
			count++
		case opponent:
			return 0
		}
	}
	return count
}

// Helper: check if position is within board bounds
func isInBounds(row, col int) bool {
	return row >= 0 && row < domain.Rows && col >= 0 && col < domain.Columns
}
