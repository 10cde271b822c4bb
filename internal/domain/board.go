package domain

import (
	"fmt"
	"strings"
)

// Board is a value: row 0 is the top row, row Rows-1 the bottom one.
// Copying a Board copies every cell, so callers never share state.
type Board [Rows][Columns]Mark

func NewBoard() Board {
	return Board{}
}

func IsValidColumn(column int) bool {
	return column >= 0 && column < Columns
}

// IsColumnFull reports whether the top cell of the column is taken.
// Columns off the board count as full.
func IsColumnFull(board Board, column int) bool {
	return !IsValidColumn(column) || board[0][column] != Empty
}

func IsValidMove(board Board, column int) bool {
	return IsValidColumn(column) && !IsColumnFull(board, column)
}

// Drop returns a new board with mark placed in the lowest empty cell of
// column, together with the row it landed on. The input board is untouched.
func Drop(board Board, column int, mark Mark) (Board, int, error) {
	if mark != Player1 && mark != Player2 {
		return board, -1, fmt.Errorf("%w: no player for mark %d", ErrInvalidMove, int(mark))
	}
	if !IsValidColumn(column) {
		return board, -1, fmt.Errorf("%w: %w %d", ErrInvalidMove, ErrInvalidColumn, column)
	}

	// shifting the disk from top to bottom till it
	// reaches the end or another disk
	for row := Rows - 1; row >= 0; row-- {
		if board[row][column] == Empty {
			board[row][column] = mark
			return board, row, nil
		}
	}

	return board, -1, fmt.Errorf("%w: %w (column %d)", ErrInvalidMove, ErrColumnFull, column)
}

func IsBoardFull(board Board) bool {
	for c := 0; c < Columns; c++ {
		if board[0][c] == Empty {
			return false
		}
	}

	return true
}

// GetValidMoves lists the columns that still accept a disk, ascending.
func GetValidMoves(board Board) []int {
	validMoves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if !IsColumnFull(board, col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// WouldWin tells whether dropping mark into column completes a line of four.
// A full or out of range column never wins.
func WouldWin(board Board, column int, mark Mark) bool {
	next, _, err := Drop(board, column, mark)
	if err != nil {
		return false
	}
	return HasLineOfFour(next, mark)
}

func CountPieces(board Board, column int) int {
	if !IsValidColumn(column) {
		return 0
	}
	count := 0
	for row := 0; row < Rows; row++ {
		if board[row][column] != Empty {
			count++
		}
	}
	return count
}

// SwapMarks exchanges Player1 and Player2 everywhere on the board
func SwapMarks(board Board) Board {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			board[r][c] = board[r][c].Opponent()
		}
	}
	return board
}

// this counts the number of disks in a specific direction
func CountDiskInDirection(board Board, row, column int, deltaRow, deltaCol int, mark Mark) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for r >= 0 && r < Rows && c >= 0 && c < Columns && board[r][c] == mark {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

// Key is a compact fixed-length encoding of the cells, top row first.
func (b Board) Key() string {
	var sb strings.Builder
	sb.Grow(Rows * Columns)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			sb.WriteByte(byte('0' + b[r][c]))
		}
	}
	return sb.String()
}

func (b Board) String() string {
	var sb strings.Builder
	for c := 1; c <= Columns; c++ {
		fmt.Fprintf(&sb, "%d", c)
	}
	sb.WriteByte('\n')
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			sb.WriteString(b[r][c].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a board from Rows strings of Columns runes, top row
// first. '.' is empty, 'X' is Player1 and 'O' is Player2. Floating disks
// are rejected.
func ParseBoard(rows ...string) (Board, error) {
	var board Board
	if len(rows) != Rows {
		return board, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}

	for r, line := range rows {
		if len(line) != Columns {
			return board, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, r, len(line))
		}
		for c := 0; c < Columns; c++ {
			switch line[c] {
			case '.':
				board[r][c] = Empty
			case 'X', 'x':
				board[r][c] = Player1
			case 'O', 'o':
				board[r][c] = Player2
			default:
				return board, fmt.Errorf("%w: unexpected %q at row %d", ErrInvalidBoard, line[c], r)
			}
		}
	}

	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows-1; r++ {
			if board[r][c] != Empty && board[r+1][c] == Empty {
				return board, fmt.Errorf("%w: floating disk at row %d column %d", ErrInvalidBoard, r, c)
			}
		}
	}

	return board, nil
}

// MustParseBoard is ParseBoard for fixtures; it panics on malformed input.
func MustParseBoard(rows ...string) Board {
	board, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return board
}
