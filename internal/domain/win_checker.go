package domain

// directions scanned for lines: horizontal, vertical, diagonal \ and diagonal /
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// HasLineOfFour scans every window of four cells in all four orientations.
func HasLineOfFour(board Board, mark Mark) bool {
	if mark == Empty {
		return false
	}

	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if board[row][col] != mark {
				continue
			}
			for _, dir := range directions {
				if windowOwnedBy(board, row, col, dir[0], dir[1], mark) {
					return true
				}
			}
		}
	}

	return false
}

// windowOwnedBy reports whether the ToWin cells starting at (row, col) all
// hold mark. Windows leaving the board never count.
func windowOwnedBy(board Board, row, col, deltaRow, deltaCol int, mark Mark) bool {
	for i := 0; i < ToWin; i++ {
		r, c := row+i*deltaRow, col+i*deltaCol
		if r < 0 || r >= Rows || c < 0 || c >= Columns || board[r][c] != mark {
			return false
		}
	}
	return true
}

// CheckWin only looks at lines passing through (row, column), which is all a
// single move can change.
func CheckWin(board Board, row, column int, mark Mark) bool {
	if row < 0 || row >= Rows || !IsValidColumn(column) || board[row][column] != mark {
		return false
	}

	for _, dir := range directions {
		count := 1 +
			CountDiskInDirection(board, row, column, dir[0], dir[1], mark) +
			CountDiskInDirection(board, row, column, -dir[0], -dir[1], mark)
		if count >= ToWin {
			return true
		}
	}

	return false
}

// Winner returns the mark owning a line of four, or Empty.
func Winner(board Board) Mark {
	if HasLineOfFour(board, Player1) {
		return Player1
	}
	if HasLineOfFour(board, Player2) {
		return Player2
	}
	return Empty
}
