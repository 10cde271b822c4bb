package domain

// Mark identifies the owner of a cell
type Mark int

const (
	Empty   Mark = 0
	Player1 Mark = 1
	Player2 Mark = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Opponent returns the other player's mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (m Mark) String() string {
	switch m {
	case Player1:
		return "X"
	case Player2:
		return "O"
	}
	return "."
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove   Error = "invalid move"
	ErrColumnFull    Error = "column is full"
	ErrInvalidColumn Error = "column out of range"
	ErrNoLegalMoves  Error = "no legal moves"
	ErrGameFinished  Error = "game already finished"
	ErrNotYourTurn   Error = "not your turn"
	ErrInvalidBoard  Error = "invalid board"
)
