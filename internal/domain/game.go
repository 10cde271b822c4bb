package domain

import "fmt"

type Game struct {
	Board         Board
	CurrentPlayer Mark
	Status        GameStatus
	Winner        Mark
	MoveCount     int
}

// NewGame starts an empty board with first to move.
func NewGame(first Mark) *Game {
	if first != Player2 {
		first = Player1
	}
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: first,
		Status:        StatusActive,
		Winner:        Empty,
		MoveCount:     0,
	}
}

func (g *Game) MakeMove(mark Mark, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameFinished
	}

	if mark != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	if !IsValidColumn(column) {
		return -1, fmt.Errorf("%w: %w %d", ErrInvalidMove, ErrInvalidColumn, column)
	}

	board, row, err := Drop(g.Board, column, mark)
	if err != nil {
		return -1, err
	}
	g.Board = board
	g.MoveCount++

	if CheckWin(g.Board, row, column, mark) {
		g.Status = StatusWon
		g.Winner = mark
		return row, nil
	}

	if IsBoardFull(g.Board) {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = mark.Opponent()

	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
