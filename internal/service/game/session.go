package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// Session is one human versus computer game. The human always plays
// Player1 and the computer Player2; either may move first.
type Session struct {
	ID         string
	Game       *domain.Game
	Human      domain.Mark
	Computer   domain.Mark
	CreatedAt  time.Time
	FinishedAt time.Time

	mu      sync.Mutex
	chooser MoveChooser
}

type Move struct {
	Mark   domain.Mark
	Column int
	Row    int
}

// TurnResult describes what one call changed. Computer is nil when the
// computer did not move, for example after the human's winning move.
type TurnResult struct {
	SessionID string
	Human     *Move
	Computer  *Move
	Board     domain.Board
	Status    domain.GameStatus
	Winner    domain.Mark
}

func NewSession(chooser MoveChooser, humanFirst bool) *Session {
	first := domain.Player1
	if !humanFirst {
		first = domain.Player2
	}

	s := &Session{
		ID:        uuid.NewString(),
		Game:      domain.NewGame(first),
		Human:     domain.Player1,
		Computer:  domain.Player2,
		CreatedAt: time.Now(),
		chooser:   chooser,
	}
	log.Printf("[SESSION] Created session %s (human first: %t)", s.ID, humanFirst)
	return s
}

// HandleMove applies the human's column and, if the game goes on, answers
// with the computer's move. When the computer cannot answer, the human move
// is taken back so the same turn can be played again.
func (s *Session) HandleMove(ctx context.Context, column int) (TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := *s.Game
	row, err := s.Game.MakeMove(s.Human, column)
	if err != nil {
		return s.result(nil, nil), err
	}
	human := &Move{Mark: s.Human, Column: column, Row: row}

	if s.Game.IsFinished() {
		s.finish()
		return s.result(human, nil), nil
	}

	computer, err := s.playComputer(ctx)
	if err != nil {
		*s.Game = before
		return s.result(nil, nil), err
	}
	return s.result(human, computer), nil
}

// ComputerOpen plays the computer's move when it is the computer's turn,
// which only happens at the start of a game the human does not open.
func (s *Session) ComputerOpen(ctx context.Context) (TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Game.IsFinished() {
		return s.result(nil, nil), domain.ErrGameFinished
	}
	if s.Game.CurrentPlayer != s.Computer {
		return s.result(nil, nil), domain.ErrNotYourTurn
	}

	computer, err := s.playComputer(ctx)
	if err != nil {
		return s.result(nil, nil), err
	}
	return s.result(nil, computer), nil
}

func (s *Session) Board() domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Game.Board
}

func (s *Session) playComputer(ctx context.Context) (*Move, error) {
	column, err := s.chooser.ChooseMove(ctx, s.Game.Board, s.Computer)
	if err != nil {
		return nil, fmt.Errorf("computer move: %w", err)
	}

	row, err := s.Game.MakeMove(s.Computer, column)
	if err != nil {
		return nil, fmt.Errorf("computer move %d: %w", column, err)
	}

	if s.Game.IsFinished() {
		s.finish()
	}
	return &Move{Mark: s.Computer, Column: column, Row: row}, nil
}

func (s *Session) finish() {
	s.FinishedAt = time.Now()
	switch s.Game.Status {
	case domain.StatusWon:
		log.Printf("[GAME] Session %s won by %v after %d moves", s.ID, s.Game.Winner, s.Game.MoveCount)
	case domain.StatusDraw:
		log.Printf("[GAME] Session %s drawn after %d moves", s.ID, s.Game.MoveCount)
	}
}

func (s *Session) result(human, computer *Move) TurnResult {
	return TurnResult{
		SessionID: s.ID,
		Human:     human,
		Computer:  computer,
		Board:     s.Game.Board,
		Status:    s.Game.Status,
		Winner:    s.Game.Winner,
	}
}
