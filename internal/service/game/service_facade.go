package game

import (
	"context"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// MoveChooser picks the computer's column; *bot.Selector implements it.
type MoveChooser interface {
	ChooseMove(ctx context.Context, board domain.Board, mark domain.Mark) (int, error)
}

// Service is the entry point for game logic (facade)
type Service struct {
	Chooser MoveChooser
}

func NewService(chooser MoveChooser) *Service {
	return &Service{
		Chooser: chooser,
	}
}

// NewSession starts a human (Player1) versus computer (Player2) game.
func (s *Service) NewSession(humanFirst bool) *Session {
	return NewSession(s.Chooser, humanFirst)
}
