package bot

import (
	"context"
	"fmt"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// ColumnScore is the searched value of playing Column at the root.
type ColumnScore struct {
	Column int `json:"column"`
	Score  int `json:"score"`
}

// ScoreCache stores root scores so a position searched once is not searched
// again. Implementations live under internal/repository.
type ScoreCache interface {
	Get(ctx context.Context, key string) ([]ColumnScore, bool, error)
	Set(ctx context.Context, key string, scores []ColumnScore) error
}

// CacheKey identifies a root search: the position, the side the scores are
// for and the depth they were searched at.
func CacheKey(board domain.Board, mark domain.Mark, depth int) string {
	return fmt.Sprintf("%s:%d:%d", board.Key(), int(mark), depth)
}

// matchesMoves reports whether cached scores cover exactly the legal columns.
func matchesMoves(scores []ColumnScore, moves []int) bool {
	if len(scores) != len(moves) {
		return false
	}
	for i, s := range scores {
		if s.Column != moves[i] {
			return false
		}
	}
	return true
}
