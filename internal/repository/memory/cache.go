package memory

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

// ScoreCache is a bounded in-process LRU of root scores.
type ScoreCache struct {
	entries *lru.Cache[string, []bot.ColumnScore]
}

func NewScoreCache(size int) (*ScoreCache, error) {
	entries, err := lru.New[string, []bot.ColumnScore](size)
	if err != nil {
		return nil, fmt.Errorf("memory cache: %w", err)
	}
	return &ScoreCache{entries: entries}, nil
}

func (c *ScoreCache) Get(_ context.Context, key string) ([]bot.ColumnScore, bool, error) {
	scores, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	// callers may keep the slice, hand out a copy
	return append([]bot.ColumnScore(nil), scores...), true, nil
}

func (c *ScoreCache) Set(_ context.Context, key string, scores []bot.ColumnScore) error {
	c.entries.Add(key, append([]bot.ColumnScore(nil), scores...))
	return nil
}

func (c *ScoreCache) Len() int {
	return c.entries.Len()
}
