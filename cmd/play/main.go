package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/repository/memory"
	"github.com/iamasit07/connect4-engine/internal/repository/postgres"
	"github.com/iamasit07/connect4-engine/internal/repository/redis"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/cleanup"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, closeCache := openCache(ctx, cfg)
	defer closeCache()

	selector := bot.NewSelector(bot.Options{
		Depth:    cfg.SearchDepth,
		Rand:     rand.New(rand.NewSource(cfg.RandomSeed)),
		Cache:    cache,
		Parallel: cfg.EngineParallel,
		Verbose:  cfg.EngineVerbose,
	})
	service := game.NewService(selector)

	if err := play(ctx, service, cfg.HumanFirst, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("[GAME] %v", err)
	}
}

// openCache builds the configured score cache. A backend that cannot be
// reached degrades to no cache instead of stopping the game.
func openCache(ctx context.Context, cfg *config.Config) (bot.ScoreCache, func()) {
	noop := func() {}

	switch cfg.CacheBackend {
	case config.CacheMemory:
		cache, err := memory.NewScoreCache(cfg.CacheSize)
		if err != nil {
			log.Printf("[CACHE] %v, playing without cache", err)
			return nil, noop
		}
		return cache, noop

	case config.CacheRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Printf("[REDIS] Warning: %v. Playing without cache.", err)
			return nil, noop
		}
		cache := redis.NewScoreCache(client, cfg.CacheTTL)
		return cache, func() { cache.Close() }

	case config.CachePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			log.Printf("[POSTGRES] Warning: %v. Playing without cache.", err)
			return nil, noop
		}
		repo := postgres.NewScoreRepo(db)
		go cleanup.NewWorker(repo, cfg.CacheRetentionDays).Start(ctx)
		return repo, func() { db.Close() }
	}

	return nil, noop
}

func play(ctx context.Context, service *game.Service, humanFirst bool, in io.Reader, out io.Writer) error {
	session := service.NewSession(humanFirst)
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Game %s\nYou are %v, the computer is %v. Enter a column 1-%d, q to quit.\n",
		session.ID, session.Human, session.Computer, domain.Columns)

	if !humanFirst {
		res, err := session.ComputerOpen(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Computer plays %d\n", res.Computer.Column+1)
	}

	for {
		fmt.Fprint(out, session.Board().String())
		if session.Game.IsFinished() {
			announce(out, session)
			return nil
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "q" || line == "quit" {
			return nil
		}

		column, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(out, "%q is not a column\n", line)
			continue
		}

		res, err := session.HandleMove(ctx, column-1)
		switch {
		case errors.Is(err, domain.ErrInvalidMove):
			fmt.Fprintf(out, "Column %d cannot take a disk\n", column)
			continue
		case err != nil:
			return err
		}

		if res.Computer != nil {
			fmt.Fprintf(out, "Computer plays %d\n", res.Computer.Column+1)
		}
	}
}

func announce(out io.Writer, session *game.Session) {
	switch {
	case session.Game.Status == domain.StatusDraw:
		fmt.Fprintln(out, "Draw.")
	case session.Game.Winner == session.Human:
		fmt.Fprintln(out, "You win!")
	default:
		fmt.Fprintln(out, "The computer wins.")
	}
}
