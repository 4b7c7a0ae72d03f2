// Command selfplay plays games between two random agents and reports the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/match"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

const randomOpening = -1

func main() {
	games := flag.Int("games", 1, "number of games to play")
	seed := flag.Int64("seed", 0, "random seed, 0 uses the clock")
	opening := flag.Int("opening", randomOpening, "opening board 0-8, -1 picks one per game")
	verbose := flag.Bool("verbose", false, "log every move and print every final board")
	flag.Parse()

	if *opening < randomOpening || *opening >= uttt.BoardSize {
		fmt.Fprintf(os.Stderr, "opening must be between %d and %d\n", randomOpening, uttt.BoardSize-1)
		os.Exit(2)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *games, *seed, *opening, *verbose); err != nil {
		logger.Error("self-play failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, games int, seed int64, opening int, verbose bool) error {
	rng := rand.New(rand.NewSource(seed)) //nolint: gosec // it's ok
	agents := [2]uttt.Agent{uttt.NewRandomAgent(rng.Int63()), uttt.NewRandomAgent(rng.Int63())}

	logger.Info("self-play started", "games", games, "seed", seed)

	var tally match.Tally

	for i := 1; i <= games; i++ {
		board := opening
		if board == randomOpening {
			board = rng.Intn(uttt.BoardSize)
		}

		state, err := uttt.NewState(board)
		if err != nil {
			return fmt.Errorf("failed to create game %d: %w", i, err)
		}

		result, err := match.Run(ctx, state, agents, logger.With("game", i))
		if err != nil {
			return fmt.Errorf("game %d: %w", i, err)
		}

		tally.Add(result.State.Status)

		fmt.Printf("game %d: opening=%d moves=%d result=%s\n", i, board, len(result.Moves), result.State.Status)
		if verbose || games == 1 {
			fmt.Println(result.State)
		}
	}

	fmt.Println(tally)

	return nil
}
