package main

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Given: a fixed seed, one run with a fixed opening and one with random openings
	for _, opening := range []int{4, randomOpening} {
		// When: a few games are played
		err := run(context.Background(), logger, 3, 42, opening, false)

		// Then: every game completes
		require.NoError(t, err)
	}
}
