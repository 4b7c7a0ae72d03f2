package pkg

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const gameIDLength = 8

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}

	return id.String(), nil
}

// GenerateGameID - generates a short code players can share to join a game.
func GenerateGameID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}

	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:gameIDLength]), nil
}
