// Package parser loads game files into model.RawGame values. Two layouts are
// understood: the normalized game JSON and ESPN's game-summary JSON.
package parser

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// ErrEmptyGame is returned for a file with neither plays nor a box score.
var ErrEmptyGame = errors.New("game has no plays and no box score")

// Format selects the input layout.
type Format string

const (
	FormatNormalized Format = "normalized"
	FormatESPN       Format = "espn"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatNormalized, FormatESPN:
		return f, nil
	case "":
		return FormatNormalized, nil
	default:
		return "", fmt.Errorf("unknown format %q (want normalized or espn)", s)
	}
}

// LoadGame reads and parses the game file at path. gender may be empty to
// keep the file's own value (normalized) or default to men's (ESPN).
// The returned game's SourceHash is the file's sha256, and a missing game id
// falls back to the first 12 hex chars of it.
func LoadGame(path string, format Format, gender string) (*model.RawGame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game: %w", err)
	}

	var raw *model.RawGame
	switch format {
	case FormatESPN:
		raw, err = ParseESPN(data, gender)
	default:
		raw, err = ParseNormalized(data, gender)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Hash file for idempotency key.
	raw.SourceHash = fmt.Sprintf("%x", sha256.Sum256(data))
	if raw.Context.GameID == "" {
		raw.Context.GameID = raw.SourceHash[:12]
		slog.Debug("game has no id, using source hash", "file", path, "id", raw.Context.GameID)
	}
	if len(raw.Plays) == 0 {
		slog.Warn("no play-by-play, analysing box score only", "file", path)
	}
	if raw.LineScore == nil {
		slog.Debug("no period scoring, halftime comeback and overtime flags skipped", "file", path)
	}
	return raw, nil
}
