// Package scorefeed decodes score messages and publishes them to a
// game.ScoreBoard.
//
// A message is one line holding a mapping such as
//
//	{"type": "H5P_SCORE_RESULT", "score": 10, "maxScore": 10}
//
// JSON is accepted because it is a subset of YAML; flow or block YAML
// mappings work too.
package scorefeed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/fireworks/pkg/game"
)

// MessageType is the only accepted value of the "type" field.
const MessageType = "H5P_SCORE_RESULT"

// ErrIgnored marks messages that are well formed but not score results.
var ErrIgnored = errors.New("not a score result message")

// message is the wire shape. Pointers distinguish missing fields from zero.
type message struct {
	Type     *string  `yaml:"type"`
	Score    *float64 `yaml:"score"`
	MaxScore *float64 `yaml:"maxScore"`
}

// Decode parses one score message.
//
// The "type" field may be omitted; when present it must equal MessageType,
// otherwise the returned error wraps ErrIgnored. Both score and maxScore are
// required.
func Decode(line []byte) (game.ScoreEvent, error) {
	var msg message
	if err := yaml.Unmarshal(line, &msg); err != nil {
		return game.ScoreEvent{}, fmt.Errorf("failed to parse score message: %w", err)
	}
	if msg.Type != nil && *msg.Type != MessageType {
		return game.ScoreEvent{}, fmt.Errorf("%w: type %q", ErrIgnored, *msg.Type)
	}
	if msg.Score == nil || msg.MaxScore == nil {
		return game.ScoreEvent{}, fmt.Errorf("score message requires score and maxScore")
	}
	return game.ScoreEvent{Score: *msg.Score, MaxScore: *msg.MaxScore}, nil
}

// Encode renders ev as a single-line JSON-compatible message.
func Encode(ev game.ScoreEvent) string {
	return fmt.Sprintf(`{"type": %q, "score": %s, "maxScore": %s}`,
		MessageType, game.FormatNumber(ev.Score), game.FormatNumber(ev.MaxScore))
}

// Feed reads newline-delimited score messages and applies them to Board.
// It is the single writer of the board.
type Feed struct {
	Board *game.ScoreBoard
	// OnState, if set, is called with every state applied to the board.
	OnState func(game.ScoreState)
}

// NewFeed creates a feed writing to board.
func NewFeed(board *game.ScoreBoard) *Feed {
	return &Feed{Board: board}
}

// Run consumes r until EOF or until ctx is cancelled. Blank lines and lines
// starting with '#' are skipped; malformed messages are logged and ignored,
// leaving the previous state on the board. It returns nil on EOF, the
// context error on cancellation, and the read error otherwise.
func (f *Feed) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	lineNo := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("failed to read score feed: %w", err)
				}
				return nil
			}
			lineNo++
			f.handle(lineNo, line)
		}
	}
}

func (f *Feed) handle(lineNo int, line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	ev, err := Decode([]byte(line))
	if err != nil {
		if errors.Is(err, ErrIgnored) {
			log.Printf("[ScoreFeed] line %d ignored: %v", lineNo, err)
		} else {
			log.Printf("[ScoreFeed] line %d malformed: %v", lineNo, err)
		}
		return
	}

	state := f.Board.Apply(ev)
	log.Printf("[ScoreFeed] 新的分数已接收: %s (celebrating=%v)", state, state.Celebrating)
	if f.OnState != nil {
		f.OnState(state)
	}
}
