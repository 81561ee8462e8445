package game

import (
	"strconv"
	"sync/atomic"
)

// ScoreEvent is one score update delivered by the score feed.
type ScoreEvent struct {
	Score    float64
	MaxScore float64
}

// ScoreState is the score snapshot the animation reads every frame.
// It is an immutable value: a new state replaces the old one as a whole.
type ScoreState struct {
	Score    float64
	MaxScore float64
	// Celebrating is true exactly when MaxScore > 0 and Score == MaxScore (满分).
	Celebrating bool
}

// NewScoreState derives the celebration flag from score and maxScore.
func NewScoreState(score, maxScore float64) ScoreState {
	return ScoreState{
		Score:       score,
		MaxScore:    maxScore,
		Celebrating: maxScore > 0 && score == maxScore,
	}
}

// Percentage returns score/maxScore*100, or 0 when maxScore <= 0.
func (s ScoreState) Percentage() float64 {
	if s.MaxScore <= 0 {
		return 0
	}
	return s.Score / s.MaxScore * 100
}

// String formats the state as "score/maxScore".
func (s ScoreState) String() string {
	return FormatNumber(s.Score) + "/" + FormatNumber(s.MaxScore)
}

// FormatNumber prints a score without a trailing ".0" for whole numbers.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ScoreBoard hands score states from the feed goroutine to the frame driver.
//
// There is one writer (Apply) and one reader (Snapshot); each update
// replaces the whole state with a single atomic pointer store, so a reader
// never sees a half-written state.
type ScoreBoard struct {
	state   atomic.Pointer[ScoreState]
	version atomic.Uint64
	wake    chan struct{}
}

// NewScoreBoard creates a board holding initial.
func NewScoreBoard(initial ScoreState) *ScoreBoard {
	b := &ScoreBoard{wake: make(chan struct{}, 1)}
	b.state.Store(&initial)
	return b
}

// Apply publishes the state derived from ev and signals Wake. It never blocks.
func (b *ScoreBoard) Apply(ev ScoreEvent) ScoreState {
	s := NewScoreState(ev.Score, ev.MaxScore)
	b.state.Store(&s)
	b.version.Add(1)

	select {
	case b.wake <- struct{}{}:
	default:
	}
	return s
}

// Snapshot returns the latest published state.
func (b *ScoreBoard) Snapshot() ScoreState {
	return *b.state.Load()
}

// Version counts the updates applied so far.
func (b *ScoreBoard) Version() uint64 {
	return b.version.Load()
}

// Wake receives a value after one or more updates since the last receive.
// Frame drivers use it to resume a paused loop.
func (b *ScoreBoard) Wake() <-chan struct{} {
	return b.wake
}
