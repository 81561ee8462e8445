package main

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/systems"
)

func newTestModel(score, maxScore float64) *model {
	opts := systems.DefaultOptions(entities.Bounds{})
	opts.SpawnChance = 1
	board := game.NewScoreBoard(game.NewScoreState(score, maxScore))
	m := newModel(board, opts, rand.New(rand.NewSource(1)))
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ResizeSetsSpawnArea(t *testing.T) {
	m := newTestModel(0, 0)
	cols, rows := m.canvas.Size()
	if cols != 40 || rows != 20-overlayRows {
		t.Fatalf("canvas = %dx%d", cols, rows)
	}
	want := entities.Bounds{Width: 40 * 8, Height: float64(rows) * 16}
	if b := m.system.Bounds(); b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func TestModel_FramesSpawnOnlyWhenCelebrating(t *testing.T) {
	m := newTestModel(5, 10)
	for i := 0; i < 50; i++ {
		m.Update(frameMsg{id: m.frameID})
	}
	if s := m.system.Stats(); s.Spawned != 0 {
		t.Fatalf("half score spawned %d", s.Spawned)
	}

	m.Update(key("f"))
	if !m.board.Snapshot().Celebrating {
		t.Fatal("f did not apply a full score")
	}
	_, cmd := m.Update(frameMsg{id: m.frameID})
	if cmd == nil {
		t.Error("frame did not schedule the next tick")
	}
	if s := m.system.Stats(); s.Spawned != 1 {
		t.Errorf("spawned = %d, want 1", s.Spawned)
	}

	m.Update(key("h"))
	if s := m.board.Snapshot(); s.Score != 5 || s.Celebrating {
		t.Errorf("h applied %+v", s)
	}
	m.Update(key("0"))
	if s := m.board.Snapshot(); s.MaxScore != 0 || s.Celebrating {
		t.Errorf("0 applied %+v", s)
	}
}

func TestModel_PauseAndWake(t *testing.T) {
	m := newTestModel(10, 10)

	m.Update(key("p"))
	if !m.paused {
		t.Fatal("p did not pause")
	}
	before := m.system.Stats()
	if _, cmd := m.Update(frameMsg{id: m.frameID}); cmd != nil {
		t.Error("paused frame scheduled another tick")
	}
	if m.system.Stats() != before {
		t.Error("paused frame advanced the animation")
	}

	oldID := m.frameID
	_, cmd := m.Update(scoreMsg{})
	if m.paused {
		t.Error("score message did not resume")
	}
	if cmd == nil {
		t.Error("resume did not schedule ticks")
	}

	// a frame from the chain before the pause is dropped
	if _, cmd := m.Update(frameMsg{id: oldID}); cmd != nil {
		t.Error("stale frame scheduled a tick")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(10, 10)
	for i := 0; i < 20; i++ {
		m.Update(frameMsg{id: m.frameID})
	}
	view := m.View()
	if !strings.Contains(view, "Congratulations! Excellent result!") {
		t.Error("view missing headline")
	}
	if !strings.Contains(view, "Score: 10/10") {
		t.Error("view missing score line")
	}
	if lines := strings.Count(view, "\n") + 1; lines != 20 {
		t.Errorf("view has %d lines, want 20", lines)
	}

	m.Update(key("m"))
	if !strings.Contains(m.View(), "muted") {
		t.Error("view does not show mute state")
	}
}
