package game

import (
	"sync"
	"testing"
)

func TestNewScoreState_Celebrating(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		maxScore  float64
		want      bool
		wantPerct float64
	}{
		{"full score", 10, 10, true, 100},
		{"half score", 5, 10, false, 50},
		{"zero over zero", 0, 0, false, 0},
		{"negative max", -3, -3, false, 0},
		{"over max", 11, 10, false, 110},
		{"fractional full", 7.5, 7.5, true, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScoreState(tt.score, tt.maxScore)
			if s.Celebrating != tt.want {
				t.Errorf("Celebrating = %v, want %v", s.Celebrating, tt.want)
			}
			if s.Percentage() != tt.wantPerct {
				t.Errorf("Percentage = %v, want %v", s.Percentage(), tt.wantPerct)
			}
		})
	}
}

func TestScoreState_String(t *testing.T) {
	if got := NewScoreState(10, 10).String(); got != "10/10" {
		t.Errorf("String = %q, want 10/10", got)
	}
	if got := NewScoreState(7.5, 10).String(); got != "7.5/10" {
		t.Errorf("String = %q, want 7.5/10", got)
	}
}

func TestScoreBoard_ApplyAndSnapshot(t *testing.T) {
	b := NewScoreBoard(ScoreState{})
	if b.Snapshot().Celebrating || b.Version() != 0 {
		t.Fatalf("initial board = %+v v%d", b.Snapshot(), b.Version())
	}

	got := b.Apply(ScoreEvent{Score: 10, MaxScore: 10})
	if !got.Celebrating {
		t.Error("Apply(10/10) not celebrating")
	}
	if b.Snapshot() != got {
		t.Errorf("Snapshot = %+v, want %+v", b.Snapshot(), got)
	}

	b.Apply(ScoreEvent{Score: 5, MaxScore: 10})
	if b.Snapshot().Celebrating {
		t.Error("Apply(5/10) still celebrating")
	}
	if b.Version() != 2 {
		t.Errorf("Version = %d, want 2", b.Version())
	}
}

func TestScoreBoard_WakeCoalesces(t *testing.T) {
	b := NewScoreBoard(ScoreState{})

	select {
	case <-b.Wake():
		t.Fatal("wake signalled before any update")
	default:
	}

	// Several updates without a reader must not block and leave one signal.
	for i := 0; i < 5; i++ {
		b.Apply(ScoreEvent{Score: float64(i), MaxScore: 10})
	}
	select {
	case <-b.Wake():
	default:
		t.Fatal("no wake signal after updates")
	}
	select {
	case <-b.Wake():
		t.Fatal("wake signals were not coalesced")
	default:
	}
}

func TestScoreBoard_ConcurrentHandoff(t *testing.T) {
	b := NewScoreBoard(ScoreState{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			b.Apply(ScoreEvent{Score: float64(i), MaxScore: float64(i)})
		}
	}()

	// Every snapshot must be internally consistent (never torn).
	for i := 0; i < 1000; i++ {
		s := b.Snapshot()
		if s.Score != s.MaxScore {
			t.Fatalf("torn snapshot %+v", s)
		}
		if s.MaxScore > 0 && !s.Celebrating {
			t.Fatalf("inconsistent snapshot %+v", s)
		}
	}
	wg.Wait()
	if b.Snapshot().Score != 1000 {
		t.Errorf("final score = %v, want 1000", b.Snapshot().Score)
	}
}
