package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ScoreRecord is the persisted score history.
type ScoreRecord struct {
	Score          float64   `yaml:"score"`          // last received score
	MaxScore       float64   `yaml:"maxScore"`       // last received maximum
	BestPercentage float64   `yaml:"bestPercentage"` // best percentage ever received
	Celebrations   int       `yaml:"celebrations"`   // number of full-score results received
	UpdatedAt      time.Time `yaml:"updatedAt"`
}

const (
	scoresObject   = "scores"
	scoresProperty = "last"
)

// ScoreArchive keeps the last score so a restarted display shows it again.
// It degrades to memory-only mode when the gdata manager is nil.
type ScoreArchive struct {
	gdataManager *gdata.Manager
	record       ScoreRecord
	now          func() time.Time
}

// NewScoreArchive creates an archive and loads the stored record.
// A corrupt record is logged and replaced by an empty one.
func NewScoreArchive(gdataManager *gdata.Manager) *ScoreArchive {
	a := &ScoreArchive{
		gdataManager: gdataManager,
		now:          time.Now,
	}
	if err := a.Load(); err != nil {
		log.Printf("[ScoreArchive] Warning: %v (starting empty)", err)
	}
	return a
}

// Load reads the stored record.
func (a *ScoreArchive) Load() error {
	a.record = ScoreRecord{}
	if a.gdataManager == nil || !a.gdataManager.ObjectPropExists(scoresObject, scoresProperty) {
		return nil
	}

	data, err := a.gdataManager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return fmt.Errorf("failed to load score record: %w", err)
	}

	var rec ScoreRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("failed to unmarshal score record: %w", err)
	}
	a.record = rec
	return nil
}

// Record folds s into the history: it becomes the last score, may raise the
// best percentage and counts a celebration when s is a full score.
func (a *ScoreArchive) Record(s ScoreState) {
	a.record.Score = s.Score
	a.record.MaxScore = s.MaxScore
	if p := s.Percentage(); p > a.record.BestPercentage {
		a.record.BestPercentage = p
	}
	if s.Celebrating {
		a.record.Celebrations++
	}
	a.record.UpdatedAt = a.now()
}

// Save writes the record to gdata. Memory-only mode returns nil.
func (a *ScoreArchive) Save() error {
	if a.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&a.record)
	if err != nil {
		return fmt.Errorf("failed to marshal score record: %w", err)
	}
	if err := a.gdataManager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("failed to save score record: %w", err)
	}
	return nil
}

// Last returns the last recorded score as a state.
func (a *ScoreArchive) Last() ScoreState {
	return NewScoreState(a.record.Score, a.record.MaxScore)
}

// Snapshot returns a copy of the record.
func (a *ScoreArchive) Snapshot() ScoreRecord {
	return a.record
}
