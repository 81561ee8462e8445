package main

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/systems"
)

// drainLimit bounds the ticks spent waiting for fireworks to finish.
const drainLimit = 10000

type scenario struct {
	celebrateTicks int
	seed           int64
	width, height  float64
}

type reportRow struct {
	Preset      string
	Style       string
	Spawned     int
	Exploded    int
	Completed   int
	PeakSparks  int
	SparkTicks  int
	DrainTicks  int
	FinalActive int
}

// run celebrates for celebrateTicks, then lets the fireworks drain.
func (sc scenario) run(name string, p *config.Preset) reportRow {
	opts := p.SystemOptions(entities.Bounds{Width: sc.width, Height: sc.height})
	sys := systems.NewFireworkSystem(opts, rand.New(rand.NewSource(sc.seed)))

	peak := 0
	step := func(state game.ScoreState) {
		sys.Update(state)
		if s := sys.Stats().Sparks; s > peak {
			peak = s
		}
	}

	full := game.NewScoreState(1, 1)
	for i := 0; i < sc.celebrateTicks; i++ {
		step(full)
	}

	half := game.NewScoreState(1, 2)
	drain := 0
	for sys.Stats().Active > 0 && drain < drainLimit {
		step(half)
		drain++
	}

	st := sys.Stats()
	log.Printf("[Report] %s: %+v (drained in %d ticks)", name, st, drain)
	return reportRow{
		Preset:      name,
		Style:       opts.Style.String(),
		Spawned:     st.Spawned,
		Exploded:    st.Exploded,
		Completed:   st.Completed,
		PeakSparks:  peak,
		SparkTicks:  opts.Firework.Particle.SparkTicks(),
		DrainTicks:  drain,
		FinalActive: st.Active,
	}
}

var reportHeader = []string{"preset", "style", "spawned", "exploded", "completed", "peak sparks", "spark ticks", "drain ticks"}

func (r reportRow) cells() []string {
	return []string{
		r.Preset,
		r.Style,
		fmt.Sprint(r.Spawned),
		fmt.Sprint(r.Exploded),
		fmt.Sprint(r.Completed),
		fmt.Sprint(r.PeakSparks),
		fmt.Sprint(r.SparkTicks),
		fmt.Sprint(r.DrainTicks),
	}
}

func columnWidths(rows []reportRow) []int {
	widths := make([]int, len(reportHeader))
	for i, h := range reportHeader {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, c := range r.cells() {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}
	return widths
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	cellStyle   = lipgloss.NewStyle()
	tableStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// renderTable formats the rows as a bordered lipgloss table.
func renderTable(rows []reportRow) string {
	widths := columnWidths(rows)
	line := func(cells []string, st lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = st.Copy().Width(widths[i]).Render(c)
		}
		return strings.Join(parts, "  ")
	}

	lines := []string{line(reportHeader, headerStyle)}
	for _, r := range rows {
		lines = append(lines, line(r.cells(), cellStyle))
	}
	return tableStyle.Render(strings.Join(lines, "\n"))
}

// plainTable formats the rows as tab-separated text for the clipboard.
func plainTable(rows []reportRow) string {
	var b strings.Builder
	b.WriteString(strings.Join(reportHeader, "\t"))
	for _, r := range rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(r.cells(), "\t"))
	}
	return b.String()
}
