package main

import (
	"strings"
	"testing"

	"github.com/decker502/fireworks/pkg/config"
)

func TestScenarioRun(t *testing.T) {
	cfg, err := config.LoadFireworksConfig("../../data/fireworks.yaml")
	if err != nil {
		t.Fatal(err)
	}
	sc := scenario{celebrateTicks: 300, seed: 1, width: 800, height: 600}

	for _, name := range cfg.PresetNames() {
		p, _ := cfg.Preset(name)
		row := sc.run(name, p)

		if row.Spawned == 0 {
			t.Errorf("%s: nothing spawned in 300 celebrating ticks", name)
		}
		if row.FinalActive != 0 {
			t.Errorf("%s: %d fireworks never finished", name, row.FinalActive)
		}
		if row.Completed != row.Spawned || row.Exploded != row.Spawned {
			t.Errorf("%s: spawned=%d exploded=%d completed=%d", name, row.Spawned, row.Exploded, row.Completed)
		}
		if row.PeakSparks < p.SparkCount {
			t.Errorf("%s: peak sparks %d below one burst (%d)", name, row.PeakSparks, p.SparkCount)
		}
	}
}

func TestTables(t *testing.T) {
	rows := []reportRow{{Preset: "classic", Style: "point", Spawned: 12, SparkTicks: 64}}

	plain := plainTable(rows)
	lines := strings.Split(plain, "\n")
	if len(lines) != 2 {
		t.Fatalf("plain table lines = %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "classic\tpoint\t12\t") {
		t.Errorf("row = %q", lines[1])
	}

	table := renderTable(rows)
	for _, want := range []string{"preset", "classic", "64"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
}
