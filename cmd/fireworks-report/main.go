// fireworks-report simulates every preset headlessly and prints a summary.
//
// Each preset celebrates a full score for --ticks ticks, then the score drops
// to half and the remaining fireworks are left to finish.
//
// Usage:
//
//	fireworks-report [--preset classic] [--ticks 600] [--copy]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/atotto/clipboard"

	"github.com/decker502/fireworks/pkg/config"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "Fireworks preset file (default: data/fireworks.yaml if present)")
	presetFlag  = flag.String("preset", "", "Only report this preset")
	ticksFlag   = flag.Int("ticks", 600, "Celebrating ticks per preset")
	seedFlag    = flag.Int64("seed", 1, "Random seed")
	widthFlag   = flag.Float64("width", 800, "Display width")
	heightFlag  = flag.Float64("height", 600, "Display height")
	copyFlag    = flag.Bool("copy", false, "Copy the plain-text report to the clipboard")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.ResolveFireworksConfig(*configFlag)
	if err != nil {
		fatal(err)
	}

	names := cfg.PresetNames()
	if *presetFlag != "" {
		if _, err := cfg.Preset(*presetFlag); err != nil {
			fatal(err)
		}
		names = []string{*presetFlag}
	}

	sc := scenario{
		celebrateTicks: *ticksFlag,
		seed:           *seedFlag,
		width:          *widthFlag,
		height:         *heightFlag,
	}
	var rows []reportRow
	for _, name := range names {
		p, _ := cfg.Preset(name)
		rows = append(rows, sc.run(name, p))
	}

	fmt.Println(renderTable(rows))

	if *copyFlag {
		if err := clipboard.WriteAll(plainTable(rows)); err != nil {
			fatal(fmt.Errorf("failed to copy report: %w", err))
		}
		fmt.Println("report copied to clipboard")
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
