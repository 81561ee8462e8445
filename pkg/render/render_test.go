package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/systems"
)

var (
	_ Target = (*PNGCanvas)(nil)
	_ Target = (*CellCanvas)(nil)
	_ Target = (*EbitenCanvas)(nil)
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name                     string
		size, measured, maxWidth float64
		want                     float64
	}{
		{"fits", 80, 500, 720, 80},
		{"too wide", 80, 1440, 720, 40},
		{"nothing measured", 50, 0, 720, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitSize(tt.size, tt.measured, tt.maxWidth); got != tt.want {
				t.Errorf("fitSize = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPNGCanvas_Background(t *testing.T) {
	c, err := NewPNGCanvas(40, 30)
	if err != nil {
		t.Fatal(err)
	}

	r, g, b, _ := c.Image().At(5, 5).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("new canvas not white: %v %v %v", r>>8, g>>8, b>>8)
	}

	// celebrating frames darken gradually
	c.Background(true)
	r1, _, _, _ := c.Image().At(5, 5).RGBA()
	if r1>>8 >= 255 || r1>>8 < 200 {
		t.Errorf("one afterglow pass gave red=%d, want slightly darker than white", r1>>8)
	}
	for i := 0; i < 200; i++ {
		c.Background(true)
	}
	r2, _, _, _ := c.Image().At(5, 5).RGBA()
	if r2>>8 > 20 {
		t.Errorf("after many passes red=%d, want near black", r2>>8)
	}

	c.Background(false)
	r3, _, _, _ := c.Image().At(5, 5).RGBA()
	if r3>>8 != 255 {
		t.Errorf("clear gave red=%d, want white", r3>>8)
	}
}

func TestPNGCanvas_DrawDot(t *testing.T) {
	c, err := NewPNGCanvas(40, 40)
	if err != nil {
		t.Fatal(err)
	}
	c.DrawDot(20, 20, 5, color.NRGBA{R: 255, A: 255})

	r, g, b, _ := c.Image().At(20, 20).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("dot centre = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	r, g, _, _ = c.Image().At(2, 2).RGBA()
	if r>>8 != 255 || g>>8 != 255 {
		t.Error("pixel outside the dot changed")
	}
}

func TestPNGCanvas_RenderSystemFrames(t *testing.T) {
	const w, h = 320, 240
	c, err := NewPNGCanvas(w, h)
	if err != nil {
		t.Fatal(err)
	}
	opts := systems.DefaultOptions(entities.Bounds{Width: w, Height: h})
	opts.SpawnChance = 1
	sys := systems.NewFireworkSystem(opts, rand.New(rand.NewSource(1)))

	state := game.NewScoreState(10, 10)
	for i := 0; i < 30; i++ {
		c.Background(state.Celebrating)
		sys.Tick(state, c)
		c.DrawOverlay(game.LayoutOverlay(state, w, h))
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Errorf("frame size = %v", img.Bounds())
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}

func TestCellCanvas_DrawDot(t *testing.T) {
	c := NewCellCanvas(10, 5)
	if w, h := c.LogicalSize(); w != 80 || h != 80 {
		t.Fatalf("logical size = %vx%v", w, h)
	}

	c.DrawDot(20, 40, 2, particle.HueColor(0, 1))
	if g := c.Glyph(2, 2); g != '*' {
		t.Errorf("glyph = %q, want '*'", g)
	}

	// dimmer dot in the same cell does not replace the brighter one
	c.DrawDot(21, 41, 2, particle.HueColor(100, 0.3))
	if g := c.Glyph(2, 2); g != '*' {
		t.Errorf("glyph after dim dot = %q", g)
	}

	// out of range dots are dropped
	c.DrawDot(-1, 10, 2, color.White)
	c.DrawDot(800, 10, 2, color.White)
	c.DrawDot(10, 800, 2, color.White)

	lit := 0
	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			if c.Glyph(col, row) != ' ' {
				lit++
			}
		}
	}
	if lit != 1 {
		t.Errorf("lit cells = %d, want 1", lit)
	}
}

func TestCellCanvas_Background(t *testing.T) {
	c := NewCellCanvas(4, 2)
	c.DrawDot(1, 1, 1, particle.HueColor(50, 1))

	c.Background(true)
	if g := c.Glyph(0, 0); g != '*' {
		t.Errorf("after one fade glyph = %q, want still bright", g)
	}
	for i := 0; i < 100; i++ {
		c.Background(true)
	}
	if g := c.Glyph(0, 0); g != ' ' {
		t.Errorf("after long fade glyph = %q, want blank", g)
	}

	c.DrawDot(1, 1, 1, particle.HueColor(50, 1))
	c.Background(false)
	if g := c.Glyph(0, 0); g != ' ' {
		t.Errorf("clear left glyph %q", g)
	}
}

func TestCellCanvas_String(t *testing.T) {
	c := NewCellCanvas(3, 2)
	c.DrawDot(9, 17, 1, particle.HueColor(0, 0.6))

	out := c.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), out)
	}
	if !strings.Contains(lines[1], "+") {
		t.Errorf("second row %q missing the dot", lines[1])
	}
	if strings.TrimSpace(lines[0]) != "" {
		t.Errorf("first row %q should be blank", lines[0])
	}
}

func TestGlyphFor(t *testing.T) {
	tests := []struct {
		alpha float64
		want  rune
	}{
		{0, ' '},
		{0.1, '`'},
		{0.3, '.'},
		{0.6, '+'},
		{1, '*'},
	}
	for _, tt := range tests {
		if got := glyphFor(tt.alpha); got != tt.want {
			t.Errorf("glyphFor(%v) = %q, want %q", tt.alpha, got, tt.want)
		}
	}
}
