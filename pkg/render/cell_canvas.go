package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/decker502/fireworks/pkg/game"
)

// Logical pixel size of one terminal cell. Engine constants are in pixels,
// so a cols×rows terminal is simulated as a (cols*CellWidth)×(rows*CellHeight)
// display.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// minCellAlpha is the opacity below which a faded cell is blanked.
const minCellAlpha = 0.05

type cell struct {
	clr   color.NRGBA
	alpha float64
}

// CellCanvas rasterises dots onto a terminal character grid. Every cell
// keeps the most opaque dot drawn into it; the glyph is chosen from that
// opacity when rendering.
type CellCanvas struct {
	cols, rows int
	cells      []cell
}

// NewCellCanvas creates an empty cols×rows grid.
func NewCellCanvas(cols, rows int) *CellCanvas {
	c := &CellCanvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the grid, discarding its contents.
func (c *CellCanvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]cell, cols*rows)
}

// Size returns the grid dimensions.
func (c *CellCanvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// LogicalSize returns the pixel size the grid simulates.
func (c *CellCanvas) LogicalSize() (width, height float64) {
	return float64(c.cols) * CellWidth, float64(c.rows) * CellHeight
}

// DrawDot implements particle.Canvas.
func (c *CellCanvas) DrawDot(x, y, radius float64, clr color.Color) {
	if x < 0 || y < 0 {
		return
	}
	col, row := int(x/CellWidth), int(y/CellHeight)
	if col >= c.cols || row >= c.rows {
		return
	}

	n := toNRGBA(clr)
	alpha := float64(n.A) / 255
	cl := &c.cells[row*c.cols+col]
	if alpha >= cl.alpha {
		n.A = 255
		cl.clr = n
		cl.alpha = alpha
	}
}

// Background clears the grid, or fades every cell by the afterglow opacity
// while celebrating.
func (c *CellCanvas) Background(celebrating bool) {
	bg := game.Background(celebrating)
	if bg.A == 255 {
		for i := range c.cells {
			c.cells[i] = cell{}
		}
		return
	}
	keep := 1 - float64(bg.A)/255
	for i := range c.cells {
		cl := &c.cells[i]
		cl.alpha *= keep
		if cl.alpha < minCellAlpha {
			*cl = cell{}
		}
	}
}

// DrawOverlay is a no-op on the grid: the terminal front-end prints the
// overlay as styled text next to the grid.
func (c *CellCanvas) DrawOverlay(o game.Overlay) {}

// Glyph returns the character shown at (col, row), or ' ' when the cell is
// empty or out of range.
func (c *CellCanvas) Glyph(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return ' '
	}
	return glyphFor(c.cells[row*c.cols+col].alpha)
}

func glyphFor(alpha float64) rune {
	switch {
	case alpha <= 0:
		return ' '
	case alpha >= 0.75:
		return '*'
	case alpha >= 0.5:
		return '+'
	case alpha >= 0.25:
		return '.'
	default:
		return '`'
	}
}

// String renders the grid with one lipgloss foreground colour per lit cell.
func (c *CellCanvas) String() string {
	var b strings.Builder
	styles := make(map[color.NRGBA]lipgloss.Style)
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			g := glyphFor(cl.alpha)
			if g == ' ' {
				b.WriteByte(' ')
				continue
			}
			st, ok := styles[cl.clr]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(HexColor(cl.clr)))
				styles[cl.clr] = st
			}
			b.WriteString(st.Render(string(g)))
		}
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// HexColor formats c as "#rrggbb" for lipgloss.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
