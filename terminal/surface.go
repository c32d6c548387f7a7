package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"emberfield/field"
)

const (
	// particles at least this large draw as a full dot
	bigDotRadius = 2.5

	bigDot   = '●'
	smallDot = '•'
	linkDot  = '·'

	// link glyphs only ink part of a cell; their opacity is scaled up so
	// they stay visible against the background
	linkAlphaScale = 4

	// glowPeakAlpha is the glow opacity at its center
	glowPeakAlpha = 0.15
)

// Surface draws a field onto a tcell screen. Each cell stands for a
// CellWidth x CellHeight block of surface pixels.
type Surface struct {
	screen       tcell.Screen
	cellW, cellH float64
	base         tcell.Style
}

// NewSurface wraps screen. Cell dimensions must be positive.
func NewSurface(screen tcell.Screen, cellW, cellH float64) *Surface {
	bg := rgb(field.Background)
	return &Surface{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		base:   tcell.StyleDefault.Background(bg).Foreground(bg),
	}
}

// PixelSize returns the surface size covered by the screen
func (s *Surface) PixelSize() (int, int) {
	cols, rows := s.screen.Size()
	return int(float64(cols) * s.cellW), int(float64(rows) * s.cellH)
}

// CellCenter maps a cell to the surface pixel at its center
func (s *Surface) CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

// Clear implements field.Surface
func (s *Surface) Clear() {
	s.screen.Fill(' ', s.base)
}

// FillCircle implements field.Surface. Particles become a single dot glyph
// in the cell containing their center.
func (s *Surface) FillCircle(cx, cy, r float64, clr color.NRGBA) {
	col, row, ok := s.cellAt(cx, cy)
	if !ok || clr.A == 0 {
		return
	}
	_, _, style, _ := s.screen.GetContent(col, row)
	_, bg, _ := style.Decompose()

	glyph := smallDot
	if r >= bigDotRadius {
		glyph = bigDot
	}
	s.screen.SetContent(col, row, glyph, nil, style.Foreground(blend(bg, clr)))
}

// StrokeLine implements field.Surface. Lines at least a pixel wide tint
// the background of every cell they cross; thinner lines are drawn as
// dots in cells that hold no other glyph.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	if clr.A == 0 {
		return
	}
	s.walkLine(x0, y0, x1, y1, func(col, row int) {
		mainc, combc, style, _ := s.screen.GetContent(col, row)
		fg, bg, _ := style.Decompose()

		if width >= 1 {
			s.screen.SetContent(col, row, mainc, combc, style.Background(blend(bg, clr)))
			return
		}

		switch mainc {
		case ' ', 0:
			fg = bg
		case linkDot:
		default:
			return
		}
		ink := clr
		ink.A = uint8(math.Min(255, float64(clr.A)*linkAlphaScale))
		s.screen.SetContent(col, row, linkDot, nil, style.Foreground(blend(fg, ink)))
	})
}

// DrawGlow implements field.GlowSurface as a radial background tint
func (s *Surface) DrawGlow(x, y float64) {
	radius := field.GlowRadius
	minCol, minRow := s.cellIndex(x-radius, y-radius)
	maxCol, maxRow := s.cellIndex(x+radius, y+radius)
	cols, rows := s.screen.Size()
	minCol, minRow = max(minCol, 0), max(minRow, 0)
	maxCol, maxRow = min(maxCol, cols-1), min(maxRow, rows-1)

	glow := field.Orange2.NRGBA()
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			px, py := s.CellCenter(col, row)
			d := math.Hypot(px-x, py-y)
			if d >= radius {
				continue
			}
			glow.A = uint8(math.Round(glowPeakAlpha * (1 - d/radius) * 255))
			if glow.A == 0 {
				continue
			}
			mainc, combc, style, _ := s.screen.GetContent(col, row)
			_, bg, _ := style.Decompose()
			s.screen.SetContent(col, row, mainc, combc, style.Background(blend(bg, glow)))
		}
	}
}

// walkLine visits each cell the segment passes through once
func (s *Surface) walkLine(x0, y0, x1, y1 float64, visit func(col, row int)) {
	step := math.Min(s.cellW, s.cellH) / 2
	n := int(math.Ceil(math.Hypot(x1-x0, y1-y0)/step)) + 1

	lastCol, lastRow := math.MinInt, math.MinInt
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		col, row, ok := s.cellAt(x0+(x1-x0)*t, y0+(y1-y0)*t)
		if !ok || (col == lastCol && row == lastRow) {
			continue
		}
		lastCol, lastRow = col, row
		visit(col, row)
	}
}

// cellAt returns the on-screen cell containing surface point (x, y)
func (s *Surface) cellAt(x, y float64) (int, int, bool) {
	col, row := s.cellIndex(x, y)
	cols, rows := s.screen.Size()
	return col, row, col >= 0 && row >= 0 && col < cols && row < rows
}

func (s *Surface) cellIndex(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

// blend composites src over dst. Unset colors count as the field background.
func blend(dst tcell.Color, src color.NRGBA) tcell.Color {
	r, g, b := dst.RGB()
	if r < 0 {
		r, g, b = int32(field.Background.R), int32(field.Background.G), int32(field.Background.B)
	}
	a := float64(src.A) / 255
	mix := func(d int32, s uint8) int32 {
		return int32(math.Round(float64(d)*(1-a) + float64(s)*a))
	}
	return tcell.NewRGBColor(mix(r, src.R), mix(g, src.G), mix(b, src.B))
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
