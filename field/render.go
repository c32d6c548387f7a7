package field

import (
	"image/color"
	"math"
)

// Surface is a 2D drawing context. Colors carry their opacity in A.
type Surface interface {
	// Clear wipes the whole surface
	Clear()
	// FillCircle draws a filled disc
	FillCircle(cx, cy, r float64, clr color.NRGBA)
	// StrokeLine draws a segment of the given width
	StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA)
}

// GlowSurface is implemented by surfaces that can draw the pointer glow
// overlay centered at (x, y).
type GlowSurface interface {
	Surface
	DrawGlow(x, y float64)
}

// drawGrid renders the fixed-spacing background grid
func (f *Field) drawGrid(s Surface) {
	w, h := f.bounds.W, f.bounds.H
	for x := 0.0; x <= w; x += gridSpacing {
		s.StrokeLine(x, 0, x, h, gridLineWidth, gridColor)
	}
	for y := 0.0; y <= h; y += gridSpacing {
		s.StrokeLine(0, y, w, y, gridLineWidth, gridColor)
	}
}

func drawParticle(s Surface, p *Particle) {
	s.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, withAlpha(p.Color.NRGBA(), p.Alpha()))
}

// drawLinks connects every pair of particles closer than linkDistance.
// Self-pairs are skipped since they would be zero-length segments.
func (f *Field) drawLinks(s Surface) {
	for i := 0; i < len(f.particles); i++ {
		a := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := &f.particles[j]
			dx := a.Pos.X - b.Pos.X
			dy := a.Pos.Y - b.Pos.Y
			if math.Sqrt(dx*dx+dy*dy) < linkDistance {
				s.StrokeLine(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y, linkLineWidth, linkColor)
			}
		}
	}
}
