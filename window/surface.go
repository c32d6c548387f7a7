package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"emberfield/field"
)

// screenSurface draws onto the ebiten screen image of the current Draw call
type screenSurface struct {
	dst *ebiten.Image

	glowSrc *image.RGBA
	glow    *ebiten.Image
}

func newScreenSurface(glow *image.RGBA) *screenSurface {
	return &screenSurface{glowSrc: glow}
}

func (s *screenSurface) target(dst *ebiten.Image) {
	s.dst = dst
}

func (s *screenSurface) Clear() {
	if s.dst == nil {
		return
	}
	s.dst.Fill(field.Background)
}

func (s *screenSurface) FillCircle(cx, cy, r float64, clr color.NRGBA) {
	if s.dst == nil {
		return
	}
	vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(r), clr, true)
}

func (s *screenSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	if s.dst == nil {
		return
	}
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

// DrawGlow centers the glow sprite on (x, y). The sprite is uploaded to
// the GPU on first use.
func (s *screenSurface) DrawGlow(x, y float64) {
	if s.dst == nil || s.glowSrc == nil {
		return
	}
	if s.glow == nil {
		s.glow = ebiten.NewImageFromImage(s.glowSrc)
	}

	b := s.glow.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x-float64(b.Dx())/2, y-float64(b.Dy())/2)
	s.dst.DrawImage(s.glow, op)
}
