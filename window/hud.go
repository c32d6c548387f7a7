package window

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"emberfield/field"
)

// hud is the debug overlay
type hud struct {
	visible bool
}

type hudStats struct {
	fps       float64
	tps       float64
	pointer   field.Vec2
	width     int
	height    int
	frames    uint64
	settled   bool
	profiling bool
}

func (h *hud) toggle() {
	h.visible = !h.visible
}

func (s hudStats) String() string {
	glow := "moving"
	if s.settled {
		glow = "settled"
	}
	line := fmt.Sprintf("FPS: %0.1f | TPS: %0.1f | Pointer: %0.0f,%0.0f | Glow: %s | Surface: %dx%d | Frames: %d",
		s.fps, s.tps, s.pointer.X, s.pointer.Y, glow, s.width, s.height, s.frames)
	if s.profiling {
		line += "\nPROFILING"
	}
	return line
}

func (h *hud) draw(screen *ebiten.Image, stats hudStats) {
	ebitenutil.DebugPrint(screen, stats.String())
}
