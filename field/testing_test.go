package field

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

type circleCall struct {
	cx, cy, r float64
	clr       color.NRGBA
}

type lineCall struct {
	x0, y0, x1, y1 float64
	width          float64
	clr            color.NRGBA
}

// recorder is a Surface that keeps every draw call since the last Clear
type recorder struct {
	clears  int
	circles []circleCall
	lines   []lineCall
	glows   []Vec2
}

func (r *recorder) Clear() {
	r.clears++
	r.circles = r.circles[:0]
	r.lines = r.lines[:0]
	r.glows = r.glows[:0]
}

func (r *recorder) FillCircle(cx, cy, rad float64, clr color.NRGBA) {
	r.circles = append(r.circles, circleCall{cx, cy, rad, clr})
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	r.lines = append(r.lines, lineCall{x0, y0, x1, y1, width, clr})
}

func (r *recorder) DrawGlow(x, y float64) {
	r.glows = append(r.glows, Vec2{X: x, Y: y})
}

func (r *recorder) linesWithColor(clr color.NRGBA) []lineCall {
	var out []lineCall
	for _, l := range r.lines {
		if l.clr == clr {
			out = append(out, l)
		}
	}
	return out
}

// fakeHost is a manually stepped Host
type fakeHost struct {
	surface   Surface
	noContext bool
	w, h      int

	pointerFn func(x, y float64)
	resizeFn  func(w, h int)
	pending   func()
	frameID   int

	requests int
	cancels  int
	removes  int
}

func (h *fakeHost) Context() (Surface, bool) {
	if h.noContext {
		return nil, false
	}
	return h.surface, true
}

func (h *fakeHost) Size() (int, int) { return h.w, h.h }

func (h *fakeHost) OnPointerMove(fn func(x, y float64)) func() {
	h.pointerFn = fn
	return func() {
		h.removes++
		h.pointerFn = nil
	}
}

func (h *fakeHost) OnResize(fn func(w, h int)) func() {
	h.resizeFn = fn
	return func() {
		h.removes++
		h.resizeFn = nil
	}
}

func (h *fakeHost) RequestFrame(fn func()) func() {
	h.requests++
	h.frameID++
	id := h.frameID
	h.pending = fn
	return func() {
		h.cancels++
		if h.frameID == id {
			h.pending = nil
		}
	}
}

// advance runs the pending frame callback, reporting whether one existed
func (h *fakeHost) advance() bool {
	fn := h.pending
	h.pending = nil
	if fn == nil {
		return false
	}
	fn()
	return true
}

func (h *fakeHost) movePointer(x, y float64) {
	if h.pointerFn != nil {
		h.pointerFn(x, y)
	}
}

func (h *fakeHost) resize(w, hgt int) {
	h.w, h.h = w, hgt
	if h.resizeFn != nil {
		h.resizeFn(w, hgt)
	}
}
