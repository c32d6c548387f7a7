package raster

import (
	"fmt"
	"image/png"
	"io"

	"emberfield/field"
)

// Host is a headless field.Host. Frames only run when the caller advances
// them, so everything happens on the caller's goroutine.
type Host struct {
	canvas   *Canvas
	noCanvas bool

	pointerFns map[int]func(x, y float64)
	resizeFns  map[int]func(w, h int)
	nextID     int

	pending func()
	frameID int
}

// NewHost creates a headless host with a w x h canvas and no glow sprite
func NewHost(w, h int) *Host {
	return newHost(NewCanvas(w, h, nil))
}

// NewHostWithGlow creates a headless host whose canvas draws the pointer
// glow sprite.
func NewHostWithGlow(w, h int) (*Host, error) {
	sprite, err := GlowSprite(int(2 * field.GlowRadius))
	if err != nil {
		return nil, err
	}
	return newHost(NewCanvas(w, h, sprite)), nil
}

// NewDetachedHost creates a host that has no drawing context
func NewDetachedHost(w, h int) *Host {
	host := newHost(NewCanvas(w, h, nil))
	host.noCanvas = true
	return host
}

func newHost(c *Canvas) *Host {
	return &Host{
		canvas:     c,
		pointerFns: make(map[int]func(x, y float64)),
		resizeFns:  make(map[int]func(w, h int)),
	}
}

// Context implements field.Host
func (h *Host) Context() (field.Surface, bool) {
	if h.noCanvas {
		return nil, false
	}
	return h.canvas, true
}

// Size implements field.Host
func (h *Host) Size() (int, int) {
	b := h.canvas.Image().Bounds()
	return b.Dx(), b.Dy()
}

// OnPointerMove implements field.Host
func (h *Host) OnPointerMove(fn func(x, y float64)) func() {
	id := h.nextID
	h.nextID++
	h.pointerFns[id] = fn
	return func() { delete(h.pointerFns, id) }
}

// OnResize implements field.Host
func (h *Host) OnResize(fn func(w, h int)) func() {
	id := h.nextID
	h.nextID++
	h.resizeFns[id] = fn
	return func() { delete(h.resizeFns, id) }
}

// RequestFrame implements field.Host. Only the latest request is kept.
func (h *Host) RequestFrame(fn func()) func() {
	h.frameID++
	id := h.frameID
	h.pending = fn
	return func() {
		if h.frameID == id {
			h.pending = nil
		}
	}
}

// MovePointer delivers a pointer-move event to every subscriber
func (h *Host) MovePointer(x, y float64) {
	for _, fn := range h.pointerFns {
		fn(x, y)
	}
}

// Resize resizes the canvas, then notifies subscribers
func (h *Host) Resize(w, hgt int) {
	h.canvas.Resize(w, hgt)
	for _, fn := range h.resizeFns {
		fn(w, hgt)
	}
}

// subscribers returns the number of live event subscriptions
func (h *Host) subscribers() int {
	return len(h.pointerFns) + len(h.resizeFns)
}

// Advance runs up to n pending frames and returns how many ran. It stops
// early once nothing is scheduled.
func (h *Host) Advance(n int) int {
	ran := 0
	for ran < n && h.pending != nil {
		fn := h.pending
		h.pending = nil
		fn()
		ran++
	}
	return ran
}

// Canvas returns the drawing surface
func (h *Host) Canvas() *Canvas {
	return h.canvas
}

// WritePNG encodes the current canvas
func (h *Host) WritePNG(w io.Writer) error {
	if err := png.Encode(w, h.canvas.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
