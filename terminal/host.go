package terminal

import (
	"github.com/gdamore/tcell/v2"

	"emberfield/field"
)

// host adapts a tcell screen to field.Host. Frame scheduling goes through
// a field.Loop; every handler runs on the loop goroutine.
type host struct {
	screen  tcell.Screen
	surface *Surface
	loop    *field.Loop

	pointerFns map[int]func(x, y float64)
	resizeFns  map[int]func(w, h int)
	nextID     int
}

func newHost(screen tcell.Screen, surface *Surface, loop *field.Loop) *host {
	return &host{
		screen:     screen,
		surface:    surface,
		loop:       loop,
		pointerFns: make(map[int]func(x, y float64)),
		resizeFns:  make(map[int]func(w, h int)),
	}
}

func (h *host) Context() (field.Surface, bool) {
	return h.surface, true
}

func (h *host) Size() (int, int) {
	return h.surface.PixelSize()
}

func (h *host) OnPointerMove(fn func(x, y float64)) func() {
	id := h.nextID
	h.nextID++
	h.pointerFns[id] = fn
	return func() { delete(h.pointerFns, id) }
}

func (h *host) OnResize(fn func(w, h int)) func() {
	id := h.nextID
	h.nextID++
	h.resizeFns[id] = fn
	return func() { delete(h.resizeFns, id) }
}

func (h *host) RequestFrame(fn func()) func() {
	return h.loop.RequestFrame(fn)
}

// handleEvent dispatches one terminal event. It returns true when the
// user asked to quit.
func (h *host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return isQuitKey(ev)

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := h.surface.CellCenter(col, row)
		for _, fn := range h.pointerFns {
			fn(x, y)
		}

	case *tcell.EventResize:
		h.screen.Sync()
		w, hgt := h.surface.PixelSize()
		for _, fn := range h.resizeFns {
			fn(w, hgt)
		}
	}
	return false
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
