package field

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Host is the environment a field is mounted into. It provides the drawing
// context, the viewport size, event delivery and a frame-callback primitive.
type Host interface {
	// Context returns the 2D drawing surface, or false if none is available
	Context() (Surface, bool)

	// Size returns the current surface size in pixels
	Size() (w, h int)

	// OnPointerMove subscribes to pointer motion in surface coordinates
	OnPointerMove(fn func(x, y float64)) (remove func())

	// OnResize subscribes to surface size changes. The host resizes its
	// pixel buffer before calling fn.
	OnResize(fn func(w, h int)) (remove func())

	// RequestFrame schedules fn for the next display frame
	RequestFrame(fn func()) (cancel func())
}

// Options configures Attach
type Options struct {
	// Rand seeds particle spawning. A random source is used when nil.
	Rand *rand.Rand

	// Now is the clock for the glow transition. Defaults to time.Now.
	Now func() time.Time

	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// Mount is an attached particle field. It lives from Attach until Teardown.
type Mount struct {
	host    Host
	surface Surface
	field   *Field
	glow    *Glow
	now     func() time.Time
	logger  *zap.Logger

	mu            sync.Mutex
	cancelFrame   func()
	removePointer func()
	removeResize  func()
	torn          atomic.Bool
	frames        atomic.Uint64
}

// Attach mounts a new particle field onto h and starts its animation loop.
// When h has no drawing context the returned Mount is inert: nothing is
// subscribed and nothing is drawn.
func Attach(h Host, opts Options) *Mount {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	m := &Mount{
		host:   h,
		now:    opts.Now,
		logger: opts.Logger,
	}

	surface, ok := h.Context()
	if !ok || surface == nil {
		m.logger.Warn("no 2D drawing context; particle field disabled")
		m.torn.Store(true)
		return m
	}
	m.surface = surface

	w, hgt := h.Size()
	m.field = New(float64(w), float64(hgt), opts.Rand)
	m.glow = NewGlow(m.field.Bounds().Center(), GlowDuration)

	m.mu.Lock()
	m.removePointer = h.OnPointerMove(m.handlePointerMove)
	m.removeResize = h.OnResize(m.handleResize)
	m.cancelFrame = h.RequestFrame(m.frame)
	m.mu.Unlock()

	m.logger.Debug("particle field attached",
		zap.Int("width", w),
		zap.Int("height", hgt),
		zap.Int("particles", m.field.Len()))
	return m
}

// Field returns the simulation state, or nil for an inert mount
func (m *Mount) Field() *Field {
	return m.field
}

// Glow returns the pointer glow, or nil for an inert mount
func (m *Mount) Glow() *Glow {
	return m.glow
}

// Active reports whether the animation loop is still running
func (m *Mount) Active() bool {
	return !m.torn.Load()
}

// Frames returns the number of frames rendered so far
func (m *Mount) Frames() uint64 {
	return m.frames.Load()
}

// Teardown stops the animation loop and removes the event subscriptions.
// It is safe to call more than once.
func (m *Mount) Teardown() {
	if !m.torn.CompareAndSwap(false, true) {
		return
	}

	m.mu.Lock()
	cancel, removePointer, removeResize := m.cancelFrame, m.removePointer, m.removeResize
	m.cancelFrame, m.removePointer, m.removeResize = nil, nil, nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if removePointer != nil {
		removePointer()
	}
	if removeResize != nil {
		removeResize()
	}
	m.logger.Debug("particle field torn down", zap.Uint64("frames", m.frames.Load()))
}

func (m *Mount) frame() {
	if m.torn.Load() {
		return
	}

	m.field.Frame(m.surface)
	if gs, ok := m.surface.(GlowSurface); ok {
		pos := m.glow.Position(m.now())
		gs.DrawGlow(pos.X, pos.Y)
	}
	m.frames.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()
	// Teardown may have run while drawing
	if m.torn.Load() {
		return
	}
	m.cancelFrame = m.host.RequestFrame(m.frame)
}

func (m *Mount) handlePointerMove(x, y float64) {
	if m.torn.Load() {
		return
	}
	m.field.MovePointer(x, y)
	m.glow.Retarget(Vec2{X: x, Y: y}, m.now())
}

func (m *Mount) handleResize(w, h int) {
	if m.torn.Load() {
		return
	}
	m.field.Resize(float64(w), float64(h))
	m.logger.Debug("surface resized", zap.Int("width", w), zap.Int("height", h))
}
