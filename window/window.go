package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"emberfield/config"
	"emberfield/field"
	"emberfield/perf"
	"emberfield/raster"
)

// Window runs a particle field in a desktop window. It implements both
// ebiten.Game and field.Host: the pending frame callback runs inside Draw,
// once per display frame.
type Window struct {
	cfg    config.Config
	logger *zap.Logger
	now    func() time.Time

	surface *screenSurface
	mount   *field.Mount
	cursor  field.PointerTracker
	hud     hud

	width, height int

	pointerFns map[int]func(x, y float64)
	resizeFns  map[int]func(w, h int)
	nextID     int

	pending func()
	frameID uint64

	meter    *perf.Meter
	profiler *perf.Profiler
}

// New creates a window host and mounts a field onto it
func New(cfg config.Config, opts field.Options) (*Window, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sprite, err := raster.GlowSprite(int(2 * field.GlowRadius))
	if err != nil {
		return nil, fmt.Errorf("render glow sprite: %w", err)
	}

	w := &Window{
		cfg:        cfg,
		logger:     opts.Logger,
		now:        opts.Now,
		surface:    newScreenSurface(sprite),
		width:      cfg.Window.Width,
		height:     cfg.Window.Height,
		pointerFns: make(map[int]func(x, y float64)),
		resizeFns:  make(map[int]func(w, h int)),
		hud:        hud{visible: cfg.Window.Debug},
	}

	if cfg.Profile.Enabled {
		w.meter = perf.NewMeter(cfg.Profile.Threshold, opts.Now())
		w.profiler, err = perf.NewProfiler(cfg.Profile.Dir, cfg.Profile.Duration, cfg.Profile.Cooldown, opts.Logger)
		if err != nil {
			return nil, err
		}
	} else {
		w.meter = perf.NewMeter(0, opts.Now())
	}

	w.mount = field.Attach(w, opts)
	return w, nil
}

// Run opens the window and blocks until it is closed or Esc is pressed
func Run(cfg config.Config, opts field.Options) error {
	w, err := New(cfg, opts)
	if err != nil {
		return err
	}
	defer w.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Close tears the field down and waits for any profile capture to finish
func (w *Window) Close() {
	w.mount.Teardown()
	if w.profiler != nil {
		w.profiler.Wait()
	}
}

// Update implements ebiten.Game
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.logger.Debug("escape pressed; closing window")
		w.mount.Teardown()
		return ebiten.Termination
	}

	// F1 toggles the debug HUD
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.hud.toggle()
	}

	if x, y, moved := w.cursor.Poll(ebiten.CursorPosition()); moved {
		for _, fn := range w.pointerFns {
			fn(x, y)
		}
	}
	return nil
}

// Draw implements ebiten.Game
func (w *Window) Draw(screen *ebiten.Image) {
	w.surface.target(screen)

	if fn := w.pending; fn != nil {
		w.pending = nil
		fn()
	}

	now := w.now()
	if w.meter.Frame(now) {
		w.onFrameDrop()
	}

	if w.hud.visible {
		w.hud.draw(screen, hudStats{
			fps:       w.meter.FPS(),
			tps:       ebiten.ActualTPS(),
			pointer:   w.pointer(),
			width:     w.width,
			height:    w.height,
			frames:    w.mount.Frames(),
			settled:   w.glowSettled(now),
			profiling: w.profiler != nil && w.profiler.IsProfiling(),
		})
	}
}

// Layout implements ebiten.Game. The pixel buffer always matches the
// window, and a size change is reported to resize subscribers.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return w.width, w.height
	}
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		for _, fn := range w.resizeFns {
			fn(w.width, w.height)
		}
	}
	return w.width, w.height
}

// Context implements field.Host
func (w *Window) Context() (field.Surface, bool) {
	return w.surface, true
}

// Size implements field.Host
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// OnPointerMove implements field.Host
func (w *Window) OnPointerMove(fn func(x, y float64)) func() {
	id := w.nextID
	w.nextID++
	w.pointerFns[id] = fn
	return func() { delete(w.pointerFns, id) }
}

// OnResize implements field.Host
func (w *Window) OnResize(fn func(w, h int)) func() {
	id := w.nextID
	w.nextID++
	w.resizeFns[id] = fn
	return func() { delete(w.resizeFns, id) }
}

// RequestFrame implements field.Host. The callback runs in the next Draw.
func (w *Window) RequestFrame(fn func()) func() {
	w.frameID++
	id := w.frameID
	w.pending = fn
	return func() {
		if w.frameID == id {
			w.pending = nil
		}
	}
}

func (w *Window) pointer() field.Vec2 {
	if f := w.mount.Field(); f != nil {
		return f.Pointer()
	}
	return field.Vec2{}
}

func (w *Window) glowSettled(now time.Time) bool {
	if g := w.mount.Glow(); g != nil {
		return g.Settled(now)
	}
	return true
}

func (w *Window) onFrameDrop() {
	fps := w.meter.FPS()
	if w.profiler == nil {
		w.logger.Warn("frame rate drop", zap.Float64("fps", fps))
		return
	}

	reason := fmt.Sprintf("fps%.0f-%dx%d", fps, w.width, w.height)
	w.logger.Warn("frame rate drop; capturing profile", zap.Float64("fps", fps), zap.String("reason", reason))
	if err := w.profiler.Capture(reason); err != nil {
		w.logger.Debug("profile capture skipped", zap.Error(err))
	}
}
