package terminal

import (
	"context"
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"emberfield/config"
	"emberfield/field"
)

// Run renders a particle field on screen until the user quits or ctx ends.
// The caller owns screen and must have called Init; Run never calls Fini.
func Run(ctx context.Context, screen tcell.Screen, cfg config.TerminalConfig, opts field.Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	defer screen.DisableMouse()
	screen.HideCursor()

	surface := NewSurface(screen, cfg.CellWidth, cfg.CellHeight)
	loop := field.NewLoop(cfg.FrameInterval, screen.Show)
	h := newHost(screen, surface, loop)

	mount := field.Attach(h, opts)
	defer mount.Teardown()

	cols, rows := screen.Size()
	logger.Info("terminal host started",
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Duration("frame_interval", cfg.FrameInterval))

	quit := make(chan struct{})
	events := make(chan tcell.Event, 64)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		screen.ChannelEvents(events, quit)
	}()
	go func() {
		defer wg.Done()
		for ev := range events {
			loop.Post(func() {
				if h.handleEvent(ev) {
					logger.Debug("quit requested")
					mount.Teardown()
					loop.Stop()
				}
			})
		}
	}()

	err := loop.Run(ctx)
	close(quit)
	wg.Wait()

	logger.Info("terminal host stopped", zap.Uint64("frames", mount.Frames()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
