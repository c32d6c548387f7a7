package raster

import (
	"fmt"
	"io"

	"emberfield/field"
)

// SnapshotOptions configures Snapshot
type SnapshotOptions struct {
	Width, Height int

	// Frames is the number of animation frames to run before encoding
	Frames int

	// Pointer, when set, is delivered as a pointer-move before the first frame
	Pointer *field.Vec2

	// Glow draws the pointer glow sprite
	Glow bool

	Field field.Options
}

// Snapshot mounts a field on a headless host, runs the requested frames and
// writes the final canvas to w as PNG. It returns the number of frames run.
func Snapshot(w io.Writer, opts SnapshotOptions) (int, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return 0, fmt.Errorf("snapshot size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Frames < 1 {
		return 0, fmt.Errorf("snapshot needs at least one frame, got %d", opts.Frames)
	}

	var h *Host
	if opts.Glow {
		var err error
		if h, err = NewHostWithGlow(opts.Width, opts.Height); err != nil {
			return 0, err
		}
	} else {
		h = NewHost(opts.Width, opts.Height)
	}

	m := field.Attach(h, opts.Field)
	defer m.Teardown()

	if opts.Pointer != nil {
		h.MovePointer(opts.Pointer.X, opts.Pointer.Y)
	}
	ran := h.Advance(opts.Frames)

	if err := h.WritePNG(w); err != nil {
		return ran, err
	}
	return ran, nil
}
