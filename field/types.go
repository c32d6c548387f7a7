package field

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Vec2 represents a 2D vector in surface pixel coordinates
type Vec2 struct {
	X float64
	Y float64
}

// Bounds is the drawing surface size used for spawning and wraparound
type Bounds struct {
	W float64
	H float64
}

// Center returns the middle of the surface
func (b Bounds) Center() Vec2 {
	return Vec2{X: b.W / 2, Y: b.H / 2}
}

// Contains reports whether v lies in [0,W) x [0,H)
func (b Bounds) Contains(v Vec2) bool {
	return v.X >= 0 && v.X < b.W && v.Y >= 0 && v.Y < b.H
}

// Color identifies one of the four ember palette entries
type Color uint8

const (
	Orange1 Color = iota
	Orange2
	Red
	Brown

	paletteSize = 4
)

var palette = [paletteSize]color.NRGBA{
	Orange1: {R: 0xfb, G: 0x92, B: 0x3c, A: 255},
	Orange2: {R: 0xea, G: 0x58, B: 0x0c, A: 255},
	Red:     {R: 0xef, G: 0x44, B: 0x44, A: 255},
	Brown:   {R: 0x7c, G: 0x2d, B: 0x12, A: 255},
}

// NRGBA returns the opaque palette color
func (c Color) NRGBA() color.NRGBA {
	if int(c) >= paletteSize {
		return palette[Orange1]
	}
	return palette[c]
}

func (c Color) String() string {
	switch c {
	case Orange1:
		return "orange1"
	case Orange2:
		return "orange2"
	case Red:
		return "red"
	case Brown:
		return "brown"
	default:
		return "unknown"
	}
}

// withAlpha returns clr with its alpha channel set from a [0,1] opacity
func withAlpha(clr color.NRGBA, alpha float64) color.NRGBA {
	clr.A = alphaByte(alpha)
	return clr
}

func alphaByte(alpha float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))
}

// ParseVec2 parses "x,y"
func ParseVec2(s string) (Vec2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Vec2{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return Vec2{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return Vec2{}, fmt.Errorf("point %q: %w", s, err)
	}
	return Vec2{X: x, Y: y}, nil
}
