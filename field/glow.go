package field

import "time"

// GlowDuration is how long the glow takes to reach a new pointer target
const GlowDuration = 2000 * time.Millisecond

// GlowRadius is half the glow overlay's width in surface pixels
const GlowRadius = 500.0

// Glow tracks the translucent gradient overlay that trails the pointer.
// Each retarget starts a new transition from wherever the glow currently
// is; once a transition completes the glow holds its final position.
type Glow struct {
	from     Vec2
	to       Vec2
	start    time.Time
	duration time.Duration
}

// NewGlow places a settled glow at pos
func NewGlow(pos Vec2, duration time.Duration) *Glow {
	return &Glow{from: pos, to: pos, duration: duration}
}

// Retarget starts a transition toward target at time now
func (g *Glow) Retarget(target Vec2, now time.Time) {
	g.from = g.Position(now)
	g.to = target
	g.start = now
}

// Target returns the position the glow is moving toward
func (g *Glow) Target() Vec2 {
	return g.to
}

// Position samples the glow at time now
func (g *Glow) Position(now time.Time) Vec2 {
	t := g.progress(now)
	return Vec2{
		X: g.from.X + (g.to.X-g.from.X)*t,
		Y: g.from.Y + (g.to.Y-g.from.Y)*t,
	}
}

// Settled reports whether the current transition has finished
func (g *Glow) Settled(now time.Time) bool {
	return g.progress(now) >= 1
}

func (g *Glow) progress(now time.Time) float64 {
	if g.duration <= 0 || g.start.IsZero() {
		return 1
	}
	elapsed := now.Sub(g.start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= g.duration {
		return 1
	}
	return float64(elapsed) / float64(g.duration)
}
