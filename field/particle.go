package field

import (
	"math"
	"math/rand/v2"
)

// Particle is a single ember in the pool. It is never destroyed, only
// respawned in place when its life runs out.
type Particle struct {
	Pos     Vec2    // surface position
	Vel     Vec2    // pixels per frame
	Radius  float64 // disc radius, [1,4)
	Life    float64 // frames remaining
	MaxLife float64 // frames per lifetime
	Color   Color
}

// Alpha returns the draw opacity, fading with remaining life
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return (p.Life / p.MaxLife) * maxAlpha
}

// SpawnParticle returns a freshly randomized particle inside b
func SpawnParticle(b Bounds, rng *rand.Rand) Particle {
	maxLife := maxLifeMin + rng.Float64()*maxLifeSpan
	return Particle{
		Pos: randomPoint(b, rng),
		Vel: Vec2{
			X: (rng.Float64() - 0.5) * velocitySpan,
			Y: (rng.Float64() - 0.5) * velocitySpan,
		},
		Radius: radiusMin + rng.Float64()*radiusSpan,
		// (0, maxLife] so a new particle is never born dead
		Life:    maxLife * (1 - rng.Float64()),
		MaxLife: maxLife,
		Color:   Color(rng.IntN(paletteSize)),
	}
}

func randomPoint(b Bounds, rng *rand.Rand) Vec2 {
	return Vec2{X: rng.Float64() * b.W, Y: rng.Float64() * b.H}
}

// update advances one particle by one frame: attraction, integration,
// damping, wraparound and the life countdown.
func (p *Particle) update(pointer Vec2, b Bounds, rng *rand.Rand) {
	dx := pointer.X - p.Pos.X
	dy := pointer.Y - p.Pos.Y
	dist := math.Sqrt(dx*dx + dy*dy)

	// Linear in displacement; never divides by dist.
	if dist < attractRadius {
		p.Vel.X += dx * attractStrength
		p.Vel.Y += dy * attractStrength
	}

	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y

	p.Vel.X *= damping
	p.Vel.Y *= damping

	p.Pos.X = wrap(p.Pos.X, b.W)
	p.Pos.Y = wrap(p.Pos.Y, b.H)

	p.Life--
	if p.Life <= 0 {
		p.Life = p.MaxLife
		p.Pos = randomPoint(b, rng)
	}
}

// wrap maps v onto [0,size) on a torus
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// -tiny + size can round up to size
	if v >= size {
		v = 0
	}
	return v
}
