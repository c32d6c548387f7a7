package field

import (
	"math/rand/v2"
)

// Field owns the particle pool, the pointer position and the surface bounds.
// It is not safe for concurrent use; hosts drive it from a single goroutine.
type Field struct {
	particles [ParticleCount]Particle
	pointer   Vec2
	bounds    Bounds
	rng       *rand.Rand
}

// New creates a field of ParticleCount particles on a w x h surface with
// the pointer at the surface center.
func New(w, h float64, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{
		bounds: Bounds{W: w, H: h},
		rng:    rng,
	}
	f.pointer = f.bounds.Center()
	for i := range f.particles {
		f.particles[i] = SpawnParticle(f.bounds, rng)
	}
	return f
}

// Len returns the pool size
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the pool in pool order
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles[:])
	return out
}

// Pointer returns the last known pointer position
func (f *Field) Pointer() Vec2 {
	return f.pointer
}

// MovePointer records a pointer-move event
func (f *Field) MovePointer(x, y float64) {
	f.pointer = Vec2{X: x, Y: y}
}

// Bounds returns the current wraparound bounds
func (f *Field) Bounds() Bounds {
	return f.bounds
}

// Resize changes the wraparound bounds. Particles are left where they are;
// they fold into the new bounds on their next update.
func (f *Field) Resize(w, h float64) {
	f.bounds = Bounds{W: w, H: h}
}

// Step advances every particle by one frame without drawing
func (f *Field) Step() {
	for i := range f.particles {
		f.particles[i].update(f.pointer, f.bounds, f.rng)
	}
}

// Render draws the current state: clear, grid, particles, links
func (f *Field) Render(s Surface) {
	s.Clear()
	f.drawGrid(s)
	for i := range f.particles {
		drawParticle(s, &f.particles[i])
	}
	f.drawLinks(s)
}

// Frame runs one full animation frame: clear, grid, then update and draw
// each particle in pool order, then the link pass over the updated pool.
func (f *Field) Frame(s Surface) {
	s.Clear()
	f.drawGrid(s)
	for i := range f.particles {
		p := &f.particles[i]
		p.update(f.pointer, f.bounds, f.rng)
		drawParticle(s, p)
	}
	f.drawLinks(s)
}
