package field

import "image/color"

// ParticleCount is the fixed pool size. It is a tuning constant; the link
// pass is O(N²) and is not meant to scale past a few dozen particles.
const ParticleCount = 40

// Simulation constants (per frame, surface pixels)
const (
	attractRadius   = 300.0
	attractStrength = 0.0001
	damping         = 0.99
	linkDistance    = 100.0
	maxAlpha        = 0.6
)

// Spawn ranges
const (
	radiusMin    = 1.0
	radiusSpan   = 3.0
	velocitySpan = 0.5
	maxLifeMin   = 100.0
	maxLifeSpan  = 200.0
)

// Grid and stroke geometry
const (
	gridSpacing   = 80.0
	gridLineWidth = 1.0
	linkLineWidth = 0.5
)

// Color constants
var (
	// Background is the page color behind the canvas.
	Background = color.NRGBA{R: 0x05, G: 0x02, B: 0x02, A: 255}
	gridColor  = color.NRGBA{R: 234, G: 88, B: 12, A: alphaByte(0.05)}
	linkColor  = color.NRGBA{R: 251, G: 146, B: 60, A: alphaByte(0.1)}
)
