package perf

import "time"

const (
	// sampleWindow is how often the FPS estimate is refreshed
	sampleWindow = 500 * time.Millisecond

	// warmup ignores drops right after startup while assets settle
	warmup = 3 * time.Second

	// dropCooldown is the minimum gap between two reported drops
	dropCooldown = 10 * time.Second
)

// Meter tracks frames per second over fixed sample windows and flags
// sustained drops below a threshold.
type Meter struct {
	threshold float64

	fps          float64
	frames       int
	windowStart  time.Time
	startedAt    time.Time
	lastDropTime time.Time
}

// NewMeter starts a meter at now. A threshold of 0 disables drop detection.
func NewMeter(threshold float64, now time.Time) *Meter {
	return &Meter{
		threshold:   threshold,
		fps:         60,
		windowStart: now,
		startedAt:   now,
	}
}

// Frame records one rendered frame at now. It returns true when a sample
// window just closed below the threshold, outside the warmup period and
// the drop cooldown.
func (m *Meter) Frame(now time.Time) bool {
	m.frames++

	elapsed := now.Sub(m.windowStart)
	if elapsed < sampleWindow {
		return false
	}

	m.fps = float64(m.frames) / elapsed.Seconds()
	m.frames = 0
	m.windowStart = now

	if m.threshold <= 0 || m.fps >= m.threshold {
		return false
	}
	if now.Sub(m.startedAt) < warmup {
		return false
	}
	if !m.lastDropTime.IsZero() && now.Sub(m.lastDropTime) < dropCooldown {
		return false
	}
	m.lastDropTime = now
	return true
}

// FPS returns the estimate from the last completed window
func (m *Meter) FPS() float64 {
	return m.fps
}
