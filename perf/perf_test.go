package perf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// feed records frames at a fixed interval until `until` and reports
// whether any of them flagged a drop.
func feed(m *Meter, from time.Time, interval, until time.Duration) (time.Time, bool) {
	dropped := false
	now := from
	for elapsed := time.Duration(0); elapsed < until; elapsed += interval {
		now = now.Add(interval)
		if m.Frame(now) {
			dropped = true
		}
	}
	return now, dropped
}

func TestMeterEstimatesFPS(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewMeter(0, start)
	assert.Equal(t, 60.0, m.FPS(), "optimistic until the first window closes")

	_, dropped := feed(m, start, 10*time.Millisecond, time.Second)

	assert.False(t, dropped)
	assert.InDelta(t, 100, m.FPS(), 1)
}

func TestMeterIgnoresDropsDuringWarmup(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewMeter(55, start)

	_, dropped := feed(m, start, 50*time.Millisecond, 2*time.Second)

	assert.False(t, dropped)
	assert.InDelta(t, 20, m.FPS(), 1)
}

func TestMeterFlagsDropAfterWarmupThenCoolsDown(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewMeter(55, start)

	now, _ := feed(m, start, 10*time.Millisecond, 4*time.Second)
	now, dropped := feed(m, now, 50*time.Millisecond, time.Second)
	require.True(t, dropped)

	now, dropped = feed(m, now, 50*time.Millisecond, 5*time.Second)
	assert.False(t, dropped, "second drop inside the cooldown")

	_, dropped = feed(m, now, 50*time.Millisecond, 6*time.Second)
	assert.True(t, dropped, "cooldown expired")
}

func TestProfilerCaptureBlocking(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")
	p, err := NewProfiler(dir, 0, time.Hour, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, p.captureSync("test", 10*time.Millisecond))
	assert.False(t, p.IsProfiling())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, filepath.Ext(e.Name()))
	}
	assert.ElementsMatch(t, []string{".prof", ".trace"}, names)

	err = p.captureSync("again", time.Millisecond)
	assert.ErrorIs(t, err, ErrCooldown)
}

func TestProfilerCaptureAsync(t *testing.T) {
	p, err := NewProfiler(t.TempDir(), 20*time.Millisecond, 0, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, p.Capture("bg"))
	assert.ErrorIs(t, p.Capture("overlap"), ErrBusy)

	p.Wait()
	assert.False(t, p.IsProfiling())
}
