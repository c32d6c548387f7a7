package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointerTrackerFirstPollIsBaseline(t *testing.T) {
	var tr PointerTracker

	_, _, moved := tr.Poll(0, 0)
	assert.False(t, moved)

	_, _, moved = tr.Poll(0, 0)
	assert.False(t, moved, "unchanged position")

	x, y, moved := tr.Poll(12, 34)
	assert.True(t, moved)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 34.0, y)

	_, _, moved = tr.Poll(12, 34)
	assert.False(t, moved)
}

func TestPolledHostKeepsCenteredPointerUntilMove(t *testing.T) {
	h := &fakeHost{surface: &recorder{}, w: 640, h: 480}
	m := Attach(h, Options{Rand: testRand()})
	defer m.Teardown()

	var tr PointerTracker
	poll := func(cx, cy int) {
		if x, y, moved := tr.Poll(cx, cy); moved {
			h.movePointer(x, y)
		}
	}

	// cursor outside the window reads as the origin
	poll(0, 0)
	h.advance()
	assert.Equal(t, Vec2{X: 320, Y: 240}, m.Field().Pointer())
	assert.Equal(t, Vec2{X: 320, Y: 240}, m.Glow().Target())

	poll(100, 50)
	assert.Equal(t, Vec2{X: 100, Y: 50}, m.Field().Pointer())
	assert.Equal(t, Vec2{X: 100, Y: 50}, m.Glow().Target())
}
