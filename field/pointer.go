package field

// PointerTracker turns polled cursor positions into pointer-move events for
// hosts that can only sample the cursor once per tick.
type PointerTracker struct {
	x, y  int
	known bool
}

// Poll records the cursor position and reports whether it moved since the
// previous poll. The first poll only sets the baseline: a cursor that has
// not moved yet has not produced a pointer-move.
func (t *PointerTracker) Poll(x, y int) (float64, float64, bool) {
	moved := t.known && (x != t.x || y != t.y)
	t.x, t.y, t.known = x, y, true
	return float64(x), float64(y), moved
}
