package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnParticleRanges(t *testing.T) {
	rng := testRand()
	b := Bounds{W: 640, H: 480}
	colors := map[Color]int{}

	for i := 0; i < 2000; i++ {
		p := SpawnParticle(b, rng)
		require.True(t, b.Contains(p.Pos), "position %v outside %v", p.Pos, b)
		require.GreaterOrEqual(t, p.Radius, 1.0)
		require.Less(t, p.Radius, 4.0)
		require.GreaterOrEqual(t, p.Vel.X, -0.25)
		require.Less(t, p.Vel.X, 0.25)
		require.GreaterOrEqual(t, p.Vel.Y, -0.25)
		require.Less(t, p.Vel.Y, 0.25)
		require.GreaterOrEqual(t, p.MaxLife, 100.0)
		require.Less(t, p.MaxLife, 300.0)
		require.Greater(t, p.Life, 0.0)
		require.LessOrEqual(t, p.Life, p.MaxLife)
		colors[p.Color]++
	}

	assert.Len(t, colors, 4, "every palette entry should be drawn")
}

func TestNewFieldStartsWithPointerAtCenter(t *testing.T) {
	f := New(800, 600, testRand())

	assert.Equal(t, ParticleCount, f.Len())
	assert.Equal(t, Vec2{X: 400, Y: 300}, f.Pointer())
	assert.Equal(t, Bounds{W: 800, H: 600}, f.Bounds())
}

func TestPopulationIsConstant(t *testing.T) {
	f := New(800, 600, testRand())
	for frame := 0; frame < 1000; frame++ {
		f.Step()
		require.Len(t, f.Particles(), ParticleCount)
	}
}

func TestParticlesStayInBounds(t *testing.T) {
	rng := testRand()
	f := New(800, 600, rng)

	for frame := 0; frame < 3000; frame++ {
		if frame%200 == 0 {
			f.Resize(200+rng.Float64()*1000, 200+rng.Float64()*800)
		}
		if frame%7 == 0 {
			b := f.Bounds()
			f.MovePointer(rng.Float64()*b.W, rng.Float64()*b.H)
		}
		f.Step()

		b := f.Bounds()
		for i, p := range f.Particles() {
			require.True(t, b.Contains(p.Pos), "frame %d particle %d at %v outside %v", frame, i, p.Pos, b)
		}
	}
}

func TestLifeStaysPositive(t *testing.T) {
	f := New(800, 600, testRand())
	for frame := 0; frame < 1000; frame++ {
		f.Step()
		for i, p := range f.Particles() {
			require.Greater(t, p.Life, 0.0, "frame %d particle %d", frame, i)
			require.LessOrEqual(t, p.Life, p.MaxLife, "frame %d particle %d", frame, i)
		}
	}
}

func TestDampingConvergesWithoutAttraction(t *testing.T) {
	f := New(800, 600, testRand())
	f.MovePointer(1e9, 1e9)
	f.particles[0].Vel = Vec2{X: 0.2, Y: -0.15}

	prev := math.Hypot(f.particles[0].Vel.X, f.particles[0].Vel.Y)
	for frame := 0; frame < 2000; frame++ {
		f.Step()
		speed := math.Hypot(f.particles[0].Vel.X, f.particles[0].Vel.Y)
		require.Less(t, speed, prev, "frame %d", frame)
		prev = speed
	}
	assert.InDelta(t, 0, prev, 1e-9)
}

func TestRespawnResetsOnlyPositionAndLife(t *testing.T) {
	f := New(800, 600, testRand())
	f.MovePointer(1e9, 1e9)
	f.particles[0] = Particle{
		Pos:     Vec2{X: 10, Y: 10},
		Vel:     Vec2{X: 1, Y: 0.5},
		Radius:  2,
		Life:    1,
		MaxLife: 150,
		Color:   Red,
	}

	f.Step()
	p := f.particles[0]

	assert.Equal(t, 150.0, p.Life)
	assert.InDelta(t, 0.99, p.Vel.X, 1e-12)
	assert.InDelta(t, 0.495, p.Vel.Y, 1e-12)
	assert.Equal(t, 2.0, p.Radius)
	assert.Equal(t, Red, p.Color)
	assert.True(t, f.Bounds().Contains(p.Pos))
	assert.NotEqual(t, Vec2{X: 11, Y: 10.5}, p.Pos, "respawn should resample the position")
}

func TestLiveParticleIntegratesPosition(t *testing.T) {
	f := New(800, 600, testRand())
	f.MovePointer(1e9, 1e9)
	f.particles[0] = Particle{
		Pos:     Vec2{X: 10, Y: 10},
		Vel:     Vec2{X: 1, Y: 0.5},
		Radius:  2,
		Life:    2,
		MaxLife: 150,
		Color:   Brown,
	}

	f.Step()
	p := f.particles[0]

	assert.Equal(t, 1.0, p.Life)
	assert.InDelta(t, 11, p.Pos.X, 1e-12)
	assert.InDelta(t, 10.5, p.Pos.Y, 1e-12)
}

func TestAttractionRadiusIsStrict(t *testing.T) {
	b := Bounds{W: 1000, H: 1000}
	rng := testRand()

	t.Run("distance 300 applies no impulse", func(t *testing.T) {
		p := Particle{Pos: Vec2{X: 100, Y: 100}, Radius: 1, Life: 100, MaxLife: 100}
		p.update(Vec2{X: 100, Y: 400}, b, rng)
		assert.Equal(t, Vec2{}, p.Vel)
		assert.Equal(t, Vec2{X: 100, Y: 100}, p.Pos)
	})

	t.Run("distance 299 pulls toward the pointer", func(t *testing.T) {
		p := Particle{Pos: Vec2{X: 100, Y: 100}, Radius: 1, Life: 100, MaxLife: 100}
		p.update(Vec2{X: 100, Y: 399}, b, rng)
		assert.Equal(t, 0.0, p.Vel.X)
		assert.Greater(t, p.Vel.Y, 0.0)
		assert.InDelta(t, 299*0.0001*0.99, p.Vel.Y, 1e-12)
	})

	t.Run("pointer on the particle", func(t *testing.T) {
		p := Particle{Pos: Vec2{X: 100, Y: 100}, Vel: Vec2{X: 0.1}, Radius: 1, Life: 100, MaxLife: 100}
		p.update(Vec2{X: 100, Y: 100}, b, rng)
		assert.False(t, math.IsNaN(p.Vel.X) || math.IsNaN(p.Vel.Y))
		assert.InDelta(t, 0.099, p.Vel.X, 1e-12)
	})
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		size float64
		want float64
	}{
		{"inside", 42, 100, 42},
		{"zero", 0, 100, 0},
		{"right edge", 100, 100, 0},
		{"past right edge", 250, 100, 50},
		{"left of zero", -1, 100, 99},
		{"tiny negative", -1e-17, 100, 0},
		{"empty surface", 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, wrap(tt.v, tt.size), 1e-9)
		})
	}
}

func TestLinkThreshold(t *testing.T) {
	f := New(1000, 1000, testRand())
	f.particles[0].Pos = Vec2{X: 0, Y: 0}
	f.particles[1].Pos = Vec2{X: 50, Y: 0}
	for i := 2; i < ParticleCount; i++ {
		f.particles[i].Pos = Vec2{X: 2000 + float64(i)*1100, Y: 5000}
	}

	rec := &recorder{}
	f.drawLinks(rec)

	require.Len(t, rec.lines, 1)
	l := rec.lines[0]
	assert.Equal(t, lineCall{x0: 0, y0: 0, x1: 50, y1: 0, width: linkLineWidth, clr: linkColor}, l)
}

func TestLinkDistanceIsStrict(t *testing.T) {
	f := New(1000, 1000, testRand())
	for i := range f.particles {
		f.particles[i].Pos = Vec2{X: float64(i) * 100, Y: 0}
	}

	rec := &recorder{}
	f.drawLinks(rec)

	assert.Empty(t, rec.lines, "particles exactly 100px apart must not be linked")
}

func TestFrameDrawsGridParticlesAndLinks(t *testing.T) {
	f := New(800, 600, testRand())
	rec := &recorder{}

	f.Frame(rec)

	assert.Equal(t, 1, rec.clears)
	assert.Len(t, rec.circles, ParticleCount)
	// 0..800 step 80 and 0..560 step 80
	assert.Len(t, rec.linesWithColor(gridColor), 11+8)

	for i, p := range f.Particles() {
		c := rec.circles[i]
		assert.Equal(t, p.Pos.X, c.cx)
		assert.Equal(t, p.Pos.Y, c.cy)
		assert.Equal(t, p.Radius, c.r)
		assert.Equal(t, alphaByte(p.Alpha()), c.clr.A)
		assert.LessOrEqual(t, c.clr.A, alphaByte(maxAlpha))
	}
}

func TestRenderDoesNotAdvance(t *testing.T) {
	f := New(800, 600, testRand())
	before := f.Particles()

	rec := &recorder{}
	f.Render(rec)
	f.Render(rec)

	assert.Equal(t, before, f.Particles())
	assert.Len(t, rec.circles, ParticleCount)
}

func TestFrameMatchesStepThenRender(t *testing.T) {
	a := New(800, 600, testRand())
	b := New(800, 600, testRand())

	ra, rb := &recorder{}, &recorder{}
	for i := 0; i < 50; i++ {
		a.Frame(ra)
		b.Step()
		b.Render(rb)
	}

	assert.Equal(t, a.Particles(), b.Particles())
	assert.Equal(t, ra.circles, rb.circles)
	assert.Equal(t, ra.lines, rb.lines)
}

func TestResizeKeepsParticlesInPlace(t *testing.T) {
	f := New(800, 600, testRand())
	before := f.Particles()

	f.Resize(100, 100)

	assert.Equal(t, before, f.Particles())
	assert.Equal(t, Bounds{W: 100, H: 100}, f.Bounds())
}

func TestPalette(t *testing.T) {
	assert.Equal(t, "#fb923c", hex(Orange1))
	assert.Equal(t, "#ea580c", hex(Orange2))
	assert.Equal(t, "#ef4444", hex(Red))
	assert.Equal(t, "#7c2d12", hex(Brown))
	assert.Equal(t, "red", Red.String())
	assert.Equal(t, "unknown", Color(9).String())
	assert.Equal(t, Orange1.NRGBA(), Color(9).NRGBA())
}

func hex(c Color) string {
	n := c.NRGBA()
	const digits = "0123456789abcdef"
	out := []byte{'#'}
	for _, v := range []uint8{n.R, n.G, n.B} {
		out = append(out, digits[v>>4], digits[v&0x0f])
	}
	return string(out)
}

func TestParseVec2(t *testing.T) {
	v, err := ParseVec2("12.5, 40")
	require.NoError(t, err)
	assert.Equal(t, Vec2{X: 12.5, Y: 40}, v)

	for _, bad := range []string{"", "12", "a,1", "1,b"} {
		_, err := ParseVec2(bad)
		assert.Error(t, err, bad)
	}
}
