package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/plus3/tieney/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrateMotionCapsSpeed(t *testing.T) {
	rules := DefaultRules()
	rng := rand.New(rand.NewSource(7))

	pos := &Position{}
	player := &Player{}
	for i := 0; i < 10000; i++ {
		player.Impulse = Vec2{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10}
		IntegrateMotion(pos, player, rules.Friction, rules.MaxSpeed)

		assert.LessOrEqual(t, player.CurSpeed.Length(), rules.MaxSpeed+1e-9)
		assert.Equal(t, Vec2{}, player.Impulse)
	}
}

func TestIntegrateMotionOrder(t *testing.T) {
	pos := &Position{}
	player := &Player{CurSpeed: Vec2{X: 2}, Impulse: Vec2{X: 1}}

	IntegrateMotion(pos, player, 0.5, 10)

	// Decay first, then add: 2*0.5 + 1.
	assert.InDelta(t, 2.0, player.CurSpeed.X, 1e-12)
	assert.InDelta(t, 2.0, pos.X, 1e-12)
}

func TestIntegrateMotionClampKeepsDirection(t *testing.T) {
	pos := &Position{}
	player := &Player{Impulse: Vec2{X: 30, Y: -40}}

	IntegrateMotion(pos, player, 0.95, 4.5)

	assert.InDelta(t, 4.5, player.CurSpeed.Length(), 1e-9)
	assert.InDelta(t, 0.6*4.5, player.CurSpeed.X, 1e-9)
	assert.InDelta(t, -0.8*4.5, player.CurSpeed.Y, 1e-9)
}

func TestPlayerRotationStaysInRange(t *testing.T) {
	for _, key := range []string{KeyLeft, KeyRight} {
		t.Run("key="+key, func(t *testing.T) {
			keys := NewKeys()
			keys.SetPressed(key, true)
			w := newTestWorld(t, keys)

			for i := 0; i < 400; i++ {
				w.Tick()
				s := ship(t, w)
				assert.GreaterOrEqual(t, s.Position.Rot, 0.0)
				assert.Less(t, s.Position.Rot, 360.0)
				assert.Equal(t, s.Position.Rot, s.Renderable.Rot)
			}
		})
	}
}

func TestPlayerRotationDirection(t *testing.T) {
	keys := NewKeys()
	keys.SetPressed(KeyLeft, true)
	w := newTestWorld(t, keys)

	w.Tick()
	assert.InDelta(t, 2.5, ship(t, w).Position.Rot, 1e-9)

	keys.SetPressed(KeyLeft, false)
	keys.SetPressed(KeyRight, true)
	w.Tick()
	w.Tick()
	assert.InDelta(t, 357.5, ship(t, w).Position.Rot, 1e-9)
}

func TestPlayerWrapsAroundWorld(t *testing.T) {
	rules := DefaultRules()
	w := newTestWorld(t, NewKeys())

	s := ship(t, w)
	s.Position.X = rules.WorldWidth - 0.1
	s.Position.Y = 0.05
	s.Player.CurSpeed = Vec2{X: 2, Y: -1}

	w.Tick()

	s = ship(t, w)
	vx := 2 * rules.Friction
	assert.GreaterOrEqual(t, s.Position.X, 0.0)
	assert.Less(t, s.Position.X, vx)
	assert.InDelta(t, vx-0.1, s.Position.X, 1e-9)
	assert.InDelta(t, rules.WorldHeight+0.05-rules.Friction, s.Position.Y, 1e-9)
}

func TestPlayerThrustQueuesSmoke(t *testing.T) {
	rules := DefaultRules()
	keys := NewKeys()
	keys.SetPressed(KeyThrust, true)
	w := newTestWorld(t, keys)

	w.Tick()

	s := ship(t, w)
	assert.InDelta(t, -rules.Thrust, s.Player.CurSpeed.Y, 1e-9)
	assert.InDelta(t, 0, s.Player.CurSpeed.X, 1e-9)

	var smoke []Position
	for item := range ecs.NewView[struct {
		*Position
		*Smoke
	}](w.Storage()).Values() {
		smoke = append(smoke, *item.Position)
	}
	require.Len(t, smoke, 1)

	// Spawned at the tail, (350, 250+32), then moved once by the smoke pass
	// at the stub's midpoint speed of 4.5. A rand of 0.5 means no jitter.
	assert.InDelta(t, 0, smoke[0].Rot, 1e-9)
	assert.InDelta(t, 350, smoke[0].X, 1e-9)
	assert.InDelta(t, 250+32+4.5, smoke[0].Y, 1e-9)
}

func TestSmokeJitterBounds(t *testing.T) {
	rules := DefaultRules()
	for _, f := range []float64{0, 0.999999} {
		keys := NewKeys()
		keys.SetPressed(KeyThrust, true)

		registry := ecs.NewComponentRegistry()
		RegisterComponents(registry)
		storage := ecs.NewStorage(registry)
		queue := ecs.NewSingleton[SpawnQueue](storage)
		storage.Spawn(rules.PlayerStart, rules.shipSprite(), Player{})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(NewPlayerControlSystem(rules, keys, stubRand{f: f}))
		scheduler.Once(1.0 / TickRate)

		require.Len(t, queue.Get().Smoke, 1)
		rot := queue.Get().Smoke[0].Rot
		if f == 0 {
			assert.InDelta(t, 340, rot, 1e-6)
		} else {
			assert.InDelta(t, 20, rot, 1e-3)
		}
	}
}

func TestFireIsEdgeTriggered(t *testing.T) {
	keys := NewKeys()
	w := newTestWorld(t, keys)

	keys.SetPressed(KeyFire, true)
	for i := 0; i < 10; i++ {
		w.Tick()
		assert.False(t, keys.IsPressed(KeyFire), "fire press is consumed")
	}
	assert.Equal(t, 1, w.Population().Missiles)
	assert.Equal(t, uint64(1), w.Stats().MissilesSpawned)

	keys.SetPressed(KeyFire, true)
	w.Tick()
	assert.Equal(t, 2, w.Population().Missiles)
}

func TestFiredMissileHeading(t *testing.T) {
	keys := NewKeys()
	w := newTestWorld(t, keys)

	keys.SetPressed(KeyFire, true)
	w.Tick()

	for item := range ecs.NewView[struct {
		*Position
		*Renderable
		*Missile
	}](w.Storage()).Values() {
		assert.InDelta(t, 180, item.Position.Rot, 1e-9)
		assert.InDelta(t, 90, item.Renderable.Rot, 1e-9)
		assert.InDelta(t, 350, item.Position.X, 1e-9)
		assert.InDelta(t, 250+6, item.Position.Y, 1e-9)
		assert.Equal(t, TexMissile, item.Renderable.TexName)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, size, want float64
	}{
		{0, 800, 0},
		{800, 800, 0},
		{801.5, 800, 1.5},
		{-1, 800, 799},
		{-1600.5, 800, 799.5},
		{360, 360, 0},
		{-2.5, 360, 357.5},
		{725, 360, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Wrap(tt.in, tt.size), 1e-9, "Wrap(%v, %v)", tt.in, tt.size)
	}

	got := Wrap(-1e-18, 800)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.Less(t, got, 800.0)
	assert.False(t, math.IsNaN(got))
}
