package game

import (
	"io"
	"log/slog"
	"testing"

	"github.com/plus3/tieney/ecs"
	"github.com/stretchr/testify/require"
)

// stubRand returns the same values forever.
type stubRand struct {
	f float64
	i int
}

func (r stubRand) Float64() float64 { return r.f }

func (r stubRand) Intn(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorld(t *testing.T, keys KeyState, opts ...Option) *World {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger()), WithRand(stubRand{f: 0.5})}, opts...)
	return NewWorld(DefaultRules(), keys, opts...)
}

type shipView = struct {
	Id ecs.EntityId
	*Position
	*Player
	*Renderable
}

func ship(t *testing.T, w *World) shipView {
	t.Helper()
	var found []shipView
	for item := range ecs.NewView[shipView](w.Storage()).Values() {
		found = append(found, item)
	}
	require.Len(t, found, 1)
	return found[0]
}

func spawnMissile(s *ecs.Storage, at Position, speed float64) ecs.EntityId {
	return s.Spawn(at, DefaultRules().missileSprite(), Missile{Speed: speed})
}
