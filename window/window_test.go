package window

import (
	"io"
	"log/slog"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tieney/config"
	"github.com/plus3/tieney/game"
)

type fakeKeys struct {
	held     map[ebiten.Key]bool
	pressed  map[ebiten.Key]bool
	released map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{
		held:     map[ebiten.Key]bool{},
		pressed:  map[ebiten.Key]bool{},
		released: map[ebiten.Key]bool{},
	}
}

func (f *fakeKeys) IsKeyPressed(key ebiten.Key) bool      { return f.held[key] }
func (f *fakeKeys) IsKeyJustPressed(key ebiten.Key) bool  { return f.pressed[key] }
func (f *fakeKeys) IsKeyJustReleased(key ebiten.Key) bool { return f.released[key] }

// press holds key and marks the press edge for one frame.
func (f *fakeKeys) press(key ebiten.Key) {
	f.held[key] = true
	f.pressed[key] = true
}

func (f *fakeKeys) nextFrame() {
	clear(f.pressed)
	clear(f.released)
}

func newTestGame(t *testing.T) (*Game, *fakeKeys) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	keys := game.NewKeys()
	world := game.NewWorld(game.DefaultRules(), keys,
		game.WithLogger(logger),
		game.WithRand(game.NewRand(7)))

	g := New(world, keys, nil, config.Default().Screen, WithLogger(logger))
	in := newFakeKeys()
	g.input = in
	return g, in
}

func TestSyncKeysFollowsHeldKeys(t *testing.T) {
	in := newFakeKeys()
	keys := game.NewKeys()

	in.held[ebiten.KeyW] = true
	in.held[ebiten.KeyD] = true
	syncKeys(in, keys)
	assert.True(t, keys.IsPressed(game.KeyThrust))
	assert.True(t, keys.IsPressed(game.KeyRight))
	assert.False(t, keys.IsPressed(game.KeyLeft))

	in.held[ebiten.KeyW] = false
	syncKeys(in, keys)
	assert.False(t, keys.IsPressed(game.KeyThrust))
}

func TestSyncKeysFireEdges(t *testing.T) {
	in := newFakeKeys()
	keys := game.NewKeys()

	in.press(ebiten.KeySpace)
	syncKeys(in, keys)
	assert.True(t, keys.IsPressed(game.KeyFire))

	// Holding space does not re-arm fire once consumed.
	keys.SetPressed(game.KeyFire, false)
	in.nextFrame()
	syncKeys(in, keys)
	assert.False(t, keys.IsPressed(game.KeyFire))

	in.press(ebiten.KeySpace)
	syncKeys(in, keys)
	in.nextFrame()
	in.held[ebiten.KeySpace] = false
	in.released[ebiten.KeySpace] = true
	syncKeys(in, keys)
	assert.False(t, keys.IsPressed(game.KeyFire))
}

func TestUpdateFiresOneMissilePerPress(t *testing.T) {
	g, in := newTestGame(t)

	in.press(ebiten.KeySpace)
	require.NoError(t, g.Update())
	in.nextFrame()
	for range 5 {
		require.NoError(t, g.Update())
	}

	assert.Equal(t, 1, g.world.Population().Missiles)
	assert.Equal(t, uint64(6), g.world.Frames())
}

func TestUpdateEscapeTerminates(t *testing.T) {
	g, in := newTestGame(t)
	in.held[ebiten.KeyEscape] = true

	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.Equal(t, uint64(0), g.world.Frames())
}

func TestLayoutUsesScreenConfig(t *testing.T) {
	g, _ := newTestGame(t)
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}
