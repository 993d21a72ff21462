package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/tieney/game"
)

// KeyReader is the subset of ebiten's keyboard state the game reads.
type KeyReader interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	IsKeyJustReleased(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) IsKeyPressed(key ebiten.Key) bool      { return ebiten.IsKeyPressed(key) }
func (ebitenKeys) IsKeyJustPressed(key ebiten.Key) bool  { return inpututil.IsKeyJustPressed(key) }
func (ebitenKeys) IsKeyJustReleased(key ebiten.Key) bool { return inpututil.IsKeyJustReleased(key) }

var heldKeys = map[ebiten.Key]string{
	ebiten.KeyW: game.KeyThrust,
	ebiten.KeyA: game.KeyLeft,
	ebiten.KeyD: game.KeyRight,
}

// syncKeys copies the keyboard into the game's key state. Movement keys
// follow the held state. Fire is set on the press edge so that the player
// pass consumes it once, and cleared on release.
func syncKeys(in KeyReader, keys game.KeyState) {
	for key, name := range heldKeys {
		keys.SetPressed(name, in.IsKeyPressed(key))
	}

	if in.IsKeyJustPressed(ebiten.KeySpace) {
		keys.SetPressed(game.KeyFire, true)
	}
	if in.IsKeyJustReleased(ebiten.KeySpace) {
		keys.SetPressed(game.KeyFire, false)
	}
}

// releaseKeys drops every held key, used while the overlay owns the keyboard.
func releaseKeys(keys game.KeyState) {
	for _, name := range heldKeys {
		keys.SetPressed(name, false)
	}
	keys.SetPressed(game.KeyFire, false)
}
