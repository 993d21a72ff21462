package game

// Key names understood by the player pass.
const (
	KeyThrust = "W"
	KeyLeft   = "A"
	KeyRight  = "D"
	KeyFire   = " "
)

// KeyState is the input snapshot handed to the simulation. The player pass
// only writes to it to consume the fire key.
type KeyState interface {
	IsPressed(key string) bool
	SetPressed(key string, down bool)
}

// Keys is a map-backed KeyState. The zero value is not usable; use
// NewKeys or make(Keys).
type Keys map[string]bool

func NewKeys() Keys {
	return make(Keys)
}

func (k Keys) IsPressed(key string) bool {
	return k[key]
}

func (k Keys) SetPressed(key string, down bool) {
	if !down {
		delete(k, key)
		return
	}
	k[key] = true
}
