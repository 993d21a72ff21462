// Package game holds the asteroids simulation: the component schemas, the
// per-frame update passes and the World that runs them in a fixed order.
package game

import "github.com/plus3/tieney/ecs"

// Position is an entity's place in the world. Rot is in degrees, clockwise
// from "up", and kept in [0,360) by the pass that owns the entity.
type Position struct {
	X   float64
	Y   float64
	Rot float64
}

// Renderable describes how a front-end draws an entity.
type Renderable struct {
	TexName     string
	SourceW     uint32
	SourceH     uint32
	DestW       uint32
	DestH       uint32
	Frame       uint32
	TotalFrames uint32
	Rot         float64
}

// Player marks the ship. Impulse collects this frame's thrust and is
// cleared after integration; CurSpeed persists and decays.
type Player struct {
	Impulse  Vec2
	CurSpeed Vec2
}

type Asteroid struct {
	Speed    float64
	RotSpeed float64
}

type Missile struct {
	Speed float64
}

// Smoke is a thrust particle that drifts against the ship's heading, slows
// down by Slack each frame and shrinks until it is too small to draw.
type Smoke struct {
	Speed        float64
	Slack        float64
	ShrinkTime   float64
	ShrinkSpeed  float64
	ShrinkFactor uint32
}

// Texture keys referenced by the sprites below.
const (
	TexShip    = "img/triangle.png"
	TexRock    = "img/square.png"
	TexMissile = "img/missile.png"
	TexSmoke   = "img/circle_small.png"
)

// Textures lists every texture key the simulation can produce.
func Textures() []string {
	return []string{TexShip, TexRock, TexSmoke, TexMissile}
}

func sprite(tex string, srcW, srcH, destW, destH uint32) Renderable {
	return Renderable{
		TexName:     tex,
		SourceW:     srcW,
		SourceH:     srcH,
		DestW:       destW,
		DestH:       destH,
		TotalFrames: 1,
	}
}

// RegisterComponents registers every game component with the registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Renderable](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Asteroid](registry)
	ecs.RegisterComponent[Missile](registry)
	ecs.RegisterComponent[Smoke](registry)
}
