package game

import "github.com/plus3/tieney/ecs"

// AsteroidMoverSystem spins asteroids by RotSpeed and drifts them along
// their heading, wrapping at the world edges like the ship.
type AsteroidMoverSystem struct {
	Asteroids ecs.Query[struct {
		*Position
		*Renderable
		*Asteroid
	}]

	width, height float64
}

func NewAsteroidMoverSystem(rules Rules) *AsteroidMoverSystem {
	return &AsteroidMoverSystem{width: rules.WorldWidth, height: rules.WorldHeight}
}

func (s *AsteroidMoverSystem) Execute(frame *ecs.UpdateFrame) {
	for a := range s.Asteroids.Values() {
		pos := a.Position
		pos.Rot = NormalizeDegrees(pos.Rot + a.Asteroid.RotSpeed)

		sin, cos := heading(pos.Rot)
		pos.X = Wrap(pos.X+a.Asteroid.Speed*sin, s.width)
		pos.Y = Wrap(pos.Y-a.Asteroid.Speed*cos, s.height)

		a.Renderable.Rot = pos.Rot
	}
}
