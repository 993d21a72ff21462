package game

import "github.com/plus3/tieney/ecs"

// MissileMoverSystem flies missiles along their heading and deletes the ones
// that have left the world. Missiles do not wrap.
type MissileMoverSystem struct {
	Missiles ecs.Query[struct {
		Id ecs.EntityId
		*Position
		*Renderable
		*Missile
	}]

	width, height float64
}

func NewMissileMoverSystem(rules Rules) *MissileMoverSystem {
	return &MissileMoverSystem{width: rules.WorldWidth, height: rules.WorldHeight}
}

func (s *MissileMoverSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Missiles.Values() {
		sin, cos := heading(m.Position.Rot)
		m.Position.X += m.Missile.Speed * sin
		m.Position.Y -= m.Missile.Speed * cos

		// The sprite points right, so it is drawn a quarter turn back.
		m.Renderable.Rot = m.Position.Rot - 90

		if m.Position.X < 0 || m.Position.X > s.width || m.Position.Y < 0 || m.Position.Y > s.height {
			frame.Commands.Delete(m.Id)
		}
	}
}
