package game

import "github.com/plus3/tieney/ecs"

// SmokeMoverSystem drifts smoke against its heading and shrinks it on a
// timer. A particle too small to shrink again is deleted.
type SmokeMoverSystem struct {
	Particles ecs.Query[struct {
		Id ecs.EntityId
		*Position
		*Renderable
		*Smoke
	}]

	shrinkTime float64
}

func NewSmokeMoverSystem(rules Rules) *SmokeMoverSystem {
	return &SmokeMoverSystem{shrinkTime: rules.ShrinkTime}
}

func (s *SmokeMoverSystem) Execute(frame *ecs.UpdateFrame) {
	for p := range s.Particles.Values() {
		smoke, rend := p.Smoke, p.Renderable

		sin, cos := heading(p.Position.Rot)
		p.Position.X -= smoke.Speed * sin
		p.Position.Y += smoke.Speed * cos

		if smoke.ShrinkTime > smoke.ShrinkSpeed {
			smoke.ShrinkTime -= smoke.ShrinkSpeed
		} else {
			if rend.DestW > smoke.ShrinkFactor && rend.DestH > smoke.ShrinkFactor {
				rend.DestW -= smoke.ShrinkFactor
				rend.DestH -= smoke.ShrinkFactor
			} else {
				frame.Commands.Delete(p.Id)
			}
			smoke.ShrinkTime = s.shrinkTime
		}

		smoke.Speed /= smoke.Slack
	}
}
