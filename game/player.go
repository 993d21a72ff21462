package game

import "github.com/plus3/tieney/ecs"

// PlayerControlSystem steers the ship from the key state, integrates its
// motion and queues smoke and missile spawn requests.
type PlayerControlSystem struct {
	Players ecs.Query[struct {
		*Position
		*Player
		*Renderable
	}]
	Queue ecs.Singleton[SpawnQueue]

	keys  KeyState
	rules Rules
	rand  Rand
}

func NewPlayerControlSystem(rules Rules, keys KeyState, rand Rand) *PlayerControlSystem {
	return &PlayerControlSystem{keys: keys, rules: rules, rand: rand}
}

func (s *PlayerControlSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Queue.Get()

	for ship := range s.Players.Values() {
		pos := ship.Position

		if s.keys.IsPressed(KeyRight) {
			pos.Rot -= s.rules.RotationSpeed
		}
		if s.keys.IsPressed(KeyLeft) {
			pos.Rot += s.rules.RotationSpeed
		}

		if s.keys.IsPressed(KeyThrust) {
			sin, cos := heading(pos.Rot)
			ship.Player.Impulse = ship.Player.Impulse.Add(Vec2{
				X: sin * s.rules.Thrust,
				Y: -cos * s.rules.Thrust,
			})

			// Smoke leaves from the tail of the ship.
			tail := float64(ship.Renderable.DestH) / 2
			queue.Smoke = append(queue.Smoke, Position{
				X:   pos.X - tail*sin,
				Y:   pos.Y + tail*cos,
				Rot: NormalizeDegrees(pos.Rot + uniform(s.rand, -s.rules.SmokeJitter, s.rules.SmokeJitter)),
			})
		}

		IntegrateMotion(pos, ship.Player, s.rules.Friction, s.rules.MaxSpeed)

		pos.Rot = NormalizeDegrees(pos.Rot)
		pos.X = Wrap(pos.X, s.rules.WorldWidth)
		pos.Y = Wrap(pos.Y, s.rules.WorldHeight)

		// Fire is edge triggered: the press is consumed here.
		if s.keys.IsPressed(KeyFire) {
			s.keys.SetPressed(KeyFire, false)
			queue.Missiles = append(queue.Missiles, Position{
				X:   pos.X,
				Y:   pos.Y,
				Rot: NormalizeDegrees(pos.Rot + 180),
			})
		}

		ship.Renderable.Rot = pos.Rot
	}
}

// IntegrateMotion decays the ship's speed, adds this frame's impulse, caps
// the result at maxSpeed and moves the ship. The impulse is cleared.
func IntegrateMotion(pos *Position, player *Player, friction, maxSpeed float64) {
	player.CurSpeed = player.CurSpeed.Scale(friction)
	player.CurSpeed = player.CurSpeed.Add(player.Impulse)
	if player.CurSpeed.Length() > maxSpeed {
		player.CurSpeed = player.CurSpeed.Normalize().Scale(maxSpeed)
	}

	pos.X += player.CurSpeed.X
	pos.Y += player.CurSpeed.Y

	player.Impulse = Vec2{}
}
