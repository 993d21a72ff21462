package game

import (
	"log/slog"

	"github.com/plus3/tieney/ecs"
)

// SpawnQueue collects spawn requests made during a frame. SpawnSystem
// drains it.
type SpawnQueue struct {
	Missiles []Position
	Smoke    []Position
}

// SpawnStats counts lifecycle events since the world was created.
// Requests over a population cap are dropped and only show up here.
type SpawnStats struct {
	Resets           uint64
	MissilesSpawned  uint64
	MissilesRejected uint64
	SmokeSpawned     uint64
	SmokeRejected    uint64
}

// LoadWorld queues the initial world: one ship and one asteroid.
func LoadWorld(cmds *ecs.Commands, rules Rules) {
	cmds.Spawn(
		rules.PlayerStart,
		rules.shipSprite(),
		Player{},
	)
	cmds.Spawn(
		rules.AsteroidStart,
		rules.rockSprite(),
		Asteroid{Speed: rules.AsteroidSpeed, RotSpeed: rules.AsteroidRotSpeed},
	)
}

// ResetSystem rebuilds the world from scratch once no ship is left. It must
// be followed by a barrier so later passes see the new world.
type ResetSystem struct {
	Players ecs.Query[struct{ *Player }]
	Stats   ecs.Singleton[SpawnStats]

	rules  Rules
	logger *slog.Logger
}

func NewResetSystem(rules Rules, logger *slog.Logger) *ResetSystem {
	return &ResetSystem{rules: rules, logger: logger}
}

func (s *ResetSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Players.Len() > 0 {
		return
	}

	s.logger.Debug("no player left, resetting world",
		"tick", frame.Tick,
		"entities", frame.Storage.EntityCount())

	frame.Commands.DeleteAll()
	LoadWorld(frame.Commands, s.rules)
	s.Stats.Get().Resets++
}

// SpawnSystem turns queued requests into entities, enforcing the missile and
// smoke population caps. Counts include entities spawned earlier in the same
// batch.
type SpawnSystem struct {
	Queue ecs.Singleton[SpawnQueue]
	Stats ecs.Singleton[SpawnStats]

	rules Rules
	rand  Rand
}

func NewSpawnSystem(rules Rules, rand Rand) *SpawnSystem {
	return &SpawnSystem{rules: rules, rand: rand}
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Queue.Get()
	stats := s.Stats.Get()

	missiles := ecs.CountComponent[Missile](frame.Storage)
	for _, at := range queue.Missiles {
		if missiles >= s.rules.MissileCap {
			stats.MissilesRejected++
			continue
		}
		frame.Commands.Spawn(at, s.rules.missileSprite(), Missile{Speed: s.rules.MissileSpeed})
		missiles++
		stats.MissilesSpawned++
	}

	smoke := ecs.CountComponent[Smoke](frame.Storage)
	for _, at := range queue.Smoke {
		if smoke >= s.rules.SmokeCap {
			stats.SmokeRejected++
			continue
		}
		frame.Commands.Spawn(s.smokeBundle(at)...)
		smoke++
		stats.SmokeSpawned++
	}

	queue.Missiles = queue.Missiles[:0]
	queue.Smoke = queue.Smoke[:0]
}

func (s *SpawnSystem) smokeBundle(at Position) []any {
	r := s.rules
	size := uniformUint(s.rand, r.SmokeSizeMin, r.SmokeSizeMax)
	return []any{
		at,
		r.smokeSprite(size),
		Smoke{
			Slack:        uniform(s.rand, r.SmokeSlackMin, r.SmokeSlackMax),
			Speed:        uniform(s.rand, r.SmokeSpeedMin, r.SmokeSpeedMax),
			ShrinkTime:   r.ShrinkTime,
			ShrinkSpeed:  uniform(s.rand, r.ShrinkSpeedMin, r.ShrinkSpeedMax),
			ShrinkFactor: uniformUint(s.rand, r.ShrinkFactorMin, r.ShrinkFactorMax+1),
		},
	}
}
