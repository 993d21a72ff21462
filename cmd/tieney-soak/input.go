package main

import (
	"github.com/plus3/tieney/ecs"
	"github.com/plus3/tieney/game"
)

// scriptedPilot presses random keys every frame. It runs after the movers,
// so its keys are read by the next frame's player pass.
type scriptedPilot struct {
	keys game.KeyState
	rand game.Rand

	thrust   float64
	turn     float64
	fireRate float64

	// Ship marks the pilot as active only while a ship exists.
	Ship ecs.Query[struct{ *game.Player }]
}

func newScriptedPilot(keys game.KeyState, rand game.Rand) *scriptedPilot {
	return &scriptedPilot{
		keys:     keys,
		rand:     rand,
		thrust:   0.6,
		turn:     0.3,
		fireRate: 0.2,
	}
}

func (p *scriptedPilot) Execute(frame *ecs.UpdateFrame) {
	if p.Ship.Len() == 0 {
		return
	}

	p.keys.SetPressed(game.KeyThrust, p.rand.Float64() < p.thrust)

	left := false
	right := false
	if p.rand.Float64() < p.turn {
		if p.rand.Intn(2) == 0 {
			left = true
		} else {
			right = true
		}
	}
	p.keys.SetPressed(game.KeyLeft, left)
	p.keys.SetPressed(game.KeyRight, right)

	if p.rand.Float64() < p.fireRate {
		p.keys.SetPressed(game.KeyFire, true)
	}
}
