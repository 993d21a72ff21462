package ecs_test

import "github.com/plus3/tieney/ecs"

// Fixtures shared by the store tests. Score and Callsign cover
// non-struct components; Pilot is a zero-size marker.

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Hull struct {
	Current int
	Max     int
}

type Pilot struct{}

type Score int32
type Callsign string

type Cargo struct {
	Items []string
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	for _, register := range []func(*ecs.ComponentRegistry){
		ecs.RegisterComponent[Position],
		ecs.RegisterComponent[Velocity],
		ecs.RegisterComponent[Name],
		ecs.RegisterComponent[Hull],
		ecs.RegisterComponent[Pilot],
		ecs.RegisterComponent[Score],
		ecs.RegisterComponent[Callsign],
		ecs.RegisterComponent[Cargo],
	} {
		register(registry)
	}
	return registry
}
