package game

import (
	"testing"

	"github.com/plus3/tieney/ecs"
)

func BenchmarkWorldTickIdle(b *testing.B) {
	w := NewWorld(DefaultRules(), NewKeys(), WithLogger(quietLogger()), WithRand(NewRand(1)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Tick()
	}
}

// BenchmarkWorldTickBusy keeps the smoke cap saturated and fires every frame.
func BenchmarkWorldTickBusy(b *testing.B) {
	keys := NewKeys()
	w := NewWorld(DefaultRules(), keys, WithLogger(quietLogger()), WithRand(NewRand(1)))
	keys.SetPressed(KeyThrust, true)
	keys.SetPressed(KeyRight, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		keys.SetPressed(KeyFire, true)
		w.Tick()
	}
}

func BenchmarkWorldReset(b *testing.B) {
	w := NewWorld(DefaultRules(), NewKeys(), WithLogger(quietLogger()), WithRand(NewRand(1)))
	ships := ecs.NewView[shipView](w.Storage())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var ids []ecs.EntityId
		for item := range ships.Values() {
			ids = append(ids, item.Id)
		}
		for _, id := range ids {
			w.Storage().Delete(id)
		}
		w.Tick()
	}
}
