package ecs

// UpdateFrame is handed to every system during a scheduler run.
type UpdateFrame struct {
	DeltaTime float64
	// Tick counts completed scheduler runs before this one.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, tick uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
