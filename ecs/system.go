package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query fields
// for accessing entities, as well as custom state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// storageBinder is implemented by Query and Singleton fields of a system.
type storageBinder interface {
	Init(storage *Storage)
}

// refresher is implemented by Query fields that snapshot matches per run.
type refresher interface {
	Execute()
}
