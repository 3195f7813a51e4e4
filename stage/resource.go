package stage

// Resource is the handler triple for one state slot.
type Resource interface {
	// Update attempts to (re)build the resource from its live prerequisites.
	// It reports whether the handle changed. Returning an error leaves the
	// slot empty; the engine destroys whatever was left behind.
	Update() (changed bool, err error)
	// Destroy releases the resource. It must be idempotent.
	Destroy()
	// IsDestroyed reports whether the slot is empty.
	IsDestroyed() bool
}

// Rebuilder is implemented by resources that cannot be refreshed in place.
// When a live Rebuilder reports NeedsRebuild, the engine releases every
// consumer of that state before calling Update.
type Rebuilder interface {
	NeedsRebuild() bool
}
