// Package stage drives a fixed set of interdependent resources through
// creation, refresh and teardown.
//
// Each resource lives in one slot identified by a state tag. An influence
// graph says which slots must re-run their update handler when another slot
// changes. Engine.Update performs exactly one breadth pass over the states
// that changed since the previous pass, so callers repeat it (or use
// Converge) until IsUpdated reports a fixed point.
//
// Teardown edges are derived as the reverse of the influence graph, merged
// with any extra edges the caller declares, and sorted once at construction.
// Dispose walks that order so a resource is never released while something
// built from it is still live.
//
// An Engine is not safe for concurrent use.
package stage
