package stage

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

type Option func(*options)

type options struct {
	log zerolog.Logger
}

// WithLogger sets the logger used for pass and teardown tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// Engine owns the dirty set and the resource slots for one graph.
type Engine[S cmp.Ordered] struct {
	graph     *compiled[S]
	resources map[S]Resource
	dirty     map[S]struct{}
	log       zerolog.Logger
}

// New registers the graph and its resources. Every declared state needs a
// resource, every edge must name declared states, and the teardown graph
// must be acyclic; otherwise a *ConfigError is returned.
func New[S cmp.Ordered](g Graph[S], resources map[S]Resource, opts ...Option) (*Engine[S], error) {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	c, err := compile(g, resources)
	if err != nil {
		return nil, err
	}
	e := &Engine[S]{
		graph:     c,
		resources: make(map[S]Resource, len(resources)),
		dirty:     make(map[S]struct{}),
		log:       o.log,
	}
	for s, r := range resources {
		e.resources[s] = r
	}
	for _, r := range g.Roots {
		e.dirty[r] = struct{}{}
	}
	return e, nil
}

// MarkDirty adds s to the dirty set unconditionally.
func (e *Engine[S]) MarkDirty(s S) error {
	if _, ok := e.resources[s]; !ok {
		return &ConfigError{State: fmt.Sprint(s), Err: ErrUndeclared}
	}
	e.dirty[s] = struct{}{}
	return nil
}

// Dirty returns the dirty set in state order.
func (e *Engine[S]) Dirty() []S {
	out := make([]S, 0, len(e.dirty))
	for s := range e.dirty {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// IsUpdated reports whether the last pass changed nothing.
func (e *Engine[S]) IsUpdated() bool {
	return len(e.dirty) == 0
}

// Live reports whether the slot for s currently holds a resource.
func (e *Engine[S]) Live(s S) bool {
	r, ok := e.resources[s]
	return ok && !r.IsDestroyed()
}

// TeardownOrder returns the order Dispose destroys states in.
func (e *Engine[S]) TeardownOrder() []S {
	return slices.Clone(e.graph.order)
}

// Prerequisites returns the states that influence s.
func (e *Engine[S]) Prerequisites(s S) []S {
	return slices.Clone(e.graph.prereqs[s])
}

// Consumers returns the states that must be destroyed before s.
func (e *Engine[S]) Consumers(s S) []S {
	return slices.Clone(e.graph.consumers[s])
}

// Update runs one propagation pass: for each dirty state, the update
// handler of every state it influences is invoked once. Handlers whose
// prerequisites are not all live are skipped. States whose handler reports
// a change form the next dirty set. Failing handlers do not stop the pass;
// their errors are joined into the result.
func (e *Engine[S]) Update() error {
	if len(e.dirty) == 0 {
		return nil
	}
	current := e.Dirty()
	e.dirty = make(map[S]struct{})

	var errs []error
	visited := make(map[S]bool)
	for _, s := range current {
		for _, dep := range e.graph.influences[s] {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			if err := e.run(dep); err != nil {
				errs = append(errs, err)
			}
		}
	}
	e.log.Debug().
		Strs("pass", names(current)).
		Strs("next", names(e.Dirty())).
		Int("errors", len(errs)).
		Msg("stage pass complete")
	return errors.Join(errs...)
}

func (e *Engine[S]) run(s S) error {
	for _, p := range e.graph.prereqs[s] {
		if !e.Live(p) {
			e.log.Trace().
				Str("state", fmt.Sprint(s)).
				Str("missing", fmt.Sprint(p)).
				Msg("prerequisite not live, skipping")
			return nil
		}
	}

	r := e.resources[s]
	if rb, ok := r.(Rebuilder); ok && !r.IsDestroyed() && rb.NeedsRebuild() {
		e.log.Debug().Str("state", fmt.Sprint(s)).Msg("rebuild requested, releasing consumers")
		e.releaseConsumers(s)
	}

	changed, err := r.Update()
	if err != nil {
		e.releaseConsumers(s)
		r.Destroy()
		e.log.Warn().Err(err).Str("state", fmt.Sprint(s)).Msg("update failed")
		return &StateError{State: fmt.Sprint(s), Err: err}
	}
	if changed {
		e.dirty[s] = struct{}{}
		e.log.Debug().Str("state", fmt.Sprint(s)).Msg("state changed")
	}
	return nil
}

// releaseConsumers destroys every transitive consumer of s in teardown order.
func (e *Engine[S]) releaseConsumers(s S) {
	doomed := e.graph.closure(s)
	if len(doomed) == 0 {
		return
	}
	for _, c := range e.graph.order {
		if doomed[c] && e.Live(c) {
			e.resources[c].Destroy()
			e.log.Debug().Str("state", fmt.Sprint(c)).Str("for", fmt.Sprint(s)).Msg("consumer released")
		}
	}
}

// Converge repeats Update until a fixed point is reached or maxPasses
// passes have run. It returns the number of passes executed. Handler errors
// are collected across passes; ErrNotConverged is added when the limit is
// hit first.
func (e *Engine[S]) Converge(maxPasses int) (int, error) {
	var errs []error
	for pass := 1; pass <= maxPasses; pass++ {
		if e.IsUpdated() {
			return pass - 1, errors.Join(errs...)
		}
		if err := e.Update(); err != nil {
			errs = append(errs, err)
		}
	}
	if !e.IsUpdated() {
		errs = append(errs, ErrNotConverged)
	}
	return maxPasses, errors.Join(errs...)
}

// Dispose destroys every live resource in teardown order. A state is only
// destroyed once all of its consumers report destroyed. Dispose may be
// called more than once.
func (e *Engine[S]) Dispose() error {
	var errs []error
	for _, s := range e.graph.order {
		r := e.resources[s]
		if r.IsDestroyed() {
			continue
		}
		blocked := false
		for _, c := range e.graph.consumers[s] {
			if e.Live(c) {
				blocked = true
				errs = append(errs, &StateError{
					State: fmt.Sprint(s),
					Err:   fmt.Errorf("consumer %v still live: %w", c, ErrNotDestroyed),
				})
				break
			}
		}
		if blocked {
			continue
		}
		r.Destroy()
		if !r.IsDestroyed() {
			errs = append(errs, &StateError{State: fmt.Sprint(s), Err: ErrNotDestroyed})
			continue
		}
		e.log.Debug().Str("state", fmt.Sprint(s)).Msg("destroyed")
	}
	clear(e.dirty)
	return errors.Join(errs...)
}

func names[S cmp.Ordered](states []S) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = fmt.Sprint(s)
	}
	return out
}
