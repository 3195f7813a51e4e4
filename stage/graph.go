package stage

import (
	"cmp"
	"fmt"
	"slices"
)

// Graph declares the states an Engine manages and how they relate.
type Graph[S cmp.Ordered] struct {
	// States lists every state tag. Order is irrelevant; tags are sorted.
	States []S
	// Influences maps a state to the states whose update handler must run
	// when it changes. An edge A->B also makes A a prerequisite of B and B
	// a consumer of A for teardown.
	Influences map[S][]S
	// Teardown adds consumer edges the influence graph does not imply:
	// Teardown[A] lists states that must be destroyed before A.
	Teardown map[S][]S
	// Roots are marked dirty when the engine is created.
	Roots []S
}

// compiled is the validated, de-duplicated form of a Graph.
type compiled[S cmp.Ordered] struct {
	states     []S
	influences map[S][]S
	prereqs    map[S][]S
	consumers  map[S][]S
	order      []S
}

func compile[S cmp.Ordered](g Graph[S], resources map[S]Resource) (*compiled[S], error) {
	c := &compiled[S]{
		influences: make(map[S][]S),
		prereqs:    make(map[S][]S),
		consumers:  make(map[S][]S),
	}
	declared := make(map[S]bool, len(g.States))
	for _, s := range g.States {
		if declared[s] {
			return nil, &ConfigError{State: fmt.Sprint(s), Err: ErrDuplicate}
		}
		declared[s] = true
		if resources[s] == nil {
			return nil, &ConfigError{State: fmt.Sprint(s), Err: ErrNoResource}
		}
	}
	for s := range resources {
		if !declared[s] {
			return nil, &ConfigError{State: fmt.Sprint(s), Err: ErrUndeclared}
		}
	}
	c.states = slices.Clone(g.States)
	slices.Sort(c.states)

	check := func(s S) error {
		if !declared[s] {
			return &ConfigError{State: fmt.Sprint(s), Err: ErrUndeclared}
		}
		return nil
	}
	for from, targets := range g.Influences {
		if err := check(from); err != nil {
			return nil, err
		}
		for _, to := range targets {
			if err := check(to); err != nil {
				return nil, err
			}
			c.influences[from] = append(c.influences[from], to)
			c.prereqs[to] = append(c.prereqs[to], from)
			c.consumers[from] = append(c.consumers[from], to)
		}
	}
	for s, consumers := range g.Teardown {
		if err := check(s); err != nil {
			return nil, err
		}
		for _, consumer := range consumers {
			if err := check(consumer); err != nil {
				return nil, err
			}
			c.consumers[s] = append(c.consumers[s], consumer)
		}
	}
	for _, r := range g.Roots {
		if err := check(r); err != nil {
			return nil, err
		}
	}
	for _, m := range []map[S][]S{c.influences, c.prereqs, c.consumers} {
		for s, list := range m {
			slices.Sort(list)
			m[s] = slices.Compact(list)
		}
	}

	order, err := teardownOrder(c.states, c.consumers)
	if err != nil {
		return nil, err
	}
	c.order = order
	return c, nil
}

// teardownOrder sorts states so that every state comes after all of its
// consumers. Among states that are ready at the same time the highest tag
// goes first, which puts late stages ahead of early ones.
func teardownOrder[S cmp.Ordered](states []S, consumers map[S][]S) ([]S, error) {
	waiting := make(map[S]int, len(states))
	waiters := make(map[S][]S)
	for _, s := range states {
		waiting[s] = len(consumers[s])
		for _, c := range consumers[s] {
			waiters[c] = append(waiters[c], s)
		}
	}

	var ready []S
	for _, s := range states {
		if waiting[s] == 0 {
			ready = append(ready, s)
		}
	}

	order := make([]S, 0, len(states))
	for len(ready) > 0 {
		slices.Sort(ready)
		next := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		order = append(order, next)
		for _, w := range waiters[next] {
			waiting[w]--
			if waiting[w] == 0 {
				ready = append(ready, w)
			}
		}
	}

	if len(order) != len(states) {
		for _, s := range states {
			if waiting[s] > 0 {
				return nil, &ConfigError{State: fmt.Sprint(s), Err: ErrCycle}
			}
		}
	}
	return order, nil
}

// closure returns every state reachable from s through consumer edges,
// not including s itself.
func (c *compiled[S]) closure(s S) map[S]bool {
	seen := make(map[S]bool)
	stack := slices.Clone(c.consumers[s])
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] || n == s {
			continue
		}
		seen[n] = true
		stack = append(stack, c.consumers[n]...)
	}
	return seen
}
