package stage

import (
	"errors"
	"fmt"
)

var (
	ErrUndeclared   = errors.New("undeclared state")
	ErrDuplicate    = errors.New("state declared twice")
	ErrNoResource   = errors.New("no resource registered")
	ErrCycle        = errors.New("teardown graph is cyclic")
	ErrNotConverged = errors.New("no fixed point within pass limit")
	ErrNotDestroyed = errors.New("resource still live after destroy")
)

// ConfigError reports a graph that cannot be registered.
type ConfigError struct {
	State string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("stage config: %s: %v", e.State, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StateError ties a handler failure to the state that produced it.
type StateError struct {
	State string
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.State, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}
