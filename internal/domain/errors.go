package domain

import "errors"

// ErrInvariant marks a broken planner or requirement-tree invariant. It always
// points at a bug in the caller or the engine, never at user input, and the
// operation that produced it must not be persisted.
var ErrInvariant = errors.New("invariant violation")

// ErrInvalidRequirement is returned when a requirement list edit would break
// the AT_LEAST count rule.
var ErrInvalidRequirement = errors.New("invalid requirement list")
