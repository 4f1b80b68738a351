package packing

import "errors"

var (
	// ErrInvalidArgument is returned when a Solution is built or mutated with out-of-range values.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInfeasible is returned when an item cannot be placed even into an empty box.
	ErrInfeasible = errors.New("impossible to add object to box")
	// ErrUnknownHeuristic is returned by Lookup for names that are not registered.
	ErrUnknownHeuristic = errors.New("unknown heuristic")
)
