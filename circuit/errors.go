package circuit

import "errors"

var (
	// ErrArity is returned when a function receives the wrong number of inputs
	ErrArity = errors.New("wrong number of inputs")

	// ErrInputType is returned when an input value has an unsupported type
	ErrInputType = errors.New("unsupported input type")

	// ErrUnknownFunction is returned when a circuit has no function with the given name
	ErrUnknownFunction = errors.New("unknown function")

	// ErrDuplicateFunction is returned when a name is already used in a circuit
	ErrDuplicateFunction = errors.New("function already defined")

	// ErrPort is returned when a port index is out of range
	ErrPort = errors.New("port out of range")

	// ErrInputTaken is returned when an input is already fed by another function
	ErrInputTaken = errors.New("input already connected")

	// ErrSelfLoop is returned when a function output is connected to its own input
	ErrSelfLoop = errors.New("function connected to itself")

	// ErrCycle is returned when functions cannot be ordered for evaluation
	ErrCycle = errors.New("circuit has a cycle")

	// ErrDepthExceeded is returned when a trace goes deeper than the configured bound
	ErrDepthExceeded = errors.New("trace depth exceeded")
)
