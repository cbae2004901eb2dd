package hashring

import "errors"

// All the errors related to hashring
var (
	ErrEmptyRing       = errors.New("hash ring has no points")
	ErrInvalidReplicas = errors.New("replicas per node must be positive")
	ErrInvalidWeight   = errors.New("node weight must be positive")
	ErrUnknownHash     = errors.New("unknown hash function")
)
