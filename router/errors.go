package router

import "errors"

// All the errors related to routing
var (
	// ErrHostListExhausted means every known host is marked down, keyed operations cannot be routed
	ErrHostListExhausted = errors.New("host list exhausted, every host is marked down")
	ErrIndexOutOfRange   = errors.New("retry index out of cluster range")
	ErrHostNotInCluster  = errors.New("ring host is not part of the cluster")
	ErrInvalidConfig     = errors.New("invalid router configuration")
)
