/*
Package router decides which shards of a cluster serve an operation.

A cluster client calls GetDB for every operation and dispatches it to the returned
indices. A nil key is a broadcast and yields every index. When an attempt fails and
the router is Retryable, the client calls GetDB again with RetryFor(failed) and the
router stops routing to that host until it is flushed back in.

Routers never do network I/O and never decide liveness on their own.
*/
package router

import (
	"fmt"

	"github.com/justloop/shardnav/cluster"
)

// Names of the routing strategies
const (
	StrategyConsistent = "consistent"
	StrategyPartition  = "partition"
)

// Operation is the operation being routed, e.g. "get" or "flushdb".
// Routers treat it as opaque.
type Operation interface{}

// Router selects the shard indices an operation should go to
type Router interface {
	// GetDB returns the indices of c to send op to.
	// A nil key returns every index, an empty cluster returns no index.
	GetDB(c cluster.Cluster, op Operation, key interface{}, opts ...Option) ([]int, error)

	// Retryable tells whether calling GetDB with RetryFor after a failed attempt can yield another shard
	Retryable() bool
}

// Options are the per call routing options
type Options struct {
	// Retrying is set when RetryFor was given
	Retrying bool
	// RetryFor is the index of the previously failed attempt
	RetryFor int
}

// Option configures a single GetDB call
type Option func(*Options)

// RetryFor reports that the attempt against index failed.
// The host at index must be part of the cluster the router first routed over,
// a consistent router returns ErrHostNotInCluster otherwise.
func RetryFor(index int) Option {
	return func(o *Options) {
		o.Retrying = true
		o.RetryFor = index
	}
}

// ApplyOptions folds opts into an Options value
func ApplyOptions(opts []Option) Options {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// All returns the indices [0, n)
func All(n int) []int {
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}
	return indexes
}

// KeyString returns the string form of key that gets hashed
func KeyString(key interface{}) string {
	switch k := key.(type) {
	case string:
		return k
	case []byte:
		return string(k)
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(k)
	}
}
