package shardnav

import "errors"

var (
	// ErrUnknownStrategy indicates the configured routing strategy does not exist
	ErrUnknownStrategy = errors.New("unknown routing strategy")
	// ErrNotRetryable indicates the router has no alternative shard for a failed attempt
	ErrNotRetryable = errors.New("router is not retryable")
	// ErrNotWatchable indicates the router cannot follow membership events
	ErrNotWatchable = errors.New("router does not support membership events")
	// ErrNoDiscoveryAddr indicates WatchSerf was called without a serf RPC address
	ErrNoDiscoveryAddr = errors.New("no discovery rpc address configured")
)
