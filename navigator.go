/*
Package shardnav is the entry point of the shard routing library, it wires a cluster,
a router and optionally a membership watcher together.

	nav, err := shardnav.New(&shardnav.Config{Strategy: "consistent"}, cluster.New("10.0.0.1:6379", "10.0.0.2:6379"))
	indexes, err := nav.Route("get", "user:42")
	// the attempt against indexes[0] failed
	indexes, err = nav.Retry("get", "user:42", indexes[0])
*/
package shardnav

import (
	"context"
	"fmt"
	"time"

	"github.com/justloop/shardnav/cluster"
	"github.com/justloop/shardnav/discovery"
	"github.com/justloop/shardnav/hashring"
	"github.com/justloop/shardnav/partition"
	"github.com/justloop/shardnav/router"
	log "github.com/sirupsen/logrus"
)

// logTag is the logging tag related to the navigator
var logTag = "shardnav.navigator"

// Navigator routes operations over one cluster
type Navigator struct {
	config    *Config
	cluster   cluster.Cluster
	router    router.Router
	startTime time.Time
}

// NewRouter builds the router selected by config.Strategy
func NewRouter(config *Config) (router.Router, error) {
	config = setDefaultConfig(config)
	switch config.Strategy {
	case router.StrategyConsistent:
		return router.NewConsistentHashingRouter(&router.Config{
			Replicas:           config.Replicas,
			ReconnectThreshold: config.ReconnectThreshold,
			Hash:               config.Hash,
			Metrics:            config.Metrics,
		})
	case router.StrategyPartition:
		fn, err := hashring.HashFuncByName(config.Hash)
		if err != nil {
			return nil, err
		}
		return partition.New(fn, config.Metrics), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, config.Strategy)
}

// New will create a Navigator routing over c
func New(config *Config, c cluster.Cluster) (*Navigator, error) {
	config = setDefaultConfig(config)
	r, err := NewRouter(config)
	if err != nil {
		return nil, err
	}
	log.WithField("tag", logTag).Infof("%s router created for %d hosts", config.Strategy, c.Len())
	return &Navigator{
		config:    config,
		cluster:   c,
		router:    r,
		startTime: time.Now(),
	}, nil
}

// Router returns the underlying router
func (n *Navigator) Router() router.Router {
	return n.router
}

// Cluster returns the cluster routed over
func (n *Navigator) Cluster() cluster.Cluster {
	return n.cluster
}

// Retryable reports whether Retry can pick another shard
func (n *Navigator) Retryable() bool {
	return n.router.Retryable()
}

// Route returns the shard indices for op on key, a nil key is a broadcast
func (n *Navigator) Route(op router.Operation, key interface{}) ([]int, error) {
	return n.router.GetDB(n.cluster, op, key)
}

// Retry reports the attempt against failed as failed and routes op again
func (n *Navigator) Retry(op router.Operation, key interface{}, failed int) ([]int, error) {
	if !n.router.Retryable() {
		return nil, ErrNotRetryable
	}
	return n.router.GetDB(n.cluster, op, key, router.RetryFor(failed))
}

// Flush puts every down host back in rotation, a no-op for routers without down hosts
func (n *Navigator) Flush() {
	if r, ok := n.router.(*router.ConsistentHashingRouter); ok {
		r.FlushDownConnections()
	}
}

// Watch polls source for membership changes and applies them to the router until ctx is done
func (n *Navigator) Watch(ctx context.Context, source discovery.Source) error {
	r, ok := n.router.(*router.ConsistentHashingRouter)
	if !ok {
		return ErrNotWatchable
	}
	watcher := discovery.NewWatcher(source, n.config.Discovery)
	watcher.AddEventHandler(router.NewEventHandler(r).Handler)
	return watcher.Run(ctx)
}

// WatchSerf connects to the serf agent at Discovery.RPCAddr and watches its alive members until ctx is done
func (n *Navigator) WatchSerf(ctx context.Context) error {
	if n.config.Discovery == nil || n.config.Discovery.RPCAddr == "" {
		return ErrNoDiscoveryAddr
	}
	client, err := discovery.NewSerfClient(n.config.Discovery.RPCAddr)
	if err != nil {
		return fmt.Errorf("connect serf agent %s: %w", n.config.Discovery.RPCAddr, err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			log.WithField("tag", logTag).Warnf("close serf client got error: %s", cerr)
		}
	}()
	return n.Watch(ctx, client)
}

// Debug will return the debug information of the navigator
func (n *Navigator) Debug() map[string]interface{} {
	debug := map[string]interface{}{}
	debug["strategy"] = n.config.Strategy
	debug["uptime"] = time.Since(n.startTime).Seconds()
	debug["hosts"] = cluster.Hosts(n.cluster)
	if r, ok := n.router.(*router.ConsistentHashingRouter); ok {
		debug["down"] = r.DownHosts()
		if ring := r.Ring(); ring != nil {
			debug["hashring"] = ring.GetNodes()
			debug["checksum"] = ring.Checksum()
		}
	}
	return debug
}
