package router

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/justloop/shardnav/cluster"
	"github.com/justloop/shardnav/hashring"
	log "github.com/sirupsen/logrus"
)

// logTag is the logging tag for the routers
var logTag = "shardnav.router"

// ConsistentHashingRouter routes keys with a consistent hashing ring built from the cluster hosts.
// Hosts reported as failed through RetryFor leave the ring until the down hosts are flushed,
// either explicitly or after ReconnectThreshold calls.
type ConsistentHashingRouter struct {
	config   *Config
	hashFunc hashring.HashFunc

	// ring is nil until the first call that sees a non-empty cluster
	ring *hashring.Ring

	// known is the set of hosts the ring was built from
	known map[string]struct{}

	// down are the excluded connections by host
	down map[string]cluster.Connection

	// attempts is the number of GetDB calls since the last automatic flush
	attempts int

	mu sync.Mutex
}

// NewConsistentHashingRouter will create a router, a nil config uses all the defaults
func NewConsistentHashingRouter(config *Config) (*ConsistentHashingRouter, error) {
	config, err := setDefaultConfig(config)
	if err != nil {
		return nil, err
	}
	fn, err := hashring.HashFuncByName(config.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	// fail now rather than on the first call
	if _, err := hashring.New(config.Replicas, fn); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &ConsistentHashingRouter{
		config:   config,
		hashFunc: fn,
		down:     make(map[string]cluster.Connection),
	}, nil
}

// Retryable implements Router, a failed host leaves the ring so a retry lands elsewhere
func (r *ConsistentHashingRouter) Retryable() bool {
	return true
}

// GetDB implements Router
func (r *ConsistentHashingRouter) GetDB(c cluster.Cluster, op Operation, key interface{}, opts ...Option) ([]int, error) {
	options := ApplyOptions(opts)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ring == nil && c.Len() > 0 {
		if err := r.buildRing(c); err != nil {
			return nil, err
		}
	}

	r.attempts++
	if r.attempts > r.config.ReconnectThreshold {
		r.flush()
		r.attempts = 0
	}

	if options.Retrying {
		if options.RetryFor < 0 || options.RetryFor >= c.Len() {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, options.RetryFor, c.Len())
		}
		conn := c.ConnectionAt(options.RetryFor)
		if _, ok := r.known[conn.Host()]; !ok {
			return nil, fmt.Errorf("%w: retry host %s was not in the cluster the ring was built from", ErrHostNotInCluster, conn.Host())
		}
		r.markDown(conn)
	}

	if c.Len() == 0 {
		return []int{}, nil
	}

	if key == nil {
		r.config.Metrics.RouteCompleted(StrategyConsistent, true)
		return All(c.Len()), nil
	}

	host, err := r.ring.GetNode(KeyString(key))
	if errors.Is(err, hashring.ErrEmptyRing) {
		r.config.Metrics.HostListExhausted()
		log.WithField("tag", logTag).Warnf("all %d hosts are down, cannot route op %v", len(r.down), op)
		return nil, fmt.Errorf("%w: %d hosts down", ErrHostListExhausted, len(r.down))
	}
	if err != nil {
		return nil, err
	}

	indexes := cluster.IndexesOf(c, host)
	if len(indexes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrHostNotInCluster, host)
	}
	r.config.Metrics.RouteCompleted(StrategyConsistent, false)
	return indexes, nil
}

// buildRing seeds the ring with every host of c that is not down, caller holds the lock
func (r *ConsistentHashingRouter) buildRing(c cluster.Cluster) error {
	ring, err := hashring.New(r.config.Replicas, r.hashFunc)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, c.Len())
	for i := 0; i < c.Len(); i++ {
		host := c.ConnectionAt(i).Host()
		known[host] = struct{}{}
		if _, isDown := r.down[host]; isDown {
			continue
		}
		if err := ring.AddNode(host, 1); err != nil {
			return err
		}
	}
	for host := range r.down {
		if _, ok := known[host]; !ok {
			delete(r.down, host)
		}
	}
	r.ring = ring
	r.known = known
	r.config.Metrics.DownHosts(len(r.down))
	log.WithField("tag", logTag).Infof("hash ring built with %d hosts, %d down", ring.NumNodes(), len(r.down))
	return nil
}

// MarkConnectionAsDown removes the host of conn from the ring until the next flush.
// Marking a down connection again is a no-op.
func (r *ConsistentHashingRouter) MarkConnectionAsDown(conn cluster.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markDown(conn)
}

// MarkHostDown is MarkConnectionAsDown for a bare host
func (r *ConsistentHashingRouter) MarkHostDown(host string) {
	r.MarkConnectionAsDown(cluster.NewConn(host))
}

// markDown records conn as down, caller holds the lock
func (r *ConsistentHashingRouter) markDown(conn cluster.Connection) {
	host := conn.Host()
	if _, isDown := r.down[host]; isDown {
		return
	}
	if r.ring != nil {
		if _, ok := r.known[host]; !ok {
			log.WithField("tag", logTag).Debugf("ignore down host %s, not part of the ring", host)
			return
		}
		_ = r.ring.RemoveNode(host)
	}
	r.down[host] = conn
	r.config.Metrics.HostMarkedDown(host)
	r.config.Metrics.DownHosts(len(r.down))
	log.WithField("tag", logTag).Warnf("host %s marked down, %d hosts down", host, len(r.down))
}

// FlushDownConnections puts every down host back into the ring.
// It does not check reachability, a dead host is marked down again on its next failure.
// Re-admitted hosts count as new insertions: where one of their points shares a position
// with a point that stayed on the ring, the staying point now wins, so such keys may keep
// their failover owner after the flush.
func (r *ConsistentHashingRouter) FlushDownConnections() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flush()
}

// ReadmitHost puts a single down host back into the ring, other down hosts stay excluded.
// A host that is not down is a no-op.
func (r *ConsistentHashingRouter) ReadmitHost(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, isDown := r.down[host]; !isDown {
		return
	}
	delete(r.down, host)
	if r.ring != nil {
		if _, ok := r.known[host]; ok {
			_ = r.ring.AddNode(host, 1)
		}
	}
	r.config.Metrics.Flushed(1)
	r.config.Metrics.DownHosts(len(r.down))
	log.WithField("tag", logTag).Infof("host %s readmitted into the ring, %d hosts down", host, len(r.down))
}

// flush re-admits the down hosts in host order, caller holds the lock
func (r *ConsistentHashingRouter) flush() {
	if len(r.down) == 0 {
		return
	}
	hosts := r.downHosts()
	if r.ring != nil {
		for _, host := range hosts {
			_ = r.ring.AddNode(host, 1)
		}
	}
	r.down = make(map[string]cluster.Connection)
	r.config.Metrics.Flushed(len(hosts))
	r.config.Metrics.DownHosts(0)
	log.WithField("tag", logTag).Infof("flushed %d down hosts back into the ring: %v", len(hosts), hosts)
}

// DownHosts returns the sorted hosts currently excluded from the ring
func (r *ConsistentHashingRouter) DownHosts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.downHosts()
}

func (r *ConsistentHashingRouter) downHosts() []string {
	hosts := make([]string, 0, len(r.down))
	for host := range r.down {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

// Ring returns the current ring, nil before the first call with a non-empty cluster
func (r *ConsistentHashingRouter) Ring() hashring.HashRing {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ring == nil {
		return nil
	}
	return r.ring
}

// Attempts returns the number of GetDB calls since the last automatic flush
func (r *ConsistentHashingRouter) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}
