/*
Package partition is the modulo hashing router: a key always goes to hash(key) mod len(cluster).

It keeps no state and has no failover, a shard that is down has to be handled by the caller.
*/
package partition

import (
	"github.com/justloop/shardnav/cluster"
	"github.com/justloop/shardnav/hashring"
	"github.com/justloop/shardnav/router"
	log "github.com/sirupsen/logrus"
)

// logTag is logging tag for the partition Router
var logTag = "shardnav.partition"

// Router implements router.Router with modulo hashing
type Router struct {
	hashFunc hashring.HashFunc
	metrics  router.Metrics
}

// New will create a partition Router, a nil hashFunc selects CRC32 and nil metrics drops them
func New(hashFunc hashring.HashFunc, metrics router.Metrics) *Router {
	if hashFunc == nil {
		hashFunc = hashring.CRC32
	}
	if metrics == nil {
		metrics = router.NopMetrics()
	}
	return &Router{
		hashFunc: hashFunc,
		metrics:  metrics,
	}
}

// Retryable implements router.Router, the same key always maps to the same shard
func (p *Router) Retryable() bool {
	return false
}

// GetDB implements router.Router, RetryFor is ignored
func (p *Router) GetDB(c cluster.Cluster, op router.Operation, key interface{}, opts ...router.Option) ([]int, error) {
	if options := router.ApplyOptions(opts); options.Retrying {
		log.WithField("tag", logTag).Debugf("ignore retry for %d, partition routing cannot fail over", options.RetryFor)
	}
	if c.Len() == 0 {
		return []int{}, nil
	}
	if key == nil {
		p.metrics.RouteCompleted(router.StrategyPartition, true)
		return router.All(c.Len()), nil
	}
	p.metrics.RouteCompleted(router.StrategyPartition, false)
	return []int{p.Index(key, c.Len())}, nil
}

// Index returns the shard of key among n shards, n must be positive
func (p *Router) Index(key interface{}, n int) int {
	return int(p.hashFunc([]byte(router.KeyString(key))) % uint32(n))
}
