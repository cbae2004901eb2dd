package router

import (
	"fmt"

	"github.com/justloop/shardnav/hashring"
	"github.com/justloop/shardnav/utils"
)

const (
	// DefaultReplicas is the default number of virtual points per host
	DefaultReplicas = 100
	// DefaultReconnectThreshold is the default number of GetDB calls between automatic flushes
	DefaultReconnectThreshold = 100000
)

// Config is the configuration of a ConsistentHashingRouter
type Config struct {
	// Replicas is the number of virtual points per host, optional, default 100
	Replicas int `yaml:"replicas"`

	// ReconnectThreshold is the number of GetDB calls after which down hosts are flushed back in,
	// optional, default 100000
	ReconnectThreshold int `yaml:"reconnect_threshold"`

	// Hash is the name of the ring hash function, optional, default crc32
	Hash string `yaml:"hash"`

	// Metrics receives routing events, optional, default no metrics
	Metrics Metrics `yaml:"-"`
}

// setDefaultConfig returns a copy of config with defaults filled in
func setDefaultConfig(config *Config) (*Config, error) {
	c := Config{}
	if config != nil {
		c = *config
	}
	if c.Replicas < 0 {
		return nil, fmt.Errorf("%w: replicas %d", ErrInvalidConfig, c.Replicas)
	}
	if c.ReconnectThreshold < 0 {
		return nil, fmt.Errorf("%w: reconnect threshold %d", ErrInvalidConfig, c.ReconnectThreshold)
	}
	c.Replicas = utils.SelectInt(c.Replicas, DefaultReplicas)
	c.ReconnectThreshold = utils.SelectInt(c.ReconnectThreshold, DefaultReconnectThreshold)
	c.Hash = utils.SelectString(c.Hash, hashring.DefaultHash)
	if c.Metrics == nil {
		c.Metrics = NopMetrics()
	}
	return &c, nil
}
