package shardnav

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/justloop/shardnav/discovery"
	"github.com/justloop/shardnav/router"
	"github.com/justloop/shardnav/utils"
)

// Config is the configuration related to a Navigator
type Config struct {
	// Strategy is the routing strategy, consistent or partition, optional, default consistent
	Strategy string `yaml:"strategy"`

	// Replicas is the number of virtual points per host, optional, default 100
	Replicas int `yaml:"replicas"`

	// ReconnectThreshold is the number of routing calls between automatic flushes of down hosts,
	// optional, default 100000
	ReconnectThreshold int `yaml:"reconnect_threshold"`

	// Hash is the hash function name, one of crc32, farm, xxhash, blake2b, optional, default crc32
	Hash string `yaml:"hash"`

	// Discovery is the membership polling configuration, optional
	Discovery *discovery.Config `yaml:"discovery"`

	// Metrics receives routing events, optional, default no metrics
	Metrics router.Metrics `yaml:"-"`
}

// setDefaultConfig returns a copy of config with defaults filled in
func setDefaultConfig(config *Config) *Config {
	c := Config{}
	if config != nil {
		c = *config
	}
	c.Strategy = utils.SelectString(c.Strategy, router.StrategyConsistent)
	if c.Metrics == nil {
		c.Metrics = router.NopMetrics()
	}
	return &c
}

// ParseConfig reads a YAML encoded Config
func ParseConfig(data []byte) (*Config, error) {
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

// LoadConfig reads a YAML encoded Config from path
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}
