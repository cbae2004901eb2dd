package discovery

import (
	"time"

	"github.com/justloop/shardnav/utils"
)

// DefaultPollInterval is the default interval between two Source polls
const DefaultPollInterval = time.Second

// Config is the configuration related to discovery module
type Config struct {
	// RPCAddr is the address of the serf agent RPC endpoint, format: [address:port]
	RPCAddr string `yaml:"rpc_addr"`

	// PollInterval is the frequency to check for membership changes, optional, default 1 second
	PollInterval time.Duration `yaml:"poll_interval"`
}

// setDefaultConfig returns a copy of config with defaults filled in
func setDefaultConfig(config *Config) *Config {
	c := Config{}
	if config != nil {
		c = *config
	}
	c.PollInterval = utils.SelectDuration(c.PollInterval, DefaultPollInterval)
	return &c
}
