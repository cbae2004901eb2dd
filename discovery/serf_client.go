package discovery

import (
	"net"
	"strconv"

	"github.com/hashicorp/serf/client"
)

// SerfClient is the Source reading membership from a serf agent over RPC
type SerfClient struct {
	c *client.RPCClient
}

// NewSerfClient will create a new client connected to the agent RPC address
func NewSerfClient(addr string) (*SerfClient, error) {
	rpcCli, err := client.NewRPCClient(addr)
	if err != nil {
		return nil, err
	}
	return &SerfClient{
		c: rpcCli,
	}, nil
}

// Servers will return every known server regardless of its status
func (s *SerfClient) Servers() ([]string, error) {
	members, err := s.c.Members()
	if err != nil {
		return nil, err
	}
	return getClientServers(members), nil
}

// AliveServers implements Source
func (s *SerfClient) AliveServers() ([]string, error) {
	members, err := s.c.MembersFiltered(map[string]string{}, "alive", "")
	if err != nil {
		return nil, err
	}
	return getClientServers(members), nil
}

// Close will close the client session
func (s *SerfClient) Close() error {
	return s.c.Close()
}

func getClientServers(members []client.Member) []string {
	servers := make([]string, 0, len(members))
	for _, member := range members {
		servers = append(servers, net.JoinHostPort(member.Addr.String(), strconv.Itoa(int(member.Port))))
	}
	return servers
}
