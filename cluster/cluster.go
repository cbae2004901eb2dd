/*
Package cluster is the narrow view of a sharded backend that routers work on.

A Cluster is an ordered, index addressable list of connections. Routers return
indices into it, so the caller must not reorder a cluster between asking for a
route and using it.
*/
package cluster

// Connection is one backend shard, identified by its host
type Connection interface {
	// Host returns the identity used as the hash ring node key, format: [address:port].
	Host() string
}

// Cluster is the ordered collection of connections a router routes over
type Cluster interface {
	// Len returns the number of shards
	Len() int

	// ConnectionAt returns the connection at index, 0 <= index < Len()
	ConnectionAt(index int) Connection
}

// Conn is the default Connection implementation
type Conn struct {
	// Name is an optional human readable name of the shard
	Name string
	// Addr is the address of the shard, format: [address:port]
	Addr string
}

// NewConn creates a Conn for the given address
func NewConn(addr string) *Conn {
	return &Conn{Addr: addr}
}

// Host implements Connection, falls back to the name when no address is set
func (c *Conn) Host() string {
	if c.Addr == "" {
		return c.Name
	}
	return c.Addr
}

// Static is an immutable slice backed Cluster
type Static struct {
	conns []Connection
}

// New will create a Static cluster with one Conn per host, in the given order
func New(hosts ...string) *Static {
	conns := make([]Connection, len(hosts))
	for i, host := range hosts {
		conns[i] = NewConn(host)
	}
	return &Static{conns: conns}
}

// FromConnections will create a Static cluster over already built connections
func FromConnections(conns ...Connection) *Static {
	copied := make([]Connection, len(conns))
	copy(copied, conns)
	return &Static{conns: copied}
}

// Len implements Cluster
func (s *Static) Len() int {
	return len(s.conns)
}

// ConnectionAt implements Cluster
func (s *Static) ConnectionAt(index int) Connection {
	return s.conns[index]
}

// Hosts returns the hosts of c in index order
func Hosts(c Cluster) []string {
	hosts := make([]string, c.Len())
	for i := range hosts {
		hosts[i] = c.ConnectionAt(i).Host()
	}
	return hosts
}

// IndexesOf returns every index of c whose connection has the given host.
// A cluster holding duplicate host entries yields more than one index.
func IndexesOf(c Cluster, host string) []int {
	var indexes []int
	for i := 0; i < c.Len(); i++ {
		if c.ConnectionAt(i).Host() == host {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
