/*
Package discovery turns cluster membership changes into MemberEvents for the routers.

Events come either from a serf agent, converted by EventHandler, or from a Watcher
polling a Source such as the serf RPC client for the alive servers.
*/
package discovery

// Source returns a point-in-time list of the alive servers, format: [address:port]
type Source interface {
	AliveServers() ([]string, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func() ([]string, error)

// AliveServers implements Source
func (f SourceFunc) AliveServers() ([]string, error) {
	return f()
}
