/*
Package hashring is a weighted consistent hashing ring, used by the routers to map keys onto hosts.

Every node owns replicas*weight virtual points, point i of node n sits at hash("n-i").
Lookups pick the first point clockwise from hash(key), wrapping past the end of the circle.

Points are kept sorted by hash. When two points land on exactly the same position
the one inserted first precedes the other and wins every lookup for that position.
Re-adding a node counts as a new insertion, so its colliding points lose to the
points that stayed on the ring. With 32 bit hashes this is rare enough to accept.
*/
package hashring

// HashRing is the consistent hashing ring with virtual nodes
type HashRing interface {

	// Checksum will return the checksum of the current ring state, using farmhash
	Checksum() uint32

	// AddNode will add one node with the given weight, node format: [address:port].
	// Adding an existing node replaces its points.
	AddNode(node string, weight int) error

	// RemoveNode will remove one node and all its points, a missing node is a no-op
	RemoveNode(node string) error

	// HasNode returns whether node currently owns points on the ring
	HasNode(node string) bool

	// GetNodes return the sorted list of nodes in the ring
	GetNodes() []string

	// NumNodes return the number of nodes in the ring
	NumNodes() int

	// NumPoints return the number of virtual points in the ring
	NumPoints() int

	// GetNode return the node owning key, ErrEmptyRing if the ring has no points
	GetNode(key string) (string, error)
}
