package hashring

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/dgryski/go-farm"
)

// point is one virtual node on the circle
type point struct {
	hash uint32
	node string
}

// Ring is the HashRing implementation over a sorted slice of points
type Ring struct {
	replicas int
	hashFunc HashFunc
	points   []point
	weights  map[string]int
	sync.RWMutex
}

// New will create an empty Ring giving every node replicas points per unit of weight.
// A nil hashFunc selects CRC32.
func New(replicas int, hashFunc HashFunc) (*Ring, error) {
	if replicas <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidReplicas, replicas)
	}
	if hashFunc == nil {
		hashFunc = CRC32
	}
	return &Ring{
		replicas: replicas,
		hashFunc: hashFunc,
		weights:  make(map[string]int),
	}, nil
}

// pointKey is the key hashed for the i-th virtual point of node
func pointKey(node string, i int) []byte {
	return []byte(node + "-" + strconv.Itoa(i))
}

// AddNode implements HashRing
func (r *Ring) AddNode(node string, weight int) error {
	if weight <= 0 {
		return fmt.Errorf("%w: node %s weight %d", ErrInvalidWeight, node, weight)
	}
	r.Lock()
	defer r.Unlock()

	if _, ok := r.weights[node]; ok {
		r.removePoints(node)
	}

	added := make([]point, r.replicas*weight)
	for i := range added {
		added[i] = point{hash: r.hashFunc(pointKey(node, i)), node: node}
	}
	sort.SliceStable(added, func(i, j int) bool { return added[i].hash < added[j].hash })

	r.points = merge(r.points, added)
	r.weights[node] = weight
	return nil
}

// merge combines two sorted point lists, on equal hashes points from older go first
func merge(older, newer []point) []point {
	merged := make([]point, 0, len(older)+len(newer))
	i, j := 0, 0
	for i < len(older) && j < len(newer) {
		if older[i].hash <= newer[j].hash {
			merged = append(merged, older[i])
			i++
		} else {
			merged = append(merged, newer[j])
			j++
		}
	}
	merged = append(merged, older[i:]...)
	return append(merged, newer[j:]...)
}

// RemoveNode implements HashRing
func (r *Ring) RemoveNode(node string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.weights[node]; !ok {
		return nil
	}
	r.removePoints(node)
	delete(r.weights, node)
	return nil
}

// removePoints drops the points of node keeping the order of the others, caller holds the lock
func (r *Ring) removePoints(node string) {
	kept := r.points[:0]
	for _, p := range r.points {
		if p.node != node {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(r.points); i++ {
		r.points[i] = point{}
	}
	r.points = kept
}

// HasNode implements HashRing
func (r *Ring) HasNode(node string) bool {
	r.RLock()
	defer r.RUnlock()
	_, ok := r.weights[node]
	return ok
}

// Weight returns the weight node was added with, 0 if absent
func (r *Ring) Weight(node string) int {
	r.RLock()
	defer r.RUnlock()
	return r.weights[node]
}

// GetNodes implements HashRing
func (r *Ring) GetNodes() []string {
	r.RLock()
	defer r.RUnlock()
	nodes := make([]string, 0, len(r.weights))
	for node := range r.weights {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}

// NumNodes implements HashRing
func (r *Ring) NumNodes() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.weights)
}

// NumPoints implements HashRing
func (r *Ring) NumPoints() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.points)
}

// GetNode implements HashRing
func (r *Ring) GetNode(key string) (string, error) {
	r.RLock()
	defer r.RUnlock()
	if len(r.points) == 0 {
		return "", ErrEmptyRing
	}
	hash := r.hashFunc([]byte(key))
	idx := sort.Search(len(r.points), func(i int) bool { return r.points[i].hash >= hash })
	if idx == len(r.points) {
		idx = 0
	}
	return r.points[idx].node, nil
}

// Checksum implements HashRing, the fingerprint covers every point in ring order
func (r *Ring) Checksum() uint32 {
	r.RLock()
	defer r.RUnlock()
	buf := make([]byte, 0, len(r.points)*24)
	var hash [4]byte
	for _, p := range r.points {
		binary.BigEndian.PutUint32(hash[:], p.hash)
		buf = append(buf, hash[:]...)
		buf = append(buf, p.node...)
		buf = append(buf, ';')
	}
	return farm.Fingerprint32(buf)
}
