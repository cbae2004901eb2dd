package hashring

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRing(t *testing.T, replicas int, nodes ...string) *Ring {
	ring, err := New(replicas, nil)
	require.Nil(t, err, "create Ring return error")
	for _, node := range nodes {
		require.Nil(t, ring.AddNode(node, 1), "add node return error")
	}
	return ring
}

func TestNew(t *testing.T) {
	ring, err := New(5, nil)
	assert.Nil(t, err)
	assert.Equal(t, 0, ring.NumNodes())

	_, err = New(0, nil)
	assert.True(t, errors.Is(err, ErrInvalidReplicas))
	_, err = New(-3, CRC32)
	assert.True(t, errors.Is(err, ErrInvalidReplicas))
}

func TestAddNode(t *testing.T) {
	ring := newRing(t, 5, "192.168.0.1")
	assert.Equal(t, 1, ring.NumNodes())
	assert.Equal(t, 5, ring.NumPoints())
	assert.True(t, ring.HasNode("192.168.0.1"))

	err := ring.AddNode("192.168.0.2", 0)
	assert.True(t, errors.Is(err, ErrInvalidWeight))
	err = ring.AddNode("192.168.0.2", -1)
	assert.True(t, errors.Is(err, ErrInvalidWeight))
	assert.Equal(t, 1, ring.NumNodes())
}

func TestAddNodeWeighted(t *testing.T) {
	ring := newRing(t, 10)
	assert.Nil(t, ring.AddNode("heavy", 3))
	assert.Nil(t, ring.AddNode("light", 1))
	assert.Equal(t, 40, ring.NumPoints())
	assert.Equal(t, 3, ring.Weight("heavy"))
	assert.Equal(t, 0, ring.Weight("missing"))
}

func TestAddNodeTwiceReplacesPoints(t *testing.T) {
	ring := newRing(t, 8, "a", "b")
	before := ring.Checksum()

	assert.Nil(t, ring.AddNode("a", 1))
	assert.Equal(t, 16, ring.NumPoints())
	assert.Equal(t, before, ring.Checksum())

	assert.Nil(t, ring.AddNode("a", 2))
	assert.Equal(t, 24, ring.NumPoints())
}

func TestRemoveNode(t *testing.T) {
	ring := newRing(t, 5, "192.168.0.1")

	assert.Nil(t, ring.RemoveNode("192.168.0.1"))
	assert.Equal(t, 0, ring.NumNodes())
	assert.Equal(t, 0, ring.NumPoints())

	assert.Nil(t, ring.RemoveNode("192.168.0.9"), "removing a missing node should be a no-op")
}

func TestEmptyRing(t *testing.T) {
	ring := newRing(t, 5)
	_, err := ring.GetNode("test")
	assert.Equal(t, ErrEmptyRing, err)

	_ = ring.AddNode("a", 1)
	_ = ring.RemoveNode("a")
	_, err = ring.GetNode("test")
	assert.Equal(t, ErrEmptyRing, err)
}

func TestLookup(t *testing.T) {
	ring := newRing(t, 2, "192.168.0.1", "192.168.0.2", "192.168.0.3")

	node, err := ring.GetNode("test")
	assert.Nil(t, err, "GetNode return error")
	assert.Contains(t, ring.GetNodes(), node)

	for i := 0; i < 100; i++ {
		again, err := ring.GetNode("test")
		assert.Nil(t, err)
		assert.Equal(t, node, again, "lookup is not deterministic")
	}
}

func TestGetNodesSorted(t *testing.T) {
	ring := newRing(t, 2, "c", "a", "b")
	assert.Equal(t, []string{"a", "b", "c"}, ring.GetNodes())
}

// fixedHash places the given keys at fixed positions, everything else at 0
func fixedHash(positions map[string]uint32) HashFunc {
	return func(key []byte) uint32 {
		return positions[string(key)]
	}
}

func TestLookupWrap(t *testing.T) {
	ring, err := New(1, fixedHash(map[string]uint32{
		"a-0": 100,
		"b-0": 200,
		"k1":  150,
		"k2":  250,
	}))
	require.Nil(t, err)
	_ = ring.AddNode("a", 1)
	_ = ring.AddNode("b", 1)

	node, _ := ring.GetNode("k1")
	assert.Equal(t, "b", node)
	node, _ = ring.GetNode("k2")
	assert.Equal(t, "a", node, "lookup past the last point should wrap")
	node, _ = ring.GetNode("unknown")
	assert.Equal(t, "a", node)
}

func TestTieBreakFirstInsertedWins(t *testing.T) {
	ring, err := New(1, fixedHash(map[string]uint32{
		"a-0": 100,
		"b-0": 100,
		"k":   50,
	}))
	require.Nil(t, err)
	_ = ring.AddNode("a", 1)
	_ = ring.AddNode("b", 1)

	node, _ := ring.GetNode("k")
	assert.Equal(t, "a", node)

	// re-adding counts as a fresh insertion
	_ = ring.RemoveNode("a")
	_ = ring.AddNode("a", 1)
	node, _ = ring.GetNode("k")
	assert.Equal(t, "b", node)
}

func TestBoundedRemapping(t *testing.T) {
	ring := newRing(t, 100, "A", "B", "C")

	owners := make(map[string]string, 10000)
	for i := 0; i < 10000; i++ {
		key := "key-" + strconv.Itoa(i)
		owner, err := ring.GetNode(key)
		require.Nil(t, err)
		owners[key] = owner
	}

	_ = ring.RemoveNode("B")

	moved := 0
	for key, before := range owners {
		after, err := ring.GetNode(key)
		require.Nil(t, err)
		if after != before {
			moved++
			assert.Equal(t, "B", before, "key %s moved away from a surviving node", key)
		}
		assert.NotEqual(t, "B", after)
	}
	assert.True(t, moved > 0, "removing B should move its keys")
}

func TestCheckSum(t *testing.T) {
	ring := newRing(t, 10, "a", "b")
	sum := ring.Checksum()
	assert.Equal(t, sum, ring.Checksum())

	_ = ring.RemoveNode("b")
	assert.NotEqual(t, sum, ring.Checksum())
	_ = ring.AddNode("b", 1)
	assert.Equal(t, sum, ring.Checksum())
}

func shuffle(a []string) {
	for i := range a {
		j := rand.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

func TestConsistent(t *testing.T) {
	nodeCounts := []int{3, 5, 10, 20}
	for _, nodeCount := range nodeCounts {
		nodes := []string{}
		for n := 0; n < nodeCount; n++ {
			nodes = append(nodes, "10.10.3."+strconv.Itoa(n)+":7496")
		}
		shuffle(nodes)
		ring1 := newRing(t, 50, nodes...)
		shuffle(nodes)
		ring2 := newRing(t, 50, nodes...)

		assert.Equal(t, ring1.GetNodes(), ring2.GetNodes())
		for i := 0; i < 300; i++ {
			for j := 0; j < 30; j++ {
				key := strconv.Itoa(i) + "," + strconv.Itoa(j)
				server1, _ := ring1.GetNode(key)
				server2, _ := ring2.GetNode(key)
				assert.Equal(t, server1, server2)
			}
		}
	}
}

func TestHashFuncByName(t *testing.T) {
	for _, name := range HashNames() {
		fn, err := HashFuncByName(name)
		assert.Nil(t, err, name)
		assert.Equal(t, fn([]byte("key")), fn([]byte("key")), name)
	}

	fn, err := HashFuncByName("")
	assert.Nil(t, err)
	assert.Equal(t, CRC32([]byte("key")), fn([]byte("key")))

	_, err = HashFuncByName("md4")
	assert.True(t, errors.Is(err, ErrUnknownHash))
	assert.Equal(t, []string{HashBlake2b, HashCRC32, HashFarm, HashXXHash}, HashNames())
}

func BenchmarkRing_GetNode(b *testing.B) {
	b.StopTimer()
	ring, _ := New(100, nil)
	for n := 0; n < 100; n++ {
		_ = ring.AddNode("10.10.3."+strconv.Itoa(n)+":7496", 1)
	}
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		_, _ = ring.GetNode("test" + strconv.Itoa(i))
	}
}
