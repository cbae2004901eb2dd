package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	c := New("10.0.0.1:6379", "10.0.0.2:6379")
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "10.0.0.2:6379", c.ConnectionAt(1).Host())
	assert.Equal(t, []string{"10.0.0.1:6379", "10.0.0.2:6379"}, Hosts(c))
}

func TestConnHostFallback(t *testing.T) {
	assert.Equal(t, "shard-a", (&Conn{Name: "shard-a"}).Host())
	assert.Equal(t, "10.0.0.1:6379", (&Conn{Name: "shard-a", Addr: "10.0.0.1:6379"}).Host())
}

func TestFromConnectionsCopies(t *testing.T) {
	conns := []Connection{NewConn("a"), NewConn("b")}
	c := FromConnections(conns...)
	conns[0] = NewConn("z")
	assert.Equal(t, "a", c.ConnectionAt(0).Host())
}

func TestIndexesOf(t *testing.T) {
	c := New("a", "b", "a", "c")
	assert.Equal(t, []int{0, 2}, IndexesOf(c, "a"))
	assert.Equal(t, []int{3}, IndexesOf(c, "c"))
	assert.Nil(t, IndexesOf(c, "d"))
	assert.Empty(t, Hosts(New()))
}
