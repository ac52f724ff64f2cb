package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinRotates(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080", "http://c:8080"})

	assert.Equal(t, "http://a:8080", rr.Next())
	assert.Equal(t, "http://b:8080", rr.Next())
	assert.Equal(t, "http://c:8080", rr.Next())
	assert.Equal(t, "http://a:8080", rr.Next())
}

func TestRoundRobinEmptyPool(t *testing.T) {
	rr := NewRoundRobin(nil)
	assert.Equal(t, "", rr.Next())
}

func TestRoundRobinRemoveServer(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080"})
	rr.Next()
	rr.Next()

	rr.RemoveServer("http://b:8080")
	assert.Equal(t, []string{"http://a:8080"}, rr.Servers())
	assert.Equal(t, "http://a:8080", rr.Next())
	assert.Equal(t, "http://a:8080", rr.Next())
}

func TestRoundRobinAddServer(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080"})
	rr.AddServer("http://b:8080")
	assert.Len(t, rr.Servers(), 2)
}
