package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	cb := NewCircuitBreaker("api", 3, time.Minute)
	fail := func() error { return errors.New("boom") }

	for i := 0; i < 3; i++ {
		assert.Error(t, cb.Call(fail))
	}
	assert.Equal(t, StateOpen, cb.State())

	// Open circuit rejects without invoking the function
	called := false
	err := cb.Call(func() error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestCircuitBreakerSuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker("api", 3, time.Minute)
	fail := func() error { return errors.New("boom") }
	ok := func() error { return nil }

	require.Error(t, cb.Call(fail))
	require.Error(t, cb.Call(fail))
	require.NoError(t, cb.Call(ok))
	require.Error(t, cb.Call(fail))
	require.Error(t, cb.Call(fail))

	// Two failures after the reset are below the threshold
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("api", 1, 10*time.Millisecond)
	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	ok := func() error { return nil }
	for i := 0; i < halfOpenSuccesses; i++ {
		require.NoError(t, cb.Call(ok))
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("api", 1, 10*time.Millisecond)
	require.Error(t, cb.Call(func() error { return errors.New("boom") }))

	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Call(func() error { return errors.New("still down") }))
	assert.Equal(t, StateOpen, cb.State())
}

func TestServiceFromPath(t *testing.T) {
	assert.Equal(t, "api", ServiceFromPath("/products/1/like"))
	assert.Equal(t, "api", ServiceFromPath("/articles"))
	assert.Equal(t, "api", ServiceFromPath("/auth/login"))
	assert.Equal(t, "api", ServiceFromPath("/users/me"))
	assert.Equal(t, "", ServiceFromPath("/health"))
	assert.Equal(t, "", ServiceFromPath("/"))
}
