package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopBeforeStart(t *testing.T) {
	s := NewServer(nil, nil, time.Second, time.Second, time.Second)
	assert.NoError(t, s.Stop(context.Background()))
}

func TestStartStop(t *testing.T) {
	s := NewServer(nil, nil, time.Second, time.Second, time.Second)

	done := make(chan error, 1)
	go func() { done <- s.Start("127.0.0.1:0") }()

	require.Eventually(t, func() bool { return s.GetServer() != nil }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
