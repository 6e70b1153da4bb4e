package worker

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(3, nil)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		require.True(t, p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		}))
	}
	p.Stop()
	require.Equal(t, 5, count)
}

func TestPoolStopped(t *testing.T) {
	p := NewPool(0, nil)
	p.Stop()
	p.Stop()
	require.False(t, p.Submit(func() { t.Fatal("must not run") }))
}

func TestPoolRecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	p := NewPool(1, slog.New(slog.NewTextHandler(&buf, nil)))

	require.True(t, p.Submit(func() { panic("boom") }))
	require.True(t, p.Submit(nil))

	done := make(chan struct{})
	require.True(t, p.Submit(func() { close(done) }))
	<-done
	p.Stop()

	require.Contains(t, buf.String(), "worker task panicked")
	require.Contains(t, buf.String(), "boom")
}
