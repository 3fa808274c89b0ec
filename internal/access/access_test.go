package access

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCoordinator_AssertOutsideWritePanics(t *testing.T) {
	c := NewCoordinator()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		violation, ok := r.(*AccessViolation)
		require.True(t, ok, "panic value should be *AccessViolation, got %T", r)
		require.True(t, errors.Is(violation, ErrWriteAccessRequired))
	}()

	c.AssertWriteAccessAllowed()
}

func TestCoordinator_AssertInsideWrite(t *testing.T) {
	c := NewCoordinator()

	c.RunWrite(func() {
		require.True(t, c.WriteAccessAllowed())
		require.NotPanics(t, c.AssertWriteAccessAllowed)
	})

	require.False(t, c.WriteAccessAllowed())
}

func TestCoordinator_AssertInsideReadPanics(t *testing.T) {
	c := NewCoordinator()

	c.RunRead(func() {
		require.Panics(t, c.AssertWriteAccessAllowed)
	})
}

func TestCoordinator_WriteReleasedAfterPanic(t *testing.T) {
	c := NewCoordinator()

	require.Panics(t, func() {
		c.RunWrite(func() { panic("listener blew up") })
	})

	require.False(t, c.WriteAccessAllowed())

	// Lock must have been released
	done := make(chan struct{})
	go func() {
		c.RunRead(func() {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "read lock not acquired after panicking writer")
	}
}

func TestCoordinator_RunWriteErr(t *testing.T) {
	c := NewCoordinator()
	want := errors.New("boom")

	err := c.RunWriteErr(func() error {
		c.AssertWriteAccessAllowed()
		return want
	})

	require.ErrorIs(t, err, want)
}

func TestCoordinator_ReadersRunConcurrently(t *testing.T) {
	c := NewCoordinator()

	var wg sync.WaitGroup
	inside := make(chan struct{}, 2)
	release := make(chan struct{})

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RunRead(func() {
				inside <- struct{}{}
				<-release
			})
		}()
	}

	for i := 0; i < 2; i++ {
		select {
		case <-inside:
		case <-time.After(time.Second):
			require.Fail(t, "readers should not block each other")
		}
	}
	close(release)
	wg.Wait()
}

func TestUnchecked(t *testing.T) {
	require.NotPanics(t, Unchecked().AssertWriteAccessAllowed)
}

func TestAccessViolation_Error(t *testing.T) {
	require.Equal(t, "write access is required", (&AccessViolation{}).Error())
	require.Equal(t, "add: write access is required", (&AccessViolation{Op: "add"}).Error())
}
