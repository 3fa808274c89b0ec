// Package access implements the application-wide write-access coordination
// that the SDK table relies on. The table performs no locking of its own: it
// only asserts, through a Guard, that its caller is inside a write action.
package access

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrWriteAccessRequired is wrapped by the panic value raised on a write
// outside a write action.
var ErrWriteAccessRequired = errors.New("write access is required")

// Guard is the write-access token checked by mutating table operations.
type Guard interface {
	// AssertWriteAccessAllowed panics with *AccessViolation when the caller
	// does not hold write access.
	AssertWriteAccessAllowed()
}

// AccessViolation is the panic value for a write attempted without access.
// It is a programmer error and is not meant to be recovered in normal flow.
type AccessViolation struct {
	Op string
}

func (e *AccessViolation) Error() string {
	if e.Op == "" {
		return ErrWriteAccessRequired.Error()
	}
	return fmt.Sprintf("%s: %s", e.Op, ErrWriteAccessRequired)
}

func (e *AccessViolation) Unwrap() error {
	return ErrWriteAccessRequired
}

// Coordinator serializes writers against each other and against readers.
// Write actions are not reentrant; reads inside a write action must not call RunRead.
type Coordinator struct {
	mu      sync.RWMutex
	writing atomic.Bool
}

// NewCoordinator creates a coordinator with no active writer.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

var _ Guard = (*Coordinator)(nil)

// RunWrite runs fn with exclusive write access.
func (c *Coordinator) RunWrite(fn func()) {
	c.mu.Lock()
	c.writing.Store(true)
	defer func() {
		c.writing.Store(false)
		c.mu.Unlock()
	}()
	fn()
}

// RunWriteErr is RunWrite for functions that return an error.
func (c *Coordinator) RunWriteErr(fn func() error) error {
	var err error
	c.RunWrite(func() { err = fn() })
	return err
}

// RunRead runs fn while no writer is active. Multiple readers may run at once.
func (c *Coordinator) RunRead(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

// WriteAccessAllowed reports whether a write action is in progress.
func (c *Coordinator) WriteAccessAllowed() bool {
	return c.writing.Load()
}

// AssertWriteAccessAllowed panics unless called inside RunWrite.
func (c *Coordinator) AssertWriteAccessAllowed() {
	if !c.writing.Load() {
		panic(&AccessViolation{Op: "sdk table write"})
	}
}

type unchecked struct{}

func (unchecked) AssertWriteAccessAllowed() {}

// Unchecked returns a Guard that allows every write. For single-threaded
// tools and tests that own the table outright.
func Unchecked() Guard {
	return unchecked{}
}
