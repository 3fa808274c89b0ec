package table

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/sdk"
)

//go:generate mockery --name Listener --output ../mocks --outpkg mocks --with-expecter

// Listener observes table mutations. Callbacks run synchronously on the
// mutating goroutine, in registration order.
type Listener interface {
	SdkAdded(s *sdk.Sdk)
	// SdkRemoved runs before s leaves the table.
	SdkRemoved(s *sdk.Sdk)
	SdkRenamed(s *sdk.Sdk, previousName string)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Added   func(s *sdk.Sdk)
	Removed func(s *sdk.Sdk)
	Renamed func(s *sdk.Sdk, previousName string)
}

var _ Listener = ListenerFuncs{}

func (f ListenerFuncs) SdkAdded(s *sdk.Sdk) {
	if f.Added != nil {
		f.Added(s)
	}
}

func (f ListenerFuncs) SdkRemoved(s *sdk.Sdk) {
	if f.Removed != nil {
		f.Removed(s)
	}
}

func (f ListenerFuncs) SdkRenamed(s *sdk.Sdk, previousName string) {
	if f.Renamed != nil {
		f.Renamed(s, previousName)
	}
}

// ListenerID identifies a registered listener.
type ListenerID uuid.UUID

func (id ListenerID) String() string {
	return uuid.UUID(id).String()
}

// AddListener registers l and returns the handle for RemoveListener.
func (t *Table) AddListener(l Listener) ListenerID {
	return t.listeners.add(l)
}

// RemoveListener unregisters the listener. It reports whether id was registered.
func (t *Table) RemoveListener(id ListenerID) bool {
	return t.listeners.remove(id)
}

type registeredListener struct {
	id ListenerID
	l  Listener
}

// dispatcher fans events out to listeners. A panicking listener is logged
// and skipped; the remaining listeners still run.
type dispatcher struct {
	mu        sync.Mutex
	listeners []registeredListener
}

func (d *dispatcher) add(l Listener) ListenerID {
	id := ListenerID(uuid.New())
	d.mu.Lock()
	d.listeners = append(d.listeners, registeredListener{id: id, l: l})
	d.mu.Unlock()
	return id
}

func (d *dispatcher) remove(id ListenerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, rl := range d.listeners {
		if rl.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (d *dispatcher) snapshot() []registeredListener {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]registeredListener, len(d.listeners))
	copy(out, d.listeners)
	return out
}

func (d *dispatcher) added(s *sdk.Sdk) {
	d.each("added", func(l Listener) { l.SdkAdded(s) })
}

func (d *dispatcher) removed(s *sdk.Sdk) {
	d.each("removed", func(l Listener) { l.SdkRemoved(s) })
}

func (d *dispatcher) renamed(s *sdk.Sdk, previousName string) {
	d.each("renamed", func(l Listener) { l.SdkRenamed(s, previousName) })
}

func (d *dispatcher) each(event string, call func(Listener)) {
	for _, rl := range d.snapshot() {
		invoke(rl, event, call)
	}
}

func invoke(rl registeredListener, event string, call func(Listener)) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatTable, "listener panicked", "event", event, "listener", rl.id, "panic", fmt.Sprint(r))
		}
	}()
	call(rl.l)
}
