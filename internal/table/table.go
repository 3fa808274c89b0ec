// Package table is the SDK registry: an ordered set of uniquely named SDKs
// with synchronous change notification, lazily resolved hint-derived
// entries and a record-level persistence round trip.
//
// Mutations must run while the caller holds write access (see package
// access); the table asserts that precondition and does no locking of its
// own over the collection. Reads are safe concurrently with other reads.
package table

import (
	"fmt"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/sdktable/internal/access"
	"github.com/zjrosen/sdktable/internal/hints"
	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/pubsub"
	"github.com/zjrosen/sdktable/internal/sdk"
	"github.com/zjrosen/sdktable/internal/sdk/sdktypes"
)

// PresentableName is the human-facing title of the table.
const PresentableName = "SDK Table"

// DefaultHintPrefix is prepended to names when asking the hint source for a home.
const DefaultHintPrefix = "jdk"

// Table holds the registered SDKs.
type Table struct {
	guard access.Guard
	sdks  []*sdk.Sdk

	internalMu       sync.Mutex
	internal         *sdk.Sdk
	internalProvider func() *sdk.Sdk

	types       *sdk.Types
	hints       hints.Source
	hintPrefix  string
	defaultType string
	tracer      trace.Tracer

	derivedMu sync.Mutex
	derived   map[DerivedKey]*sdk.Sdk

	listeners dispatcher
	broker    *pubsub.Broker[Change]

	// SDKs whose removal listeners are running
	removing map[*sdk.Sdk]struct{}
}

// Option configures a Table.
type Option func(*Table)

// WithTypes sets the validators consulted by FindDerived.
func WithTypes(types *sdk.Types) Option {
	return func(t *Table) { t.types = types }
}

// WithHints sets where FindDerived looks for SDK homes.
func WithHints(src hints.Source) Option {
	return func(t *Table) { t.hints = src }
}

// WithHintPrefix overrides DefaultHintPrefix.
func WithHintPrefix(prefix string) Option {
	return func(t *Table) { t.hintPrefix = prefix }
}

// WithDefaultType sets the type FindDerived uses when none is given.
func WithDefaultType(typeName string) Option {
	return func(t *Table) { t.defaultType = typeName }
}

// WithInternalProvider sets the constructor for the internal SDK.
func WithInternalProvider(fn func() *sdk.Sdk) Option {
	return func(t *Table) { t.internalProvider = fn }
}

// WithTracer sets the tracer used for derived lookups.
func WithTracer(tracer trace.Tracer) Option {
	return func(t *Table) { t.tracer = tracer }
}

// WithBroker publishes a Change for every mutation after listeners ran.
func WithBroker(b *pubsub.Broker[Change]) Option {
	return func(t *Table) { t.broker = b }
}

// New creates an empty table. A nil guard allows every write.
func New(guard access.Guard, opts ...Option) *Table {
	if guard == nil {
		guard = access.Unchecked()
	}
	t := &Table{
		guard:            guard,
		internalProvider: sdktypes.InternalGo,
		types:            sdk.NewTypes(),
		hints:            hints.Static(nil),
		hintPrefix:       DefaultHintPrefix,
		defaultType:      sdktypes.DefaultTypeName,
		tracer:           noop.NewTracerProvider().Tracer("table"),
		derived:          make(map[DerivedKey]*sdk.Sdk),
		removing:         make(map[*sdk.Sdk]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Find returns the registered SDK with exactly this name.
func (t *Table) Find(name string) (*sdk.Sdk, bool) {
	if i := t.indexOfName(name); i >= 0 {
		return t.sdks[i], true
	}
	return nil, false
}

// Count returns the number of registered SDKs.
func (t *Table) Count() int {
	return len(t.sdks)
}

// All returns a snapshot of the registered SDKs in insertion order.
func (t *Table) All() []*sdk.Sdk {
	return slices.Clone(t.sdks)
}

// Types returns the validators known to the table.
func (t *Table) Types() *sdk.Types {
	return t.types
}

// Add registers s and notifies listeners with the same pointer.
func (t *Table) Add(s *sdk.Sdk) error {
	t.guard.AssertWriteAccessAllowed()

	if s == nil {
		return sdk.ErrNilSdk
	}
	if s.Name() == "" {
		return sdk.ErrEmptyName
	}
	if t.indexOfName(s.Name()) >= 0 {
		return fmt.Errorf("%w: %q", sdk.ErrDuplicateName, s.Name())
	}

	t.sdks = append(t.sdks, s)
	log.Debug(log.CatTable, "sdk added", "name", s.Name(), "type", s.TypeName())

	t.listeners.added(s)
	t.publish(pubsub.CreatedEvent, Change{Kind: ChangeAdded, Name: s.Name(), Type: s.TypeName(), Home: s.HomePath()})
	return nil
}

// Remove unregisters s. Listeners are notified while s is still
// registered, so they may still Find it. Removing s again from inside one
// of those notifications is a no-op.
func (t *Table) Remove(s *sdk.Sdk) error {
	t.guard.AssertWriteAccessAllowed()

	if s == nil {
		return sdk.ErrNilSdk
	}
	if !slices.Contains(t.sdks, s) {
		return fmt.Errorf("%w: %q", sdk.ErrNotFound, s.Name())
	}

	if _, ok := t.removing[s]; ok {
		return nil
	}

	t.removing[s] = struct{}{}
	t.listeners.removed(s)
	delete(t.removing, s)

	i := slices.Index(t.sdks, s)
	if i < 0 {
		// a listener took it out some other way, e.g. Load
		return nil
	}
	t.sdks = slices.Delete(t.sdks, i, i+1)

	t.internalMu.Lock()
	if t.internal == s {
		t.internal = nil
	}
	t.internalMu.Unlock()

	log.Debug(log.CatTable, "sdk removed", "name", s.Name())
	t.publish(pubsub.DeletedEvent, Change{Kind: ChangeRemoved, Name: s.Name(), Type: s.TypeName(), Home: s.HomePath()})
	return nil
}

// Update copies modified into original in place; original keeps its
// identity. A name change fires a single rename notification.
func (t *Table) Update(original, modified *sdk.Sdk) error {
	t.guard.AssertWriteAccessAllowed()

	if original == nil || modified == nil {
		return sdk.ErrNilSdk
	}
	if modified.Name() == "" {
		return sdk.ErrEmptyName
	}

	previousName := original.Name()
	newName := modified.Name()
	if newName != previousName {
		if i := t.indexOfName(newName); i >= 0 && t.sdks[i] != original {
			return fmt.Errorf("%w: %q", sdk.ErrDuplicateName, newName)
		}
	}

	modified.CopyTo(original)

	if newName == previousName {
		log.Debug(log.CatTable, "sdk updated", "name", newName)
		t.publish(pubsub.UpdatedEvent, Change{Kind: ChangeUpdated, Name: newName, Type: original.TypeName(), Home: original.HomePath()})
		return nil
	}

	log.Debug(log.CatTable, "sdk renamed", "from", previousName, "to", newName)
	t.listeners.renamed(original, previousName)
	t.publish(pubsub.UpdatedEvent, Change{
		Kind:         ChangeRenamed,
		Name:         newName,
		PreviousName: previousName,
		Type:         original.TypeName(),
		Home:         original.HomePath(),
	})
	return nil
}

// Internal returns the SDK the process itself runs on, creating it on
// first use. It is not a member of the table unless added explicitly.
func (t *Table) Internal() *sdk.Sdk {
	t.internalMu.Lock()
	defer t.internalMu.Unlock()

	if t.internal == nil && t.internalProvider != nil {
		t.internal = t.internalProvider()
	}
	return t.internal
}

func (t *Table) clearInternal() {
	t.internalMu.Lock()
	t.internal = nil
	t.internalMu.Unlock()
}

func (t *Table) indexOfName(name string) int {
	return slices.IndexFunc(t.sdks, func(s *sdk.Sdk) bool { return s.Name() == name })
}

func (t *Table) publish(kind pubsub.EventType, c Change) {
	if t.broker != nil {
		t.broker.Publish(kind, c)
	}
}
