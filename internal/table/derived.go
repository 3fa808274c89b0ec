package table

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/sdktable/internal/hints"
	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/sdk"
	"github.com/zjrosen/sdktable/internal/tracing"
)

// DerivedKey identifies a hint-derived SDK. Type and name stay separate so
// a type containing "." can never collide with another pair.
type DerivedKey struct {
	Type string
	Name string
}

// FindDerived returns the registered SDK called name, or else one built
// from the home path the hint source knows for name. Derived SDKs are
// memoised for the life of the table but never persisted or announced.
// An empty typeName means the default type.
//
// A miss is not cached: the next call checks the hint again.
func (t *Table) FindDerived(ctx context.Context, name, typeName string) (*sdk.Sdk, bool) {
	if typeName == "" {
		typeName = t.defaultType
	}

	_, span := t.tracer.Start(ctx, tracing.SpanFindDerived, trace.WithAttributes(
		attribute.String(tracing.AttrSdkName, name),
		attribute.String(tracing.AttrSdkType, typeName),
	))
	defer span.End()

	s, source := t.findDerived(name, typeName)
	span.SetAttributes(attribute.String(tracing.AttrResolveSource, source))
	return s, s != nil
}

func (t *Table) findDerived(name, typeName string) (*sdk.Sdk, string) {
	if s, ok := t.Find(name); ok {
		return s, tracing.SourceRegistry
	}

	key := DerivedKey{Type: typeName, Name: name}

	t.derivedMu.Lock()
	defer t.derivedMu.Unlock()

	if s, ok := t.derived[key]; ok {
		return s, tracing.SourceMemo
	}

	home, ok := t.hints.Lookup(hints.Key(t.hintPrefix, name))
	if !ok {
		return nil, tracing.SourceMiss
	}

	for _, typ := range t.types.All() {
		if typ.Name() != typeName {
			continue
		}
		// only the first type with this name is considered
		if !typ.IsValidHome(home) {
			log.Debug(log.CatResolve, "hinted home rejected", "name", name, "type", typeName, "home", home)
			return nil, tracing.SourceMiss
		}
		s, err := typ.CreateSdk(name, home)
		if err != nil || s == nil {
			log.Warn(log.CatResolve, "cannot set up derived sdk", "name", name, "home", home, "error", err)
			return nil, tracing.SourceMiss
		}
		t.derived[key] = s
		log.Info(log.CatResolve, "derived sdk resolved", "name", name, "type", typeName, "home", home)
		return s, tracing.SourceHint
	}

	log.Debug(log.CatResolve, "no such sdk type", "type", typeName)
	return nil, tracing.SourceMiss
}

// DerivedCount returns how many derived SDKs are memoised.
func (t *Table) DerivedCount() int {
	t.derivedMu.Lock()
	defer t.derivedMu.Unlock()
	return len(t.derived)
}
