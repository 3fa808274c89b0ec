package app

import (
	"context"
	"fmt"

	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/sdk"
)

// Resolved is the outcome of Resolve.
type Resolved struct {
	Sdk *sdk.Sdk

	// Registered is false for an SDK derived from a hint.
	Registered bool
}

// Add checks home with the named type (the default type when empty),
// registers the result under name and saves the table.
func (a *App) Add(ctx context.Context, name, home, typeName string) (*sdk.Sdk, error) {
	if typeName == "" {
		typeName = a.cfg.Resolve.DefaultType
	}
	t, ok := a.table.Types().Find(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}

	s, err := t.CreateSdk(name, home)
	if err != nil {
		return nil, fmt.Errorf("creating %s sdk from %s: %w", typeName, home, err)
	}

	if err := a.coord.RunWriteErr(func() error { return a.table.Add(s) }); err != nil {
		return nil, err
	}
	log.Info(log.CatTable, "Added sdk", "name", name, "type", typeName, "home", home)
	return s, a.Save(ctx)
}

// Remove unregisters the SDK called name and saves the table.
func (a *App) Remove(ctx context.Context, name string) error {
	err := a.coord.RunWriteErr(func() error {
		s, ok := a.table.Find(name)
		if !ok {
			return fmt.Errorf("%w: %q", sdk.ErrNotFound, name)
		}
		return a.table.Remove(s)
	})
	if err != nil {
		return err
	}
	log.Info(log.CatTable, "Removed sdk", "name", name)
	return a.Save(ctx)
}

// Rename changes the name of a registered SDK in place and saves the table.
func (a *App) Rename(ctx context.Context, oldName, newName string) error {
	return a.modify(ctx, oldName, func(s *sdk.Sdk) { s.SetName(newName) })
}

// SetHome points a registered SDK at a new home. The home is not checked.
func (a *App) SetHome(ctx context.Context, name, home string) error {
	return a.modify(ctx, name, func(s *sdk.Sdk) { s.SetHomePath(home) })
}

// modify edits a copy of the named SDK and applies it through Update, so
// the registered entity keeps its identity.
func (a *App) modify(ctx context.Context, name string, edit func(*sdk.Sdk)) error {
	err := a.coord.RunWriteErr(func() error {
		original, ok := a.table.Find(name)
		if !ok {
			return fmt.Errorf("%w: %q", sdk.ErrNotFound, name)
		}
		modified := original.Clone()
		edit(modified)
		return a.table.Update(original, modified)
	})
	if err != nil {
		return err
	}
	return a.Save(ctx)
}

// Resolve finds a registered SDK by name, or derives one from a hint.
func (a *App) Resolve(ctx context.Context, name, typeName string) (Resolved, bool) {
	var (
		res Resolved
		ok  bool
	)
	a.coord.RunRead(func() {
		_, registered := a.table.Find(name)
		res.Sdk, ok = a.table.FindDerived(ctx, name, typeName)
		res.Registered = ok && registered
	})
	return res, ok
}

// Internal returns the SDK the process runs on.
func (a *App) Internal() *sdk.Sdk {
	return a.table.Internal()
}
