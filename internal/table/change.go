package table

import "fmt"

// ChangeKind names what happened to an SDK.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeRenamed ChangeKind = "renamed"
	ChangeUpdated ChangeKind = "updated"
	ChangeLoaded  ChangeKind = "loaded"
)

// Change is the asynchronous counterpart of a listener callback. It carries
// values rather than the live *sdk.Sdk so subscribers need no access token.
type Change struct {
	Kind         ChangeKind
	Name         string
	PreviousName string
	Type         string
	Home         string
}

func (c Change) String() string {
	switch c.Kind {
	case ChangeAdded:
		return fmt.Sprintf("added %s (%s)", c.Name, c.Type)
	case ChangeRenamed:
		return fmt.Sprintf("renamed %s -> %s", c.PreviousName, c.Name)
	case ChangeLoaded:
		return string(ChangeLoaded)
	default:
		return fmt.Sprintf("%s %s", c.Kind, c.Name)
	}
}
