// Package store defines how the SDK table is persisted. Backends live
// under internal/infrastructure.
package store

import (
	"context"
	"errors"

	"github.com/zjrosen/sdktable/internal/sdk"
)

// ErrUnsupportedVersion is returned when a stored table was written by a
// newer format than this binary understands.
var ErrUnsupportedVersion = errors.New("unsupported table format version")

// Result is what a backend read back. Records that could not be decoded are
// listed in Skipped rather than failing the whole load.
//
// Indices holds each record's position in the stored sequence, parallel to
// Records. It may be nil, in which case positions match Records.
type Result struct {
	Records []sdk.Record
	Indices []int
	Skipped []sdk.RecordError
}

// Append adds rec, read from position index of the stored sequence.
func (r *Result) Append(index int, rec sdk.Record) {
	if r.Indices == nil && len(r.Records) > 0 {
		r.Indices = make([]int, len(r.Records), cap(r.Records)+1)
		for i := range r.Indices {
			r.Indices[i] = i
		}
	}
	r.Records = append(r.Records, rec)
	r.Indices = append(r.Indices, index)
}

// SourceIndex maps a position in Records back to the stored sequence.
func (r Result) SourceIndex(i int) int {
	if i >= 0 && i < len(r.Indices) {
		return r.Indices[i]
	}
	return i
}

// Store persists an ordered sequence of SDK records.
type Store interface {
	// Load returns the stored records in order. A store that has never been
	// saved returns an empty Result.
	Load(ctx context.Context) (Result, error)
	// Save replaces the stored records.
	Save(ctx context.Context, records []sdk.Record) error
	Close() error
}
