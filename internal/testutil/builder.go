package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/sdktable/internal/sdk"
)

// Builder accumulates SDK records in insertion order.
type Builder struct {
	t       *testing.T
	records []sdk.Record
}

// NewBuilder creates an empty builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// RecordOption configures a record during builder setup.
type RecordOption func(*sdk.Record)

// Type sets the record type. Records default to JavaSDK.
func Type(name string) RecordOption {
	return func(r *sdk.Record) { r.Type = name }
}

// Home sets the home path.
func Home(path string) RecordOption {
	return func(r *sdk.Record) { r.Home = path }
}

// Version sets the version string.
func Version(v string) RecordOption {
	return func(r *sdk.Record) { r.Version = v }
}

// Attr sets one attribute.
func Attr(key, value string) RecordOption {
	return func(r *sdk.Record) {
		if r.Attributes == nil {
			r.Attributes = make(map[string]string)
		}
		r.Attributes[key] = value
	}
}

// WithSdk adds a record named name.
func (b *Builder) WithSdk(name string, opts ...RecordOption) *Builder {
	r := sdk.Record{Name: name, Type: "JavaSDK"}
	for _, opt := range opts {
		opt(&r)
	}
	b.records = append(b.records, r)
	return b
}

// Records returns the accumulated records.
func (b *Builder) Records() []sdk.Record {
	return append([]sdk.Record(nil), b.records...)
}

// Sdks converts the records to entities, failing the test on a malformed one.
func (b *Builder) Sdks() []*sdk.Sdk {
	b.t.Helper()
	out := make([]*sdk.Sdk, 0, len(b.records))
	for _, r := range b.records {
		s, err := sdk.FromRecord(r)
		require.NoError(b.t, err)
		out = append(out, s)
	}
	return out
}

// WithStandardSdks adds three JDKs and one Go toolchain.
func (b *Builder) WithStandardSdks() *Builder {
	return b.
		WithSdk("corretto-17", Home("/opt/corretto-17"), Version("17.0.9"), Attr("vendor", "Amazon")).
		WithSdk("temurin-21", Home("/opt/temurin-21"), Version("21.0.2"), Attr("vendor", "Eclipse Adoptium")).
		WithSdk("jdk-11", Home("/usr/lib/jvm/jdk-11"), Version("11.0.22")).
		WithSdk("go1.24", Type("GoSDK"), Home("/usr/local/go"), Version("go1.24.9"))
}
