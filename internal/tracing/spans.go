package tracing

// Span names.
const (
	SpanFindDerived = "table.find_derived"
	SpanLoad        = "table.load"
	SpanStoreLoad   = "store.load"
	SpanStoreSave   = "store.save"
)

// Span attribute keys.
const (
	AttrSdkName       = "sdk.name"
	AttrSdkType       = "sdk.type"
	AttrResolveSource = "resolve.source"
	AttrRecordCount   = "store.records"
	AttrSkippedCount  = "store.skipped"
	AttrBackend       = "store.backend"
)

// Values of AttrResolveSource.
const (
	SourceRegistry = "registry"
	SourceMemo     = "memo"
	SourceHint     = "hint"
	SourceMiss     = "miss"
)
