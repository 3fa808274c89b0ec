// Package app holds the application-lifetime context: one SDK table, its
// store, the access coordinator guarding it, and the services around it.
// Commands build an App, call Load, act, and Close it.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/sdktable/internal/access"
	"github.com/zjrosen/sdktable/internal/config"
	"github.com/zjrosen/sdktable/internal/flags"
	"github.com/zjrosen/sdktable/internal/hints"
	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/pubsub"
	"github.com/zjrosen/sdktable/internal/sdk"
	"github.com/zjrosen/sdktable/internal/sdk/sdktypes"
	"github.com/zjrosen/sdktable/internal/store"
	"github.com/zjrosen/sdktable/internal/table"
	"github.com/zjrosen/sdktable/internal/tracing"
)

var (
	ErrUnknownType        = errors.New("unknown sdk type")
	ErrPreviewUnsupported = errors.New("preview is only supported by the yaml backend")
)

// App owns the table and everything that feeds it.
type App struct {
	cfg     config.Config
	fs      afero.Fs
	flags   *flags.Registry
	coord   *access.Coordinator
	meta    *sdktypes.MetadataReader
	table   *table.Table
	store   store.Store
	backend string
	tracing *tracing.Provider
	tracer  trace.Tracer
	broker  *pubsub.Broker[table.Change]
}

type options struct {
	fs       afero.Fs
	viper    *viper.Viper
	hints    hints.Source
	store    store.Store
	types    *sdk.Types
	internal func() *sdk.Sdk
}

// Option configures New.
type Option func(*options)

// WithFs replaces the OS filesystem used for probing and the YAML store.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) { o.fs = fsys }
}

// WithViper adds the config file's hints section (and SDKTABLE_* variables,
// if v has AutomaticEnv on) to the hint chain.
func WithViper(v *viper.Viper) Option {
	return func(o *options) { o.viper = v }
}

// WithHintSource puts src first in the hint chain.
func WithHintSource(src hints.Source) Option {
	return func(o *options) { o.hints = src }
}

// WithStore uses st instead of opening the configured backend.
func WithStore(st store.Store) Option {
	return func(o *options) { o.store = st }
}

// WithTypes replaces the built-in validator set.
func WithTypes(types *sdk.Types) Option {
	return func(o *options) { o.types = types }
}

// WithInternalProvider replaces the factory for the internal SDK.
func WithInternalProvider(fn func() *sdk.Sdk) Option {
	return func(o *options) { o.internal = fn }
}

// New validates cfg and wires the application. The table starts empty;
// call Load to read the store.
func New(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}

	a := &App{
		cfg:    cfg,
		fs:     o.fs,
		flags:  flags.New(cfg.Flags),
		coord:  access.NewCoordinator(),
		broker: pubsub.NewBroker[table.Change](),
	}

	a.meta = sdktypes.NewMetadataReader(o.fs, cfg.Cache.MetadataTTL)
	types := o.types
	if types == nil {
		types = sdktypes.Default(o.fs, sdktypes.WithMetadataReader(a.meta))
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	a.tracing = provider
	a.tracer = provider.Tracer()

	tableOpts := []table.Option{
		table.WithTypes(types),
		table.WithHints(a.hintChain(o)),
		table.WithTracer(a.tracer),
		table.WithBroker(a.broker),
	}
	if cfg.Resolve.HintPrefix != "" {
		tableOpts = append(tableOpts, table.WithHintPrefix(cfg.Resolve.HintPrefix))
	}
	if cfg.Resolve.DefaultType != "" {
		tableOpts = append(tableOpts, table.WithDefaultType(cfg.Resolve.DefaultType))
	}
	if o.internal != nil {
		tableOpts = append(tableOpts, table.WithInternalProvider(o.internal))
	}
	a.table = table.New(a.coord, tableOpts...)

	a.store = o.store
	a.backend = "custom"
	if a.store == nil {
		a.backend = cfg.Table.Backend
		if a.backend == "" {
			a.backend = config.BackendYAML
		}
		st, err := OpenStore(o.fs, a.backend, a.storePath(), a.flags.Enabled(flags.FlagSQLiteBackup))
		if err != nil {
			_ = provider.Shutdown(context.Background())
			return nil, err
		}
		a.store = st
	}

	log.Debug(log.CatConfig, "app initialized", "backend", a.backend, "types", types.Names(), "flags", a.flags.All(), "tracing", provider.Enabled())
	return a, nil
}

func (a *App) hintChain(o options) hints.Source {
	var chain hints.Chain
	if o.hints != nil {
		chain = append(chain, o.hints)
	}
	if o.viper != nil {
		chain = append(chain, hints.NewViper(o.viper))
	}
	if a.flags.Enabled(flags.FlagEnvHints) {
		chain = append(chain, hints.NewEnviron())
	}
	return chain
}

// Table returns the table. Mutations must run inside Coordinator().RunWrite.
func (a *App) Table() *table.Table { return a.table }

// Coordinator returns the write-access coordinator guarding the table.
func (a *App) Coordinator() *access.Coordinator { return a.coord }

// Store returns the persistence backend.
func (a *App) Store() store.Store { return a.store }

// Backend names the store in use: "yaml", "sqlite" or "custom".
func (a *App) Backend() string { return a.backend }

// Flags returns the feature flags.
func (a *App) Flags() *flags.Registry { return a.flags }

// Changes subscribes to table changes until ctx is done.
func (a *App) Changes(ctx context.Context) <-chan pubsub.Event[table.Change] {
	return a.broker.Subscribe(ctx)
}

// Load replaces the table with the store's contents. A store that cannot
// be read leaves the table untouched and returns the error; records that
// cannot be loaded are reported, store-level ones first.
func (a *App) Load(ctx context.Context) (table.LoadReport, error) {
	ctx, span := a.tracer.Start(ctx, tracing.SpanStoreLoad, trace.WithAttributes(
		attribute.String(tracing.AttrBackend, a.backend),
	))
	defer span.End()

	res, err := a.store.Load(ctx)
	if err != nil {
		log.ErrorErr(log.CatStore, "Failed to read table", err, "backend", a.backend)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return table.LoadReport{}, fmt.Errorf("loading table: %w", err)
	}

	var report table.LoadReport
	a.coord.RunWrite(func() {
		_, loadSpan := a.tracer.Start(ctx, tracing.SpanLoad)
		defer loadSpan.End()
		report = a.table.Load(res.Records)
		loadSpan.SetAttributes(attribute.Int(tracing.AttrRecordCount, report.Loaded))
	})
	// table.Load counts positions in res.Records; report them as stored
	for i := range report.Skipped {
		report.Skipped[i].Index = res.SourceIndex(report.Skipped[i].Index)
	}
	report.Skipped = append(append([]sdk.RecordError(nil), res.Skipped...), report.Skipped...)

	// home metadata may have changed on disk since the last load
	a.meta.Flush()

	span.SetAttributes(
		attribute.Int(tracing.AttrRecordCount, report.Loaded),
		attribute.Int(tracing.AttrSkippedCount, len(report.Skipped)),
	)
	return report, nil
}

// Records returns a consistent snapshot of the table in persisted form.
func (a *App) Records() []sdk.Record {
	var records []sdk.Record
	a.coord.RunRead(func() { records = a.table.Save() })
	return records
}

// Sdks returns a snapshot of the registered SDKs.
func (a *App) Sdks() []*sdk.Sdk {
	var sdks []*sdk.Sdk
	a.coord.RunRead(func() { sdks = a.table.All() })
	return sdks
}

// Save writes the table to the store.
func (a *App) Save(ctx context.Context) error {
	return a.saveRecords(ctx, a.store, a.backend, a.Records())
}

func (a *App) saveRecords(ctx context.Context, st store.Store, backend string, records []sdk.Record) error {
	ctx, span := a.tracer.Start(ctx, tracing.SpanStoreSave, trace.WithAttributes(
		attribute.String(tracing.AttrBackend, backend),
		attribute.Int(tracing.AttrRecordCount, len(records)),
	))
	defer span.End()

	if err := st.Save(ctx, records); err != nil {
		log.ErrorErr(log.CatStore, "Failed to save table", err, "backend", backend)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("saving table: %w", err)
	}
	log.Info(log.CatStore, "Saved table", "backend", backend, "records", len(records))
	return nil
}

// Preview returns the diff Save would apply to the YAML file.
func (a *App) Preview() (string, error) {
	p, ok := a.store.(interface {
		Preview([]sdk.Record) (string, error)
	})
	if !ok {
		return "", ErrPreviewUnsupported
	}
	return p.Preview(a.Records())
}

// Close releases the store, tracing and the change broker.
func (a *App) Close() error {
	var errs []error
	if err := a.tracing.Shutdown(context.Background()); err != nil {
		errs = append(errs, fmt.Errorf("shutting down tracing: %w", err))
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing store: %w", err))
	}
	a.broker.Close()
	return errors.Join(errs...)
}
