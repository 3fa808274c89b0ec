package table

import (
	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/pubsub"
	"github.com/zjrosen/sdktable/internal/sdk"
)

// LoadReport summarises a Load.
type LoadReport struct {
	Loaded  int
	Skipped []sdk.RecordError
}

// OK reports whether every record was loaded.
func (r LoadReport) OK() bool {
	return len(r.Skipped) == 0
}

// Load replaces the table contents with records. The old contents are
// dropped without removal notifications; each loaded SDK is announced as
// an addition. Malformed records and duplicate names are skipped and
// reported; the records around them still load. The internal SDK is
// re-created afterwards.
func (t *Table) Load(records []sdk.Record) LoadReport {
	t.guard.AssertWriteAccessAllowed()

	t.clearInternal()
	t.sdks = nil

	var report LoadReport
	for i, rec := range records {
		s, err := sdk.FromRecord(rec)
		if err == nil {
			err = t.Add(s)
		}
		if err != nil {
			log.Warn(log.CatTable, "skipping sdk record", "index", i, "name", rec.Name, "error", err)
			report.Skipped = append(report.Skipped, sdk.RecordError{Index: i, Name: rec.Name, Err: err})
			continue
		}
		report.Loaded++
	}

	t.Internal()

	log.Info(log.CatTable, "table loaded", "loaded", report.Loaded, "skipped", len(report.Skipped))
	t.publish(pubsub.ReloadedEvent, Change{Kind: ChangeLoaded})
	return report
}

// Save returns the registered SDKs as records, in table order. Derived
// SDKs and the internal SDK are not included.
func (t *Table) Save() []sdk.Record {
	records := make([]sdk.Record, 0, len(t.sdks))
	for _, s := range t.sdks {
		records = append(records, sdk.ToRecord(s))
	}
	return records
}
