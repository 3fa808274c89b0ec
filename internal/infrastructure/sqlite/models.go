package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/zjrosen/sdktable/internal/sdk"
)

// SdkModel is one row of the sdks table.
type SdkModel struct {
	Position   int
	Name       string
	Type       string
	Home       string
	Version    string
	Attributes sql.NullString // JSON object, NULL when empty
}

// toSdkModel converts a record stored at position.
func toSdkModel(position int, r sdk.Record) (*SdkModel, error) {
	m := &SdkModel{
		Position: position,
		Name:     r.Name,
		Type:     r.Type,
		Home:     r.Home,
		Version:  r.Version,
	}
	if len(r.Attributes) > 0 {
		data, err := json.Marshal(r.Attributes)
		if err != nil {
			return nil, fmt.Errorf("encoding attributes of %q: %w", r.Name, err)
		}
		m.Attributes = sql.NullString{String: string(data), Valid: true}
	}
	return m, nil
}

// toRecord converts the row back, rejecting rows a table could not load.
func (m *SdkModel) toRecord() (sdk.Record, error) {
	r := sdk.Record{
		Name:    m.Name,
		Type:    m.Type,
		Home:    m.Home,
		Version: m.Version,
	}
	if r.Name == "" || r.Type == "" {
		return r, fmt.Errorf("%w: name and type are required", sdk.ErrMalformedRecord)
	}
	if m.Attributes.Valid && m.Attributes.String != "" {
		if err := json.Unmarshal([]byte(m.Attributes.String), &r.Attributes); err != nil {
			return r, fmt.Errorf("%w: attributes: %v", sdk.ErrMalformedRecord, err)
		}
		if len(r.Attributes) == 0 {
			r.Attributes = nil
		}
	}
	return r, nil
}
