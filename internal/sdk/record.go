package sdk

import "fmt"

// Record is the logical persisted form of an Sdk. It carries everything
// needed to rebuild the Sdk without probing its home again.
type Record struct {
	Name       string            `yaml:"name" json:"name"`
	Type       string            `yaml:"type" json:"type"`
	Home       string            `yaml:"home,omitempty" json:"home,omitempty"`
	Version    string            `yaml:"version,omitempty" json:"version,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// ToRecord converts s into its persisted form.
func ToRecord(s *Sdk) Record {
	r := Record{
		Name:    s.Name(),
		Type:    s.TypeName(),
		Home:    s.HomePath(),
		Version: s.Version(),
	}
	if attrs := s.Attributes(); len(attrs) > 0 {
		r.Attributes = attrs
	}
	return r
}

// FromRecord rebuilds an Sdk. Records without a name or type are malformed.
func FromRecord(r Record) (*Sdk, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrMalformedRecord)
	}
	if r.Type == "" {
		return nil, fmt.Errorf("%w: type is required for %q", ErrMalformedRecord, r.Name)
	}
	s := New(r.Name, r.Type)
	s.SetHomePath(r.Home)
	s.SetVersion(r.Version)
	for k, v := range r.Attributes {
		s.SetAttribute(k, v)
	}
	return s, nil
}

// RecordError describes one persisted record that could not be loaded.
// Index is the record's position in its source sequence.
type RecordError struct {
	Index int
	Name  string
	Err   error
}

func (e RecordError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("record %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e RecordError) Unwrap() error {
	return e.Err
}
