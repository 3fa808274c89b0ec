// Package yamlstore persists the SDK table as a YAML document:
//
//	version: 1
//	sdks:
//	  - name: corretto-17
//	    type: JavaSDK
//	    home: /opt/corretto-17
//
// Keys other than version and sdks, and comments, survive a Save.
package yamlstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/sdktable/internal/fileutil"
	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/sdk"
	"github.com/zjrosen/sdktable/internal/store"
)

// FormatVersion is the document version written by Save.
const FormatVersion = 1

// Store reads and writes one YAML table file.
type Store struct {
	fs   afero.Fs
	path string
}

var _ store.Store = (*Store)(nil)

// New returns a store for path on fsys.
func New(fsys afero.Fs, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// Path returns the table file location.
func (s *Store) Path() string {
	return s.path
}

// Load implements store.Store. Each list element is decoded on its own, so
// one bad entry is reported without hiding the others.
func (s *Store) Load(_ context.Context) (store.Result, error) {
	doc, err := s.readDocument()
	if err != nil {
		return store.Result{}, err
	}
	root := rootMapping(doc)
	if root == nil {
		return store.Result{}, nil
	}

	if v := mappingValue(root, "version"); v != nil {
		version, err := strconv.Atoi(v.Value)
		if err != nil {
			return store.Result{}, fmt.Errorf("%s: version %q: %w", s.path, v.Value, err)
		}
		if version > FormatVersion {
			return store.Result{}, fmt.Errorf("%s: version %d: %w", s.path, version, store.ErrUnsupportedVersion)
		}
	}

	list := mappingValue(root, "sdks")
	if list == nil {
		return store.Result{}, nil
	}
	if list.Kind != yaml.SequenceNode {
		return store.Result{}, fmt.Errorf("%s: line %d: sdks must be a list", s.path, list.Line)
	}

	var result store.Result
	for i, node := range list.Content {
		var rec sdk.Record
		if err := node.Decode(&rec); err != nil {
			result.Skipped = append(result.Skipped, sdk.RecordError{
				Index: i,
				Name:  nodeName(node),
				Err:   fmt.Errorf("%w: line %d: %v", sdk.ErrMalformedRecord, node.Line, err),
			})
			continue
		}
		if rec.Name == "" || rec.Type == "" {
			result.Skipped = append(result.Skipped, sdk.RecordError{
				Index: i,
				Name:  rec.Name,
				Err:   fmt.Errorf("%w: line %d: name and type are required", sdk.ErrMalformedRecord, node.Line),
			})
			continue
		}
		result.Append(i, rec)
	}

	for _, skipped := range result.Skipped {
		log.Warn(log.CatStore, "skipping table entry", "path", s.path, "error", skipped)
	}
	log.Debug(log.CatStore, "table file loaded", "path", s.path, "records", len(result.Records))
	return result, nil
}

// Save implements store.Store.
func (s *Store) Save(_ context.Context, records []sdk.Record) error {
	data, err := s.render(records)
	if err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(s.fs, s.path, data, 0600); err != nil {
		return fmt.Errorf("saving %s: %w", s.path, err)
	}
	log.Debug(log.CatStore, "table file saved", "path", s.path, "records", len(records))
	return nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	return nil
}

func (s *Store) readDocument() (*yaml.Node, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &yaml.Node{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return &doc, nil
}

// render produces the bytes Save would write, keeping unrelated keys and
// comments of the current file.
func (s *Store) render(records []sdk.Record) ([]byte, error) {
	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}

	var list yaml.Node
	if records == nil {
		records = []sdk.Record{}
	}
	if err := list.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}

	root := rootMapping(doc)
	if root == nil {
		root = &yaml.Node{Kind: yaml.MappingNode}
		*doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	}
	setMappingValue(root, "version", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(FormatVersion)})
	setMappingValue(root, "sdks", &list)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshaling table: %w", err)
	}
	_ = enc.Close()
	return buf.Bytes(), nil
}

func rootMapping(doc *yaml.Node) *yaml.Node {
	if doc == nil || doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	if root := doc.Content[0]; root.Kind == yaml.MappingNode {
		return root
	}
	return nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}

func nodeName(n *yaml.Node) string {
	if n.Kind != yaml.MappingNode {
		return ""
	}
	if v := mappingValue(n, "name"); v != nil && v.Kind == yaml.ScalarNode {
		return v.Value
	}
	return ""
}
