package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/sdktable/internal/fileutil"
	"github.com/zjrosen/sdktable/internal/log"
)

// ErrInvalidHintKey is returned for keys with empty segments such as "jdk." or "".
var ErrInvalidHintKey = errors.New("invalid hint key")

// ErrHintConflict is returned when a dotted hint key would overwrite another
// hint, e.g. "jdk.temurin-21" when "jdk.temurin-21.0.2" is already set.
var ErrHintConflict = errors.New("hint key conflicts with an existing hint")

// SaveHint records a home path under hints.<key> in the config file. A dotted
// key such as "jdk.zulu-17" is written as nested mappings, which is how viper
// reads it back. Comments and other sections are preserved by editing the
// yaml.Node tree. A key that would replace a nested hint with a scalar, or
// a scalar hint with a mapping, fails with ErrHintConflict.
func SaveHint(fsys afero.Fs, configPath, key, home string) error {
	segments := strings.Split(key, ".")
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: %q", ErrInvalidHintKey, key)
		}
	}

	data, err := afero.ReadFile(fsys, configPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level must be a mapping")
	}

	node := childMapping(doc.Content[0], "hints")
	for i, s := range segments[:len(segments)-1] {
		v := mappingValue(node, s)
		if v != nil && !isNull(v) && v.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: %q is already set", ErrHintConflict, strings.Join(segments[:i+1], "."))
		}
		node = childMapping(node, s)
	}
	leaf := segments[len(segments)-1]
	if v := mappingValue(node, leaf); v != nil && v.Kind == yaml.MappingNode && len(v.Content) > 0 {
		return fmt.Errorf("%w: %q holds nested hints", ErrHintConflict, key)
	}
	setScalar(node, leaf, home)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := fileutil.WriteAtomic(fsys, configPath, buf.Bytes(), 0o600); err != nil {
		return err
	}

	log.Info(log.CatConfig, "Saved hint", "path", configPath, "key", key, "home", home)
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

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// childMapping returns the mapping stored under key in m, creating it or
// replacing a non-mapping value.
func childMapping(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			v := m.Content[i+1]
			if v.Kind != yaml.MappingNode {
				v = &yaml.Node{Kind: yaml.MappingNode}
				m.Content[i+1] = v
			}
			return v
		}
	}
	v := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, v)
	return v
}

func setScalar(m *yaml.Node, key, value string) {
	v := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			// Keep any line comment that was on the old value.
			v.LineComment = m.Content[i+1].LineComment
			m.Content[i+1] = v
			return
		}
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, v)
}
