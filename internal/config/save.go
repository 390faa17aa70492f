package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/scrawl/internal/log"
)

// settableKeys lists every scalar key SetValue accepts. Keys under flags.
// are accepted as long as they name a single flag.
var settableKeys = []string{
	"editor.virtual_edit",
	"editor.frame_interval",
	"editor.tab_width",
	"editor.restore_cursor",
	"editor.watch_file",
	"ui.show_header",
	"ui.no_color",
	"ui.theme.preset",
	"history.path",
	"tracing.enabled",
	"tracing.exporter",
	"tracing.file_path",
	"tracing.otlp_endpoint",
	"tracing.sample_rate",
}

// Keys returns the keys SetValue accepts, excluding flags.
func Keys() []string {
	return slices.Clone(settableKeys)
}

func settable(key string) bool {
	if name, ok := strings.CutPrefix(key, "flags."); ok {
		return name != "" && !strings.Contains(name, ".")
	}
	return slices.Contains(settableKeys, key)
}

// SetValue sets a dotted key such as "editor.virtual_edit" in the config
// file, creating the file from the default template if it does not exist.
// Comments and the order of other keys are preserved by editing the YAML
// node tree instead of re-marshaling a struct.
func SetValue(configPath, key, value string) error {
	if !settable(key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- user's config path
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte(DefaultConfigTemplate())
	} else if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("config root must be a mapping")
	}

	parts := strings.Split(key, ".")
	node := root
	for _, part := range parts[:len(parts)-1] {
		node = ensureMapping(node, part)
	}
	setScalar(node, parts[len(parts)-1], value)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := writeAtomic(configPath, buf.Bytes(), 0o600); err != nil {
		return err
	}

	log.Info(log.CatConfig, "Config value set", "path", configPath, "key", key, "value", value)
	return nil
}

// ensureMapping returns the mapping stored under key in m, creating or
// replacing the value when it is missing or not a mapping.
func ensureMapping(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		v := m.Content[i+1]
		if v.Kind != yaml.MappingNode {
			*v = yaml.Node{Kind: yaml.MappingNode}
		}
		return v
	}

	v := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, v)
	return v
}

// setScalar sets key in m to value, keeping any comment on the old value.
// The tag is left empty so the encoder infers bool/int/float/string.
func setScalar(m *yaml.Node, key, value string) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		v := m.Content[i+1]
		v.Kind = yaml.ScalarNode
		v.Tag = ""
		v.Style = 0
		v.Value = value
		v.Content = nil
		return
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}

// writeAtomic writes to a temp file in the target's directory and renames
// it into place.
func writeAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)

	temp, err := os.CreateTemp(dir, ".scrawl.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Chmod(perm); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
