// Package config provides configuration types, defaults, and persistence for
// the vikey playground.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// saveSection rewrites a single top-level key in configPath to the given
// yaml.Node, preserving every other section and its comments by parsing the
// existing file into a yaml.Node document rather than unmarshaling into a Go
// struct and re-marshaling the whole thing.
func saveSection(configPath, key string, valueNode *yaml.Node) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: key},
						valueNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == key {
					root.Content[i+1] = valueNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: key},
					valueNode,
				)
			}
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// writeAtomic writes data to path via a temp file + rename so a crash or
// concurrent reader never observes a half-written config file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".vikey.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
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

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

// SaveTheme updates the theme section in the config file, preserving
// comments and formatting elsewhere in the file.
func SaveTheme(configPath string, theme ThemeConfig) error {
	node := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalarNode("preset"), scalarNode(theme.Preset),
			scalarNode("mode"), scalarNode(theme.Mode),
		},
	}
	return saveSection(configPath, "theme", node)
}

// ReadTheme reads just the theme section back out of the config file at
// configPath, the read side of SaveTheme used by the playground's config
// watcher to pick up an on-disk theme edit without restarting.
func ReadTheme(configPath string) (ThemeConfig, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return ThemeConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var theme ThemeConfig
	if err := v.UnmarshalKey("theme", &theme); err != nil {
		return ThemeConfig{}, fmt.Errorf("decoding theme section: %w", err)
	}
	return theme, nil
}

// SaveRegisters updates the registers section in the config file.
func SaveRegisters(configPath string, registers RegistersConfig) error {
	node := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalarNode("db_path"), scalarNode(registers.DBPath),
			scalarNode("cache_ttl_seconds"), {Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", registers.CacheTTLSeconds)},
		},
	}
	return saveSection(configPath, "registers", node)
}
