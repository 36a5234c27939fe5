package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sarchart/sarchart/internal/errors"
	"gopkg.in/yaml.v3"
)

// AddPreset writes a preset into the config file at configPath, creating
// the file if needed. It preserves the existing YAML structure and
// comments. An existing preset of the same name is replaced only when
// overwrite is set.
func AddPreset(configPath, name string, preset Preset, overwrite bool) error {
	name = PresetKey(name)
	if err := ValidatePreset(name, preset); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Pick a different name or fix the preset values.")
	}

	root, err := readDocument(configPath)
	if err != nil {
		return err
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return errors.New(errors.ErrConfig,
			"Expected a mapping at the top of "+configPath,
			"Check the YAML syntax, or move the file aside and try again.")
	}

	if findMapValue(docNode, "version") == nil {
		setMapValue(docNode, "version", &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(CurrentConfigVersion),
		})
	}

	presetsNode := findMapValue(docNode, "presets")
	if presetsNode == nil || presetsNode.Kind != yaml.MappingNode {
		presetsNode = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		setMapValue(docNode, "presets", presetsNode)
	}

	if findMapValue(presetsNode, name) != nil && !overwrite {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Preset '%s' already exists in %s", name, configPath),
			"Pick a different name, or pass --force to replace it.")
	}

	var value yaml.Node
	if err := value.Encode(preset); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode preset", "")
	}
	setMapValue(presetsNode, name, &value)

	return writeDocument(configPath, root)
}

// PresetKey normalizes a preset name. Viper folds map keys to lower case
// on load, so names are stored and looked up the same way.
func PresetKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// readDocument parses configPath as a yaml.Node document. A missing or
// empty file yields an empty mapping document.
func readDocument(configPath string) (*yaml.Node, error) {
	empty := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return empty, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file "+configPath,
			"Check file permissions")
	}
	if strings.TrimSpace(string(data)) == "" {
		return empty, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config file "+configPath,
			"Check the YAML syntax")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New(errors.ErrConfig,
			"Invalid YAML document structure in "+configPath,
			"Check the YAML syntax")
	}
	return &root, nil
}

func writeDocument(configPath string, root *yaml.Node) error {
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	encoder.Close()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory",
			"Check permissions on "+filepath.Dir(configPath))
	}
	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file "+configPath,
			"Check file permissions")
	}
	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

// setMapValue replaces the value for key, or appends the pair.
func setMapValue(node *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode && node.Content[i].Value == key {
			node.Content[i+1] = value
			return
		}
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value)
}
