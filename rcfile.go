// FILE: lixenwraith/options/rcfile.go
package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ParseRcFile reads an rc file through the given filesystem, maps its keys to
// flag tokens and applies them at rc-file priority, with the file path as the
// source label. TOML, JSON and YAML are supported; the format is detected
// from the extension first, then from the content. Keys that match no
// registered flag are skipped with a warning, so one rc file can serve tools
// with overlapping but distinct registries.
func (p *Parser) ParseRcFile(fsys afero.Fs, path string) error {
	tokens, err := p.rcFileTokens(fsys, path)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	return p.Parse(PriorityRcFile, path, tokens)
}

func (p *Parser) rcFileTokens(fsys afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrRcFileNotFound
		}
		return nil, fmt.Errorf("failed to read rc file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
	}

	fileConfig := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse TOML rc file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse JSON rc file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse YAML rc file '%s': %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unable to determine rc file format for '%s'", path)
	}

	flat := flattenMap(fileConfig, "")

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var tokens []string
	for _, key := range keys {
		if _, known := p.engine.registry.byName[key]; !known {
			p.engine.warn("rc file %s: ignoring unknown option '%s'", path, key)
			continue
		}
		switch v := flat[key].(type) {
		case []any:
			for _, el := range v {
				tokens = append(tokens, fmt.Sprintf("--%s=%v", key, el))
			}
		default:
			tokens = append(tokens, fmt.Sprintf("--%s=%v", key, v))
		}
	}
	return tokens, nil
}

// detectFileFormat determines format from the file extension.
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect the format by parsing.
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try TOML before YAML; YAML accepts nearly anything
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
