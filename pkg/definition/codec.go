package definition

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a definition file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format by extension. Anything but .json is YAML.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml", "":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// Load reads and validates a definition file (YAML or JSON).
// A missing ID defaults to the file name without extension.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read definition: %w", err)
	}

	def, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	if def.ID == "" {
		def.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// Parse decodes and validates a definition.
func Parse(data []byte, format Format) (Definition, error) {
	var def Definition
	if format == FormatJSON {
		if err := json.Unmarshal(data, &def); err != nil {
			return Definition{}, fmt.Errorf("failed to parse json definition: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &def); err != nil {
			return Definition{}, fmt.Errorf("failed to parse yaml definition: %w", err)
		}
	}

	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Decode builds and validates a definition from generic data, such as tool
// arguments or document metadata.
func Decode(input any) (Definition, error) {
	var def Definition
	if err := mapstructure.Decode(input, &def); err != nil {
		return Definition{}, fmt.Errorf("failed to decode definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Marshal encodes a definition.
func Marshal(def Definition, format Format) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(def, "", "  ")
	}
	return yaml.Marshal(def)
}
