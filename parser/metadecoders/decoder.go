// Package metadecoders decodes config files into maps.
package metadecoders

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// Format is a config file format.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatFromString turns formatStr, typically a file extension without
// any ".", into a Format. It returns an empty string for unknown formats.
func FormatFromString(formatStr string) Format {
	formatStr = strings.ToLower(strings.TrimPrefix(formatStr, "."))
	switch formatStr {
	case "yaml", "yml":
		return YAML
	case "json":
		return JSON
	case "toml":
		return TOML
	}
	return ""
}

// Decoder provides some configuration options for the decoders.
type Decoder struct{}

// Default is a Decoder in its default configuration.
var Default = Decoder{}

// UnmarshalFileToMap is the same as UnmarshalToMap, but reads the data from
// the given filename.
func (d Decoder) UnmarshalFileToMap(fs afero.Fs, filename string) (map[string]any, error) {
	format := FormatFromString(filepath.Ext(filename))
	if format == "" {
		return nil, fmt.Errorf("%q is not a valid config format", filename)
	}

	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, err
	}
	m, err := d.UnmarshalToMap(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", filename, err)
	}
	return m, nil
}

// UnmarshalToMap will unmarshall data in format f into a new map. This is
// what's needed for config files.
func (d Decoder) UnmarshalToMap(data []byte, f Format) (map[string]any, error) {
	m := make(map[string]any)
	if data == nil {
		return m, nil
	}

	var err error
	switch f {
	case TOML:
		err = toml.Unmarshal(data, &m)
	case JSON:
		err = json.Unmarshal(data, &m)
	case YAML:
		var ym map[any]any
		if err = yaml.Unmarshal(data, &ym); err == nil {
			m, err = toStringMap(ym)
		}
	default:
		return nil, fmt.Errorf("unmarshal of format %q is not supported", f)
	}

	return m, err
}

// yaml.v2 gives map[interface{}]interface{} for tables, nested in maps
// and slices. Convert them all to map[string]interface{}.
func toStringMap(m map[any]any) (map[string]any, error) {
	v, err := stringifyMapKeys(m)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func stringifyMapKeys(in any) (any, error) {
	switch v := in.(type) {
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, vv := range v {
			ks, err := cast.ToStringE(k)
			if err != nil {
				return nil, fmt.Errorf("map key %v: %w", k, err)
			}
			if m[ks], err = stringifyMapKeys(vv); err != nil {
				return nil, err
			}
		}
		return m, nil
	case []any:
		for i, vv := range v {
			var err error
			if v[i], err = stringifyMapKeys(vv); err != nil {
				return nil, err
			}
		}
		return v, nil
	default:
		return in, nil
	}
}
