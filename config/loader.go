package config

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/sunwei/templatehtml/parser/metadecoders"
)

// ValidConfigFileExtensions are the config file formats FromFile reads,
// in the order FromDir looks for them.
var ValidConfigFileExtensions = []string{"toml", "yaml", "yml", "json"}

// FromFile loads the configuration from the given filename.
func FromFile(fs afero.Fs, filename string) (Provider, error) {
	m, err := metadecoders.Default.UnmarshalFileToMap(fs, filename)
	if err != nil {
		return nil, err
	}
	return NewFrom(m), nil
}

// FromDir loads the first of name.toml, name.yaml, name.yml and name.json
// found in dir. Without one it returns an empty Provider.
func FromDir(fs afero.Fs, dir, name string) (Provider, error) {
	for _, ext := range ValidConfigFileExtensions {
		filename := filepath.Join(dir, name+"."+ext)
		if exists, _ := afero.Exists(fs, filename); exists {
			return FromFile(fs, filename)
		}
	}
	return New(), nil
}
