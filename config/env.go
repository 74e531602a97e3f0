package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

var errLocalMode = errors.New(`"local" cannot be used as a mode name because it conflicts with the .local postfix for .env files`)

// EnvFiles returns the env files read for mode, lowest precedence first.
func EnvFiles(mode string) []string {
	return []string{
		".env",
		".env.local",
		".env." + mode,
		".env." + mode + ".local",
	}
}

// LoadEnv loads the environment variables for mode from the env files in
// dir and from the process environment.
//
// Later files win over earlier ones and the process environment wins over
// all files. Only keys starting with one of prefixes are kept; no prefixes
// or an empty prefix keeps all keys.
func LoadEnv(fs afero.Fs, mode, dir string, prefixes ...string) (map[string]string, error) {
	return loadEnv(fs, mode, dir, os.Environ(), prefixes)
}

func loadEnv(fs afero.Fs, mode, dir string, environ []string, prefixes []string) (map[string]string, error) {
	if mode == "local" {
		return nil, errLocalMode
	}
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}

	// The files are parsed as one, so a later file can expand variables
	// set in an earlier one.
	var b bytes.Buffer
	for _, name := range EnvFiles(mode) {
		filename := filepath.Join(dir, name)
		content, err := afero.ReadFile(fs, filename)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read env file %q: %w", filename, err)
		}
		b.Write(content)
		b.WriteString("\n")
	}

	parsed, err := godotenv.Parse(&b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env files in %q: %w", dir, err)
	}

	env := make(map[string]string)
	for k, v := range parsed {
		if hasPrefix(k, prefixes) {
			env[k] = v
		}
	}
	for _, kv := range environ {
		k, v, found := strings.Cut(kv, "=")
		if !found || k == "" {
			continue
		}
		if hasPrefix(k, prefixes) {
			env[k] = v
		}
	}

	return env, nil
}

func hasPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
