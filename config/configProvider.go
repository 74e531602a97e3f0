package config

import (
	"github.com/sunwei/templatehtml/types"
)

// Provider provides the configuration settings for the build and the dev
// server. Keys are case insensitive and nested keys are separated by dots,
// e.g. "plugin.template".
type Provider interface {
	Get(key string) any
	GetString(key string) string
	GetBool(key string) bool
	GetStringMap(key string) map[string]any
	Set(key string, value any)
	IsSet(key string) bool
}

// userDataKeys hold maps of user defined names, template parameters and
// define values. The keys below them keep their case.
var userDataKeys = []string{"define", "templateparameters"}

// GetStringSlicePreserveString returns a string slice from the given config and key.
// It differs from cast.ToStringSlice in that if the config value is a string,
// we do not attempt to split it into fields.
func GetStringSlicePreserveString(cfg Provider, key string) []string {
	return types.ToStringSlicePreserveString(cfg.Get(key))
}
