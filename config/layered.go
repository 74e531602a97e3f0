package config

import (
	"github.com/spf13/cast"
	"github.com/sunwei/templatehtml/common/maps"
)

// Layered stacks providers, top first. A key is read from the topmost
// layer that has it set; a map is not merged across layers. Set writes to
// the top layer.
//
// The command line uses it to put flags over the config file:
//
//	cfg := config.Layered(config.FromFlags(flags, "root", "mode"), fileCfg)
func Layered(top Provider, below ...Provider) Provider {
	return layered(append([]Provider{top}, below...))
}

type layered []Provider

func (l layered) lookup(key string) Provider {
	for _, p := range l {
		if p.IsSet(key) {
			return p
		}
	}
	return nil
}

func (l layered) Get(key string) any {
	if p := l.lookup(key); p != nil {
		return p.Get(key)
	}
	return nil
}

func (l layered) GetString(key string) string {
	return cast.ToString(l.Get(key))
}

func (l layered) GetBool(key string) bool {
	return cast.ToBool(l.Get(key))
}

func (l layered) GetStringMap(key string) map[string]any {
	return maps.ToStringMap(l.Get(key))
}

func (l layered) IsSet(key string) bool {
	return l.lookup(key) != nil
}

func (l layered) Set(key string, value any) {
	l[0].Set(key, value)
}
