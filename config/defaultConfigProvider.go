package config

import (
	"strings"
	"sync"

	"github.com/spf13/cast"
	"github.com/sunwei/templatehtml/common/maps"
)

// New creates a Provider backed by an empty maps.Params.
func New() Provider {
	return &defaultConfigProvider{
		root: make(maps.Params),
	}
}

// NewFrom creates a Provider backed by params. Keys are lower cased,
// except below the define and templateParameters keys.
func NewFrom(params maps.Params) Provider {
	maps.PrepareParams(params, userDataKeys...)
	return &defaultConfigProvider{
		root: params,
	}
}

// defaultConfigProvider is a Provider backed by a map where all config
// keys are lower case.
// All methods are thread safe.
type defaultConfigProvider struct {
	mu   sync.RWMutex
	root maps.Params

	keyCache sync.Map
}

func (c *defaultConfigProvider) Get(k string) any {
	if k == "" {
		return c.root
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, m := c.getNestedKeyAndMap(strings.ToLower(k), false)
	if m == nil {
		return nil
	}
	return m[key]
}

func (c *defaultConfigProvider) GetBool(k string) bool {
	return cast.ToBool(c.Get(k))
}

func (c *defaultConfigProvider) GetString(k string) string {
	return cast.ToString(c.Get(k))
}

func (c *defaultConfigProvider) GetStringMap(k string) map[string]any {
	return maps.ToStringMap(c.Get(k))
}

func (c *defaultConfigProvider) IsSet(k string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, m := c.getNestedKeyAndMap(strings.ToLower(k), false)
	if m == nil {
		return false
	}
	_, found := m[key]
	return found
}

// Set sets k to v. Map values are merged into an existing map at k.
func (c *defaultConfigProvider) Set(k string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k = strings.ToLower(k)
	if k == "" {
		if p, ok := prepare("", v).(maps.Params); ok {
			c.root.Set(p)
		}
		return
	}

	key, m := c.getNestedKeyAndMap(k, true)
	if m == nil {
		return
	}
	v = prepare(key, v)

	if existing, found := m[key]; found {
		if p1, ok := existing.(maps.Params); ok {
			if p2, ok := v.(maps.Params); ok {
				p1.Set(p2)
				return
			}
		}
	}

	m[key] = v
}

// prepare converts a map value stored at key to maps.Params.
func prepare(key string, v any) any {
	switch v.(type) {
	case map[string]any, map[any]any, map[string]string, maps.Params:
	default:
		return v
	}
	m, err := maps.ToStringMapE(v)
	if err != nil {
		return v
	}
	wrapper := maps.Params{key: m}
	maps.PrepareParams(wrapper, userDataKeys...)
	return wrapper[key]
}

func (c *defaultConfigProvider) getNestedKeyAndMap(key string, create bool) (string, maps.Params) {
	var parts []string
	v, ok := c.keyCache.Load(key)
	if ok {
		parts = v.([]string)
	} else {
		parts = strings.Split(key, ".")
		c.keyCache.Store(key, parts)
	}
	current := c.root
	for i := 0; i < len(parts)-1; i++ {
		next, found := current[parts[i]]
		if !found {
			if !create {
				return "", nil
			}
			next = make(maps.Params)
			current[parts[i]] = next
		}
		var ok bool
		current, ok = next.(maps.Params)
		if !ok {
			// E.g. a string, not a map that we can store values in.
			return "", nil
		}
	}
	return parts[len(parts)-1], current
}
