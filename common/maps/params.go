package maps

import (
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Params is a map where all keys are lower case.
type Params map[string]any

// Set overwrites values in p with values in pp for common or new keys.
// This is done recursively.
func (p Params) Set(pp Params) {
	for k, v := range pp {
		vv, found := p[k]
		if !found {
			p[k] = v
			continue
		}
		switch vvv := vv.(type) {
		case Params:
			if pv, ok := v.(Params); ok {
				vvv.Set(pv)
			} else {
				p[k] = v
			}
		default:
			p[k] = v
		}
	}
}

// Get does a lower case and nested search in this map.
// It will return nil if none found.
func (p Params) Get(indices ...string) any {
	v, _, _ := getNested(p, indices)
	return v
}

func getNested(m map[string]any, indices []string) (any, string, map[string]any) {
	if len(indices) == 0 {
		return nil, "", nil
	}

	first := indices[0]
	v, found := m[strings.ToLower(cast.ToString(first))]
	if !found {
		if len(indices) == 1 {
			return nil, first, m
		}
		return nil, "", nil
	}

	if len(indices) == 1 {
		return v, first, m
	}

	switch m2 := v.(type) {
	case Params:
		return getNested(m2, indices[1:])
	case map[string]any:
		return getNested(m2, indices[1:])
	default:
		return nil, "", nil
	}
}

// PrepareParams
// * makes all the keys in the given map lower cased and will do so
// * This will modify the map given.
// * Any nested map[interface{}]interface{}, map[string]interface{},map[string]string  will be converted to Params.
// * Nested slices of maps (e.g. the page list) are prepared element by element.
// * The keys of the maps below a key in keepCase keep their case, at any depth.
//   keepCase holds lower case keys.
func PrepareParams(m Params, keepCase ...string) {
	prepareParams(m, keepCase, true)
}

func prepareParams(m Params, keepCase []string, lower bool) {
	for k, v := range m {
		var retyped bool
		key := k
		if lower {
			key = strings.ToLower(k)
		}
		lowerBelow := lower && !slices.Contains(keepCase, key)
		switch vv := v.(type) {
		case map[any]any:
			var p Params = cast.ToStringMap(v)
			v = p
			prepareParams(p, keepCase, lowerBelow)
			retyped = true
		case map[string]any:
			var p Params = vv
			v = p
			prepareParams(p, keepCase, lowerBelow)
			retyped = true
		case map[string]string:
			p := make(Params)
			for k, v := range vv {
				p[k] = v
			}
			v = p
			prepareParams(p, keepCase, lowerBelow)
			retyped = true
		case Params:
			prepareParams(vv, keepCase, lowerBelow)
		case []any:
			for i, e := range vv {
				if !isMap(e) {
					continue
				}
				if p, err := ToStringMapE(e); err == nil {
					pp := Params(p)
					prepareParams(pp, keepCase, lowerBelow)
					vv[i] = pp
				}
			}
		case []map[string]any:
			s := make([]any, len(vv))
			for i, e := range vv {
				p := Params(e)
				prepareParams(p, keepCase, lowerBelow)
				s[i] = p
			}
			v = s
			retyped = true
		}

		if retyped || k != key {
			delete(m, k)
			m[key] = v
		}
	}
}

func isMap(v any) bool {
	switch v.(type) {
	case map[any]any, map[string]any, map[string]string, Params:
		return true
	}
	return false
}
