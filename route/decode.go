package route

import (
	"fmt"
	"reflect"

	"github.com/dlclark/regexp2"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/sunwei/templatehtml/common/maps"
)

var routeType = reflect.TypeOf(Route{})

// DecodeHook returns a mapstructure hook that decodes a Route from config.
//
// A string is a literal route:
//
//	route = "/admin"
//
// A table with a pattern key is a pattern route:
//
//	route = { pattern = "^/(admin|staff)" }
func DecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != routeType {
			return data, nil
		}
		switch v := data.(type) {
		case Route:
			return v, nil
		case *regexp2.Regexp:
			return FromRegexp(v), nil
		case string:
			if v == "" {
				return Route{}, nil
			}
			return Literal(v), nil
		case nil:
			return Route{}, nil
		}

		m, err := maps.ToStringMapE(data)
		if err != nil {
			return nil, fmt.Errorf("route: unsupported type %T", data)
		}
		p := maps.Params(m)
		maps.PrepareParams(p)
		if expr, found := p["pattern"]; found {
			return Pattern(cast.ToString(expr))
		}
		if lit, found := p["literal"]; found {
			return Literal(cast.ToString(lit)), nil
		}
		return nil, fmt.Errorf("route: expected a string or a table with a pattern key, got %v", data)
	}
}
