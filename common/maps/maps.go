package maps

import "github.com/spf13/cast"

// ToStringMapE converts in to map[string]interface{}.
func ToStringMapE(in any) (map[string]any, error) {
	switch vv := in.(type) {
	case Params:
		return vv, nil
	case map[string]string:
		var m = map[string]any{}
		for k, v := range vv {
			m[k] = v
		}
		return m, nil
	default:
		return cast.ToStringMapE(in)
	}
}

// ToStringMap converts in to map[string]interface{}.
func ToStringMap(in any) map[string]any {
	m, _ := ToStringMapE(in)
	return m
}

// ToStringMapString converts in to map[string]string.
func ToStringMapString(in any) map[string]string {
	m, _ := ToStringMapStringE(in)
	return m
}

// ToStringMapStringE converts in to map[string]string.
func ToStringMapStringE(in any) (map[string]string, error) {
	m, err := ToStringMapE(in)
	if err != nil {
		return nil, err
	}
	return cast.ToStringMapStringE(m)
}

// Merge returns a new map holding the keys of all layers.
// Later layers win for keys present in more than one layer. The merge is
// shallow and keys keep their case. Nil layers are skipped.
func Merge(layers ...map[string]any) map[string]any {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	m := make(map[string]any, n)
	for _, l := range layers {
		for k, v := range l {
			m[k] = v
		}
	}
	return m
}

// FromStringMapString widens a map[string]string.
func FromStringMapString(in map[string]string) map[string]any {
	if in == nil {
		return nil
	}
	m := make(map[string]any, len(in))
	for k, v := range in {
		m[k] = v
	}
	return m
}
