// Package normalize converts opaque provider objects into plain values
// so downstream logic never depends on provider-specific types. The
// output is built from exactly three shapes: scalars, map[string]any
// mappings, and []any sequences, applied recursively.
package normalize

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/agentstation/tenantmap/pkg/constants"
	"github.com/agentstation/tenantmap/pkg/errors"
)

// Normalize converts a provider object into a plain value.
//
// Rules, applied recursively:
//   - structs (the attribute-bag case) become map[string]any keyed by the
//     field's json tag, or the snake_cased field name without one
//   - mappings are processed key-by-key; sequences element-wise
//   - pointers and interfaces are dereferenced, nil becomes nil
//   - scalars pass through unchanged
//
// Normalize is idempotent: applying it to an already-normalized value
// returns an equal value. Recursion is bounded; objects nested (or
// cyclic) beyond the depth ceiling fail with a malformed-object error
// instead of recursing unboundedly.
func Normalize(value any) (any, error) {
	return normalizeValue(value, 0)
}

// Map normalizes a value and asserts the result is a mapping. Non-map
// results return a malformed-object error.
func Map(value any) (map[string]any, error) {
	normalized, err := Normalize(value)
	if err != nil {
		return nil, err
	}
	m, ok := normalized.(map[string]any)
	if !ok {
		return nil, errors.NewMalformedObjectError("", "", fmt.Sprintf("expected mapping, got %T", normalized))
	}
	return m, nil
}

func normalizeValue(value any, depth int) (any, error) {
	if depth > constants.MaxNormalizeDepth {
		return nil, errors.NewMalformedObjectError("", "", "recursion depth ceiling exceeded")
	}

	switch v := value.(type) {
	case nil:
		return nil, nil
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	case time.Time:
		return v, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			normalized, err := normalizeValue(item, depth+1)
			if err != nil {
				return nil, err
			}
			out[key] = normalized
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			normalized, err := normalizeValue(item, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = normalized
		}
		return out, nil
	}

	return normalizeReflect(reflect.ValueOf(value), depth)
}

func normalizeReflect(rv reflect.Value, depth int) (any, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return normalizeStruct(rv, depth)
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			normalized, err := normalizeValue(iter.Value().Interface(), depth+1)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(iter.Key().Interface())] = normalized
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			normalized, err := normalizeValue(rv.Index(i).Interface(), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = normalized
		}
		return out, nil
	case reflect.Invalid:
		return nil, nil
	default:
		// Remaining kinds are scalars (named string/number types and the like).
		return rv.Interface(), nil
	}
}

func normalizeStruct(rv reflect.Value, depth int) (any, error) {
	rt := rv.Type()

	// time.Time and friends are scalars, not attribute bags.
	if rt == reflect.TypeOf(time.Time{}) {
		return rv.Interface(), nil
	}

	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		key, omitEmpty := fieldKey(field)
		if key == "-" {
			continue
		}

		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}

		normalized, err := normalizeValue(fv.Interface(), depth+1)
		if err != nil {
			return nil, err
		}
		out[key] = normalized
	}
	return out, nil
}

// fieldKey returns the mapping key for a struct field: the json tag name
// if present, otherwise the snake_cased field name.
func fieldKey(field reflect.StructField) (key string, omitEmpty bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return snakeCase(field.Name), false
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	if name == "" {
		return snakeCase(field.Name), omitEmpty
	}
	return name, omitEmpty
}

// snakeCase converts a Go field name to snake_case, keeping initialisms
// intact: SubscriptionID becomes subscription_id.
func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
				nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
				if prevLower || nextLower {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
