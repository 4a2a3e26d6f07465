package normalize

import (
	"math"
	"strconv"
	"strings"

	"MemeIQ/internal/domain/models"
)

// Number coerces an arbitrary JSON value to a finite float.
// ok is false for nil, non-numeric strings, NaN and infinities.
func Number(v interface{}) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case bool:
		if t {
			f = 1
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, true
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text returns v as a trimmed string when it is a non-empty string.
func Text(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Flag reports truthiness: a non-empty string (an authority address) or a true bool
// or a non-zero number. ok is false only for nil.
func Flag(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case nil:
		return false, false
	case bool:
		return t, true
	case string:
		return strings.TrimSpace(t) != "", true
	default:
		if f, ok := Number(t); ok {
			return f != 0, true
		}
		return true, true
	}
}

// Finite maps NaN and infinities to 0.
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Lookup walks a dot path through nested objects. Numeric segments index arrays.
func Lookup(p models.Payload, path string) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	var cur interface{} = p
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []interface{}:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

// Items returns the array found at the first path that holds one.
func Items(p models.Payload, paths ...string) []interface{} {
	for _, path := range paths {
		var v interface{}
		var ok bool
		if path == "" {
			v, ok = p, p != nil
		} else {
			v, ok = Lookup(p, path)
		}
		if !ok {
			continue
		}
		if arr, isArr := v.([]interface{}); isArr && len(arr) > 0 {
			return arr
		}
	}
	return nil
}

// FirstNumber returns the first finite non-zero number among the keys of obj.
func FirstNumber(obj map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := Number(obj[k]); ok && f != 0 {
			return f, true
		}
	}
	return 0, false
}

// FirstText returns the first non-empty string among the keys of obj.
func FirstText(obj map[string]interface{}, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := Text(obj[k]); ok {
			return s, true
		}
	}
	return "", false
}
