package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	// Packages
	toolbridge "github.com/mutablelogic/go-toolbridge"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Type is the semantic type of a parameter or a tool result
type Type string

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeString  Type = "string"
)

const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Type) String() string {
	return string(t)
}

// Valid returns true if the type is one of the known semantic types
func (t Type) Valid() bool {
	switch t {
	case TypeInteger, TypeNumber, TypeBoolean, TypeString:
		return true
	default:
		return false
	}
}

////////////////////////////////////////////////////////////////////////////////
// COERCION

// Coerce converts an argument value into the Go representation of the type:
// int64, float64, bool or string. A nil value never coerces.
func (t Type) Coerce(v any) (any, error) {
	if v == nil {
		return nil, toolbridge.ErrBadParameter.Withf("expected %s, got null", t)
	}
	switch t {
	case TypeInteger:
		return coerceInteger(v)
	case TypeNumber:
		return coerceNumber(v)
	case TypeBoolean:
		return coerceBoolean(v)
	case TypeString:
		return coerceString(v)
	default:
		return nil, toolbridge.ErrBadParameter.Withf("unknown type %q", t)
	}
}

// Parse converts a trimmed response body into the Go representation
// of the type. Parse failures are reported as ErrResponseFormat.
func (t Type) Parse(body string) (any, error) {
	switch t {
	case TypeString:
		return body, nil
	case TypeInteger:
		if v, err := strconv.ParseInt(body, 10, 64); err != nil {
			return nil, toolbridge.ErrResponseFormat.Withf("invalid integer response: %v", err)
		} else {
			return v, nil
		}
	case TypeNumber:
		if v, err := strconv.ParseFloat(body, 64); err != nil {
			return nil, toolbridge.ErrResponseFormat.Withf("invalid number response: %v", err)
		} else {
			return v, nil
		}
	case TypeBoolean:
		if v, err := strconv.ParseBool(body); err != nil {
			return nil, toolbridge.ErrResponseFormat.Withf("invalid boolean response: %v", err)
		} else {
			return v, nil
		}
	default:
		return nil, toolbridge.ErrResponseFormat.Withf("unknown result type %q", t)
	}
}

// Format renders a coerced value as a string, for query parameters
func Format(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func coerceInteger(v any) (any, error) {
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return uintToInt64(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return uintToInt64(v)
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		} else if f, err := v.Float64(); err == nil {
			return floatToInt64(f)
		}
		return nil, toolbridge.ErrBadParameter.Withf("expected integer, got %q", v.String())
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
			return nil, toolbridge.ErrBadParameter.Withf("expected integer, got %q", v)
		} else {
			return i, nil
		}
	default:
		return nil, toolbridge.ErrBadParameter.Withf("expected integer, got %T", v)
	}
}

func uintToInt64(v uint64) (any, error) {
	if v > math.MaxInt64 {
		return nil, toolbridge.ErrBadParameter.Withf("integer %d out of range", v)
	}
	return int64(v), nil
}

func floatToInt64(v float64) (any, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return nil, toolbridge.ErrBadParameter.Withf("expected integer, got %v", v)
	}
	if v < minInt64Float || v >= maxInt64Float {
		return nil, toolbridge.ErrBadParameter.Withf("integer %v out of range", v)
	}
	return int64(v), nil
}

func coerceNumber(v any) (any, error) {
	switch v := v.(type) {
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		if f, err := v.Float64(); err != nil {
			return nil, toolbridge.ErrBadParameter.Withf("expected number, got %q", v.String())
		} else {
			return f, nil
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return nil, toolbridge.ErrBadParameter.Withf("expected number, got %q", v)
		} else {
			return f, nil
		}
	default:
		return nil, toolbridge.ErrBadParameter.Withf("expected number, got %T", v)
	}
}

func coerceBoolean(v any) (any, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err != nil {
			return nil, toolbridge.ErrBadParameter.Withf("expected boolean, got %q", v)
		} else {
			return b, nil
		}
	default:
		return nil, toolbridge.ErrBadParameter.Withf("expected boolean, got %T", v)
	}
}

func coerceString(v any) (any, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		if i, err := coerceInteger(v); err != nil {
			return nil, err
		} else {
			return strconv.FormatInt(i.(int64), 10), nil
		}
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return nil, toolbridge.ErrBadParameter.Withf("expected string, got %T", v)
	}
}
