// File: kind.go
// Title: Value Kinds
// Description: The underlying kinds a field can hold, the kind check used
//              as the first step of every field validation and the text
//              parse rule used when decoding rows.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
)

// Kind is the underlying value kind of a field
type Kind int

const (
	// KindString holds Go string values
	KindString Kind = iota

	// KindInteger holds Go int values
	KindInteger

	// KindFloat holds Go float64 values
	KindFloat
)

// String returns the short kind name used in messages and config files
func (k Kind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// IsValid reports whether k is one of the declared kinds
func (k Kind) IsValid() bool {
	return k == KindString || k == KindInteger || k == KindFloat
}

// Matches reports whether value has exactly this kind. There is no numeric
// coercion: an int never matches KindFloat.
func (k Kind) Matches(value interface{}) bool {
	switch k {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindInteger:
		_, ok := value.(int)
		return ok
	case KindFloat:
		_, ok := value.(float64)
		return ok
	default:
		return false
	}
}

// Parse converts a text token into a value of this kind. Integers and
// floats ignore surrounding whitespace; strings are returned unchanged.
func (k Kind) Parse(token string) (interface{}, error) {
	switch k {
	case KindString:
		return token, nil
	case KindInteger:
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, err
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("cannot parse into kind %d", int(k))
	}
}

// Zero returns the zero value of the kind
func (k Kind) Zero() interface{} {
	switch k {
	case KindInteger:
		return 0
	case KindFloat:
		return 0.0
	default:
		return ""
	}
}

// ParseKind parses a kind name as written in schema declarations
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "str", "string":
		return KindString, nil
	case "int", "integer":
		return KindInteger, nil
	case "float", "float64", "double":
		return KindFloat, nil
	default:
		return KindString, mdwerror.New(fmt.Sprintf("unknown kind %q", name)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("validation.ParseKind").
			WithDetail("kind", name)
	}
}

// KindOf names the kind of an arbitrary value for mismatch reports
func KindOf(value interface{}) string {
	switch value.(type) {
	case nil:
		return "nil"
	case string:
		return KindString.String()
	case int:
		return KindInteger.String()
	case float64:
		return KindFloat.String()
	default:
		return reflect.TypeOf(value).String()
	}
}

// toFloat64 converts numeric values for range checks
func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// valueLength returns the length of strings, slices, arrays or maps, or -1
func valueLength(value interface{}) int {
	if value == nil {
		return 0
	}
	if s, ok := value.(string); ok {
		return len(s)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan, reflect.String:
		return rv.Len()
	default:
		return -1
	}
}
