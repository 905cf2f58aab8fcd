package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	// KindJSON holds a nested array or object verbatim.
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindJSON:
		return "json"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a scalar used both as a query parameter and as a record field.
// The zero Value is null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// Latest is the sentinel accepted by OpenF1 for session_key and meeting_key.
var Latest = String("latest")

func Null() Value              { return Value{} }
func String(s string) Value    { return Value{kind: KindString, s: s} }
func Int(i int) Value          { return Value{kind: KindInt, i: int64(i)} }
func Int64(i int64) Value      { return Value{kind: KindInt, i: i} }
func Float(f float64) Value    { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value        { return Value{kind: KindBool, b: b} }
func RawJSON(raw []byte) Value { return Value{kind: KindJSON, s: string(raw)} }

// Key builds a session or meeting key from user input: digits become an
// integer, anything else (such as "latest") is kept as a string.
func Key(s string) Value {
	if s == "" {
		return Null()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int64(i)
	}
	return String(s)
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat also converts integers.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// String returns the text form used in query strings and table cells.
// Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindJSON:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Interface returns the Go value for v: nil, string, int64, float64, bool or
// json.RawMessage.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindJSON:
		return json.RawMessage(v.s)
	}
	return nil
}

func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindJSON:
		return []byte(v.s), nil
	}
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := FromJSON(raw, data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromJSON converts a value decoded with UseNumber into a Value. raw is the
// original encoding, kept for arrays and objects.
func FromJSON(decoded any, raw []byte) (Value, error) {
	switch t := decoded.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int64(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Null(), fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Float(f), nil
	case []any, map[string]any:
		return RawJSON(bytes.TrimSpace(raw)), nil
	}
	return Null(), fmt.Errorf("unsupported JSON value %T", decoded)
}
