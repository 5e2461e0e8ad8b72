package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ValueKind tags the payload carried by a Value.
type ValueKind string

const (
	ValueKindNull    ValueKind = "null"
	ValueKindText    ValueKind = "text"
	ValueKindNumber  ValueKind = "number"
	ValueKindBoolean ValueKind = "boolean"
	ValueKindList    ValueKind = "list"
)

// Value is a tagged union over the payloads a dynamic field can carry.
// On the wire it stays a plain JSON scalar / string list / null.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	Bool   bool
	List   []string
}

// TextValue builds a text Value.
func TextValue(s string) Value { return Value{Kind: ValueKindText, Text: s} }

// NumberValue builds a number Value.
func NumberValue(n float64) Value { return Value{Kind: ValueKindNumber, Number: n} }

// BoolValue builds a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: ValueKindBoolean, Bool: b} }

// ListValue builds a string-list Value.
func ListValue(items []string) Value { return Value{Kind: ValueKindList, List: items} }

// MarshalJSON renders the payload as the natural JSON form of its kind.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueKindText:
		return json.Marshal(v.Text)
	case ValueKindNumber:
		return json.Marshal(v.Number)
	case ValueKindBoolean:
		return json.Marshal(v.Bool)
	case ValueKindList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON tags the incoming JSON scalar/list with its kind.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Value{Kind: ValueKindNull}
	case string:
		*v = TextValue(t)
	case float64:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	case []interface{}:
		items := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("field value lists may only contain strings, got %T", e)
			}
			items = append(items, s)
		}
		*v = ListValue(items)
	default:
		return fmt.Errorf("unsupported field value type %T", t)
	}
	return nil
}

// String renders the payload for display and free-text search.
func (v Value) String() string {
	switch v.Kind {
	case ValueKindText:
		return v.Text
	case ValueKindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueKindBoolean:
		return strconv.FormatBool(v.Bool)
	case ValueKindList:
		out := ""
		for i, s := range v.List {
			if i > 0 {
				out += ", "
			}
			out += s
		}
		return out
	default:
		return ""
	}
}

// ConformsTo checks the value against the declared type of the referenced
// field definition. Null is always accepted: an empty form input clears the
// value regardless of type.
func (v Value) ConformsTo(f *InputField) error {
	if v.Kind == ValueKindNull {
		return nil
	}
	switch f.Type {
	case FieldTypeText, FieldTypeFile:
		if v.Kind != ValueKindText {
			return fmt.Errorf("field %q expects text, got %s", f.Label, v.Kind)
		}
	case FieldTypeNumber:
		if v.Kind != ValueKindNumber {
			return fmt.Errorf("field %q expects a number, got %s", f.Label, v.Kind)
		}
	case FieldTypeCheckbox:
		if v.Kind != ValueKindBoolean {
			return fmt.Errorf("field %q expects a boolean, got %s", f.Label, v.Kind)
		}
	case FieldTypeSelect:
		switch v.Kind {
		case ValueKindText:
			if !f.HasOption(v.Text) {
				return fmt.Errorf("field %q has no option %q", f.Label, v.Text)
			}
		case ValueKindList:
			for _, s := range v.List {
				if !f.HasOption(s) {
					return fmt.Errorf("field %q has no option %q", f.Label, s)
				}
			}
		default:
			return fmt.Errorf("field %q expects an option or option list, got %s", f.Label, v.Kind)
		}
	}
	return nil
}

// FieldValue attaches one value to one catalog field.
type FieldValue struct {
	FieldRef uuid.UUID `json:"fieldRef"`
	Value    Value     `json:"value"`
}

// ResolvedFieldValue is a FieldValue joined with its definition for reads.
// Field is nil when the definition was deleted after the value was written;
// consumers render such entries as an unknown field.
type ResolvedFieldValue struct {
	FieldRef uuid.UUID   `json:"fieldRef"`
	Field    *InputField `json:"field"`
	Value    Value       `json:"value"`
}
