package blueprint

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Property type tags used by the save format.
const (
	TypeFloat  = "Float"
	TypeByte   = "Byte"
	TypeStruct = "Struct"
	TypeObject = "Object"

	structLinearColor = "LinearColor"
)

// Property is a typed, named value attached to an object. Exactly one of the
// value fields is meaningful, selected by Type. Types the converter does not
// model, and values that do not match their type, keep their JSON verbatim
// in Raw.
type Property struct {
	Name string
	Type string

	Float  float64
	Byte   *ByteValue
	Struct *StructValue
	Object *Reference
	Raw    json.RawMessage

	Extra Extra
}

type ByteValue struct {
	Enum  *string `json:"enum"`
	Value int     `json:"value"`
}

// StructValue is a nested property bag. LinearColor structs carry a single
// color object instead of a property list.
type StructValue struct {
	Type   string
	Values []Property
	Color  *LinearColor
	Raw    json.RawMessage

	Extra Extra
}

// Find returns the nested property with the given name.
func (s *StructValue) Find(name string) (*Property, bool) {
	for i := range s.Values {
		if s.Values[i].Name == name {
			return &s.Values[i], true
		}
	}
	return nil, false
}

func (p Property) MarshalJSON() ([]byte, error) {
	var value any
	switch {
	case p.Raw != nil:
		value = p.Raw
	case p.Type == TypeFloat:
		value = p.Float
	case p.Type == TypeByte:
		value = p.Byte
	case p.Type == TypeStruct:
		value = p.Struct
	case p.Type == TypeObject:
		value = p.Object
	}
	return encodeMembers([]member{
		{"name", p.Name},
		{"type", p.Type},
		{"value", value},
	}, p.Extra)
}

// UnmarshalJSON never rejects a well-formed object: a value that does not
// match its declared type is kept in Raw.
func (p *Property) UnmarshalJSON(data []byte) error {
	*p = Property{}
	var value json.RawMessage
	extra, err := decodeMembers(data, map[string]any{
		"name":  &p.Name,
		"type":  &p.Type,
		"value": &value,
	})
	if err != nil {
		return err
	}
	p.Extra = extra
	if isNull(value) {
		return nil
	}

	ok := false
	switch p.Type {
	case TypeFloat:
		ok = fits(value, &p.Float)
	case TypeByte:
		ok = fits(value, &p.Byte)
	case TypeStruct:
		ok = fits(value, &p.Struct)
	case TypeObject:
		ok = fits(value, &p.Object)
	}
	if !ok {
		p.Raw = compact(value)
	}
	return nil
}

func (s StructValue) MarshalJSON() ([]byte, error) {
	var values any
	switch {
	case s.Raw != nil:
		values = s.Raw
	case s.Color != nil:
		values = s.Color
	default:
		values = s.Values
	}
	return encodeMembers([]member{
		{"type", s.Type},
		{"values", values},
	}, s.Extra)
}

func (s *StructValue) UnmarshalJSON(data []byte) error {
	*s = StructValue{}
	var values json.RawMessage
	extra, err := decodeMembers(data, map[string]any{
		"type":   &s.Type,
		"values": &values,
	})
	if err != nil {
		return err
	}
	s.Extra = extra
	raw := bytes.TrimSpace(values)
	if isNull(raw) {
		return nil
	}

	ok := false
	switch {
	case s.Type == structLinearColor:
		ok = fits(raw, &s.Color)
	case raw[0] == '[':
		ok = fits(raw, &s.Values)
	}
	if !ok {
		s.Raw = compact(raw)
	}
	return nil
}
