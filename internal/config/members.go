package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

// MembersKind identifies which variant of the members union a document
// actually carried.
type MembersKind int

const (
	// MembersNone means no members field was present.
	MembersNone MembersKind = iota
	// MembersEnum is a label to integer-code mapping.
	MembersEnum
	// MembersTuple is an ordered sequence of nested datatype fragments.
	MembersTuple
	// MembersElement is a single nested datatype fragment (array element).
	MembersElement
)

// Members is the polymorphic "members" attribute of a datatype descriptor.
// Its valid shape depends on the sibling "type" field: enums carry a
// label-to-code mapping, tuples an ordered fragment list and arrays an
// element fragment. The union is resolved once at decode time; whether the
// resolved variant matches the declared type is a rule-catalog concern.
type Members struct {
	Kind    MembersKind
	Enum    map[string]int64
	Tuple   []*DataInfo
	Element *DataInfo
}

// UnmarshalJSON resolves the union from the raw document shape.
func (m *Members) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return errors.New("members value is empty")
	}
	switch trimmed[0] {
	case '[':
		var tuple []*DataInfo
		if err := json.Unmarshal(data, &tuple); err != nil {
			return fmt.Errorf("decode tuple members: %w", err)
		}
		m.Kind = MembersTuple
		m.Tuple = tuple
		return nil
	case '{':
		var codes map[string]int64
		if err := json.Unmarshal(data, &codes); err == nil {
			m.Kind = MembersEnum
			m.Enum = codes
			return nil
		}
		var element DataInfo
		if err := json.Unmarshal(data, &element); err != nil {
			return fmt.Errorf("decode members: %w", err)
		}
		m.Kind = MembersElement
		m.Element = &element
		return nil
	default:
		return fmt.Errorf("members must be a mapping or a sequence")
	}
}

// MarshalJSON renders the resolved variant back into its document shape.
func (m Members) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case MembersEnum:
		return json.Marshal(m.Enum)
	case MembersTuple:
		return json.Marshal(m.Tuple)
	case MembersElement:
		return json.Marshal(m.Element)
	default:
		return []byte("null"), nil
	}
}

// JSONSchema declares the union for the generated document schema.
func (Members) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Type: "object", AdditionalProperties: &jsonschema.Schema{Type: "integer"}},
			{Type: "array", Items: &jsonschema.Schema{Ref: "#/$defs/DataInfo"}},
			{Ref: "#/$defs/DataInfo"},
		},
	}
}
