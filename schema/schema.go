package schema

import (
	"github.com/polygon-io/simple-binary-encoding/ir"
)

// Schema is a resolved schema graph as handed to the layout resolver by an
// external schema-definition front end. The resolver's only contract with
// that collaborator is read-only traversal of the declared structure; type
// references are already resolved to the node they name.
type Schema struct {
	Package         string
	Namespace       string
	SemanticVersion string
	Description     string
	HeaderType      *Composite
	Types           []Type
	Messages        []*Message
	ID              int
	Version         int
	ByteOrder       ir.ByteOrder

	// ConstantFootprint selects the wire-representation rule for constant
	// presence fields: when true, constants occupy their declared space and
	// advance the block cursor; when false (the default) they contribute no
	// wire bytes. This is a per-schema declaration, not a toolkit-wide
	// constant.
	ConstantFootprint bool
}

// Type is a named schema type: an encoded primitive type, a composite, an
// enum, or a choice set.
type Type interface {
	TypeName() string
	TypeVersion() int
	TypeDeprecated() int
	TypeDescription() string
}

// TypeInfo carries the attributes common to all named types.
type TypeInfo struct {
	Name         string
	Description  string
	SemanticType string
	Version      int
	Deprecated   int
}

// TypeName returns the declared type name.
func (t *TypeInfo) TypeName() string { return t.Name }

// TypeVersion returns the version the type was introduced in.
func (t *TypeInfo) TypeVersion() int { return t.Version }

// TypeDeprecated returns the version the type was deprecated at, 0 for never.
func (t *TypeInfo) TypeDeprecated() int { return t.Deprecated }

// TypeDescription returns the declared description.
func (t *TypeInfo) TypeDescription() string { return t.Description }

// EncodedType is a simple type over a primitive encoding, scalar or
// fixed-length array.
type EncodedType struct {
	TypeInfo
	MinValue          ir.PrimitiveValue
	MaxValue          ir.PrimitiveValue
	NullValue         ir.PrimitiveValue
	ConstValue        ir.PrimitiveValue
	CharacterEncoding string
	Epoch             string
	TimeUnit          string
	Primitive         ir.PrimitiveType
	Presence          ir.Presence

	// Length is the fixed array length; 1 declares a scalar.
	Length int
}

// ElementCount returns the declared array length, treating the zero value
// as a scalar declaration.
func (t *EncodedType) ElementCount() int {
	if t.Length == 0 {
		return 1
	}
	return t.Length
}

// Composite is an ordered aggregate of member types laid out back to back,
// subject to explicit member offsets and block alignment.
type Composite struct {
	TypeInfo
	Members []Member

	// Alignment, when non-zero, rounds the composite's total encoded
	// length up to a multiple of this many octets.
	Alignment int
}

// Member is one element of a composite. Ref is non-empty when the member
// was declared as a reference to a named type; the member name then applies
// in context while Ref preserves the referenced type name.
type Member struct {
	Type   Type
	Name   string
	Ref    string
	Offset *int
}

// MemberName returns the name applying in context: the member's own name
// when declared, falling back to the type's name.
func (m *Member) MemberName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Type.TypeName()
}

// Enum is a closed value enumeration over an integer or char primitive.
type Enum struct {
	TypeInfo
	ValidValues []ValidValue
	Encoding    ir.PrimitiveType
	NullValue   ir.PrimitiveValue
}

// ValidValue is one declared case of an enum.
type ValidValue struct {
	Name        string
	Description string
	Value       ir.PrimitiveValue
	Version     int
	Deprecated  int
}

// Set is a multi-value bitset choice over an unsigned primitive.
type Set struct {
	TypeInfo
	Choices  []Choice
	Encoding ir.PrimitiveType
}

// Choice is one declared bit of a set.
type Choice struct {
	Name        string
	Description string
	Bit         int
	Version     int
	Deprecated  int
}

// Message is a top-level message declaration.
type Message struct {
	Name         string
	Description  string
	SemanticType string
	Fields       []*Field
	ID           int
	Version      int
	Deprecated   int

	// BlockLength, when non-zero, declares the message's fixed block
	// length; it must not be less than the resolved field footprint.
	BlockLength int

	// Alignment, when non-zero, rounds the resolved block length up to a
	// multiple of this many octets.
	Alignment int
}

// FieldKind discriminates the role of a Field entry.
type FieldKind byte

const (
	KindValue FieldKind = iota
	KindGroup
	KindVarData
)

// Field is one entry of a message or group body: a value field over a
// type, a nested repeating group, or a variable-length data block. Kind
// selects which of Type, Group, or VarData is set.
type Field struct {
	Type        Type
	Group       *Group
	VarData     *VarData
	Offset       *int
	Name         string
	Description  string
	SemanticType string
	ID           int
	Version      int
	Deprecated   int
	Presence     ir.Presence
	Kind         FieldKind
}

// Group is a repeating group: a dimension header composite followed by a
// repeated template block of fields.
type Group struct {
	Name        string
	Description string
	Fields      []*Field
	ID          int
	Version     int
	Deprecated  int

	// Dimension describes the group size header (block length and repeat
	// count descriptors). When nil the resolver applies the standard
	// header: uint16 blockLength followed by uint16 numInGroup.
	Dimension *Composite

	// BlockLength, when non-zero, declares the repeated block's fixed
	// length; it must not be less than the resolved field footprint.
	BlockLength int
}

// VarData is a variable-length data block: a length prefix primitive
// followed by payload octets whose count is only knowable at runtime.
type VarData struct {
	Name              string
	Description       string
	SemanticType      string
	CharacterEncoding string
	ID                int
	Version           int
	Deprecated        int

	// LengthPrimitive is the length prefix type, defaulting to UInt32.
	LengthPrimitive ir.PrimitiveType

	// DataPrimitive is the payload element type, defaulting to UInt8.
	DataPrimitive ir.PrimitiveType
}

// LengthType returns the length prefix primitive, applying the default.
func (v *VarData) LengthType() ir.PrimitiveType {
	if v.LengthPrimitive == ir.None {
		return ir.UInt32
	}
	return v.LengthPrimitive
}

// DataType returns the payload element primitive, applying the default.
func (v *VarData) DataType() ir.PrimitiveType {
	if v.DataPrimitive == ir.None {
		return ir.UInt8
	}
	return v.DataPrimitive
}
