package ir

import (
	"strings"

	"github.com/polygon-io/simple-binary-encoding/errors"
)

// ByteOrder is the octet order of a primitive encoding.
type ByteOrder byte

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (b ByteOrder) String() string {
	if b == BigEndian {
		return "bigEndian"
	}
	return "littleEndian"
}

// Presence describes how a field value is supplied on the wire.
type Presence byte

const (
	// Required fields always occupy their encoded bytes.
	Required Presence = iota
	// Optional fields reserve a null sentinel within the primitive's domain.
	Optional
	// Constant fields carry a schema-supplied literal and are never read
	// from or written to the wire.
	Constant
)

func (p Presence) String() string {
	switch p {
	case Optional:
		return "optional"
	case Constant:
		return "constant"
	default:
		return "required"
	}
}

// Encoding describes a primitive wire encoding: primitive type, byte order,
// presence class, bounds, sentinel and literal values, and descriptive tags.
// Values are immutable once built; structural tokens carry a default Encoding.
type Encoding struct {
	semanticType      string
	characterEncoding string
	epoch             string
	timeUnit          string
	minValue          PrimitiveValue
	maxValue          PrimitiveValue
	nullValue         PrimitiveValue
	constValue        PrimitiveValue
	primitiveType     PrimitiveType
	byteOrder         ByteOrder
	presence          Presence
}

// NewEncoding returns the default encoding carried by structural tokens:
// no primitive type, little-endian, required presence.
func NewEncoding() *Encoding {
	return &Encoding{}
}

// PrimitiveType returns the primitive kind, or None for structural tokens.
func (e *Encoding) PrimitiveType() PrimitiveType {
	return e.primitiveType
}

// ByteOrder returns the octet order. Only meaningful when a primitive type
// is present.
func (e *Encoding) ByteOrder() ByteOrder {
	return e.byteOrder
}

// Presence returns the presence class.
func (e *Encoding) Presence() Presence {
	return e.presence
}

// MinValue returns the explicit minimum, unset when not declared.
func (e *Encoding) MinValue() PrimitiveValue {
	return e.minValue
}

// MaxValue returns the explicit maximum, unset when not declared.
func (e *Encoding) MaxValue() PrimitiveValue {
	return e.maxValue
}

// NullValue returns the explicit null sentinel, unset when not declared.
func (e *Encoding) NullValue() PrimitiveValue {
	return e.nullValue
}

// ConstValue returns the constant literal, unset unless presence is Constant.
func (e *Encoding) ConstValue() PrimitiveValue {
	return e.constValue
}

// ApplicableMinValue returns the explicit minimum if declared, otherwise the
// primitive's default minimum.
func (e *Encoding) ApplicableMinValue() PrimitiveValue {
	if e.minValue.IsSet() {
		return e.minValue
	}
	return e.primitiveType.MinValue()
}

// ApplicableMaxValue returns the explicit maximum if declared, otherwise the
// primitive's default maximum.
func (e *Encoding) ApplicableMaxValue() PrimitiveValue {
	if e.maxValue.IsSet() {
		return e.maxValue
	}
	return e.primitiveType.MaxValue()
}

// ApplicableNullValue returns the explicit null sentinel if declared,
// otherwise the primitive's default.
func (e *Encoding) ApplicableNullValue() PrimitiveValue {
	if e.nullValue.IsSet() {
		return e.nullValue
	}
	return e.primitiveType.NullValue()
}

// SemanticType returns the descriptive semantic tag, empty when not declared.
// It has no layout effect.
func (e *Encoding) SemanticType() string {
	return e.semanticType
}

// CharacterEncoding returns the character encoding tag for char data.
func (e *Encoding) CharacterEncoding() string {
	return e.characterEncoding
}

// Epoch returns the time epoch tag, empty when not declared.
func (e *Encoding) Epoch() string {
	return e.epoch
}

// TimeUnit returns the time unit tag, empty when not declared.
func (e *Encoding) TimeUnit() string {
	return e.timeUnit
}

func (e *Encoding) String() string {
	var b strings.Builder
	b.WriteString("Encoding{primitiveType=")
	b.WriteString(e.primitiveType.String())
	b.WriteString(", byteOrder=")
	b.WriteString(e.byteOrder.String())
	b.WriteString(", presence=")
	b.WriteString(e.presence.String())
	if e.constValue.IsSet() {
		b.WriteString(", constValue=")
		b.WriteString(e.constValue.String())
	}
	if e.nullValue.IsSet() {
		b.WriteString(", nullValue=")
		b.WriteString(e.nullValue.String())
	}
	if e.semanticType != "" {
		b.WriteString(", semanticType=")
		b.WriteString(e.semanticType)
	}
	b.WriteString("}")
	return b.String()
}

// EncodingBuilder accumulates encoding attributes and validates them on Build.
type EncodingBuilder struct {
	enc Encoding
}

// NewEncodingBuilder creates a builder with default values: no primitive
// type, little-endian, required presence.
func NewEncodingBuilder() *EncodingBuilder {
	return &EncodingBuilder{}
}

// PrimitiveType sets the primitive kind.
func (b *EncodingBuilder) PrimitiveType(p PrimitiveType) *EncodingBuilder {
	b.enc.primitiveType = p
	return b
}

// ByteOrder sets the octet order.
func (b *EncodingBuilder) ByteOrder(o ByteOrder) *EncodingBuilder {
	b.enc.byteOrder = o
	return b
}

// Presence sets the presence class.
func (b *EncodingBuilder) Presence(p Presence) *EncodingBuilder {
	b.enc.presence = p
	return b
}

// MinValue sets the explicit minimum.
func (b *EncodingBuilder) MinValue(v PrimitiveValue) *EncodingBuilder {
	b.enc.minValue = v
	return b
}

// MaxValue sets the explicit maximum.
func (b *EncodingBuilder) MaxValue(v PrimitiveValue) *EncodingBuilder {
	b.enc.maxValue = v
	return b
}

// NullValue sets the explicit null sentinel.
func (b *EncodingBuilder) NullValue(v PrimitiveValue) *EncodingBuilder {
	b.enc.nullValue = v
	return b
}

// ConstValue sets the constant literal.
func (b *EncodingBuilder) ConstValue(v PrimitiveValue) *EncodingBuilder {
	b.enc.constValue = v
	return b
}

// SemanticType sets the semantic tag.
func (b *EncodingBuilder) SemanticType(s string) *EncodingBuilder {
	b.enc.semanticType = s
	return b
}

// CharacterEncoding sets the character encoding tag.
func (b *EncodingBuilder) CharacterEncoding(s string) *EncodingBuilder {
	b.enc.characterEncoding = s
	return b
}

// Epoch sets the time epoch tag.
func (b *EncodingBuilder) Epoch(s string) *EncodingBuilder {
	b.enc.epoch = s
	return b
}

// TimeUnit sets the time unit tag.
func (b *EncodingBuilder) TimeUnit(s string) *EncodingBuilder {
	b.enc.timeUnit = s
	return b
}

// Build validates the accumulated attributes and returns the immutable
// Encoding. The elementPath names the schema element for error reporting.
func (b *EncodingBuilder) Build(elementPath ...string) (*Encoding, error) {
	e := b.enc
	typeName := e.primitiveType.String()

	if e.presence == Constant && !e.constValue.IsSet() {
		return nil, errors.MissingConstant(elementPath, typeName)
	}
	if e.presence == Optional {
		if e.primitiveType == None {
			return nil, errors.MissingNullValue(elementPath, typeName)
		}
		if e.nullValue.IsSet() && !e.nullValue.FitsWithin(e.primitiveType) {
			return nil, errors.BoundsOutOfDomain(elementPath, typeName, e.nullValue.String())
		}
	}
	if e.primitiveType != None {
		if e.constValue.IsSet() && !e.constValue.FitsWithin(e.primitiveType) {
			return nil, errors.BoundsOutOfDomain(elementPath, typeName, e.constValue.String())
		}
		if e.minValue.IsSet() && !e.minValue.FitsWithin(e.primitiveType) {
			return nil, errors.BoundsOutOfDomain(elementPath, typeName, e.minValue.String())
		}
		if e.maxValue.IsSet() && !e.maxValue.FitsWithin(e.primitiveType) {
			return nil, errors.BoundsOutOfDomain(elementPath, typeName, e.maxValue.String())
		}
	}

	return &e, nil
}
