package ir

import (
	"fmt"
	"math"
)

// PrimitiveType is a wire primitive kind carried by leaf encodings.
// The zero value None marks structural tokens with no primitive.
type PrimitiveType byte

const (
	None PrimitiveType = iota
	Char
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float
	Double
)

func (p PrimitiveType) String() string {
	switch p {
	case None:
		return "none"
	case Char:
		return "char"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case UInt8:
		return "uint8"
	case UInt16:
		return "uint16"
	case UInt32:
		return "uint32"
	case UInt64:
		return "uint64"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// Size returns the encoded width of the primitive in octets.
func (p PrimitiveType) Size() int {
	switch p {
	case Char, Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float:
		return 4
	case Int64, UInt64, Double:
		return 8
	default:
		return 0
	}
}

// IsUnsigned reports whether the primitive is one of the unsigned integer kinds.
func (p PrimitiveType) IsUnsigned() bool {
	switch p {
	case UInt8, UInt16, UInt32, UInt64:
		return true
	default:
		return false
	}
}

// MinValue returns the default minimum for the primitive's domain.
func (p PrimitiveType) MinValue() PrimitiveValue {
	switch p {
	case Char:
		return NewLongValue(0x20)
	case Int8:
		return NewLongValue(math.MinInt8 + 1)
	case Int16:
		return NewLongValue(math.MinInt16 + 1)
	case Int32:
		return NewLongValue(math.MinInt32 + 1)
	case Int64:
		return NewLongValue(math.MinInt64 + 1)
	case UInt8, UInt16, UInt32, UInt64:
		return NewLongValue(0)
	case Float:
		return NewDoubleValue(math.SmallestNonzeroFloat32)
	case Double:
		return NewDoubleValue(math.SmallestNonzeroFloat64)
	default:
		return PrimitiveValue{}
	}
}

// MaxValue returns the default maximum for the primitive's domain.
// Unsigned maxima are stored as raw two's complement bits.
func (p PrimitiveType) MaxValue() PrimitiveValue {
	switch p {
	case Char:
		return NewLongValue(0x7E)
	case Int8:
		return NewLongValue(math.MaxInt8)
	case Int16:
		return NewLongValue(math.MaxInt16)
	case Int32:
		return NewLongValue(math.MaxInt32)
	case Int64:
		return NewLongValue(math.MaxInt64)
	case UInt8:
		return NewLongValue(math.MaxUint8 - 1)
	case UInt16:
		return NewLongValue(math.MaxUint16 - 1)
	case UInt32:
		return NewLongValue(math.MaxUint32 - 1)
	case UInt64:
		u := uint64(math.MaxUint64 - 1)
		return NewLongValue(int64(u))
	case Float:
		return NewDoubleValue(math.MaxFloat32)
	case Double:
		return NewDoubleValue(math.MaxFloat64)
	default:
		return PrimitiveValue{}
	}
}

// NullValue returns the default null sentinel for optional fields of this primitive.
func (p PrimitiveType) NullValue() PrimitiveValue {
	switch p {
	case Char:
		return NewLongValue(0)
	case Int8:
		return NewLongValue(math.MinInt8)
	case Int16:
		return NewLongValue(math.MinInt16)
	case Int32:
		return NewLongValue(math.MinInt32)
	case Int64:
		return NewLongValue(math.MinInt64)
	case UInt8:
		return NewLongValue(math.MaxUint8)
	case UInt16:
		return NewLongValue(math.MaxUint16)
	case UInt32:
		return NewLongValue(math.MaxUint32)
	case UInt64:
		u := uint64(math.MaxUint64)
		return NewLongValue(int64(u))
	case Float:
		return NewDoubleValue(math.NaN())
	case Double:
		return NewDoubleValue(math.NaN())
	default:
		return PrimitiveValue{}
	}
}

// ValueKind discriminates the representation held by a PrimitiveValue.
type ValueKind byte

const (
	ValueKindNone ValueKind = iota
	ValueKindLong
	ValueKindDouble
	ValueKindBytes
)

// PrimitiveValue is a typed literal used for constant, null, minimum, and
// maximum values. Integer kinds (including unsigned, as raw bits) use the
// long representation; float and double use the double representation; char
// array constants use the bytes representation.
type PrimitiveValue struct {
	bytes  []byte
	long   int64
	double float64
	kind   ValueKind
}

// NewLongValue creates an integer-representation value.
func NewLongValue(v int64) PrimitiveValue {
	return PrimitiveValue{kind: ValueKindLong, long: v}
}

// NewDoubleValue creates a floating-point-representation value.
func NewDoubleValue(v float64) PrimitiveValue {
	return PrimitiveValue{kind: ValueKindDouble, double: v}
}

// NewBytesValue creates a byte-array-representation value, used for char
// array constants.
func NewBytesValue(v []byte) PrimitiveValue {
	b := make([]byte, len(v))
	copy(b, v)
	return PrimitiveValue{kind: ValueKindBytes, bytes: b}
}

// Kind returns the representation discriminator.
func (v PrimitiveValue) Kind() ValueKind {
	return v.kind
}

// IsSet reports whether the value holds a representation.
func (v PrimitiveValue) IsSet() bool {
	return v.kind != ValueKindNone
}

// Long returns the integer representation. Only meaningful for ValueKindLong.
func (v PrimitiveValue) Long() int64 {
	return v.long
}

// Double returns the floating-point representation. Only meaningful for
// ValueKindDouble.
func (v PrimitiveValue) Double() float64 {
	return v.double
}

// Bytes returns the byte-array representation. Only meaningful for
// ValueKindBytes. The returned slice must not be mutated.
func (v PrimitiveValue) Bytes() []byte {
	return v.bytes
}

// Equal reports whether two values hold the same representation and content.
// NaN doubles compare equal to each other so null sentinels round-trip.
func (v PrimitiveValue) Equal(o PrimitiveValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueKindLong:
		return v.long == o.long
	case ValueKindDouble:
		if math.IsNaN(v.double) && math.IsNaN(o.double) {
			return true
		}
		return v.double == o.double
	case ValueKindBytes:
		if len(v.bytes) != len(o.bytes) {
			return false
		}
		for i := range v.bytes {
			if v.bytes[i] != o.bytes[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// FitsWithin reports whether the value lies inside the primitive's
// representable domain. Byte-array values fit only char encodings.
func (v PrimitiveValue) FitsWithin(p PrimitiveType) bool {
	switch v.kind {
	case ValueKindLong:
		switch p {
		case Char, UInt8:
			return v.long >= 0 && v.long <= math.MaxUint8
		case Int8:
			return v.long >= math.MinInt8 && v.long <= math.MaxInt8
		case Int16:
			return v.long >= math.MinInt16 && v.long <= math.MaxInt16
		case UInt16:
			return v.long >= 0 && v.long <= math.MaxUint16
		case Int32:
			return v.long >= math.MinInt32 && v.long <= math.MaxInt32
		case UInt32:
			return v.long >= 0 && v.long <= math.MaxUint32
		case Int64:
			return true
		case UInt64:
			// Raw-bits representation covers the full domain.
			return true
		default:
			return false
		}
	case ValueKindDouble:
		switch p {
		case Float:
			return math.IsNaN(v.double) || math.Abs(v.double) <= math.MaxFloat32
		case Double:
			return true
		default:
			return false
		}
	case ValueKindBytes:
		return p == Char
	default:
		return false
	}
}

func (v PrimitiveValue) String() string {
	switch v.kind {
	case ValueKindLong:
		return fmt.Sprintf("%d", v.long)
	case ValueKindDouble:
		return fmt.Sprintf("%g", v.double)
	case ValueKindBytes:
		return fmt.Sprintf("%q", v.bytes)
	default:
		return "<unset>"
	}
}
