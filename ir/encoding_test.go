package ir

import (
	"math"
	"testing"
)

func TestEncodingBuilderValidation(t *testing.T) {
	tests := []struct {
		name    string
		builder *EncodingBuilder
		wantErr bool
	}{
		{
			"required scalar",
			NewEncodingBuilder().PrimitiveType(UInt32),
			false,
		},
		{
			"constant without literal",
			NewEncodingBuilder().PrimitiveType(UInt8).Presence(Constant),
			true,
		},
		{
			"constant with literal",
			NewEncodingBuilder().PrimitiveType(UInt8).Presence(Constant).ConstValue(NewLongValue(7)),
			false,
		},
		{
			"optional without primitive type",
			NewEncodingBuilder().Presence(Optional),
			true,
		},
		{
			"optional null outside domain",
			NewEncodingBuilder().PrimitiveType(UInt8).Presence(Optional).NullValue(NewLongValue(300)),
			true,
		},
		{
			"optional null within domain",
			NewEncodingBuilder().PrimitiveType(UInt8).Presence(Optional).NullValue(NewLongValue(255)),
			false,
		},
		{
			"min outside domain",
			NewEncodingBuilder().PrimitiveType(Int8).MinValue(NewLongValue(-200)),
			true,
		},
		{
			"max outside domain",
			NewEncodingBuilder().PrimitiveType(Int16).MaxValue(NewLongValue(40000)),
			true,
		},
		{
			"const outside domain",
			NewEncodingBuilder().PrimitiveType(UInt16).Presence(Constant).ConstValue(NewLongValue(-1)),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build("field")
			if (err != nil) != tt.wantErr {
				t.Errorf("Build() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodingApplicableValues(t *testing.T) {
	defaulted := mustEncoding(t, NewEncodingBuilder().PrimitiveType(Int32))

	if got := defaulted.ApplicableNullValue().Long(); got != math.MinInt32 {
		t.Errorf("default int32 null = %d, want %d", got, math.MinInt32)
	}
	if got := defaulted.ApplicableMinValue().Long(); got != math.MinInt32+1 {
		t.Errorf("default int32 min = %d, want %d", got, int64(math.MinInt32+1))
	}
	if got := defaulted.ApplicableMaxValue().Long(); got != math.MaxInt32 {
		t.Errorf("default int32 max = %d, want %d", got, math.MaxInt32)
	}

	explicit := mustEncoding(t, NewEncodingBuilder().
		PrimitiveType(Int32).
		Presence(Optional).
		NullValue(NewLongValue(0)).
		MinValue(NewLongValue(1)).
		MaxValue(NewLongValue(100)))

	if got := explicit.ApplicableNullValue().Long(); got != 0 {
		t.Errorf("explicit null = %d, want 0", got)
	}
	if got := explicit.ApplicableMinValue().Long(); got != 1 {
		t.Errorf("explicit min = %d, want 1", got)
	}
	if got := explicit.ApplicableMaxValue().Long(); got != 100 {
		t.Errorf("explicit max = %d, want 100", got)
	}
}

func TestPrimitiveNullDefaults(t *testing.T) {
	tests := []struct {
		primitive PrimitiveType
		want      int64
	}{
		{Int8, math.MinInt8},
		{Int16, math.MinInt16},
		{Int32, math.MinInt32},
		{Int64, math.MinInt64},
		{UInt8, math.MaxUint8},
		{UInt16, math.MaxUint16},
		{UInt32, math.MaxUint32},
	}

	for _, tt := range tests {
		t.Run(tt.primitive.String(), func(t *testing.T) {
			if got := tt.primitive.NullValue().Long(); got != tt.want {
				t.Errorf("NullValue() = %d, want %d", got, tt.want)
			}
		})
	}

	if !math.IsNaN(Float.NullValue().Double()) {
		t.Error("float null is not NaN")
	}
	if !math.IsNaN(Double.NullValue().Double()) {
		t.Error("double null is not NaN")
	}
}

func TestPrimitiveValueEqual(t *testing.T) {
	if !NewDoubleValue(math.NaN()).Equal(NewDoubleValue(math.NaN())) {
		t.Error("NaN sentinel values compare unequal")
	}
	if NewLongValue(1).Equal(NewDoubleValue(1)) {
		t.Error("long and double values compare equal")
	}
	if !NewBytesValue([]byte{0x20, 0x21}).Equal(NewBytesValue([]byte{0x20, 0x21})) {
		t.Error("identical byte values compare unequal")
	}
}

func TestPrimitiveValueFitsWithin(t *testing.T) {
	tests := []struct {
		name      string
		value     PrimitiveValue
		primitive PrimitiveType
		want      bool
	}{
		{"uint8 max", NewLongValue(255), UInt8, true},
		{"uint8 overflow", NewLongValue(256), UInt8, false},
		{"uint8 negative", NewLongValue(-1), UInt8, false},
		{"int8 min", NewLongValue(-128), Int8, true},
		{"int8 underflow", NewLongValue(-129), Int8, false},
		{"char byte", NewLongValue('A'), Char, true},
		{"char overflow", NewLongValue(256), Char, false},
		{"double in float range", NewDoubleValue(1.5), Float, true},
		{"double beyond float range", NewDoubleValue(math.MaxFloat64), Float, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.FitsWithin(tt.primitive); got != tt.want {
				t.Errorf("FitsWithin(%s) = %v, want %v", tt.primitive, got, tt.want)
			}
		})
	}
}
