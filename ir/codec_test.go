package ir

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"
)

// fixtureIr assembles a resolved schema exercising every signal kind and
// value representation the persisted format has to carry.
func fixtureIr(t *testing.T) *Ir {
	t.Helper()

	header := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginComposite).Name("messageHeader").Size(8)),
		encodingToken(t, "blockLength", UInt16, 2, 0),
		encodingToken(t, "templateId", UInt16, 2, 2),
		encodingToken(t, "schemaId", UInt16, 2, 4),
		encodingToken(t, "version", UInt16, 2, 6),
		mustToken(t, NewTokenBuilder().Signal(SignalEndComposite).Name("messageHeader").Size(8)),
	})

	i := NewIr("trading", 42, 3, "1.2.0", "order entry schema", LittleEndian, header)
	i.SetNamespaceName("com.example.trading")

	sideEnc := mustEncoding(t, NewEncodingBuilder().PrimitiveType(Char))
	buyEnc := mustEncoding(t, NewEncodingBuilder().
		PrimitiveType(Char).
		Presence(Constant).
		ConstValue(NewBytesValue([]byte{'B'})))
	sellEnc := mustEncoding(t, NewEncodingBuilder().
		PrimitiveType(Char).
		Presence(Constant).
		ConstValue(NewBytesValue([]byte{'S'})))
	enum := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginEnum).Name("side").Size(1).Encoding(sideEnc)),
		mustToken(t, NewTokenBuilder().Signal(SignalValidValue).Name("buy").Encoding(buyEnc)),
		mustToken(t, NewTokenBuilder().Signal(SignalValidValue).Name("sell").Encoding(sellEnc)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndEnum).Name("side").Size(1)),
	})
	if err := i.AddType(enum); err != nil {
		t.Fatalf("AddType() error = %v", err)
	}

	optionalEnc := mustEncoding(t, NewEncodingBuilder().
		PrimitiveType(Int32).
		Presence(Optional).
		NullValue(NewLongValue(0)).
		MinValue(NewLongValue(1)).
		MaxValue(NewLongValue(1000000)).
		SemanticType("Qty"))
	priceEnc := mustEncoding(t, NewEncodingBuilder().
		PrimitiveType(Double).
		MinValue(NewDoubleValue(0.0001)).
		Epoch("unix").
		TimeUnit("nanosecond"))

	message := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginMessage).Name("NewOrder").PackageName("trading").ID(7).Version(1).Size(12)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("quantity").ID(1).Version(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalEncoding).Name("quantity").Size(4).Encoding(optionalEnc)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("quantity").ID(1).Version(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("price").ID(2)),
		mustToken(t, NewTokenBuilder().Signal(SignalEncoding).Name("price").ReferencedName("priceType").Size(8).Offset(4).Encoding(priceEnc)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("price").ID(2)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginVarData).Name("account").ID(3).Size(VariableLength).Offset(VariableLength)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndVarData).Name("account").ID(3).Size(VariableLength).Offset(VariableLength)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndMessage).Name("NewOrder").ID(7).Version(1).Size(12)),
	})
	if err := i.AddMessage(message); err != nil {
		t.Fatalf("AddMessage() error = %v", err)
	}

	return i
}

func TestCodecRoundTrip(t *testing.T) {
	original := fixtureIr(t)

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Error("decoded Ir differs from original")
	}

	// Re-encoding the decoded form must be byte-identical.
	again, err := Encode(decoded)
	if err != nil {
		t.Fatalf("Encode() after decode error = %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("re-encoded bytes differ from first encoding")
	}
}

func TestCodecCompressedRoundTrip(t *testing.T) {
	original := fixtureIr(t)

	compressed, err := EncodeCompressed(original)
	if err != nil {
		t.Fatalf("EncodeCompressed() error = %v", err)
	}

	decoded, err := Decode(compressed)
	if err != nil {
		t.Fatalf("Decode() of compressed form error = %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Error("decoded Ir differs from original after compressed round trip")
	}
}

func TestCodecNaNSentinelRoundTrip(t *testing.T) {
	nanEnc := mustEncoding(t, NewEncodingBuilder().
		PrimitiveType(Float).
		Presence(Optional).
		NullValue(NewDoubleValue(math.NaN())))

	i := NewIr("s", 1, 0, "", "", LittleEndian, nil)
	message := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginMessage).Name("M").ID(1).Size(4)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("f").ID(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalEncoding).Name("f").Size(4).Encoding(nanEnc)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("f").ID(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndMessage).Name("M").ID(1).Size(4)),
	})
	if err := i.AddMessage(message); err != nil {
		t.Fatalf("AddMessage() error = %v", err)
	}

	data, err := Encode(i)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got := decoded.Message(1)[2].Encoding().NullValue()
	if !got.Equal(NewDoubleValue(math.NaN())) {
		t.Errorf("NaN sentinel decoded as %s", got)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	data, err := Encode(fixtureIr(t))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	t.Run("bad magic", func(t *testing.T) {
		corrupted := append([]byte(nil), data...)
		corrupted[0] ^= 0xFF
		if _, err := Decode(corrupted); !errors.Is(err, ErrInvalidMagic) {
			t.Errorf("Decode() error = %v, want ErrInvalidMagic", err)
		}
	})

	t.Run("bad version", func(t *testing.T) {
		corrupted := append([]byte(nil), data...)
		corrupted[4] = 0xFF
		if _, err := Decode(corrupted); !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("Decode() error = %v, want ErrInvalidVersion", err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		if _, err := Decode(data[:len(data)/2]); err == nil {
			t.Error("Decode() of truncated input succeeded")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := Decode(nil); err == nil {
			t.Error("Decode() of empty input succeeded")
		}
	})
}

func TestExportCBORIsDeterministic(t *testing.T) {
	i := fixtureIr(t)

	first, err := ExportCBOR(i)
	if err != nil {
		t.Fatalf("ExportCBOR() error = %v", err)
	}
	second, err := ExportCBOR(i)
	if err != nil {
		t.Fatalf("ExportCBOR() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("canonical CBOR export is not deterministic")
	}
	if len(first) == 0 {
		t.Error("canonical CBOR export is empty")
	}
}
