package ir

import (
	"testing"

	sbeerrors "github.com/polygon-io/simple-binary-encoding/errors"
)

func violations(t *testing.T, err error) []*sbeerrors.Error {
	t.Helper()
	if err == nil {
		t.Fatal("ValidateStream() = nil, want violations")
	}
	ve, ok := err.(*sbeerrors.ValidationError)
	if !ok {
		t.Fatalf("ValidateStream() returned %T, want *errors.ValidationError", err)
	}
	return ve.Violations
}

func TestValidateStreamAcceptsWellFormed(t *testing.T) {
	if err := ValidateStream(simpleMessage(t, "Order", 10)); err != nil {
		t.Errorf("ValidateStream() = %v, want nil", err)
	}
}

func TestValidateStreamUnbalancedNesting(t *testing.T) {
	tests := []struct {
		name   string
		stream func(t *testing.T) []*Token
	}{
		{
			"end without begin",
			func(t *testing.T) []*Token {
				return []*Token{
					mustToken(t, NewTokenBuilder().Signal(SignalEndMessage).Name("Order")),
				}
			},
		},
		{
			"begin never closed",
			func(t *testing.T) []*Token {
				return []*Token{
					mustToken(t, NewTokenBuilder().Signal(SignalBeginMessage).Name("Order").ID(1)),
				}
			},
		},
		{
			"mismatched pair",
			func(t *testing.T) []*Token {
				return []*Token{
					mustToken(t, NewTokenBuilder().Signal(SignalBeginComposite).Name("header")),
					mustToken(t, NewTokenBuilder().Signal(SignalEndEnum).Name("header")),
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := violations(t, ValidateStream(tt.stream(t)))
			for _, v := range found {
				if v.Kind == sbeerrors.KindUnbalancedNesting {
					return
				}
			}
			t.Errorf("no unbalanced_nesting violation among %d reported", len(found))
		})
	}
}

func TestValidateStreamSpanMismatch(t *testing.T) {
	stream := simpleMessage(t, "Order", 10)
	stream[0].SetComponentTokenCount(3)

	found := violations(t, ValidateStream(stream))
	for _, v := range found {
		if v.Kind == sbeerrors.KindSpanMismatch {
			return
		}
	}
	t.Errorf("no span_mismatch violation among %d reported", len(found))
}

func TestValidateStreamOffsetOverlap(t *testing.T) {
	stream := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginMessage).Name("Order").ID(1).Size(8)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("a").ID(1)),
		encodingToken(t, "a", UInt32, 4, 0),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("a").ID(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("b").ID(2).Offset(2)),
		encodingToken(t, "b", UInt32, 4, 2),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("b").ID(2)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndMessage).Name("Order").ID(1).Size(8)),
	})

	found := violations(t, ValidateStream(stream))
	for _, v := range found {
		if v.Kind == sbeerrors.KindOffsetOverlap {
			return
		}
	}
	t.Errorf("no offset_overlap violation among %d reported", len(found))
}

func TestValidateStreamGroupTemplateOffsets(t *testing.T) {
	stream := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginMessage).Name("Order").ID(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginGroup).Name("legs").ID(2).Size(6)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginComposite).Name("groupSizeEncoding").Size(4)),
		encodingToken(t, "blockLength", UInt16, 2, 0),
		encodingToken(t, "numInGroup", UInt16, 2, 2),
		mustToken(t, NewTokenBuilder().Signal(SignalEndComposite).Name("groupSizeEncoding").Size(4)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("px").ID(3)),
		encodingToken(t, "px", Int32, 4, 0),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("px").ID(3)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("qty").ID(4).Offset(1)),
		encodingToken(t, "qty", UInt16, 2, 1),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("qty").ID(4)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndGroup).Name("legs").ID(2).Size(6)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndMessage).Name("Order").ID(1)),
	})

	found := violations(t, ValidateStream(stream))
	for _, v := range found {
		if v.Kind == sbeerrors.KindOffsetOverlap {
			return
		}
	}
	t.Errorf("overlap inside group template not reported among %d violations", len(found))
}

func TestValidateStreamVarDataSentinels(t *testing.T) {
	stream := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginVarData).Name("note").ID(5).Size(8).Offset(16)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndVarData).Name("note").ID(5)),
	})

	found := violations(t, ValidateStream(stream))
	got := 0
	for _, v := range found {
		if v.Kind == sbeerrors.KindVarDataOffset {
			got++
		}
	}
	if got != 2 {
		t.Errorf("var_data_offset violations = %d, want 2 (fixed offset and fixed length)", got)
	}
}

func TestValidateStreamDeprecationOrder(t *testing.T) {
	stream := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginMessage).Name("Order").ID(1).Version(3).Deprecated(2)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndMessage).Name("Order").ID(1).Version(3).Deprecated(2)),
	})

	found := violations(t, ValidateStream(stream))
	for _, v := range found {
		if v.Kind == sbeerrors.KindVersionOrder {
			return
		}
	}
	t.Errorf("no version_order violation among %d reported", len(found))
}

func TestValidateStreamAccumulatesAllViolations(t *testing.T) {
	stream := simpleMessage(t, "Order", 10)
	stream[0].SetComponentTokenCount(2)
	stream = append(stream,
		mustToken(t, NewTokenBuilder().Signal(SignalEndComposite).Name("stray")))

	found := violations(t, ValidateStream(stream))
	if len(found) < 2 {
		t.Errorf("violations = %d, want at least the span and nesting findings", len(found))
	}
}

func TestValidateStreamConstantsExempt(t *testing.T) {
	constEnc := mustEncoding(t, NewEncodingBuilder().
		PrimitiveType(UInt8).
		Presence(Constant).
		ConstValue(NewLongValue(1)))

	stream := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginMessage).Name("Order").ID(1).Size(4)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("version").ID(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalEncoding).Name("version").Size(1).Encoding(constEnc)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("version").ID(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("qty").ID(2)),
		encodingToken(t, "qty", UInt32, 4, 0),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("qty").ID(2)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndMessage).Name("Order").ID(1).Size(4)),
	})

	if err := ValidateStream(stream); err != nil {
		t.Errorf("constant field at shared offset reported: %v", err)
	}
}

func TestValidateIrCoversAllStreams(t *testing.T) {
	i := NewIr("market", 1, 0, "", "", LittleEndian, nil)

	broken := simpleMessage(t, "Order", 10)
	broken[0].SetComponentTokenCount(2)
	if err := i.AddMessage(broken); err != nil {
		t.Fatalf("AddMessage() error = %v", err)
	}

	if err := ValidateIr(i); err == nil {
		t.Error("ValidateIr() = nil, want span violation from message stream")
	}
}
