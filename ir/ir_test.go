package ir

import (
	"reflect"
	"testing"
)

// patchSpans back-fills componentTokenCount on BEGIN/END pairs the way the
// layout resolver does, so tests can assemble streams token by token.
func patchSpans(tokens []*Token) []*Token {
	var stack []int
	for i, t := range tokens {
		switch {
		case t.Signal().IsBegin():
			stack = append(stack, i)
		case t.Signal().IsEnd():
			beginIdx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			count := i - beginIdx + 1
			tokens[beginIdx].SetComponentTokenCount(count)
			tokens[i].SetComponentTokenCount(count)
		}
	}
	return tokens
}

func encodingToken(t *testing.T, name string, primitive PrimitiveType, size, offset int) *Token {
	t.Helper()
	return mustToken(t, NewTokenBuilder().
		Signal(SignalEncoding).
		Name(name).
		Size(size).
		Offset(offset).
		Encoding(mustEncoding(t, NewEncodingBuilder().PrimitiveType(primitive))))
}

// simpleMessage builds a resolved single-field message stream for reuse
// across tests.
func simpleMessage(t *testing.T, name string, id int) []*Token {
	t.Helper()
	return patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginMessage).Name(name).ID(id).Size(4)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("value").ID(1)),
		encodingToken(t, "value", UInt32, 4, 0),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("value").ID(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndMessage).Name(name).ID(id).Size(4)),
	})
}

func TestIrAddMessage(t *testing.T) {
	i := NewIr("market", 1, 0, "", "", LittleEndian, nil)

	if err := i.AddMessage(simpleMessage(t, "Order", 10)); err != nil {
		t.Fatalf("AddMessage() error = %v", err)
	}
	if err := i.AddMessage(simpleMessage(t, "Trade", 20)); err != nil {
		t.Fatalf("AddMessage() error = %v", err)
	}

	if err := i.AddMessage(simpleMessage(t, "Cancel", 10)); err == nil {
		t.Error("AddMessage() with duplicate id succeeded, want error")
	}
	if err := i.AddMessage(simpleMessage(t, "Order", 10)[1:]); err == nil {
		t.Error("AddMessage() without BEGIN_MESSAGE succeeded, want error")
	}

	if got := i.MessageIDs(); !reflect.DeepEqual(got, []int{10, 20}) {
		t.Errorf("MessageIDs() = %v, want [10 20]", got)
	}
	if i.Message(10) == nil || i.Message(20) == nil {
		t.Error("Message() lookup failed for stored id")
	}
	if i.Message(99) != nil {
		t.Error("Message() for unknown id is non-nil")
	}
}

func TestIrAddType(t *testing.T) {
	i := NewIr("market", 1, 0, "", "", LittleEndian, nil)

	composite := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginComposite).Name("decimal").Size(9)),
		encodingToken(t, "mantissa", Int64, 8, 0),
		encodingToken(t, "exponent", Int8, 1, 8),
		mustToken(t, NewTokenBuilder().Signal(SignalEndComposite).Name("decimal").Size(9)),
	})
	if err := i.AddType(composite); err != nil {
		t.Fatalf("AddType() error = %v", err)
	}

	// A simple encoded type is a single ENCODING token.
	leaf := []*Token{encodingToken(t, "qty", UInt32, 4, 0)}
	if err := i.AddType(leaf); err != nil {
		t.Errorf("AddType() with single ENCODING token error = %v", err)
	}

	stray := []*Token{mustToken(t, NewTokenBuilder().Signal(SignalEndComposite).Name("x"))}
	if err := i.AddType(stray); err == nil {
		t.Error("AddType() starting with an END token succeeded, want error")
	}

	if got := i.TypeNames(); !reflect.DeepEqual(got, []string{"decimal", "qty"}) {
		t.Errorf("TypeNames() = %v, want [decimal qty]", got)
	}
	if i.Type("decimal") == nil {
		t.Error("Type() lookup failed for stored name")
	}
}

func TestSubtreeSkipsNestedStructure(t *testing.T) {
	stream := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginComposite).Name("outer")),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginComposite).Name("inner")),
		encodingToken(t, "a", UInt8, 1, 0),
		mustToken(t, NewTokenBuilder().Signal(SignalEndComposite).Name("inner")),
		encodingToken(t, "b", UInt8, 1, 1),
		mustToken(t, NewTokenBuilder().Signal(SignalEndComposite).Name("outer")),
	})

	whole := Subtree(stream, 0)
	if len(whole) != 6 {
		t.Errorf("outer subtree length = %d, want 6", len(whole))
	}

	inner := Subtree(stream, 1)
	if len(inner) != 3 {
		t.Errorf("inner subtree length = %d, want 3", len(inner))
	}
	if inner[0].Name() != "inner" || inner[2].Name() != "inner" {
		t.Error("inner subtree not delimited by its own BEGIN/END pair")
	}

	leaf := Subtree(stream, 4)
	if len(leaf) != 1 || leaf[0].Name() != "b" {
		t.Errorf("leaf subtree = %v tokens, want the single encoding token", len(leaf))
	}
}

func TestCollectByKind(t *testing.T) {
	message := patchSpans([]*Token{
		mustToken(t, NewTokenBuilder().Signal(SignalBeginMessage).Name("Quote").ID(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("bid").ID(1)),
		encodingToken(t, "bid", Int64, 8, 0),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("bid").ID(1)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("ask").ID(2)),
		encodingToken(t, "ask", Int64, 8, 8),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("ask").ID(2)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginGroup).Name("legs").ID(3)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginField).Name("ratio").ID(4)),
		encodingToken(t, "ratio", UInt8, 1, 0),
		mustToken(t, NewTokenBuilder().Signal(SignalEndField).Name("ratio").ID(4)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndGroup).Name("legs").ID(3)),
		mustToken(t, NewTokenBuilder().Signal(SignalBeginVarData).Name("note").ID(5).Size(VariableLength).Offset(VariableLength)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndVarData).Name("note").ID(5).Size(VariableLength).Offset(VariableLength)),
		mustToken(t, NewTokenBuilder().Signal(SignalEndMessage).Name("Quote").ID(1)),
	})
	body := message[1 : len(message)-1]

	fields := CollectFields(body)
	if len(fields) != 2 {
		t.Fatalf("CollectFields() found %d fields, want 2", len(fields))
	}
	if fields[0][0].Name() != "bid" || fields[1][0].Name() != "ask" {
		t.Error("CollectFields() returned fields out of stream order")
	}

	groups := CollectGroups(body)
	if len(groups) != 1 || groups[0][0].Name() != "legs" {
		t.Fatalf("CollectGroups() = %d groups, want the legs group", len(groups))
	}

	varData := CollectVarData(body)
	if len(varData) != 1 || varData[0][0].Name() != "note" {
		t.Fatalf("CollectVarData() = %d entries, want the note entry", len(varData))
	}
}
