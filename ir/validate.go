package ir

import (
	"github.com/polygon-io/simple-binary-encoding/errors"
)

// ValidateIr re-checks the structural invariants of every token stream in
// the Ir: the header structure, each standalone type, and each message.
// It is used defensively before handing a deserialized Ir to a code
// generator. All violations are accumulated and reported together.
func ValidateIr(i *Ir) error {
	v := &streamValidator{}
	v.checkStream(i.HeaderStructure())
	for _, name := range i.TypeNames() {
		v.checkStream(i.Type(name))
	}
	for _, tokens := range i.Messages() {
		v.checkStream(tokens)
	}
	if len(v.violations) > 0 {
		return errors.NewValidationError(v.violations)
	}
	return nil
}

// ValidateStream re-checks the structural invariants of a single token
// stream without re-running layout resolution: balanced delimiters, subtree
// span counts, fixed-block offset monotonicity, version consistency, and
// var-data sentinel rules. Unlike the layout resolver, which fails fast,
// validation accumulates every violation found.
func ValidateStream(tokens []*Token) error {
	v := &streamValidator{}
	v.checkStream(tokens)
	if len(v.violations) > 0 {
		return errors.NewValidationError(v.violations)
	}
	return nil
}

type streamValidator struct {
	violations []*errors.Error
}

func (v *streamValidator) checkStream(tokens []*Token) {
	if len(tokens) == 0 {
		return
	}
	v.checkNesting(tokens)
	v.checkSpans(tokens)
	v.checkVersions(tokens)
	v.checkVarData(tokens)
	v.checkBlocks(tokens)
}

func (v *streamValidator) add(e *errors.Error) {
	v.violations = append(v.violations, e)
}

// checkNesting verifies every BEGIN has exactly one matching END of the
// same kind and nesting is stack-balanced.
func (v *streamValidator) checkNesting(tokens []*Token) {
	var stack []*Token
	for _, t := range tokens {
		switch {
		case t.Signal().IsBegin():
			stack = append(stack, t)
		case t.Signal().IsEnd():
			if len(stack) == 0 {
				v.add(errors.UnbalancedNesting([]string{t.Name()},
					t.Signal().String()+" with no open BEGIN"))
				continue
			}
			begin := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if begin.Signal().PairedEnd() != t.Signal() {
				v.add(errors.UnbalancedNesting([]string{begin.Name()},
					begin.Signal().String()+" closed by "+t.Signal().String()))
			}
		}
	}
	for _, begin := range stack {
		v.add(errors.UnbalancedNesting([]string{begin.Name()},
			begin.Signal().String()+" never closed"))
	}
}

// checkSpans verifies each BEGIN token's componentTokenCount equals the
// actual distance to its matching END, inclusive.
func (v *streamValidator) checkSpans(tokens []*Token) {
	var stack []int
	for i, t := range tokens {
		switch {
		case t.Signal().IsBegin():
			stack = append(stack, i)
		case t.Signal().IsEnd():
			if len(stack) == 0 {
				continue // reported by checkNesting
			}
			beginIdx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			actual := i - beginIdx + 1
			if declared := tokens[beginIdx].ComponentTokenCount(); declared != actual {
				v.add(errors.SpanMismatch([]string{tokens[beginIdx].Name()}, declared, actual))
			}
		}
	}
}

// checkVersions verifies deprecated elements were introduced before their
// deprecation version.
func (v *streamValidator) checkVersions(tokens []*Token) {
	for _, t := range tokens {
		if t.Deprecated() != 0 && t.Deprecated() <= t.Version() {
			v.add(errors.UnreachableDeprecation(errors.PhaseValidate,
				[]string{t.Name()}, t.Version(), t.Deprecated()))
		}
	}
}

// checkVarData verifies var-data tokens never carry fixed offsets or
// lengths; their position is runtime-only.
func (v *streamValidator) checkVarData(tokens []*Token) {
	for _, t := range tokens {
		if t.Signal() != SignalBeginVarData {
			continue
		}
		if t.Offset() != VariableLength {
			v.add(errors.VarDataOffset([]string{t.Name()}, t.Offset()))
		}
		if t.EncodedLength() != VariableLength {
			v.add(errors.New(errors.PhaseValidate, errors.KindVarDataOffset).
				Path(t.Name()).
				Detail("var-data token carries fixed encoded length %d", t.EncodedLength()).
				Value(t.EncodedLength()).
				Build())
		}
	}
}

// checkBlocks verifies offset monotonicity and non-overlap within every
// fixed block: the fields of each message root and the members of each
// composite. Constants are exempt because they never occupy wire bytes.
func (v *streamValidator) checkBlocks(tokens []*Token) {
	for i := 0; i < len(tokens); i += max(tokens[i].ComponentTokenCount(), 1) {
		switch tokens[i].Signal() {
		case SignalBeginMessage:
			v.checkMessageBlock(Subtree(tokens, i))
		case SignalBeginComposite:
			v.checkCompositeBlock(Subtree(tokens, i))
		}
	}
}

// checkMessageBlock checks a message root's fixed block of fields.
func (v *streamValidator) checkMessageBlock(message []*Token) {
	if len(message) < 2 {
		return
	}
	v.checkFieldSequence(message[0].Name(), message[1:len(message)-1])
}

// checkFieldSequence walks the direct field children of one fixed block
// (a message root or a group's template) and checks their resolved offsets
// advance without overlap. Nested composites are checked independently
// against their own origin; group templates recurse as their own block.
func (v *streamValidator) checkFieldSequence(owner string, body []*Token) {
	prevEnd := 0

	for i := 0; i < len(body); i += max(body[i].ComponentTokenCount(), 1) {
		t := body[i]
		switch t.Signal() {
		case SignalBeginField:
			subtree := Subtree(body, i)
			length := fieldEncodedLength(subtree)
			if length < 0 || constantField(subtree) {
				continue
			}
			if t.Offset() < prevEnd {
				v.add(errors.OffsetOverlap(errors.PhaseValidate,
					[]string{owner, t.Name()}, t.Offset(), length, prevEnd))
				continue
			}
			prevEnd = t.Offset() + length
			typeTokens := subtree[1 : len(subtree)-1]
			if len(typeTokens) > 0 && typeTokens[0].Signal() == SignalBeginComposite {
				v.checkCompositeBlock(typeTokens)
			}
		case SignalBeginComposite:
			v.checkCompositeBlock(Subtree(body, i))
		case SignalBeginGroup:
			sub := Subtree(body, i)
			if len(sub) < 2 {
				continue
			}
			inner := sub[1 : len(sub)-1]
			if len(inner) > 0 && inner[0].Signal() == SignalBeginComposite {
				dimension := Subtree(inner, 0)
				v.checkCompositeBlock(dimension)
				inner = inner[len(dimension):]
			}
			v.checkFieldSequence(sub[0].Name(), inner)
		}
	}
}

// checkCompositeBlock walks a composite's direct members, whose offsets are
// relative to the composite origin.
func (v *streamValidator) checkCompositeBlock(composite []*Token) {
	if len(composite) < 2 || composite[0].EncodedLength() == VariableLength {
		return
	}
	body := composite[1 : len(composite)-1]
	prevEnd := 0

	for i := 0; i < len(body); i += max(body[i].ComponentTokenCount(), 1) {
		t := body[i]
		switch t.Signal() {
		case SignalEncoding, SignalBeginComposite, SignalBeginEnum, SignalBeginSet:
			if t.EncodedLength() == VariableLength || t.Offset() == VariableLength {
				continue
			}
			if t.IsConstantEncoding() {
				continue
			}
			if t.Offset() < prevEnd {
				v.add(errors.OffsetOverlap(errors.PhaseValidate,
					[]string{composite[0].Name(), t.Name()}, t.Offset(), t.EncodedLength(), prevEnd))
				continue
			}
			prevEnd = t.Offset() + t.EncodedLength()
		}
		if t.Signal() == SignalBeginComposite {
			v.checkCompositeBlock(Subtree(body, i))
		}
	}
}

// fieldEncodedLength returns the encoded length of a field's type subtree,
// or -1 when it has no fixed footprint.
func fieldEncodedLength(field []*Token) int {
	if len(field) < 3 {
		return -1
	}
	inner := field[1]
	if inner.EncodedLength() == VariableLength {
		return -1
	}
	return inner.EncodedLength()
}

func constantField(field []*Token) bool {
	return len(field) >= 3 && field[1].IsConstantEncoding()
}
