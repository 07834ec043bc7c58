package layout

import (
	"go.uber.org/zap"

	"github.com/polygon-io/simple-binary-encoding/errors"
	"github.com/polygon-io/simple-binary-encoding/ir"
	"github.com/polygon-io/simple-binary-encoding/schema"
)

// Resolve transforms a schema graph into a fully offset and length resolved
// ir.Ir using the schema's own layout policy.
func Resolve(s *schema.Schema) (*ir.Ir, error) {
	return ResolveWithOptions(s, Options{})
}

// ResolveWithOptions is Resolve with explicit policy overrides.
//
// Resolution is fail-fast: the first semantic error aborts the whole
// operation and no partially resolved Ir is ever returned. The walk is a
// pure single-threaded transformation; independent schemas may be resolved
// concurrently.
func ResolveWithOptions(s *schema.Schema, opts Options) (*ir.Ir, error) {
	constantFootprint := s.ConstantFootprint
	if opts.ConstantFootprint != nil {
		constantFootprint = *opts.ConstantFootprint
	}

	r := &resolver{
		schema:            s,
		constantFootprint: constantFootprint,
		defaultAlignment:  opts.BlockAlignment,
	}
	return r.resolve()
}

type resolver struct {
	schema            *schema.Schema
	constantFootprint bool
	defaultAlignment  int
}

func (r *resolver) resolve() (*ir.Ir, error) {
	var headerTokens []*ir.Token
	if h := r.schema.HeaderType; h != nil {
		tokens, _, err := r.resolveComposite(h, h.Name, "", 0, []string{h.Name})
		if err != nil {
			return nil, err
		}
		updateComponentTokenCounts(tokens)
		headerTokens = tokens
	}

	out := ir.NewIr(
		r.schema.Package,
		r.schema.ID,
		r.schema.Version,
		r.schema.SemanticVersion,
		r.schema.Description,
		r.schema.ByteOrder,
		headerTokens,
	)
	out.SetNamespaceName(r.schema.Namespace)

	for _, t := range r.schema.Types {
		tokens, err := r.resolveNamedType(t)
		if err != nil {
			return nil, err
		}
		if err := out.AddType(tokens); err != nil {
			return nil, err
		}
	}

	for _, m := range r.schema.Messages {
		tokens, err := r.resolveMessage(m)
		if err != nil {
			return nil, err
		}
		if err := out.AddMessage(tokens); err != nil {
			return nil, err
		}
	}

	Logger().Debug("schema resolved",
		zap.String("package", r.schema.Package),
		zap.Int("id", r.schema.ID),
		zap.Int("version", r.schema.Version),
		zap.Int("messages", len(r.schema.Messages)))

	return out, nil
}

func (r *resolver) resolveNamedType(t schema.Type) ([]*ir.Token, error) {
	path := []string{t.TypeName()}
	if err := r.checkVersions(path, t.TypeVersion(), t.TypeDeprecated()); err != nil {
		return nil, err
	}

	var tokens []*ir.Token
	var err error
	switch typ := t.(type) {
	case *schema.Composite:
		tokens, _, err = r.resolveComposite(typ, typ.Name, "", 0, path)
	case *schema.Enum:
		tokens, _, err = r.resolveEnum(typ, 0, path)
	case *schema.Set:
		tokens, _, err = r.resolveSet(typ, 0, path)
	case *schema.EncodedType:
		var tok *ir.Token
		tok, _, err = r.resolveEncodedType(typ, typ.Name, "", 0, typ.Presence, path)
		if err == nil {
			tokens = []*ir.Token{tok}
		}
	default:
		err = errors.InvalidData(errors.PhaseResolve, path, "unknown schema type kind")
	}
	if err != nil {
		return nil, err
	}

	updateComponentTokenCounts(tokens)
	return tokens, nil
}

func (r *resolver) resolveMessage(m *schema.Message) ([]*ir.Token, error) {
	path := []string{m.Name}
	if err := r.checkVersions(path, m.Version, m.Deprecated); err != nil {
		return nil, err
	}

	begin, err := ir.NewTokenBuilder().
		Signal(ir.SignalBeginMessage).
		Name(m.Name).
		PackageName(r.schema.Package).
		Description(m.Description).
		ID(m.ID).
		Version(m.Version).
		Deprecated(m.Deprecated).
		Build()
	if err != nil {
		return nil, err
	}

	body, blockEnd, err := r.resolveBlock(m.Fields, path)
	if err != nil {
		return nil, err
	}

	blockLength, err := r.resolveBlockLength(blockEnd, m.BlockLength, m.Alignment, path)
	if err != nil {
		return nil, err
	}

	end, err := ir.NewTokenBuilder().
		Signal(ir.SignalEndMessage).
		Name(m.Name).
		ID(m.ID).
		Version(m.Version).
		Deprecated(m.Deprecated).
		Size(blockLength).
		Build()
	if err != nil {
		return nil, err
	}

	begin.SetEncodedLength(blockLength)

	tokens := make([]*ir.Token, 0, len(body)+2)
	tokens = append(tokens, begin)
	tokens = append(tokens, body...)
	tokens = append(tokens, end)
	updateComponentTokenCounts(tokens)

	Logger().Debug("message resolved",
		zap.String("name", m.Name),
		zap.Int("id", m.ID),
		zap.Int("blockLength", blockLength),
		zap.Int("tokens", len(tokens)))

	return tokens, nil
}

// resolveBlock walks one fixed block's declared elements in order,
// maintaining the running offset cursor, and returns the block body tokens
// and the cursor's final position. Groups and var-data contribute tokens but
// never advance the fixed cursor.
func (r *resolver) resolveBlock(fields []*schema.Field, path []string) ([]*ir.Token, int, error) {
	var tokens []*ir.Token
	cursor := 0

	for _, f := range fields {
		fpath := append(append([]string(nil), path...), f.Name)
		if err := r.checkVersions(fpath, f.Version, f.Deprecated); err != nil {
			return nil, 0, err
		}

		switch f.Kind {
		case schema.KindValue:
			offset := cursor
			if f.Offset != nil {
				if *f.Offset < cursor {
					return nil, 0, errors.OffsetRegression(errors.PhaseResolve, fpath, *f.Offset, cursor)
				}
				offset = *f.Offset
			}

			typeTokens, size, constant, err := r.resolveFieldType(f, offset, fpath)
			if err != nil {
				return nil, 0, err
			}

			fieldTokens, err := wrapField(f, offset, typeTokens)
			if err != nil {
				return nil, 0, err
			}
			tokens = append(tokens, fieldTokens...)

			// Constants are supplied by the schema, never the wire, so by
			// default they leave the cursor alone. The schema's declared
			// footprint rule can reserve their space instead.
			if !constant || r.constantFootprint {
				cursor = offset + size
			}

		case schema.KindGroup:
			groupTokens, err := r.resolveGroup(f, fpath)
			if err != nil {
				return nil, 0, err
			}
			tokens = append(tokens, groupTokens...)

		case schema.KindVarData:
			varTokens, err := r.resolveVarData(f, fpath)
			if err != nil {
				return nil, 0, err
			}
			tokens = append(tokens, varTokens...)

		default:
			return nil, 0, errors.InvalidData(errors.PhaseResolve, fpath, "unknown field kind")
		}
	}

	return tokens, cursor, nil
}

// resolveFieldType produces the type subtree for a value field at the given
// block offset and reports its encoded size and whether it is constant.
func (r *resolver) resolveFieldType(f *schema.Field, offset int, path []string) ([]*ir.Token, int, bool, error) {
	switch t := f.Type.(type) {
	case *schema.EncodedType:
		presence := effectivePresence(f.Presence, t.Presence)
		tok, size, err := r.resolveEncodedType(t, t.Name, "", offset, presence, path)
		if err != nil {
			return nil, 0, false, err
		}
		return []*ir.Token{tok}, size, presence == ir.Constant, nil

	case *schema.Composite:
		// A composite referenced from a field applies the field's name in
		// context while preserving the type name for introspection.
		tokens, size, err := r.resolveComposite(t, f.Name, t.Name, offset, path)
		return tokens, size, false, err

	case *schema.Enum:
		tokens, size, err := r.resolveEnum(t, offset, path)
		return tokens, size, false, err

	case *schema.Set:
		tokens, size, err := r.resolveSet(t, offset, path)
		return tokens, size, false, err

	default:
		return nil, 0, false, errors.InvalidData(errors.PhaseResolve, path, "field has no resolvable type")
	}
}

func (r *resolver) resolveEncodedType(
	t *schema.EncodedType,
	name, ref string,
	offset int,
	presence ir.Presence,
	path []string,
) (*ir.Token, int, error) {
	if err := r.checkVersions(path, t.Version, t.Deprecated); err != nil {
		return nil, 0, err
	}

	enc, err := ir.NewEncodingBuilder().
		PrimitiveType(t.Primitive).
		ByteOrder(r.schema.ByteOrder).
		Presence(presence).
		MinValue(t.MinValue).
		MaxValue(t.MaxValue).
		NullValue(t.NullValue).
		ConstValue(t.ConstValue).
		SemanticType(t.SemanticType).
		CharacterEncoding(t.CharacterEncoding).
		Epoch(t.Epoch).
		TimeUnit(t.TimeUnit).
		Build(path...)
	if err != nil {
		return nil, 0, err
	}

	size := t.Primitive.Size() * t.ElementCount()
	tok, err := ir.NewTokenBuilder().
		Signal(ir.SignalEncoding).
		Name(name).
		ReferencedName(ref).
		Description(t.Description).
		Version(t.Version).
		Deprecated(t.Deprecated).
		Size(size).
		Offset(offset).
		Encoding(enc).
		Build()
	if err != nil {
		return nil, 0, err
	}
	return tok, size, nil
}

// resolveComposite lays out a composite's members back to back from its own
// origin, so member offsets are relative to the composite start and reused
// composites keep identical internal layout wherever they appear.
func (r *resolver) resolveComposite(
	c *schema.Composite,
	name, ref string,
	baseOffset int,
	path []string,
) ([]*ir.Token, int, error) {
	if err := r.checkVersions(path, c.Version, c.Deprecated); err != nil {
		return nil, 0, err
	}

	begin, err := ir.NewTokenBuilder().
		Signal(ir.SignalBeginComposite).
		Name(name).
		ReferencedName(ref).
		Description(c.Description).
		Version(c.Version).
		Deprecated(c.Deprecated).
		Offset(baseOffset).
		Build()
	if err != nil {
		return nil, 0, err
	}

	tokens := []*ir.Token{begin}
	cursor := 0

	for i := range c.Members {
		m := &c.Members[i]
		mpath := append(append([]string(nil), path...), m.MemberName())

		offset := cursor
		if m.Offset != nil {
			if *m.Offset < cursor {
				return nil, 0, errors.OffsetRegression(errors.PhaseResolve, mpath, *m.Offset, cursor)
			}
			offset = *m.Offset
		}

		var memberTokens []*ir.Token
		var size int
		constant := false

		switch t := m.Type.(type) {
		case *schema.EncodedType:
			var tok *ir.Token
			tok, size, err = r.resolveEncodedType(t, m.MemberName(), m.Ref, offset, t.Presence, mpath)
			if err == nil {
				memberTokens = []*ir.Token{tok}
				constant = t.Presence == ir.Constant
			}
		case *schema.Composite:
			memberTokens, size, err = r.resolveComposite(t, m.MemberName(), m.Ref, offset, mpath)
		case *schema.Enum:
			memberTokens, size, err = r.resolveEnum(t, offset, mpath)
		case *schema.Set:
			memberTokens, size, err = r.resolveSet(t, offset, mpath)
		default:
			err = errors.InvalidData(errors.PhaseResolve, mpath, "unknown composite member kind")
		}
		if err != nil {
			return nil, 0, err
		}

		tokens = append(tokens, memberTokens...)
		if !constant || r.constantFootprint {
			cursor = offset + size
		}
	}

	total, err := r.resolveBlockLength(cursor, 0, c.Alignment, path)
	if err != nil {
		return nil, 0, err
	}

	end, err := ir.NewTokenBuilder().
		Signal(ir.SignalEndComposite).
		Name(name).
		ReferencedName(ref).
		Version(c.Version).
		Deprecated(c.Deprecated).
		Size(total).
		Offset(baseOffset).
		Build()
	if err != nil {
		return nil, 0, err
	}

	begin.SetEncodedLength(total)
	tokens = append(tokens, end)
	return tokens, total, nil
}

func (r *resolver) resolveEnum(e *schema.Enum, offset int, path []string) ([]*ir.Token, int, error) {
	if err := r.checkVersions(path, e.Version, e.Deprecated); err != nil {
		return nil, 0, err
	}

	size := e.Encoding.Size()
	enc, err := ir.NewEncodingBuilder().
		PrimitiveType(e.Encoding).
		ByteOrder(r.schema.ByteOrder).
		SemanticType(e.SemanticType).
		NullValue(e.NullValue).
		Build(path...)
	if err != nil {
		return nil, 0, err
	}

	begin, err := ir.NewTokenBuilder().
		Signal(ir.SignalBeginEnum).
		Name(e.Name).
		Description(e.Description).
		Version(e.Version).
		Deprecated(e.Deprecated).
		Size(size).
		Offset(offset).
		Encoding(enc).
		Build()
	if err != nil {
		return nil, 0, err
	}
	tokens := []*ir.Token{begin}

	for _, v := range e.ValidValues {
		vpath := append(append([]string(nil), path...), v.Name)
		if err := r.checkVersions(vpath, v.Version, v.Deprecated); err != nil {
			return nil, 0, err
		}

		valueEnc, err := ir.NewEncodingBuilder().
			PrimitiveType(e.Encoding).
			ByteOrder(r.schema.ByteOrder).
			Presence(ir.Constant).
			ConstValue(v.Value).
			Build(vpath...)
		if err != nil {
			return nil, 0, err
		}

		tok, err := ir.NewTokenBuilder().
			Signal(ir.SignalValidValue).
			Name(v.Name).
			Description(v.Description).
			Version(v.Version).
			Deprecated(v.Deprecated).
			Encoding(valueEnc).
			Build()
		if err != nil {
			return nil, 0, err
		}
		tokens = append(tokens, tok)
	}

	end, err := ir.NewTokenBuilder().
		Signal(ir.SignalEndEnum).
		Name(e.Name).
		Version(e.Version).
		Deprecated(e.Deprecated).
		Size(size).
		Offset(offset).
		Build()
	if err != nil {
		return nil, 0, err
	}
	tokens = append(tokens, end)
	return tokens, size, nil
}

func (r *resolver) resolveSet(s *schema.Set, offset int, path []string) ([]*ir.Token, int, error) {
	if err := r.checkVersions(path, s.Version, s.Deprecated); err != nil {
		return nil, 0, err
	}

	size := s.Encoding.Size()
	enc, err := ir.NewEncodingBuilder().
		PrimitiveType(s.Encoding).
		ByteOrder(r.schema.ByteOrder).
		SemanticType(s.SemanticType).
		Build(path...)
	if err != nil {
		return nil, 0, err
	}

	begin, err := ir.NewTokenBuilder().
		Signal(ir.SignalBeginSet).
		Name(s.Name).
		Description(s.Description).
		Version(s.Version).
		Deprecated(s.Deprecated).
		Size(size).
		Offset(offset).
		Encoding(enc).
		Build()
	if err != nil {
		return nil, 0, err
	}
	tokens := []*ir.Token{begin}

	for _, c := range s.Choices {
		cpath := append(append([]string(nil), path...), c.Name)
		if err := r.checkVersions(cpath, c.Version, c.Deprecated); err != nil {
			return nil, 0, err
		}
		if c.Bit < 0 || c.Bit >= size*8 {
			return nil, 0, errors.BoundsOutOfDomain(cpath, s.Encoding.String(), c.Bit)
		}

		choiceEnc, err := ir.NewEncodingBuilder().
			PrimitiveType(s.Encoding).
			ByteOrder(r.schema.ByteOrder).
			Presence(ir.Constant).
			ConstValue(ir.NewLongValue(int64(c.Bit))).
			Build(cpath...)
		if err != nil {
			return nil, 0, err
		}

		tok, err := ir.NewTokenBuilder().
			Signal(ir.SignalChoice).
			Name(c.Name).
			Description(c.Description).
			Version(c.Version).
			Deprecated(c.Deprecated).
			Encoding(choiceEnc).
			Build()
		if err != nil {
			return nil, 0, err
		}
		tokens = append(tokens, tok)
	}

	end, err := ir.NewTokenBuilder().
		Signal(ir.SignalEndSet).
		Name(s.Name).
		Version(s.Version).
		Deprecated(s.Deprecated).
		Size(size).
		Offset(offset).
		Build()
	if err != nil {
		return nil, 0, err
	}
	tokens = append(tokens, end)
	return tokens, size, nil
}

// resolveGroup resolves the dimension header first, then the repeated
// template block exactly once. Per-iteration instances are not separately
// represented; the IR encodes one static template plus a runtime repeat
// count.
func (r *resolver) resolveGroup(f *schema.Field, path []string) ([]*ir.Token, error) {
	g := f.Group
	if g == nil {
		return nil, errors.InvalidData(errors.PhaseResolve, path, "group field has no group declaration")
	}
	if err := r.checkVersions(path, g.Version, g.Deprecated); err != nil {
		return nil, err
	}

	dimension := g.Dimension
	if dimension == nil {
		dimension = standardGroupDimension()
	}
	dimTokens, _, err := r.resolveComposite(dimension, dimension.Name, "", 0, path)
	if err != nil {
		return nil, err
	}

	body, blockEnd, err := r.resolveBlock(g.Fields, path)
	if err != nil {
		return nil, err
	}

	blockLength, err := r.resolveBlockLength(blockEnd, g.BlockLength, 0, path)
	if err != nil {
		return nil, err
	}

	begin, err := ir.NewTokenBuilder().
		Signal(ir.SignalBeginGroup).
		Name(g.Name).
		Description(g.Description).
		ID(g.ID).
		Version(g.Version).
		Deprecated(g.Deprecated).
		Size(blockLength).
		Build()
	if err != nil {
		return nil, err
	}
	end, err := ir.NewTokenBuilder().
		Signal(ir.SignalEndGroup).
		Name(g.Name).
		ID(g.ID).
		Version(g.Version).
		Deprecated(g.Deprecated).
		Size(blockLength).
		Build()
	if err != nil {
		return nil, err
	}

	tokens := make([]*ir.Token, 0, len(dimTokens)+len(body)+2)
	tokens = append(tokens, begin)
	tokens = append(tokens, dimTokens...)
	tokens = append(tokens, body...)
	tokens = append(tokens, end)
	return tokens, nil
}

// resolveVarData emits the var-data subtree: both offset and encoded length
// are unconditionally the VariableLength sentinel because the block's true
// position depends on everything variable before it at runtime. The inner
// length-prefix structure is descriptive only.
func (r *resolver) resolveVarData(f *schema.Field, path []string) ([]*ir.Token, error) {
	v := f.VarData
	if v == nil {
		return nil, errors.InvalidData(errors.PhaseResolve, path, "var-data field has no var-data declaration")
	}
	if err := r.checkVersions(path, v.Version, v.Deprecated); err != nil {
		return nil, err
	}

	begin, err := ir.NewTokenBuilder().
		Signal(ir.SignalBeginVarData).
		Name(f.Name).
		Description(v.Description).
		ID(f.ID).
		Version(v.Version).
		Deprecated(v.Deprecated).
		Size(ir.VariableLength).
		Offset(ir.VariableLength).
		Build()
	if err != nil {
		return nil, err
	}

	lengthType := v.LengthType()
	dataType := v.DataType()

	compositeBegin, err := ir.NewTokenBuilder().
		Signal(ir.SignalBeginComposite).
		Name("varDataEncoding").
		Size(ir.VariableLength).
		Build()
	if err != nil {
		return nil, err
	}

	lengthEnc, err := ir.NewEncodingBuilder().
		PrimitiveType(lengthType).
		ByteOrder(r.schema.ByteOrder).
		SemanticType("length").
		Build(path...)
	if err != nil {
		return nil, err
	}
	lengthTok, err := ir.NewTokenBuilder().
		Signal(ir.SignalEncoding).
		Name("length").
		Size(lengthType.Size()).
		Encoding(lengthEnc).
		Build()
	if err != nil {
		return nil, err
	}

	dataEnc, err := ir.NewEncodingBuilder().
		PrimitiveType(dataType).
		ByteOrder(r.schema.ByteOrder).
		SemanticType(v.SemanticType).
		CharacterEncoding(v.CharacterEncoding).
		Build(path...)
	if err != nil {
		return nil, err
	}
	dataTok, err := ir.NewTokenBuilder().
		Signal(ir.SignalEncoding).
		Name("varData").
		Size(ir.VariableLength).
		Offset(lengthType.Size()).
		Encoding(dataEnc).
		Build()
	if err != nil {
		return nil, err
	}

	compositeEnd, err := ir.NewTokenBuilder().
		Signal(ir.SignalEndComposite).
		Name("varDataEncoding").
		Size(ir.VariableLength).
		Build()
	if err != nil {
		return nil, err
	}
	end, err := ir.NewTokenBuilder().
		Signal(ir.SignalEndVarData).
		Name(f.Name).
		ID(f.ID).
		Version(v.Version).
		Deprecated(v.Deprecated).
		Size(ir.VariableLength).
		Offset(ir.VariableLength).
		Build()
	if err != nil {
		return nil, err
	}

	return []*ir.Token{begin, compositeBegin, lengthTok, dataTok, compositeEnd, end}, nil
}

// resolveBlockLength reconciles the resolved cursor end with a declared
// block length and alignment: a declared length shorter than the footprint
// is an error, a longer one reserves expansion room, and alignment rounds
// the result up with implicit padding.
func (r *resolver) resolveBlockLength(blockEnd, declared, alignment int, path []string) (int, error) {
	length := blockEnd
	if declared != 0 {
		if declared < blockEnd {
			return 0, errors.New(errors.PhaseResolve, errors.KindOffsetOverlap).
				Path(path...).
				Detail("declared block length %d is less than resolved footprint %d", declared, blockEnd).
				Value(declared).
				Build()
		}
		length = declared
	}

	if alignment == 0 {
		alignment = r.defaultAlignment
	}
	return alignTo(length, alignment), nil
}

func (r *resolver) checkVersions(path []string, version, deprecated int) error {
	if version > r.schema.Version {
		return errors.VersionOutOfRange(path, version, r.schema.Version)
	}
	if deprecated != 0 && deprecated <= version {
		return errors.UnreachableDeprecation(errors.PhaseResolve, path, version, deprecated)
	}
	return nil
}

// wrapField brackets a value field's type subtree with BEGIN_FIELD/END_FIELD
// delimiters carrying the field's identity and resolved block offset.
func wrapField(f *schema.Field, offset int, typeTokens []*ir.Token) ([]*ir.Token, error) {
	begin, err := ir.NewTokenBuilder().
		Signal(ir.SignalBeginField).
		Name(f.Name).
		Description(f.Description).
		ID(f.ID).
		Version(f.Version).
		Deprecated(f.Deprecated).
		Offset(offset).
		Build()
	if err != nil {
		return nil, err
	}
	end, err := ir.NewTokenBuilder().
		Signal(ir.SignalEndField).
		Name(f.Name).
		ID(f.ID).
		Version(f.Version).
		Deprecated(f.Deprecated).
		Build()
	if err != nil {
		return nil, err
	}

	tokens := make([]*ir.Token, 0, len(typeTokens)+2)
	tokens = append(tokens, begin)
	tokens = append(tokens, typeTokens...)
	tokens = append(tokens, end)
	return tokens, nil
}

// updateComponentTokenCounts back-patches the subtree span onto every BEGIN
// token and its matching END, enabling O(1) subtree skip during traversal.
func updateComponentTokenCounts(tokens []*ir.Token) {
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
}

// standardGroupDimension is the default group size header: a uint16 block
// length descriptor followed by a uint16 repeat count.
func standardGroupDimension() *schema.Composite {
	return &schema.Composite{
		TypeInfo: schema.TypeInfo{Name: "groupSizeEncoding"},
		Members: []schema.Member{
			{
				Name: "blockLength",
				Type: &schema.EncodedType{
					TypeInfo:  schema.TypeInfo{Name: "blockLength"},
					Primitive: ir.UInt16,
				},
			},
			{
				Name: "numInGroup",
				Type: &schema.EncodedType{
					TypeInfo:  schema.TypeInfo{Name: "numInGroup"},
					Primitive: ir.UInt16,
				},
			},
		},
	}
}

func effectivePresence(field, typ ir.Presence) ir.Presence {
	if field != ir.Required {
		return field
	}
	return typ
}

func alignTo(v, alignment int) int {
	if alignment <= 1 {
		return v
	}
	remainder := v % alignment
	if remainder == 0 {
		return v
	}
	return v + alignment - remainder
}
