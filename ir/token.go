package ir

import (
	"fmt"

	"github.com/polygon-io/simple-binary-encoding/errors"
)

const (
	// InvalidID marks a token with no schema-assigned identifier.
	InvalidID = -1

	// VariableLength marks an offset or encoded length that depends on
	// variable-length data ahead of it in the encoding and is only knowable
	// at runtime.
	VariableLength = -1
)

// Token is a single node of the intermediate representation. The whole IR of
// a schema is an ordered list of tokens forming a flattened, delimited tree:
// entity boundaries are marked by BEGIN and END signals, and each BEGIN
// token's component token count spans its entire subtree so a reader can
// skip nested structure without descending into it.
//
// An encoding of a message header structure might look like:
//
//	Token 0 - Signal = BEGIN_MESSAGE, id = 100
//	Token 1 - Signal = BEGIN_FIELD, id = 25
//	Token 2 - Signal = ENCODING, PrimitiveType = uint32, encodedLength = 4, offset = 0
//	Token 3 - Signal = END_FIELD
//	Token 4 - Signal = END_MESSAGE
//
// All fields are fixed at construction except encodedLength and
// componentTokenCount, which the layout resolver back-patches once a
// subtree's matching END token has been produced. After resolution completes
// a token stream is read-only and safe for concurrent readers.
type Token struct {
	encoding            *Encoding
	name                string
	referencedName      string
	description         string
	packageName         string
	id                  int
	version             int
	deprecated          int
	encodedLength       int
	offset              int
	componentTokenCount int
	signal              Signal
}

// Signal returns the structural role of this token.
func (t *Token) Signal() Signal {
	return t.signal
}

// Name returns the name of the token in the message.
func (t *Token) Name() string {
	return t.name
}

// ReferencedName returns the type name when this token was produced by a
// reference into a composite, empty otherwise.
func (t *Token) ReferencedName() string {
	return t.referencedName
}

// Description returns what the token is to be used for.
func (t *Token) Description() string {
	return t.description
}

// PackageName returns the explicit package, meaningful only on
// BEGIN_MESSAGE tokens.
func (t *Token) PackageName() string {
	return t.packageName
}

// ID returns the identifier assigned in the message declaration, or
// InvalidID when not applicable.
func (t *Token) ID() int {
	return t.id
}

// Version returns the schema version in which this element was introduced.
func (t *Token) Version() int {
	return t.version
}

// Deprecated returns the version at which this element stopped being valid,
// 0 when never deprecated.
func (t *Token) Deprecated() int {
	return t.deprecated
}

// ApplicableTypeName returns the type name that should be applied in
// context: the referenced name when set, the token name otherwise.
func (t *Token) ApplicableTypeName() string {
	if t.referencedName != "" {
		return t.referencedName
	}
	return t.name
}

// EncodedLength returns the byte length of this element. 0 means the node
// has no independent footprint when encoded; VariableLength means the length
// depends on variable-length data preceding it at runtime.
func (t *Token) EncodedLength() int {
	return t.encodedLength
}

// SetEncodedLength back-patches the encoded length. Reserved for the layout
// resolver while the owning stream is under construction.
func (t *Token) SetEncodedLength(length int) {
	t.encodedLength = length
}

// Offset returns the byte offset within the enclosing fixed block.
// VariableLength means the true offset depends on variable-length fields
// ahead of this token in the encoding.
func (t *Token) Offset() int {
	return t.offset
}

// ComponentTokenCount returns the total number of tokens, including this
// one, spanned by this node's subtree in the flattened stream.
func (t *Token) ComponentTokenCount() int {
	return t.componentTokenCount
}

// SetComponentTokenCount back-patches the subtree span. Reserved for the
// layout resolver while the owning stream is under construction.
func (t *Token) SetComponentTokenCount(count int) {
	t.componentTokenCount = count
}

// Encoding returns the encoding carried by this token. Primitive tokens
// carry a meaningful one; structural tokens carry the default Encoding.
func (t *Token) Encoding() *Encoding {
	return t.encoding
}

// ArrayLength returns the number of encoded primitives in this type: 0 when
// no primitive type is present or the length is 0, 1 for a scalar, and >1
// for a fixed-size array.
func (t *Token) ArrayLength() int {
	if t.encoding.PrimitiveType() == None || t.encodedLength == 0 {
		return 0
	}
	return t.encodedLength / t.encoding.PrimitiveType().Size()
}

// MatchOnLength dispatches on the array length of the token: the one
// producer for a scalar, the many producer for a fixed array, and the empty
// string when the token has no encoded footprint. Consumers use the three
// cases to choose between no accessor, a scalar accessor, and a collection
// accessor.
func (t *Token) MatchOnLength(one, many func() string) string {
	arrayLength := t.ArrayLength()

	if arrayLength == 1 {
		return one()
	}
	if arrayLength > 1 {
		return many()
	}

	return ""
}

// IsConstantEncoding reports whether the encoding presence is Constant.
func (t *Token) IsConstantEncoding() bool {
	return t.encoding.Presence() == Constant
}

// IsOptionalEncoding reports whether the encoding presence is Optional.
func (t *Token) IsOptionalEncoding() bool {
	return t.encoding.Presence() == Optional
}

func (t *Token) String() string {
	return fmt.Sprintf(
		"Token{signal=%s, name=%q, referencedName=%q, id=%d, version=%d, deprecated=%d, encodedLength=%d, offset=%d, componentTokenCount=%d, encoding=%s}",
		t.signal, t.name, t.referencedName, t.id, t.version, t.deprecated,
		t.encodedLength, t.offset, t.componentTokenCount, t.encoding)
}

// TokenBuilder accumulates token fields with defaults and produces an
// immutable Token on Build. This is the preferred construction path for
// resolver code that fills fields incrementally while walking a schema
// graph.
type TokenBuilder struct {
	encoding            *Encoding
	name                string
	referencedName      string
	description         string
	packageName         string
	id                  int
	version             int
	deprecated          int
	size                int
	offset              int
	componentTokenCount int
	signal              Signal
}

// NewTokenBuilder creates a builder with defaults: id InvalidID, version 0,
// deprecated 0, size 0, offset 0, componentTokenCount 1, default encoding.
func NewTokenBuilder() *TokenBuilder {
	return &TokenBuilder{
		id:                  InvalidID,
		componentTokenCount: 1,
		encoding:            NewEncoding(),
	}
}

// Signal sets the structural role.
func (b *TokenBuilder) Signal(s Signal) *TokenBuilder {
	b.signal = s
	return b
}

// Name sets the token name.
func (b *TokenBuilder) Name(name string) *TokenBuilder {
	b.name = name
	return b
}

// ReferencedName sets the referenced type name.
func (b *TokenBuilder) ReferencedName(name string) *TokenBuilder {
	b.referencedName = name
	return b
}

// Description sets the description attribute.
func (b *TokenBuilder) Description(description string) *TokenBuilder {
	b.description = description
	return b
}

// PackageName sets the explicit package. Use only for BEGIN_MESSAGE tokens
// of types that require one.
func (b *TokenBuilder) PackageName(name string) *TokenBuilder {
	b.packageName = name
	return b
}

// ID sets the schema-assigned identifier.
func (b *TokenBuilder) ID(id int) *TokenBuilder {
	b.id = id
	return b
}

// Version sets the introduced-in schema version.
func (b *TokenBuilder) Version(version int) *TokenBuilder {
	b.version = version
	return b
}

// Deprecated sets the deprecated-as-of version.
func (b *TokenBuilder) Deprecated(deprecated int) *TokenBuilder {
	b.deprecated = deprecated
	return b
}

// Size sets the encoded length of the type.
func (b *TokenBuilder) Size(size int) *TokenBuilder {
	b.size = size
	return b
}

// Offset sets the byte offset within the enclosing block.
func (b *TokenBuilder) Offset(offset int) *TokenBuilder {
	b.offset = offset
	return b
}

// ComponentTokenCount sets the subtree span.
func (b *TokenBuilder) ComponentTokenCount(count int) *TokenBuilder {
	b.componentTokenCount = count
	return b
}

// Encoding sets the encoding carried by the token.
func (b *TokenBuilder) Encoding(e *Encoding) *TokenBuilder {
	b.encoding = e
	return b
}

// Build validates the mandatory fields and returns the Token. Signal, name,
// and encoding are required for every token regardless of role.
func (b *TokenBuilder) Build() (*Token, error) {
	if b.signal == SignalNone {
		return nil, errors.MissingField(errors.PhaseConstruct, []string{b.name}, "signal")
	}
	if b.name == "" {
		return nil, errors.MissingField(errors.PhaseConstruct, nil, "name")
	}
	if b.encoding == nil {
		return nil, errors.MissingField(errors.PhaseConstruct, []string{b.name}, "encoding")
	}

	return &Token{
		signal:              b.signal,
		name:                b.name,
		referencedName:      b.referencedName,
		description:         b.description,
		packageName:         b.packageName,
		id:                  b.id,
		version:             b.version,
		deprecated:          b.deprecated,
		encodedLength:       b.size,
		offset:              b.offset,
		componentTokenCount: b.componentTokenCount,
		encoding:            b.encoding,
	}, nil
}
