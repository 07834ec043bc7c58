package ir

import (
	"sort"

	"github.com/polygon-io/simple-binary-encoding/errors"
)

// Ir is the intermediate representation of a compiled schema: the header
// structure, one token list per message, and one per standalone named type.
// Token order within each list is significant; the lists form flattened,
// delimited trees.
//
// An Ir is mutable only while the layout resolver populates it. Once
// resolution completes it is treated as read-only and may be shared freely
// between concurrent readers.
type Ir struct {
	packageName     string
	namespaceName   string
	semanticVersion string
	description     string
	id              int
	version         int
	byteOrder       ByteOrder
	headerStructure []*Token
	messagesByID    map[int][]*Token
	typesByName     map[string][]*Token
}

// NewIr creates a container for a schema's token streams.
func NewIr(packageName string, id, version int, semanticVersion, description string, byteOrder ByteOrder, headerStructure []*Token) *Ir {
	return &Ir{
		packageName:     packageName,
		id:              id,
		version:         version,
		semanticVersion: semanticVersion,
		description:     description,
		byteOrder:       byteOrder,
		headerStructure: headerStructure,
		messagesByID:    make(map[int][]*Token),
		typesByName:     make(map[string][]*Token),
	}
}

// PackageName returns the schema package name.
func (ir *Ir) PackageName() string {
	return ir.packageName
}

// NamespaceName returns the optional namespace, empty when not declared.
func (ir *Ir) NamespaceName() string {
	return ir.namespaceName
}

// SetNamespaceName sets the optional namespace.
func (ir *Ir) SetNamespaceName(namespace string) {
	ir.namespaceName = namespace
}

// ID returns the schema id.
func (ir *Ir) ID() int {
	return ir.id
}

// Version returns the schema version.
func (ir *Ir) Version() int {
	return ir.version
}

// SemanticVersion returns the application-level semantic version string.
func (ir *Ir) SemanticVersion() string {
	return ir.semanticVersion
}

// Description returns the schema description.
func (ir *Ir) Description() string {
	return ir.description
}

// ByteOrder returns the schema-wide default byte order.
func (ir *Ir) ByteOrder() ByteOrder {
	return ir.byteOrder
}

// HeaderStructure returns the tokens describing the message header
// composite.
func (ir *Ir) HeaderStructure() []*Token {
	return ir.headerStructure
}

// AddMessage adds a message token stream. The first token must be a
// BEGIN_MESSAGE carrying the message id; a duplicate id is an error.
func (ir *Ir) AddMessage(tokens []*Token) error {
	if len(tokens) == 0 || tokens[0].Signal() != SignalBeginMessage {
		return errors.InvalidData(errors.PhaseResolve, nil, "message stream must start with BEGIN_MESSAGE")
	}

	id := tokens[0].ID()
	if _, exists := ir.messagesByID[id]; exists {
		return errors.DuplicateID([]string{tokens[0].Name()}, id)
	}
	ir.messagesByID[id] = tokens
	return nil
}

// Message returns the token stream for a message id, nil when absent.
func (ir *Ir) Message(id int) []*Token {
	return ir.messagesByID[id]
}

// MessageIDs returns the declared message ids in ascending order.
func (ir *Ir) MessageIDs() []int {
	ids := make([]int, 0, len(ir.messagesByID))
	for id := range ir.messagesByID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Messages returns the message token streams in ascending id order.
func (ir *Ir) Messages() [][]*Token {
	ids := ir.MessageIDs()
	streams := make([][]*Token, 0, len(ids))
	for _, id := range ids {
		streams = append(streams, ir.messagesByID[id])
	}
	return streams
}

// AddType adds a standalone named type's token stream, keyed by the name of
// its first token. Simple encoded types are a single ENCODING token; all
// other kinds open with a BEGIN signal.
func (ir *Ir) AddType(tokens []*Token) error {
	if len(tokens) == 0 || !(tokens[0].Signal().IsBegin() || tokens[0].Signal() == SignalEncoding) {
		return errors.InvalidData(errors.PhaseResolve, nil, "type stream must start with a BEGIN or ENCODING signal")
	}
	ir.typesByName[tokens[0].Name()] = tokens
	return nil
}

// Type returns the token stream for a named type, nil when absent.
func (ir *Ir) Type(name string) []*Token {
	return ir.typesByName[name]
}

// TypeNames returns the standalone type names in sorted order.
func (ir *Ir) TypeNames() []string {
	names := make([]string, 0, len(ir.typesByName))
	for name := range ir.typesByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subtree returns the tokens spanned by the node at index, using the BEGIN
// token's component token count so nested structure is skipped in O(1)
// rather than matched delimiter by delimiter. A leaf token yields a
// single-element slice.
func Subtree(tokens []*Token, index int) []*Token {
	count := tokens[index].ComponentTokenCount()
	end := index + count
	if end > len(tokens) {
		end = len(tokens)
	}
	return tokens[index:end]
}

// CollectFields returns the field subtrees declared directly in a message
// body, in stream order. The body excludes the BEGIN/END message pair.
func CollectFields(body []*Token) [][]*Token {
	return collectSignal(body, SignalBeginField)
}

// CollectGroups returns the repeating group subtrees declared directly in a
// message body, in stream order.
func CollectGroups(body []*Token) [][]*Token {
	return collectSignal(body, SignalBeginGroup)
}

// CollectVarData returns the var-data subtrees declared directly in a
// message body, in stream order.
func CollectVarData(body []*Token) [][]*Token {
	return collectSignal(body, SignalBeginVarData)
}

func collectSignal(body []*Token, begin Signal) [][]*Token {
	var collected [][]*Token
	for i := 0; i < len(body); i += body[i].ComponentTokenCount() {
		if body[i].Signal() == begin {
			collected = append(collected, Subtree(body, i))
		}
	}
	return collected
}
