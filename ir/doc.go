// Package ir defines the intermediate representation for resolved message
// schemas: a flattened stream of tokens describing messages, composites,
// enums, sets, repeating groups, and variable-length data.
//
// A token stream is a pre-order walk of the schema tree. Structural nodes
// emit paired begin and end tokens, leaves emit a single token, and every
// token carries the count of tokens in its subtree so a reader can skip a
// component in constant time.
//
// The package also provides a persisted binary form (Encode, Decode), an
// optional zstd container (EncodeCompressed), a CBOR interchange projection
// (ExportCBOR), and structural validation of token streams (ValidateIr,
// ValidateStream).
package ir
