// Package layout transforms a resolved schema graph into token-stream
// intermediate representation, assigning every fixed-block element its byte
// offset and encoded length.
//
// Resolution walks each message's declared elements in order, maintaining a
// per-block offset cursor. Explicit offsets may only move the cursor forward;
// any gap becomes implicit padding. Repeating groups and variable-length
// data contribute tokens but never advance the enclosing fixed block.
// Resolution fails fast on the first semantic error; use the ir package's
// validator for accumulate-and-report checking of existing streams.
package layout
