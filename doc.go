// Package sbe provides a schema-driven binary message codec toolkit built
// around a token-stream intermediate representation.
//
// A compiled schema is represented as flattened, delimited trees of tokens:
// every message, composite, enum, set, repeating group, and variable-length
// data block becomes a run of tokens whose resolved byte offsets and encoded
// lengths fully describe the wire layout. Code generators and runtime
// codecs walk the streams without ever re-reading the schema source.
//
// # Architecture Overview
//
// The toolkit is organized into packages with distinct responsibilities:
//
//	simple-binary-encoding/
//	├── schema/      Resolved schema graph handed over by a definition front end
//	├── layout/      Offset and length resolution from schema graph to IR
//	├── ir/          Token model, persisted codec, interchange export, validation
//	└── errors/      Structured error types shared across phases
//
// # Quick Start
//
// Resolve a schema graph and persist the result:
//
//	out, err := layout.Resolve(s)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := ir.Encode(out)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Load a persisted IR and walk a message:
//
//	decoded, err := ir.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ir.ValidateIr(decoded); err != nil {
//	    log.Fatal(err)
//	}
//
//	tokens := decoded.Message(id)
//	for _, field := range ir.CollectFields(tokens[1 : len(tokens)-1]) {
//	    fmt.Println(field[0].Name(), field[0].Offset())
//	}
//
// # Thread Safety
//
// A resolved Ir is read-only and safe for concurrent readers. Resolution
// itself is a single-threaded transformation; independent schemas may be
// resolved concurrently.
package sbe
