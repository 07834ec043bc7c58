// Package schema defines the resolved schema graph consumed by the layout
// resolver.
//
// A schema-definition front end (XML or JSON based, external to this module)
// parses declarations into this graph: messages composed of value fields,
// nested repeating groups, and variable-length data blocks, over named
// encoded types, composites, enums, and choice sets. The graph carries
// declared offsets, presence, versioning metadata, and the schema-wide
// layout policy; it does not carry resolved byte layout. Offsets, encoded
// lengths, and component spans are assigned by the layout package, and the
// resulting ir.Ir is the single source of truth for downstream consumers.
package schema
