package ir

import (
	"github.com/fxamacker/cbor/v2"

	sbeerrors "github.com/polygon-io/simple-binary-encoding/errors"
)

// Interchange is a self-describing projection of an Ir for consumption by
// tooling outside this module. The native persisted format (Encode/Decode)
// remains authoritative; this form trades compactness for schema-free
// decodability.
type Interchange struct {
	Package         string          `cbor:"package"`
	Namespace       string          `cbor:"namespace,omitempty"`
	SemanticVersion string          `cbor:"semanticVersion,omitempty"`
	Description     string          `cbor:"description,omitempty"`
	ID              int             `cbor:"id"`
	Version         int             `cbor:"version"`
	ByteOrder       string          `cbor:"byteOrder"`
	HeaderStructure []TokenRecord   `cbor:"headerStructure,omitempty"`
	Types           [][]TokenRecord `cbor:"types,omitempty"`
	Messages        [][]TokenRecord `cbor:"messages,omitempty"`
}

// TokenRecord is one token in interchange form.
type TokenRecord struct {
	Signal              string         `cbor:"signal"`
	Name                string         `cbor:"name"`
	ReferencedName      string         `cbor:"referencedName,omitempty"`
	Description         string         `cbor:"description,omitempty"`
	PackageName         string         `cbor:"packageName,omitempty"`
	ID                  int            `cbor:"id"`
	Version             int            `cbor:"version"`
	Deprecated          int            `cbor:"deprecated"`
	EncodedLength       int            `cbor:"encodedLength"`
	Offset              int            `cbor:"offset"`
	ComponentTokenCount int            `cbor:"componentTokenCount"`
	Encoding            EncodingRecord `cbor:"encoding"`
}

// EncodingRecord is a token's encoding in interchange form.
type EncodingRecord struct {
	PrimitiveType     string       `cbor:"primitiveType"`
	ByteOrder         string       `cbor:"byteOrder"`
	Presence          string       `cbor:"presence"`
	MinValue          *ValueRecord `cbor:"minValue,omitempty"`
	MaxValue          *ValueRecord `cbor:"maxValue,omitempty"`
	NullValue         *ValueRecord `cbor:"nullValue,omitempty"`
	ConstValue        *ValueRecord `cbor:"constValue,omitempty"`
	SemanticType      string       `cbor:"semanticType,omitempty"`
	CharacterEncoding string       `cbor:"characterEncoding,omitempty"`
	Epoch             string       `cbor:"epoch,omitempty"`
	TimeUnit          string       `cbor:"timeUnit,omitempty"`
}

// ValueRecord is a primitive value in interchange form; exactly one of the
// representation fields is set.
type ValueRecord struct {
	Long   *int64   `cbor:"long,omitempty"`
	Double *float64 `cbor:"double,omitempty"`
	Bytes  []byte   `cbor:"bytes,omitempty"`
}

// ExportCBOR serializes the Ir to canonical CBOR interchange form.
func ExportCBOR(i *Ir) ([]byte, error) {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, sbeerrors.Wrap(sbeerrors.PhaseEncode, sbeerrors.KindInvalidData, err, "init cbor encoder")
	}

	data, err := mode.Marshal(ToInterchange(i))
	if err != nil {
		return nil, sbeerrors.Wrap(sbeerrors.PhaseEncode, sbeerrors.KindInvalidData, err, "marshal ir to cbor")
	}
	return data, nil
}

// ToInterchange builds the interchange projection of an Ir.
func ToInterchange(i *Ir) *Interchange {
	out := &Interchange{
		Package:         i.PackageName(),
		Namespace:       i.NamespaceName(),
		SemanticVersion: i.SemanticVersion(),
		Description:     i.Description(),
		ID:              i.ID(),
		Version:         i.Version(),
		ByteOrder:       i.ByteOrder().String(),
		HeaderStructure: tokenRecords(i.HeaderStructure()),
	}
	for _, name := range i.TypeNames() {
		out.Types = append(out.Types, tokenRecords(i.Type(name)))
	}
	for _, tokens := range i.Messages() {
		out.Messages = append(out.Messages, tokenRecords(tokens))
	}
	return out
}

func tokenRecords(tokens []*Token) []TokenRecord {
	records := make([]TokenRecord, 0, len(tokens))
	for _, t := range tokens {
		records = append(records, TokenRecord{
			Signal:              t.Signal().String(),
			Name:                t.Name(),
			ReferencedName:      t.ReferencedName(),
			Description:         t.Description(),
			PackageName:         t.PackageName(),
			ID:                  t.ID(),
			Version:             t.Version(),
			Deprecated:          t.Deprecated(),
			EncodedLength:       t.EncodedLength(),
			Offset:              t.Offset(),
			ComponentTokenCount: t.ComponentTokenCount(),
			Encoding:            encodingRecord(t.Encoding()),
		})
	}
	return records
}

func encodingRecord(e *Encoding) EncodingRecord {
	return EncodingRecord{
		PrimitiveType:     e.PrimitiveType().String(),
		ByteOrder:         e.ByteOrder().String(),
		Presence:          e.Presence().String(),
		MinValue:          valueRecord(e.MinValue()),
		MaxValue:          valueRecord(e.MaxValue()),
		NullValue:         valueRecord(e.NullValue()),
		ConstValue:        valueRecord(e.ConstValue()),
		SemanticType:      e.SemanticType(),
		CharacterEncoding: e.CharacterEncoding(),
		Epoch:             e.Epoch(),
		TimeUnit:          e.TimeUnit(),
	}
}

func valueRecord(v PrimitiveValue) *ValueRecord {
	switch v.Kind() {
	case ValueKindLong:
		l := v.Long()
		return &ValueRecord{Long: &l}
	case ValueKindDouble:
		d := v.Double()
		return &ValueRecord{Double: &d}
	case ValueKindBytes:
		return &ValueRecord{Bytes: v.Bytes()}
	default:
		return nil
	}
}
