package ir

import (
	"github.com/klauspost/compress/zstd"

	sbeerrors "github.com/polygon-io/simple-binary-encoding/errors"
	"github.com/polygon-io/simple-binary-encoding/ir/internal/binary"
)

const (
	// Magic identifies a persisted IR file ("SBEI" little-endian).
	Magic uint32 = 0x49454253

	// FormatVersion is the persisted IR format version.
	FormatVersion uint32 = 1
)

// Container flag values following the header.
const (
	containerRaw  byte = 0
	containerZstd byte = 1
)

// Encode serializes the Ir to the persisted record format. Every token
// attribute round-trips losslessly; Decode of the result yields
// bit-identical resolved offsets, lengths, and signals.
func Encode(i *Ir) ([]byte, error) {
	return encode(i, containerRaw)
}

// EncodeCompressed is Encode with the record body zstd-compressed. Decode
// detects the container flag automatically.
func EncodeCompressed(i *Ir) ([]byte, error) {
	return encode(i, containerZstd)
}

func encode(i *Ir, container byte) ([]byte, error) {
	body := binary.NewWriter()
	writeSchemaHeader(body, i)

	writeTokenList(body, i.HeaderStructure())

	typeNames := i.TypeNames()
	body.WriteU32(uint32(len(typeNames)))
	for _, name := range typeNames {
		writeTokenList(body, i.Type(name))
	}

	ids := i.MessageIDs()
	body.WriteU32(uint32(len(ids)))
	for _, id := range ids {
		writeTokenList(body, i.Message(id))
	}

	payload := body.Bytes()
	if container == containerZstd {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, sbeerrors.Wrap(sbeerrors.PhaseEncode, sbeerrors.KindInvalidData, err, "init zstd encoder")
		}
		payload = enc.EncodeAll(payload, nil)
		if err := enc.Close(); err != nil {
			return nil, sbeerrors.Wrap(sbeerrors.PhaseEncode, sbeerrors.KindInvalidData, err, "close zstd encoder")
		}
	}

	out := binary.NewWriter()
	out.WriteU32LE(Magic)
	out.WriteU32LE(FormatVersion)
	out.Byte(container)
	out.WriteBytes(payload)
	return out.Bytes(), nil
}

func writeSchemaHeader(w *binary.Writer, i *Ir) {
	w.WriteName(i.PackageName())
	w.WriteName(i.NamespaceName())
	w.WriteName(i.SemanticVersion())
	w.WriteName(i.Description())
	w.WriteS32(int32(i.ID()))
	w.WriteS32(int32(i.Version()))
	w.Byte(byte(i.ByteOrder()))
}

func writeTokenList(w *binary.Writer, tokens []*Token) {
	w.WriteU32(uint32(len(tokens)))
	for _, t := range tokens {
		writeToken(w, t)
	}
}

func writeToken(w *binary.Writer, t *Token) {
	w.Byte(byte(t.Signal()))
	w.WriteName(t.Name())
	w.WriteName(t.ReferencedName())
	w.WriteName(t.Description())
	w.WriteName(t.PackageName())
	w.WriteS32(int32(t.ID()))
	w.WriteS32(int32(t.Version()))
	w.WriteS32(int32(t.Deprecated()))
	w.WriteS32(int32(t.EncodedLength()))
	w.WriteS32(int32(t.Offset()))
	w.WriteS32(int32(t.ComponentTokenCount()))
	writeEncoding(w, t.Encoding())
}

func writeEncoding(w *binary.Writer, e *Encoding) {
	w.Byte(byte(e.PrimitiveType()))
	w.Byte(byte(e.ByteOrder()))
	w.Byte(byte(e.Presence()))
	writePrimitiveValue(w, e.MinValue())
	writePrimitiveValue(w, e.MaxValue())
	writePrimitiveValue(w, e.NullValue())
	writePrimitiveValue(w, e.ConstValue())
	w.WriteName(e.SemanticType())
	w.WriteName(e.CharacterEncoding())
	w.WriteName(e.Epoch())
	w.WriteName(e.TimeUnit())
}

func writePrimitiveValue(w *binary.Writer, v PrimitiveValue) {
	w.Byte(byte(v.Kind()))
	switch v.Kind() {
	case ValueKindLong:
		w.WriteS64(v.Long())
	case ValueKindDouble:
		w.WriteF64LE(v.Double())
	case ValueKindBytes:
		w.WriteLengthPrefixed(v.Bytes())
	}
}
