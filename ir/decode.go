package ir

import (
	"bytes"
	"errors"

	"github.com/klauspost/compress/zstd"

	sbeerrors "github.com/polygon-io/simple-binary-encoding/errors"
	"github.com/polygon-io/simple-binary-encoding/ir/internal/binary"
)

// Decoding errors returned by Decode.
var (
	ErrInvalidMagic   = errors.New("invalid ir magic number")
	ErrInvalidVersion = errors.New("unsupported ir format version")
)

// Decode deserializes a persisted IR produced by Encode or
// EncodeCompressed. The result is structurally complete but deliberately
// unvalidated; run ValidateIr before trusting a stream from storage.
func Decode(data []byte) (*Ir, error) {
	r := binary.NewReader(bytes.NewReader(data))

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}

	version, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if version != FormatVersion {
		return nil, ErrInvalidVersion
	}

	container, err := r.ReadByte()
	if err != nil {
		return nil, r.WrapError("header", err)
	}

	payload, err := r.ReadRemaining()
	if err != nil {
		return nil, r.WrapError("body", err)
	}

	switch container {
	case containerRaw:
	case containerZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, sbeerrors.Wrap(sbeerrors.PhaseDecode, sbeerrors.KindInvalidData, err, "init zstd decoder")
		}
		defer dec.Close()
		payload, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, sbeerrors.Wrap(sbeerrors.PhaseDecode, sbeerrors.KindInvalidData, err, "decompress ir body")
		}
	default:
		return nil, sbeerrors.InvalidData(sbeerrors.PhaseDecode, nil, "unknown container flag")
	}

	return decodeBody(binary.NewReader(bytes.NewReader(payload)))
}

func decodeBody(r *binary.Reader) (*Ir, error) {
	packageName, err := r.ReadName()
	if err != nil {
		return nil, r.WrapError("schema header", err)
	}
	namespace, err := r.ReadName()
	if err != nil {
		return nil, r.WrapError("schema header", err)
	}
	semanticVersion, err := r.ReadName()
	if err != nil {
		return nil, r.WrapError("schema header", err)
	}
	description, err := r.ReadName()
	if err != nil {
		return nil, r.WrapError("schema header", err)
	}
	id, err := r.ReadS32()
	if err != nil {
		return nil, r.WrapError("schema header", err)
	}
	schemaVersion, err := r.ReadS32()
	if err != nil {
		return nil, r.WrapError("schema header", err)
	}
	byteOrder, err := r.ReadByte()
	if err != nil {
		return nil, r.WrapError("schema header", err)
	}

	headerTokens, err := readTokenList(r, "header structure")
	if err != nil {
		return nil, err
	}

	out := NewIr(packageName, int(id), int(schemaVersion), semanticVersion,
		description, ByteOrder(byteOrder), headerTokens)
	out.SetNamespaceName(namespace)

	typeCount, err := r.ReadU32()
	if err != nil {
		return nil, r.WrapError("type table", err)
	}
	for i := uint32(0); i < typeCount; i++ {
		tokens, err := readTokenList(r, "type")
		if err != nil {
			return nil, err
		}
		if err := out.AddType(tokens); err != nil {
			return nil, err
		}
	}

	messageCount, err := r.ReadU32()
	if err != nil {
		return nil, r.WrapError("message table", err)
	}
	for i := uint32(0); i < messageCount; i++ {
		tokens, err := readTokenList(r, "message")
		if err != nil {
			return nil, err
		}
		if err := out.AddMessage(tokens); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func readTokenList(r *binary.Reader, record string) ([]*Token, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, r.WrapError(record, err)
	}
	tokens := make([]*Token, 0, count)
	for i := uint32(0); i < count; i++ {
		t, err := readToken(r)
		if err != nil {
			return nil, r.WrapError(record, err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func readToken(r *binary.Reader) (*Token, error) {
	signal, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if Signal(signal) == SignalNone || Signal(signal) > SignalEncoding {
		return nil, sbeerrors.New(sbeerrors.PhaseDecode, sbeerrors.KindUnknownSignal).
			Detail("signal byte 0x%02x", signal).
			Build()
	}

	name, err := r.ReadName()
	if err != nil {
		return nil, err
	}
	referencedName, err := r.ReadName()
	if err != nil {
		return nil, err
	}
	description, err := r.ReadName()
	if err != nil {
		return nil, err
	}
	packageName, err := r.ReadName()
	if err != nil {
		return nil, err
	}

	var ints [6]int32
	for i := range ints {
		ints[i], err = r.ReadS32()
		if err != nil {
			return nil, err
		}
	}

	encoding, err := readEncoding(r)
	if err != nil {
		return nil, err
	}

	return &Token{
		signal:              Signal(signal),
		name:                name,
		referencedName:      referencedName,
		description:         description,
		packageName:         packageName,
		id:                  int(ints[0]),
		version:             int(ints[1]),
		deprecated:          int(ints[2]),
		encodedLength:       int(ints[3]),
		offset:              int(ints[4]),
		componentTokenCount: int(ints[5]),
		encoding:            encoding,
	}, nil
}

func readEncoding(r *binary.Reader) (*Encoding, error) {
	primitive, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	byteOrder, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	presence, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	var values [4]PrimitiveValue
	for i := range values {
		values[i], err = readPrimitiveValue(r)
		if err != nil {
			return nil, err
		}
	}

	semanticType, err := r.ReadName()
	if err != nil {
		return nil, err
	}
	characterEncoding, err := r.ReadName()
	if err != nil {
		return nil, err
	}
	epoch, err := r.ReadName()
	if err != nil {
		return nil, err
	}
	timeUnit, err := r.ReadName()
	if err != nil {
		return nil, err
	}

	return &Encoding{
		primitiveType:     PrimitiveType(primitive),
		byteOrder:         ByteOrder(byteOrder),
		presence:          Presence(presence),
		minValue:          values[0],
		maxValue:          values[1],
		nullValue:         values[2],
		constValue:        values[3],
		semanticType:      semanticType,
		characterEncoding: characterEncoding,
		epoch:             epoch,
		timeUnit:          timeUnit,
	}, nil
}

func readPrimitiveValue(r *binary.Reader) (PrimitiveValue, error) {
	kind, err := r.ReadByte()
	if err != nil {
		return PrimitiveValue{}, err
	}
	switch ValueKind(kind) {
	case ValueKindNone:
		return PrimitiveValue{}, nil
	case ValueKindLong:
		v, err := r.ReadS64()
		if err != nil {
			return PrimitiveValue{}, err
		}
		return NewLongValue(v), nil
	case ValueKindDouble:
		v, err := r.ReadF64LE()
		if err != nil {
			return PrimitiveValue{}, err
		}
		return NewDoubleValue(v), nil
	case ValueKindBytes:
		v, err := r.ReadLengthPrefixed()
		if err != nil {
			return PrimitiveValue{}, err
		}
		return NewBytesValue(v), nil
	default:
		return PrimitiveValue{}, sbeerrors.New(sbeerrors.PhaseDecode, sbeerrors.KindInvalidData).
			Detail("unknown primitive value kind 0x%02x", kind).
			Build()
	}
}
