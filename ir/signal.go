package ir

// Signal is the structural role of a token in the stream. BEGIN/END pairs
// delimit subtrees in the flattened tree; the remaining signals are leaves.
type Signal byte

const (
	// SignalNone is the zero value and never appears in a valid stream.
	SignalNone Signal = iota

	SignalBeginMessage
	SignalEndMessage
	SignalBeginComposite
	SignalEndComposite
	SignalBeginField
	SignalEndField
	SignalBeginGroup
	SignalEndGroup
	SignalBeginEnum
	SignalValidValue
	SignalEndEnum
	SignalBeginSet
	SignalChoice
	SignalEndSet
	SignalBeginVarData
	SignalEndVarData
	SignalEncoding
)

func (s Signal) String() string {
	switch s {
	case SignalBeginMessage:
		return "BEGIN_MESSAGE"
	case SignalEndMessage:
		return "END_MESSAGE"
	case SignalBeginComposite:
		return "BEGIN_COMPOSITE"
	case SignalEndComposite:
		return "END_COMPOSITE"
	case SignalBeginField:
		return "BEGIN_FIELD"
	case SignalEndField:
		return "END_FIELD"
	case SignalBeginGroup:
		return "BEGIN_GROUP"
	case SignalEndGroup:
		return "END_GROUP"
	case SignalBeginEnum:
		return "BEGIN_ENUM"
	case SignalValidValue:
		return "VALID_VALUE"
	case SignalEndEnum:
		return "END_ENUM"
	case SignalBeginSet:
		return "BEGIN_SET"
	case SignalChoice:
		return "CHOICE"
	case SignalEndSet:
		return "END_SET"
	case SignalBeginVarData:
		return "BEGIN_VAR_DATA"
	case SignalEndVarData:
		return "END_VAR_DATA"
	case SignalEncoding:
		return "ENCODING"
	default:
		return "UNKNOWN"
	}
}

// IsBegin reports whether the signal opens a delimited subtree.
func (s Signal) IsBegin() bool {
	switch s {
	case SignalBeginMessage, SignalBeginComposite, SignalBeginField,
		SignalBeginGroup, SignalBeginEnum, SignalBeginSet, SignalBeginVarData:
		return true
	default:
		return false
	}
}

// IsEnd reports whether the signal closes a delimited subtree.
func (s Signal) IsEnd() bool {
	switch s {
	case SignalEndMessage, SignalEndComposite, SignalEndField,
		SignalEndGroup, SignalEndEnum, SignalEndSet, SignalEndVarData:
		return true
	default:
		return false
	}
}

// PairedEnd returns the END signal matching a BEGIN signal, or SignalNone
// when the receiver is not a BEGIN.
func (s Signal) PairedEnd() Signal {
	switch s {
	case SignalBeginMessage:
		return SignalEndMessage
	case SignalBeginComposite:
		return SignalEndComposite
	case SignalBeginField:
		return SignalEndField
	case SignalBeginGroup:
		return SignalEndGroup
	case SignalBeginEnum:
		return SignalEndEnum
	case SignalBeginSet:
		return SignalEndSet
	case SignalBeginVarData:
		return SignalEndVarData
	default:
		return SignalNone
	}
}
