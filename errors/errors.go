package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConstruct Phase = "construct" // Token/Encoding construction
	PhaseResolve   Phase = "resolve"   // schema graph layout resolution
	PhaseValidate  Phase = "validate"  // token stream validation
	PhaseDecode    Phase = "decode"    // persisted IR decoding
	PhaseEncode    Phase = "encode"    // persisted IR encoding
)

// Kind categorizes the error
type Kind string

const (
	KindMissingField      Kind = "missing_field"
	KindMissingConstant   Kind = "missing_constant"
	KindMissingNullValue  Kind = "missing_null_value"
	KindBoundsOutOfDomain Kind = "bounds_out_of_domain"
	KindOffsetRegression  Kind = "offset_regression"
	KindOffsetOverlap     Kind = "offset_overlap"
	KindVersionOrder      Kind = "version_order"
	KindVersionRange      Kind = "version_range"
	KindUnbalancedNesting Kind = "unbalanced_nesting"
	KindSpanMismatch      Kind = "span_mismatch"
	KindVarDataOffset     Kind = "var_data_offset"
	KindInvalidData       Kind = "invalid_data"
	KindUnknownSignal     Kind = "unknown_signal"
	KindDuplicateID       Kind = "duplicate_id"
)

// Error is the structured error type used throughout the toolkit.
// Path names the schema element the error applies to, outermost first.
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	SchemaType string
	Detail     string
	Path       []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.SchemaType != "" {
		b.WriteString(": type ")
		b.WriteString(e.SchemaType)
	}

	if e.Detail != "" {
		if e.SchemaType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the schema element path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// SchemaType sets the schema type name
func (b *Builder) SchemaType(t string) *Builder {
	b.err.SchemaType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common failure modes

// MissingField creates an error for a mandatory construction field left unset
func MissingField(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingField,
		Path:   path,
		Detail: fmt.Sprintf("mandatory field %q not set", fieldName),
	}
}

// MissingConstant creates an error for constant presence without a literal value
func MissingConstant(path []string, schemaType string) *Error {
	return &Error{
		Phase:      PhaseConstruct,
		Kind:       KindMissingConstant,
		Path:       path,
		SchemaType: schemaType,
		Detail:     "constant presence requires a constant value",
	}
}

// MissingNullValue creates an error for optional presence with no derivable null sentinel
func MissingNullValue(path []string, schemaType string) *Error {
	return &Error{
		Phase:      PhaseConstruct,
		Kind:       KindMissingNullValue,
		Path:       path,
		SchemaType: schemaType,
		Detail:     "optional presence requires a resolvable null value",
	}
}

// BoundsOutOfDomain creates an error for min/max/null outside the primitive's domain
func BoundsOutOfDomain(path []string, schemaType string, value any) *Error {
	return &Error{
		Phase:      PhaseConstruct,
		Kind:       KindBoundsOutOfDomain,
		Path:       path,
		SchemaType: schemaType,
		Detail:     fmt.Sprintf("value %v outside representable domain", value),
		Value:      value,
	}
}

// OffsetRegression creates an error for an explicit offset behind the block cursor
func OffsetRegression(phase Phase, path []string, declared, cursor int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOffsetRegression,
		Path:   path,
		Detail: fmt.Sprintf("declared offset %d is behind block cursor %d", declared, cursor),
		Value:  declared,
	}
}

// OffsetOverlap creates an error for overlapping fixed-field byte ranges
func OffsetOverlap(phase Phase, path []string, offset, length, prevEnd int) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindOffsetOverlap,
		Path:  path,
		Detail: fmt.Sprintf("range [%d,%d) overlaps preceding field ending at %d",
			offset, offset+length, prevEnd),
		Value: offset,
	}
}

// UnreachableDeprecation creates an error for deprecated <= version
func UnreachableDeprecation(phase Phase, path []string, version, deprecated int) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindVersionOrder,
		Path:  path,
		Detail: fmt.Sprintf("deprecated version %d must be greater than introduced version %d",
			deprecated, version),
		Value: deprecated,
	}
}

// VersionOutOfRange creates an error for a field version beyond the schema version
func VersionOutOfRange(path []string, version, schemaVersion int) *Error {
	return &Error{
		Phase: PhaseResolve,
		Kind:  KindVersionRange,
		Path:  path,
		Detail: fmt.Sprintf("introduced version %d exceeds schema version %d",
			version, schemaVersion),
		Value: version,
	}
}

// UnbalancedNesting creates an error for mismatched BEGIN/END delimiters
func UnbalancedNesting(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindUnbalancedNesting,
		Path:   path,
		Detail: detail,
	}
}

// SpanMismatch creates an error for componentTokenCount disagreeing with the actual span
func SpanMismatch(path []string, declared, actual int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindSpanMismatch,
		Path:   path,
		Detail: fmt.Sprintf("component token count %d, actual span %d", declared, actual),
		Value:  declared,
	}
}

// VarDataOffset creates an error for a var-data token carrying a fixed offset
func VarDataOffset(path []string, offset int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindVarDataOffset,
		Path:   path,
		Detail: fmt.Sprintf("var-data token carries fixed offset %d", offset),
		Value:  offset,
	}
}

// DuplicateID creates an error for two messages declaring the same id
func DuplicateID(path []string, id int) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindDuplicateID,
		Path:   path,
		Detail: fmt.Sprintf("id %d already declared", id),
		Value:  id,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ValidationError is returned by the stream validator when one or more
// invariants fail. It accumulates every violation found in a single pass
// so schema authors see all problems at once.
type ValidationError struct {
	Violations []*Error
}

// NewValidationError creates an error from the accumulated violations
func NewValidationError(violations []*Error) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "[validate] no violations recorded"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("token stream failed validation with %d violation(s):\n", len(e.Violations)))

	// Group by element path for cleaner output
	byPath := make(map[string][]*Error)
	var pathOrder []string
	for _, v := range e.Violations {
		key := strings.Join(v.Path, ".")
		if key == "" {
			key = "(stream)"
		}
		if _, exists := byPath[key]; !exists {
			pathOrder = append(pathOrder, key)
		}
		byPath[key] = append(byPath[key], v)
	}

	for _, path := range pathOrder {
		b.WriteString("\n  ")
		b.WriteString(path)
		b.WriteString(":\n")
		for _, v := range byPath[path] {
			b.WriteString("    - ")
			b.WriteString(string(v.Kind))
			if v.Detail != "" {
				b.WriteString(": ")
				b.WriteString(v.Detail)
			}
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}
