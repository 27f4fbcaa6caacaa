package errors

import (
	"fmt"
	"strings"
)

var (
	ErrNotFound            = fmt.Errorf("not found")
	ErrInvalidInput        = fmt.Errorf("invalid input")
	ErrDuplicateSubmission = fmt.Errorf("duplicate submission")
	// ErrAlreadyDecided refuses a decision for an accepted or rejected
	// submission.
	ErrAlreadyDecided = fmt.Errorf("%w: submission already decided", ErrInvalidInput)

	ErrMissingField       = fmt.Errorf("missing field")
	ErrInvalidAttachment  = fmt.Errorf("invalid attachment")
	ErrInvalidSection     = fmt.Errorf("invalid section")
	ErrDuplicateAttribute = fmt.Errorf("duplicate personal attribute")
	ErrInvalidFiling      = fmt.Errorf("invalid filing")
	ErrDecode             = fmt.Errorf("decode failed")
	ErrRejected           = fmt.Errorf("filing rejected")
)

// ConstructionError is returned by the model builders when a value cannot
// be assembled. Kind is one of the construction sentinels above.
type ConstructionError struct {
	Kind    error
	Section string
	Field   string
	Reason  string
}

func (c *ConstructionError) Error() string {
	var b strings.Builder
	b.WriteString(c.Kind.Error())
	if c.Section != "" {
		b.WriteString(" ")
		b.WriteString(c.Section)
	}
	if c.Field != "" {
		b.WriteString(": ")
		b.WriteString(c.Field)
	}
	if c.Reason != "" {
		b.WriteString(": ")
		b.WriteString(c.Reason)
	}
	return b.String()
}

func (c *ConstructionError) Unwrap() error {
	return c.Kind
}

// MissingField reports a mandatory attribute absent at build time.
func MissingField(name string) error {
	return &ConstructionError{Kind: ErrMissingField, Field: name}
}

// InvalidSection reports a section whose sub-kind is missing mandatory data.
func InvalidSection(kind, reason string) error {
	return &ConstructionError{Kind: ErrInvalidSection, Section: kind, Reason: reason}
}

func InvalidAttachment(reason string) error {
	return &ConstructionError{Kind: ErrInvalidAttachment, Reason: reason}
}

func DuplicateAttribute(kind string) error {
	return &ConstructionError{Kind: ErrDuplicateAttribute, Field: kind}
}

// DecodeError carries the dotted path of the field that could not be read.
type DecodeError struct {
	Path string
	Err  error
}

func (d *DecodeError) Error() string {
	if d.Path == "" {
		return fmt.Sprintf("%v: %v", ErrDecode, d.Err)
	}
	return fmt.Sprintf("%v at %s: %v", ErrDecode, d.Path, d.Err)
}

func (d *DecodeError) Unwrap() []error {
	return []error{ErrDecode, d.Err}
}

// Rejection is a single business-rule rejection issued by the filing
// authority, surfaced verbatim.
type Rejection struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	FieldPath string `json:"field_path,omitempty"`
}

// RejectionError wraps the authority's rejections for a submission.
type RejectionError struct {
	Rejections []Rejection
}

func (r *RejectionError) Error() string {
	parts := make([]string, 0, len(r.Rejections))
	for _, rej := range r.Rejections {
		if rej.FieldPath != "" {
			parts = append(parts, fmt.Sprintf("%s (%s): %s", rej.Code, rej.FieldPath, rej.Message))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", rej.Code, rej.Message))
	}
	return fmt.Sprintf("%v: %s", ErrRejected, strings.Join(parts, "; "))
}

func (r *RejectionError) Unwrap() error {
	return ErrRejected
}
