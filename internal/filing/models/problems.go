package models

import "fmt"

// Reason codes shared by the section checks and the validator.
const (
	CodeMissingField      = "missing_field"
	CodeConflictingFields = "conflicting_fields"
	CodeTooLong           = "too_long"
	CodeTooShort          = "too_short"
	CodeInvalidValue      = "invalid_value"
	CodeInvalidCount      = "invalid_count"
	CodeInvalidFormat     = "invalid_format"
	CodeMixedControl      = "mixed_nature_of_control"
	CodeTotalMismatch     = "total_mismatch"
	CodeTooMany           = "too_many"
	CodeTooFew            = "too_few"
)

// Problem is a failed section rule, addressed relative to the value that
// reported it.
type Problem struct {
	Path    string
	Code    string
	Message string
}

func (p Problem) Error() string {
	if p.Path == "" {
		return fmt.Sprintf("%s: %s", p.Code, p.Message)
	}
	return fmt.Sprintf("%s: %s: %s", p.Path, p.Code, p.Message)
}

func missing(path string) Problem {
	return Problem{Path: path, Code: CodeMissingField, Message: "is required"}
}

func conflict(path, other string) Problem {
	return Problem{Path: path, Code: CodeConflictingFields, Message: "cannot be combined with " + other}
}

// under re-roots problems found in a nested value at base.
func under(base string, ps []Problem) []Problem {
	for i := range ps {
		ps[i].Path = JoinPath(base, ps[i].Path)
	}
	return ps
}

func index(base string, i int) string {
	return fmt.Sprintf("%s.%d", base, i)
}
