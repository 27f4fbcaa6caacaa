package models

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldViolation is a single struct-tag failure, addressed by a dotted path
// built from the json field names (slice indices become path segments).
type FieldViolation struct {
	Path  string
	Tag   string
	Param string
	Kind  reflect.Kind
}

var (
	fields = newFieldValidator()

	countryCode = regexp.MustCompile(`^[A-Z]{2,3}$`)
	indexSuffix = regexp.MustCompile(`\[(\d+)\]`)
)

func newFieldValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(interface{ IsValid() bool })
		return ok && e.IsValid()
	})
	_ = v.RegisterValidation("country", func(fl validator.FieldLevel) bool {
		return IsCountryCode(fl.Field().String())
	})
	return v
}

// IsCountryCode accepts ISO-3166 alpha-2/alpha-3 style codes and the UK
// nation tags used on addresses.
func IsCountryCode(s string) bool {
	if countryCode.MatchString(s) {
		return true
	}
	for _, tag := range ukNationTags {
		if tag == s {
			return true
		}
	}
	return false
}

// CheckFields runs the struct-tag rules over v and every value nested in it.
func CheckFields(v any) []FieldViolation {
	err := fields.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldViolation{{Tag: "invalid", Param: err.Error()}}
	}
	out := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldViolation{
			Path:  fieldPath(fe.Namespace()),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Kind:  fe.Kind(),
		})
	}
	return out
}

// fieldPath drops the root type name and turns "a[0].b" into "a.0.b".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	return indexSuffix.ReplaceAllString(namespace, ".$1")
}

// JoinPath appends elements to a dotted path.
func JoinPath(base string, elems ...string) string {
	parts := make([]string, 0, len(elems)+1)
	if base != "" {
		parts = append(parts, base)
	}
	for _, e := range elems {
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, ".")
}
