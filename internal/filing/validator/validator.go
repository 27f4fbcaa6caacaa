// Package validator checks an assembled filing against the registry's
// structural and business rules before it is submitted.
//
// Rules run in a fixed order: header, section completeness, cross-section
// consistency, then attachment presence. Every defect is collected; the
// result lists them in that order with each field path reported once.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
)

// DefaultMinimumAge is the youngest an individual officer may be, in whole
// years, on the date the filing is signed.
const DefaultMinimumAge = 8

// Reason codes produced by the validator in addition to the section codes
// defined in models.
const (
	CodeDateInFuture       = "date_in_future"
	CodeAfterDateSigned    = "after_date_signed"
	CodeNotAllowed         = "not_allowed"
	CodeNoDesignatedMember = "no_designated_member"
	CodeMustBeDesignated   = "must_be_designated"
	CodeNoDirector         = "no_director"
	CodeOfficerNotAllowed  = "officer_not_allowed"
	CodeBelowMinimumAge    = "below_minimum_age"
	CodeWrongControlFamily = "wrong_control_family"
	CodeAllotmentMismatch  = "allotment_mismatch"
	CodeUnexpectedDocument = "unexpected_attachment"
)

// Violation is one failed rule.
type Violation struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (%s)", v.Path, v.Message, v.Code)
}

// Result is the outcome of a validation run. A filing is valid when no
// violation was found.
type Result struct {
	Violations []Violation `json:"violations"`
}

func (r Result) Valid() bool { return len(r.Violations) == 0 }

// Err returns nil for a valid result and an *InvalidError otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &InvalidError{Violations: r.Violations}
}

// InvalidError carries the violations of a filing that must not be
// submitted. It unwraps to errors.ErrInvalidFiling.
type InvalidError struct {
	Violations []Violation
}

func (i *InvalidError) Error() string {
	parts := make([]string, 0, len(i.Violations))
	for _, v := range i.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%s: %s", e.ErrInvalidFiling, strings.Join(parts, "; "))
}

func (i *InvalidError) Unwrap() error { return e.ErrInvalidFiling }

// Validator holds the policy values applied to every filing. It is safe for
// concurrent use.
type Validator struct {
	minimumAge int
}

type Option func(*Validator)

// WithMinimumAge overrides DefaultMinimumAge.
func WithMinimumAge(years int) Option {
	return func(v *Validator) {
		if years >= 0 {
			v.minimumAge = years
		}
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{minimumAge: DefaultMinimumAge}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks f without any reference to the current time, so the
// signing date is not compared against "now".
func (v *Validator) Validate(f models.Filing) Result {
	return v.ValidateAsOf(f, time.Time{})
}

// ValidateAsOf is Validate plus a check that the filing was not signed
// after asOf. A zero asOf disables that check.
func (v *Validator) ValidateAsOf(f models.Filing, asOf time.Time) Result {
	r := &run{minimumAge: v.minimumAge, asOf: asOf, seen: map[string]bool{}}
	if f == nil || reflect.ValueOf(f).IsNil() {
		r.add("", models.CodeMissingField, "filing is required")
		return r.result()
	}
	form := f.Header()
	r.header(f.FilingType(), form)
	r.sections(f)
	r.signed = dateOf(form.DateSigned)

	switch x := f.(type) {
	case *models.ChargeRegistration:
		r.charge(x)
		r.chargeAttachments(x)
	case *models.CompanyIncorporation:
		r.incorporation(x)
		r.incorporationAttachments(x)
	case *models.OfficerAppointment:
		r.officerAppointment(x)
	case *models.PSCNotification:
		r.pscNotification(x)
	}
	return r.result()
}

// Validate runs a default Validator.
func Validate(f models.Filing) Result { return New().Validate(f) }

type run struct {
	minimumAge int
	asOf       time.Time
	signed     time.Time
	out        []Violation
	seen       map[string]bool
}

func (r *run) add(path, code, message string) {
	if r.seen[path] {
		return
	}
	r.seen[path] = true
	r.out = append(r.out, Violation{Path: path, Code: code, Message: message})
}

func (r *run) result() Result {
	return Result{Violations: r.out}
}

// sections reports struct-tag failures and the section checks of f.
func (r *run) sections(f models.Filing) {
	for _, fv := range models.CheckFields(f) {
		code, msg := describe(fv)
		r.add(fv.Path, code, msg)
	}
	for _, p := range f.Check() {
		r.add(p.Path, p.Code, p.Message)
	}
}

func describe(fv models.FieldViolation) (string, string) {
	collection := fv.Kind == reflect.Slice || fv.Kind == reflect.Map || fv.Kind == reflect.Array
	switch {
	case models.IsPresenceTag(fv.Tag, fv.Param):
		return models.CodeMissingField, "is required"
	case fv.Tag == "max" && collection:
		return models.CodeTooMany, "must have at most " + fv.Param + " entries"
	case fv.Tag == "min" && collection:
		return models.CodeTooFew, "must have at least " + fv.Param + " entries"
	case fv.Tag == "len" && collection:
		return models.CodeInvalidCount, "must have exactly " + fv.Param + " entries"
	case fv.Tag == "max":
		return models.CodeTooLong, "must be at most " + fv.Param + " characters"
	case fv.Tag == "min":
		return models.CodeTooShort, "must be at least " + fv.Param + " characters"
	case fv.Tag == "len":
		return models.CodeInvalidFormat, "must be exactly " + fv.Param + " characters"
	case fv.Tag == "enum":
		return models.CodeInvalidValue, "is not a known value"
	case fv.Tag == "country":
		return models.CodeInvalidFormat, "must be a country code or UK nation tag"
	case fv.Tag == "iso4217":
		return models.CodeInvalidFormat, "must be an ISO 4217 currency code"
	case fv.Tag == "numeric":
		return models.CodeInvalidFormat, "must be numeric"
	case fv.Tag == "gt" || fv.Tag == "gte":
		return models.CodeInvalidValue, "must be greater than " + fv.Param
	}
	return models.CodeInvalidValue, "failed rule " + fv.Tag
}

// notAfterSigned reports d when it falls on a later day than date_signed.
func (r *run) notAfterSigned(path string, d time.Time) {
	if r.signed.IsZero() || d.IsZero() {
		return
	}
	if dateOf(d).After(r.signed) {
		r.add(path, CodeAfterDateSigned, "must not be after date_signed")
	}
}

// oldEnough reports a date of birth less than the minimum age before
// date_signed.
func (r *run) oldEnough(path string, dob time.Time) {
	if r.signed.IsZero() || dob.IsZero() {
		return
	}
	if ageAt(dob, r.signed) < r.minimumAge {
		r.add(path, CodeBelowMinimumAge, fmt.Sprintf("must be at least %d years before date_signed", r.minimumAge))
	}
}

func dateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ageAt is the number of whole years between dob and at.
func ageAt(dob, at time.Time) int {
	dob, at = dob.UTC(), at.UTC()
	years := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		years--
	}
	return years
}
