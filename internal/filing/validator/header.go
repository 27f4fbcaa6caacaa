package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gartstein/efiling/internal/filing/models"
)

const (
	minCompanyName = 3
	maxCompanyName = 160
)

var (
	eightDigits = regexp.MustCompile(`^[0-9]{8}$`)
	sixDigits   = regexp.MustCompile(`^[0-9]{6}$`)
	authCode    = regexp.MustCompile(`^[A-Za-z0-9]{6,8}$`)
)

func headerPath(field string) string { return models.JoinPath("form_submission", field) }

// header checks the FormSubmission. Incorporations have no company number
// or authentication code yet.
func (r *run) header(ft models.FilingType, form models.FormSubmission) {
	incorporation := ft == models.FilingTypeCompanyIncorporation

	switch {
	case incorporation && form.CompanyNumber != "":
		r.add(headerPath("company_number"), CodeNotAllowed, "is allocated on incorporation")
	case !incorporation:
		if code, msg := companyNumberProblem(form.CompanyType, form.CompanyNumber); code != "" {
			r.add(headerPath("company_number"), code, msg)
		}
	}

	switch n := utf8.RuneCountInString(strings.TrimSpace(form.CompanyName)); {
	case n == 0:
		r.add(headerPath("company_name"), models.CodeMissingField, "is required")
	case n < minCompanyName:
		r.add(headerPath("company_name"), models.CodeTooShort, fmt.Sprintf("must be at least %d characters", minCompanyName))
	case n > maxCompanyName:
		r.add(headerPath("company_name"), models.CodeTooLong, fmt.Sprintf("must be at most %d characters", maxCompanyName))
	}

	switch {
	case !incorporation && form.CompanyType == models.CompanyTypeUnspecified:
		r.add(headerPath("company_type"), models.CodeMissingField, "is required")
	case form.CompanyType != models.CompanyTypeUnspecified && !form.CompanyType.IsValid():
		r.add(headerPath("company_type"), models.CodeInvalidValue, "is not a known value")
	}

	switch {
	case form.DateSigned.IsZero():
		r.add(headerPath("date_signed"), models.CodeMissingField, "is required")
	case !r.asOf.IsZero() && dateOf(form.DateSigned).After(dateOf(r.asOf)):
		r.add(headerPath("date_signed"), CodeDateInFuture, "must not be in the future")
	}

	if !form.Language.IsValid() {
		r.add(headerPath("language"), models.CodeInvalidValue, "must be English or Welsh")
	}

	switch {
	case form.AuthenticationCode == "" && !incorporation:
		r.add(headerPath("authentication_code"), models.CodeMissingField, "is required")
	case form.AuthenticationCode != "" && !authCode.MatchString(form.AuthenticationCode):
		r.add(headerPath("authentication_code"), models.CodeInvalidFormat, "must be 6 to 8 letters or digits")
	}
}

// companyNumberProblem checks number against the jurisdiction of t: eight
// digits in England and Wales, otherwise the jurisdiction prefix and six
// digits. The format is not checked when the type is unknown.
func companyNumberProblem(t models.CompanyType, number string) (code, message string) {
	if number == "" {
		return models.CodeMissingField, "is required"
	}
	if !t.IsValid() {
		return "", ""
	}
	prefix := t.NumberPrefix()
	if prefix == "" {
		if !eightDigits.MatchString(number) {
			return models.CodeInvalidFormat, "must be 8 digits"
		}
		return "", ""
	}
	if !strings.HasPrefix(number, prefix) || !sixDigits.MatchString(number[len(prefix):]) {
		return models.CodeInvalidFormat, fmt.Sprintf("must be %s followed by 6 digits", prefix)
	}
	return "", ""
}
