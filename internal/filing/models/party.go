package models

import (
	"sort"
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
)

// RequiredAttributes is the number of personal attributes a person must
// supply when a filing authenticates them.
const RequiredAttributes = 3

// PersonName is a natural person's name.
type PersonName struct {
	Title        string   `json:"title,omitempty" validate:"max=50"`
	Forenames    []string `json:"forenames" validate:"min=1,dive,required,max=50"`
	Surname      string   `json:"surname" validate:"required,max=160"`
	Unrecognized []byte   `json:"-"`
}

func NewPersonName(surname string, forenames ...string) (PersonName, error) {
	n := PersonName{Forenames: forenames, Surname: surname}
	return n, checkPresence(n)
}

// PersonalAttribute is one identifying fact about a person.
type PersonalAttribute struct {
	Kind         AttributeKind `json:"kind"`
	Value        string        `json:"value"`
	Unrecognized []byte        `json:"-"`
}

// PersonalAttributes holds at most one attribute per kind.
type PersonalAttributes map[AttributeKind]PersonalAttribute

// NewPersonalAttributes builds the set, rejecting a second value for a kind
// already present.
func NewPersonalAttributes(attrs ...PersonalAttribute) (PersonalAttributes, error) {
	out := make(PersonalAttributes, len(attrs))
	for _, a := range attrs {
		if !a.Kind.IsValid() {
			return nil, e.MissingField("personal_attribute")
		}
		if a.Value == "" {
			return nil, e.MissingField(a.Kind.String())
		}
		if _, dup := out[a.Kind]; dup {
			return nil, e.DuplicateAttribute(a.Kind.String())
		}
		out[a.Kind] = a
	}
	return out, nil
}

// Kinds returns the kinds present in wire order.
func (p PersonalAttributes) Kinds() []AttributeKind {
	kinds := make([]AttributeKind, 0, len(p))
	for k := range p {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (p PersonalAttributes) Check() []Problem {
	var out []Problem
	for _, k := range p.Kinds() {
		switch {
		case !k.IsValid():
			out = append(out, Problem{Path: k.String(), Code: CodeInvalidValue, Message: "unknown attribute kind"})
		case p[k].Value == "":
			out = append(out, missing(k.String()))
		case len([]rune(p[k].Value)) > 3:
			// Each attribute is given as three characters.
			out = append(out, Problem{Path: k.String(), Code: CodeTooLong, Message: "must be at most 3 characters"})
		}
	}
	return out
}

// Person is a natural person appointed as a director.
type Person struct {
	Name               PersonName         `json:"name"`
	ServiceAddress     ServiceAddress     `json:"service_address"`
	DateOfBirth        time.Time          `json:"date_of_birth" validate:"required"`
	Nationality        string             `json:"nationality" validate:"required,max=50"`
	Occupation         string             `json:"occupation" validate:"required,max=35"`
	CountryOfResidence string             `json:"country_of_residence" validate:"required,max=50"`
	ResidentialAddress ResidentialAddress `json:"residential_address"`
	Unrecognized       []byte             `json:"-"`
}

func NewPerson(
	name PersonName,
	dateOfBirth time.Time,
	nationality, occupation, countryOfResidence string,
	service ServiceAddress,
	residential ResidentialAddress,
) (*Person, error) {
	p := &Person{
		Name:               name,
		ServiceAddress:     service,
		DateOfBirth:        dateOfBirth,
		Nationality:        nationality,
		Occupation:         occupation,
		CountryOfResidence: countryOfResidence,
		ResidentialAddress: residential,
	}
	return p, built(p, p.Check())
}

func (p *Person) Check() []Problem {
	return append(
		under("service_address", p.ServiceAddress.Check()),
		under("residential_address", p.ResidentialAddress.Check())...,
	)
}

// SecretaryPerson is a natural person appointed as company secretary.
type SecretaryPerson struct {
	Name           PersonName     `json:"name"`
	ServiceAddress ServiceAddress `json:"service_address"`
	Unrecognized   []byte         `json:"-"`
}

func NewSecretaryPerson(name PersonName, service ServiceAddress) (*SecretaryPerson, error) {
	p := &SecretaryPerson{Name: name, ServiceAddress: service}
	return p, built(p, p.Check())
}

func (p *SecretaryPerson) Check() []Problem {
	return under("service_address", p.ServiceAddress.Check())
}

// MemberPerson is a natural person who is a member of an LLP.
type MemberPerson struct {
	Name               PersonName         `json:"name"`
	ServiceAddress     ServiceAddress     `json:"service_address"`
	DateOfBirth        time.Time          `json:"date_of_birth" validate:"required"`
	CountryOfResidence string             `json:"country_of_residence" validate:"required,max=50"`
	ResidentialAddress ResidentialAddress `json:"residential_address"`
	Unrecognized       []byte             `json:"-"`
}

func NewMemberPerson(
	name PersonName,
	dateOfBirth time.Time,
	countryOfResidence string,
	service ServiceAddress,
	residential ResidentialAddress,
) (*MemberPerson, error) {
	p := &MemberPerson{
		Name:               name,
		ServiceAddress:     service,
		DateOfBirth:        dateOfBirth,
		CountryOfResidence: countryOfResidence,
		ResidentialAddress: residential,
	}
	return p, built(p, p.Check())
}

func (p *MemberPerson) Check() []Problem {
	return append(
		under("service_address", p.ServiceAddress.Check()),
		under("residential_address", p.ResidentialAddress.Check())...,
	)
}

// CorporateOfficer is a body corporate holding an office.
type CorporateOfficer struct {
	CorporateName      string         `json:"corporate_name" validate:"required,max=160"`
	Address            CompanyAddress `json:"address"`
	RegistrationNumber string         `json:"registration_number,omitempty" validate:"max=50"`
	PlaceRegistered    string         `json:"place_registered,omitempty" validate:"max=50"`
	LawGoverned        string         `json:"law_governed,omitempty" validate:"max=50"`
	LegalForm          string         `json:"legal_form,omitempty" validate:"max=50"`
	Unrecognized       []byte         `json:"-"`
}

func NewCorporateOfficer(name string, address CompanyAddress, registrationNumber, placeRegistered string) (*CorporateOfficer, error) {
	c := &CorporateOfficer{
		CorporateName:      name,
		Address:            address,
		RegistrationNumber: registrationNumber,
		PlaceRegistered:    placeRegistered,
	}
	return c, built(c, nil)
}

// built turns the first presence failure of v, or the first section problem,
// into a MissingField construction error.
func built(v any, problems []Problem) error {
	if err := checkPresence(v); err != nil {
		return err
	}
	if len(problems) > 0 {
		return e.MissingField(problems[0].Path)
	}
	return nil
}
