package models

import (
	e "github.com/gartstein/efiling/internal/filing/errors"
)

// BaseAddress is a postal address anywhere in the world.
type BaseAddress struct {
	Premise      string `json:"premise" validate:"required,max=50"`
	Street       string `json:"street,omitempty" validate:"max=50"`
	Thoroughfare string `json:"thoroughfare,omitempty" validate:"max=50"`
	PostTown     string `json:"post_town" validate:"required,max=50"`
	County       string `json:"county,omitempty" validate:"max=50"`
	Postcode     string `json:"postcode" validate:"required,max=15"`
	// Country is an ISO-3166 code or a UK nation tag such as GB-WLS.
	Country      string `json:"country" validate:"required,country"`
	Unrecognized []byte `json:"-"`
}

// UKAddress is an address inside the United Kingdom, used for registered
// offices.
type UKAddress struct {
	Premise      string   `json:"premise" validate:"required,max=50"`
	Street       string   `json:"street,omitempty" validate:"max=50"`
	Thoroughfare string   `json:"thoroughfare,omitempty" validate:"max=50"`
	PostTown     string   `json:"post_town" validate:"required,max=50"`
	County       string   `json:"county,omitempty" validate:"max=50"`
	Postcode     string   `json:"postcode" validate:"required,max=15"`
	Nation       UKNation `json:"country" validate:"enum"`
	POBox        string   `json:"po_box,omitempty" validate:"max=10"`
	CareOfName   string   `json:"care_of_name,omitempty" validate:"max=100"`
	Unrecognized []byte   `json:"-"`
}

// CompanyAddress is a BaseAddress that may be reached through a PO box or
// a care-of name.
type CompanyAddress struct {
	Address      BaseAddress `json:"address"`
	CareOfName   string      `json:"care_of_name,omitempty" validate:"max=100"`
	POBox        string      `json:"po_box,omitempty" validate:"max=10"`
	Unrecognized []byte      `json:"-"`
}

// ServiceAddress is the address published for service of documents. It is
// either the registered office or an explicit address, never both.
type ServiceAddress struct {
	SameAsRegisteredOffice bool            `json:"same_as_registered_office,omitempty"`
	Address                *CompanyAddress `json:"address,omitempty"`
	Unrecognized           []byte          `json:"-"`
}

// ResidentialAddress is a person's usual residential address, which may be
// declared identical to the service address.
type ResidentialAddress struct {
	SameAsServiceAddress bool         `json:"same_as_service_address,omitempty"`
	Address              *BaseAddress `json:"address,omitempty"`
	// Secure marks an address protected from disclosure to credit agencies.
	Secure       bool   `json:"secure,omitempty"`
	Unrecognized []byte `json:"-"`
}

func NewBaseAddress(premise, street, postTown, postcode, country string) (BaseAddress, error) {
	a := BaseAddress{
		Premise:  premise,
		Street:   street,
		PostTown: postTown,
		Postcode: postcode,
		Country:  country,
	}
	return a, checkPresence(a)
}

func NewUKAddress(premise, street, postTown, postcode string, nation UKNation) (UKAddress, error) {
	a := UKAddress{
		Premise:  premise,
		Street:   street,
		PostTown: postTown,
		Postcode: postcode,
		Nation:   nation,
	}
	if nation == UKNationUnspecified {
		return a, e.MissingField("country")
	}
	return a, checkPresence(a)
}

func NewCompanyAddress(address BaseAddress, poBox string) (CompanyAddress, error) {
	a := CompanyAddress{Address: address, POBox: poBox}
	return a, checkPresence(a)
}

// ServiceAtRegisteredOffice is the service address of an officer who uses
// the registered office.
func ServiceAtRegisteredOffice() ServiceAddress {
	return ServiceAddress{SameAsRegisteredOffice: true}
}

func NewServiceAddress(address CompanyAddress) (ServiceAddress, error) {
	if err := checkPresence(address); err != nil {
		return ServiceAddress{}, err
	}
	return ServiceAddress{Address: &address}, nil
}

// ResidenceAtServiceAddress declares the residential address to be the
// service address.
func ResidenceAtServiceAddress() ResidentialAddress {
	return ResidentialAddress{SameAsServiceAddress: true}
}

func NewResidentialAddress(address BaseAddress, secure bool) (ResidentialAddress, error) {
	if err := checkPresence(address); err != nil {
		return ResidentialAddress{}, err
	}
	return ResidentialAddress{Address: &address, Secure: secure}, nil
}

// Check reports the union branch that is absent or doubly set.
func (s ServiceAddress) Check() []Problem {
	switch {
	case s.SameAsRegisteredOffice && s.Address != nil:
		return []Problem{conflict("address", "same_as_registered_office")}
	case !s.SameAsRegisteredOffice && s.Address == nil:
		return []Problem{missing("address")}
	}
	return nil
}

func (r ResidentialAddress) Check() []Problem {
	switch {
	case r.SameAsServiceAddress && r.Address != nil:
		return []Problem{conflict("address", "same_as_service_address")}
	case !r.SameAsServiceAddress && r.Address == nil:
		return []Problem{missing("address")}
	}
	return nil
}

// checkPresence fails with MissingField for the first absent mandatory
// field of v. Format and length rules are left to the validator.
func checkPresence(v any) error {
	for _, fv := range CheckFields(v) {
		if IsPresenceTag(fv.Tag, fv.Param) {
			return e.MissingField(fv.Path)
		}
	}
	return nil
}

// IsPresenceTag reports whether a struct-tag failure means a value is absent.
func IsPresenceTag(tag, param string) bool {
	switch tag {
	case "required", "required_if", "required_without":
		return true
	case "min":
		return param == "1"
	}
	return false
}
