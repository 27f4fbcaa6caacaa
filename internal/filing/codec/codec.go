// Package codec converts filings to and from the protobuf wire format used
// by the filing service.
//
// Every filing starts with its filing type in field 1 and its header in
// field 2. Attachments travel inline at the field that references them.
// Fields this package does not know are kept in the Unrecognized bytes of
// the message they were found in and written back unchanged by Encode.
//
// Decode returns filings in canonical form: empty lists and attribute sets
// come back nil and times come back in UTC. Encode(Decode(b)) reproduces b
// for any b written by Encode, and Decode(Encode(f)) equals f whenever f is
// already canonical.
package codec

import (
	"fmt"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldFilingType protowire.Number = 1
	fieldHeader     protowire.Number = 2
)

// Encode serialises f. Validity is not required.
func Encode(f models.Filing) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil filing", e.ErrInvalidInput)
	}
	var w encoder
	w.enum(fieldFilingType, int32(f.FilingType()))
	form := f.Header()
	if err := embed(&w, fieldHeader, &form, encodeFormSubmission); err != nil {
		return nil, err
	}

	var err error
	switch x := f.(type) {
	case *models.ChargeRegistration:
		err = encodeCharge(&w, x)
	case *models.CompanyIncorporation:
		err = encodeIncorporation(&w, x)
	case *models.OfficerAppointment:
		err = encodeOfficerAppointment(&w, x)
	case *models.PSCNotification:
		err = encodePSCNotification(&w, x)
	default:
		err = fmt.Errorf("%w: unsupported filing %T", e.ErrInvalidInput, f)
	}
	if err != nil {
		return nil, err
	}
	return w.b, nil
}

// Decode reads a filing written by Encode, or by any encoder of a newer
// revision of the format. Failures are *errors.DecodeError values naming
// the field that could not be read.
func Decode(b []byte) (models.Filing, error) {
	ft, err := PeekFilingType(b)
	if err != nil {
		return nil, err
	}
	switch ft {
	case models.FilingTypeChargeRegistration:
		return filing(decodeCharge(b))
	case models.FilingTypeCompanyIncorporation:
		return filing(decodeIncorporation(b))
	case models.FilingTypeOfficerAppointment:
		return filing(decodeOfficerAppointment(b))
	case models.FilingTypePSCNotification:
		return filing(decodePSCNotification(b))
	}
	return nil, &e.DecodeError{Path: "filing_type", Err: fmt.Errorf("unknown filing type %d", ft)}
}

// filing keeps a failed decode from returning a typed nil.
func filing[T models.Filing](v T, err error) (models.Filing, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// PeekFilingType reads only the filing type of an encoded filing.
func PeekFilingType(b []byte) (models.FilingType, error) {
	var ft models.FilingType
	_, err := walk(b, "", func(f *field) (bool, error) {
		if f.num != fieldFilingType {
			return false, nil
		}
		return true, enum(f, "filing_type", &ft)
	})
	if err != nil {
		return models.FilingTypeUnspecified, err
	}
	if ft == models.FilingTypeUnspecified {
		return ft, &e.DecodeError{Path: "filing_type", Err: fmt.Errorf("missing")}
	}
	return ft, nil
}

func encodeFormSubmission(w *encoder, h *models.FormSubmission) error {
	w.str(1, h.CompanyNumber)
	w.str(2, h.CompanyName)
	w.enum(3, int32(h.CompanyType))
	if err := w.time(4, h.DateSigned); err != nil {
		return err
	}
	w.enum(5, int32(h.Language))
	w.str(6, h.AuthenticationCode)
	w.str(7, h.CustomerReference)
	w.str(8, h.ContactName)
	w.str(9, h.ContactNumber)
	w.raw(h.Unrecognized)
	return nil
}

func decodeFormSubmission(b []byte, path string) (h models.FormSubmission, err error) {
	h.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.str("company_number", &h.CompanyNumber)
		case 2:
			return true, f.str("company_name", &h.CompanyName)
		case 3:
			return true, enum(f, "company_type", &h.CompanyType)
		case 4:
			return true, f.time("date_signed", &h.DateSigned)
		case 5:
			return true, enum(f, "language", &h.Language)
		case 6:
			return true, f.str("authentication_code", &h.AuthenticationCode)
		case 7:
			return true, f.str("customer_reference", &h.CustomerReference)
		case 8:
			return true, f.str("contact_name", &h.ContactName)
		case 9:
			return true, f.str("contact_number", &h.ContactNumber)
		}
		return false, nil
	})
	return h, err
}

// envelope claims the two fields every filing shares.
func envelope(f *field, form *models.FormSubmission) (bool, error) {
	switch f.num {
	case fieldFilingType:
		return true, nil
	case fieldHeader:
		return true, sub(f, "form_submission", decodeFormSubmission, form)
	}
	return false, nil
}

func encodeCharge(w *encoder, c *models.ChargeRegistration) error {
	if err := w.time(3, c.CreationDate); err != nil {
		return err
	}
	if err := w.time(4, c.PropertyAcquiredDate); err != nil {
		return err
	}
	w.strings(5, c.PersonsEntitled)
	w.boolean(6, c.AdditionalPersonsEntitled)
	w.str(7, c.ChargeDescription)
	w.boolean(8, c.FixedCharge)
	w.enum(9, int32(c.FloatingCharge))
	w.boolean(10, c.NegativePledge)
	w.boolean(11, c.BareTrustee)
	w.str(12, c.DeedCertificationStatement)
	w.str(13, c.DeedCertifiedBy)
	encodeAttributes(w, 14, c.PersonalAttributes)
	if err := ptr(w, 15, c.Deed, encodeAttachment); err != nil {
		return err
	}
	if err := ptr(w, 16, c.DeedSupplemental, encodeAttachment); err != nil {
		return err
	}
	w.raw(c.Unrecognized)
	return nil
}

func decodeCharge(b []byte) (*models.ChargeRegistration, error) {
	c := &models.ChargeRegistration{}
	var err error
	c.Unrecognized, err = walk(b, "", func(f *field) (bool, error) {
		switch f.num {
		case 3:
			return true, f.time("creation_date", &c.CreationDate)
		case 4:
			return true, f.time("property_acquired_date", &c.PropertyAcquiredDate)
		case 5:
			return true, f.appendStr("persons_entitled", &c.PersonsEntitled)
		case 6:
			return true, f.boolean("additional_persons_entitled", &c.AdditionalPersonsEntitled)
		case 7:
			return true, f.str("charge_description", &c.ChargeDescription)
		case 8:
			return true, f.boolean("fixed_charge", &c.FixedCharge)
		case 9:
			return true, enum(f, "floating_charge", &c.FloatingCharge)
		case 10:
			return true, f.boolean("negative_pledge", &c.NegativePledge)
		case 11:
			return true, f.boolean("bare_trustee", &c.BareTrustee)
		case 12:
			return true, f.str("deed_certification_statement", &c.DeedCertificationStatement)
		case 13:
			return true, f.str("deed_certified_by", &c.DeedCertifiedBy)
		case 14:
			return true, decodeAttribute(f, "personal_attributes", &c.PersonalAttributes)
		case 15:
			return true, subPtr(f, "deed", decodeAttachment, &c.Deed)
		case 16:
			return true, subPtr(f, "deed_supplemental", decodeAttachment, &c.DeedSupplemental)
		}
		return envelope(f, &c.Form)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func encodeIncorporation(w *encoder, c *models.CompanyIncorporation) error {
	w.enum(3, int32(c.CompanyType))
	w.enum(4, int32(c.CountryOfIncorporation))
	if err := embed(w, 5, &c.RegisteredOffice, encodeUKAddress); err != nil {
		return err
	}
	w.enum(6, int32(c.Articles))
	w.boolean(7, c.RestrictedArticles)
	if err := each(w, 8, c.Appointments, encodeAppointment); err != nil {
		return err
	}
	if err := embed(w, 9, &c.PSCs, encodePSCs); err != nil {
		return err
	}
	if err := each(w, 10, c.StatementOfCapital, encodeCapital); err != nil {
		return err
	}
	if err := each(w, 11, c.Subscribers, encodeSubscriber); err != nil {
		return err
	}
	if err := each(w, 12, c.Guarantors, encodeGuarantor); err != nil {
		return err
	}
	if err := embed(w, 13, &c.Authorizer, encodeAuthorizer); err != nil {
		return err
	}
	w.boolean(14, c.SameDay)
	w.enum(15, int32(c.NameException))
	for _, doc := range []struct {
		num protowire.Number
		a   *models.Attachment
	}{
		{16, c.NameAuthorization},
		{17, c.SameName},
		{18, c.Memorandum},
		{19, c.ArticlesDocument},
	} {
		if err := ptr(w, doc.num, doc.a, encodeAttachment); err != nil {
			return err
		}
	}
	w.strings(20, c.SICCodes)
	enums(w, 21, c.RegistersHeldOnPublicRecord)
	w.raw(c.Unrecognized)
	return nil
}

func decodeIncorporation(b []byte) (*models.CompanyIncorporation, error) {
	c := &models.CompanyIncorporation{}
	var err error
	c.Unrecognized, err = walk(b, "", func(f *field) (bool, error) {
		switch f.num {
		case 3:
			return true, enum(f, "company_type", &c.CompanyType)
		case 4:
			return true, enum(f, "country_of_incorporation", &c.CountryOfIncorporation)
		case 5:
			return true, sub(f, "registered_office", decodeUKAddress, &c.RegisteredOffice)
		case 6:
			return true, enum(f, "articles", &c.Articles)
		case 7:
			return true, f.boolean("restricted_articles", &c.RestrictedArticles)
		case 8:
			return true, appendSub(f, "appointments", decodeAppointment, &c.Appointments)
		case 9:
			return true, sub(f, "pscs", decodePSCs, &c.PSCs)
		case 10:
			return true, appendSub(f, "statement_of_capital", decodeCapital, &c.StatementOfCapital)
		case 11:
			return true, appendSub(f, "subscribers", decodeSubscriber, &c.Subscribers)
		case 12:
			return true, appendSub(f, "guarantors", decodeGuarantor, &c.Guarantors)
		case 13:
			return true, sub(f, "authorizer", decodeAuthorizer, &c.Authorizer)
		case 14:
			return true, f.boolean("same_day", &c.SameDay)
		case 15:
			return true, enum(f, "name_exception", &c.NameException)
		case 16:
			return true, subPtr(f, "name_authorization", decodeAttachment, &c.NameAuthorization)
		case 17:
			return true, subPtr(f, "same_name", decodeAttachment, &c.SameName)
		case 18:
			return true, subPtr(f, "memorandum", decodeAttachment, &c.Memorandum)
		case 19:
			return true, subPtr(f, "articles_document", decodeAttachment, &c.ArticlesDocument)
		case 20:
			return true, f.appendStr("sic_codes", &c.SICCodes)
		case 21:
			return true, appendEnums(f, "registers_held_on_public_record", &c.RegistersHeldOnPublicRecord)
		}
		return envelope(f, &c.Form)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func encodeOfficerAppointment(w *encoder, o *models.OfficerAppointment) error {
	if err := w.time(3, o.AppointmentDate); err != nil {
		return err
	}
	if err := embed(w, 4, &o.Appointment, encodeAppointment); err != nil {
		return err
	}
	w.raw(o.Unrecognized)
	return nil
}

func decodeOfficerAppointment(b []byte) (*models.OfficerAppointment, error) {
	o := &models.OfficerAppointment{}
	var err error
	o.Unrecognized, err = walk(b, "", func(f *field) (bool, error) {
		switch f.num {
		case 3:
			return true, f.time("appointment_date", &o.AppointmentDate)
		case 4:
			return true, sub(f, "appointment", decodeAppointment, &o.Appointment)
		}
		return envelope(f, &o.Form)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func encodePSCNotification(w *encoder, p *models.PSCNotification) error {
	if err := embed(w, 3, &p.PSC, encodePSC); err != nil {
		return err
	}
	if err := w.time(4, p.NotificationDate); err != nil {
		return err
	}
	if err := w.time(5, p.RegisterEntryDate); err != nil {
		return err
	}
	w.raw(p.Unrecognized)
	return nil
}

func decodePSCNotification(b []byte) (*models.PSCNotification, error) {
	p := &models.PSCNotification{}
	var err error
	p.Unrecognized, err = walk(b, "", func(f *field) (bool, error) {
		switch f.num {
		case 3:
			return true, sub(f, "psc", decodePSC, &p.PSC)
		case 4:
			return true, f.time("notification_date", &p.NotificationDate)
		case 5:
			return true, f.time("register_entry_date", &p.RegisterEntryDate)
		}
		return envelope(f, &p.Form)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
