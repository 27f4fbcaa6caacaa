// Package models defines the e-filing document model: attachments, parties
// and addresses, the sections they compose into, and the filing envelopes
// submitted to the registry.
//
// Values are assembled once and treated as immutable. Builders check only
// that mandatory data is present; the validator package runs the full rule
// set over an assembled filing.
package models

import "time"

// Filing is a top-level envelope: *ChargeRegistration,
// *CompanyIncorporation, *OfficerAppointment or *PSCNotification.
type Filing interface {
	FilingType() FilingType
	Header() FormSubmission
	// Check runs the section rules that struct tags cannot express.
	Check() []Problem
	isFiling()
}

// FormSubmission is the header shared by every filing.
type FormSubmission struct {
	CompanyNumber      string      `json:"company_number,omitempty"`
	CompanyName        string      `json:"company_name"`
	CompanyType        CompanyType `json:"company_type,omitempty"`
	DateSigned         time.Time   `json:"date_signed"`
	Language           Language    `json:"language"`
	AuthenticationCode string      `json:"authentication_code,omitempty"`
	CustomerReference  string      `json:"customer_reference,omitempty" validate:"max=25"`
	ContactName        string      `json:"contact_name,omitempty" validate:"max=50"`
	ContactNumber      string      `json:"contact_number,omitempty" validate:"max=20"`
	Unrecognized       []byte      `json:"-"`
}

// NewFormSubmission assembles the header of a filing for an existing
// company. Incorporations leave the number, type and code empty.
func NewFormSubmission(
	companyNumber, companyName string,
	companyType CompanyType,
	dateSigned time.Time,
	language Language,
	authenticationCode string,
) FormSubmission {
	return FormSubmission{
		CompanyNumber:      companyNumber,
		CompanyName:        companyName,
		CompanyType:        companyType,
		DateSigned:         dateSigned,
		Language:           language,
		AuthenticationCode: authenticationCode,
	}
}

// ChargeRegistration registers a charge (MR01) created by the company.
type ChargeRegistration struct {
	Form                       FormSubmission     `json:"form_submission"`
	CreationDate               time.Time          `json:"creation_date" validate:"required"`
	PropertyAcquiredDate       time.Time          `json:"property_acquired_date,omitempty"`
	PersonsEntitled            []string           `json:"persons_entitled,omitempty" validate:"max=4,dive,required,max=256"`
	AdditionalPersonsEntitled  bool               `json:"additional_persons_entitled,omitempty"`
	ChargeDescription          string             `json:"charge_description,omitempty" validate:"max=3500"`
	FixedCharge                bool               `json:"fixed_charge,omitempty"`
	FloatingCharge             FloatingCharge     `json:"floating_charge" validate:"enum"`
	NegativePledge             bool               `json:"negative_pledge,omitempty"`
	BareTrustee                bool               `json:"bare_trustee,omitempty"`
	DeedCertificationStatement string             `json:"deed_certification_statement" validate:"required,max=500"`
	DeedCertifiedBy            string             `json:"deed_certified_by" validate:"required,max=256"`
	PersonalAttributes         PersonalAttributes `json:"personal_attributes" validate:"len=3"`
	Deed                       *Attachment        `json:"deed,omitempty"`
	DeedSupplemental           *Attachment        `json:"deed_supplemental,omitempty"`
	Unrecognized               []byte             `json:"-"`
}

func NewChargeRegistration(
	form FormSubmission,
	creationDate time.Time,
	floating FloatingCharge,
	deed *Attachment,
	attributes PersonalAttributes,
	personsEntitled ...string,
) *ChargeRegistration {
	return &ChargeRegistration{
		Form:               form,
		CreationDate:       creationDate,
		FloatingCharge:     floating,
		Deed:               deed,
		PersonalAttributes: attributes,
		PersonsEntitled:    personsEntitled,
	}
}

func (*ChargeRegistration) FilingType() FilingType { return FilingTypeChargeRegistration }
func (c *ChargeRegistration) Header() FormSubmission { return c.Form }
func (*ChargeRegistration) isFiling() {}

func (c *ChargeRegistration) Check() []Problem {
	var out []Problem
	if len(c.PersonsEntitled) == 0 && !c.AdditionalPersonsEntitled {
		out = append(out, missing("persons_entitled"))
	}
	return append(out, under("personal_attributes", c.PersonalAttributes.Check())...)
}

// CompanyIncorporation registers a new company or LLP (IN01 / LL IN01).
type CompanyIncorporation struct {
	Form                        FormSubmission         `json:"form_submission"`
	CompanyType                 IncorporationType      `json:"company_type" validate:"enum"`
	CountryOfIncorporation      CountryOfIncorporation `json:"country_of_incorporation" validate:"enum"`
	RegisteredOffice            UKAddress              `json:"registered_office"`
	Articles                    Articles               `json:"articles" validate:"enum"`
	RestrictedArticles          bool                   `json:"restricted_articles,omitempty"`
	Appointments                []Appointment          `json:"appointments" validate:"min=1,dive"`
	PSCs                        PSCs                   `json:"pscs"`
	StatementOfCapital          []Capital              `json:"statement_of_capital,omitempty" validate:"omitempty,dive"`
	Subscribers                 []Subscriber           `json:"subscribers,omitempty" validate:"omitempty,dive"`
	Guarantors                  []Guarantor            `json:"guarantors,omitempty" validate:"omitempty,dive"`
	Authorizer                  Authorizer             `json:"authorizer"`
	SameDay                     bool                   `json:"same_day,omitempty"`
	NameException               NameException          `json:"name_exception,omitempty" validate:"enum"`
	NameAuthorization           *Attachment            `json:"name_authorization,omitempty"`
	SameName                    *Attachment            `json:"same_name,omitempty"`
	Memorandum                  *Attachment            `json:"memorandum,omitempty"`
	ArticlesDocument            *Attachment            `json:"articles_document,omitempty"`
	SICCodes                    []string               `json:"sic_codes,omitempty" validate:"max=4,dive,len=5,numeric"`
	RegistersHeldOnPublicRecord []Register             `json:"registers_held_on_public_record,omitempty" validate:"omitempty,dive,enum"`
	Unrecognized                []byte                 `json:"-"`
}

func NewCompanyIncorporation(
	form FormSubmission,
	companyType IncorporationType,
	country CountryOfIncorporation,
	registeredOffice UKAddress,
	articles Articles,
	authorizer Authorizer,
	appointments ...Appointment,
) *CompanyIncorporation {
	return &CompanyIncorporation{
		Form:                   form,
		CompanyType:            companyType,
		CountryOfIncorporation: country,
		RegisteredOffice:       registeredOffice,
		Articles:               articles,
		Authorizer:             authorizer,
		Appointments:           appointments,
	}
}

func (*CompanyIncorporation) FilingType() FilingType { return FilingTypeCompanyIncorporation }
func (c *CompanyIncorporation) Header() FormSubmission { return c.Form }
func (*CompanyIncorporation) isFiling() {}

func (c *CompanyIncorporation) Check() []Problem {
	var out []Problem
	for i := range c.Appointments {
		out = append(out, under(index("appointments", i), c.Appointments[i].Check())...)
	}
	out = append(out, under("pscs", c.PSCs.Check())...)
	for i := range c.Subscribers {
		out = append(out, under(index("subscribers", i)+".person", c.Subscribers[i].Person.Check())...)
	}
	for i := range c.Guarantors {
		out = append(out, under(index("guarantors", i)+".person", c.Guarantors[i].Person.Check())...)
	}
	return append(out, under("authorizer", c.Authorizer.Check())...)
}

// OfficerAppointment appoints an officer to an existing company (AP01,
// AP02, AP03, AP04, LL AP01, LL AP02).
type OfficerAppointment struct {
	Form            FormSubmission `json:"form_submission"`
	AppointmentDate time.Time      `json:"appointment_date" validate:"required"`
	Appointment     Appointment    `json:"appointment"`
	Unrecognized    []byte         `json:"-"`
}

func NewOfficerAppointment(form FormSubmission, appointmentDate time.Time, appointment Appointment) *OfficerAppointment {
	return &OfficerAppointment{Form: form, AppointmentDate: appointmentDate, Appointment: appointment}
}

func (*OfficerAppointment) FilingType() FilingType { return FilingTypeOfficerAppointment }
func (o *OfficerAppointment) Header() FormSubmission { return o.Form }
func (*OfficerAppointment) isFiling() {}

func (o *OfficerAppointment) Check() []Problem {
	return under("appointment", o.Appointment.Check())
}

// PSCNotification notifies the registry of a new person with significant
// control of an existing company.
type PSCNotification struct {
	Form              FormSubmission `json:"form_submission"`
	PSC               PSC            `json:"psc"`
	NotificationDate  time.Time      `json:"notification_date" validate:"required"`
	RegisterEntryDate time.Time      `json:"register_entry_date,omitempty"`
	Unrecognized      []byte         `json:"-"`
}

func NewPSCNotification(form FormSubmission, notificationDate time.Time, psc PSC) *PSCNotification {
	return &PSCNotification{Form: form, PSC: psc, NotificationDate: notificationDate}
}

func (*PSCNotification) FilingType() FilingType { return FilingTypePSCNotification }
func (p *PSCNotification) Header() FormSubmission { return p.Form }
func (*PSCNotification) isFiling() {}

func (p *PSCNotification) Check() []Problem {
	return under("psc", p.PSC.Check())
}
