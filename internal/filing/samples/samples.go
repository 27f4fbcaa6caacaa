// Package samples builds complete, valid filings for demonstrations and
// tests. The builders take the values that vary between filings and fill
// in the rest with fixed test data.
package samples

import (
	"time"

	"github.com/gartstein/efiling/internal/filing/models"
)

// DateOfBirth is the birth date used for every sample person.
var DateOfBirth = time.Date(1986, time.November, 10, 0, 0, 0, 0, time.UTC)

// pdf is the smallest byte sequence the samples pass off as a PDF.
var pdf = []byte("%PDF-1.4\n1 0 obj <<>> endobj\ntrailer <<>>\n%%EOF\n")

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// PersonalAttributes returns the three authentication attributes every
// sample person uses.
func PersonalAttributes() models.PersonalAttributes {
	return must(models.NewPersonalAttributes(
		models.PersonalAttribute{Kind: models.AttributeKindPassportNumber, Value: "123"},
		models.PersonalAttribute{Kind: models.AttributeKindNationalInsurance, Value: "PH6"},
		models.PersonalAttribute{Kind: models.AttributeKindTelephone, Value: "075"},
	))
}

func HomeAddress() models.BaseAddress {
	return must(models.NewBaseAddress("17", "Test Drive", "London", "EC1 1AD", "GB"))
}

func RegisteredOffice() models.UKAddress {
	a := must(models.NewUKAddress("11", "Test Street", "Cardiff", "CF1 1AA", models.UKNationWales))
	a.POBox = "12345"
	return a
}

func serviceAddress() models.ServiceAddress {
	return must(models.NewServiceAddress(must(models.NewCompanyAddress(HomeAddress(), ""))))
}

func residentialAddress() models.ResidentialAddress {
	return must(models.NewResidentialAddress(HomeAddress(), false))
}

// PDF wraps the sample PDF bytes under filename.
func PDF(filename string) *models.Attachment {
	return must(models.NewAttachment(append([]byte(nil), pdf...), filename, models.ContentTypePDF))
}

func Name(forename, surname string) models.PersonName {
	return must(models.NewPersonName(surname, forename))
}

// Member appoints an individual LLP member who has consented to act.
func Member(forename, surname string, dob time.Time, designated bool) models.Appointment {
	person := must(models.NewMemberPerson(Name(forename, surname), dob, "England", serviceAddress(), residentialAddress()))
	return must(models.NewMemberAppointment(person, designated, true))
}

// Director appoints an individual director who has consented to act.
func Director(forename, surname string, dob time.Time) models.Appointment {
	person := must(models.NewPerson(Name(forename, surname), dob, "British", "Director", "England", serviceAddress(), residentialAddress()))
	return must(models.NewDirectorAppointment(person, true))
}

func Secretary(forename, surname string) models.Appointment {
	person := must(models.NewSecretaryPerson(Name(forename, surname), serviceAddress()))
	return must(models.NewSecretaryAppointment(person, true))
}

// Individual notifies an individual PSC with the given nature of control.
func Individual(forename, surname string, dob time.Time, control models.NatureOfControl) models.PSC {
	return must(models.NewPSC(&models.PSCIndividual{
		Name:               Name(forename, surname),
		ServiceAddress:     serviceAddress(),
		DateOfBirth:        dob,
		Nationality:        "British",
		CountryOfResidence: "England",
		ResidentialAddress: residentialAddress(),
		ConsentStatement:   true,
	}, control))
}

func LLPControl() models.NatureOfControl {
	return models.NatureOfControl{LLP: []models.LLPControl{
		models.LLPControlRightToSurplusAssets75To100,
		models.LLPControlVotingRights75To100,
		models.LLPControlRightToAppointAndRemoveMembers,
	}}
}

func CompanyControl() models.NatureOfControl {
	return models.NatureOfControl{Company: []models.CompanyControl{
		models.CompanyControlOwnershipOfShares75To100,
		models.CompanyControlVotingRights75To100,
		models.CompanyControlRightToAppointAndRemoveDirectors,
	}}
}

func signatory(forename, surname string) models.Signatory {
	return models.Signatory{Name: Name(forename, surname), Authentication: PersonalAttributes()}
}

// ExistingCompany is the header of a filing for an English company.
func ExistingCompany(signed time.Time) models.FormSubmission {
	return models.NewFormSubmission("12345678", "Test Company Limited", models.CompanyTypeEnglandAndWales, signed, models.LanguageEnglish, "ABCDEFG")
}

// ExistingLLP is the header of a filing for an English LLP.
func ExistingLLP(signed time.Time) models.FormSubmission {
	return models.NewFormSubmission("OC123456", "Test Partners LLP", models.CompanyTypeLLPEnglandAndWales, signed, models.LanguageEnglish, "ABCDEFG")
}

func newCompany(name string, signed time.Time) models.FormSubmission {
	return models.NewFormSubmission("", name, models.CompanyTypeUnspecified, signed, models.LanguageEnglish, "")
}

// ChargeRegistration registers a charge covering all property, created on
// the day it is signed.
func ChargeRegistration(signed time.Time) *models.ChargeRegistration {
	c := models.NewChargeRegistration(
		ExistingCompany(signed),
		signed,
		models.FloatingChargeCoversAll,
		PDF("deed.pdf"),
		PersonalAttributes(),
		"Barry Bee", "Person 2", "Person 3", "Person 4",
	)
	c.AdditionalPersonsEntitled = true
	c.BareTrustee = true
	c.DeedCertificationStatement = "Test Statement"
	c.DeedCertifiedBy = "Test Person"
	c.DeedSupplemental = PDF("deed.pdf")
	return c
}

// LLPIncorporation forms an LLP whose members are all designated, under a
// name that needs the existing name holder's authorisation.
func LLPIncorporation(signed time.Time) *models.CompanyIncorporation {
	authorizer := must(models.NewAuthorizer(models.AuthorizerKindMember, nil, signatory("Test", "Person")))
	c := models.NewCompanyIncorporation(
		newCompany("Test Company LLP Designated Only Name Authorisation", signed),
		models.IncorporationTypeLLPOnlyDesignated,
		models.CountryOfIncorporationEnglandAndWales,
		RegisteredOffice(),
		models.ArticlesNone,
		authorizer,
		Member("Test", "Person", DateOfBirth, true),
		Member("Test", "Person", DateOfBirth, true),
	)
	c.PSCs = models.PSCs{Notifications: []models.PSC{Individual("Test", "Person", DateOfBirth, LLPControl())}}
	c.NameException = models.NameExceptionSameAsExistingName
	c.NameAuthorization = PDF("name-authorisation.pdf")
	return c
}

// CompanyIncorporation forms a private company limited by shares with one
// subscriber taking a single one pound ordinary share.
func CompanyIncorporation(signed time.Time) *models.CompanyIncorporation {
	subscriber := models.IncorporationPerson{
		Name:           Name("Test", "Person"),
		Address:        HomeAddress(),
		Authentication: PersonalAttributes(),
	}
	share := models.Share{ShareClass: "Ordinary", PrescribedParticulars: "Test", NumShares: 1, AggregateNominalValue: models.Units(1)}
	allotment := models.Allotment{
		ShareClass:            "Ordinary",
		NumShares:             1,
		AmountPaidDuePerShare: models.Units(1),
		ShareCurrency:         "GBP",
		ShareValue:            models.Units(1),
	}
	authorizer := must(models.NewAuthorizer(models.AuthorizerKindSubscribers, nil, signatory("Test", "Person")))

	c := models.NewCompanyIncorporation(
		newCompany("Test Company Limited", signed),
		models.IncorporationTypeLimitedByShares,
		models.CountryOfIncorporationEnglandAndWales,
		RegisteredOffice(),
		models.ArticlesModelByShares,
		authorizer,
		Director("Test", "Person", DateOfBirth),
		Secretary("Other", "Person"),
	)
	c.PSCs = models.PSCs{Notifications: []models.PSC{Individual("Test", "Person", DateOfBirth, CompanyControl())}}
	c.StatementOfCapital = []models.Capital{must(models.NewCapital("GBP", 0, share))}
	c.Subscribers = []models.Subscriber{must(models.NewSubscriber(subscriber, models.MemorandumStatementWithShares, allotment))}
	c.SICCodes = []string{"62012"}
	c.RegistersHeldOnPublicRecord = []models.Register{models.RegisterDirectors, models.RegisterSecretaries}
	return c
}

// OfficerAppointment appoints a director to an existing company on the
// day the filing is signed.
func OfficerAppointment(signed time.Time) *models.OfficerAppointment {
	return models.NewOfficerAppointment(ExistingCompany(signed), signed, Director("New", "Director", DateOfBirth))
}

// PSCNotification notifies an individual PSC of an existing company.
func PSCNotification(signed time.Time) *models.PSCNotification {
	return models.NewPSCNotification(ExistingCompany(signed), signed, Individual("Test", "Person", DateOfBirth, CompanyControl()))
}
