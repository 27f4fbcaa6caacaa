package models

import "fmt"

// Enumeration values are part of the wire contract. Zero is always the
// unspecified value unless stated otherwise; never renumber.

// FilingType discriminates the top-level filing kinds.
type FilingType int32

const (
	FilingTypeUnspecified          FilingType = 0
	FilingTypeChargeRegistration   FilingType = 1
	FilingTypeCompanyIncorporation FilingType = 2
	FilingTypeOfficerAppointment   FilingType = 3
	FilingTypePSCNotification      FilingType = 4
)

var filingTypeNames = map[FilingType]string{
	FilingTypeChargeRegistration:   "charge_registration",
	FilingTypeCompanyIncorporation: "company_incorporation",
	FilingTypeOfficerAppointment:   "officer_appointment",
	FilingTypePSCNotification:      "psc_notification",
}

func (t FilingType) String() string { return enumName(filingTypeNames, t) }

func (t FilingType) IsValid() bool { return filingTypeNames[t] != "" }

// CompanyType identifies the registry jurisdiction of an existing company
// and so the shape of its company number.
type CompanyType int32

const (
	CompanyTypeUnspecified        CompanyType = 0
	CompanyTypeEnglandAndWales    CompanyType = 1
	CompanyTypeWales              CompanyType = 2
	CompanyTypeScotland           CompanyType = 3
	CompanyTypeNorthernIreland    CompanyType = 4
	CompanyTypeRoyalCharter       CompanyType = 5
	CompanyTypeLLPEnglandAndWales CompanyType = 6
	CompanyTypeLLPScotland        CompanyType = 7
	CompanyTypeLLPNorthernIreland CompanyType = 8
)

var companyTypeNames = map[CompanyType]string{
	CompanyTypeEnglandAndWales:    "england_and_wales",
	CompanyTypeWales:              "wales",
	CompanyTypeScotland:           "scotland",
	CompanyTypeNorthernIreland:    "northern_ireland",
	CompanyTypeRoyalCharter:       "royal_charter",
	CompanyTypeLLPEnglandAndWales: "llp_england_and_wales",
	CompanyTypeLLPScotland:        "llp_scotland",
	CompanyTypeLLPNorthernIreland: "llp_northern_ireland",
}

var companyNumberPrefixes = map[CompanyType]string{
	CompanyTypeScotland:           "SC",
	CompanyTypeNorthernIreland:    "NI",
	CompanyTypeRoyalCharter:       "RC",
	CompanyTypeLLPEnglandAndWales: "OC",
	CompanyTypeLLPScotland:        "SO",
	CompanyTypeLLPNorthernIreland: "NC",
}

func (t CompanyType) String() string { return enumName(companyTypeNames, t) }

func (t CompanyType) IsValid() bool { return companyTypeNames[t] != "" }

// IsLLP reports whether the company is a limited liability partnership.
func (t CompanyType) IsLLP() bool {
	switch t {
	case CompanyTypeLLPEnglandAndWales, CompanyTypeLLPScotland, CompanyTypeLLPNorthernIreland:
		return true
	}
	return false
}

// NumberPrefix returns the letters that open a company number of this
// type. England & Wales numbers have none and are eight digits.
func (t CompanyType) NumberPrefix() string {
	return companyNumberPrefixes[t]
}

type Language int32

const (
	LanguageUnspecified Language = 0
	LanguageEnglish     Language = 1
	LanguageWelsh       Language = 2
)

var languageNames = map[Language]string{
	LanguageEnglish: "EN",
	LanguageWelsh:   "CY",
}

func (l Language) String() string { return enumName(languageNames, l) }

func (l Language) IsValid() bool { return languageNames[l] != "" }

// UKNation is the country part of a UK address.
type UKNation int32

const (
	UKNationUnspecified     UKNation = 0
	UKNationEngland         UKNation = 1
	UKNationWales           UKNation = 2
	UKNationScotland        UKNation = 3
	UKNationNorthernIreland UKNation = 4
	UKNationGreatBritain    UKNation = 5
	UKNationUndefined       UKNation = 6
)

var ukNationTags = map[UKNation]string{
	UKNationEngland:         "GB-ENG",
	UKNationWales:           "GB-WLS",
	UKNationScotland:        "GB-SCT",
	UKNationNorthernIreland: "GB-NIR",
	UKNationGreatBritain:    "GBR",
	UKNationUndefined:       "UNDEF",
}

func (n UKNation) String() string { return enumName(ukNationTags, n) }

func (n UKNation) IsValid() bool { return ukNationTags[n] != "" }

// ContentType is the declared type of an attachment. Other marks an opaque
// payload whose MIME-like tag travels in Attachment.MediaType.
type ContentType int32

const (
	ContentTypeUnspecified ContentType = 0
	ContentTypePDF         ContentType = 1
	ContentTypePCL         ContentType = 2
	ContentTypeXML         ContentType = 3
	ContentTypeOther       ContentType = 4
)

var contentTypeNames = map[ContentType]string{
	ContentTypePDF:   "application/pdf",
	ContentTypePCL:   "application/vnd.hp-pcl",
	ContentTypeXML:   "application/xml",
	ContentTypeOther: "application/octet-stream",
}

var contentTypeExtensions = map[ContentType][]string{
	ContentTypePDF: {".pdf"},
	ContentTypePCL: {".pcl", ".prn"},
	ContentTypeXML: {".xml"},
}

func (c ContentType) String() string { return enumName(contentTypeNames, c) }

func (c ContentType) IsValid() bool { return contentTypeNames[c] != "" }

// FloatingCharge records how far a floating charge extends.
type FloatingCharge int32

const (
	FloatingChargeUnspecified     FloatingCharge = 0
	FloatingChargeNotApplicable   FloatingCharge = 1
	FloatingChargeCoversAll       FloatingCharge = 2
	FloatingChargeDoesNotCoverAll FloatingCharge = 3
)

var floatingChargeNames = map[FloatingCharge]string{
	FloatingChargeNotApplicable:   "not_applicable",
	FloatingChargeCoversAll:       "covers_all",
	FloatingChargeDoesNotCoverAll: "does_not_cover_all",
}

func (f FloatingCharge) String() string { return enumName(floatingChargeNames, f) }

func (f FloatingCharge) IsValid() bool { return floatingChargeNames[f] != "" }

// IncorporationType is the legal form of a company being incorporated.
type IncorporationType int32

const (
	IncorporationTypeUnspecified              IncorporationType = 0
	IncorporationTypeLimitedByShares          IncorporationType = 1
	IncorporationTypeLimitedByGuarantee       IncorporationType = 2
	IncorporationTypeLimitedByGuaranteeExempt IncorporationType = 3
	IncorporationTypePLC                      IncorporationType = 4
	IncorporationTypeLLP                      IncorporationType = 5
	IncorporationTypeLLPOnlyDesignated        IncorporationType = 6
)

var incorporationTypeNames = map[IncorporationType]string{
	IncorporationTypeLimitedByShares:          "BYSHR",
	IncorporationTypeLimitedByGuarantee:       "BYGUAR",
	IncorporationTypeLimitedByGuaranteeExempt: "BYGUAREXEMPT",
	IncorporationTypePLC:                      "PLC",
	IncorporationTypeLLP:                      "LLP",
	IncorporationTypeLLPOnlyDesignated:        "LLPDES",
}

func (t IncorporationType) String() string { return enumName(incorporationTypeNames, t) }

func (t IncorporationType) IsValid() bool { return incorporationTypeNames[t] != "" }

func (t IncorporationType) IsLLP() bool {
	return t == IncorporationTypeLLP || t == IncorporationTypeLLPOnlyDesignated
}

type CountryOfIncorporation int32

const (
	CountryOfIncorporationUnspecified     CountryOfIncorporation = 0
	CountryOfIncorporationEnglandAndWales CountryOfIncorporation = 1
	CountryOfIncorporationWales           CountryOfIncorporation = 2
	CountryOfIncorporationScotland        CountryOfIncorporation = 3
	CountryOfIncorporationNorthernIreland CountryOfIncorporation = 4
)

var countryOfIncorporationNames = map[CountryOfIncorporation]string{
	CountryOfIncorporationEnglandAndWales: "EW",
	CountryOfIncorporationWales:           "WA",
	CountryOfIncorporationScotland:        "SC",
	CountryOfIncorporationNorthernIreland: "NI",
}

func (c CountryOfIncorporation) String() string { return enumName(countryOfIncorporationNames, c) }

func (c CountryOfIncorporation) IsValid() bool { return countryOfIncorporationNames[c] != "" }

// Articles is the articles-of-association choice. ArticlesNone means the
// statutory model articles apply with no document filed.
type Articles int32

const (
	ArticlesUnspecified        Articles = 0
	ArticlesNone               Articles = 1
	ArticlesModelByShares      Articles = 2
	ArticlesModelByGuarantee   Articles = 3
	ArticlesModelPLC           Articles = 4
	ArticlesAmendedByShares    Articles = 5
	ArticlesAmendedByGuarantee Articles = 6
	ArticlesAmendedPLC         Articles = 7
	ArticlesBespoke            Articles = 8
)

var articlesNames = map[Articles]string{
	ArticlesNone:               "none",
	ArticlesModelByShares:      "model_by_shares",
	ArticlesModelByGuarantee:   "model_by_guarantee",
	ArticlesModelPLC:           "model_plc",
	ArticlesAmendedByShares:    "amended_by_shares",
	ArticlesAmendedByGuarantee: "amended_by_guarantee",
	ArticlesAmendedPLC:         "amended_plc",
	ArticlesBespoke:            "bespoke",
}

func (a Articles) String() string { return enumName(articlesNames, a) }

func (a Articles) IsValid() bool { return articlesNames[a] != "" }

// RequiresDocument reports whether the choice must be backed by an
// articles document attached to the filing.
func (a Articles) RequiresDocument() bool {
	switch a {
	case ArticlesAmendedByShares, ArticlesAmendedByGuarantee, ArticlesAmendedPLC, ArticlesBespoke:
		return true
	}
	return false
}

// NameException selects which supporting document, if any, justifies the
// proposed company name. Zero means no exception is claimed.
type NameException int32

const (
	NameExceptionNone               NameException = 0
	NameExceptionSameAsExistingName NameException = 1
	NameExceptionSameGroupName      NameException = 2
)

var nameExceptionNames = map[NameException]string{
	NameExceptionNone:               "none",
	NameExceptionSameAsExistingName: "same_as_existing_name",
	NameExceptionSameGroupName:      "same_group_name",
}

func (n NameException) String() string { return enumName(nameExceptionNames, n) }

func (n NameException) IsValid() bool { return nameExceptionNames[n] != "" }

// AttributeKind names a personal identifying attribute used to
// authenticate a person.
type AttributeKind int32

const (
	AttributeKindUnspecified       AttributeKind = 0
	AttributeKindBirthTown         AttributeKind = 1
	AttributeKindTelephone         AttributeKind = 2
	AttributeKindNationalInsurance AttributeKind = 3
	AttributeKindPassportNumber    AttributeKind = 4
	AttributeKindMothersMaiden     AttributeKind = 5
	AttributeKindFathersForename   AttributeKind = 6
)

var attributeKindNames = map[AttributeKind]string{
	AttributeKindBirthTown:         "BIRTOWN",
	AttributeKindTelephone:         "TEL",
	AttributeKindNationalInsurance: "NATINS",
	AttributeKindPassportNumber:    "PASSNO",
	AttributeKindMothersMaiden:     "MUM",
	AttributeKindFathersForename:   "DAD",
}

func (k AttributeKind) String() string { return enumName(attributeKindNames, k) }

func (k AttributeKind) IsValid() bool { return attributeKindNames[k] != "" }

// Role is the office an appointment fills.
type Role int32

const (
	RoleUnspecified Role = 0
	RoleDirector    Role = 1
	RoleSecretary   Role = 2
	RoleMember      Role = 3
)

var roleNames = map[Role]string{
	RoleDirector:  "director",
	RoleSecretary: "secretary",
	RoleMember:    "member",
}

func (r Role) String() string { return enumName(roleNames, r) }

type MemorandumStatement int32

const (
	MemorandumStatementUnspecified   MemorandumStatement = 0
	MemorandumStatementWithShares    MemorandumStatement = 1
	MemorandumStatementWithoutShares MemorandumStatement = 2
)

var memorandumStatementNames = map[MemorandumStatement]string{
	MemorandumStatementWithShares:    "member_with_shares",
	MemorandumStatementWithoutShares: "member_without_shares",
}

func (m MemorandumStatement) String() string { return enumName(memorandumStatementNames, m) }

func (m MemorandumStatement) IsValid() bool { return memorandumStatementNames[m] != "" }

// AuthorizerKind is the capacity in which an incorporation is signed.
type AuthorizerKind int32

const (
	AuthorizerKindUnspecified AuthorizerKind = 0
	AuthorizerKindAgent       AuthorizerKind = 1
	AuthorizerKindSolicitor   AuthorizerKind = 2
	AuthorizerKindMember      AuthorizerKind = 3
	AuthorizerKindSubscribers AuthorizerKind = 4
)

var authorizerKindNames = map[AuthorizerKind]string{
	AuthorizerKindAgent:       "agent",
	AuthorizerKindSolicitor:   "solicitor",
	AuthorizerKindMember:      "member",
	AuthorizerKindSubscribers: "subscribers",
}

func (a AuthorizerKind) String() string { return enumName(authorizerKindNames, a) }

func (a AuthorizerKind) IsValid() bool { return authorizerKindNames[a] != "" }

// Register is a statutory register the company elects to keep on the
// public record instead of at its own premises.
type Register int32

const (
	RegisterUnspecified                   Register = 0
	RegisterDirectors                     Register = 1
	RegisterDirectorsResidentialAddresses Register = 2
	RegisterSecretaries                   Register = 3
	RegisterMembers                       Register = 4
	RegisterPersonsOfSignificantControl   Register = 5
	RegisterLLPMembers                    Register = 6
	RegisterLLPMembersResidentialAddress  Register = 7
)

var registerNames = map[Register]string{
	RegisterDirectors:                     "directors",
	RegisterDirectorsResidentialAddresses: "directors_residential_addresses",
	RegisterSecretaries:                   "secretaries",
	RegisterMembers:                       "members",
	RegisterPersonsOfSignificantControl:   "persons_of_significant_control",
	RegisterLLPMembers:                    "llp_members",
	RegisterLLPMembersResidentialAddress:  "llp_members_residential_address",
}

func (r Register) String() string { return enumName(registerNames, r) }

func (r Register) IsValid() bool { return registerNames[r] != "" }

// SubmissionStatus is the processing state of a filing held by the gateway.
type SubmissionStatus int32

const (
	SubmissionStatusUnspecified     SubmissionStatus = 0
	SubmissionStatusPending         SubmissionStatus = 1
	SubmissionStatusAccepted        SubmissionStatus = 2
	SubmissionStatusRejected        SubmissionStatus = 3
	SubmissionStatusParked          SubmissionStatus = 4
	SubmissionStatusInternalFailure SubmissionStatus = 5
)

var submissionStatusNames = map[SubmissionStatus]string{
	SubmissionStatusPending:         "pending",
	SubmissionStatusAccepted:        "accepted",
	SubmissionStatusRejected:        "rejected",
	SubmissionStatusParked:          "parked",
	SubmissionStatusInternalFailure: "internal_failure",
}

func (s SubmissionStatus) String() string { return enumName(submissionStatusNames, s) }

func (s SubmissionStatus) IsValid() bool { return submissionStatusNames[s] != "" }

// IsFinal reports whether no further decision can change the status.
func (s SubmissionStatus) IsFinal() bool {
	return s == SubmissionStatusAccepted || s == SubmissionStatusRejected
}

// ParseSubmissionStatus maps the lower-case name back to its value.
func ParseSubmissionStatus(name string) (SubmissionStatus, bool) {
	for s, n := range submissionStatusNames {
		if n == name {
			return s, true
		}
	}
	return SubmissionStatusUnspecified, false
}

func enumName[K ~int32](names map[K]string, v K) string {
	if n, ok := names[v]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", int32(v))
}
