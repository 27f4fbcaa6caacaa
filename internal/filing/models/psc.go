package models

import (
	"reflect"
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
)

// CompanyControl is a nature-of-control band for a PSC of a company.
type CompanyControl int32

const (
	CompanyControlUnspecified                             CompanyControl = 0
	CompanyControlOwnershipOfShares25To50                 CompanyControl = 1
	CompanyControlOwnershipOfShares50To75                 CompanyControl = 2
	CompanyControlOwnershipOfShares75To100                CompanyControl = 3
	CompanyControlOwnershipOfShares25To50AsTrust          CompanyControl = 4
	CompanyControlOwnershipOfShares50To75AsTrust          CompanyControl = 5
	CompanyControlOwnershipOfShares75To100AsTrust         CompanyControl = 6
	CompanyControlOwnershipOfShares25To50AsFirm           CompanyControl = 7
	CompanyControlOwnershipOfShares50To75AsFirm           CompanyControl = 8
	CompanyControlOwnershipOfShares75To100AsFirm          CompanyControl = 9
	CompanyControlVotingRights25To50                      CompanyControl = 10
	CompanyControlVotingRights50To75                      CompanyControl = 11
	CompanyControlVotingRights75To100                     CompanyControl = 12
	CompanyControlVotingRights25To50AsTrust               CompanyControl = 13
	CompanyControlVotingRights50To75AsTrust               CompanyControl = 14
	CompanyControlVotingRights75To100AsTrust              CompanyControl = 15
	CompanyControlVotingRights25To50AsFirm                CompanyControl = 16
	CompanyControlVotingRights50To75AsFirm                CompanyControl = 17
	CompanyControlVotingRights75To100AsFirm               CompanyControl = 18
	CompanyControlRightToAppointAndRemoveDirectors        CompanyControl = 19
	CompanyControlRightToAppointAndRemoveDirectorsAsTrust CompanyControl = 20
	CompanyControlRightToAppointAndRemoveDirectorsAsFirm  CompanyControl = 21
	CompanyControlSignificantInfluenceOrControl           CompanyControl = 22
	CompanyControlSignificantInfluenceOrControlAsTrust    CompanyControl = 23
	CompanyControlSignificantInfluenceOrControlAsFirm     CompanyControl = 24
	companyControlMax                                     CompanyControl = CompanyControlSignificantInfluenceOrControlAsFirm
)

func (c CompanyControl) IsValid() bool { return c > CompanyControlUnspecified && c <= companyControlMax }

// LLPControl is a nature-of-control band for a PSC of an LLP.
type LLPControl int32

const (
	LLPControlUnspecified                           LLPControl = 0
	LLPControlRightToSurplusAssets25To50            LLPControl = 1
	LLPControlRightToSurplusAssets50To75            LLPControl = 2
	LLPControlRightToSurplusAssets75To100           LLPControl = 3
	LLPControlRightToSurplusAssets25To50AsTrust     LLPControl = 4
	LLPControlRightToSurplusAssets50To75AsTrust     LLPControl = 5
	LLPControlRightToSurplusAssets75To100AsTrust    LLPControl = 6
	LLPControlRightToSurplusAssets25To50AsFirm      LLPControl = 7
	LLPControlRightToSurplusAssets50To75AsFirm      LLPControl = 8
	LLPControlRightToSurplusAssets75To100AsFirm     LLPControl = 9
	LLPControlVotingRights25To50                    LLPControl = 10
	LLPControlVotingRights50To75                    LLPControl = 11
	LLPControlVotingRights75To100                   LLPControl = 12
	LLPControlVotingRights25To50AsTrust             LLPControl = 13
	LLPControlVotingRights50To75AsTrust             LLPControl = 14
	LLPControlVotingRights75To100AsTrust            LLPControl = 15
	LLPControlVotingRights25To50AsFirm              LLPControl = 16
	LLPControlVotingRights50To75AsFirm              LLPControl = 17
	LLPControlVotingRights75To100AsFirm             LLPControl = 18
	LLPControlRightToAppointAndRemoveMembers        LLPControl = 19
	LLPControlRightToAppointAndRemoveMembersAsTrust LLPControl = 20
	LLPControlRightToAppointAndRemoveMembersAsFirm  LLPControl = 21
	LLPControlSignificantInfluenceOrControl         LLPControl = 22
	LLPControlSignificantInfluenceOrControlAsTrust  LLPControl = 23
	LLPControlSignificantInfluenceOrControlAsFirm   LLPControl = 24
	llpControlMax                                   LLPControl = LLPControlSignificantInfluenceOrControlAsFirm
)

func (c LLPControl) IsValid() bool { return c > LLPControlUnspecified && c <= llpControlMax }

// NatureOfControl holds the bands of exactly one family: company or LLP.
type NatureOfControl struct {
	Company      []CompanyControl `json:"company,omitempty" validate:"omitempty,dive,enum"`
	LLP          []LLPControl     `json:"llp,omitempty" validate:"omitempty,dive,enum"`
	Unrecognized []byte           `json:"-"`
}

// IsLLP reports whether the LLP family is used.
func (n NatureOfControl) IsLLP() bool { return len(n.LLP) > 0 }

func (n NatureOfControl) Check() []Problem {
	switch {
	case len(n.Company) > 0 && len(n.LLP) > 0:
		return []Problem{{Path: "llp", Code: CodeMixedControl, Message: "company and LLP bands cannot be combined"}}
	case len(n.Company) == 0 && len(n.LLP) == 0:
		return []Problem{missing("company")}
	}
	return nil
}

// PSCEntity is the subject of a PSC notification: a *PSCIndividual, a
// *PSCCorporate or a *PSCLegalPerson.
type PSCEntity interface {
	BirthDate() (time.Time, bool)
	Check() []Problem
	isPSCEntity()
}

// PSCIndividual is a natural person with significant control.
type PSCIndividual struct {
	Name               PersonName         `json:"name"`
	ServiceAddress     ServiceAddress     `json:"service_address"`
	DateOfBirth        time.Time          `json:"date_of_birth" validate:"required"`
	Nationality        string             `json:"nationality" validate:"required,max=50"`
	CountryOfResidence string             `json:"country_of_residence" validate:"required,max=50"`
	ResidentialAddress ResidentialAddress `json:"residential_address"`
	ConsentStatement   bool               `json:"consent_statement" validate:"required"`
	Unrecognized       []byte             `json:"-"`
}

func (*PSCIndividual) isPSCEntity() {}

func (p *PSCIndividual) BirthDate() (time.Time, bool) { return p.DateOfBirth, true }

func (p *PSCIndividual) Check() []Problem {
	return append(
		under("service_address", p.ServiceAddress.Check()),
		under("residential_address", p.ResidentialAddress.Check())...,
	)
}

// PSCCorporate is a relevant legal entity with significant control.
type PSCCorporate struct {
	CorporateName      string         `json:"corporate_name" validate:"required,max=160"`
	Address            CompanyAddress `json:"address"`
	LegalForm          string         `json:"legal_form" validate:"required,max=50"`
	LawGoverned        string         `json:"law_governed" validate:"required,max=50"`
	RegisterLocation   string         `json:"register_location,omitempty" validate:"max=50"`
	RegistrationNumber string         `json:"registration_number,omitempty" validate:"max=50"`
	Unrecognized       []byte         `json:"-"`
}

func (*PSCCorporate) isPSCEntity() {}

func (*PSCCorporate) BirthDate() (time.Time, bool) { return time.Time{}, false }

func (*PSCCorporate) Check() []Problem { return nil }

// PSCLegalPerson is a body with legal personality that is not a company.
type PSCLegalPerson struct {
	Name         string         `json:"name" validate:"required,max=160"`
	Address      CompanyAddress `json:"address"`
	LegalForm    string         `json:"legal_form" validate:"required,max=50"`
	LawGoverned  string         `json:"law_governed" validate:"required,max=50"`
	Unrecognized []byte         `json:"-"`
}

func (*PSCLegalPerson) isPSCEntity() {}

func (*PSCLegalPerson) BirthDate() (time.Time, bool) { return time.Time{}, false }

func (*PSCLegalPerson) Check() []Problem { return nil }

// PSC is a notification of a person with significant control.
type PSC struct {
	Entity          PSCEntity       `json:"entity" validate:"required"`
	NatureOfControl NatureOfControl `json:"nature_of_control"`
	Unrecognized    []byte          `json:"-"`
}

// HasEntity reports whether the notification names an entity value.
func (p *PSC) HasEntity() bool {
	return p.Entity != nil && !reflect.ValueOf(p.Entity).IsNil()
}

func (p *PSC) Check() []Problem {
	var out []Problem
	if p.HasEntity() {
		out = append(out, under("entity", p.Entity.Check())...)
	}
	return append(out, under("nature_of_control", p.NatureOfControl.Check())...)
}

// NewPSC builds a notification. Construction fails when the entity is
// absent or no nature of control is given.
func NewPSC(entity PSCEntity, control NatureOfControl) (PSC, error) {
	if entity == nil {
		return PSC{}, e.InvalidSection("psc", "entity is required")
	}
	p := PSC{Entity: entity, NatureOfControl: control}
	if err := sectionError("psc", &p, p.Check()); err != nil {
		return PSC{}, err
	}
	return p, nil
}

// PSCs is the incorporation's PSC section: either notifications or a
// statement that there is no registrable person.
type PSCs struct {
	NoPSCStatement bool   `json:"no_psc_statement,omitempty"`
	Notifications  []PSC  `json:"notifications,omitempty" validate:"omitempty,dive"`
	Unrecognized   []byte `json:"-"`
}

func (p *PSCs) Check() []Problem {
	switch {
	case p.NoPSCStatement && len(p.Notifications) > 0:
		return []Problem{conflict("no_psc_statement", "notifications")}
	case !p.NoPSCStatement && len(p.Notifications) == 0:
		return []Problem{missing("notifications")}
	}
	var out []Problem
	for i := range p.Notifications {
		out = append(out, under(index("notifications", i), p.Notifications[i].Check())...)
	}
	return out
}
