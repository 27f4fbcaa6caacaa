package models

import (
	"reflect"
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
)

// Officer is the office holder named by an appointment: a *Director, a
// *Secretary or a *Member.
type Officer interface {
	Role() Role
	// BirthDate returns the date of birth of an individual office holder,
	// or false when none is recorded.
	BirthDate() (time.Time, bool)
	Check() []Problem
	isOfficer()
}

// Director is a company director, either an individual or a body corporate.
type Director struct {
	Person       *Person           `json:"person,omitempty"`
	Corporate    *CorporateOfficer `json:"corporate,omitempty"`
	Unrecognized []byte            `json:"-"`
}

func (*Director) Role() Role { return RoleDirector }
func (*Director) isOfficer() {}

func (d *Director) BirthDate() (time.Time, bool) {
	if d.Person == nil {
		return time.Time{}, false
	}
	return d.Person.DateOfBirth, true
}

func (d *Director) Check() []Problem {
	if p := exactlyOne(d.Person != nil, d.Corporate != nil, "person", "corporate"); p != nil {
		return []Problem{*p}
	}
	if d.Person != nil {
		return under("person", d.Person.Check())
	}
	return nil
}

// Secretary is a company secretary.
type Secretary struct {
	Person       *SecretaryPerson  `json:"person,omitempty"`
	Corporate    *CorporateOfficer `json:"corporate,omitempty"`
	Unrecognized []byte            `json:"-"`
}

func (*Secretary) Role() Role { return RoleSecretary }
func (*Secretary) isOfficer() {}

func (*Secretary) BirthDate() (time.Time, bool) { return time.Time{}, false }

func (s *Secretary) Check() []Problem {
	if p := exactlyOne(s.Person != nil, s.Corporate != nil, "person", "corporate"); p != nil {
		return []Problem{*p}
	}
	if s.Person != nil {
		return under("person", s.Person.Check())
	}
	return nil
}

// Member is a member of an LLP. Designated members carry the statutory
// filing responsibilities.
type Member struct {
	Designated   bool              `json:"designated,omitempty"`
	Person       *MemberPerson     `json:"person,omitempty"`
	Corporate    *CorporateOfficer `json:"corporate,omitempty"`
	Unrecognized []byte            `json:"-"`
}

func (*Member) Role() Role { return RoleMember }
func (*Member) isOfficer() {}

func (m *Member) BirthDate() (time.Time, bool) {
	if m.Person == nil {
		return time.Time{}, false
	}
	return m.Person.DateOfBirth, true
}

func (m *Member) Check() []Problem {
	if p := exactlyOne(m.Person != nil, m.Corporate != nil, "person", "corporate"); p != nil {
		return []Problem{*p}
	}
	if m.Person != nil {
		return under("person", m.Person.Check())
	}
	return nil
}

// Appointment names an officer who has consented to act.
type Appointment struct {
	ConsentToAct bool    `json:"consent_to_act" validate:"required"`
	Officer      Officer `json:"officer" validate:"required"`
	Unrecognized []byte  `json:"-"`
}

// HasOfficer reports whether the appointment names an officer value.
func (a *Appointment) HasOfficer() bool {
	return a.Officer != nil && !reflect.ValueOf(a.Officer).IsNil()
}

func (a *Appointment) Check() []Problem {
	if !a.HasOfficer() {
		return nil
	}
	return under("officer", a.Officer.Check())
}

func NewDirectorAppointment(person *Person, consentToAct bool) (Appointment, error) {
	if person == nil {
		return Appointment{}, e.InvalidSection("director", "person is required")
	}
	return newAppointment("director", &Director{Person: person}, consentToAct)
}

func NewCorporateDirectorAppointment(corporate *CorporateOfficer, consentToAct bool) (Appointment, error) {
	if corporate == nil {
		return Appointment{}, e.InvalidSection("director", "corporate is required")
	}
	return newAppointment("director", &Director{Corporate: corporate}, consentToAct)
}

func NewSecretaryAppointment(person *SecretaryPerson, consentToAct bool) (Appointment, error) {
	if person == nil {
		return Appointment{}, e.InvalidSection("secretary", "person is required")
	}
	return newAppointment("secretary", &Secretary{Person: person}, consentToAct)
}

func NewMemberAppointment(person *MemberPerson, designated, consentToAct bool) (Appointment, error) {
	if person == nil {
		return Appointment{}, e.InvalidSection("member", "person is required")
	}
	return newAppointment("member", &Member{Designated: designated, Person: person}, consentToAct)
}

func NewCorporateMemberAppointment(corporate *CorporateOfficer, designated, consentToAct bool) (Appointment, error) {
	if corporate == nil {
		return Appointment{}, e.InvalidSection("member", "corporate is required")
	}
	return newAppointment("member", &Member{Designated: designated, Corporate: corporate}, consentToAct)
}

func newAppointment(kind string, officer Officer, consentToAct bool) (Appointment, error) {
	a := Appointment{ConsentToAct: consentToAct, Officer: officer}
	if err := sectionError(kind, &a, a.Check()); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// sectionError reports the first absent field or failed section rule of v
// as InvalidSection(kind, reason).
func sectionError(kind string, v any, problems []Problem) error {
	for _, fv := range CheckFields(v) {
		if IsPresenceTag(fv.Tag, fv.Param) {
			return e.InvalidSection(kind, fv.Path+" is required")
		}
	}
	if len(problems) > 0 {
		return e.InvalidSection(kind, problems[0].Path+" "+problems[0].Message)
	}
	return nil
}

func exactlyOne(a, b bool, nameA, nameB string) *Problem {
	switch {
	case a && b:
		p := conflict(nameB, nameA)
		return &p
	case !a && !b:
		p := missing(nameA)
		return &p
	}
	return nil
}
