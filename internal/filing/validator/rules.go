package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gartstein/efiling/internal/filing/models"
)

func (r *run) charge(c *models.ChargeRegistration) {
	r.notAfterSigned("creation_date", c.CreationDate)
	r.notAfterSigned("property_acquired_date", c.PropertyAcquiredDate)
	if c.FloatingCharge == models.FloatingChargeDoesNotCoverAll && strings.TrimSpace(c.ChargeDescription) == "" {
		r.add("charge_description", models.CodeMissingField, "is required when the floating charge does not cover all property")
	}
}

func (r *run) chargeAttachments(c *models.ChargeRegistration) {
	if c.Deed == nil {
		r.add("deed", models.CodeMissingField, "is required")
	}
}

func (r *run) incorporation(c *models.CompanyIncorporation) {
	llp := c.CompanyType.IsLLP()
	if c.CompanyType.IsValid() {
		r.appointments(c, llp)
	}
	for i := range c.Appointments {
		if c.Appointments[i].HasOfficer() {
			r.officerAge(models.JoinPath(indexPath("appointments", i), "officer"), c.Appointments[i].Officer)
		}
	}
	for i := range c.PSCs.Notifications {
		path := indexPath("pscs.notifications", i)
		r.pscAge(path, &c.PSCs.Notifications[i])
		r.controlFamily(models.JoinPath(path, "nature_of_control"), c.PSCs.Notifications[i].NatureOfControl, llp)
	}

	if !c.CompanyType.IsValid() {
		return
	}
	if llp {
		if len(c.StatementOfCapital) > 0 {
			r.add("statement_of_capital", CodeNotAllowed, "an LLP has no share capital")
		}
		if c.Articles != models.ArticlesNone {
			r.add("articles", CodeNotAllowed, "an LLP files no articles")
		}
		return
	}

	if len(c.StatementOfCapital) == 0 {
		r.add("statement_of_capital", models.CodeMissingField, "is required for a company")
		return
	}
	for i := range c.StatementOfCapital {
		for _, p := range c.StatementOfCapital[i].Reconcile() {
			r.add(models.JoinPath(indexPath("statement_of_capital", i), p.Path), p.Code, p.Message)
		}
	}
	r.allotments(c)
}

// appointments checks the officer roles against the kind of entity being
// formed.
func (r *run) appointments(c *models.CompanyIncorporation, llp bool) {
	var designated, directors int
	for i := range c.Appointments {
		a := &c.Appointments[i]
		if !a.HasOfficer() {
			continue
		}
		path := models.JoinPath(indexPath("appointments", i), "officer")
		role := a.Officer.Role()
		switch {
		case llp && role != models.RoleMember:
			r.add(path, CodeOfficerNotAllowed, "an LLP appoints members only")
		case !llp && role == models.RoleMember:
			r.add(path, CodeOfficerNotAllowed, "a company cannot appoint LLP members")
		case role == models.RoleDirector:
			directors++
		case role == models.RoleMember:
			m := a.Officer.(*models.Member)
			if m.Designated {
				designated++
			} else if c.CompanyType == models.IncorporationTypeLLPOnlyDesignated {
				r.add(models.JoinPath(path, "designated"), CodeMustBeDesignated, "every member of this LLP is designated")
			}
		}
	}
	switch {
	case llp && designated == 0:
		r.add("appointments", CodeNoDesignatedMember, "at least one member must be designated")
	case !llp && directors == 0:
		r.add("appointments", CodeNoDirector, "at least one director must be appointed")
	}
}

// allotments compares the nominal value taken by subscribers with the
// statement of capital, currency by currency.
func (r *run) allotments(c *models.CompanyIncorporation) {
	stated := map[string]models.Amount{}
	for _, capital := range c.StatementOfCapital {
		stated[capital.Currency] += capital.TotalAggregateNominalValue
	}
	allotted := map[string]models.Amount{}
	for _, s := range c.Subscribers {
		for _, a := range s.Allotments {
			allotted[a.ShareCurrency] += a.NominalValue()
		}
	}

	currencies := make([]string, 0, len(stated)+len(allotted))
	for cur := range stated {
		currencies = append(currencies, cur)
	}
	for cur := range allotted {
		if _, ok := stated[cur]; !ok {
			currencies = append(currencies, cur)
		}
	}
	sort.Strings(currencies)

	var mismatches []string
	for _, cur := range currencies {
		if stated[cur] != allotted[cur] {
			mismatches = append(mismatches, fmt.Sprintf("%s allotted %s, stated %s", cur, allotted[cur], stated[cur]))
		}
	}
	if len(mismatches) > 0 {
		r.add("subscribers", CodeAllotmentMismatch, strings.Join(mismatches, "; "))
	}
}

func (r *run) incorporationAttachments(c *models.CompanyIncorporation) {
	r.exceptionDocument("name_authorization", c.NameAuthorization, c.NameException == models.NameExceptionSameAsExistingName)
	r.exceptionDocument("same_name", c.SameName, c.NameException == models.NameExceptionSameGroupName)
	if c.Articles.IsValid() {
		r.exceptionDocument("articles_document", c.ArticlesDocument, c.Articles.RequiresDocument())
	}
}

// exceptionDocument requires doc exactly when wanted is set.
func (r *run) exceptionDocument(path string, doc *models.Attachment, wanted bool) {
	switch {
	case wanted && doc == nil:
		r.add(path, models.CodeMissingField, "is required")
	case !wanted && doc != nil:
		r.add(path, CodeUnexpectedDocument, "is not called for by the filing")
	}
}

func (r *run) officerAppointment(o *models.OfficerAppointment) {
	r.notAfterSigned("appointment_date", o.AppointmentDate)
	if !o.Appointment.HasOfficer() {
		return
	}
	officer := o.Appointment.Officer
	path := "appointment.officer"
	if t := o.Form.CompanyType; t.IsValid() {
		switch role := officer.Role(); {
		case t.IsLLP() && role != models.RoleMember:
			r.add(path, CodeOfficerNotAllowed, "an LLP appoints members only")
		case !t.IsLLP() && role == models.RoleMember:
			r.add(path, CodeOfficerNotAllowed, "a company cannot appoint LLP members")
		}
	}
	r.officerAge(path, officer)
}

func (r *run) pscNotification(p *models.PSCNotification) {
	r.notAfterSigned("notification_date", p.NotificationDate)
	r.notAfterSigned("register_entry_date", p.RegisterEntryDate)
	r.pscAge("psc", &p.PSC)
	if t := p.Form.CompanyType; t.IsValid() {
		r.controlFamily("psc.nature_of_control", p.PSC.NatureOfControl, t.IsLLP())
	}
}

func (r *run) officerAge(path string, officer models.Officer) {
	if dob, ok := officer.BirthDate(); ok {
		r.oldEnough(models.JoinPath(path, "person", "date_of_birth"), dob)
	}
}

func (r *run) pscAge(path string, p *models.PSC) {
	if !p.HasEntity() {
		return
	}
	if dob, ok := p.Entity.BirthDate(); ok {
		r.oldEnough(models.JoinPath(path, "entity", "date_of_birth"), dob)
	}
}

// controlFamily reports bands from the wrong family. Empty or mixed
// natures are left to the section checks.
func (r *run) controlFamily(path string, n models.NatureOfControl, llp bool) {
	switch {
	case llp && len(n.Company) > 0 && len(n.LLP) == 0:
		r.add(path, CodeWrongControlFamily, "an LLP uses the LLP nature of control bands")
	case !llp && len(n.LLP) > 0 && len(n.Company) == 0:
		r.add(path, CodeWrongControlFamily, "a company uses the company nature of control bands")
	}
}

func indexPath(base string, i int) string { return fmt.Sprintf("%s.%d", base, i) }
