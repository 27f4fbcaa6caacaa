package codec

import (
	"fmt"

	"github.com/gartstein/efiling/internal/filing/models"
)

func encodeDirector(w *encoder, d *models.Director) error {
	if err := ptr(w, 1, d.Person, encodePerson); err != nil {
		return err
	}
	if err := ptr(w, 2, d.Corporate, encodeCorporateOfficer); err != nil {
		return err
	}
	w.raw(d.Unrecognized)
	return nil
}

func decodeDirector(b []byte, path string) (d models.Director, err error) {
	d.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, subPtr(f, "person", decodePerson, &d.Person)
		case 2:
			return true, subPtr(f, "corporate", decodeCorporateOfficer, &d.Corporate)
		}
		return false, nil
	})
	return d, err
}

func encodeSecretary(w *encoder, s *models.Secretary) error {
	if err := ptr(w, 1, s.Person, encodeSecretaryPerson); err != nil {
		return err
	}
	if err := ptr(w, 2, s.Corporate, encodeCorporateOfficer); err != nil {
		return err
	}
	w.raw(s.Unrecognized)
	return nil
}

func decodeSecretary(b []byte, path string) (s models.Secretary, err error) {
	s.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, subPtr(f, "person", decodeSecretaryPerson, &s.Person)
		case 2:
			return true, subPtr(f, "corporate", decodeCorporateOfficer, &s.Corporate)
		}
		return false, nil
	})
	return s, err
}

func encodeMember(w *encoder, m *models.Member) error {
	w.boolean(1, m.Designated)
	if err := ptr(w, 2, m.Person, encodeMemberPerson); err != nil {
		return err
	}
	if err := ptr(w, 3, m.Corporate, encodeCorporateOfficer); err != nil {
		return err
	}
	w.raw(m.Unrecognized)
	return nil
}

func decodeMember(b []byte, path string) (m models.Member, err error) {
	m.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.boolean("designated", &m.Designated)
		case 2:
			return true, subPtr(f, "person", decodeMemberPerson, &m.Person)
		case 3:
			return true, subPtr(f, "corporate", decodeCorporateOfficer, &m.Corporate)
		}
		return false, nil
	})
	return m, err
}

// encodeAppointment writes the officer under the field of its role.
func encodeAppointment(w *encoder, a *models.Appointment) error {
	w.boolean(1, a.ConsentToAct)
	var err error
	switch o := a.Officer.(type) {
	case *models.Director:
		err = ptr(w, 2, o, encodeDirector)
	case *models.Secretary:
		err = ptr(w, 3, o, encodeSecretary)
	case *models.Member:
		err = ptr(w, 4, o, encodeMember)
	case nil:
	default:
		err = fmt.Errorf("unsupported officer %T", o)
	}
	if err != nil {
		return err
	}
	w.raw(a.Unrecognized)
	return nil
}

func decodeAppointment(b []byte, path string) (a models.Appointment, err error) {
	a.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.boolean("consent_to_act", &a.ConsentToAct)
		case 2:
			var d *models.Director
			err := subPtr(f, "officer", decodeDirector, &d)
			a.Officer = d
			return true, err
		case 3:
			var s *models.Secretary
			err := subPtr(f, "officer", decodeSecretary, &s)
			a.Officer = s
			return true, err
		case 4:
			var m *models.Member
			err := subPtr(f, "officer", decodeMember, &m)
			a.Officer = m
			return true, err
		}
		return false, nil
	})
	return a, err
}

func encodeNatureOfControl(w *encoder, n *models.NatureOfControl) error {
	enums(w, 1, n.Company)
	enums(w, 2, n.LLP)
	w.raw(n.Unrecognized)
	return nil
}

func decodeNatureOfControl(b []byte, path string) (n models.NatureOfControl, err error) {
	n.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, appendEnums(f, "company", &n.Company)
		case 2:
			return true, appendEnums(f, "llp", &n.LLP)
		}
		return false, nil
	})
	return n, err
}

func encodePSCIndividual(w *encoder, p *models.PSCIndividual) error {
	if err := embed(w, 1, &p.Name, encodePersonName); err != nil {
		return err
	}
	if err := embed(w, 2, &p.ServiceAddress, encodeServiceAddress); err != nil {
		return err
	}
	if err := w.time(3, p.DateOfBirth); err != nil {
		return err
	}
	w.str(4, p.Nationality)
	w.str(5, p.CountryOfResidence)
	if err := embed(w, 6, &p.ResidentialAddress, encodeResidentialAddress); err != nil {
		return err
	}
	w.boolean(7, p.ConsentStatement)
	w.raw(p.Unrecognized)
	return nil
}

func decodePSCIndividual(b []byte, path string) (p models.PSCIndividual, err error) {
	p.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, sub(f, "name", decodePersonName, &p.Name)
		case 2:
			return true, sub(f, "service_address", decodeServiceAddress, &p.ServiceAddress)
		case 3:
			return true, f.time("date_of_birth", &p.DateOfBirth)
		case 4:
			return true, f.str("nationality", &p.Nationality)
		case 5:
			return true, f.str("country_of_residence", &p.CountryOfResidence)
		case 6:
			return true, sub(f, "residential_address", decodeResidentialAddress, &p.ResidentialAddress)
		case 7:
			return true, f.boolean("consent_statement", &p.ConsentStatement)
		}
		return false, nil
	})
	return p, err
}

func encodePSCCorporate(w *encoder, p *models.PSCCorporate) error {
	w.str(1, p.CorporateName)
	if err := embed(w, 2, &p.Address, encodeCompanyAddress); err != nil {
		return err
	}
	w.str(3, p.LegalForm)
	w.str(4, p.LawGoverned)
	w.str(5, p.RegisterLocation)
	w.str(6, p.RegistrationNumber)
	w.raw(p.Unrecognized)
	return nil
}

func decodePSCCorporate(b []byte, path string) (p models.PSCCorporate, err error) {
	p.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.str("corporate_name", &p.CorporateName)
		case 2:
			return true, sub(f, "address", decodeCompanyAddress, &p.Address)
		case 3:
			return true, f.str("legal_form", &p.LegalForm)
		case 4:
			return true, f.str("law_governed", &p.LawGoverned)
		case 5:
			return true, f.str("register_location", &p.RegisterLocation)
		case 6:
			return true, f.str("registration_number", &p.RegistrationNumber)
		}
		return false, nil
	})
	return p, err
}

func encodePSCLegalPerson(w *encoder, p *models.PSCLegalPerson) error {
	w.str(1, p.Name)
	if err := embed(w, 2, &p.Address, encodeCompanyAddress); err != nil {
		return err
	}
	w.str(3, p.LegalForm)
	w.str(4, p.LawGoverned)
	w.raw(p.Unrecognized)
	return nil
}

func decodePSCLegalPerson(b []byte, path string) (p models.PSCLegalPerson, err error) {
	p.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.str("name", &p.Name)
		case 2:
			return true, sub(f, "address", decodeCompanyAddress, &p.Address)
		case 3:
			return true, f.str("legal_form", &p.LegalForm)
		case 4:
			return true, f.str("law_governed", &p.LawGoverned)
		}
		return false, nil
	})
	return p, err
}

func encodePSC(w *encoder, p *models.PSC) error {
	var err error
	switch x := p.Entity.(type) {
	case *models.PSCIndividual:
		err = ptr(w, 1, x, encodePSCIndividual)
	case *models.PSCCorporate:
		err = ptr(w, 2, x, encodePSCCorporate)
	case *models.PSCLegalPerson:
		err = ptr(w, 3, x, encodePSCLegalPerson)
	case nil:
	default:
		err = fmt.Errorf("unsupported PSC entity %T", x)
	}
	if err != nil {
		return err
	}
	if err := embed(w, 4, &p.NatureOfControl, encodeNatureOfControl); err != nil {
		return err
	}
	w.raw(p.Unrecognized)
	return nil
}

func decodePSC(b []byte, path string) (p models.PSC, err error) {
	p.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			var x *models.PSCIndividual
			err := subPtr(f, "entity", decodePSCIndividual, &x)
			p.Entity = x
			return true, err
		case 2:
			var x *models.PSCCorporate
			err := subPtr(f, "entity", decodePSCCorporate, &x)
			p.Entity = x
			return true, err
		case 3:
			var x *models.PSCLegalPerson
			err := subPtr(f, "entity", decodePSCLegalPerson, &x)
			p.Entity = x
			return true, err
		case 4:
			return true, sub(f, "nature_of_control", decodeNatureOfControl, &p.NatureOfControl)
		}
		return false, nil
	})
	return p, err
}

func encodePSCs(w *encoder, p *models.PSCs) error {
	w.boolean(1, p.NoPSCStatement)
	if err := each(w, 2, p.Notifications, encodePSC); err != nil {
		return err
	}
	w.raw(p.Unrecognized)
	return nil
}

func decodePSCs(b []byte, path string) (p models.PSCs, err error) {
	p.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.boolean("no_psc_statement", &p.NoPSCStatement)
		case 2:
			return true, appendSub(f, "notifications", decodePSC, &p.Notifications)
		}
		return false, nil
	})
	return p, err
}

func encodeShare(w *encoder, s *models.Share) error {
	w.str(1, s.ShareClass)
	w.str(2, s.PrescribedParticulars)
	w.int64(3, s.NumShares)
	w.int64(4, int64(s.AggregateNominalValue))
	w.raw(s.Unrecognized)
	return nil
}

func decodeShare(b []byte, path string) (s models.Share, err error) {
	s.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.str("share_class", &s.ShareClass)
		case 2:
			return true, f.str("prescribed_particulars", &s.PrescribedParticulars)
		case 3:
			return true, f.int64("num_shares", &s.NumShares)
		case 4:
			return true, f.amount("aggregate_nominal_value", &s.AggregateNominalValue)
		}
		return false, nil
	})
	return s, err
}

func encodeCapital(w *encoder, c *models.Capital) error {
	w.str(1, c.Currency)
	w.int64(2, c.TotalNumberOfShares)
	w.int64(3, int64(c.TotalAggregateNominalValue))
	w.int64(4, int64(c.TotalAmountUnpaid))
	if err := each(w, 5, c.Shares, encodeShare); err != nil {
		return err
	}
	w.raw(c.Unrecognized)
	return nil
}

func decodeCapital(b []byte, path string) (c models.Capital, err error) {
	c.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.str("currency", &c.Currency)
		case 2:
			return true, f.int64("total_number_of_shares", &c.TotalNumberOfShares)
		case 3:
			return true, f.amount("total_aggregate_nominal_value", &c.TotalAggregateNominalValue)
		case 4:
			return true, f.amount("total_amount_unpaid", &c.TotalAmountUnpaid)
		case 5:
			return true, appendSub(f, "shares", decodeShare, &c.Shares)
		}
		return false, nil
	})
	return c, err
}

func encodeAllotment(w *encoder, a *models.Allotment) error {
	w.str(1, a.ShareClass)
	w.int64(2, a.NumShares)
	w.int64(3, int64(a.AmountPaidDuePerShare))
	w.int64(4, int64(a.AmountUnpaidPerShare))
	w.str(5, a.ShareCurrency)
	w.int64(6, int64(a.ShareValue))
	w.raw(a.Unrecognized)
	return nil
}

func decodeAllotment(b []byte, path string) (a models.Allotment, err error) {
	a.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.str("share_class", &a.ShareClass)
		case 2:
			return true, f.int64("num_shares", &a.NumShares)
		case 3:
			return true, f.amount("amount_paid_due_per_share", &a.AmountPaidDuePerShare)
		case 4:
			return true, f.amount("amount_unpaid_per_share", &a.AmountUnpaidPerShare)
		case 5:
			return true, f.str("share_currency", &a.ShareCurrency)
		case 6:
			return true, f.amount("share_value", &a.ShareValue)
		}
		return false, nil
	})
	return a, err
}

func encodeIncorporationPerson(w *encoder, p *models.IncorporationPerson) error {
	if err := embed(w, 1, &p.Name, encodePersonName); err != nil {
		return err
	}
	w.str(2, p.CorporateName)
	if err := embed(w, 3, &p.Address, encodeBaseAddress); err != nil {
		return err
	}
	encodeAttributes(w, 4, p.Authentication)
	w.str(5, p.MemberClass)
	w.raw(p.Unrecognized)
	return nil
}

func decodeIncorporationPerson(b []byte, path string) (p models.IncorporationPerson, err error) {
	p.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, sub(f, "name", decodePersonName, &p.Name)
		case 2:
			return true, f.str("corporate_name", &p.CorporateName)
		case 3:
			return true, sub(f, "address", decodeBaseAddress, &p.Address)
		case 4:
			return true, decodeAttribute(f, "authentication", &p.Authentication)
		case 5:
			return true, f.str("member_class", &p.MemberClass)
		}
		return false, nil
	})
	return p, err
}

func encodeSubscriber(w *encoder, s *models.Subscriber) error {
	if err := embed(w, 1, &s.Person, encodeIncorporationPerson); err != nil {
		return err
	}
	if err := each(w, 2, s.Allotments, encodeAllotment); err != nil {
		return err
	}
	w.enum(3, int32(s.MemorandumStatement))
	w.raw(s.Unrecognized)
	return nil
}

func decodeSubscriber(b []byte, path string) (s models.Subscriber, err error) {
	s.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, sub(f, "person", decodeIncorporationPerson, &s.Person)
		case 2:
			return true, appendSub(f, "allotments", decodeAllotment, &s.Allotments)
		case 3:
			return true, enum(f, "memorandum_statement", &s.MemorandumStatement)
		}
		return false, nil
	})
	return s, err
}

func encodeGuarantor(w *encoder, g *models.Guarantor) error {
	if err := embed(w, 1, &g.Person, encodeIncorporationPerson); err != nil {
		return err
	}
	w.int64(2, int64(g.AmountGuaranteed))
	w.enum(3, int32(g.MemorandumStatement))
	w.raw(g.Unrecognized)
	return nil
}

func decodeGuarantor(b []byte, path string) (g models.Guarantor, err error) {
	g.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, sub(f, "person", decodeIncorporationPerson, &g.Person)
		case 2:
			return true, f.amount("amount_guaranteed", &g.AmountGuaranteed)
		case 3:
			return true, enum(f, "memorandum_statement", &g.MemorandumStatement)
		}
		return false, nil
	})
	return g, err
}

func encodeSignatory(w *encoder, s *models.Signatory) error {
	if err := embed(w, 1, &s.Name, encodePersonName); err != nil {
		return err
	}
	w.str(2, s.CorporateName)
	encodeAttributes(w, 3, s.Authentication)
	w.raw(s.Unrecognized)
	return nil
}

func decodeSignatory(b []byte, path string) (s models.Signatory, err error) {
	s.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, sub(f, "name", decodePersonName, &s.Name)
		case 2:
			return true, f.str("corporate_name", &s.CorporateName)
		case 3:
			return true, decodeAttribute(f, "authentication", &s.Authentication)
		}
		return false, nil
	})
	return s, err
}

func encodeAuthorizer(w *encoder, a *models.Authorizer) error {
	w.enum(1, int32(a.Kind))
	if err := each(w, 2, a.Signatories, encodeSignatory); err != nil {
		return err
	}
	if err := ptr(w, 3, a.AgentAddress, encodeBaseAddress); err != nil {
		return err
	}
	w.raw(a.Unrecognized)
	return nil
}

func decodeAuthorizer(b []byte, path string) (a models.Authorizer, err error) {
	a.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, enum(f, "kind", &a.Kind)
		case 2:
			return true, appendSub(f, "signatories", decodeSignatory, &a.Signatories)
		case 3:
			return true, subPtr(f, "agent_address", decodeBaseAddress, &a.AgentAddress)
		}
		return false, nil
	})
	return a, err
}
