package codec

import (
	"fmt"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"google.golang.org/protobuf/encoding/protowire"
)

func encodeAttachment(w *encoder, a *models.Attachment) error {
	w.bytes(1, a.Data)
	w.str(2, a.Filename)
	w.enum(3, int32(a.ContentType))
	w.str(4, a.MediaType)
	w.raw(a.Unrecognized)
	return nil
}

func decodeAttachment(b []byte, path string) (a models.Attachment, err error) {
	a.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.bytes("data", &a.Data)
		case 2:
			return true, f.str("filename", &a.Filename)
		case 3:
			return true, enum(f, "content_type", &a.ContentType)
		case 4:
			return true, f.str("media_type", &a.MediaType)
		}
		return false, nil
	})
	return a, err
}

func encodePersonName(w *encoder, n *models.PersonName) error {
	w.str(1, n.Title)
	w.strings(2, n.Forenames)
	w.str(3, n.Surname)
	w.raw(n.Unrecognized)
	return nil
}

func decodePersonName(b []byte, path string) (n models.PersonName, err error) {
	n.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.str("title", &n.Title)
		case 2:
			return true, f.appendStr("forenames", &n.Forenames)
		case 3:
			return true, f.str("surname", &n.Surname)
		}
		return false, nil
	})
	return n, err
}

func encodeBaseAddress(w *encoder, a *models.BaseAddress) error {
	w.str(1, a.Premise)
	w.str(2, a.Street)
	w.str(3, a.Thoroughfare)
	w.str(4, a.PostTown)
	w.str(5, a.County)
	w.str(6, a.Postcode)
	w.str(7, a.Country)
	w.raw(a.Unrecognized)
	return nil
}

func decodeBaseAddress(b []byte, path string) (a models.BaseAddress, err error) {
	a.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.str("premise", &a.Premise)
		case 2:
			return true, f.str("street", &a.Street)
		case 3:
			return true, f.str("thoroughfare", &a.Thoroughfare)
		case 4:
			return true, f.str("post_town", &a.PostTown)
		case 5:
			return true, f.str("county", &a.County)
		case 6:
			return true, f.str("postcode", &a.Postcode)
		case 7:
			return true, f.str("country", &a.Country)
		}
		return false, nil
	})
	return a, err
}

func encodeUKAddress(w *encoder, a *models.UKAddress) error {
	w.str(1, a.Premise)
	w.str(2, a.Street)
	w.str(3, a.Thoroughfare)
	w.str(4, a.PostTown)
	w.str(5, a.County)
	w.str(6, a.Postcode)
	w.enum(7, int32(a.Nation))
	w.str(8, a.POBox)
	w.str(9, a.CareOfName)
	w.raw(a.Unrecognized)
	return nil
}

func decodeUKAddress(b []byte, path string) (a models.UKAddress, err error) {
	a.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.str("premise", &a.Premise)
		case 2:
			return true, f.str("street", &a.Street)
		case 3:
			return true, f.str("thoroughfare", &a.Thoroughfare)
		case 4:
			return true, f.str("post_town", &a.PostTown)
		case 5:
			return true, f.str("county", &a.County)
		case 6:
			return true, f.str("postcode", &a.Postcode)
		case 7:
			return true, enum(f, "country", &a.Nation)
		case 8:
			return true, f.str("po_box", &a.POBox)
		case 9:
			return true, f.str("care_of_name", &a.CareOfName)
		}
		return false, nil
	})
	return a, err
}

func encodeCompanyAddress(w *encoder, a *models.CompanyAddress) error {
	if err := embed(w, 1, &a.Address, encodeBaseAddress); err != nil {
		return err
	}
	w.str(2, a.CareOfName)
	w.str(3, a.POBox)
	w.raw(a.Unrecognized)
	return nil
}

func decodeCompanyAddress(b []byte, path string) (a models.CompanyAddress, err error) {
	a.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, sub(f, "address", decodeBaseAddress, &a.Address)
		case 2:
			return true, f.str("care_of_name", &a.CareOfName)
		case 3:
			return true, f.str("po_box", &a.POBox)
		}
		return false, nil
	})
	return a, err
}

func encodeServiceAddress(w *encoder, a *models.ServiceAddress) error {
	w.boolean(1, a.SameAsRegisteredOffice)
	if err := ptr(w, 2, a.Address, encodeCompanyAddress); err != nil {
		return err
	}
	w.raw(a.Unrecognized)
	return nil
}

func decodeServiceAddress(b []byte, path string) (a models.ServiceAddress, err error) {
	a.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.boolean("same_as_registered_office", &a.SameAsRegisteredOffice)
		case 2:
			return true, subPtr(f, "address", decodeCompanyAddress, &a.Address)
		}
		return false, nil
	})
	return a, err
}

func encodeResidentialAddress(w *encoder, a *models.ResidentialAddress) error {
	w.boolean(1, a.SameAsServiceAddress)
	if err := ptr(w, 2, a.Address, encodeBaseAddress); err != nil {
		return err
	}
	w.boolean(3, a.Secure)
	w.raw(a.Unrecognized)
	return nil
}

func decodeResidentialAddress(b []byte, path string) (a models.ResidentialAddress, err error) {
	a.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.boolean("same_as_service_address", &a.SameAsServiceAddress)
		case 2:
			return true, subPtr(f, "address", decodeBaseAddress, &a.Address)
		case 3:
			return true, f.boolean("secure", &a.Secure)
		}
		return false, nil
	})
	return a, err
}

// encodeAttributes writes one {kind, value} entry per attribute in kind
// order.
func encodeAttributes(w *encoder, num protowire.Number, attrs models.PersonalAttributes) {
	for _, k := range attrs.Kinds() {
		var entry encoder
		entry.enum(1, int32(k))
		entry.str(2, attrs[k].Value)
		entry.raw(attrs[k].Unrecognized)
		w.message(num, entry.b)
	}
}

func decodeAttribute(f *field, name string, dst *models.PersonalAttributes) error {
	if err := f.want(name, protowire.BytesType); err != nil {
		return err
	}
	var attr models.PersonalAttribute
	var err error
	attr.Unrecognized, err = walk(f.b, f.at(name), func(g *field) (bool, error) {
		switch g.num {
		case 1:
			return true, enum(g, "kind", &attr.Kind)
		case 2:
			return true, g.str("value", &attr.Value)
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	if *dst == nil {
		*dst = models.PersonalAttributes{}
	}
	if _, dup := (*dst)[attr.Kind]; dup {
		return f.fail(name, fmt.Errorf("%w: %s", e.ErrDuplicateAttribute, attr.Kind))
	}
	(*dst)[attr.Kind] = attr
	return nil
}

func encodePerson(w *encoder, p *models.Person) error {
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
	w.str(5, p.Occupation)
	w.str(6, p.CountryOfResidence)
	if err := embed(w, 7, &p.ResidentialAddress, encodeResidentialAddress); err != nil {
		return err
	}
	w.raw(p.Unrecognized)
	return nil
}

func decodePerson(b []byte, path string) (p models.Person, err error) {
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
			return true, f.str("occupation", &p.Occupation)
		case 6:
			return true, f.str("country_of_residence", &p.CountryOfResidence)
		case 7:
			return true, sub(f, "residential_address", decodeResidentialAddress, &p.ResidentialAddress)
		}
		return false, nil
	})
	return p, err
}

func encodeSecretaryPerson(w *encoder, p *models.SecretaryPerson) error {
	if err := embed(w, 1, &p.Name, encodePersonName); err != nil {
		return err
	}
	if err := embed(w, 2, &p.ServiceAddress, encodeServiceAddress); err != nil {
		return err
	}
	w.raw(p.Unrecognized)
	return nil
}

func decodeSecretaryPerson(b []byte, path string) (p models.SecretaryPerson, err error) {
	p.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, sub(f, "name", decodePersonName, &p.Name)
		case 2:
			return true, sub(f, "service_address", decodeServiceAddress, &p.ServiceAddress)
		}
		return false, nil
	})
	return p, err
}

func encodeMemberPerson(w *encoder, p *models.MemberPerson) error {
	if err := embed(w, 1, &p.Name, encodePersonName); err != nil {
		return err
	}
	if err := embed(w, 2, &p.ServiceAddress, encodeServiceAddress); err != nil {
		return err
	}
	if err := w.time(3, p.DateOfBirth); err != nil {
		return err
	}
	w.str(4, p.CountryOfResidence)
	if err := embed(w, 5, &p.ResidentialAddress, encodeResidentialAddress); err != nil {
		return err
	}
	w.raw(p.Unrecognized)
	return nil
}

func decodeMemberPerson(b []byte, path string) (p models.MemberPerson, err error) {
	p.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, sub(f, "name", decodePersonName, &p.Name)
		case 2:
			return true, sub(f, "service_address", decodeServiceAddress, &p.ServiceAddress)
		case 3:
			return true, f.time("date_of_birth", &p.DateOfBirth)
		case 4:
			return true, f.str("country_of_residence", &p.CountryOfResidence)
		case 5:
			return true, sub(f, "residential_address", decodeResidentialAddress, &p.ResidentialAddress)
		}
		return false, nil
	})
	return p, err
}

func encodeCorporateOfficer(w *encoder, c *models.CorporateOfficer) error {
	w.str(1, c.CorporateName)
	if err := embed(w, 2, &c.Address, encodeCompanyAddress); err != nil {
		return err
	}
	w.str(3, c.RegistrationNumber)
	w.str(4, c.PlaceRegistered)
	w.str(5, c.LawGoverned)
	w.str(6, c.LegalForm)
	w.raw(c.Unrecognized)
	return nil
}

func decodeCorporateOfficer(b []byte, path string) (c models.CorporateOfficer, err error) {
	c.Unrecognized, err = walk(b, path, func(f *field) (bool, error) {
		switch f.num {
		case 1:
			return true, f.str("corporate_name", &c.CorporateName)
		case 2:
			return true, sub(f, "address", decodeCompanyAddress, &c.Address)
		case 3:
			return true, f.str("registration_number", &c.RegistrationNumber)
		case 4:
			return true, f.str("place_registered", &c.PlaceRegistered)
		case 5:
			return true, f.str("law_governed", &c.LawGoverned)
		case 6:
			return true, f.str("legal_form", &c.LegalForm)
		}
		return false, nil
	})
	return c, err
}
