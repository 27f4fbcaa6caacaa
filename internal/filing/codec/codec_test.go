package codec

import (
	"bytes"
	"errors"
	"testing"
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

var signed = time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		filing models.Filing
	}{
		{"charge registration", samples.ChargeRegistration(signed)},
		{"LLP incorporation", samples.LLPIncorporation(signed)},
		{"company incorporation", samples.CompanyIncorporation(signed)},
		{"officer appointment", samples.OfficerAppointment(signed)},
		{"PSC notification", samples.PSCNotification(signed)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Encode(tt.filing)
			require.NoError(t, err)

			got, err := Decode(b)
			require.NoError(t, err)
			assert.Equal(t, tt.filing, got)

			again, err := Encode(got)
			require.NoError(t, err)
			assert.Equal(t, b, again)
		})
	}
}

func TestRoundTrip_UnionsAndOptionalFields(t *testing.T) {
	office, err := models.NewCompanyAddress(samples.HomeAddress(), "PO1")
	require.NoError(t, err)
	corporate, err := models.NewCorporateOfficer("Acme Nominees Limited", office, "01234567", "England")
	require.NoError(t, err)
	corporateDirector, err := models.NewCorporateDirectorAppointment(corporate, true)
	require.NoError(t, err)
	corporateMember, err := models.NewCorporateMemberAppointment(corporate, true, true)
	require.NoError(t, err)

	c := samples.CompanyIncorporation(signed)
	c.Appointments = append(c.Appointments, corporateDirector, corporateMember)
	c.PSCs.Notifications = append(c.PSCs.Notifications,
		models.PSC{
			Entity: &models.PSCCorporate{
				CorporateName: "Holdings Limited",
				Address:       office,
				LegalForm:     "Private limited company",
				LawGoverned:   "England and Wales",
			},
			NatureOfControl: samples.CompanyControl(),
		},
		models.PSC{
			Entity:          &models.PSCLegalPerson{Name: "Trust Body", LegalForm: "Trust", LawGoverned: "Scotland"},
			NatureOfControl: models.NatureOfControl{Company: []models.CompanyControl{models.CompanyControlSignificantInfluenceOrControl}},
		},
	)
	agent := samples.HomeAddress()
	c.Authorizer = models.Authorizer{
		Kind:         models.AuthorizerKindAgent,
		Signatories:  []models.Signatory{{Name: samples.Name("Agent", "Smith"), CorporateName: "Agents LLP", Authentication: samples.PersonalAttributes()}},
		AgentAddress: &agent,
	}
	c.Guarantors = []models.Guarantor{{
		Person:              models.IncorporationPerson{Name: samples.Name("G", "Guarantor"), Address: samples.HomeAddress(), Authentication: samples.PersonalAttributes()},
		AmountGuaranteed:    models.Units(1),
		MemorandumStatement: models.MemorandumStatementWithoutShares,
	}}
	c.Memorandum, _ = models.NewOpaqueAttachment([]byte{0x00, 0xff}, "memorandum.bin", "application/octet-stream")
	c.Form.CustomerReference = "REF-1"
	c.RestrictedArticles = true
	c.SameDay = true

	b, err := Encode(c)
	require.NoError(t, err)
	got, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestEncode_AttachmentsInline(t *testing.T) {
	c := samples.ChargeRegistration(signed)

	b, err := Encode(c)
	require.NoError(t, err)

	assert.True(t, bytes.Contains(b, c.Deed.Data))
	assert.True(t, bytes.Contains(b, []byte("deed.pdf")))
}

func TestEncode_Deterministic(t *testing.T) {
	c := samples.LLPIncorporation(signed)
	first, err := Encode(c)
	require.NoError(t, err)
	second, err := Encode(c)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncode_Nil(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestDecode_PreservesUnknownFields(t *testing.T) {
	c := samples.ChargeRegistration(signed)
	nested := protowire.AppendTag(nil, 42, protowire.BytesType)
	nested = protowire.AppendString(nested, "checksum")
	c.Deed.Unrecognized = nested

	b, err := Encode(c)
	require.NoError(t, err)

	top := protowire.AppendTag(nil, 99, protowire.VarintType)
	top = protowire.AppendVarint(top, 7)
	withTop := append(append([]byte(nil), b...), top...)

	got, err := Decode(withTop)
	require.NoError(t, err)
	charge, ok := got.(*models.ChargeRegistration)
	require.True(t, ok)
	assert.Equal(t, top, charge.Unrecognized)
	assert.Equal(t, nested, charge.Deed.Unrecognized)

	again, err := Encode(charge)
	require.NoError(t, err)
	assert.Equal(t, withTop, again)
}

func TestDecode_PreservesUnknownAttributeFields(t *testing.T) {
	c := samples.ChargeRegistration(signed)
	delete(c.PersonalAttributes, models.AttributeKindTelephone)
	b, err := Encode(c)
	require.NoError(t, err)

	future := protowire.AppendTag(nil, 9, protowire.BytesType)
	future = protowire.AppendString(future, "future-verification-flag")
	var entry encoder
	entry.enum(1, int32(models.AttributeKindTelephone))
	entry.str(2, "075")
	entry.raw(future)
	var w encoder
	w.message(14, entry.b)

	got, err := Decode(append(b, w.b...))
	require.NoError(t, err)
	charge, ok := got.(*models.ChargeRegistration)
	require.True(t, ok)
	attr := charge.PersonalAttributes[models.AttributeKindTelephone]
	assert.Equal(t, "075", attr.Value)
	assert.Equal(t, future, attr.Unrecognized)
	assert.Nil(t, charge.Unrecognized)

	again, err := Encode(charge)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(again, future))

	decoded, err := Decode(again)
	require.NoError(t, err)
	assert.Equal(t, charge, decoded)
}

func TestDecode_CanonicalForm(t *testing.T) {
	c := samples.ChargeRegistration(signed.In(time.FixedZone("CET", 3600)))
	c.PersonsEntitled = []string{}
	b, err := Encode(c)
	require.NoError(t, err)

	got, err := Decode(b)
	require.NoError(t, err)
	charge, ok := got.(*models.ChargeRegistration)
	require.True(t, ok)
	assert.Nil(t, charge.PersonsEntitled)
	assert.Equal(t, time.UTC, charge.Form.DateSigned.Location())
	assert.True(t, c.Form.DateSigned.Equal(charge.Form.DateSigned))

	again, err := Encode(charge)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestDecode_Errors(t *testing.T) {
	header := func(body []byte) []byte {
		b := protowire.AppendTag(nil, fieldFilingType, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(models.FilingTypeChargeRegistration))
		b = protowire.AppendTag(b, fieldHeader, protowire.BytesType)
		return protowire.AppendBytes(b, body)
	}
	nameAsVarint := protowire.AppendVarint(protowire.AppendTag(nil, 2, protowire.VarintType), 1)

	valid, err := Encode(samples.ChargeRegistration(signed))
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    []byte
		wantPath string
	}{
		{"empty", nil, "filing_type"},
		{"unknown filing type", protowire.AppendVarint(protowire.AppendTag(nil, 1, protowire.VarintType), 9), "filing_type"},
		{"truncated", valid[:len(valid)-3], ""},
		{"header with wrong wire type", protowire.AppendVarint(protowire.AppendTag(header(nil)[:2], 2, protowire.VarintType), 1), "form_submission"},
		{"nested field with wrong wire type", header(nameAsVarint), "form_submission.company_name"},
		{"invalid UTF-8", header(protowire.AppendBytes(protowire.AppendTag(nil, 2, protowire.BytesType), []byte{0xff, 0xfe})), "form_submission.company_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, e.ErrDecode))

			var de *e.DecodeError
			require.ErrorAs(t, err, &de)
			if tt.wantPath != "" {
				assert.Equal(t, tt.wantPath, de.Path)
			}
		})
	}
}

func TestDecode_DuplicateAttribute(t *testing.T) {
	b, err := Encode(samples.ChargeRegistration(signed))
	require.NoError(t, err)

	var entry encoder
	entry.enum(1, int32(models.AttributeKindPassportNumber))
	entry.str(2, "999")
	var w encoder
	w.message(14, entry.b)
	b = append(b, w.b...)

	_, err = Decode(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrDecode)
	assert.ErrorIs(t, err, e.ErrDuplicateAttribute)

	var de *e.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "personal_attributes", de.Path)
}

func TestDecode_PackedEnums(t *testing.T) {
	var packed []byte
	packed = protowire.AppendVarint(packed, uint64(models.LLPControlVotingRights25To50))
	packed = protowire.AppendVarint(packed, uint64(models.LLPControlRightToAppointAndRemoveMembers))
	b := protowire.AppendTag(nil, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)

	n, err := decodeNatureOfControl(b, "nature_of_control")
	require.NoError(t, err)
	assert.Equal(t, []models.LLPControl{
		models.LLPControlVotingRights25To50,
		models.LLPControlRightToAppointAndRemoveMembers,
	}, n.LLP)
	assert.Nil(t, n.Unrecognized)
}

func TestPeekFilingType(t *testing.T) {
	b, err := Encode(samples.PSCNotification(signed))
	require.NoError(t, err)

	ft, err := PeekFilingType(b)
	require.NoError(t, err)
	assert.Equal(t, models.FilingTypePSCNotification, ft)
}
