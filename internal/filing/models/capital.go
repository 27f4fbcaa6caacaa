package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	e "github.com/gartstein/efiling/internal/filing/errors"
)

// AmountScale is the number of Amount units in one unit of currency.
const AmountScale = 10000

// Amount is a monetary value in ten-thousandths of a currency unit, which
// is enough precision for nominal share values such as 0.0001.
type Amount int64

// Units builds an Amount from whole currency units.
func Units(n int64) Amount { return Amount(n * AmountScale) }

// ParseAmount reads a decimal such as "1", "0.5" or "12.0001".
func ParseAmount(s string) (Amount, error) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > 4 {
		return 0, fmt.Errorf("%w: amount %q", e.ErrInvalidInput, s)
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > math.MaxInt64/AmountScale {
		return 0, fmt.Errorf("%w: amount %q", e.ErrInvalidInput, s)
	}
	var f int64
	if frac != "" {
		f, err = strconv.ParseInt(frac+strings.Repeat("0", 4-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: amount %q", e.ErrInvalidInput, s)
		}
	}
	a := Amount(w*AmountScale + f)
	if neg {
		a = -a
	}
	return a, nil
}

func (a Amount) String() string {
	sign := ""
	if a < 0 {
		sign = "-"
		a = -a
	}
	whole, frac := int64(a)/AmountScale, int64(a)%AmountScale
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}
	return strings.TrimRight(fmt.Sprintf("%s%d.%04d", sign, whole, frac), "0")
}

// Times multiplies by a share count.
func (a Amount) Times(n int64) Amount { return Amount(int64(a) * n) }

// Share is one class of issued shares in a statement of capital.
type Share struct {
	ShareClass            string `json:"share_class" validate:"required,max=50"`
	PrescribedParticulars string `json:"prescribed_particulars" validate:"required,max=4000"`
	NumShares             int64  `json:"num_shares" validate:"gt=0"`
	AggregateNominalValue Amount `json:"aggregate_nominal_value" validate:"gt=0"`
	Unrecognized          []byte `json:"-"`
}

// Capital is the statement of capital for one currency.
type Capital struct {
	Currency                   string  `json:"currency" validate:"required,iso4217"`
	TotalNumberOfShares        int64   `json:"total_number_of_shares" validate:"gt=0"`
	TotalAggregateNominalValue Amount  `json:"total_aggregate_nominal_value" validate:"gt=0"`
	TotalAmountUnpaid          Amount  `json:"total_amount_unpaid,omitempty" validate:"gte=0"`
	Shares                     []Share `json:"shares" validate:"min=1,dive"`
	Unrecognized               []byte  `json:"-"`
}

// NewCapital builds a statement of capital whose totals are derived from
// the share classes.
func NewCapital(currency string, unpaid Amount, shares ...Share) (Capital, error) {
	c := Capital{Currency: currency, TotalAmountUnpaid: unpaid, Shares: shares}
	for _, s := range shares {
		c.TotalNumberOfShares += s.NumShares
		c.TotalAggregateNominalValue += s.AggregateNominalValue
	}
	if err := sectionError("statement_of_capital", &c, nil); err != nil {
		return Capital{}, err
	}
	return c, nil
}

// Reconcile reports totals that do not match the share classes.
func (c *Capital) Reconcile() []Problem {
	var shares int64
	var nominal Amount
	for _, s := range c.Shares {
		shares += s.NumShares
		nominal += s.AggregateNominalValue
	}
	var out []Problem
	if shares != c.TotalNumberOfShares {
		out = append(out, Problem{
			Path:    "total_number_of_shares",
			Code:    CodeTotalMismatch,
			Message: fmt.Sprintf("share classes total %d, statement says %d", shares, c.TotalNumberOfShares),
		})
	}
	if nominal != c.TotalAggregateNominalValue {
		out = append(out, Problem{
			Path:    "total_aggregate_nominal_value",
			Code:    CodeTotalMismatch,
			Message: fmt.Sprintf("share classes total %s, statement says %s", nominal, c.TotalAggregateNominalValue),
		})
	}
	return out
}

// Allotment is the shares a subscriber takes on formation.
type Allotment struct {
	ShareClass            string `json:"share_class" validate:"required,max=50"`
	NumShares             int64  `json:"num_shares" validate:"gt=0"`
	AmountPaidDuePerShare Amount `json:"amount_paid_due_per_share" validate:"gte=0"`
	AmountUnpaidPerShare  Amount `json:"amount_unpaid_per_share,omitempty" validate:"gte=0"`
	ShareCurrency         string `json:"share_currency" validate:"required,iso4217"`
	ShareValue            Amount `json:"share_value" validate:"gt=0"`
	Unrecognized          []byte `json:"-"`
}

// NominalValue is the aggregate nominal value of the allotment.
func (a Allotment) NominalValue() Amount { return a.ShareValue.Times(a.NumShares) }

// IncorporationPerson identifies a subscriber, guarantor or signatory. A
// non-empty CorporateName marks a body corporate acting through Name.
type IncorporationPerson struct {
	Name           PersonName         `json:"name"`
	CorporateName  string             `json:"corporate_name,omitempty" validate:"max=160"`
	Address        BaseAddress        `json:"address"`
	Authentication PersonalAttributes `json:"authentication" validate:"len=3"`
	MemberClass    string             `json:"member_class,omitempty" validate:"max=50"`
	Unrecognized   []byte             `json:"-"`
}

func (p *IncorporationPerson) Check() []Problem {
	return under("authentication", p.Authentication.Check())
}

// Subscriber is a founding member who signs the memorandum.
type Subscriber struct {
	Person              IncorporationPerson `json:"person"`
	Allotments          []Allotment         `json:"allotments" validate:"min=1,dive"`
	MemorandumStatement MemorandumStatement `json:"memorandum_statement" validate:"enum"`
	Unrecognized        []byte              `json:"-"`
}

func NewSubscriber(person IncorporationPerson, statement MemorandumStatement, allotments ...Allotment) (Subscriber, error) {
	s := Subscriber{Person: person, Allotments: allotments, MemorandumStatement: statement}
	if err := sectionError("subscriber", &s, s.Person.Check()); err != nil {
		return Subscriber{}, err
	}
	return s, nil
}

// Guarantor is a member of a company limited by guarantee.
type Guarantor struct {
	Person              IncorporationPerson `json:"person"`
	AmountGuaranteed    Amount              `json:"amount_guaranteed" validate:"gt=0"`
	MemorandumStatement MemorandumStatement `json:"memorandum_statement" validate:"enum"`
	Unrecognized        []byte              `json:"-"`
}

// Signatory is one person signing on behalf of an authorizer.
type Signatory struct {
	Name           PersonName         `json:"name"`
	CorporateName  string             `json:"corporate_name,omitempty" validate:"max=160"`
	Authentication PersonalAttributes `json:"authentication" validate:"len=3"`
	Unrecognized   []byte             `json:"-"`
}

// Authorizer is whoever signs the incorporation: an agent (who also gives
// an address), a solicitor, a member, or the subscribers jointly.
type Authorizer struct {
	Kind         AuthorizerKind `json:"kind" validate:"enum"`
	Signatories  []Signatory    `json:"signatories" validate:"min=1,dive"`
	AgentAddress *BaseAddress   `json:"agent_address,omitempty" validate:"required_if=Kind 1"`
	Unrecognized []byte         `json:"-"`
}

func (a *Authorizer) Check() []Problem {
	var out []Problem
	if a.Kind != AuthorizerKindSubscribers && len(a.Signatories) > 1 {
		out = append(out, Problem{Path: "signatories", Code: CodeInvalidCount, Message: "only subscribers may sign jointly"})
	}
	if a.Kind != AuthorizerKindAgent && a.AgentAddress != nil {
		out = append(out, conflict("agent_address", "kind "+a.Kind.String()))
	}
	for i := range a.Signatories {
		out = append(out, under(index("signatories", i), a.Signatories[i].Authentication.Check())...)
	}
	return out
}

func NewAuthorizer(kind AuthorizerKind, agentAddress *BaseAddress, signatories ...Signatory) (Authorizer, error) {
	a := Authorizer{Kind: kind, Signatories: signatories, AgentAddress: agentAddress}
	if err := sectionError("authorizer", &a, a.Check()); err != nil {
		return Authorizer{}, err
	}
	return a, nil
}
