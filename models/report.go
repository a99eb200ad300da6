package models

// Bureau identifiers used as keys throughout the report model.
const (
	BureauTransUnion = "transunion"
	BureauExperian   = "experian"
	BureauEquifax    = "equifax"
)

// Bureaus lists the three bureaus in the positional order report tables
// render them (1st/2nd/3rd value column).
var Bureaus = []string{BureauTransUnion, BureauExperian, BureauEquifax}

// Score range accepted for any bureau score. Three-digit tokens outside
// this range are never treated as scores.
const (
	ScoreMin = 300
	ScoreMax = 850
)

// ScoreSet holds the tri-bureau scores. A zero value means the bureau
// did not report a score.
type ScoreSet struct {
	TransUnion int `json:"transunion,omitempty"`
	Experian   int `json:"experian,omitempty"`
	Equifax    int `json:"equifax,omitempty"`
}

// Empty reports whether no bureau supplied a score.
func (s ScoreSet) Empty() bool {
	return s.TransUnion == 0 && s.Experian == 0 && s.Equifax == 0
}

// Set assigns a score by positional index (0=TransUnion, 1=Experian,
// 2=Equifax). Out-of-range values are dropped.
func (s *ScoreSet) Set(idx, value int) {
	if value < ScoreMin || value > ScoreMax {
		return
	}
	switch idx {
	case 0:
		s.TransUnion = value
	case 1:
		s.Experian = value
	case 2:
		s.Equifax = value
	}
}

// BureauRecord is one bureau's view of a tradeline. Present is true iff
// the bureau reported the account with at least one non-placeholder value.
type BureauRecord struct {
	Present        bool   `json:"present"`
	AccountNumber  string `json:"accountNumber,omitempty"`
	AccountType    string `json:"accountType,omitempty"`
	Status         string `json:"status,omitempty"`
	Balance        string `json:"balance,omitempty"`
	CreditLimit    string `json:"creditLimit,omitempty"`
	DateOpened     string `json:"dateOpened,omitempty"`
	PastDue        string `json:"pastDue,omitempty"`
	Late30         string `json:"late30,omitempty"`
	Late60         string `json:"late60,omitempty"`
	Late90         string `json:"late90,omitempty"`
	Responsibility string `json:"responsibility,omitempty"`
}

// PaymentHistoryEntry is one month of the 24-month payment timeline.
// Status codes are the raw report codes: "OK", "30", "60", "90", "120",
// "150", "180". Empty means the bureau reported nothing for the month.
type PaymentHistoryEntry struct {
	Month      string `json:"month"`
	Year       string `json:"year"`
	TransUnion string `json:"transunion,omitempty"`
	Experian   string `json:"experian,omitempty"`
	Equifax    string `json:"equifax,omitempty"`
}

// Discrepancy records a field where at least two bureaus reported
// differing normalized values for the same account.
type Discrepancy struct {
	Field  string            `json:"field"`
	Values map[string]string `json:"values"`
}

// Account is a single tradeline merged across bureaus. The scalar fields
// hold the first reported value; the per-bureau records hold each
// bureau's own view.
type Account struct {
	Creditor         string `json:"creditor"`
	OriginalCreditor string `json:"originalCreditor,omitempty"`
	AccountNumber    string `json:"accountNumber,omitempty"`
	AccountType      string `json:"accountType,omitempty"`
	Status           string `json:"status,omitempty"`
	Balance          string `json:"balance,omitempty"`
	CreditLimit      string `json:"creditLimit,omitempty"`
	DateOpened       string `json:"dateOpened,omitempty"`
	PastDue          string `json:"pastDue,omitempty"`

	TransUnion BureauRecord `json:"transunion"`
	Experian   BureauRecord `json:"experian"`
	Equifax    BureauRecord `json:"equifax"`

	PaymentHistory []PaymentHistoryEntry `json:"paymentHistory,omitempty"`
	Discrepancies  []Discrepancy         `json:"discrepancies,omitempty"`
	HasDiscrepancy bool                  `json:"hasDiscrepancy"`
}

// Record returns the bureau record for the given positional index.
func (a *Account) Record(idx int) *BureauRecord {
	switch idx {
	case 0:
		return &a.TransUnion
	case 1:
		return &a.Experian
	case 2:
		return &a.Equifax
	}
	return nil
}

// BureauValues collects the named field from every bureau that reported
// a non-empty value, keyed by bureau id.
func (a *Account) BureauValues(field func(*BureauRecord) string) map[string]string {
	values := make(map[string]string, 3)
	for i, bureau := range Bureaus {
		rec := a.Record(i)
		if !rec.Present {
			continue
		}
		if v := field(rec); v != "" {
			values[bureau] = v
		}
	}
	return values
}

// Inquiry is a hard-inquiry row from the report's inquiries section.
type Inquiry struct {
	Creditor       string `json:"creditor"`
	TypeOfBusiness string `json:"typeOfBusiness,omitempty"`
	Date           string `json:"date,omitempty"`
	Bureau         string `json:"bureau,omitempty"`
}

// Collection is a row from the report's collections section.
type Collection struct {
	Agency           string `json:"agency"`
	OriginalCreditor string `json:"originalCreditor,omitempty"`
	Balance          string `json:"balance,omitempty"`
	Status           string `json:"status,omitempty"`
	DateAssigned     string `json:"dateAssigned,omitempty"`
}

// PublicRecord is a row from the report's public-records section.
type PublicRecord struct {
	Type      string `json:"type"`
	Status    string `json:"status,omitempty"`
	DateFiled string `json:"dateFiled,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Court     string `json:"court,omitempty"`
}

// Contact is a creditor contact row (name/address/phone) used by
// downstream letter generation.
type Contact struct {
	Creditor string `json:"creditor"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Report is the normalized output shape shared by the live extractor
// and the offline parser.
type Report struct {
	Scores        ScoreSet       `json:"scores"`
	Accounts      []Account      `json:"accounts"`
	Inquiries     []Inquiry      `json:"inquiries"`
	Collections   []Collection   `json:"collections"`
	PublicRecords []PublicRecord `json:"publicRecords"`
	Contacts      []Contact      `json:"contacts"`
}

// Analytics are the aggregate figures computed by the reconciler.
type Analytics struct {
	TotalBalance     float64 `json:"totalBalance"`
	TotalLimit       float64 `json:"totalLimit"`
	Utilization      float64 `json:"utilization"`
	PaymentScore     float64 `json:"paymentScore"`
	DiscrepancyCount int     `json:"discrepancyCount"`
}

// CapturedResponse is one intercepted JSON network payload retained
// during report viewing.
type CapturedResponse struct {
	URL  string `json:"url"`
	Data any    `json:"data"`
}

// Sidecar is the structured-data file saved beside a raw HTML snapshot
// by the live extraction path. Pointer slices distinguish "key absent"
// from "key present with an empty list"; a present-but-empty list is an
// authoritative "none found" and replaces parsed values on merge.
type Sidecar struct {
	Scores        *ScoreSet       `json:"scores,omitempty"`
	Accounts      []Account       `json:"accounts,omitempty"`
	Inquiries     *[]Inquiry      `json:"inquiries,omitempty"`
	Collections   *[]Collection   `json:"collections,omitempty"`
	PublicRecords *[]PublicRecord `json:"publicRecords,omitempty"`
	Contacts      *[]Contact      `json:"contacts,omitempty"`
}
