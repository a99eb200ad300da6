package reconcile

import (
	"testing"

	"github.com/use-agent/credimport/models"
)

func acctWithBalances(tu, ex, eq string) models.Account {
	a := models.Account{Creditor: "TEST BANK"}
	if tu != "" {
		a.TransUnion = models.BureauRecord{Present: true, Balance: tu}
	}
	if ex != "" {
		a.Experian = models.BureauRecord{Present: true, Balance: ex}
	}
	if eq != "" {
		a.Equifax = models.BureauRecord{Present: true, Balance: eq}
	}
	return a
}

func TestDetectDiscrepancies_AgreementIsClean(t *testing.T) {
	out := DetectDiscrepancies([]models.Account{acctWithBalances("$100", "$100", "")})
	if out[0].HasDiscrepancy || len(out[0].Discrepancies) != 0 {
		t.Errorf("agreeing bureaus flagged: %+v", out[0].Discrepancies)
	}
}

func TestDetectDiscrepancies_DisagreementFlagged(t *testing.T) {
	out := DetectDiscrepancies([]models.Account{acctWithBalances("$100", "$150", "")})
	if !out[0].HasDiscrepancy {
		t.Fatal("differing balances not flagged")
	}
	if len(out[0].Discrepancies) != 1 {
		t.Fatalf("expected exactly 1 discrepancy, got %d", len(out[0].Discrepancies))
	}
	d := out[0].Discrepancies[0]
	if d.Field != "Balance" {
		t.Errorf("field = %q, want Balance", d.Field)
	}
	if d.Values[models.BureauTransUnion] != "$100" || d.Values[models.BureauExperian] != "$150" {
		t.Errorf("values = %+v", d.Values)
	}
}

func TestDetectDiscrepancies_SingleBureauNeverDiscrepant(t *testing.T) {
	out := DetectDiscrepancies([]models.Account{acctWithBalances("$100", "", "")})
	if out[0].HasDiscrepancy {
		t.Error("single reporting bureau cannot be discrepant")
	}
}

func TestDetectDiscrepancies_CurrencyNormalization(t *testing.T) {
	// "$1,500" and "1500" are the same amount rendered differently.
	out := DetectDiscrepancies([]models.Account{acctWithBalances("$1,500", "1500", "$1500")})
	if out[0].HasDiscrepancy {
		t.Errorf("equivalent amounts flagged as discrepant: %+v", out[0].Discrepancies)
	}
}

func TestDetectDiscrepancies_MultipleFields(t *testing.T) {
	a := models.Account{
		Creditor:   "TEST BANK",
		TransUnion: models.BureauRecord{Present: true, Balance: "$100", CreditLimit: "$500", DateOpened: "01/2020"},
		Experian:   models.BureauRecord{Present: true, Balance: "$200", CreditLimit: "$500", DateOpened: "02/2020"},
	}
	out := DetectDiscrepancies([]models.Account{a})
	if len(out[0].Discrepancies) != 2 {
		t.Fatalf("expected 2 discrepancies (Balance, Date Opened), got %+v", out[0].Discrepancies)
	}
	fields := map[string]bool{}
	for _, d := range out[0].Discrepancies {
		fields[d.Field] = true
	}
	if !fields["Balance"] || !fields["Date Opened"] || fields["Credit Limit"] {
		t.Errorf("wrong fields flagged: %v", fields)
	}
}

func TestDetectDiscrepancies_ResetsPriorFlags(t *testing.T) {
	a := acctWithBalances("$100", "$100", "")
	a.HasDiscrepancy = true
	a.Discrepancies = []models.Discrepancy{{Field: "Balance"}}

	out := DetectDiscrepancies([]models.Account{a})
	if out[0].HasDiscrepancy || len(out[0].Discrepancies) != 0 {
		t.Errorf("stale flags survived re-detection: %+v", out[0])
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"$1,500", "1500"},
		{" 1500 ", "1500"},
		{"$0", "0"},
		{"01/2020", "01/2020"},
	}
	for _, tt := range tests {
		if got := normalizeCurrency(tt.in); got != tt.want {
			t.Errorf("normalizeCurrency(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
