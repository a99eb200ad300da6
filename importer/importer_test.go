package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/use-agent/credimport/models"
	"github.com/use-agent/credimport/profile"
)

func TestImportReport_UnsupportedService(t *testing.T) {
	table, err := profile.NewTable()
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	// No browser: an unknown service must fail before any browser use.
	imp := &Importer{profiles: table, merge: PreferNetwork}

	result := imp.ImportReport(context.Background(), &models.ImportRequest{
		Service:  "unknownsite",
		Username: "alice",
		Password: "pw",
		ClientID: "c1",
	})

	if result.Success {
		t.Fatal("unknown service reported success")
	}
	if !strings.Contains(result.Error, "unknownsite") {
		t.Errorf("error should name the service, got %q", result.Error)
	}
	if result.Service != "unknownsite" || result.ClientID != "c1" {
		t.Errorf("request identity not echoed: %+v", result)
	}
	if imp.ActiveImports() != 0 {
		t.Errorf("active imports = %d after fail-fast, want 0", imp.ActiveImports())
	}
}

func TestExtract_CombinesTracksAndFlagsDiscrepancies(t *testing.T) {
	imp := &Importer{merge: PreferNetwork}
	prof := &profile.ServiceProfile{ID: "testsite"}

	rawHTML := `
		<div class="transunion_score">712</div>
		<div class="account-history">
			<h3>DOM BANK</h3>
			<table><tr><td>Balance:</td><td>$9</td></tr></table>
		</div>`
	responses := []models.CapturedResponse{
		capturedJSON(t, "https://site.example/api/report", `{
			"tradelines": [{"creditorName": "NETWORK BANK", "balance": 100}]
		}`),
	}

	report := imp.extract(rawHTML, prof, responses, nil)
	if len(report.Accounts) != 1 || report.Accounts[0].Creditor != "NETWORK BANK" {
		t.Errorf("network track should win: %+v", report.Accounts)
	}
	if report.Scores.TransUnion != 712 {
		t.Errorf("scores = %+v", report.Scores)
	}
}

func TestExtract_FallsBackToDOMAccounts(t *testing.T) {
	imp := &Importer{merge: PreferNetwork}
	prof := &profile.ServiceProfile{ID: "testsite"}

	rawHTML := `
		<div class="account-history">
			<h3>DOM BANK</h3>
			<table><tr><td>Balance:</td><td>$9</td></tr></table>
		</div>`

	report := imp.extract(rawHTML, prof, nil, nil)
	if len(report.Accounts) != 1 || report.Accounts[0].Creditor != "DOM BANK" {
		t.Errorf("expected DOM account fallback: %+v", report.Accounts)
	}
}
