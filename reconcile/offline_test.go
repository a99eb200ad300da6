package reconcile

import (
	"os"
	"path/filepath"
	"testing"
)

const snapshotFixture = `
<div class="transunion_score">712</div>
<div class="experian_score">705</div>
<div class="equifax_score">698</div>
<div class="account-history">
	<h3>CAPITAL ONE</h3>
	<table>
		<tr><td>Balance:</td><td>$100</td><td>$150</td></tr>
	</table>
</div>`

func TestReparse_EndToEnd(t *testing.T) {
	report, analytics, err := Reparse(snapshotFixture, nil)
	if err != nil {
		t.Fatalf("Reparse: %v", err)
	}

	if report.Scores.TransUnion != 712 || report.Scores.Equifax != 698 {
		t.Errorf("scores = %+v", report.Scores)
	}
	if len(report.Accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(report.Accounts))
	}
	if !report.Accounts[0].HasDiscrepancy {
		t.Error("differing bureau balances should be flagged after reparse")
	}
	if analytics.DiscrepancyCount != 1 {
		t.Errorf("discrepancy count = %d, want 1", analytics.DiscrepancyCount)
	}
}

func TestReparseFile_AutoDiscoversSidecar(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "report.html")
	if err := os.WriteFile(htmlPath, []byte(snapshotFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	sidecarJSON := `{"scores": {"experian": 799}}`
	if err := os.WriteFile(filepath.Join(dir, "sidecar.json"), []byte(sidecarJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	report, _, err := ReparseFile(htmlPath, "")
	if err != nil {
		t.Fatalf("ReparseFile: %v", err)
	}
	if report.Scores.Experian != 799 {
		t.Errorf("sidecar score not merged: %+v", report.Scores)
	}
	if report.Scores.TransUnion != 712 {
		t.Errorf("parsed score lost in merge: %+v", report.Scores)
	}
}

func TestReparseFile_MissingSidecarIsFine(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "report.html")
	if err := os.WriteFile(htmlPath, []byte(snapshotFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	report, _, err := ReparseFile(htmlPath, "")
	if err != nil {
		t.Fatalf("ReparseFile without sidecar: %v", err)
	}
	if report.Scores.TransUnion != 712 {
		t.Errorf("scores = %+v", report.Scores)
	}
}

func TestReparseFile_MissingSnapshot(t *testing.T) {
	if _, _, err := ReparseFile(filepath.Join(t.TempDir(), "nope.html"), ""); err == nil {
		t.Error("expected error for missing snapshot")
	}
}

func TestLoadSidecar_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sidecar.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSidecar(path); err == nil {
		t.Error("expected error for malformed sidecar")
	}
}
