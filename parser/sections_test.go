package parser

import (
	"testing"
)

func TestParseReport_SummaryZeroSuppressesCollections(t *testing.T) {
	report, err := ParseReport(`
		<div id="summary">
			<table>
				<tr><td>Collections:</td><td>0</td></tr>
				<tr><td>Public Records:</td><td>0</td></tr>
			</table>
		</div>
		<div class="collections">
			<table>
				<tr><th>Agency</th><th>Original Creditor</th></tr>
				<tr><td>{{ item.agency }}</td><td>{{ item.creditor }}</td></tr>
			</table>
		</div>`, nil)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}

	if len(report.Collections) != 0 {
		t.Errorf("summary says zero collections but %d extracted: %+v",
			len(report.Collections), report.Collections)
	}
	if len(report.PublicRecords) != 0 {
		t.Errorf("summary says zero public records but %d extracted", len(report.PublicRecords))
	}
}

func TestParseReport_SummaryCountAllowsCollections(t *testing.T) {
	report, err := ParseReport(`
		<div id="summary">
			<table><tr><td>Collections:</td><td>1</td></tr></table>
		</div>
		<div class="collections">
			<table>
				<tr><th>Agency</th><th>Original Creditor</th><th>Balance</th><th>Status</th></tr>
				<tr><td>PORTFOLIO RECOVERY</td><td>SYNCHRONY BANK</td><td>$842</td><td>Unpaid</td></tr>
			</table>
		</div>`, nil)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}

	if len(report.Collections) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(report.Collections))
	}
	col := report.Collections[0]
	if col.Agency != "PORTFOLIO RECOVERY" || col.OriginalCreditor != "SYNCHRONY BANK" ||
		col.Balance != "$842" || col.Status != "Unpaid" {
		t.Errorf("collection = %+v", col)
	}
}

func TestParseReport_NoSummaryExtractsCollections(t *testing.T) {
	// Without a summary section there is no count to gate on, so the
	// collections scan runs.
	report, err := ParseReport(`
		<div class="collections">
			<table>
				<tr><td>MIDLAND CREDIT</td><td>T-MOBILE</td><td>$120</td></tr>
			</table>
		</div>`, nil)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if len(report.Collections) != 1 {
		t.Errorf("expected 1 collection without a summary gate, got %d", len(report.Collections))
	}
}

func TestExtractInquiries(t *testing.T) {
	doc := docFrom(t, `
		<div id="inquiries">
			<table>
				<tr><th>Creditor</th><th>Type of Business</th><th>Date</th><th>Bureau</th></tr>
				<tr><td>TOYOTA FINANCIAL</td><td>Auto Financing</td><td>03/12/2026</td><td>Experian</td></tr>
				<tr><td>-</td><td>-</td><td>-</td><td>-</td></tr>
			</table>
		</div>`)

	inquiries := extractInquiries(doc)
	if len(inquiries) != 1 {
		t.Fatalf("expected 1 inquiry, got %d: %+v", len(inquiries), inquiries)
	}
	inq := inquiries[0]
	if inq.Creditor != "TOYOTA FINANCIAL" || inq.TypeOfBusiness != "Auto Financing" ||
		inq.Date != "03/12/2026" || inq.Bureau != "Experian" {
		t.Errorf("inquiry = %+v", inq)
	}
}

func TestExtractInquiries_NoSection(t *testing.T) {
	doc := docFrom(t, `<p>nothing here</p>`)
	if got := extractInquiries(doc); got != nil {
		t.Errorf("expected nil for missing section, got %+v", got)
	}
}

func TestExtractContacts(t *testing.T) {
	doc := docFrom(t, `
		<div class="creditorcontacts">
			<table>
				<tr><th>Creditor</th><th>Address</th><th>Phone</th></tr>
				<tr><td>CAPITAL ONE</td><td>PO BOX 31293 SALT LAKE CITY UT 84131</td><td>(800) 955-7070</td></tr>
			</table>
		</div>`)

	contacts := extractContacts(doc)
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	c := contacts[0]
	if c.Creditor != "CAPITAL ONE" || c.Phone != "(800) 955-7070" {
		t.Errorf("contact = %+v", c)
	}
}

func TestExtractPublicRecords(t *testing.T) {
	doc := docFrom(t, `
		<div id="publicrecords">
			<table>
				<tr><td>Chapter 7 Bankruptcy</td><td>Discharged</td><td>05/2023</td><td>$0</td><td>US Bankruptcy Court</td></tr>
			</table>
		</div>`)

	records := extractPublicRecords(doc)
	if len(records) != 1 {
		t.Fatalf("expected 1 public record, got %d", len(records))
	}
	rec := records[0]
	if rec.Type != "Chapter 7 Bankruptcy" || rec.Status != "Discharged" ||
		rec.Court != "US Bankruptcy Court" {
		t.Errorf("public record = %+v", rec)
	}
}

func TestExtractSummaryCounts(t *testing.T) {
	doc := docFrom(t, `
		<div class="report_summary">
			<table>
				<tr><td>Open Accounts:</td><td>7</td><td>6</td><td>7</td></tr>
				<tr><td>Collections:</td><td>2</td></tr>
				<tr><td>Public Records:</td><td>0</td></tr>
			</table>
		</div>`)

	counts := extractSummaryCounts(doc)
	if !counts.collectionsFound || counts.collections != 2 {
		t.Errorf("collections = %d (found=%v), want 2", counts.collections, counts.collectionsFound)
	}
	if !counts.publicRecordsFound || counts.publicRecords != 0 {
		t.Errorf("public records = %d (found=%v), want 0", counts.publicRecords, counts.publicRecordsFound)
	}
}

func TestIsPlaceholder(t *testing.T) {
	for _, v := range []string{"", "-", "--", "n/a", "N/A", "  -  "} {
		if !isPlaceholder(v) {
			t.Errorf("isPlaceholder(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"$0", "0", "OK", "Open"} {
		if isPlaceholder(v) {
			t.Errorf("isPlaceholder(%q) = true, want false", v)
		}
	}
}
