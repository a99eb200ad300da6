package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/credimport/models"
)

// headerDenylist rejects sub-header text that names a report section
// rather than a tradeline. Multi-word entries match as substrings,
// single words only on equality, so a real creditor containing a common
// word is not dropped.
var headerDenylist = []string{
	"account history",
	"payment history",
	"two-year payment history",
	"credit inquiries",
	"inquiries",
	"collections",
	"public records",
	"public information",
	"creditor contacts",
	"consumer statement",
	"personal information",
	"credit score",
	"summary",
	"score",
}

var origCreditorRe = regexp.MustCompile(`(?i)\(\s*original\s+creditor:?\s*([^)]*)\)`)

// validCreditorName rejects section headers and template placeholder
// artifacts (client-rendered DOMs leave "{{item.name}}"-style fragments
// behind in hidden templates).
func validCreditorName(name string) bool {
	if name == "" || len(name) > 80 {
		return false
	}
	if strings.Contains(name, "{{") || strings.Contains(name, "}}") {
		return false
	}
	lower := strings.ToLower(name)
	for _, entry := range headerDenylist {
		if strings.Contains(entry, " ") {
			if strings.Contains(lower, entry) {
				return false
			}
		} else if lower == entry {
			return false
		}
	}
	return true
}

// extractAccounts walks the account-history section: each tradeline is
// announced by a sub-header naming the creditor, followed by a
// label/value data table and usually a 24-month history table.
func extractAccounts(doc *goquery.Document) []models.Account {
	section := findSection(doc, []string{"account history", "accounthistory", "account-history", "tradeline"})
	if section == nil {
		section = doc.Selection
	}

	var accounts []models.Account
	seen := make(map[string]struct{})

	section.Find("h3, h4, h5, caption, [class*='sub_header'], [class*='sub-header'], [class*='subheader']").Each(func(_ int, header *goquery.Selection) {
		name := cleanText(header)
		orig := ""
		if m := origCreditorRe.FindStringSubmatch(name); m != nil {
			orig = strings.TrimSpace(m[1])
			name = strings.TrimSpace(origCreditorRe.ReplaceAllString(name, ""))
		}
		if !validCreditorName(name) {
			return
		}

		acct := models.Account{Creditor: name, OriginalCreditor: orig}
		parsedData := false
		for _, table := range tablesAfter(header) {
			if isHistoryTable(table) {
				if len(acct.PaymentHistory) == 0 {
					acct.PaymentHistory = extractPaymentHistory(table)
				}
				continue
			}
			if !parsedData {
				parseAccountTable(&acct, table)
				parsedData = true
			}
		}
		if !parsedData && len(acct.PaymentHistory) == 0 {
			return
		}
		fillScalars(&acct)

		key := strings.ToLower(acct.Creditor)
		if acct.AccountNumber != "" {
			key += "|" + acct.AccountNumber
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		accounts = append(accounts, acct)
	})

	return accounts
}

// tablesAfter returns the candidate tables belonging to a tradeline
// sub-header: following sibling tables first, else tables inside the
// header's parent container.
func tablesAfter(header *goquery.Selection) []*goquery.Selection {
	var tables []*goquery.Selection
	header.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
		if sib.Is("h3, h4, h5, caption, [class*='sub_header'], [class*='sub-header'], [class*='subheader']") {
			return false // next tradeline starts here
		}
		if sib.Is("table") {
			tables = append(tables, sib)
		} else {
			sib.Find("table").Each(func(_ int, t *goquery.Selection) {
				tables = append(tables, t)
			})
		}
		return true
	})
	if len(tables) == 0 {
		header.Parent().Find("table").Each(func(_ int, t *goquery.Selection) {
			tables = append(tables, t)
		})
	}
	return tables
}

// parseAccountTable maps each data row's label onto the account's
// per-bureau records. Value cells are positional: 1st/2nd/3rd
// non-placeholder cell = transunion/experian/equifax.
func parseAccountTable(acct *models.Account, table *goquery.Selection) {
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row)
		if len(cells) < 2 {
			return
		}
		applyRow(acct, cells[0], presentValues(cells[1:]))
	})
}

// applyRow matches a row label against the known field vocabulary by
// substring. Order matters: "past due" and "credit limit" must be
// checked before the bare "balance"/"type" labels they contain.
func applyRow(acct *models.Account, label string, values []string) {
	if len(values) == 0 {
		return
	}
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "account #") || strings.Contains(l, "account number") || strings.Contains(l, "account no"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.AccountNumber = v })
	case strings.Contains(l, "credit limit") || strings.Contains(l, "high credit"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.CreditLimit = v })
	case strings.Contains(l, "past due"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.PastDue = v })
	case strings.Contains(l, "balance"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.Balance = v })
	case strings.Contains(l, "date opened") || strings.Contains(l, "opened"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.DateOpened = v })
	case strings.Contains(l, "30 day") || strings.Contains(l, "30 days"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.Late30 = v })
	case strings.Contains(l, "60 day") || strings.Contains(l, "60 days"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.Late60 = v })
	case strings.Contains(l, "90 day") || strings.Contains(l, "90 days"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.Late90 = v })
	case strings.Contains(l, "classification") || strings.Contains(l, "account type") || strings.Contains(l, "type"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.AccountType = v })
	case strings.Contains(l, "status") || strings.Contains(l, "condition"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.Status = v })
	case strings.Contains(l, "bureau code") || strings.Contains(l, "responsibility"):
		assignBureaus(acct, values, func(r *models.BureauRecord, v string) { r.Responsibility = v })
	}
}

func assignBureaus(acct *models.Account, values []string, set func(*models.BureauRecord, string)) {
	for i, v := range values {
		if i >= 3 {
			break
		}
		rec := acct.Record(i)
		rec.Present = true
		set(rec, v)
	}
}

// fillScalars copies the first reported bureau value into each scalar
// account field.
func fillScalars(acct *models.Account) {
	first := func(field func(*models.BureauRecord) string) string {
		for i := 0; i < 3; i++ {
			rec := acct.Record(i)
			if rec.Present {
				if v := field(rec); v != "" {
					return v
				}
			}
		}
		return ""
	}
	acct.AccountNumber = first(func(r *models.BureauRecord) string { return r.AccountNumber })
	acct.AccountType = first(func(r *models.BureauRecord) string { return r.AccountType })
	acct.Status = first(func(r *models.BureauRecord) string { return r.Status })
	acct.Balance = first(func(r *models.BureauRecord) string { return r.Balance })
	acct.CreditLimit = first(func(r *models.BureauRecord) string { return r.CreditLimit })
	acct.DateOpened = first(func(r *models.BureauRecord) string { return r.DateOpened })
	acct.PastDue = first(func(r *models.BureauRecord) string { return r.PastDue })
}

// isHistoryTable reports whether a table is the 24-month payment
// timeline: a row labeled "month" plus at least one bureau-labeled row.
func isHistoryTable(table *goquery.Selection) bool {
	if class, _ := table.Attr("class"); strings.Contains(strings.ToLower(class), "history") {
		return true
	}
	hasMonth, hasBureau := false, false
	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := cellTexts(row)
		if len(cells) == 0 {
			return true
		}
		label := strings.ToLower(cells[0])
		if strings.Contains(label, "month") {
			hasMonth = true
		}
		for _, b := range models.Bureaus {
			if strings.Contains(label, b) {
				hasBureau = true
			}
		}
		return !(hasMonth && hasBureau)
	})
	return hasMonth && hasBureau
}

// historyMonths caps the timeline at the report's 24-month window.
const historyMonths = 24

// extractPaymentHistory parses the history table keyed by row label:
// a month row, a year row, and one status row per bureau. Columns line
// up by index.
func extractPaymentHistory(table *goquery.Selection) []models.PaymentHistoryEntry {
	var months, years []string
	statuses := make(map[string][]string, 3)

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row)
		if len(cells) < 2 {
			return
		}
		label := strings.ToLower(cells[0])
		values := cells[1:]
		switch {
		case strings.Contains(label, "month"):
			months = values
		case strings.Contains(label, "year"):
			years = values
		default:
			for _, b := range models.Bureaus {
				if strings.Contains(label, b) {
					statuses[b] = values
					break
				}
			}
		}
	})

	n := len(months)
	if n > historyMonths {
		n = historyMonths
	}
	at := func(vals []string, i int) string {
		if i < len(vals) && !isPlaceholder(vals[i]) {
			return strings.TrimSpace(vals[i])
		}
		return ""
	}

	entries := make([]models.PaymentHistoryEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.PaymentHistoryEntry{
			Month:      at(months, i),
			Year:       at(years, i),
			TransUnion: at(statuses[models.BureauTransUnion], i),
			Experian:   at(statuses[models.BureauExperian], i),
			Equifax:    at(statuses[models.BureauEquifax], i),
		})
	}
	return entries
}
