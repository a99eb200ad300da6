package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/credimport/models"
)

// findSection locates a report section by id/class keyword, falling
// back to a heading whose text names the section. Returns nil when the
// section is absent (an expected cross-site variation).
func findSection(doc *goquery.Document, keywords []string) *goquery.Selection {
	for _, kw := range keywords {
		attr := strings.ReplaceAll(kw, " ", "")
		sel := doc.Find("[id*='" + attr + "'], [class*='" + attr + "']").First()
		if sel.Length() > 0 {
			return sel
		}
	}
	var found *goquery.Selection
	doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := strings.ToLower(cleanText(h))
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				found = h.Parent()
				return false
			}
		}
		return true
	})
	return found
}

// summaryCounts holds the category counts the report's own summary
// section states. Found flags distinguish "summary says zero" from
// "summary absent".
type summaryCounts struct {
	collections        int
	collectionsFound   bool
	publicRecords      int
	publicRecordsFound bool
}

// extractSummaryCounts reads the report summary table. These counts
// gate collection/public-record extraction: a stated zero suppresses
// the section scan entirely, so stale template fragments elsewhere in
// the document cannot produce false positives.
func extractSummaryCounts(doc *goquery.Document) summaryCounts {
	var counts summaryCounts
	section := findSection(doc, []string{"summary"})
	if section == nil {
		return counts
	}
	section.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row)
		if len(cells) < 2 {
			return
		}
		label := strings.ToLower(cells[0])
		n, ok := firstInt(cells[1:])
		if !ok {
			return
		}
		switch {
		case strings.Contains(label, "collection"):
			counts.collections = n
			counts.collectionsFound = true
		case strings.Contains(label, "public record"):
			counts.publicRecords = n
			counts.publicRecordsFound = true
		}
	})
	return counts
}

func firstInt(cells []string) (int, bool) {
	for _, c := range cells {
		if n, err := strconv.Atoi(strings.TrimSpace(c)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// isHeaderRow skips label rows ("Creditor", "Date", ...) at the top of
// section tables.
func isHeaderRow(row *goquery.Selection, cells []string) bool {
	if row.Find("th").Length() > 0 {
		return true
	}
	if len(cells) == 0 {
		return true
	}
	first := strings.ToLower(cells[0])
	return strings.Contains(first, "creditor") || strings.Contains(first, "agency") ||
		first == "type" || first == "name"
}

// extractInquiries reads the dedicated inquiries section's rows:
// creditor, type of business, date, bureau.
func extractInquiries(doc *goquery.Document) []models.Inquiry {
	section := findSection(doc, []string{"inquir"})
	if section == nil {
		return nil
	}
	var inquiries []models.Inquiry
	section.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row)
		if isHeaderRow(row, cells) || isPlaceholder(cells[0]) {
			return
		}
		inq := models.Inquiry{Creditor: cells[0]}
		if len(cells) > 1 {
			inq.TypeOfBusiness = cells[1]
		}
		if len(cells) > 2 {
			inq.Date = cells[2]
		}
		if len(cells) > 3 {
			inq.Bureau = cells[3]
		}
		inquiries = append(inquiries, inq)
	})
	return inquiries
}

// extractCollections reads the collections section's rows. Callers
// must apply the summary-count gate before invoking it.
func extractCollections(doc *goquery.Document) []models.Collection {
	section := findSection(doc, []string{"collection"})
	if section == nil {
		return nil
	}
	var collections []models.Collection
	section.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row)
		if isHeaderRow(row, cells) || isPlaceholder(cells[0]) {
			return
		}
		col := models.Collection{Agency: cells[0]}
		if len(cells) > 1 {
			col.OriginalCreditor = cells[1]
		}
		if len(cells) > 2 {
			col.Balance = cells[2]
		}
		if len(cells) > 3 {
			col.Status = cells[3]
		}
		if len(cells) > 4 {
			col.DateAssigned = cells[4]
		}
		collections = append(collections, col)
	})
	return collections
}

// extractPublicRecords reads the public-records section's rows. Gated
// by the summary count like collections.
func extractPublicRecords(doc *goquery.Document) []models.PublicRecord {
	section := findSection(doc, []string{"public record", "publicrecord", "public-record"})
	if section == nil {
		return nil
	}
	var records []models.PublicRecord
	section.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row)
		if isHeaderRow(row, cells) || isPlaceholder(cells[0]) {
			return
		}
		rec := models.PublicRecord{Type: cells[0]}
		if len(cells) > 1 {
			rec.Status = cells[1]
		}
		if len(cells) > 2 {
			rec.DateFiled = cells[2]
		}
		if len(cells) > 3 {
			rec.Amount = cells[3]
		}
		if len(cells) > 4 {
			rec.Court = cells[4]
		}
		records = append(records, rec)
	})
	return records
}

// extractContacts reads the creditor-contacts section used downstream
// for dispute letters: creditor, address, phone.
func extractContacts(doc *goquery.Document) []models.Contact {
	section := findSection(doc, []string{"creditor contact", "creditorcontact", "contact"})
	if section == nil {
		return nil
	}
	var contacts []models.Contact
	section.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row)
		if isHeaderRow(row, cells) || isPlaceholder(cells[0]) {
			return
		}
		c := models.Contact{Creditor: cells[0]}
		if len(cells) > 1 {
			c.Address = cells[1]
		}
		if len(cells) > 2 {
			c.Phone = cells[2]
		}
		contacts = append(contacts, c)
	})
	return contacts
}
