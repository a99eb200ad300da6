// Package parser is the DOM/HTML track of the extraction pipeline. It
// runs the same heuristics against a freshly rendered page snapshot and
// against a saved one, so live imports and offline reprocessing share a
// single implementation.
//
// Everything here is best-effort: a missing section is an expected
// cross-site variation and yields an empty slice, never an error.
package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/credimport/models"
)

// Options tune the parse to a specific site.
type Options struct {
	// ScoreCellSelectors are site-specific score cell selectors tried
	// before the generic heuristics.
	ScoreCellSelectors []string
}

// ParseReport extracts the normalized report record from rendered or
// saved markup. It returns an error only when the markup cannot be
// parsed as HTML at all; partial extraction is a success.
func ParseReport(rawHTML string, opts *Options) (*models.Report, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse report html: %w", err)
	}

	var scoreCells []string
	if opts != nil {
		scoreCells = opts.ScoreCellSelectors
	}

	report := &models.Report{
		Scores:    extractScores(doc, rawHTML, scoreCells),
		Accounts:  extractAccounts(doc),
		Inquiries: extractInquiries(doc),
		Contacts:  extractContacts(doc),
	}

	// Collections and public records are gated on the report's own
	// summary counts: a stated zero means hidden template fragments
	// elsewhere in the DOM must not be read as records.
	counts := extractSummaryCounts(doc)
	if !counts.collectionsFound || counts.collections > 0 {
		report.Collections = extractCollections(doc)
	}
	if !counts.publicRecordsFound || counts.publicRecords > 0 {
		report.PublicRecords = extractPublicRecords(doc)
	}

	return report, nil
}
