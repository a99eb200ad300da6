// Package reconcile merges sidecar JSON with freshly parsed report data
// and computes per-account discrepancies and aggregate analytics.
package reconcile

import (
	"github.com/use-agent/credimport/models"
)

// MergeSidecar combines a parsed report with its sidecar JSON. The
// input report is not mutated; the merge builds a fresh copy.
//
// Precedence rules:
//   - sidecar per-bureau scores overwrite parsed scores only where
//     non-empty;
//   - sidecar accounts fully replace parsed accounts only when at least
//     one sidecar account carries a non-empty payment history (the
//     signal that the sidecar came from the richer live-capture path);
//   - sidecar inquiries/collections/public-records/contacts replace
//     parsed values whenever the key is present at all, including as an
//     empty list (an authoritative "none found").
func MergeSidecar(report *models.Report, sidecar *models.Sidecar) *models.Report {
	merged := *report
	if sidecar == nil {
		return &merged
	}

	if sidecar.Scores != nil {
		if sidecar.Scores.TransUnion != 0 {
			merged.Scores.TransUnion = sidecar.Scores.TransUnion
		}
		if sidecar.Scores.Experian != 0 {
			merged.Scores.Experian = sidecar.Scores.Experian
		}
		if sidecar.Scores.Equifax != 0 {
			merged.Scores.Equifax = sidecar.Scores.Equifax
		}
	}

	if sidecarAccountsAuthoritative(sidecar.Accounts) {
		merged.Accounts = sidecar.Accounts
	}

	if sidecar.Inquiries != nil {
		merged.Inquiries = *sidecar.Inquiries
	}
	if sidecar.Collections != nil {
		merged.Collections = *sidecar.Collections
	}
	if sidecar.PublicRecords != nil {
		merged.PublicRecords = *sidecar.PublicRecords
	}
	if sidecar.Contacts != nil {
		merged.Contacts = *sidecar.Contacts
	}

	return &merged
}

// sidecarAccountsAuthoritative reports whether the sidecar account list
// should replace the parsed one: at least one account with a non-empty
// payment-history timeline.
func sidecarAccountsAuthoritative(accounts []models.Account) bool {
	for _, a := range accounts {
		if len(a.PaymentHistory) > 0 {
			return true
		}
	}
	return false
}
