package reconcile

import (
	"strings"

	"github.com/use-agent/credimport/models"
)

// discrepancyFields are the per-account fields compared across bureaus.
var discrepancyFields = []struct {
	name  string
	value func(*models.BureauRecord) string
}{
	{"Balance", func(r *models.BureauRecord) string { return r.Balance }},
	{"Credit Limit", func(r *models.BureauRecord) string { return r.CreditLimit }},
	{"Date Opened", func(r *models.BureauRecord) string { return r.DateOpened }},
}

// DetectDiscrepancies runs per-account discrepancy detection and
// returns fresh account copies with Discrepancies and HasDiscrepancy
// filled. Comparison only considers bureaus that supplied a value: a
// field reported by fewer than two bureaus can never be discrepant.
func DetectDiscrepancies(accounts []models.Account) []models.Account {
	out := make([]models.Account, len(accounts))
	for i, acct := range accounts {
		a := acct
		a.Discrepancies = nil
		a.HasDiscrepancy = false
		for _, field := range discrepancyFields {
			values := a.BureauValues(field.value)
			if len(values) < 2 {
				continue
			}
			if distinctNormalized(values) >= 2 {
				a.Discrepancies = append(a.Discrepancies, models.Discrepancy{
					Field:  field.name,
					Values: values,
				})
				a.HasDiscrepancy = true
			}
		}
		out[i] = a
	}
	return out
}

// distinctNormalized counts distinct values after currency
// normalization ("$1,500" and "1500" agree).
func distinctNormalized(values map[string]string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[normalizeCurrency(v)] = struct{}{}
	}
	return len(seen)
}

// normalizeCurrency strips "$", "," and surrounding whitespace so the
// same amount rendered differently by two bureaus compares equal.
func normalizeCurrency(v string) string {
	v = strings.TrimSpace(v)
	v = strings.ReplaceAll(v, "$", "")
	v = strings.ReplaceAll(v, ",", "")
	return strings.TrimSpace(v)
}
