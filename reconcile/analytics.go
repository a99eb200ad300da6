package reconcile

import (
	"strconv"

	"github.com/use-agent/credimport/models"
)

// lateCodes are the payment-history codes counted as late.
var lateCodes = map[string]struct{}{
	"30": {}, "60": {}, "90": {}, "120": {}, "150": {}, "180": {},
}

// ComputeAnalytics derives the aggregate figures from the (already
// discrepancy-checked) account list.
//
// Utilization is totalBalance/totalLimit×100, 0 when totalLimit is 0.
// Payment score is onTime/total×100 over all payment-history entries;
// an entry with no status in any bureau column is excluded from the
// denominator, an entry with any late code counts late, otherwise it
// counts on-time.
func ComputeAnalytics(accounts []models.Account) models.Analytics {
	var a models.Analytics
	var onTime, total int

	for _, acct := range accounts {
		a.TotalBalance += parseAmount(acct.Balance)
		a.TotalLimit += parseAmount(acct.CreditLimit)
		if acct.HasDiscrepancy {
			a.DiscrepancyCount++
		}

		for _, entry := range acct.PaymentHistory {
			statuses := []string{entry.TransUnion, entry.Experian, entry.Equifax}
			reported, late := false, false
			for _, s := range statuses {
				if s == "" {
					continue
				}
				reported = true
				if _, isLate := lateCodes[s]; isLate {
					late = true
				}
			}
			if !reported {
				continue
			}
			total++
			if !late {
				onTime++
			}
		}
	}

	if a.TotalLimit > 0 {
		a.Utilization = a.TotalBalance / a.TotalLimit * 100
	}
	if total > 0 {
		a.PaymentScore = float64(onTime) / float64(total) * 100
	}
	return a
}

// parseAmount reads a currency string ("$1,234.56") as a float,
// returning 0 for anything unparseable.
func parseAmount(v string) float64 {
	n, err := strconv.ParseFloat(normalizeCurrency(v), 64)
	if err != nil {
		return 0
	}
	return n
}
