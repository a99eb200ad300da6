package importer

import (
	"strconv"
	"strings"

	"github.com/go-rod/rod"
	"github.com/ysmood/gson"

	"github.com/use-agent/credimport/models"
	"github.com/use-agent/credimport/parser"
	"github.com/use-agent/credimport/profile"
	"github.com/use-agent/credimport/reconcile"
)

// MergeStrategy decides between the network-derived and DOM-derived
// account tracks. Sites with bespoke payloads can register their own.
type MergeStrategy func(network, dom []models.Account) []models.Account

// PreferNetwork is the default strategy: network payloads are higher
// fidelity and less markup-fragile, so they win whenever non-empty.
func PreferNetwork(network, dom []models.Account) []models.Account {
	if len(network) > 0 {
		return network
	}
	return dom
}

// accountCollectionKeys are the payload keys known to hold tradeline
// arrays, optionally nested under a reportData wrapper.
var accountCollectionKeys = []string{"tradelines", "accounts", "tradeLines", "creditAccounts"}

// Ordered synonym-key lists per account field.
var (
	creditorKeys      = []string{"creditorName", "creditor", "subscriberName", "accountName", "name"}
	accountNumberKeys = []string{"accountNumber", "accountNo", "maskedAccountNumber", "number"}
	accountTypeKeys   = []string{"accountType", "type", "loanType", "portfolioType"}
	statusKeys        = []string{"accountStatus", "status", "payStatus", "accountCondition"}
	balanceKeys       = []string{"balance", "currentBalance", "balanceAmount", "unpaidBalance"}
	creditLimitKeys   = []string{"creditLimit", "limit", "highCredit", "highBalance"}
	dateOpenedKeys    = []string{"dateOpened", "openDate", "openedDate", "dateOpen"}
	pastDueKeys       = []string{"pastDue", "pastDueAmount", "amountPastDue"}
)

// accountsFromCapture walks the captured payloads for known tradeline
// collections and maps each item through the synonym-key lists. Items
// with no resolvable creditor name are skipped.
func accountsFromCapture(responses []models.CapturedResponse) []models.Account {
	var out []models.Account
	for _, resp := range responses {
		root := gson.New(resp.Data)
		candidates := []gson.JSON{root}
		if wrapper := root.Get("reportData"); !wrapper.Nil() {
			candidates = append(candidates, wrapper)
		}
		for _, c := range candidates {
			for _, key := range accountCollectionKeys {
				arr := c.Get(key)
				if arr.Nil() {
					continue
				}
				for _, item := range arr.Arr() {
					if acct, ok := mapNetworkAccount(item); ok {
						out = append(out, acct)
					}
				}
			}
		}
	}
	return out
}

// mapNetworkAccount maps one payload item onto an Account via the
// ordered synonym-key lists.
func mapNetworkAccount(item gson.JSON) (models.Account, bool) {
	get := func(keys []string) string {
		for _, k := range keys {
			v := item.Get(k)
			if v.Nil() {
				continue
			}
			if s := jsonScalar(v); s != "" {
				return s
			}
		}
		return ""
	}

	creditor := get(creditorKeys)
	if creditor == "" {
		return models.Account{}, false
	}
	return models.Account{
		Creditor:      creditor,
		AccountNumber: get(accountNumberKeys),
		AccountType:   get(accountTypeKeys),
		Status:        get(statusKeys),
		Balance:       get(balanceKeys),
		CreditLimit:   get(creditLimitKeys),
		DateOpened:    get(dateOpenedKeys),
		PastDue:       get(pastDueKeys),
	}, true
}

// jsonScalar renders a payload leaf as a trimmed string. Numbers keep
// their literal form, everything non-scalar collapses to "".
func jsonScalar(v gson.JSON) string {
	switch x := v.Val().(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}

// scoresFromLiveDOM is the relaxed DOM-evaluated fallback: scan every
// element with short text for the first three distinct in-range
// numbers, assigned positionally transunion/experian/equifax. Only the
// live path can run it; the offline parser stops at the raw-HTML
// heuristics.
func scoresFromLiveDOM(page *rod.Page) models.ScoreSet {
	var scores models.ScoreSet
	res, err := page.Eval(`() => {
		const found = [];
		const seen = new Set();
		for (const el of document.querySelectorAll('*')) {
			if (el.children.length > 0) continue;
			const text = (el.textContent || '').trim();
			if (text.length === 0 || text.length > 12) continue;
			const m = text.match(/\b(\d{3})\b/);
			if (!m) continue;
			const n = parseInt(m[1], 10);
			if (n < 300 || n > 850 || seen.has(n)) continue;
			seen.add(n);
			found.push(n);
			if (found.length === 3) break;
		}
		return found;
	}`)
	if err != nil {
		return scores
	}
	for i, v := range res.Value.Arr() {
		if i >= 3 {
			break
		}
		scores.Set(i, v.Int())
	}
	return scores
}

// extract combines the DOM and network tracks into the final report.
func (i *Importer) extract(rawHTML string, prof *profile.ServiceProfile, responses []models.CapturedResponse, page *rod.Page) *models.Report {
	report, err := parser.ParseReport(rawHTML, &parser.Options{
		ScoreCellSelectors: profile.SplitSelectors(prof.ScoreCellSelectors),
	})
	if err != nil {
		report = &models.Report{}
	}

	report.Accounts = i.merge(accountsFromCapture(responses), report.Accounts)
	report.Accounts = reconcile.DetectDiscrepancies(report.Accounts)

	if report.Scores.Empty() && page != nil {
		report.Scores = scoresFromLiveDOM(page)
	}
	return report
}
