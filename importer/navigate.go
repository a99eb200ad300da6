package importer

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/use-agent/credimport/config"
	"github.com/use-agent/credimport/parser"
	"github.com/use-agent/credimport/profile"
)

// flow is one per-site navigation strategy. The set is closed; the
// profile table rejects unknown flow ids at load time.
type flow interface {
	run(n *navigator, prof *profile.ServiceProfile)
}

var flows = map[profile.FlowID]flow{
	profile.FlowGeneric:   genericFlow{},
	profile.FlowReportURL: reportURLFlow{},
	profile.FlowDashboard: dashboardFlow{},
}

// navigator wraps the page with the bounded-timeout knobs every flow
// shares. All flow work is best-effort and never throws: a failed step
// degrades to "extract whatever rendered".
type navigator struct {
	page *rod.Page
	cfg  config.ImporterConfig
}

// navigateToReport drives the profile's flow, then runs the shared
// scroll pass that triggers lazy-loaded report sections.
func (i *Importer) navigateToReport(page *rod.Page, prof *profile.ServiceProfile) {
	n := &navigator{page: page, cfg: i.cfg}
	if f, ok := flows[prof.Flow]; ok {
		f.run(n, prof)
	}
	n.scrollUntilStable()
}

// Generic report-link candidates tried after the profile's own.
var genericReportLinks = []string{
	"a[href*='credit-report']",
	"a[href*='CreditReport']",
	"a[href*='creditreport']",
	"a[href*='report']",
}

// genericFlow clicks the first matching report link and waits for the
// network to go idle.
type genericFlow struct{}

func (genericFlow) run(n *navigator, prof *profile.ServiceProfile) {
	selectors := append(profile.SplitSelectors(prof.ReportLinkSelectors), genericReportLinks...)
	for _, sel := range selectors {
		el, err := n.page.Timeout(n.cfg.FieldTimeout).Sleeper(rod.NotFoundSleeper).Element(sel)
		if err != nil || el == nil {
			continue
		}
		wait := n.page.Timeout(n.cfg.LoginWait).WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			slog.Debug("navigate: report link click failed", "selector", sel, "error", err)
			continue
		}
		wait()
		return
	}
	slog.Warn("navigate: no report link matched", "service", prof.ID)
}

// reportURLFlow navigates straight to the known report URL and polls
// known score cells until at least three in-range score tokens render.
type reportURLFlow struct{}

func (reportURLFlow) run(n *navigator, prof *profile.ServiceProfile) {
	target := prof.ReportURL
	if target == "" {
		target = prof.PostLoginURL
	}
	if err := n.page.Navigate(target); err != nil {
		slog.Warn("navigate: report url failed", "service", prof.ID, "error", err)
		return
	}
	_ = n.page.Timeout(n.cfg.LoginWait).WaitLoad()

	selectors := profile.SplitSelectors(prof.ScoreCellSelectors)
	for try := 0; try < n.cfg.ScorePollRetries; try++ {
		if n.countScoreTokens(selectors) >= 3 {
			return
		}
		time.Sleep(n.cfg.ScorePollInterval)
	}
}

// conventionalReportPaths are path suffixes dashboard-first sites tend
// to serve the report under.
var conventionalReportPaths = []string{
	"/member/credit-report",
	"/credit-report",
	"/dashboard/report",
	"/member/report",
	"/report",
}

var reportLinkTexts = []string{
	"credit report",
	"view report",
	"3b report",
	"report & scores",
	"my report",
}

// dashboardFlow has no fixed URL: it tries link-text heuristics, then
// conventional path suffixes, accepting the first page with
// credit-related text or in-range numbers, then polls the full page
// text markup-agnostically.
type dashboardFlow struct{}

func (dashboardFlow) run(n *navigator, prof *profile.ServiceProfile) {
	if !n.clickReportLinkByText() {
		n.tryConventionalPaths()
	}
	for try := 0; try < n.cfg.ScorePollRetries; try++ {
		if len(parser.ScoreTokens(n.bodyText())) >= 3 {
			return
		}
		time.Sleep(n.cfg.ScorePollInterval)
	}
}

// clickReportLinkByText finds an anchor whose text contains one of the
// known report-link phrases and clicks it.
func (n *navigator) clickReportLinkByText() bool {
	res, err := n.page.Timeout(n.cfg.FieldTimeout).Eval(`(texts) => {
		const anchors = Array.from(document.querySelectorAll('a'));
		for (const t of texts) {
			const a = anchors.find(el => (el.innerText || '').toLowerCase().includes(t));
			if (a) { a.click(); return true; }
		}
		return false;
	}`, reportLinkTexts)
	if err != nil || !res.Value.Bool() {
		return false
	}
	_ = n.page.Timeout(n.cfg.LoginWait).WaitLoad()
	return true
}

// tryConventionalPaths walks the suffix list against the current
// origin, stopping at the first page that looks like a report.
func (n *navigator) tryConventionalPaths() {
	current, err := url.Parse(n.currentURL())
	if err != nil || current.Host == "" {
		return
	}
	origin := current.Scheme + "://" + current.Host
	for _, suffix := range conventionalReportPaths {
		if err := n.page.Navigate(origin + suffix); err != nil {
			continue
		}
		_ = n.page.Timeout(n.cfg.LoginWait).WaitLoad()
		text := n.bodyText()
		if creditRelated(text) || len(parser.ScoreTokens(text)) > 0 {
			return
		}
	}
}

func creditRelated(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range []string{"credit report", "transunion", "experian", "equifax"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// countScoreTokens counts in-range score tokens inside the given cells.
func (n *navigator) countScoreTokens(selectors []string) int {
	count := 0
	for _, sel := range selectors {
		els, err := n.page.Timeout(n.cfg.FieldTimeout).Sleeper(rod.NotFoundSleeper).Elements(sel)
		if err != nil {
			continue
		}
		for _, el := range els {
			text, err := el.Text()
			if err != nil {
				continue
			}
			count += len(parser.ScoreTokens(text))
		}
	}
	return count
}

// scrollUntilStable scrolls to the bottom repeatedly until the page
// height stops growing, bounded by the configured pass count. Report
// sections below the fold often lazy-load on scroll.
func (n *navigator) scrollUntilStable() {
	last := -1
	for pass := 0; pass < n.cfg.ScrollPasses; pass++ {
		res, err := n.page.Timeout(n.cfg.FieldTimeout).Eval(
			`() => { window.scrollTo(0, document.body.scrollHeight); return document.body.scrollHeight; }`)
		if err != nil {
			return
		}
		height := res.Value.Int()
		if height == last {
			return
		}
		last = height
		time.Sleep(n.cfg.ScrollInterval)
	}
}

func (n *navigator) bodyText() string {
	return evalString(n.page, `() => document.body ? document.body.innerText : ''`)
}

func (n *navigator) currentURL() string {
	return evalString(n.page, `() => window.location.href`)
}
