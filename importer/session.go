package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/use-agent/credimport/models"
)

// ImportReport runs one full import attempt: Login → Navigate →
// Extract → persist artifacts. It never returns an error; the result
// always carries an explicit success flag and, on failure, a short
// human-readable message.
//
// Lifecycle:
//
//  1. Profile lookup      – unknown service fails fast, no browser touched
//  2. Timeout guard       – hard deadline on the whole attempt
//  3. Context + page      – one incognito context, one page, teardown
//     deferred on every exit path; teardown failures are logged only
//  4. Stealth injection   – before any navigation
//  5. Capture listener    – before any navigation, or early async
//     responses are missed
//  6. Login               – hard failure, no extraction on rejection
//  7. Settle              – fixed interval for post-login redirects
//  8. Navigate + scroll   – best-effort per-site flow
//  9. Snapshot + extract  – DOM and network tracks combined
//  10. Persist artifacts  – HTML, sidecar JSON, network JSON
func (i *Importer) ImportReport(ctx context.Context, req *models.ImportRequest) *models.ImportResult {
	start := time.Now()
	result := &models.ImportResult{
		Service:    req.Service,
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
	}
	defer func() {
		result.TotalMs = time.Since(start).Milliseconds()
	}()

	// ── 1. Profile lookup ───────────────────────────────────────────
	prof, ok := i.profiles.Lookup(req.Service)
	if !ok {
		result.Error = fmt.Sprintf("unsupported service: %s", req.Service)
		return result
	}

	// ── 2. Timeout guard ────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(ctx, i.cfg.ImportTimeout)
	defer cancel()

	i.activeImports.Add(1)
	defer i.activeImports.Add(-1)

	runDir, err := i.runDir(req)
	if err != nil {
		result.Error = "could not create artifact directory"
		slog.Error("import: artifact dir", "error", err)
		return result
	}

	// ── 3. Isolated context + page, teardown guaranteed ─────────────
	incognito, err := i.browser.Incognito()
	if err != nil {
		result.Error = "browser context creation failed"
		slog.Error("import: incognito context", "service", prof.ID, "error", err)
		return result
	}
	defer func() {
		if closeErr := incognito.Close(); closeErr != nil {
			slog.Warn("teardown: browser context close failed", "service", prof.ID, "error", closeErr)
		}
	}()

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		result.Error = "page creation failed"
		slog.Error("import: page creation", "service", prof.ID, "error", err)
		return result
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("teardown: page close failed", "service", prof.ID, "error", closeErr)
		}
	}()

	p := page.Context(ctx)

	// ── 4. Stealth before navigation ────────────────────────────────
	if _, evalErr := p.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without", "error", evalErr)
	}

	// ── 5. Capture listener before navigation ───────────────────────
	netlog := attachCapture(p)

	// ── 6. Login ────────────────────────────────────────────────────
	shotPath := runDir + "/login.png"
	session := &rodPage{page: p, cfg: i.cfg}
	if !runLogin(session, prof, req.Username, req.Password, req.SSNLast4, shotPath) {
		result.Error = "Login failed"
		result.ScreenshotPath = shotPath
		slog.Warn("import: login failed", "service", prof.ID, "client", req.ClientID)
		return result
	}
	result.ScreenshotPath = shotPath
	slog.Info("import: login ok", "service", prof.ID, "client", req.ClientID)

	// ── 7. Settle ───────────────────────────────────────────────────
	sleepCtx(ctx, i.cfg.SettleInterval)

	// ── 8. Navigate to the report, trigger lazy sections ────────────
	i.navigateToReport(p, prof)

	// ── 9. Snapshot + extraction ────────────────────────────────────
	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		result.Error = "could not read rendered report page"
		slog.Error("import: page html", "service", prof.ID, "error", htmlErr)
		return result
	}

	report := i.extract(rawHTML, prof, netlog.Responses(), p)
	result.Report = *report
	result.Success = true

	// ── 10. Persist artifacts ───────────────────────────────────────
	i.persistArtifacts(result, runDir, rawHTML, netlog.Responses())

	slog.Info("import: complete",
		"service", prof.ID,
		"client", req.ClientID,
		"accounts", len(report.Accounts),
		"inquiries", len(report.Inquiries),
		"scores", !report.Scores.Empty(),
	)
	return result
}

// sleepCtx sleeps for d or until the context expires.
func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// evalString evaluates a JS expression returning its string result,
// swallowing any errors.
func evalString(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

