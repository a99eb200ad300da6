package importer

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/use-agent/credimport/config"
)

// rodPage adapts a rod page to the loginPage interface. Every lookup
// carries its own bounded timeout so a stalled remote page cannot hang
// the pipeline.
type rodPage struct {
	page *rod.Page
	cfg  config.ImporterConfig
}

func (r *rodPage) navigate(url string) error {
	if err := r.page.Navigate(url); err != nil {
		return err
	}
	_ = r.page.Timeout(r.cfg.LoginWait).WaitLoad()
	return nil
}

// credentialShaped matches the inputs a login form is expected to have.
const credentialShaped = "input[type='password'], input[type='email'], input[name*='user'], input[name*='login']"

func (r *rodPage) waitForCredentialInput() {
	if _, err := r.page.Timeout(r.cfg.LoginWait).Element(credentialShaped); err == nil {
		return
	}
	// Fall back to any input; proceed regardless of the outcome.
	_, _ = r.page.Timeout(r.cfg.FieldTimeout).Element("input")
}

func (r *rodPage) find(selectors []string) (formInput, bool) {
	for _, sel := range selectors {
		el, err := r.page.Timeout(r.cfg.FieldTimeout).Sleeper(rod.NotFoundSleeper).Element(sel)
		if err != nil || el == nil {
			continue
		}
		if visible, visErr := el.Visible(); visErr != nil || !visible {
			continue
		}
		return &rodInput{el: el, typeDelay: r.cfg.TypeDelay}, true
	}
	return nil, false
}

func (r *rodPage) waitSettled() {
	if err := r.page.Timeout(r.cfg.LoginWait).WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("login: page did not settle, proceeding", "error", err)
	}
}

func (r *rodPage) pageText() string {
	return evalString(r.page, `() => document.body ? document.body.innerText : ''`)
}

func (r *rodPage) currentURL() string {
	return evalString(r.page, `() => window.location.href`)
}

func (r *rodPage) screenshot(path string) {
	data, err := r.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		slog.Warn("login: screenshot failed", "error", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Warn("login: screenshot write failed", "path", path, "error", err)
	}
}

// rodInput is a located form control. fill clears any prefilled value
// and types rune by rune with a small delay.
type rodInput struct {
	el        *rod.Element
	typeDelay time.Duration
}

func (i *rodInput) fill(value string) error {
	if err := i.el.SelectAllText(); err == nil {
		_ = i.el.Input("")
	}
	for _, r := range value {
		if err := i.el.Input(string(r)); err != nil {
			return err
		}
		time.Sleep(i.typeDelay)
	}
	return nil
}

func (i *rodInput) click() error {
	return i.el.Click(proto.InputMouseButtonLeft, 1)
}
