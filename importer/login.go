package importer

import (
	"log/slog"
	"strings"

	"github.com/use-agent/credimport/profile"
)

// formInput is a located form control. Implementations clear and type
// with a per-keystroke delay so scripted entry looks like typing.
type formInput interface {
	fill(value string) error
	click() error
}

// loginPage is the subset of page behavior the login automator drives.
// The rod implementation lives in session.go; tests substitute a double.
type loginPage interface {
	navigate(url string) error

	// waitForCredentialInput waits (bounded, best-effort) for a visible
	// credential-shaped input, falling back to any visible input.
	// Navigation proceeds regardless of the outcome.
	waitForCredentialInput()

	// find tries each selector candidate in order and commits to the
	// first visible element found.
	find(selectors []string) (formInput, bool)

	// waitSettled waits best-effort for the page to settle after a
	// submission click.
	waitSettled()

	pageText() string
	currentURL() string
	screenshot(path string)
}

// Generic fallback candidates, tried after the profile's own selectors.
var (
	usernameFallbacks = []string{
		"input[name='username']",
		"input[name='email']",
		"input[type='email']",
		"#username",
		"#email",
		"input[autocomplete='username']",
	}
	passwordFallbacks = []string{
		"input[type='password']",
		"input[name='password']",
		"#password",
	}
	submitFallbacks = []string{
		"button[type='submit']",
		"input[type='submit']",
		"button[name='login']",
		"#loginButton",
	}
	ssnFallbacks = []string{
		"input[name*='ssn']",
		"#ssn",
		"#ssnLast4",
	}
)

// failurePhrases classify a post-submission page as a rejected login.
var failurePhrases = []string{
	"invalid login",
	"invalid username",
	"invalid password",
	"incorrect password",
	"incorrect username",
	"login failed",
	"unable to log you in",
	"could not sign you in",
	"account is locked",
	"account has been locked",
	"credentials do not match",
}

// challengePhrases detect a post-submit identity challenge page that
// requires the SSN last-4 answer.
var challengePhrases = []string{
	"security question",
	"verify your identity",
	"identity verification",
	"last 4 digits of your social",
	"last four digits of your social",
}

// authenticatedHints are URL fragments typical of the member area.
var authenticatedHints = []string{
	"dashboard",
	"member",
	"account",
	"summary",
	"home",
	"portal",
}

// runLogin navigates to the profile's login page, enters the
// credentials and classifies the outcome. A missing username or
// password field is an immediate failure: partial credential entry is
// never submitted. A debug screenshot is captured after submission
// regardless of outcome.
func runLogin(p loginPage, prof *profile.ServiceProfile, username, password, ssnLast4, shotPath string) bool {
	if err := p.navigate(prof.LoginURL); err != nil {
		slog.Warn("login: navigation failed", "service", prof.ID, "error", err)
		return false
	}
	p.waitForCredentialInput()

	userInput, ok := p.find(append(profile.SplitSelectors(prof.UsernameSelectors), usernameFallbacks...))
	if !ok {
		slog.Warn("login: no username field found", "service", prof.ID)
		return false
	}
	passInput, ok := p.find(append(profile.SplitSelectors(prof.PasswordSelectors), passwordFallbacks...))
	if !ok {
		slog.Warn("login: no password field found", "service", prof.ID)
		return false
	}

	if err := userInput.fill(username); err != nil {
		slog.Warn("login: username entry failed", "service", prof.ID, "error", err)
		return false
	}
	if err := passInput.fill(password); err != nil {
		slog.Warn("login: password entry failed", "service", prof.ID, "error", err)
		return false
	}

	submit, ok := p.find(append(profile.SplitSelectors(prof.SubmitSelectors), submitFallbacks...))
	if !ok {
		slog.Warn("login: no submit control found", "service", prof.ID)
		return false
	}
	if err := submit.click(); err != nil {
		slog.Warn("login: submit click failed", "service", prof.ID, "error", err)
		return false
	}
	p.waitSettled()

	// Diagnostics only; captured whatever the outcome.
	defer p.screenshot(shotPath)

	if matchesAny(p.pageText(), challengePhrases) {
		if !answerChallenge(p, prof, ssnLast4) {
			return false
		}
	}

	return classifyLogin(p.pageText(), p.currentURL(), prof.LoginURL)
}

// answerChallenge handles the post-submit security-question page. Here
// the profile's SSN and submit selector lists are mandatory and any
// failure to locate or submit is fatal.
func answerChallenge(p loginPage, prof *profile.ServiceProfile, ssnLast4 string) bool {
	if prof.SSNSelectors == "" || ssnLast4 == "" {
		slog.Warn("login: challenge page but no ssn configured", "service", prof.ID)
		return false
	}
	ssnInput, ok := p.find(append(profile.SplitSelectors(prof.SSNSelectors), ssnFallbacks...))
	if !ok {
		slog.Warn("login: challenge ssn field not found", "service", prof.ID)
		return false
	}
	if err := ssnInput.fill(ssnLast4); err != nil {
		slog.Warn("login: challenge ssn entry failed", "service", prof.ID, "error", err)
		return false
	}
	submit, ok := p.find(append(profile.SplitSelectors(prof.SubmitSelectors), submitFallbacks...))
	if !ok {
		slog.Warn("login: challenge submit not found", "service", prof.ID)
		return false
	}
	if err := submit.click(); err != nil {
		slog.Warn("login: challenge submit failed", "service", prof.ID, "error", err)
		return false
	}
	p.waitSettled()
	return true
}

// classifyLogin decides the outcome after submission: failure when the
// page shows a known rejection phrase; success when the URL reached the
// member area or simply moved off the login page. Ambiguous outcomes
// default to success, trading a possible wasted extraction pass for
// never blocking on retries.
func classifyLogin(pageText, currentURL, loginURL string) bool {
	if matchesAny(pageText, failurePhrases) {
		return false
	}
	if currentURL != "" && currentURL != loginURL {
		return true
	}
	lower := strings.ToLower(currentURL)
	for _, hint := range authenticatedHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return true
}

func matchesAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
