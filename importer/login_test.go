package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/use-agent/credimport/profile"
)

var errFake = errors.New("boom")

// fakeInput records fills and clicks on the owning fakePage's event log.
type fakeInput struct {
	page *fakePage
	name string
}

func (f *fakeInput) fill(value string) error {
	f.page.events = append(f.page.events, "fill:"+f.name+"="+value)
	return nil
}

func (f *fakeInput) click() error {
	f.page.events = append(f.page.events, "click:"+f.name)
	return nil
}

// fakePage is a loginPage double backed by a selector-to-input map.
type fakePage struct {
	fields map[string]*fakeInput
	text   string
	url    string
	navErr error
	events []string
}

func (f *fakePage) navigate(url string) error {
	f.events = append(f.events, "navigate:"+url)
	return f.navErr
}

func (f *fakePage) waitForCredentialInput() {}

func (f *fakePage) find(selectors []string) (formInput, bool) {
	f.events = append(f.events, "find:"+selectors[0])
	for _, sel := range selectors {
		if in, ok := f.fields[sel]; ok {
			return in, true
		}
	}
	return nil, false
}

func (f *fakePage) waitSettled()           {}
func (f *fakePage) pageText() string       { return f.text }
func (f *fakePage) currentURL() string     { return f.url }
func (f *fakePage) screenshot(path string) { f.events = append(f.events, "screenshot") }

func (f *fakePage) hasEvent(prefix string) bool {
	for _, e := range f.events {
		if strings.HasPrefix(e, prefix) {
			return true
		}
	}
	return false
}

func loginProfile() *profile.ServiceProfile {
	return &profile.ServiceProfile{
		ID:                "testsite",
		LoginURL:          "https://testsite.example/login",
		UsernameSelectors: "#user",
		PasswordSelectors: "#pass",
		SSNSelectors:      "#ssn",
		SubmitSelectors:   "#go",
		Flow:              profile.FlowGeneric,
	}
}

func pageWithFields(selectors ...string) *fakePage {
	p := &fakePage{fields: make(map[string]*fakeInput)}
	for _, sel := range selectors {
		p.fields[sel] = &fakeInput{page: p, name: sel}
	}
	return p
}

func TestRunLogin_Success(t *testing.T) {
	p := pageWithFields("#user", "#pass", "#go")
	p.text = "Welcome back"
	p.url = "https://testsite.example/dashboard"

	if !runLogin(p, loginProfile(), "alice", "s3cret", "", "shot.png") {
		t.Fatal("login should succeed")
	}
	want := []string{"fill:#user=alice", "fill:#pass=s3cret", "click:#go"}
	got := 0
	for _, e := range p.events {
		if got < len(want) && e == want[got] {
			got++
		}
	}
	if got != len(want) {
		t.Errorf("credential entry out of order, events: %v", p.events)
	}
	if !p.hasEvent("screenshot") {
		t.Error("debug screenshot not captured after submission")
	}
}

func TestRunLogin_NoUsernameFieldStopsBeforePassword(t *testing.T) {
	// Page has a password field but no username field: login must fail
	// before the password is ever searched or filled.
	p := pageWithFields("#pass", "#go")

	if runLogin(p, loginProfile(), "alice", "s3cret", "", "shot.png") {
		t.Fatal("login should fail without a username field")
	}
	if p.hasEvent("find:#pass") {
		t.Errorf("password field searched after username lookup failed: %v", p.events)
	}
	if p.hasEvent("fill:") {
		t.Errorf("partial credentials entered: %v", p.events)
	}
	if p.hasEvent("click:") {
		t.Errorf("form submitted without credentials: %v", p.events)
	}
}

func TestRunLogin_NoSubmitControl(t *testing.T) {
	p := pageWithFields("#user", "#pass")
	if runLogin(p, loginProfile(), "alice", "s3cret", "", "shot.png") {
		t.Fatal("login should fail without a submit control")
	}
}

func TestRunLogin_NavigationError(t *testing.T) {
	p := pageWithFields("#user", "#pass", "#go")
	p.navErr = errFake
	if runLogin(p, loginProfile(), "alice", "s3cret", "", "shot.png") {
		t.Fatal("login should fail when navigation fails")
	}
	if p.hasEvent("find:") {
		t.Error("fields searched after failed navigation")
	}
}

func TestRunLogin_FailurePhrase(t *testing.T) {
	p := pageWithFields("#user", "#pass", "#go")
	p.text = "Sorry, invalid password. Please try again."
	p.url = "https://testsite.example/login"

	if runLogin(p, loginProfile(), "alice", "wrong", "", "shot.png") {
		t.Fatal("rejection phrase should classify as failure")
	}
}

func TestRunLogin_ChallengeAnswered(t *testing.T) {
	p := pageWithFields("#user", "#pass", "#go", "#ssn")
	p.text = "Please verify your identity: enter the last 4 digits of your social security number"
	p.url = "https://testsite.example/challenge"

	if !runLogin(p, loginProfile(), "alice", "s3cret", "1234", "shot.png") {
		t.Fatal("answered challenge should succeed")
	}
	if !p.hasEvent("fill:#ssn=1234") {
		t.Errorf("ssn answer not entered: %v", p.events)
	}
}

func TestRunLogin_ChallengeWithoutSSNFails(t *testing.T) {
	p := pageWithFields("#user", "#pass", "#go", "#ssn")
	p.text = "Please verify your identity"
	p.url = "https://testsite.example/challenge"

	if runLogin(p, loginProfile(), "alice", "s3cret", "", "shot.png") {
		t.Fatal("challenge without an ssn answer must fail")
	}
}

func TestClassifyLogin(t *testing.T) {
	const loginURL = "https://site.example/login"
	tests := []struct {
		name string
		text string
		url  string
		want bool
	}{
		{"moved off login page", "Welcome", "https://site.example/member/dashboard", true},
		{"explicit rejection", "Invalid login", loginURL, false},
		{"rejection wins over redirect", "Your account is locked", "https://site.example/locked", false},
		{"ambiguous defaults to success", "Loading...", loginURL, true},
		{"empty url defaults to success", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyLogin(tt.text, tt.url, loginURL); got != tt.want {
				t.Errorf("classifyLogin(%q, %q) = %v, want %v", tt.text, tt.url, got, tt.want)
			}
		})
	}
}
