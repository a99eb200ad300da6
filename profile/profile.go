// Package profile holds the static per-site configuration for every
// supported credit-monitoring service. Adding a site is a data change:
// a new entry in the built-in table or in an external YAML file, never
// new code.
package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
)

// FlowID enumerates the per-site navigation strategies. The set is
// closed: an unknown id fails at table construction, not mid-import.
type FlowID string

const (
	// FlowGeneric clicks the first matching report link and waits for
	// the network to go idle.
	FlowGeneric FlowID = "generic"

	// FlowReportURL navigates straight to a known report URL and polls
	// known score cells for in-range score tokens.
	FlowReportURL FlowID = "report-url"

	// FlowDashboard has no fixed report URL: it tries link-text
	// heuristics, then conventional path suffixes, then polls the full
	// page text for in-range numbers.
	FlowDashboard FlowID = "dashboard"
)

var knownFlows = map[FlowID]struct{}{
	FlowGeneric:   {},
	FlowReportURL: {},
	FlowDashboard: {},
}

// ServiceProfile is the static configuration for one monitoring site.
// Selector fields hold a single CSS selector or an ordered
// comma-delimited candidate list, tried in order.
type ServiceProfile struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	LoginURL          string `yaml:"loginUrl"`
	UsernameSelectors string `yaml:"usernameSelectors"`
	PasswordSelectors string `yaml:"passwordSelectors"`
	SSNSelectors      string `yaml:"ssnSelectors,omitempty"`
	SubmitSelectors   string `yaml:"submitSelectors"`

	Flow         FlowID `yaml:"flow"`
	PostLoginURL string `yaml:"postLoginUrl,omitempty"`

	// ReportURL is the fixed report location for FlowReportURL sites.
	ReportURL string `yaml:"reportUrl,omitempty"`

	// ReportLinkSelectors are candidate selectors for the report link
	// on FlowGeneric sites.
	ReportLinkSelectors string `yaml:"reportLinkSelectors,omitempty"`

	// ScoreCellSelectors are candidate selectors for rendered score
	// cells, used both by FlowReportURL polling and score extraction.
	ScoreCellSelectors string `yaml:"scoreCellSelectors,omitempty"`
}

// SplitSelectors turns a comma-delimited candidate list into an ordered
// slice, dropping empty entries. Commas inside attribute selectors are
// not supported by profile data; candidates use simple selectors.
func SplitSelectors(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the profile is usable: required fields set, flow id
// known, and every selector candidate parseable as CSS.
func (p *ServiceProfile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile missing id")
	}
	if p.LoginURL == "" {
		return fmt.Errorf("profile %q: missing loginUrl", p.ID)
	}
	if p.UsernameSelectors == "" || p.PasswordSelectors == "" || p.SubmitSelectors == "" {
		return fmt.Errorf("profile %q: username, password and submit selectors are required", p.ID)
	}
	if _, ok := knownFlows[p.Flow]; !ok {
		return fmt.Errorf("profile %q: unknown flow %q", p.ID, p.Flow)
	}
	if p.Flow == FlowReportURL && p.ReportURL == "" {
		return fmt.Errorf("profile %q: flow %q requires reportUrl", p.ID, p.Flow)
	}
	for _, field := range []struct {
		name string
		list string
	}{
		{"usernameSelectors", p.UsernameSelectors},
		{"passwordSelectors", p.PasswordSelectors},
		{"ssnSelectors", p.SSNSelectors},
		{"submitSelectors", p.SubmitSelectors},
		{"reportLinkSelectors", p.ReportLinkSelectors},
		{"scoreCellSelectors", p.ScoreCellSelectors},
	} {
		for _, sel := range SplitSelectors(field.list) {
			if _, err := cascadia.Parse(sel); err != nil {
				return fmt.Errorf("profile %q: %s: bad selector %q: %w", p.ID, field.name, sel, err)
			}
		}
	}
	return nil
}

// Table is an immutable registry of service profiles, loaded once at
// startup and shared read-only across sessions.
type Table struct {
	profiles map[string]*ServiceProfile
}

// NewTable builds a validated table from the given profiles. Later
// entries with a duplicate id override earlier ones, which is how an
// external YAML file overrides built-ins.
func NewTable(profiles ...*ServiceProfile) (*Table, error) {
	m := make(map[string]*ServiceProfile, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		cp := *p
		m[strings.ToLower(p.ID)] = &cp
	}
	return &Table{profiles: m}, nil
}

// Lookup returns the profile for a service id, or false when the
// service is not supported.
func (t *Table) Lookup(serviceID string) (*ServiceProfile, bool) {
	p, ok := t.profiles[strings.ToLower(strings.TrimSpace(serviceID))]
	return p, ok
}

// Len returns the number of registered services.
func (t *Table) Len() int {
	return len(t.profiles)
}

// IDs returns all registered service ids, sorted.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.profiles))
	for id := range t.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
