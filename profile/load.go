package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// profilesFile is the YAML shape of an external profile file:
//
//	profiles:
//	  - id: examplesite
//	    loginUrl: https://example.com/login
//	    usernameSelectors: "input[name='email'], #email"
//	    ...
type profilesFile struct {
	Profiles []*ServiceProfile `yaml:"profiles"`
}

// LoadFile reads service profiles from a YAML file. Entries override
// built-ins with the same id when combined via LoadTable.
func LoadFile(path string) ([]*ServiceProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}
	var f profilesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse profiles file %s: %w", path, err)
	}
	return f.Profiles, nil
}

// LoadTable builds the profile table from the built-ins plus an
// optional external YAML file whose entries override by id.
func LoadTable(profilesFilePath string) (*Table, error) {
	entries := Builtin()
	if profilesFilePath != "" {
		extra, err := LoadFile(profilesFilePath)
		if err != nil {
			return nil, err
		}
		entries = append(entries, extra...)
	}
	return NewTable(entries...)
}
