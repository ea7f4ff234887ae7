// Package rules holds the declarative edits applied to a seed file and the
// default QABAS/PHENIX data set.
package rules

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_rules.yaml
var defaultRules embed.FS

// ErrInvalidRules is returned when a rule set fails validation.
var ErrInvalidRules = errors.New("invalid rule set")

// Default returns the embedded rule set for the QABAS and PHENIX teams.
func Default() (*RuleSet, error) {
	data, err := defaultRules.ReadFile("default_rules.yaml")
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Load reads and validates a rule file. An empty path selects the defaults.
func Load(path string) (*RuleSet, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Parse decodes YAML rule data and validates the result.
// A missing password_hash falls back to DefaultPasswordHash.
func Parse(data []byte) (*RuleSet, error) {
	rs := &RuleSet{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(rs); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	if rs.PasswordHash == "" {
		rs.PasswordHash = DefaultPasswordHash
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

// Validate checks that every team and record can be applied safely.
// header_new must not contain header_old, otherwise a second run would
// rewrite the header again.
func (rs *RuleSet) Validate() error {
	if len(rs.Teams) == 0 {
		return fmt.Errorf("%w: no teams defined", ErrInvalidRules)
	}
	if rs.PasswordHash == "" {
		return fmt.Errorf("%w: empty password_hash", ErrInvalidRules)
	}

	seen := make(map[string]string)
	for i, t := range rs.Teams {
		if t.Name == "" {
			return fmt.Errorf("%w: team %d has no name", ErrInvalidRules, i+1)
		}
		if t.HeaderOld == "" || t.HeaderNew == "" {
			return fmt.Errorf("%w: team %s needs header_old and header_new", ErrInvalidRules, t.Name)
		}
		if strings.Contains(t.HeaderNew, t.HeaderOld) {
			return fmt.Errorf("%w: team %s header_new contains header_old", ErrInvalidRules, t.Name)
		}

		for _, r := range t.Records {
			if r.Username == "" {
				return fmt.Errorf("%w: team %s has a record without username", ErrInvalidRules, t.Name)
			}
			if r.BacMatricule == "" || r.BacYear == "" {
				return fmt.Errorf("%w: record %s needs bac_matricule and bac_year", ErrInvalidRules, r.Username)
			}
			if strings.ContainsAny(r.Username+r.BacMatricule+r.BacYear, "\r\n") {
				return fmt.Errorf("%w: record %s contains a line break", ErrInvalidRules, r.Username)
			}
			if other, ok := seen[r.Username]; ok {
				return fmt.Errorf("%w: username %s listed in %s and %s", ErrInvalidRules, r.Username, other, t.Name)
			}
			seen[r.Username] = t.Name
		}
	}
	return nil
}

// Marshal renders the rule set back to YAML.
func (rs *RuleSet) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(rs); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
