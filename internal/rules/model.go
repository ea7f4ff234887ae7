package rules

import (
	"fmt"
	"strings"
)

// DefaultPasswordHash is the placeholder hash every seeded user row carries.
const DefaultPasswordHash = "$2y$10$abcdefghijklmnopqrstuv"

// RuleSet describes every edit to make on a seed file.
type RuleSet struct {
	PasswordHash string `yaml:"password_hash"`
	Teams        []Team `yaml:"teams"`
}

// Team groups the header rewrite and the record insertions of one team block.
type Team struct {
	Name      string   `yaml:"name"`
	HeaderOld string   `yaml:"header_old"`
	HeaderNew string   `yaml:"header_new"`
	Records   []Record `yaml:"records"`
}

// Record is a single user row and the values to insert after its email.
type Record struct {
	Username     string `yaml:"username"`
	BacMatricule string `yaml:"bac_matricule"`
	BacYear      string `yaml:"bac_year"`
}

// Identifier returns the username as it appears in the seed file.
func (r Record) Identifier() string {
	return quote(r.Username)
}

// ExtraFields renders the inserted values as SQL literal text.
// Format: 'matricule', 'year',
func (r Record) ExtraFields() string {
	return quote(r.BacMatricule) + ", " + quote(r.BacYear) + ","
}

// RecordCount returns the total number of records across all teams.
func (rs *RuleSet) RecordCount() int {
	n := 0
	for _, t := range rs.Teams {
		n += len(t.Records)
	}
	return n
}

func (t Team) String() string {
	return fmt.Sprintf("%s (%d records)", t.Name, len(t.Records))
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
