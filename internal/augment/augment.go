// Package augment rewrites team header blocks and user rows of a seed file.
// All operations work on LF-normalized text and never fail: a pattern that
// is not found leaves the buffer unchanged and is reported as NotFound.
package augment

import (
	"regexp"
	"strings"
)

// Outcome is the result of a single edit.
type Outcome int

const (
	NotFound Outcome = iota
	Applied
	AlreadyApplied
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case AlreadyApplied:
		return "already applied"
	default:
		return "not found"
	}
}

// ReplaceHeader replaces the first occurrence of oldHeader with newHeader.
// When oldHeader is missing but newHeader is present the header was
// rewritten by an earlier run.
func ReplaceHeader(buf, oldHeader, newHeader string) (string, Outcome) {
	i := strings.Index(buf, oldHeader)
	if i < 0 {
		if strings.Contains(buf, newHeader) {
			return buf, AlreadyApplied
		}
		return buf, NotFound
	}
	return buf[:i] + newHeader + buf[i+len(oldHeader):], Applied
}

// recordPattern matches the start of a user row up to and including the
// separator after the email field:
//
//	('<identifier>', '<passwordHash>', '<name>', '<email>',
func recordPattern(identifier, passwordHash string) *regexp.Regexp {
	return regexp.MustCompile(`\(` + regexp.QuoteMeta(identifier) +
		`, ` + regexp.QuoteMeta(quote(passwordHash)) +
		`, '[^']+', '[^']+', `)
}

// InsertFieldsAfterRecord inserts extraFields plus a single space after the
// email field of the first row starting with identifier and passwordHash.
// Rows that already carry extraFields at that position are left alone.
func InsertFieldsAfterRecord(buf, identifier, passwordHash, extraFields string) (string, Outcome) {
	loc := recordPattern(identifier, passwordHash).FindStringIndex(buf)
	if loc == nil {
		return buf, NotFound
	}

	end := loc[1]
	insert := extraFields + " "
	if strings.HasPrefix(buf[end:], insert) {
		return buf, AlreadyApplied
	}

	var b strings.Builder
	b.Grow(len(buf) + len(insert))
	b.WriteString(buf[:end])
	b.WriteString(insert)
	b.WriteString(buf[end:])
	return b.String(), Applied
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
