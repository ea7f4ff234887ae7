package augment

import (
	"fmt"
	"strings"
)

// Report collects the outcome of every edit made during one run.
type Report struct {
	Teams []TeamReport
}

// TeamReport holds the header outcome and per-record outcomes of one team.
type TeamReport struct {
	Team    string
	Header  Outcome
	Records []RecordReport
}

type RecordReport struct {
	Username string
	Outcome  Outcome
}

// Counts tallies outcomes over headers and records.
type Counts struct {
	Applied        int
	AlreadyApplied int
	NotFound       int
}

func (c *Counts) add(o Outcome) {
	switch o {
	case Applied:
		c.Applied++
	case AlreadyApplied:
		c.AlreadyApplied++
	default:
		c.NotFound++
	}
}

// HeaderCounts tallies header outcomes.
func (r *Report) HeaderCounts() Counts {
	var c Counts
	for _, t := range r.Teams {
		c.add(t.Header)
	}
	return c
}

// RecordCounts tallies record outcomes.
func (r *Report) RecordCounts() Counts {
	var c Counts
	for _, t := range r.Teams {
		for _, rec := range t.Records {
			c.add(rec.Outcome)
		}
	}
	return c
}

// Changed reports whether any edit modified the text.
func (r *Report) Changed() bool {
	return r.HeaderCounts().Applied > 0 || r.RecordCounts().Applied > 0
}

// Unmatched reports whether any header or record was not found.
func (r *Report) Unmatched() bool {
	return r.HeaderCounts().NotFound > 0 || r.RecordCounts().NotFound > 0
}

// Missing returns the usernames that were not found, in rule order.
func (r *Report) Missing() []string {
	var names []string
	for _, t := range r.Teams {
		for _, rec := range t.Records {
			if rec.Outcome == NotFound {
				names = append(names, rec.Username)
			}
		}
	}
	return names
}

// String renders a human-readable summary, one line per team plus any
// unmatched items.
func (r *Report) String() string {
	var b strings.Builder

	for _, t := range r.Teams {
		var c Counts
		for _, rec := range t.Records {
			c.add(rec.Outcome)
		}
		fmt.Fprintf(&b, "%-10s header: %-15s records: %d applied, %d already applied, %d not found\n",
			t.Team, t.Header, c.Applied, c.AlreadyApplied, c.NotFound)

		for _, rec := range t.Records {
			if rec.Outcome == NotFound {
				fmt.Fprintf(&b, "  missing: %s\n", rec.Username)
			}
		}
	}
	return b.String()
}
