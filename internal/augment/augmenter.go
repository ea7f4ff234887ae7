package augment

import (
	"go.uber.org/zap"

	"winsbygroup.com/seedbac/internal/rules"
)

// Augmenter applies a rule set to seed text and logs what did not match.
type Augmenter struct {
	rules *rules.RuleSet
	log   *zap.Logger
}

func New(rs *rules.RuleSet, log *zap.Logger) *Augmenter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Augmenter{
		rules: rs,
		log:   log,
	}
}

// Apply runs every team in rule order: the header first, then each record.
func (a *Augmenter) Apply(buf string) (string, *Report) {
	report := &Report{Teams: make([]TeamReport, 0, len(a.rules.Teams))}

	for _, team := range a.rules.Teams {
		tr := TeamReport{
			Team:    team.Name,
			Records: make([]RecordReport, 0, len(team.Records)),
		}

		buf, tr.Header = ReplaceHeader(buf, team.HeaderOld, team.HeaderNew)
		switch tr.Header {
		case NotFound:
			a.log.Warn("team header not found", zap.String("team", team.Name))
		default:
			a.log.Debug("team header", zap.String("team", team.Name), zap.Stringer("outcome", tr.Header))
		}

		for _, rec := range team.Records {
			var outcome Outcome
			buf, outcome = InsertFieldsAfterRecord(buf, rec.Identifier(), a.rules.PasswordHash, rec.ExtraFields())
			if outcome == NotFound {
				a.log.Warn("user record not found",
					zap.String("team", team.Name),
					zap.String("username", rec.Username))
			} else {
				a.log.Debug("user record",
					zap.String("team", team.Name),
					zap.String("username", rec.Username),
					zap.Stringer("outcome", outcome))
			}
			tr.Records = append(tr.Records, RecordReport{Username: rec.Username, Outcome: outcome})
		}

		report.Teams = append(report.Teams, tr)
	}

	hc, rc := report.HeaderCounts(), report.RecordCounts()
	a.log.Info("augmentation finished",
		zap.Int("headers_applied", hc.Applied),
		zap.Int("headers_already_applied", hc.AlreadyApplied),
		zap.Int("headers_not_found", hc.NotFound),
		zap.Int("records_applied", rc.Applied),
		zap.Int("records_already_applied", rc.AlreadyApplied),
		zap.Int("records_not_found", rc.NotFound))

	return buf, report
}
