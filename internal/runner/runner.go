// Package runner wires configuration, rules, and the augmenter into the
// load, edit, save procedure.
package runner

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"winsbygroup.com/seedbac/internal/augment"
	"winsbygroup.com/seedbac/internal/config"
	"winsbygroup.com/seedbac/internal/rules"
	"winsbygroup.com/seedbac/internal/seedfile"
)

// CompletionNotice is printed after a successful run.
const CompletionNotice = "BAC details added successfully!"

type Options struct {
	DryRun bool // compute the report without writing anything
	Now    func() time.Time
}

// Result describes what a run did.
type Result struct {
	Report  *augment.Report
	Written bool
	Backup  *seedfile.BackupResult
}

// Run loads the seed file, applies every rule, and writes the result to the
// configured output path.
func Run(cfg *config.Config, rs *rules.RuleSet, log *zap.Logger, opts Options) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	log.Info("reading seed file",
		zap.String("path", cfg.SeedPath),
		zap.String("source", cfg.SeedPathSource))

	doc, err := seedfile.Read(cfg.SeedPath)
	if err != nil {
		return nil, err
	}

	text, report := augment.New(rs, log).Apply(doc.Text)
	res := &Result{Report: report}

	if opts.DryRun {
		log.Info("dry run, nothing written")
		return res, nil
	}

	// An unchanged buffer is only written when it goes to a new destination
	if text == doc.Text && cfg.OutputPath == cfg.SeedPath {
		log.Info("seed file already up to date", zap.String("path", cfg.OutputPath))
		return res, nil
	}

	if cfg.Backup {
		if _, err := os.Stat(cfg.OutputPath); err == nil {
			b, err := seedfile.Backup(cfg.OutputPath, now())
			if err != nil {
				return nil, err
			}
			log.Info("backup created", zap.String("path", b.Path), zap.Int64("size", b.Size))
			res.Backup = b
		}
	}

	doc.Text = text
	if err := seedfile.Write(cfg.OutputPath, doc); err != nil {
		return nil, fmt.Errorf("write %s: %w", cfg.OutputPath, err)
	}
	res.Written = true

	log.Info("seed file written", zap.String("path", cfg.OutputPath))
	return res, nil
}
