package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"winsbygroup.com/seedbac/internal/config"
	"winsbygroup.com/seedbac/internal/rules"
	"winsbygroup.com/seedbac/internal/runner"
	"winsbygroup.com/seedbac/internal/version"
)

var (
	// Global flags
	configPath string
	verbose    bool
	strict     bool

	logger *zap.Logger
	cfg    *config.Config
)

// errUnmatched signals a strict run that left headers or records unmatched.
var errUnmatched = errors.New("unmatched headers or records")

var rootCmd = &cobra.Command{
	Use:   "seedbac",
	Short: "Add BAC matricule and year columns to seed user rows",
	Long: `seedbac rewrites the team header blocks of a SQL seed file to include the
bac_matricule and bac_year columns, then inserts the values for each listed
user right after the user's email.

Run without a subcommand to apply the rules.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		lvl, _ := cfg.Level()
		if verbose {
			lvl = zapcore.DebugLevel
		}
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(lvl)
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runApply,
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the rules and write the seed file",
	RunE:  runApply,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report what apply would change without writing",
	RunE:  runCheck,
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rule set as YAML",
	RunE:  runRules,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Banner())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "seedbac.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "exit non-zero when a header or record is not found")

	rootCmd.AddCommand(applyCmd, checkCmd, rulesCmd, versionCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	return run(cmd, false)
}

func runCheck(cmd *cobra.Command, args []string) error {
	return run(cmd, true)
}

func run(cmd *cobra.Command, dryRun bool) error {
	rs, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return err
	}

	res, err := runner.Run(cfg, rs, logger, runner.Options{DryRun: dryRun})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprint(out, res.Report.String())
	} else {
		fmt.Fprintln(out, runner.CompletionNotice)
	}

	if strict && res.Report.Unmatched() {
		return fmt.Errorf("%w: %d headers, %d records",
			errUnmatched, res.Report.HeaderCounts().NotFound, res.Report.RecordCounts().NotFound)
	}
	return nil
}

func runRules(cmd *cobra.Command, args []string) error {
	rs, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return err
	}

	data, err := rs.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("seedbac failed", zap.Error(err))
			_ = logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
