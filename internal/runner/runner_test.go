package runner_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"winsbygroup.com/seedbac/internal/config"
	"winsbygroup.com/seedbac/internal/rules"
	"winsbygroup.com/seedbac/internal/runner"
)

const seed = "-- PHENIX TEAM (Team ID: 5) - 25 users\n" +
	"INSERT INTO users (username, password, name, email, role, team_id, department_id, created_at) VALUES\n" +
	"('olivia.brown', '$2y$10$abcdefghijklmnopqrstuv', 'Olivia Brown', 'olivia@example.com', 'member', 5, 2, NOW()),\n" +
	"('head.events', '$2y$10$abcdefghijklmnopqrstuv', 'Head Events', 'events@example.com', 'dept_head', 5, 1, NOW());\n"

const want = "-- PHENIX TEAM (Team ID: 5) - 25 users\n" +
	"INSERT INTO users (username, password, name, email, bac_matricule, bac_year, role, team_id, department_id, created_at) VALUES\n" +
	"('olivia.brown', '$2y$10$abcdefghijklmnopqrstuv', 'Olivia Brown', 'olivia@example.com', '10123457', '2019', 'member', 5, 2, NOW()),\n" +
	"('head.events', '$2y$10$abcdefghijklmnopqrstuv', 'Head Events', 'events@example.com', '20123458', '2019', 'dept_head', 5, 1, NOW());\n"

var fixedNow = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

func setup(t *testing.T, backup bool) (*config.Config, *rules.RuleSet) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed_data.sql")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	rs, err := rules.Default()
	require.NoError(t, err)

	return &config.Config{
		SeedPath:       path,
		OutputPath:     path,
		SeedPathSource: "default",
		Backup:         backup,
	}, rs
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunInPlace(t *testing.T) {
	cfg, rs := setup(t, true)

	res, err := runner.Run(cfg, rs, zap.NewNop(), runner.Options{Now: fixedNow})
	require.NoError(t, err)

	assert.True(t, res.Written)
	assert.Equal(t, want, readString(t, cfg.SeedPath))

	// only the PHENIX header and two of its users exist in this seed
	assert.Equal(t, 1, res.Report.HeaderCounts().NotFound)
	assert.Equal(t, 2, res.Report.RecordCounts().Applied)
	assert.Equal(t, 48, res.Report.RecordCounts().NotFound)

	require.NotNil(t, res.Backup)
	assert.Equal(t, "2025-01-02_03.04.05_seed_data.sql.gz", res.Backup.Filename)
	assert.FileExists(t, res.Backup.Path)
}

func TestRunTwiceMatchesRunOnce(t *testing.T) {
	cfg, rs := setup(t, false)

	_, err := runner.Run(cfg, rs, nil, runner.Options{})
	require.NoError(t, err)
	once := readString(t, cfg.SeedPath)

	res, err := runner.Run(cfg, rs, nil, runner.Options{})
	require.NoError(t, err)

	assert.False(t, res.Written, "unchanged content is not rewritten")
	assert.Equal(t, once, readString(t, cfg.SeedPath))
	assert.Equal(t, 2, res.Report.RecordCounts().AlreadyApplied)
}

func TestRunDryRun(t *testing.T) {
	cfg, rs := setup(t, true)

	res, err := runner.Run(cfg, rs, nil, runner.Options{DryRun: true})
	require.NoError(t, err)

	assert.False(t, res.Written)
	assert.Nil(t, res.Backup)
	assert.True(t, res.Report.Changed())
	assert.Equal(t, seed, readString(t, cfg.SeedPath))
	assert.NoDirExists(t, filepath.Join(filepath.Dir(cfg.SeedPath), "backups"))
}

func TestRunSeparateOutput(t *testing.T) {
	cfg, rs := setup(t, true)
	cfg.OutputPath = filepath.Join(filepath.Dir(cfg.SeedPath), "seed_data.bac.sql")

	res, err := runner.Run(cfg, rs, nil, runner.Options{})
	require.NoError(t, err)

	assert.True(t, res.Written)
	assert.Nil(t, res.Backup, "nothing to back up for a new destination")
	assert.Equal(t, seed, readString(t, cfg.SeedPath))
	assert.Equal(t, want, readString(t, cfg.OutputPath))
}

func TestRunMissingSeed(t *testing.T) {
	cfg, rs := setup(t, false)
	cfg.SeedPath = filepath.Join(t.TempDir(), "missing.sql")

	_, err := runner.Run(cfg, rs, nil, runner.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, strings.HasPrefix(err.Error(), "read seed file"))
}
