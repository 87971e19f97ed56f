package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewLoader(dir).Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ganttline.db"), cfg.DBPath)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 3, cfg.DayWidth)
	assert.True(t, cfg.Report.IncludeAdhoc)
	assert.True(t, cfg.Report.IncludeWorkLogs)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, "0 17 * * 5", cfg.Schedule.Cron)
	assert.Equal(t, filepath.Join(dir, "reports"), cfg.Schedule.OutDir)
}

func TestLoad_FileInBaseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
locale: ja
day_width: 5
report:
  include_adhoc: false
schedule:
  cron: "@daily"
`), 0o644))

	l := NewLoader(dir)
	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Locale)
	assert.Equal(t, 5, cfg.DayWidth)
	assert.False(t, cfg.Report.IncludeAdhoc)
	assert.True(t, cfg.Report.IncludeWorkLogs, "unset keys keep defaults")
	assert.Equal(t, "@daily", cfg.Schedule.Cron)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), l.ConfigFileUsed())
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("locale: ja\n"), 0o644))
	t.Setenv("GANTTLINE_LOCALE", "en")
	t.Setenv("GANTTLINE_REPORT_INCLUDE_WORKLOGS", "false")

	cfg, err := NewLoader(dir).Load("")
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Locale)
	assert.False(t, cfg.Report.IncludeWorkLogs)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("GANTTLINE_DB_PATH", "/from/env.db")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	require.NoError(t, fs.Parse([]string{"--db", "/from/flag.db"}))

	l := NewLoader(t.TempDir())
	require.NoError(t, l.BindFlag("db_path", fs.Lookup("db")))
	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.db", cfg.DBPath)
}

func TestLoad_UnsetFlagKeepsEnv(t *testing.T) {
	t.Setenv("GANTTLINE_DB_PATH", "/from/env.db")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	require.NoError(t, fs.Parse(nil))

	l := NewLoader(t.TempDir())
	require.NoError(t, l.BindFlag("db_path", fs.Lookup("db")))
	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DBPath)
}

func TestBindFlag_Undefined(t *testing.T) {
	assert.Error(t, NewLoader(t.TempDir()).BindFlag("db_path", nil))
}

func TestValidate(t *testing.T) {
	cfg := Defaults(t.TempDir())
	cfg.DayWidth = 0
	assert.Error(t, cfg.Validate())

	cfg = Defaults(t.TempDir())
	cfg.DBPath = " "
	assert.Error(t, cfg.Validate())
}
