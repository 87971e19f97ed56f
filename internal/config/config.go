// Package config resolves ganttline settings from defaults, an optional
// YAML file, GANTTLINE_* environment variables and bound command flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "GANTTLINE"

type ReportConfig struct {
	IncludeAdhoc    bool `mapstructure:"include_adhoc"`
	IncludeWorkLogs bool `mapstructure:"include_worklogs"`
}

type ScheduleConfig struct {
	Cron   string `mapstructure:"cron"`
	OutDir string `mapstructure:"out_dir"`
}

type Config struct {
	DBPath      string         `mapstructure:"db_path"`
	Locale      string         `mapstructure:"locale"`
	DayWidth    int            `mapstructure:"day_width"`
	LogUseCases bool           `mapstructure:"log_use_cases"`
	Report      ReportConfig   `mapstructure:"report"`
	Schedule    ScheduleConfig `mapstructure:"schedule"`
}

// Dir is the per-user state directory, ~/.ganttline.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".ganttline"), nil
}

// Defaults returns the settings used when nothing overrides them. baseDir
// holds the database and scheduled reports.
func Defaults(baseDir string) Config {
	return Config{
		DBPath:   filepath.Join(baseDir, "ganttline.db"),
		Locale:   "en",
		DayWidth: 3,
		Report: ReportConfig{
			IncludeAdhoc:    true,
			IncludeWorkLogs: true,
		},
		Schedule: ScheduleConfig{
			Cron:   "0 17 * * 5",
			OutDir: filepath.Join(baseDir, "reports"),
		},
	}
}

// Loader wraps a private viper instance so tests and commands never share
// global state.
type Loader struct {
	v       *viper.Viper
	baseDir string
}

func NewLoader(baseDir string) *Loader {
	v := viper.New()
	def := Defaults(baseDir)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("locale", def.Locale)
	v.SetDefault("day_width", def.DayWidth)
	v.SetDefault("log_use_cases", def.LogUseCases)
	v.SetDefault("report.include_adhoc", def.Report.IncludeAdhoc)
	v.SetDefault("report.include_worklogs", def.Report.IncludeWorkLogs)
	v.SetDefault("schedule.cron", def.Schedule.Cron)
	v.SetDefault("schedule.out_dir", def.Schedule.OutDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, baseDir: baseDir}
}

// BindFlag makes a command flag override key when the user sets it.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %s: flag not defined", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads path, or config.yaml in the base directory when path is
// empty. Only an explicitly named file has to exist.
func (l *Loader) Load(path string) (Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.AddConfigPath(l.baseDir)
		l.v.SetConfigName("config")
		l.v.SetConfigType("yaml")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFileUsed is the file Load read, or "" if none.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path must not be empty")
	}
	if c.DayWidth <= 0 {
		return fmt.Errorf("config: day_width %d must be positive", c.DayWidth)
	}
	return nil
}
