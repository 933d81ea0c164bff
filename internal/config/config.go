package config

import (
	"os"
	"path/filepath"
	"time"

	"worklog/internal/scheduler"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration options for the worklog application
type Config struct {
	Database    DatabaseConfig
	Jobs        JobsConfig
	Reporting   ReportingConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver         string        `env:"WL_DB_DRIVER"`
	Dir            string        `env:"WL_DB_DIR"`
	Filename       string        `env:"WL_DB_FILENAME"`
	DSN            string        `env:"WL_DB_DSN"`
	QueryTimeout   time.Duration `env:"WL_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"WL_DB_DIR_PERMISSIONS"`
}

// JobsConfig holds the schedules of the background jobs
type JobsConfig struct {
	AutoEndEnabled   bool   `env:"WL_AUTOEND_ENABLED"`
	AutoEndCutoff    string `env:"WL_AUTOEND_CUTOFF"`
	RetentionEnabled bool   `env:"WL_RETENTION_ENABLED"`
	RetentionDays    int    `env:"WL_RETENTION_DAYS"`
	RetentionCron    string `env:"WL_RETENTION_CRON"`
	Timezone         string `env:"WL_TIMEZONE"`
}

// ReportingConfig holds report computation and formatting options
type ReportingConfig struct {
	NativeAggregate bool   `env:"WL_REPORT_NATIVE_AGGREGATE"`
	TimeFormat      string `env:"WL_REPORT_TIME_FORMAT"`
	RunningText     string `env:"WL_REPORT_RUNNING_TEXT"`
	DefaultSort     string `env:"WL_REPORT_DEFAULT_SORT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"WL_APP_TIMEOUT"`
	Verbose bool          `env:"WL_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".worklog")

	return &Config{
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            defaultDBDir,
			Filename:       "worklog.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Jobs: JobsConfig{
			AutoEndEnabled:   true,
			AutoEndCutoff:    "23:59",
			RetentionEnabled: true,
			RetentionDays:    30,
			RetentionCron:    "0 0 3 * * *",
			Timezone:         "Local",
		},
		Reporting: ReportingConfig{
			NativeAggregate: false,
			TimeFormat:      "2006-01-02 15:04",
			RunningText:     "running",
			DefaultSort:     "duration",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// Location resolves the configured job timezone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Jobs.Timezone)
}

// RetentionPeriod returns the retention window as a duration
func (c *Config) RetentionPeriod() time.Duration {
	return time.Duration(c.Jobs.RetentionDays) * 24 * time.Hour
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if driver := os.Getenv("WL_DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dir := os.Getenv("WL_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("WL_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if dsn := os.Getenv("WL_DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if timeout := os.Getenv("WL_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if perms := os.Getenv("WL_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Jobs configuration
	if enabled := os.Getenv("WL_AUTOEND_ENABLED"); enabled != "" {
		c.Jobs.AutoEndEnabled = ParseBoolWithFallback(enabled, c.Jobs.AutoEndEnabled)
	}
	if cutoff := os.Getenv("WL_AUTOEND_CUTOFF"); cutoff != "" {
		c.Jobs.AutoEndCutoff = cutoff
	}
	if enabled := os.Getenv("WL_RETENTION_ENABLED"); enabled != "" {
		c.Jobs.RetentionEnabled = ParseBoolWithFallback(enabled, c.Jobs.RetentionEnabled)
	}
	if days := os.Getenv("WL_RETENTION_DAYS"); days != "" {
		c.Jobs.RetentionDays = ParseIntWithFallback(days, c.Jobs.RetentionDays)
	}
	if spec := os.Getenv("WL_RETENTION_CRON"); spec != "" {
		c.Jobs.RetentionCron = spec
	}
	if tz := os.Getenv("WL_TIMEZONE"); tz != "" {
		c.Jobs.Timezone = tz
	}

	// Reporting configuration
	if native := os.Getenv("WL_REPORT_NATIVE_AGGREGATE"); native != "" {
		c.Reporting.NativeAggregate = ParseBoolWithFallback(native, c.Reporting.NativeAggregate)
	}
	if format := os.Getenv("WL_REPORT_TIME_FORMAT"); format != "" {
		c.Reporting.TimeFormat = format
	}
	if text := os.Getenv("WL_REPORT_RUNNING_TEXT"); text != "" {
		c.Reporting.RunningText = text
	}
	if sort := os.Getenv("WL_REPORT_DEFAULT_SORT"); sort != "" {
		c.Reporting.DefaultSort = sort
	}

	// Application configuration
	if timeout := os.Getenv("WL_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("WL_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return &ConfigError{Field: "database.dsn", Message: "a DSN is required for the postgres driver"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: "driver must be sqlite or postgres"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate jobs configuration
	if _, err := scheduler.DailyAt(c.Jobs.AutoEndCutoff); err != nil {
		return &ConfigError{Field: "jobs.autoend_cutoff", Message: err.Error()}
	}
	if c.Jobs.RetentionDays < 1 {
		return &ConfigError{Field: "jobs.retention_days", Message: "retention period must be at least 1 day"}
	}
	if err := scheduler.ValidateSpec(c.Jobs.RetentionCron); err != nil {
		return &ConfigError{Field: "jobs.retention_cron", Message: err.Error()}
	}
	if _, err := c.Location(); err != nil {
		return &ConfigError{Field: "jobs.timezone", Message: "unknown timezone " + c.Jobs.Timezone}
	}

	// Validate reporting configuration
	if c.Reporting.TimeFormat == "" {
		return &ConfigError{Field: "reporting.time_format", Message: "time format cannot be empty"}
	}
	if c.Reporting.RunningText == "" {
		return &ConfigError{Field: "reporting.running_text", Message: "running text cannot be empty"}
	}
	if c.Reporting.DefaultSort != "duration" && c.Reporting.DefaultSort != "start_time" {
		return &ConfigError{Field: "reporting.default_sort", Message: "default sort must be duration or start_time"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
