package config

import (
	"strconv"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(l.config, overrides)
	}

	// Validate once the flags are applied so a flag can fix a bad env value
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDriver       *string
	DBDir          *string
	DBFilename     *string
	DBDSN          *string
	DBQueryTimeout *time.Duration

	// Jobs overrides
	AutoEndCutoff *string
	RetentionDays *int
	Timezone      *string

	// Reporting overrides
	NativeAggregate *bool
	TimeFormat      *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDriver != nil {
		config.Database.Driver = *overrides.DBDriver
	}
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBDSN != nil {
		config.Database.DSN = *overrides.DBDSN
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}

	if overrides.AutoEndCutoff != nil {
		config.Jobs.AutoEndCutoff = *overrides.AutoEndCutoff
	}
	if overrides.RetentionDays != nil {
		config.Jobs.RetentionDays = *overrides.RetentionDays
	}
	if overrides.Timezone != nil {
		config.Jobs.Timezone = *overrides.Timezone
	}

	if overrides.NativeAggregate != nil {
		config.Reporting.NativeAggregate = *overrides.NativeAggregate
	}
	if overrides.TimeFormat != nil {
		config.Reporting.TimeFormat = *overrides.TimeFormat
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
