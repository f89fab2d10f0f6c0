// config/config.go
package config

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

// SessionConfig holds the balance settings of the trading session.
type SessionConfig struct {
	InitialBalance       float64 `yaml:"initial_balance"`
	DynamicStopFloor     float64 `yaml:"dynamic_stop_floor"`
	ConsecutiveLossLimit int     `yaml:"consecutive_loss_limit"`
	Locale               string  `yaml:"locale"` // "en" or "es", selects the stop message table
}

// ParametersConfig mirrors the session risk parameters. Ranges are checked by the session itself.
type ParametersConfig struct {
	RiskPercent     float64 `yaml:"risk_percent"`
	TrailingPercent float64 `yaml:"trailing_percent"`
	TargetPercent   float64 `yaml:"target_percent"`
	MaxTrades       int     `yaml:"max_trades"`
}

// ExitConfig toggles the balance watchers that stop the session on target or trailing drawdown.
type ExitConfig struct {
	EnableTargetStop   bool `yaml:"enable_target_stop"`
	EnableTrailingStop bool `yaml:"enable_trailing_stop"`
}

// LogConfig holds the configuration for logging.
type LogConfig struct {
	LogLevel   string `yaml:"log_level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// NormalConfig holds file locations and other non-risk settings.
type NormalConfig struct {
	LogDirectory   string `yaml:"log_directory"`
	StateDirectory string `yaml:"state_directory"`
	MetricsFile    string `yaml:"metrics_file"`   // Optional Prometheus text file
	ScenarioFile   string `yaml:"scenario_file"`  // Events replayed against the session
	LedgerHistory  int    `yaml:"ledger_history"` // Outcomes kept in the state file, 0 keeps all
}

// Config is the top-level configuration structure.
type Config struct {
	Name       string            `yaml:"name"`
	Session    *SessionConfig    `yaml:"session"`
	Parameters *ParametersConfig `yaml:"parameters"`
	Exits      *ExitConfig       `yaml:"exits"`
	Normal     *NormalConfig     `yaml:"normal_config"`
	Logs       *LogConfig        `yaml:"logs"`
}

// NewConfig creates a Config with nested blocks allocated and only safe defaults set.
// Balance and risk values must come from config.yaml.
func NewConfig() *Config {
	return &Config{
		Name: "session",
		Session: &SessionConfig{
			ConsecutiveLossLimit: 3,
			Locale:               "en",
		},
		Parameters: &ParametersConfig{},
		Exits:      &ExitConfig{},
		Normal:     &NormalConfig{},
		Logs:       &LogConfig{},
	}
}

// LoadConfig loads configuration from a given path, applies defaults, and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("Error: Config file not found at %s. Program cannot run without a config file", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig unmarshals raw YAML over the defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks completeness of the configuration. Parameter ranges are left to the session.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("Critical config missing: 'name' must not be empty")
	}

	if c.Session == nil {
		return fmt.Errorf("Critical config missing: 'session' configuration block must be provided in config.yaml")
	}
	if c.Session.InitialBalance <= 0 {
		return fmt.Errorf("Critical config missing: 'session.initial_balance' must be explicitly specified in config.yaml and be positive")
	}
	if c.Session.DynamicStopFloor < 0 {
		return fmt.Errorf("Config error: 'session.dynamic_stop_floor' cannot be negative")
	}
	if c.Session.DynamicStopFloor > c.Session.InitialBalance {
		return fmt.Errorf("Config error: session.dynamic_stop_floor (%.2f) must not exceed session.initial_balance (%.2f)",
			c.Session.DynamicStopFloor, c.Session.InitialBalance)
	}
	if c.Session.ConsecutiveLossLimit < 1 {
		return fmt.Errorf("Config error: 'session.consecutive_loss_limit' must be at least 1")
	}
	if c.Session.Locale != "" && c.Session.Locale != "en" && c.Session.Locale != "es" {
		return fmt.Errorf("Config error: session.locale if specified must be 'en' or 'es'")
	}

	if c.Parameters == nil {
		return fmt.Errorf("Critical config missing: 'parameters' configuration block must be provided in config.yaml")
	}
	if c.Parameters.RiskPercent == 0 {
		return fmt.Errorf("Critical config missing: 'parameters.risk_percent' must be explicitly specified in config.yaml")
	}
	if c.Parameters.TrailingPercent == 0 {
		return fmt.Errorf("Critical config missing: 'parameters.trailing_percent' must be explicitly specified in config.yaml")
	}
	if c.Parameters.TargetPercent == 0 {
		return fmt.Errorf("Critical config missing: 'parameters.target_percent' must be explicitly specified in config.yaml")
	}
	if c.Parameters.MaxTrades == 0 {
		return fmt.Errorf("Critical config missing: 'parameters.max_trades' must be explicitly specified in config.yaml")
	}

	if c.Exits == nil {
		c.Exits = &ExitConfig{}
	}

	if c.Normal == nil {
		return fmt.Errorf("Critical config missing: 'normal_config' configuration block must be provided in config.yaml")
	}
	if c.Normal.LogDirectory == "" {
		return fmt.Errorf("Critical config missing: 'normal_config.log_directory' must be explicitly specified in config.yaml (e.g., 'var/logs')")
	}
	if c.Normal.StateDirectory == "" {
		return fmt.Errorf("Critical config missing: 'normal_config.state_directory' must be explicitly specified in config.yaml (e.g., 'var/state')")
	}
	if c.Normal.LedgerHistory < 0 {
		return fmt.Errorf("Config error: 'normal_config.ledger_history' cannot be negative")
	}

	if c.Logs == nil {
		return fmt.Errorf("Critical config missing: 'logs' configuration block must be provided in config.yaml")
	}
	if c.Logs.LogLevel == "" {
		return fmt.Errorf("Critical config missing: 'logs.log_level' must be explicitly specified in config.yaml (e.g., 'info', 'debug', 'warn', 'error')")
	}
	if c.Logs.MaxSizeMB <= 0 {
		return fmt.Errorf("Critical config missing: 'logs.max_size_mb' must be explicitly specified in config.yaml and be positive")
	}
	if c.Logs.MaxBackups <= 0 {
		return fmt.Errorf("Critical config missing: 'logs.max_backups' must be explicitly specified in config.yaml and be positive")
	}
	if c.Logs.MaxAgeDays <= 0 {
		return fmt.Errorf("Critical config missing: 'logs.max_age_days' must be explicitly specified in config.yaml and be positive")
	}

	return nil
}

// EnvConfig carries overrides read from the environment (.env is loaded by main).
type EnvConfig struct {
	LogLevel     string
	Locale       string
	ScenarioFile string
}

func LoadEnvConfig() *EnvConfig {
	return &EnvConfig{
		LogLevel:     os.Getenv("PROBINARY_LOG_LEVEL"),
		Locale:       os.Getenv("PROBINARY_LOCALE"),
		ScenarioFile: os.Getenv("PROBINARY_SCENARIO"),
	}
}

// ApplyEnv overrides file settings with non-empty environment values.
func (c *Config) ApplyEnv(env *EnvConfig) {
	if env == nil {
		return
	}
	if env.LogLevel != "" {
		c.Logs.LogLevel = env.LogLevel
	}
	if env.Locale != "" {
		c.Session.Locale = env.Locale
	}
	if env.ScenarioFile != "" {
		c.Normal.ScenarioFile = env.ScenarioFile
	}
}
