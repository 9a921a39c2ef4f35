package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FINTRACK_DATABASE_PATH.
const EnvPrefix = "FINTRACK"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	Statements struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"statements" yaml:"statements"`

	Parser struct {
		// Year supplied to year-less statement dates; 0 means the current year.
		Year int `mapstructure:"year" yaml:"year"`
	} `mapstructure:"parser" yaml:"parser"`

	Categories struct {
		SeedFile string `mapstructure:"seed_file" yaml:"seed_file"`
	} `mapstructure:"categories" yaml:"categories"`

	Sheets struct {
		CredentialsFile string `mapstructure:"credentials_file" yaml:"-"`
		SpreadsheetID   string `mapstructure:"spreadsheet_id" yaml:"spreadsheet_id"`
		RowLimit        int    `mapstructure:"row_limit" yaml:"row_limit"`
		LookbackRows    int    `mapstructure:"lookback_rows" yaml:"lookback_rows"`
	} `mapstructure:"sheets" yaml:"sheets"`

	Server struct {
		Address string `mapstructure:"address" yaml:"address"`
	} `mapstructure:"server" yaml:"server"`

	Export struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig loads configuration from defaults, an optional config
// file and the environment, in increasing order of precedence. An empty
// configFile searches $HOME/.fintrack, ./.fintrack and the working directory
// for config.yaml.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.fintrack")
		v.AddConfigPath(".fintrack")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// LOG_LEVEL is honored when the prefixed variable is unset.
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}

	// Credentials keep the names the spreadsheet tooling already uses.
	if err := v.BindEnv("sheets.credentials_file", "GOOGLE_CREDENTIALS_FILE", EnvPrefix+"_SHEETS_CREDENTIALS_FILE"); err != nil {
		return nil, fmt.Errorf("failed to bind GOOGLE_CREDENTIALS_FILE: %w", err)
	}
	if err := v.BindEnv("sheets.spreadsheet_id", "GOOGLE_SPREADSHEET_ID", EnvPrefix+"_SHEETS_SPREADSHEET_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind GOOGLE_SPREADSHEET_ID: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.path", "fintrack.db")
	v.SetDefault("statements.directory", "Statements")
	v.SetDefault("parser.year", 0)
	v.SetDefault("categories.seed_file", "")

	v.SetDefault("sheets.credentials_file", "")
	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.row_limit", 10000)
	v.SetDefault("sheets.lookback_rows", 1000)

	v.SetDefault("server.address", ":8080")
	v.SetDefault("export.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Database.Path) == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	if config.Parser.Year < 0 || config.Parser.Year > 9999 {
		return fmt.Errorf("parser.year must be between 0 and 9999, got: %d", config.Parser.Year)
	}

	if config.Sheets.RowLimit < 1 {
		return fmt.Errorf("sheets.row_limit must be positive, got: %d", config.Sheets.RowLimit)
	}

	if config.Sheets.LookbackRows < 1 {
		return fmt.Errorf("sheets.lookback_rows must be positive, got: %d", config.Sheets.LookbackRows)
	}

	if len([]rune(config.Export.Delimiter)) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}

	return nil
}

// SheetsConfigured reports whether spreadsheet sync has what it needs.
func (c *Config) SheetsConfigured() bool {
	return c.Sheets.CredentialsFile != "" && c.Sheets.SpreadsheetID != ""
}
