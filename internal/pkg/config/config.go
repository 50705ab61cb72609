// internal/pkg/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mcanavera/stockroom/internal/core/domain"
	"github.com/mcanavera/stockroom/internal/core/ports"
)

// Config holds all application configuration
type Config struct {
	// Application
	App AppConfig

	// Storage
	Storage StorageConfig

	// Backups
	Backup BackupConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
}

// StorageConfig holds inventory storage configuration
type StorageConfig struct {
	DataDir       string
	InventoryFile string
	CategoryFile  string
	DefaultFormat string
	IDPrefix      string
	TXTDelimiter  string
}

// BackupConfig holds backup configuration
type BackupConfig struct {
	Enabled         bool
	SnapshotDir     string
	TimestampLayout string
}

// Load loads configuration from environment variables
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file in development
	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	// Initialize viper
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetTypeByDefaultValue(true)

	// Set defaults
	setDefaults()

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "stockroom"),
			Environment: env,
			Version:     getEnv("APP_VERSION", "dev"),
			LogLevel:    getEnv("LOG_LEVEL", "debug"),
			LogFormat:   getEnv("LOG_FORMAT", "json"),
			Debug:       getBoolEnv("APP_DEBUG", env == "development"),
		},
		Storage: StorageConfig{
			DataDir:       getEnv("STORAGE_DATA_DIR", "data"),
			InventoryFile: getEnv("STORAGE_INVENTORY_FILE", "inventory.json"),
			CategoryFile:  getEnv("STORAGE_CATEGORY_FILE", "categories.yaml"),
			DefaultFormat: getEnv("STORAGE_DEFAULT_FORMAT", "json"),
			IDPrefix:      getEnv("STORAGE_ID_PREFIX", domain.DefaultIDPrefix),
			TXTDelimiter:  getEnv("STORAGE_TXT_DELIMITER", "|"),
		},
		Backup: BackupConfig{
			Enabled:         getBoolEnv("BACKUP_ENABLED", true),
			SnapshotDir:     getEnv("BACKUP_SNAPSHOT_DIR", "backups"),
			TimestampLayout: getEnv("BACKUP_TIMESTAMP_LAYOUT", "20060102_150405"),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage data dir is required")
	}
	if c.Storage.IDPrefix == "" {
		return fmt.Errorf("product id prefix is required")
	}
	if strings.Contains(c.Storage.IDPrefix, "-") {
		return fmt.Errorf("product id prefix must not contain '-'")
	}
	if c.Storage.TXTDelimiter == "" {
		return fmt.Errorf("txt delimiter is required")
	}
	if _, err := ports.ParseFormat(c.Storage.DefaultFormat); err != nil {
		return fmt.Errorf("invalid default format: %w", err)
	}
	return nil
}

// InventoryPath returns the full path of the default inventory file
func (c *Config) InventoryPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.InventoryFile)
}

// CategoryPath returns the full path of the category registry file
func (c *Config) CategoryPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.CategoryFile)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// Helper functions

func setDefaults() {
	viper.SetDefault("app.name", "stockroom")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}
