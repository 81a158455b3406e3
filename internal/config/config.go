package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// ShiftSeries defines a recurring run of shifts to create on demand,
// e.g. every weekday morning in the emergency department.
type ShiftSeries struct {
	Name              string         `yaml:"name" validate:"required"`
	RRule             string         `yaml:"rrule" validate:"required"`
	ShiftType         string         `yaml:"shiftType" validate:"required,oneof=morning afternoon evening night on_call"`
	Department        string         `yaml:"department" validate:"required"`
	StartTime         string         `yaml:"startTime" validate:"required"`
	EndTime           string         `yaml:"endTime" validate:"required"`
	RequiredStaff     map[string]int `yaml:"requiredStaff,omitempty"`
	MinimumSkillLevel int            `yaml:"minimumSkillLevel,omitempty" validate:"omitempty,min=1,max=10"`
	Priority          string         `yaml:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	MaxCapacity       *int           `yaml:"maxCapacity,omitempty" validate:"omitempty,min=1"`
}

// Config represents the application configuration. YAML supplies the
// durable settings; secrets and deploy-time knobs overlay from the
// environment.
type Config struct {
	ServerAddr string `yaml:"serverAddr,omitempty" env:"SERVER_ADDR"`

	// DatabaseDSN selects the postgres backend; when empty the server
	// runs on the in-memory store with the demo dataset.
	DatabaseDSN string `yaml:"databaseDSN,omitempty" env:"DATABASE_DSN"`

	GroqAPIKey string `yaml:"groqAPIKey,omitempty" env:"GROQ_API_KEY"`
	GroqModel  string `yaml:"groqModel,omitempty"`

	RedisAddr     string `yaml:"redisAddr,omitempty" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redisPassword,omitempty" env:"REDIS_PASSWORD"`

	RabbitMQURL string `yaml:"rabbitMQURL,omitempty" env:"RABBITMQ_URL"`

	SMTPHost     string `yaml:"smtpHost,omitempty" env:"SMTP_HOST"`
	SMTPPort     int    `yaml:"smtpPort,omitempty" env:"SMTP_PORT"`
	SMTPUsername string `yaml:"smtpUsername,omitempty" env:"SMTP_USERNAME"`
	SMTPPassword string `yaml:"smtpPassword,omitempty" env:"SMTP_PASSWORD"`
	AdminEmail   string `yaml:"adminEmail,omitempty" env:"ADMIN_EMAIL"`

	ShiftSeries []ShiftSeries `yaml:"shiftSeries,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads the configuration from hospital_config.yaml, looking in the
// current directory first and then the user's home directory, and applies
// the environment overlay. A missing config file is not an error: every
// setting can come from the environment.
func Load() (*Config, error) {
	cfg := &Config{}

	configPath, err := findConfigFile()
	if err == nil {
		cfg, err = LoadFromPath(configPath)
		if err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8000"
	}

	return cfg, nil
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, series := range cfg.ShiftSeries {
		if _, err := rrule.StrToRRule(series.RRule); err != nil {
			return fmt.Errorf("invalid rrule in shiftSeries[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for hospital_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "hospital_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
