package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceMode string `mapstructure:"service_mode" validate:"required,oneof=production staging test debug local"`
	LogLevel    string `mapstructure:"log_level"`

	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Athena   AthenaConfig   `mapstructure:"athena"`
	Slack    SlackConfig    `mapstructure:"slack"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Mail     MailConfig     `mapstructure:"mail"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	URL     string        `mapstructure:"url" validate:"required"`
	LockKey string        `mapstructure:"lock_key"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`
}

type AthenaConfig struct {
	Region        string        `mapstructure:"region" validate:"required"`
	Database      string        `mapstructure:"database" validate:"required"`
	Bucket        string        `mapstructure:"bucket" validate:"required"`
	RootFolder    string        `mapstructure:"root_folder" validate:"required"`
	MaxExecutions int           `mapstructure:"max_executions" validate:"gt=0"`
	PollInterval  time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
}

type SlackConfig struct {
	Token   string `mapstructure:"token" envconfig:"SLACK_TOKEN"`
	Channel string `mapstructure:"channel" validate:"required"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" validate:"required"`
}

type MailConfig struct {
	// OpsRecipient is copied on every brand mail for auditing.
	OpsRecipient  string  `mapstructure:"ops_recipient" validate:"omitempty,email"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
}

// OutputLocation is the S3 URI Athena writes results under.
func (c *AthenaConfig) OutputLocation() string {
	return fmt.Sprintf("s3://%s/%s", c.Bucket, c.RootFolder)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets come from the environment, never from the file.
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to read env overrides: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
