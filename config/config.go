package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	TVMaze  TVMaze  `json:"tvmaze" yaml:"tvmaze" mapstructure:"tvmaze"`
	Server  Server  `json:"server" yaml:"server" mapstructure:"server"`
	Session Session `json:"session" yaml:"session" mapstructure:"session"`
	Sentry  Sentry  `json:"sentry" yaml:"sentry" mapstructure:"sentry"`
}

// TVMaze configures the upstream show catalog client
type TVMaze struct {
	URI         string        `json:"uri" yaml:"uri" mapstructure:"uri" validate:"required,url"`
	UserAgent   string        `json:"userAgent" yaml:"userAgent" mapstructure:"userAgent"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff" validate:"gte=0"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries" validate:"gte=1"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gte=1,lte=65535"`
}

// Session holds settings applied to every live browser session
type Session struct {
	// LatestWins discards search and episode results that were superseded by a newer request
	LatestWins bool `json:"latestWins" yaml:"latestWins" mapstructure:"latestWins"`
}

// Sentry reporting is disabled when DSN is empty
type Sentry struct {
	DSN         string `json:"dsn" yaml:"dsn" mapstructure:"dsn" validate:"omitempty,url"`
	Environment string `json:"environment" yaml:"environment" mapstructure:"environment"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

// Validate checks the configuration is usable for serving
func (c Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
