package config

import (
	"crypto/x509"
	"errors"
	"strings"
	"time"

	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/flexprice/paymenthub-go/internal/types"
	"github.com/flexprice/paymenthub-go/internal/validator"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	DefaultConnectTimeout  = 30 * time.Second
	DefaultResponseTimeout = 60 * time.Second
	DefaultMaxRetries      = 2
	MaxAllowedRetries      = 5

	EnvPrefix = "PAYMENTHUB"
)

// ClientConfig holds the settings a client is built from. It is copied
// into the client on construction and never modified afterwards.
type ClientConfig struct {
	APIKey          string            `mapstructure:"api_key" validate:"notblank,apikey"`
	Environment     types.Environment `mapstructure:"environment" validate:"omitempty,oneof=LIVE TEST"`
	ConnectTimeout  time.Duration     `mapstructure:"connect_timeout" validate:"omitempty,gt=0"`
	ResponseTimeout time.Duration     `mapstructure:"response_timeout" validate:"omitempty,gt=0"`
	MaxRetries      *int              `mapstructure:"max_retries" validate:"omitempty,min=0,max=5"`
	// Proxy is either host:port or a full proxy URL.
	Proxy        string `mapstructure:"proxy" validate:"omitempty,hostname_port|url"`
	CABundleFile string `mapstructure:"ca_bundle_file" validate:"omitempty,file"`
	// RootCAs takes precedence over CABundleFile.
	RootCAs *x509.CertPool `mapstructure:"-" validate:"-"`
	// BaseURLOverride replaces the environment's base URL. Meant for tests.
	BaseURLOverride string        `mapstructure:"base_url_override" validate:"omitempty,url"`
	Logging         LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

var clientConfigMessages = validator.Messages{
	"APIKey.notblank":     "You must provide non-blank api key in format 'username:password'",
	"APIKey.apikey":       "Api key does not match format 'username:password'",
	"Environment.oneof":   "Environment must be one of LIVE, TEST",
	"ConnectTimeout.gt":   "Connect timeout must be a positive value",
	"ResponseTimeout.gt":  "Response timeout must be a positive value",
	"MaxRetries.max":      "Maximum allowed number of automatic retries is 5",
	"MaxRetries.min":      "Maximum automatic retries cannot be negative",
	"CABundleFile.file":   "CA bundle file does not exist",
	"BaseURLOverride.url": "Base URL override must be an absolute URL",
	"Level.oneof":         "Log level must be one of debug, info, warn, error",
}

func (c ClientConfig) Validate() error {
	return validator.ValidateRequest(c, clientConfigMessages)
}

// WithDefaults returns a copy with the environment defaulted to TEST.
// The copy shares no pointers with c except RootCAs.
func (c ClientConfig) WithDefaults() ClientConfig {
	if c.Environment == "" {
		c.Environment = types.EnvironmentTest
	}
	if c.MaxRetries != nil {
		c.MaxRetries = lo.ToPtr(*c.MaxRetries)
	}
	return c
}

// BaseURL returns the scheme and host requests are sent to.
func (c ClientConfig) BaseURL() string {
	if c.BaseURLOverride != "" {
		return strings.TrimRight(c.BaseURLOverride, "/")
	}
	return c.Environment.BaseURL()
}

var configKeys = []string{
	"api_key",
	"environment",
	"connect_timeout",
	"response_timeout",
	"max_retries",
	"proxy",
	"ca_bundle_file",
	"base_url_override",
	"logging.level",
}

// Load reads the client configuration. An explicit path must exist;
// otherwise a missing file is tolerated and only the environment is used.
func Load(path string) (*ClientConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("paymenthub")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/paymenthub")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}

	// Without a config file the environment alone is used.
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil, ierr.WithError(err).
			WithHint("Error reading config file").
			Mark(ierr.ErrConfiguration)
	}

	var config ClientConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Error decoding configuration").
			Mark(ierr.ErrConfiguration)
	}

	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
