// Package config loads the application configuration from a YAML file and the environment.
package config

import (
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

// Config represents the application configuration structure.
type Config struct {
	// Environment selects the logger setup: development, production or test.
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:"127.0.0.1:8501" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout bounds the computation of a single page
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Discovery holds the defaults of PC runs.
	Discovery struct {
		// Alpha is the significance level of the independence tests
		Alpha float64 `env:"DISCOVERY_ALPHA" env-default:"0.05" yaml:"alpha"`
		// Concurrency bounds the edges tested at the same time, 0 means GOMAXPROCS
		Concurrency int `env:"DISCOVERY_CONCURRENCY" env-default:"0" yaml:"concurrency"`
		// MaxConditioningSize stops the skeleton search after that level, -1 means no limit
		MaxConditioningSize int `env:"DISCOVERY_MAX_CONDITIONING_SIZE" env-default:"-1" yaml:"maxConditioningSize"`
	} `yaml:"discovery"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads the yaml file at configPath then applies the environment. When configPath is empty
// or does not exist, only the environment and the defaults are used.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		_, err := os.Stat(configPath)

		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
				return nil, errors.Wrap(err, "could not read config")
			}

			return &cfg, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrap(err, "could not stat config")
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "could not read config from environment")
	}

	return &cfg, nil
}
