package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/retailcore/pospricing/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Cache      CacheConfig      `validate:"required"`
	Pricing    PricingConfig    `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type CacheConfig struct {
	Enabled bool
	// TTL bounds how long a resolved candidate rule set stays usable.
	TTL time.Duration `validate:"required"`
	// MaxCachedCandidates caps the size of a candidate set that may be
	// written to the cache; larger sets are fetched every call.
	MaxCachedCandidates int `validate:"required,gt=0"`
}

type PricingConfig struct {
	// SlowCalculationThreshold is the latency above which a calculation
	// is reported as slow. It never alters the result.
	SlowCalculationThreshold time.Duration `validate:"required"`
	// CandidateFetchLimit bounds a single rule store query.
	CandidateFetchLimit int `validate:"required,gt=0"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pospricing")

	v.SetEnvPrefix("POSPRICING")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.RunModeEngine)
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 300*time.Second)
	v.SetDefault("cache.maxcachedcandidates", 10)
	v.SetDefault("pricing.slowcalculationthreshold", 500*time.Millisecond)
	v.SetDefault("pricing.candidatefetchlimit", 50)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns the configuration used by tests and scripts.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.RunModeEngine},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Cache: CacheConfig{
			Enabled:             true,
			TTL:                 300 * time.Second,
			MaxCachedCandidates: 10,
		},
		Pricing: PricingConfig{
			SlowCalculationThreshold: 500 * time.Millisecond,
			CandidateFetchLimit:      50,
		},
	}
}
