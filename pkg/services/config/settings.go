package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/advisor"
	"github.com/de-tools/cost-advisor/pkg/services/pricing"
	"github.com/spf13/viper"
)

const EnvPrefix = "ADVISOR"

type Settings struct {
	Server  ServerSettings  `mapstructure:"server"`
	Log     LogSettings     `mapstructure:"log"`
	AWS     AWSSettings     `mapstructure:"aws"`
	Advisor AdvisorSettings `mapstructure:"advisor"`
	Pricing PricingSettings `mapstructure:"pricing"`
	Billing BillingSettings `mapstructure:"billing"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

type AWSSettings struct {
	Profile string `mapstructure:"profile"`
	Region  string `mapstructure:"region"`
	RoleARN string `mapstructure:"role_arn"`
}

type AdvisorSettings struct {
	Workers     int           `mapstructure:"workers"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
}

type PricingSettings struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type BillingSettings struct {
	Platform string `mapstructure:"platform"`
	Profile  string `mapstructure:"profile"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.role_arn", "")
	v.SetDefault("advisor.workers", 8)
	v.SetDefault("advisor.call_timeout", 10*time.Second)
	v.SetDefault("pricing.requests_per_second", 5.0)
	v.SetDefault("pricing.burst", 5)
	v.SetDefault("billing.platform", "aws")
	v.SetDefault("billing.profile", "")
}

// LoadSettings reads the optional YAML file at path and applies ADVISOR_*
// environment overrides, e.g. ADVISOR_SERVER_PORT.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.Advisor.Workers <= 0 {
		return nil, fmt.Errorf("advisor.workers must be positive, got %d", s.Advisor.Workers)
	}
	return &s, nil
}

// CloudContext is the default context when a request names no profile.
func (s *Settings) CloudContext() domain.CloudContext {
	return domain.CloudContext{
		Profile: s.AWS.Profile,
		Region:  s.AWS.Region,
		RoleARN: s.AWS.RoleARN,
	}
}

func (s *Settings) AdvisorSettings() advisor.Settings {
	return advisor.Settings{
		Workers:     s.Advisor.Workers,
		CallTimeout: s.Advisor.CallTimeout,
		Pricing: pricing.Settings{
			RequestsPerSecond: s.Pricing.RequestsPerSecond,
			Burst:             s.Pricing.Burst,
			CallTimeout:       s.Advisor.CallTimeout,
		},
	}
}
