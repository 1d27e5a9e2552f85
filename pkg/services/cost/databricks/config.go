package databricks

import (
	"fmt"

	"github.com/databricks/databricks-sdk-go/config"
	"github.com/spf13/viper"
)

type Config struct {
	Host     string `mapstructure:"host"`
	Token    string `mapstructure:"token"`
	Profile  string `mapstructure:"profile"`
	HTTPPath string `mapstructure:"http_path" validate:"required"`
	Catalog  string `mapstructure:"catalog"`
	Schema   string `mapstructure:"schema"`
	Table    string `mapstructure:"table" validate:"required"`
}

func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse databricks config: %w", err)
	}
	if cfg.HTTPPath == "" {
		return nil, fmt.Errorf("http_path is required")
	}
	if cfg.Table == "" {
		return nil, fmt.Errorf("table is required")
	}
	return &cfg, nil
}

// ResolveCredentials fills host and token from a ~/.databrickscfg profile
// when the file does not set them directly.
func (c *Config) ResolveCredentials() error {
	if c.Host != "" && c.Token != "" {
		return nil
	}
	if c.Profile == "" {
		return fmt.Errorf("either host and token or a databricks profile must be set")
	}

	sdkCfg := &config.Config{Profile: c.Profile}
	if err := sdkCfg.EnsureResolved(); err != nil {
		return fmt.Errorf("failed to resolve databricks profile %s: %w", c.Profile, err)
	}
	c.Host = sdkCfg.Host
	c.Token = sdkCfg.Token
	if c.Token == "" {
		return fmt.Errorf("databricks profile %s has no token", c.Profile)
	}
	return nil
}
