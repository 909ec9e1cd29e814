package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultAPIBaseURL = "http://127.0.0.1:8000"
	defaultLogLevel   = "info"
	defaultEnv        = EnvLocal
	defaultConfigDir  = ".clusterview"
)

type Config struct {
	Env         string `mapstructure:"app_env"`
	APIBaseURL  string `mapstructure:"api_base_url"`
	LogLevel    string `mapstructure:"log_level"`
	ConfigDir   string `mapstructure:"config_dir"`
	SessionPath string `mapstructure:"session_path"`
}

// MustLoad loads the client configuration from the environment,
// with an optional .env file next to the binary or one level up.
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("failed to load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("API_BASE_URL", defaultAPIBaseURL)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("failed to create config directory: %v\n", err)
	}

	config := &Config{
		Env:         viper.GetString("APP_ENV"),
		APIBaseURL:  viper.GetString("API_BASE_URL"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		ConfigDir:   configDir,
		SessionPath: filepath.Join(configDir, "session.json"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("config_dir must not be empty")
	}
	return nil
}

// IsProd reports whether the client runs against a production gateway.
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev reports whether the client runs in a dev environment.
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal reports whether the client runs locally.
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
