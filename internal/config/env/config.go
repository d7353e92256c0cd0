package env

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"app"`
	Web struct {
		Port    int  `mapstructure:"port"`
		Prefork bool `mapstructure:"prefork"`
		Cors    struct {
			AllowOrigins string `mapstructure:"allow_origins"`
		} `mapstructure:"cors"`
		RateLimit struct {
			Login struct {
				// requests per second and burst, per client ip
				Rate  float64 `mapstructure:"rate"`
				Burst int     `mapstructure:"burst"`
			} `mapstructure:"login"`
		} `mapstructure:"rate_limit"`
	} `mapstructure:"web"`
	JWT struct {
		Secret                 string        `mapstructure:"secret"`
		RefreshSecret          string        `mapstructure:"refresh_secret"`
		AccessTokenExpiration  time.Duration `mapstructure:"access_token_expiration"`
		RefreshTokenExpiration time.Duration `mapstructure:"refresh_token_expiration"`
	} `mapstructure:"jwt"`
	Password struct {
		Cost       int     `mapstructure:"cost"`
		MinEntropy float64 `mapstructure:"min_entropy"`
	} `mapstructure:"password"`
	Log struct {
		Level int `mapstructure:"level"`
		File  struct {
			Path       string `mapstructure:"path"`
			MaxSize    int    `mapstructure:"max_size"`
			MaxBackups int    `mapstructure:"max_backups"`
			MaxAge     int    `mapstructure:"max_age"`
		} `mapstructure:"file"`
	} `mapstructure:"log"`
	Database struct {
		DSN  string `mapstructure:"dsn"`
		Pool struct {
			Idle     int `mapstructure:"idle"`
			Max      int `mapstructure:"max"`
			Lifetime int `mapstructure:"lifetime"`
		} `mapstructure:"pool"`
		Log struct {
			Level int `mapstructure:"level"`
		} `mapstructure:"log"`
	} `mapstructure:"database"`
	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
		Pool     struct {
			Size        int `mapstructure:"size"`
			MinIdle     int `mapstructure:"min_idle"`
			MaxIdle     int `mapstructure:"max_idle"`
			Lifetime    int `mapstructure:"lifetime"`
			IdleTimeout int `mapstructure:"idle_timeout"`
		} `mapstructure:"pool"`
	} `mapstructure:"redis"`
	Monitoring struct {
		Otel struct {
			Host string `mapstructure:"host"`
		} `mapstructure:"otel"`
	} `mapstructure:"monitoring"`
}

func NewConfig() *Config {
	config := viper.New()

	// Set configuration file details
	config.SetConfigName("config")
	config.SetConfigType("yml")
	config.AddConfigPath("./../")
	config.AddConfigPath("./")

	// jwt.secret can be overridden by JWT_SECRET
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	// Read the configuration file
	if err := config.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error reading config file: %w", err))
	}

	// Unmarshal into the Config struct
	cfg := new(Config)
	if err := config.Unmarshal(cfg); err != nil {
		panic(fmt.Errorf("fatal error unmarshaling config: %w", err))
	}

	return cfg
}

func (c *Config) GetAccessSecret() string {
	return c.JWT.Secret
}

func (c *Config) GetRefreshSecret() string {
	return c.JWT.RefreshSecret
}

// GetAccessTokenExpiration converts the configured seconds into a duration.
func (c *Config) GetAccessTokenExpiration() time.Duration {
	return c.JWT.AccessTokenExpiration * time.Second
}

// GetRefreshTokenExpiration converts the configured seconds into a duration.
func (c *Config) GetRefreshTokenExpiration() time.Duration {
	return c.JWT.RefreshTokenExpiration * time.Second
}
