package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string        `mapstructure:"PORT"`
	DatabasePath      string        `mapstructure:"DATABASE_PATH"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	AccessTokenTTL    time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL   time.Duration `mapstructure:"REFRESH_TOKEN_TTL"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	LogJSON           bool          `mapstructure:"LOG_JSON"`
	EnableCORS        bool          `mapstructure:"ENABLE_CORS"`
	FrontendURL       string        `mapstructure:"FRONTEND_URL"`
	RateLimitRPS      float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int           `mapstructure:"RATE_LIMIT_BURST"`
	EnableMetrics     bool          `mapstructure:"ENABLE_METRICS"`
	EnableReminders   bool          `mapstructure:"ENABLE_REMINDERS"`
	SpoonacularAPIKey string        `mapstructure:"SPOONACULAR_API_KEY"`
	SpoonacularURL    string        `mapstructure:"SPOONACULAR_BASE_URL"`
	DiscordBotToken   string        `mapstructure:"DISCORD_BOT_TOKEN"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "fittrack.db")
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("ENABLE_CORS", false)
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("ENABLE_REMINDERS", true)
	v.SetDefault("SPOONACULAR_BASE_URL", "https://api.spoonacular.com")

	v.BindEnv("JWT_SECRET")
	v.BindEnv("SPOONACULAR_API_KEY")
	v.BindEnv("DISCORD_BOT_TOKEN")

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &config, nil
}
