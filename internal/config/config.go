package config

import (
	"github.com/spf13/viper"
)

// Config holds the runtime settings for the API. Everything comes from
// environment variables, with local defaults suitable for development.
type Config struct {
	AppPort     string
	DatabaseURL string
	RedisAddr   string

	Auth0Domain  string
	ClientID     string
	ClientSecret string
	APIAudience  string
	CallbackURL  string
}

// Load reads configuration from the environment via viper.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("AUTH0_CALLBACK_URL", "http://localhost:8080/callback")
	viper.AutomaticEnv()

	return Config{
		AppPort:     viper.GetString("APP_PORT"),
		DatabaseURL: viper.GetString("DATABASE_URL"),
		RedisAddr:   viper.GetString("REDIS_ADDR"),

		Auth0Domain:  viper.GetString("AUTH0_DOMAIN"),
		ClientID:     viper.GetString("CLIENT_ID"),
		ClientSecret: viper.GetString("CLIENT_SECRET"),
		APIAudience:  viper.GetString("API_AUDIENCE"),
		CallbackURL:  viper.GetString("AUTH0_CALLBACK_URL"),
	}
}
