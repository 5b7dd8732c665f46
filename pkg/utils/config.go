package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Facility  FacilityConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// FacilityConfig holds the operating day used by the availability heatmap.
// Times are "15:04" clock strings.
type FacilityConfig struct {
	OpeningTime    string
	ClosingTime    string
	SubSlotMinutes int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type CacheConfig struct {
	CatalogTTLSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("FACILITY_OPENING_TIME", "06:00")
	viper.SetDefault("FACILITY_CLOSING_TIME", "22:00")
	viper.SetDefault("HEATMAP_SUB_SLOT_MINUTES", 30)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("CATALOG_CACHE_TTL_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Facility: FacilityConfig{
			OpeningTime:    viper.GetString("FACILITY_OPENING_TIME"),
			ClosingTime:    viper.GetString("FACILITY_CLOSING_TIME"),
			SubSlotMinutes: viper.GetInt("HEATMAP_SUB_SLOT_MINUTES"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Cache: CacheConfig{
			CatalogTTLSeconds: viper.GetInt("CATALOG_CACHE_TTL_SECONDS"),
		},
	}

	return config, nil
}
