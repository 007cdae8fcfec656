package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port       string
	Env        string
	LogLevel   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// HostURL is the public base URL used to qualify relative media paths.
	HostURL string
	// Fixed site coordinate for the weather slot.
	WeatherLat    float64
	WeatherLon    float64
	WeatherAPIURL string
	JWTSecret     string
	JWTExpiresIn  string // minutes
	AdminUsername string
	AdminPassword string
	SentryDSN     string
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		Env:           getenv("ENV", "dev"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "signage_db"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		HostURL:       getenv("HOST_URL", "https://rebounder-signage.onrender.com"),
		WeatherLat:    getenvFloat("WEATHER_LAT", 35.3912),
		WeatherLon:    getenvFloat("WEATHER_LON", 136.7223),
		WeatherAPIURL: getenv("WEATHER_API_URL", "https://api.open-meteo.com/v1/forecast"),
		JWTSecret:     getenv("JWT_SECRET", "supersecret_change_me"),
		JWTExpiresIn:  getenv("JWT_EXPIRES_IN", "60"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		SentryDSN:     getenv("SENTRY_DSN", ""),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
