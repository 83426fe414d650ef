package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName               string
	AppEnv                string
	AppPort               string
	DatabaseDriver        string
	DatabaseURL           string
	RedisURL              string
	NATSURL               string
	AlertsChannel         string
	JWTSecret             string
	StressThreshold       int
	RiskAttendancePercent float64
	RiskGradeThreshold    float64
	RiskStressThreshold   float64
	SurveyRateLimitPerMin int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("WELLBEING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Wellbeing API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("alerts.channel", "wellbeing")
	v.SetDefault("detection.stress_threshold", 4)
	v.SetDefault("risk.attendance_threshold", 70)
	v.SetDefault("risk.grade_threshold", 40)
	v.SetDefault("risk.stress_threshold", 4)
	v.SetDefault("rate_limit.surveys_per_minute", 30)

	cfg := Config{
		AppName:               v.GetString("app.name"),
		AppEnv:                v.GetString("app.env"),
		AppPort:               v.GetString("app.port"),
		DatabaseDriver:        strings.ToLower(v.GetString("database.driver")),
		DatabaseURL:           v.GetString("database.url"),
		RedisURL:              v.GetString("redis.url"),
		NATSURL:               v.GetString("nats.url"),
		AlertsChannel:         v.GetString("alerts.channel"),
		JWTSecret:             v.GetString("jwt.secret"),
		StressThreshold:       v.GetInt("detection.stress_threshold"),
		RiskAttendancePercent: v.GetFloat64("risk.attendance_threshold"),
		RiskGradeThreshold:    v.GetFloat64("risk.grade_threshold"),
		RiskStressThreshold:   v.GetFloat64("risk.stress_threshold"),
		SurveyRateLimitPerMin: v.GetInt("rate_limit.surveys_per_minute"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.StressThreshold < 1 || cfg.StressThreshold > 5 {
		return Config{}, fmt.Errorf("detection stress threshold must be between 1 and 5, got %d", cfg.StressThreshold)
	}

	if cfg.SurveyRateLimitPerMin <= 0 {
		cfg.SurveyRateLimitPerMin = 30
	}

	return cfg, nil
}
