package config

import (
	"github.com/spf13/viper"

	"github.com/creatorgate/service-subscription/internal/platform/database"
)

// JWTConfig holds token verification settings.
type JWTConfig struct {
	Secret string
}

// KafkaConfig holds broker and consumer-group settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// RenewalConfig controls the auto-renewal sweep.
type RenewalConfig struct {
	CronSpec  string
	BatchSize int
}

// ServiceConfig holds all configuration for the subscription service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    database.PostgresConfig
	JWTConfig   JWTConfig
	KafkaConfig KafkaConfig
	Renewal     RenewalConfig
}

// Load reads configuration from environment variables with development defaults.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", ":8084")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "subscription")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("KAFKA_BROKERS", []string{"localhost:9092"})
	v.SetDefault("KAFKA_GROUP_PREFIX", "creatorgate.")
	v.SetDefault("RENEWAL_CRON", "@every 1m")
	v.SetDefault("RENEWAL_BATCH_SIZE", 100)

	return &ServiceConfig{
		Port:   v.GetString("SERVICE_PORT"),
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTConfig: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     v.GetStringSlice("KAFKA_BROKERS"),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
		Renewal: RenewalConfig{
			CronSpec:  v.GetString("RENEWAL_CRON"),
			BatchSize: v.GetInt("RENEWAL_BATCH_SIZE"),
		},
	}, nil
}
