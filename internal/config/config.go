package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// Either JWTSecret or JWTSecretName must be set. When JWTSecretName is set the
	// secret is read from Secret Manager at startup.
	JWTSecret     string `envconfig:"JWT_SECRET"`
	JWTSecretName string `envconfig:"JWT_SECRET_NAME"`

	// Image store (S3 compatible)
	S3URL       string `envconfig:"S3_URL" required:"true"`
	S3PublicURL string `envconfig:"S3_PUBLIC_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET" required:"true"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY" required:"true"`
	FolderName  string `envconfig:"FOLDER_NAME" default:"thumbnails"`

	// Course lifecycle events. Publishing is disabled when either value is empty.
	GCPProjectID           string `envconfig:"GCP_PROJECT_ID"`
	GCPCredentialsFile     string `envconfig:"GCP_CREDENTIALS_FILE"`
	PubSubCourseEventTopic string `envconfig:"PUBSUB_COURSE_EVENT_TOPIC"`
	PubSubEmulatorHost     string `envconfig:"PUBSUB_EMULATOR_HOST"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Repair orchestrator settings
	RepairQueueName           string `envconfig:"REPAIR_QUEUE_NAME" default:"course_repair_queue"`
	RepairPollTimeoutSec      int    `envconfig:"REPAIR_POLL_TIMEOUT_SEC" default:"30"`
	RepairPollMaxMsg          int    `envconfig:"REPAIR_POLL_MAX_MSG" default:"1"`
	RepairMaxRetries          int    `envconfig:"REPAIR_MAX_RETRIES" default:"5"`
	RepairBackoffInitialSec   int    `envconfig:"REPAIR_BACKOFF_INITIAL_SEC" default:"1"`
	RepairBackoffMaxSec       int    `envconfig:"REPAIR_BACKOFF_MAX_SEC" default:"60"`
	RepairDeadLetterQueueName string `envconfig:"REPAIR_DEAD_LETTER_QUEUE_NAME" default:"course_repair_queue_dlq"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" && cfg.JWTSecretName == "" {
		return nil, fmt.Errorf("one of JWT_SECRET or JWT_SECRET_NAME is required")
	}
	return &cfg, nil
}

// DSN builds a key/value Postgres connection string for the pgx driver.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// EventsEnabled reports whether course lifecycle events should be published.
func (c *Config) EventsEnabled() bool {
	return c.GCPProjectID != "" && c.PubSubCourseEventTopic != ""
}
