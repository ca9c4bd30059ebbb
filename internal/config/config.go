package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // FORMS_DATABASE_URL (required)
	HTTPAddr    string // FORMS_HTTP_ADDR (default ":8080")
	NATSURL     string // FORMS_NATS_URL (optional, empty = no events)
	AuthToken   string // FORMS_AUTH_TOKEN (optional, empty = auth disabled)

	// Integration platform (custom-form field-mapping provisioning)
	IntegrationBaseURL string // FORMS_INTEGRATION_URL (optional, empty = provisioning disabled)
	IntegrationToken   string // FORMS_INTEGRATION_TOKEN (optional)

	// Webhook relay endpoints
	WebhookDefaultURL string // FORMS_WEBHOOK_DEFAULT_URL (built-in record types)
	WebhookCustomURL  string // FORMS_WEBHOOK_CUSTOM_URL (custom record types)

	// Export settings
	SyncInterval   time.Duration // FORMS_SYNC_INTERVAL (default 0 = disabled)
	SyncS3Bucket   string        // FORMS_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // FORMS_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // FORMS_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // FORMS_SYNC_S3_KEY (default "forms/backup.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:        os.Getenv("FORMS_DATABASE_URL"),
		HTTPAddr:           envOrDefault("FORMS_HTTP_ADDR", ":8080"),
		NATSURL:            os.Getenv("FORMS_NATS_URL"),
		AuthToken:          os.Getenv("FORMS_AUTH_TOKEN"),
		IntegrationBaseURL: os.Getenv("FORMS_INTEGRATION_URL"),
		IntegrationToken:   os.Getenv("FORMS_INTEGRATION_TOKEN"),
		WebhookDefaultURL:  os.Getenv("FORMS_WEBHOOK_DEFAULT_URL"),
		WebhookCustomURL:   os.Getenv("FORMS_WEBHOOK_CUSTOM_URL"),
		SyncS3Bucket:       os.Getenv("FORMS_SYNC_S3_BUCKET"),
		SyncS3Endpoint:     os.Getenv("FORMS_SYNC_S3_ENDPOINT"),
		SyncS3Region:       envOrDefault("FORMS_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:          envOrDefault("FORMS_SYNC_S3_KEY", "forms/backup.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("FORMS_DATABASE_URL is required")
	}

	if intervalStr := os.Getenv("FORMS_SYNC_INTERVAL"); intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("FORMS_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
