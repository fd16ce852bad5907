package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // GRAPHD_DATABASE_URL (required)
	HTTPAddr    string // GRAPHD_HTTP_ADDR (default ":8080")
	NATSURL     string // GRAPHD_NATS_URL (optional, empty = no events)
	AuthToken   string // GRAPHD_AUTH_TOKEN (optional, empty = auth disabled)

	// Snapshot settings
	SyncInterval   time.Duration // GRAPHD_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // GRAPHD_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // GRAPHD_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // GRAPHD_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // GRAPHD_SYNC_S3_KEY (default "graphd/snapshot.jsonl")
	SyncFile       string        // GRAPHD_SYNC_FILE (enables local file snapshots when set)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("GRAPHD_DATABASE_URL"),
		HTTPAddr:       envOrDefault("GRAPHD_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("GRAPHD_NATS_URL"),
		AuthToken:      os.Getenv("GRAPHD_AUTH_TOKEN"),
		SyncS3Bucket:   os.Getenv("GRAPHD_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("GRAPHD_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("GRAPHD_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("GRAPHD_SYNC_S3_KEY", "graphd/snapshot.jsonl"),
		SyncFile:       os.Getenv("GRAPHD_SYNC_FILE"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("GRAPHD_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("GRAPHD_SYNC_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("GRAPHD_SYNC_INTERVAL: %w", err)
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
