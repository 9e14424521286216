package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	Server    ServerConfig
	Firestore FirestoreConfig
	Archive   ArchiveConfig
	Export    ExportConfig
	Notion    NotionConfig
	Jobs      JobsConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

// ArchiveConfig configures raw paste archival. An empty bucket disables
// archival.
type ArchiveConfig struct {
	Bucket string
}

type ExportConfig struct {
	Dataset string
	Table   string
}

type NotionConfig struct {
	Token      string
	DatabaseID string
}

type JobsConfig struct {
	QueueSize int
	Workers   int
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	queueSize, err := strconv.Atoi(getEnv("JOB_QUEUE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_QUEUE_SIZE: %w", err)
	}
	workers, err := strconv.Atoi(getEnv("JOB_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_WORKERS: %w", err)
	}
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
		},
		Firestore: FirestoreConfig{
			ProjectID:       getEnv("FIRESTORE_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		Archive: ArchiveConfig{
			Bucket: getEnv("ARCHIVE_BUCKET", ""),
		},
		Export: ExportConfig{
			Dataset: getEnv("BQ_DATASET", "ekstre"),
			Table:   getEnv("BQ_TABLE", "transactions"),
		},
		Notion: NotionConfig{
			Token:      getEnv("NOTION_TOKEN", ""),
			DatabaseID: getEnv("NOTION_DATABASE_ID", ""),
		},
		Jobs: JobsConfig{
			QueueSize: queueSize,
			Workers:   workers,
		},
	}

	if cfg.Firestore.ProjectID == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT_ID is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
