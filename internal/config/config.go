package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	ExtractionAddress string
	AdminToken        string

	MaxFileSize int64
	ScanWindow  int
	ScanTimeout time.Duration

	RepairInterval time.Duration
	RepairGrace    time.Duration
	WorkerPoolSize int

	ShutdownTimeout time.Duration

	BlobDriver             string
	BlobFSRoot             string
	BlobGCSBucket          string
	BlobGCSCredentialsFile string
	BlobS3Bucket           string
	BlobS3Region           string
	BlobS3Endpoint         string
	BlobS3AccessKeyID      string
	BlobS3SecretAccessKey  string
	BlobS3PathStyle        bool
}

const (
	defaultRunAddress      = ":8080"
	defaultMaxFileSize     = 10 << 20
	defaultScanWindow      = 1000
	defaultScanTimeout     = 10 * time.Second
	defaultRepairInterval  = 30 * time.Second
	defaultRepairGrace     = time.Minute
	defaultWorkerPoolSize  = 2
	defaultShutdownTimeout = 10 * time.Second
	defaultBlobFSRoot      = "./attachments"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		ExtractionAddress: getString(lookup, "EXTRACTION_ADDRESS", ""),
		AdminToken:        getString(lookup, "ADMIN_TOKEN", ""),
		MaxFileSize:       getInt64(lookup, "MAX_FILE_SIZE", defaultMaxFileSize),
		ScanWindow:        getInt(lookup, "SCAN_WINDOW", defaultScanWindow),
		ScanTimeout:       getDuration(lookup, "SCAN_TIMEOUT", defaultScanTimeout),
		RepairInterval:    getDuration(lookup, "REPAIR_INTERVAL", defaultRepairInterval),
		RepairGrace:       getDuration(lookup, "REPAIR_GRACE", defaultRepairGrace),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),

		BlobDriver:             getString(lookup, "BLOB_DRIVER", "fs"),
		BlobFSRoot:             getString(lookup, "BLOB_FS_ROOT", defaultBlobFSRoot),
		BlobGCSBucket:          getString(lookup, "BLOB_GCS_BUCKET", ""),
		BlobGCSCredentialsFile: getString(lookup, "BLOB_GCS_CREDENTIALS_FILE", ""),
		BlobS3Bucket:           getString(lookup, "BLOB_S3_BUCKET", ""),
		BlobS3Region:           getString(lookup, "BLOB_S3_REGION", ""),
		BlobS3Endpoint:         getString(lookup, "BLOB_S3_ENDPOINT", ""),
		BlobS3AccessKeyID:      getString(lookup, "BLOB_S3_ACCESS_KEY_ID", ""),
		BlobS3SecretAccessKey:  getString(lookup, "BLOB_S3_SECRET_ACCESS_KEY", ""),
		BlobS3PathStyle:        getBool(lookup, "BLOB_S3_PATH_STYLE", false),
	}

	fs := flag.NewFlagSet("lyfe-inventory", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		scanTimeoutStr     = cfg.ScanTimeout.String()
		repairIntervalStr  = cfg.RepairInterval.String()
		repairGraceStr     = cfg.RepairGrace.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.ExtractionAddress, "x", cfg.ExtractionAddress, "Document extraction service base URL")
	fs.StringVar(&cfg.AdminToken, "admin-token", cfg.AdminToken, "Shared token for destructive admin operations")
	fs.Int64Var(&cfg.MaxFileSize, "max-file-size", cfg.MaxFileSize, "Attachment size ceiling in bytes")
	fs.IntVar(&cfg.ScanWindow, "scan-window", cfg.ScanWindow, "Number of latest transactions the projector replays")
	fs.StringVar(&scanTimeoutStr, "scan-timeout", scanTimeoutStr, "Budget for one projector scan")
	fs.StringVar(&repairIntervalStr, "repair-interval", repairIntervalStr, "Interval between transition repair passes")
	fs.StringVar(&repairGraceStr, "repair-grace", repairGraceStr, "Age before an incomplete transition is repaired")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent repair workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.BlobDriver, "blob-driver", cfg.BlobDriver, "Attachment blob backend (fs, gcs, s3, memory)")
	fs.StringVar(&cfg.BlobFSRoot, "blob-root", cfg.BlobFSRoot, "Directory for the fs blob backend")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ScanTimeout, err = time.ParseDuration(scanTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid scan timeout: %w", err)
	}
	if cfg.RepairInterval, err = time.ParseDuration(repairIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid repair interval: %w", err)
	}
	if cfg.RepairGrace, err = time.ParseDuration(repairGraceStr); err != nil {
		return nil, fmt.Errorf("invalid repair grace: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if tokenFile, ok := lookup("ADMIN_TOKEN_FILE"); ok && tokenFile != "" {
		content, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("read admin token file: %w", err)
		}
		cfg.AdminToken = string(content)
	}

	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = defaultMaxFileSize
	}
	if cfg.ScanWindow <= 0 {
		cfg.ScanWindow = defaultScanWindow
	}
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = defaultScanTimeout
	}
	if cfg.RepairInterval <= 0 {
		cfg.RepairInterval = defaultRepairInterval
	}
	if cfg.RepairGrace <= 0 {
		cfg.RepairGrace = defaultRepairGrace
	}
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
