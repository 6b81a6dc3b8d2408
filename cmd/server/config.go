package main

import (
	"log"
	"os"
	"time"

	"gallerio/internal/services"
)

type config struct {
	Addr     string
	Root     string
	CacheTTL time.Duration

	// Optional S3 mode; active when S3Endpoint is set.
	S3Endpoint  string
	S3Bucket    string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
	S3Secure    bool
}

func (c config) s3Mode() bool {
	return c.S3Endpoint != ""
}

// loadConfig reads settings from the environment, logging the defaults it
// falls back on.
func loadConfig() config {
	cfg := config{
		Addr:     os.Getenv("GALLERY_ADDR"),
		Root:     os.Getenv("GALLERY_ROOT"),
		CacheTTL: services.DefaultCacheTTL,

		S3Endpoint:  os.Getenv("GALLERY_S3_ENDPOINT"),
		S3Bucket:    os.Getenv("GALLERY_S3_BUCKET"),
		S3Prefix:    os.Getenv("GALLERY_S3_PREFIX"),
		S3AccessKey: os.Getenv("GALLERY_S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("GALLERY_S3_SECRET_KEY"),
		S3Secure:    os.Getenv("GALLERY_S3_SECURE") == "true",
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Root == "" {
		cfg.Root = "./images"
		log.Printf("GALLERY_ROOT not set, using default: %s", cfg.Root)
	}
	if raw := os.Getenv("GALLERY_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			log.Printf("invalid GALLERY_CACHE_TTL %q, using default: %s", raw, cfg.CacheTTL)
		} else {
			cfg.CacheTTL = ttl
		}
	}

	return cfg
}
