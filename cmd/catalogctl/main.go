// Command catalogctl publishes a food catalog to the S3-compatible bucket the
// API reads from at startup.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yanqian/desi-diet/internal/domain/catalog"
	"github.com/yanqian/desi-diet/internal/infra/catalogsource"
	"github.com/yanqian/desi-diet/internal/infra/config"
	"github.com/yanqian/desi-diet/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	var (
		file     = flag.String("file", "", "JSON catalog to publish (default: built-in foods)")
		endpoint = flag.String("endpoint", os.Getenv("CATALOG_R2_ENDPOINT"), "S3/R2 endpoint")
		bucket   = flag.String("bucket", os.Getenv("CATALOG_R2_BUCKET"), "bucket name")
		object   = flag.String("object", envOr("CATALOG_R2_OBJECT", "foods.json"), "object key")
		region   = flag.String("region", os.Getenv("CATALOG_R2_REGION"), "bucket region")
		timeout  = flag.Duration("timeout", 30*time.Second, "upload timeout")
	)
	flag.Parse()

	appLogger := logger.New(&config.Config{Log: config.LogConfig{Level: os.Getenv("LOG_LEVEL")}})
	if *endpoint == "" || *bucket == "" {
		appLogger.Error("endpoint and bucket are required")
		os.Exit(2)
	}

	var src catalog.Source = catalogsource.NewBuiltin()
	if *file != "" {
		src = catalogsource.NewFile(*file)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	items, err := src.Foods(ctx)
	if err != nil {
		fatal(err)
	}
	dest, err := catalogsource.NewR2(*endpoint, os.Getenv("CATALOG_R2_ACCESS_KEY"), os.Getenv("CATALOG_R2_SECRET_KEY"), *bucket, *region, *object, appLogger)
	if err != nil {
		fatal(err)
	}
	if err := dest.Publish(ctx, items); err != nil {
		fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(err error) {
	log.Fatalf("catalogctl: %v", err)
}
