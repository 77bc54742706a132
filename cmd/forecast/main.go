// Command forecast runs one rated forecast for a list of beaches and prints
// the result grouped by time. It reads the same environment as the API.
//
// Usage:
//
//	go run ./cmd/forecast -beaches beaches.json -out forecast.json
//
// The beaches file is a JSON array of {"name","position","lat","lng"} objects.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/surf-forecast-service/internal/adapter/stormglass"
	"github.com/couchcryptid/surf-forecast-service/internal/config"
	"github.com/couchcryptid/surf-forecast-service/internal/domain"
	"github.com/couchcryptid/surf-forecast-service/internal/forecast"
	"github.com/couchcryptid/surf-forecast-service/internal/observability"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	beachesPath := flag.String("beaches", "", "path to a JSON array of beaches")
	outPath := flag.String("out", "", "output path for the forecast JSON (default stdout)")
	flag.Parse()

	if *beachesPath == "" {
		flag.Usage()
		return errors.New("missing required flag: -beaches")
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	beaches, err := readBeaches(*beachesPath)
	if err != nil {
		return err
	}

	// stdout carries the forecast, so logs go to stderr.
	logger := observability.NewLoggerTo(os.Stderr, cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	client := stormglass.NewClient(cfg.StormGlassAPIURL, cfg.StormGlassAPIToken, cfg.StormGlassTimeout, clock, metrics, logger)
	fetcher := stormglass.NewCachedClient(client, cfg.ForecastCacheTTL, clock, metrics, logger)
	svc := forecast.NewService(fetcher, domain.Rating{}, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := svc.ProcessForecastForBeaches(ctx, beaches)
	if err != nil {
		return err
	}

	if *outPath == "" {
		return writeForecast(os.Stdout, result)
	}
	return writeForecastFile(*outPath, result)
}

// writeForecastFile writes the forecast to path, reporting close errors so a
// truncated file never exits cleanly.
func writeForecastFile(path string, result []domain.TimeForecast) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeForecast(f, result); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// readBeaches loads and checks the beaches file.
func readBeaches(path string) ([]domain.Beach, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read beaches: %w", err)
	}
	var beaches []domain.Beach
	if err := json.Unmarshal(data, &beaches); err != nil {
		return nil, fmt.Errorf("parse beaches: %w", err)
	}
	for i, b := range beaches {
		if !b.Position.Valid() {
			return nil, fmt.Errorf("beach %d (%s): invalid position %q", i, b.Name, b.Position)
		}
	}
	return beaches, nil
}

func writeForecast(w io.Writer, result []domain.TimeForecast) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("write forecast: %w", err)
	}
	return nil
}
