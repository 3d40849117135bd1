// geodump-export reads a dataset, applies the dashboard filters and writes
// the GeoJSON or CSV export to a file or stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/RahmadZikry/geodump/internal/export"
	"github.com/RahmadZikry/geodump/internal/ingest"
	"github.com/RahmadZikry/geodump/internal/logger"
	"github.com/RahmadZikry/geodump/internal/query"
	"github.com/RahmadZikry/geodump/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	var (
		data     = flag.String("data", "", "dataset path or http(s) URL (empty uses the generated fallback)")
		format   = flag.String("format", "geojson", "output format: geojson or csv")
		out      = flag.String("out", "", "output file (empty writes a dated file in the working directory, \"-\" writes to stdout)")
		search   = flag.String("search", "", "text search over district, category and id")
		district = flag.String("district", "", "district filter")
		category = flag.String("category", "", "category filter: organic|plastic|mixed")
		volume   = flag.String("volume", "", "volume filter: small|medium|large")
		days     = flag.Int("days", 0, "keep records observed within the last N days (0 disables)")
		size     = flag.Int("fallback-size", ingest.DefaultFallbackSize, "generated fallback dataset size")
		seed     = flag.Uint64("seed", 1, "generated fallback seed (0 uses the clock)")
		level    = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	zl := logger.Build(logger.Config{Level: *level, Console: true, Component: "geodump-export"}, os.Stderr)
	log := logger.NewSlog(&zl)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st := store.New()
	st.Seed(ingest.Load(ctx, *data, *size, *seed, log))

	view := query.New().Apply(st.All(), query.Filters{
		TextSearch: *search,
		District:   *district,
		Category:   *category,
		Volume:     *volume,
		DayWindow:  *days,
	})

	var (
		buf []byte
		err error
		ext string
	)
	switch *format {
	case "geojson":
		buf, err = export.FeatureCollection(view)
		ext = "json"
	case "csv":
		buf, err = export.CSV(view)
		ext = "csv"
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (want geojson or csv)\n", *format)
		return 2
	}
	if err != nil {
		log.Error("export failed", "err", err)
		return 1
	}

	if *out == "-" {
		_, _ = os.Stdout.Write(buf)
		return 0
	}
	name := *out
	if name == "" {
		name = export.Filename("geodump_data", ext, time.Now())
	}
	if err := os.WriteFile(name, buf, 0o644); err != nil {
		log.Error("write output failed", "path", name, "err", err)
		return 1
	}
	log.Info("export written", "path", name, "records", len(view))
	fmt.Println(name)
	return 0
}
