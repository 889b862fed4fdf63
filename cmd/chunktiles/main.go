// Command chunktiles converts a directory of per-chunk screenshot
// output — one info.json manifest plus one PNG/BMP per world chunk —
// into a slippy-map tile pyramid.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pyramidgen/chunktiles/internal/chunkname"
	"github.com/pyramidgen/chunktiles/internal/engine"
	"github.com/pyramidgen/chunktiles/internal/stage"
	"github.com/pyramidgen/chunktiles/internal/viewer"
)

func main() {
	var (
		inputDir       string
		outputDir      string
		format         string
		quality        int
		concurrency    int
		verbose        bool
		viewerTemplate string
	)

	flag.StringVar(&inputDir, "input", "", "Directory containing info.json and chunk images (mandatory)")
	flag.StringVar(&outputDir, "output", "", "Output directory for the tile pyramid and map-index (mandatory)")
	flag.StringVar(&format, "format", "jpeg", "Tile container: jpeg, webp")
	flag.IntVar(&quality, "quality", 80, "Tile encoding quality 1-100")
	flag.IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Number of parallel workers")
	flag.BoolVar(&verbose, "verbose", false, "Verbose progress output")
	flag.StringVar(&viewerTemplate, "viewer-template", "", "Optional web-viewer template file; $MAP_DATA$ is replaced and the result written to <output>/index.html")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: chunktiles -input <dir> -output <dir> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Build a zoomable tile pyramid from per-chunk screenshot output.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if inputDir == "" || outputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	enc, err := stage.NewEncoder(format, quality)
	if err != nil {
		log.Fatalf("Encoder: %v", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Fatalf("Creating output directory: %v", err)
	}

	manifestPath := filepath.Join(inputDir, "info.json")
	manifestBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		log.Fatalf("Reading manifest: %v", err)
	}

	chunkPaths, err := collectChunkFiles(inputDir)
	if err != nil {
		log.Fatalf("Collecting chunk images: %v", err)
	}
	if verbose {
		log.Printf("Found %d chunk image(s) in %s", len(chunkPaths), inputDir)
	}

	cfg := engine.Config{
		OutputDir:   outputDir,
		Encoder:     enc,
		Concurrency: concurrency,
		Verbose:     verbose,
	}
	coord := engine.NewCoordinator(cfg)

	start := time.Now()
	go feedCoordinator(coord, manifestBytes, chunkPaths)

	stats, err := coord.Run()
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	if verbose {
		log.Printf("Finished: %d tiles across %d surface(s) in %v",
			stats.LoadedTiles, stats.Surfaces, time.Since(start).Round(time.Millisecond))
	}

	if viewerTemplate != "" {
		if err := writeViewer(viewerTemplate, outputDir, coord.MapIndexJSON()); err != nil {
			log.Fatalf("Writing viewer: %v", err)
		}
	} else {
		indexPath := filepath.Join(outputDir, "map-index.json")
		if err := os.WriteFile(indexPath, coord.MapIndexJSON(), 0o644); err != nil {
			log.Fatalf("Writing map-index: %v", err)
		}
	}

	os.Exit(0)
}

// feedCoordinator submits the manifest, then each chunk image in turn,
// onto the coordinator's event stream. It runs on its own goroutine so
// the coordinator's Run loop can interleave consuming completions
// with accepting new submissions. The manifest must arrive before any
// chunk.
func feedCoordinator(coord *engine.Coordinator, manifestBytes []byte, chunkPaths []string) {
	coord.SubmitManifest(manifestBytes)
	for _, path := range chunkPaths {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		if err := coord.SubmitChunk(stem, data); err != nil {
			log.Printf("skipping %s: %v", path, err)
		}
	}
}

// collectChunkFiles globs every .png/.bmp file directly under dir
// whose stem parses as a chunk name, skipping anything that doesn't
// (e.g. info.json itself, or stray files).
func collectChunkFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".png" && ext != ".bmp" {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if _, err := chunkname.Parse(stem); err != nil {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

func writeViewer(templatePath, outputDir string, mapIndexJSON []byte) error {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("reading viewer template: %w", err)
	}
	out, err := viewer.Inject(tmpl, mapIndexJSON)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, "index.html"), out, 0o644)
}
