package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"asciimaps/internal/config"
	"asciimaps/internal/debug"
	"asciimaps/internal/geo"
	"asciimaps/internal/store"
	"asciimaps/internal/ui"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up debug logging if requested
	if cfg.Log.File != "" {
		logFile, err := os.Create(cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer logFile.Close()
			debug.SetOutput(logFile, cfg.Log.Level)
			debug.Log("asciimaps debug log started")
			fmt.Printf("Debug logging enabled: %s\n", cfg.Log.File)
		}
	}

	center, err := cfg.Map.CenterPoint()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: map.center: %v\n", err)
		os.Exit(1)
	}
	mode, err := cfg.Map.ParsedMode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: map.mode: %v\n", err)
		os.Exit(1)
	}

	// Build the gazetteer
	gazetteer := geo.BuiltinGazetteer()
	if cfg.Data.Places != "" {
		places, err := geo.LoadPlacesFile(cfg.Data.Places)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load places: %v\n", err)
			os.Exit(1)
		}
		gazetteer.Add(places...)
	}

	// Open the local data store and import any archives given
	dataStore, err := store.New(cfg.Data.Layers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open data directory: %v\n", err)
		os.Exit(1)
	}
	for _, archive := range cfg.Data.Import {
		fmt.Printf("Importing %s...\n", archive)
		if _, err := dataStore.Import(archive); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	for _, ds := range dataStore.Missing() {
		debug.Warn("dataset not found", "name", ds.Name, "path", dataStore.Path(ds.Base))
	}

	// Load shapefiles
	fmt.Println("Loading geographic features...")
	layers := geo.NewLayerLoader(dataStore.Dir(), cfg.Data.RoadDetail).LoadAll()
	fmt.Printf("Loaded %d feature types\n", len(layers))

	matches, _ := filepath.Glob(filepath.Join(dataStore.Dir(), "*populated_places*.shp"))
	for _, path := range matches {
		places, err := geo.LoadPlacesShapefile(path)
		if err != nil {
			debug.Warn("skipping populated places", "path", path, "err", err)
			continue
		}
		gazetteer.Add(places...)
	}
	debug.Log("gazetteer ready", "places", gazetteer.Len())

	app, err := ui.NewApp(ui.Options{
		Center:     center,
		Scale:      cfg.Map.Scale,
		Mode:       mode,
		Query:      cfg.Search.Query,
		SnapRadius: cfg.Search.SnapRadius,
		FPS:        cfg.UI.FPS,
		Layers:     layers,
		Gazetteer:  gazetteer,
		Places:     gazetteer.Places(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create application: %v\n", err)
		os.Exit(1)
	}

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()
}
