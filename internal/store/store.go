package store

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"asciimaps/internal/debug"
)

// Store manages the local directory holding Natural Earth shapefiles
type Store struct {
	dir string
}

// Dataset is a Natural Earth layer the map knows how to draw
type Dataset struct {
	Name string // Friendly name
	Base string // Base filename (without extension)
}

// Natural Earth datasets - 1:50m for most layers, roads only exist at 1:10m
var Datasets = []Dataset{
	{Name: "Country borders", Base: "ne_50m_admin_0_boundary_lines_land"},
	{Name: "States/Provinces", Base: "ne_50m_admin_1_states_provinces_lines"},
	{Name: "Rivers", Base: "ne_50m_rivers_lake_centerlines"},
	{Name: "Coastlines", Base: "ne_50m_coastline"},
	{Name: "Populated Places", Base: "ne_50m_populated_places"},
	{Name: "Roads", Base: "ne_10m_roads"},
}

// New opens the store at dir, creating it if needed.
// If dir is empty, uses ~/.asciimaps/data
func New(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".asciimaps", "data")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the data directory
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the shapefile path for a dataset base name
func (s *Store) Path(base string) string {
	return filepath.Join(s.dir, base+".shp")
}

// Has reports whether the shapefile for base is present
func (s *Store) Has(base string) bool {
	_, err := os.Stat(s.Path(base))
	return err == nil
}

// Missing returns the known datasets that are not in the store
func (s *Store) Missing() []Dataset {
	var missing []Dataset
	for _, ds := range Datasets {
		if !s.Has(ds.Base) {
			missing = append(missing, ds)
		}
	}
	return missing
}

// Import extracts a Natural Earth zip archive into the store and returns
// the shapefiles it contained
func (s *Store) Import(zipPath string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", zipPath, err)
	}
	defer r.Close()

	var shapefiles []string
	for _, f := range r.File {
		name := filepath.Base(f.Name)
		if f.FileInfo().IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		if err := s.extract(f, filepath.Join(s.dir, name)); err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", f.Name, err)
		}
		if strings.EqualFold(filepath.Ext(name), ".shp") {
			shapefiles = append(shapefiles, name)
		}
	}

	debug.Log("imported archive", "archive", zipPath, "shapefiles", len(shapefiles))
	return shapefiles, nil
}

func (s *Store) extract(f *zip.File, destPath string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	outFile, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(outFile, rc); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
