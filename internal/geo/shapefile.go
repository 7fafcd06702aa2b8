package geo

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"asciimaps/internal/debug"

	"github.com/jonas-p/go-shp"
)

// layerPatterns maps each line layer to the Natural Earth file names it is read from
var layerPatterns = map[FeatureType][]string{
	FeatureBorder:    {"ne_*_admin_0_boundary_lines_land.shp", "ne_*_admin_1_states_provinces*.shp"},
	FeatureRoad:      {"ne_*_roads*.shp"},
	FeatureRiver:     {"ne_*_rivers_lake_centerlines*.shp"},
	FeatureCoastline: {"ne_*_coastline.shp"},
	FeaturePlace:     {"ne_*_populated_places*.shp"},
}

// LayerLoader loads vector layers from a directory of shapefiles
type LayerLoader struct {
	dataDir    string
	roadDetail int
}

// NewLayerLoader creates a loader for dataDir. Roads with a scalerank above
// roadDetail are dropped.
func NewLayerLoader(dataDir string, roadDetail int) *LayerLoader {
	return &LayerLoader{
		dataDir:    dataDir,
		roadDetail: roadDetail,
	}
}

// LoadAll loads every layer it finds. Missing or unreadable files are
// skipped; the map can be drawn with no layers at all.
func (l *LayerLoader) LoadAll() map[FeatureType][]*Feature {
	features := make(map[FeatureType][]*Feature)
	if l.dataDir == "" {
		return features
	}

	for ftype, patterns := range layerPatterns {
		for _, pattern := range patterns {
			matches, err := filepath.Glob(filepath.Join(l.dataDir, pattern))
			if err != nil {
				continue
			}
			for _, path := range matches {
				loaded, err := l.LoadLayer(path, ftype)
				if err != nil {
					debug.Warn("skipping layer", "path", path, "type", ftype, "err", err)
					continue
				}
				features[ftype] = append(features[ftype], loaded...)
			}
		}
	}

	debug.Log("layers loaded",
		"borders", len(features[FeatureBorder]),
		"roads", len(features[FeatureRoad]),
		"rivers", len(features[FeatureRiver]),
		"coastlines", len(features[FeatureCoastline]),
		"places", len(features[FeaturePlace]))

	return features
}

// LoadLayer reads one shapefile as features of type ftype
func (l *LayerLoader) LoadLayer(path string, ftype FeatureType) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shape.Close()

	nameIdx := fieldIndex(shape.Fields(), "NAME", "NAMEASCII", "NAME_EN")
	rankIdx := fieldIndex(shape.Fields(), "scalerank")

	features := make([]*Feature, 0)

	for shape.Next() {
		n, p := shape.Shape()

		if ftype == FeatureRoad && rankIdx >= 0 && !l.keepRoad(attribute(shape, n, rankIdx)) {
			continue
		}

		switch geom := p.(type) {
		case *shp.PolyLine:
			features = append(features, lineFeatures(ftype, geom.Parts, geom.Points)...)

		case *shp.Polygon:
			// outline only
			features = append(features, lineFeatures(ftype, geom.Parts, geom.Points)...)

		case *shp.Point:
			name := ""
			if nameIdx >= 0 {
				name = attribute(shape, n, nameIdx)
			}
			features = append(features, NewPointFeature(ftype, GeoPoint{Lon: geom.X, Lat: geom.Y}, name))
		}
	}

	return features, nil
}

func (l *LayerLoader) keepRoad(rank string) bool {
	r, err := strconv.Atoi(rank)
	if err != nil {
		return true
	}
	return r <= l.roadDetail
}

// lineFeatures splits a multi-part shape into one feature per part
func lineFeatures(ftype FeatureType, parts []int32, points []shp.Point) []*Feature {
	if len(parts) == 0 {
		parts = []int32{0}
	}

	features := make([]*Feature, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || end > int32(len(points)) || end-start < 2 {
			continue
		}

		line := make([]GeoPoint, 0, end-start)
		for _, pt := range points[start:end] {
			line = append(line, GeoPoint{Lon: pt.X, Lat: pt.Y})
		}
		features = append(features, NewLineFeature(ftype, line))
	}
	return features
}

// attribute reads a DBF value without its space or null padding
func attribute(shape *shp.Reader, n, idx int) string {
	return strings.Trim(shape.ReadAttribute(n, idx), "\x00 ")
}

// fieldIndex returns the index of the first attribute field matching one of names
func fieldIndex(fields []shp.Field, names ...string) int {
	for _, want := range names {
		for i, field := range fields {
			// field names are null padded byte arrays
			if strings.TrimRight(string(field.Name[:]), "\x00 ") == want {
				return i
			}
		}
	}
	return -1
}
