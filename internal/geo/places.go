package geo

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

//go:embed places.csv
var builtinPlaces string

// Place is a named location the gazetteer can resolve
type Place struct {
	Name       string
	Address    string
	PostalCode string
	Point      GeoPoint
}

// Label returns the address, followed by the postal code when withPostal is set
func (p Place) Label(withPostal bool) string {
	if withPostal && p.PostalCode != "" {
		return p.Address + ": " + p.PostalCode
	}
	return p.Address
}

// Gazetteer resolves free text and coordinates to places
type Gazetteer struct {
	places []Place
}

// NewGazetteer creates a gazetteer over places
func NewGazetteer(places []Place) *Gazetteer {
	return &Gazetteer{places: places}
}

// BuiltinGazetteer returns a gazetteer with the embedded city list
func BuiltinGazetteer() *Gazetteer {
	places, err := LoadPlacesCSV(strings.NewReader(builtinPlaces))
	if err != nil {
		panic(fmt.Sprintf("builtin places: %v", err))
	}
	return NewGazetteer(places)
}

// Add appends places to the index
func (g *Gazetteer) Add(places ...Place) {
	g.places = append(g.places, places...)
}

// Len returns the number of indexed places
func (g *Gazetteer) Len() int {
	return len(g.places)
}

// Places returns a copy of the indexed places
func (g *Gazetteer) Places() []Place {
	out := make([]Place, len(g.places))
	copy(out, g.places)
	return out
}

// Search resolves a query. A "lon,lat" query keeps the typed point and takes
// its address from the nearest place. Any other query is matched against
// names (exact, then prefix, then substring) and finally addresses, ignoring case.
func (g *Gazetteer) Search(query string) (Place, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Place{}, false
	}

	if p, err := ParseGeoPoint(query); err == nil {
		return g.Reverse(p), true
	}

	q := strings.ToLower(query)
	matchers := []func(Place) bool{
		func(pl Place) bool { return strings.ToLower(pl.Name) == q },
		func(pl Place) bool { return strings.HasPrefix(strings.ToLower(pl.Name), q) },
		func(pl Place) bool { return strings.Contains(strings.ToLower(pl.Name), q) },
		func(pl Place) bool { return strings.Contains(strings.ToLower(pl.Address), q) },
	}
	for _, match := range matchers {
		for _, pl := range g.places {
			if match(pl) {
				return pl, true
			}
		}
	}

	return Place{}, false
}

// Reverse describes an arbitrary point using the nearest known place
func (g *Gazetteer) Reverse(p GeoPoint) Place {
	result := Place{Name: p.String(), Address: p.String(), Point: p}
	if nearest, _, ok := g.Nearest(p, math.Inf(1)); ok {
		result.Address = nearest.Address
		result.PostalCode = nearest.PostalCode
	}
	return result
}

// Nearest returns the closest place to p no further than maxMeters
func (g *Gazetteer) Nearest(p GeoPoint, maxMeters float64) (Place, float64, bool) {
	best := -1
	bestDist := math.Inf(1)
	box := NewBounds(p, maxMeters)
	for i, pl := range g.places {
		if !box.Contains(pl.Point) {
			continue
		}
		if d := LonLatDistance(p, pl.Point); d < bestDist {
			best, bestDist = i, d
		}
	}

	if best < 0 || bestDist > maxMeters {
		return Place{}, 0, false
	}
	return g.places[best], bestDist, true
}

// LoadPlacesCSV reads places from CSV with a header row containing
// name, address, postal_code, lon and lat. Rows with bad coordinates are skipped.
func LoadPlacesCSV(r io.Reader) ([]Place, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndices := make(map[string]int)
	for i, col := range header {
		colIndices[strings.TrimSpace(col)] = i
	}

	required := []string{"name", "address", "postal_code", "lon", "lat"}
	for _, col := range required {
		if _, ok := colIndices[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var places []Place

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(record) < len(header) {
			continue
		}

		lon, err := strconv.ParseFloat(strings.TrimSpace(record[colIndices["lon"]]), 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(record[colIndices["lat"]]), 64)
		if err != nil || !finite(lon) || !finite(lat) {
			continue
		}

		places = append(places, Place{
			Name:       record[colIndices["name"]],
			Address:    record[colIndices["address"]],
			PostalCode: record[colIndices["postal_code"]],
			Point:      GeoPoint{Lon: lon, Lat: lat},
		})
	}

	return places, nil
}

// LoadPlacesGeoJSON reads point features from a GeoJSON FeatureCollection.
// name, address and postal_code come from the feature properties; features
// that are not points or have no name are skipped.
func LoadPlacesGeoJSON(r io.Reader) ([]Place, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read GeoJSON: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	var places []Place
	for _, f := range fc.Features {
		point, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}

		name := strings.TrimSpace(f.Properties.MustString("name", ""))
		if name == "" {
			continue
		}

		places = append(places, Place{
			Name:       name,
			Address:    f.Properties.MustString("address", name),
			PostalCode: f.Properties.MustString("postal_code", ""),
			Point:      GeoPoint{Lon: point.Lon(), Lat: point.Lat()},
		})
	}

	return places, nil
}

// LoadPlacesFile opens path and reads it as GeoJSON (.geojson, .json) or CSV
func LoadPlacesFile(path string) ([]Place, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open places file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadPlacesGeoJSON(file)
	default:
		return LoadPlacesCSV(file)
	}
}

// LoadPlacesShapefile reads a Natural Earth populated places shapefile
func LoadPlacesShapefile(path string) ([]Place, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shape.Close()

	fields := shape.Fields()
	nameIdx := fieldIndex(fields, "NAME", "NAMEASCII")
	adm1Idx := fieldIndex(fields, "ADM1NAME")
	adm0Idx := fieldIndex(fields, "ADM0NAME")
	if nameIdx < 0 {
		return nil, fmt.Errorf("missing NAME attribute in %s", path)
	}

	var places []Place

	for shape.Next() {
		n, p := shape.Shape()
		point, ok := p.(*shp.Point)
		if !ok {
			continue
		}

		name := attribute(shape, n, nameIdx)
		if name == "" {
			continue
		}

		parts := []string{name}
		for _, idx := range []int{adm1Idx, adm0Idx} {
			if idx < 0 {
				continue
			}
			if v := attribute(shape, n, idx); v != "" && v != name {
				parts = append(parts, v)
			}
		}

		places = append(places, Place{
			Name:    name,
			Address: strings.Join(parts, ", "),
			Point:   GeoPoint{Lon: point.X, Lat: point.Y},
		})
	}

	return places, nil
}
