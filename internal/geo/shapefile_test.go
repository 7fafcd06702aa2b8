package geo

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closeShapefile closes a written shapefile and moves the attribute table to
// <base>.dbf, where shp.Open looks for it; the writer leaves out the dot.
func closeShapefile(t *testing.T, shape *shp.Writer, path string) {
	t.Helper()
	shape.Close()

	base := strings.TrimSuffix(path, filepath.Ext(path))
	if _, err := os.Stat(base + "dbf"); err == nil {
		require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	}
	_, err := os.Stat(base + ".dbf")
	require.NoError(t, err)
}

func writePlacesShapefile(t *testing.T, path string) {
	t.Helper()

	shape, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)

	shape.SetFields([]shp.Field{
		shp.StringField("NAME", 40),
		shp.StringField("ADM1NAME", 40),
		shp.StringField("ADM0NAME", 40),
	})

	rows := []struct {
		p          shp.Point
		name, adm1 string
	}{
		{shp.Point{X: 37.6173, Y: 55.7558}, "Moscow", "Moskva"},
		{shp.Point{X: 30.3351, Y: 59.9343}, "Saint Petersburg", "City of St. Petersburg"},
	}
	for _, row := range rows {
		p := row.p
		n := int(shape.Write(&p))
		shape.WriteAttribute(n, 0, row.name)
		shape.WriteAttribute(n, 1, row.adm1)
		shape.WriteAttribute(n, 2, "Russia")
	}

	closeShapefile(t, shape, path)
}

func writeLinesShapefile(t *testing.T, path string) {
	t.Helper()

	shape, err := shp.Create(path, shp.POLYLINE)
	require.NoError(t, err)

	shape.SetFields([]shp.Field{shp.NumberField("scalerank", 4)})

	lines := []struct {
		parts [][]shp.Point
		rank  int
	}{
		{[][]shp.Point{{{X: 0, Y: 0}, {X: 1, Y: 1}}, {{X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}}}, 3},
		{[][]shp.Point{{{X: 5, Y: 5}, {X: 6, Y: 6}}}, 9},
	}
	for _, line := range lines {
		n := int(shape.Write(shp.NewPolyLine(line.parts)))
		shape.WriteAttribute(n, 0, line.rank)
	}

	closeShapefile(t, shape, path)
}

func TestLoadPlacesShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ne_50m_populated_places.shp")
	writePlacesShapefile(t, path)

	places, err := LoadPlacesShapefile(path)
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "Moscow", places[0].Name)
	assert.Equal(t, "Moscow, Moskva, Russia", places[0].Address)
	assert.InDelta(t, 55.7558, places[0].Point.Lat, 1e-9)
}

func TestLayerLoaderSplitsPartsAndFiltersRoads(t *testing.T) {
	dir := t.TempDir()
	writeLinesShapefile(t, filepath.Join(dir, "ne_10m_roads.shp"))
	writePlacesShapefile(t, filepath.Join(dir, "ne_50m_populated_places.shp"))

	layers := NewLayerLoader(dir, 4).LoadAll()

	roads := layers[FeatureRoad]
	require.Len(t, roads, 2, "two parts of the low rank road, high rank road dropped")
	assert.Len(t, roads[0].Points, 2)
	assert.Len(t, roads[1].Points, 3)
	assert.Equal(t, GeoPoint{Lon: 2, Lat: 2}, roads[1].Points[0])

	places := layers[FeaturePlace]
	require.Len(t, places, 2)
	assert.True(t, places[0].IsPoint())
	assert.Equal(t, "Moscow", places[0].Name)

	assert.Empty(t, layers[FeatureCoastline])
}

func TestKeepRoad(t *testing.T) {
	l := NewLayerLoader("", 4)
	assert.True(t, l.keepRoad("4"))
	assert.False(t, l.keepRoad("9"))
	assert.True(t, l.keepRoad(""), "roads without a rank are kept")
}

func TestLayerLoaderNoDir(t *testing.T) {
	assert.Empty(t, NewLayerLoader("", 4).LoadAll())
}

func TestFilterByBounds(t *testing.T) {
	b := NewBounds(moscow, 1000)
	features := []*Feature{
		NewPointFeature(FeaturePlace, moscow, "in"),
		NewPointFeature(FeaturePlace, GeoPoint{Lon: 30, Lat: 60}, "out"),
		NewLineFeature(FeatureRoad, []GeoPoint{{Lon: 0, Lat: 0}, moscow}),
		NewLineFeature(FeatureRoad, []GeoPoint{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}}),
	}

	got := FilterByBounds(features, b)
	require.Len(t, got, 2)
	assert.Equal(t, "in", got[0].Name)
	assert.True(t, got[1].IsLine())
}

func TestNewBounds(t *testing.T) {
	b := NewBounds(moscow, DegreesToMeters(1))
	assert.InDelta(t, moscow.Lat-1, b.MinLat, 1e-9)
	assert.InDelta(t, moscow.Lat+1, b.MaxLat, 1e-9)
	assert.Greater(t, b.MaxLon-b.MinLon, 2.0, "longitude degrees are shorter")
}

func TestNewBoundsCoversRadius(t *testing.T) {
	center := GeoPoint{Lon: 20, Lat: 70}
	radius := 50000.0
	b := NewBounds(center, radius)

	// the poleward corner of the circle needs the widest longitude span
	for _, lat := range []float64{69.6, 70, 70.4} {
		for lon := 15.0; lon <= 25; lon += 0.01 {
			p := GeoPoint{Lon: lon, Lat: lat}
			if LonLatDistance(center, p) <= radius {
				assert.True(t, b.Contains(p), "%v", p)
			}
		}
	}

	all := NewBounds(center, math.Inf(1))
	assert.True(t, all.Contains(GeoPoint{Lon: -179, Lat: -89}))
	assert.True(t, NewBounds(GeoPoint{Lat: 89.9}, 50000).Contains(GeoPoint{Lon: 170, Lat: 89.9}))
}
