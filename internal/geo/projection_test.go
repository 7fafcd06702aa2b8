package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenToGeoCenter(t *testing.T) {
	p := ScreenToGeo(300, 225, 600, 450, moscow.Lon, moscow.Lat, 1)
	assert.Equal(t, moscow, p)
}

func TestScreenToGeoSpan(t *testing.T) {
	left := ScreenToGeo(0, 225, 600, 450, 0, 0, 1)
	right := ScreenToGeo(600, 225, 600, 450, 0, 0, 1)
	top := ScreenToGeo(300, 0, 600, 450, 0, 0, 1)
	bottom := ScreenToGeo(300, 450, 600, 450, 0, 0, 1)

	assert.InDelta(t, HorizontalSpan, right.Lon-left.Lon, 1e-12)
	assert.InDelta(t, VerticalSpan, top.Lat-bottom.Lat, 1e-12)

	wide := ScreenToGeo(600, 225, 600, 450, 0, 0, 4)
	assert.InDelta(t, 4*right.Lon, wide.Lon, 1e-12)
}

func TestGeoToScreenRoundTrip(t *testing.T) {
	centers := []GeoPoint{moscow, {}, {Lon: -122.4, Lat: -33.9}, {Lon: 10, Lat: 80}}
	scales := []float64{MinScale, 0.05, 1, 17.5, MaxScale}
	pixels := [][2]float64{{0, 0}, {600, 450}, {123.5, 77.25}, {300, 225}, {-40, 900}}

	for _, c := range centers {
		for _, s := range scales {
			for _, px := range pixels {
				p := ScreenToGeo(px[0], px[1], 600, 450, c.Lon, c.Lat, s)
				x, y := GeoToScreen(p, c.Lon, c.Lat, 600, 450, s)
				assert.InDelta(t, px[0], x, 1e-6, "center %v scale %v", c, s)
				assert.InDelta(t, px[1], y, 1e-6, "center %v scale %v", c, s)
			}
		}
	}
}

func TestGeoToScreenAxes(t *testing.T) {
	x, y := GeoToScreen(GeoPoint{Lon: moscow.Lon + 0.01, Lat: moscow.Lat + 0.01}, moscow.Lon, moscow.Lat, 600, 450, 0.05)
	assert.Greater(t, x, 300.0, "east is right")
	assert.Less(t, y, 225.0, "north is up")
}

func TestViewProjectUnproject(t *testing.T) {
	v := NewView(moscow, 0.05, 120, 40)

	assert.Equal(t, Point{X: 60, Y: 20}, v.Project(moscow))
	for _, pt := range []Point{{0, 0}, {119, 39}, {17, 33}} {
		assert.Equal(t, pt, v.Project(v.Unproject(pt.X, pt.Y)))
	}

	assert.True(t, v.InBounds(moscow))
	assert.False(t, v.InBounds(GeoPoint{Lon: moscow.Lon + 1, Lat: moscow.Lat}))
}

func TestViewBounds(t *testing.T) {
	v := NewView(moscow, 1, 600, 450)
	b := v.Bounds()

	assert.InDelta(t, moscow.Lon-1.5, b.MinLon, 1e-9)
	assert.InDelta(t, moscow.Lon+1.5, b.MaxLon, 1e-9)
	assert.InDelta(t, moscow.Lat-1, b.MinLat, 1e-9)
	assert.InDelta(t, moscow.Lat+1, b.MaxLat, 1e-9)
	assert.True(t, b.Contains(moscow))
}

func TestViewPan(t *testing.T) {
	v := NewView(GeoPoint{}, 1, 600, 450)
	v.Pan(1, 0)
	assert.InDelta(t, 0.25, v.Center().Lon, 1e-12)
	v.Pan(0, -2)
	assert.InDelta(t, -0.5, v.Center().Lat, 1e-12)

	v.SetCenter(GeoPoint{Lon: 179, Lat: 89})
	v.Pan(10, 10)
	assert.InDelta(t, 179.5, v.Center().Lon, 1e-12)
	assert.InDelta(t, 89.5, v.Center().Lat, 1e-12)

	v.Pan(-2000, -2000)
	assert.InDelta(t, -179.5, v.Center().Lon, 1e-12)
	assert.InDelta(t, -89.5, v.Center().Lat, 1e-12)
}

func TestViewZoom(t *testing.T) {
	v := NewView(moscow, 1, 600, 450)

	v.Zoom(1)
	assert.InDelta(t, math.Pow(2, 0.75)-1, v.Scale(), 1e-12)

	v.Zoom(-1)
	assert.InDelta(t, 1, v.Scale(), 1e-9)

	for i := 0; i < 200; i++ {
		v.Zoom(1)
	}
	assert.Equal(t, MinScale, v.Scale())

	for i := 0; i < 200; i++ {
		v.Zoom(-1)
	}
	assert.Equal(t, MaxScale, v.Scale())
}

func TestNewViewClampsScale(t *testing.T) {
	assert.Equal(t, MaxScale, NewView(moscow, 1000, 10, 10).Scale())
	assert.Equal(t, MinScale, NewView(moscow, 0, 10, 10).Scale())
}

func TestViewMetersPerCell(t *testing.T) {
	v := NewView(GeoPoint{}, 1, 600, 450)
	x, y := v.MetersPerCell()
	assert.InDelta(t, DegreesToMeters(3)/600, x, 1e-9)
	assert.InDelta(t, DegreesToMeters(2)/450, y, 1e-9)
}

func TestViewZeroSize(t *testing.T) {
	for _, v := range []*View{NewView(moscow, 1, 0, 0), NewView(moscow, 1, 600, 450)} {
		v.Resize(0, -3)
		w, h := v.Size()
		assert.Equal(t, 1, w)
		assert.Equal(t, 1, h)

		b := v.Bounds()
		for _, f := range []float64{b.MinLat, b.MaxLat, b.MinLon, b.MaxLon} {
			assert.False(t, math.IsNaN(f) || math.IsInf(f, 0))
		}
		assert.True(t, b.Contains(moscow))
	}
}

func TestViewSetCenterIgnoresNonFinite(t *testing.T) {
	v := NewView(moscow, 1, 600, 450)
	v.SetCenter(GeoPoint{Lon: math.NaN(), Lat: 0})
	v.SetCenter(GeoPoint{Lon: 0, Lat: math.Inf(1)})
	assert.Equal(t, moscow, v.Center())

	v.Pan(1, 0)
	assert.InDelta(t, moscow.Lon+0.25, v.Center().Lon, 1e-12)
}
