package ui

import (
	"testing"
	"time"

	"asciimaps/internal/geo"
	"asciimaps/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moscow = geo.GeoPoint{Lon: 37.6173, Lat: 55.7558}

func newTestApp(t *testing.T, query string) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)

	app := NewAppWithScreen(screen, Options{
		Center:     geo.GeoPoint{Lon: 0, Lat: 0},
		Scale:      0.05,
		Mode:       render.ModeSchema,
		Query:      query,
		SnapRadius: 50,
		FPS:        30,
		Gazetteer:  geo.BuiltinGazetteer(),
	})
	t.Cleanup(app.cleanup)
	return app, screen
}

func click(a *App, x, y int, button tcell.ButtonMask) {
	a.handleEvent(tcell.NewEventMouse(x, y, button, tcell.ModNone))
	a.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func key(a *App, k tcell.Key, r rune) bool {
	return a.handleEvent(tcell.NewEventKey(k, r, tcell.ModNone))
}

func TestInitialQueryCentersMap(t *testing.T) {
	app, _ := newTestApp(t, "Moscow")

	place, ok := app.info.Place()
	require.True(t, ok)
	assert.Equal(t, "Moscow", place.Name)
	require.NotNil(t, app.waypoint)
	assert.Equal(t, moscow, *app.waypoint)
	assert.Equal(t, moscow, app.mapView.View().Center())
}

func TestTypeAndSearch(t *testing.T) {
	app, _ := newTestApp(t, "")

	for _, r := range "Pariss" {
		key(app, tcell.KeyRune, r)
	}
	key(app, tcell.KeyBackspace2, 0)
	assert.Equal(t, "Paris", app.searchBar.Query())

	key(app, tcell.KeyEnter, 0)
	place, ok := app.info.Place()
	require.True(t, ok)
	assert.Equal(t, "Paris", place.Name)
	assert.Equal(t, place.Point, app.mapView.View().Center())
}

func TestSearchNotFound(t *testing.T) {
	app, _ := newTestApp(t, "")
	for _, r := range "Atlantis" {
		key(app, tcell.KeyRune, r)
	}
	key(app, tcell.KeyEnter, 0)

	assert.Equal(t, "Object not found", app.info.Message())
	assert.Nil(t, app.waypoint)
}

func TestArrowKeysPan(t *testing.T) {
	app, _ := newTestApp(t, "")
	step := app.mapView.View().Scale() * 0.25

	key(app, tcell.KeyUp, 0)
	key(app, tcell.KeyRight, 0)
	center := app.mapView.View().Center()
	assert.InDelta(t, step, center.Lat, 1e-12)
	assert.InDelta(t, step, center.Lon, 1e-12)

	key(app, tcell.KeyDown, 0)
	key(app, tcell.KeyLeft, 0)
	center = app.mapView.View().Center()
	assert.InDelta(t, 0, center.Lat, 1e-12)
	assert.InDelta(t, 0, center.Lon, 1e-12)
}

func TestZoomKeysAndWheel(t *testing.T) {
	app, _ := newTestApp(t, "")
	start := app.mapView.View().Scale()

	key(app, tcell.KeyPgUp, 0)
	zoomed := app.mapView.View().Scale()
	assert.Less(t, zoomed, start)

	key(app, tcell.KeyPgDn, 0)
	assert.InDelta(t, start, app.mapView.View().Scale(), 1e-12)

	app.handleEvent(tcell.NewEventMouse(40, 12, tcell.WheelUp, tcell.ModNone))
	assert.Less(t, app.mapView.View().Scale(), start)
}

func TestEscapeQuits(t *testing.T) {
	app, _ := newTestApp(t, "")
	assert.False(t, key(app, tcell.KeyEscape, 0))

	select {
	case <-app.quit:
	default:
		t.Fatal("quit channel not closed")
	}
}

func TestClearButton(t *testing.T) {
	app, _ := newTestApp(t, "Moscow")

	click(app, 37, 2, tcell.Button1)
	assert.Equal(t, "", app.searchBar.Query())
	_, ok := app.info.Place()
	assert.False(t, ok)
	assert.Nil(t, app.waypoint)
}

func TestClickMapReverseLookup(t *testing.T) {
	app, _ := newTestApp(t, "Moscow")
	app.searchBar.Clear()

	click(app, 40, 12, tcell.Button1)
	place, ok := app.info.Place()
	require.True(t, ok)
	assert.Equal(t, "37.6173,55.7558", place.Name)
	assert.Equal(t, "Moscow, Russia", place.Address)
	assert.Equal(t, moscow, place.Point)
}

func TestClickNeedsPress(t *testing.T) {
	app, _ := newTestApp(t, "")

	app.handleEvent(tcell.NewEventMouse(74, 2, tcell.Button1, tcell.ModNone))
	assert.True(t, app.menu.Open())

	// dragging with the button held is not another click
	app.handleEvent(tcell.NewEventMouse(74, 3, tcell.Button1, tcell.ModNone))
	assert.True(t, app.menu.Open())
}

func TestRightClickNearest(t *testing.T) {
	app, _ := newTestApp(t, "Moscow")

	click(app, 0, 23, tcell.Button2)
	assert.Equal(t, "Nothing within 50 m", app.info.Message())

	click(app, 40, 12, tcell.Button2)
	place, ok := app.info.Place()
	require.True(t, ok)
	assert.Equal(t, "Moscow", place.Name)
	assert.Empty(t, app.info.Message())
}

func TestMenuSwitchesMode(t *testing.T) {
	app, _ := newTestApp(t, "")

	click(app, 74, 2, tcell.Button1)
	require.True(t, app.menu.Open())
	app.update(time.Second)

	click(app, 68, 2, tcell.Button1)
	assert.Equal(t, render.ModeHybrid, app.mapView.Mode())
	assert.True(t, app.menu.Open())

	click(app, 74, 2, tcell.Button1)
	assert.False(t, app.menu.Open())
}

func TestCursorHiddenOverMenu(t *testing.T) {
	app, _ := newTestApp(t, "")

	app.handleEvent(tcell.NewEventMouse(40, 12, tcell.ButtonNone, tcell.ModNone))
	require.NotNil(t, app.cursor)
	assert.Equal(t, geo.Point{X: 40, Y: 12}, *app.cursor)

	app.handleEvent(tcell.NewEventMouse(74, 2, tcell.ButtonNone, tcell.ModNone))
	assert.Nil(t, app.cursor, "no map crosshair under the menu button")
}

func TestPostalSwitch(t *testing.T) {
	app, _ := newTestApp(t, "Moscow")
	assert.Equal(t, "Moscow, Russia", app.info.Lines(app.postal.On())[0])

	click(app, 42, 2, tcell.Button1)
	assert.True(t, app.postal.On())
	assert.Equal(t, "Moscow, Russia: 101000", app.info.Lines(app.postal.On())[0])
}

func TestResizeKeepsState(t *testing.T) {
	app, screen := newTestApp(t, "Moscow")
	click(app, 42, 2, tcell.Button1)
	click(app, 74, 2, tcell.Button1)

	screen.SetSize(100, 30)
	app.handleEvent(tcell.NewEventResize(100, 30))

	_, _, w, _ := app.searchBar.Box().Cells()
	assert.Equal(t, 48, w)
	assert.True(t, app.postal.On())
	assert.True(t, app.menu.Open())
	assert.True(t, app.menu.Done())
	assert.True(t, app.menu.HitButton(94, 2))

	width, height := app.mapView.View().Size()
	assert.Equal(t, 100, width)
	assert.Equal(t, 30, height)
}

func TestRenderDrawsWidgets(t *testing.T) {
	app, screen := newTestApp(t, "Moscow")
	app.render()

	r, _, _, _ := screen.GetContent(4, 2)
	assert.Equal(t, 'M', r)
	r, _, _, _ = screen.GetContent(37, 2)
	assert.Equal(t, '×', r)

	// waypoint marks the centre
	r, _, _, _ = screen.GetContent(40, 12)
	assert.Equal(t, '▼', r)
}

func TestRunStopsOnEscape(t *testing.T) {
	app, screen := newTestApp(t, "")

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
