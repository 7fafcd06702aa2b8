package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"asciimaps/internal/debug"
	"asciimaps/internal/geo"
	"asciimaps/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Options configures a new App
type Options struct {
	Center     geo.GeoPoint
	Scale      float64
	Mode       render.Mode
	Query      string
	SnapRadius float64 // metres for the right click nearest place lookup
	FPS        int
	Layers     map[geo.FeatureType][]*geo.Feature
	Gazetteer  *geo.Gazetteer
	Places     []geo.Place // labels drawn on the map
}

// App is the main application controller
type App struct {
	screen     tcell.Screen
	mapView    *MapView
	searchBar  *SearchBar
	info       *InfoView
	postal     *Switch
	menu       *NavMenu
	gazetteer  *geo.Gazetteer
	snapRadius float64
	frame      time.Duration
	waypoint   *geo.GeoPoint
	cursor     *geo.Point
	buttons    tcell.ButtonMask
	quit       chan struct{}
	closeOnce  sync.Once
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewApp creates a new application on the terminal
func NewApp(opts Options) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	return NewAppWithScreen(screen, opts), nil
}

// NewAppWithScreen creates an application on an initialised screen
func NewAppWithScreen(screen tcell.Screen, opts Options) *App {
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()
	screen.Clear()

	width, height := screen.Size()

	if opts.Gazetteer == nil {
		opts.Gazetteer = geo.NewGazetteer(nil)
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}

	mapView := NewMapView(width, height, opts.Center, opts.Scale, opts.Layers, opts.Places)
	mapView.SetMode(opts.Mode)

	searchBar := NewSearchBar(opts.Query, width)

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		screen:     screen,
		mapView:    mapView,
		searchBar:  searchBar,
		gazetteer:  opts.Gazetteer,
		snapRadius: opts.SnapRadius,
		frame:      time.Second / time.Duration(opts.FPS),
		quit:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
	app.layout(width)

	if opts.Query != "" {
		app.search(opts.Query)
	}

	return app
}

// layout places the widgets for a screen width
func (a *App) layout(width int) {
	a.searchBar.Layout(width)
	box := a.searchBar.Box()
	x, y, w, h := box.Cells()

	on := a.postal != nil && a.postal.On()
	a.postal = NewSwitch(x+w+1, y+1)
	if on {
		a.postal.Toggle()
		a.postal.knob.SetProgress(1)
	}

	if a.info == nil {
		a.info = NewInfoView(x, y+h, w)
	} else {
		a.info.UpdateDimensions(x, y+h, w)
	}

	open := a.menu != nil && a.menu.Open()
	a.menu = NewNavMenu(width)
	if open {
		a.menu.Toggle()
		a.menu.Snap()
	}
}

// Run starts the application main loop
func (a *App) Run() error {
	defer a.cleanup()

	events := make(chan tcell.Event, 16)
	go a.pollEvents(events)

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-a.quit:
			return nil

		case now := <-ticker.C:
			// never animate slower than one frame per tick
			dt := now.Sub(last)
			if dt < a.frame {
				dt = a.frame
			}
			last = now

			a.update(dt)
			a.render()

		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
		}
	}
}

// pollEvents forwards terminal events until the screen is finalised
func (a *App) pollEvents(events chan<- tcell.Event) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-a.ctx.Done():
			return
		}
	}
}

// update advances animations
func (a *App) update(dt time.Duration) {
	a.menu.Tick(dt)
	a.postal.Tick(dt)
}

// render draws the map with the widgets on top
func (a *App) render() {
	canvas := a.mapView.Render(a.waypoint, a.cursor)

	a.searchBar.Draw(canvas)
	a.info.Draw(canvas, a.postal.On())
	a.postal.Draw(canvas)
	a.menu.Draw(canvas, a.mapView.Mode())

	canvas.Blit(a.screen, 0, 0)
	a.screen.Show()
}

// search resolves query and moves the map to the result
func (a *App) search(query string) {
	place, ok := a.gazetteer.Search(query)
	if !ok {
		debug.Log("search failed", "query", query)
		a.info.SetMessage("Object not found")
		return
	}

	debug.Log("search", "query", query, "name", place.Name, "point", place.Point.String())
	a.info.SetPlace(place)
	p := place.Point
	a.waypoint = &p
	a.mapView.CenterOn(p)
}

// handleEvent processes keyboard and mouse events
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.handleMouse(ev)

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		close(a.quit)
		return false

	case tcell.KeyEnter:
		a.search(a.searchBar.Query())

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.searchBar.DeleteLast()

	case tcell.KeyUp:
		a.mapView.Pan(0, 1)

	case tcell.KeyDown:
		a.mapView.Pan(0, -1)

	case tcell.KeyRight:
		a.mapView.Pan(1, 0)

	case tcell.KeyLeft:
		a.mapView.Pan(-1, 0)

	case tcell.KeyPgUp:
		a.mapView.Zoom(1)

	case tcell.KeyPgDn:
		a.mapView.Zoom(-1)

	case tcell.KeyTab:
		a.screen.Sync()

	case tcell.KeyRune:
		a.searchBar.AddRune(ev.Rune())
	}

	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	pressed := buttons &^ a.buttons
	a.buttons = buttons &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)

	a.menu.Hover(x, y)
	a.cursor = &geo.Point{X: x, Y: y}
	if a.menu.Hovered() {
		a.cursor = nil
	}

	switch {
	case buttons&tcell.WheelUp != 0:
		a.mapView.Zoom(1)
	case buttons&tcell.WheelDown != 0:
		a.mapView.Zoom(-1)
	case pressed&tcell.Button1 != 0:
		a.leftClick(x, y)
	case pressed&tcell.Button2 != 0:
		a.rightClick(x, y)
	}
}

// leftClick handles the widgets first and falls back to a reverse lookup
// at the clicked point
func (a *App) leftClick(x, y int) {
	if mode, ok := a.menu.HitIcon(x, y); ok {
		a.mapView.SetMode(mode)
		return
	}

	_, hasPlace := a.info.Place()

	switch {
	case a.menu.HitButton(x, y):
		a.menu.Toggle()

	case a.searchBar.HitClear(x, y) && hasPlace:
		a.searchBar.Clear()
		a.info.Clear()
		a.waypoint = nil

	case a.postal.Hit(x, y):
		a.postal.Toggle()

	case a.searchBar.Box().Contains(float64(x), float64(y)):
		// clicks inside the search box only focus it

	default:
		a.search(a.mapView.Unproject(x, y).String())
	}
}

// rightClick jumps to the nearest known place around the clicked point
func (a *App) rightClick(x, y int) {
	p := a.mapView.Unproject(x, y)
	place, dist, ok := a.gazetteer.Nearest(p, a.snapRadius)
	if !ok {
		a.info.SetMessage(fmt.Sprintf("Nothing within %.0f m", a.snapRadius))
		return
	}

	debug.Log("nearest place", "name", place.Name, "distance", dist)
	a.info.SetPlace(place)
	pt := place.Point
	a.waypoint = &pt
	a.mapView.CenterOn(pt)
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.mapView.UpdateDimensions(width, height)
	a.layout(width)
}

// cleanup performs cleanup before exit. Safe to call more than once.
func (a *App) cleanup() {
	a.closeOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}

		if a.screen != nil {
			a.screen.Fini()
		}
	})
}
