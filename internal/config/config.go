package config

import (
	"errors"
	"fmt"
	"strings"

	"asciimaps/internal/geo"
	"asciimaps/internal/render"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Map    MapConfig    `mapstructure:"map"`
	Search SearchConfig `mapstructure:"search"`
	Data   DataConfig   `mapstructure:"data"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
}

type MapConfig struct {
	Center string  `mapstructure:"center"`
	Scale  float64 `mapstructure:"scale"`
	Mode   string  `mapstructure:"mode"`
}

type SearchConfig struct {
	Query      string  `mapstructure:"query"`
	SnapRadius float64 `mapstructure:"snap_radius"`
}

type DataConfig struct {
	Places     string   `mapstructure:"places"`
	Layers     string   `mapstructure:"layers"`
	Import     []string `mapstructure:"import"`
	RoadDetail int      `mapstructure:"road_detail"`
}

type UIConfig struct {
	FPS int `mapstructure:"fps"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// CenterPoint parses map.center
func (m MapConfig) CenterPoint() (geo.GeoPoint, error) {
	return geo.ParseGeoPoint(m.Center)
}

// ParsedMode parses map.mode
func (m MapConfig) ParsedMode() (render.Mode, error) {
	return render.ParseMode(m.Mode)
}

// ErrHelp is returned by Load when -h was given
var ErrHelp = pflag.ErrHelp

// Flags declares the command line flags. Flag names match config keys.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "Config file (default: ./asciimaps.yaml or ~/.asciimaps/asciimaps.yaml)")
	fs.String("map.center", "", "Start centre as lon,lat")
	fs.Float64("map.scale", 0, "Start scale (1/1024 - 64)")
	fs.StringP("map.mode", "m", "", "Map mode: schema, satellite or hybrid")
	fs.StringP("search.query", "q", "", "Initial search query")
	fs.String("data.places", "", "Extra places, CSV (name,address,postal_code,lon,lat) or GeoJSON points")
	fs.StringP("data.layers", "l", "", "Directory with Natural Earth shapefiles (default: ~/.asciimaps/data)")
	fs.StringSliceP("data.import", "i", nil, "Natural Earth zip archives to extract into the layers directory")
	fs.IntP("data.road_detail", "H", 0, "Road detail level - lower shows fewer roads (1-10)")
	fs.StringP("log.file", "d", "", "Debug log file (e.g., debug.log)")
	fs.String("log.level", "", "Debug log level: debug, info, warn, error")
	return fs
}

// Load reads defaults, the optional config file, ASCIIMAPS_* environment
// variables and finally the command line, each overriding the previous.
func Load(args []string) (*Config, error) {
	fs := Flags("asciimaps")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()

	// Defaults
	v.SetDefault("map.center", "37.6173,55.7558")
	v.SetDefault("map.scale", 0.05)
	v.SetDefault("map.mode", "schema")
	v.SetDefault("search.query", "Moscow")
	v.SetDefault("search.snap_radius", 50.0)
	v.SetDefault("data.places", "")
	v.SetDefault("data.layers", "")
	v.SetDefault("data.import", []string{})
	v.SetDefault("data.road_detail", 4)
	v.SetDefault("ui.fps", 30)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	// Config file (optional unless named explicitly)
	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("asciimaps")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.asciimaps")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: ASCIIMAPS_MAP_SCALE → map.scale
	v.SetEnvPrefix("ASCIIMAPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Only flags set on the command line override; unset ones keep their zero
	// defaults out of the way.
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(f.Name, f)
	})
	if bindErr != nil {
		return nil, fmt.Errorf("bind flags: %w", bindErr)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if _, err := c.Map.CenterPoint(); err != nil {
		errs = append(errs, fmt.Sprintf("map.center: %v", err))
	}
	if c.Map.Scale < geo.MinScale || c.Map.Scale > geo.MaxScale {
		errs = append(errs, fmt.Sprintf("map.scale must be %g-%g, got %g", geo.MinScale, geo.MaxScale, c.Map.Scale))
	}
	if _, err := c.Map.ParsedMode(); err != nil {
		errs = append(errs, fmt.Sprintf("map.mode: %v", err))
	}
	if c.Search.SnapRadius <= 0 {
		errs = append(errs, "search.snap_radius must be positive")
	}
	if c.Data.RoadDetail < 1 || c.Data.RoadDetail > 10 {
		errs = append(errs, fmt.Sprintf("data.road_detail must be 1-10, got %d", c.Data.RoadDetail))
	}
	if c.UI.FPS < 1 || c.UI.FPS > 120 {
		errs = append(errs, fmt.Sprintf("ui.fps must be 1-120, got %d", c.UI.FPS))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
