package render

import (
	"fmt"
	"strings"
)

// Mode selects what the map shows
type Mode int

const (
	ModeSchema Mode = iota
	ModeSatellite
	ModeHybrid
)

var modeNames = []string{"schema", "satellite", "hybrid"}

// String returns the config name of the mode
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Next cycles schema, satellite, hybrid
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % len(modeNames))
}

// ParseMode parses a mode name; "map", "sat" and "sat,skl" are accepted as aliases
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "schema", "map":
		return ModeSchema, nil
	case "satellite", "sat":
		return ModeSatellite, nil
	case "hybrid", "sat,skl":
		return ModeHybrid, nil
	}
	return ModeSchema, fmt.Errorf("unknown map mode %q (want schema, satellite or hybrid)", s)
}
