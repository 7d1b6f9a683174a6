package preset

import (
	"errors"

	"cover-photo/compose"
)

// Breakpoint maps viewports narrower than MaxWidth to a starting
// configuration. MaxWidth 0 marks the catch-all entry for the widest screens.
type Breakpoint struct {
	Name     string         `json:"name"`
	MaxWidth int            `json:"maxWidth"`
	Config   compose.Config `json:"config"`
}

// Table is the full persistent state: breakpoints in ascending MaxWidth
// order, catch-all last.
type Table struct {
	Breakpoints []Breakpoint `json:"breakpoints"`
}

var (
	ErrEmptyTable = errors.New("preset table has no breakpoints")
	ErrBadOrder   = errors.New("breakpoints must ascend and end with a catch-all")
)

// Validate checks ordering and that every preset is a valid configuration.
func (t Table) Validate() error {
	if len(t.Breakpoints) == 0 {
		return ErrEmptyTable
	}
	last := 0
	for i, bp := range t.Breakpoints {
		final := i == len(t.Breakpoints)-1
		switch {
		case final && bp.MaxWidth != 0:
			return ErrBadOrder
		case !final && bp.MaxWidth <= last:
			return ErrBadOrder
		}
		last = bp.MaxWidth
		if err := bp.Config.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Select returns a copy of the preset for a viewport width.
func (t Table) Select(width int) compose.Config {
	for _, bp := range t.Breakpoints {
		if bp.MaxWidth == 0 || width < bp.MaxWidth {
			return bp.Config.Clone()
		}
	}
	return t.Breakpoints[len(t.Breakpoints)-1].Config.Clone()
}

func copyTable(t Table) Table {
	bps := make([]Breakpoint, len(t.Breakpoints))
	for i, bp := range t.Breakpoints {
		bp.Config = bp.Config.Clone()
		bps[i] = bp
	}
	return Table{Breakpoints: bps}
}
