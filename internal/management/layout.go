package management

import (
	"errors"
	"fmt"
	"strings"
)

// LayoutMode is the company list arrangement.
type LayoutMode string

const (
	LayoutGrid   LayoutMode = "grid"
	LayoutColumn LayoutMode = "column"
)

var ErrInvalidLayout = errors.New("management: invalid layout mode")

func ParseLayoutMode(s string) (LayoutMode, error) {
	switch m := LayoutMode(strings.ToLower(strings.TrimSpace(s))); m {
	case LayoutGrid, LayoutColumn:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLayout, s)
}

// LayoutToggle holds the display mode. The zero value is grid.
type LayoutToggle struct {
	mode LayoutMode
}

func (l *LayoutToggle) Mode() LayoutMode {
	if l.mode == "" {
		return LayoutGrid
	}
	return l.mode
}

// SelectGrid switches to grid and reports whether anything changed.
func (l *LayoutToggle) SelectGrid() bool { return l.set(LayoutGrid) }

// SelectColumn switches to column and reports whether anything changed.
func (l *LayoutToggle) SelectColumn() bool { return l.set(LayoutColumn) }

func (l *LayoutToggle) set(m LayoutMode) bool {
	if l.Mode() == m {
		return false
	}
	l.mode = m
	return true
}
