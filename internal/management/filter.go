package management

import (
	"errors"
	"fmt"
	"strings"
)

// FilterMode selects a subset of companies by status. Modes are mutually exclusive.
type FilterMode string

const (
	FilterAll      FilterMode = "all"
	FilterActive   FilterMode = "active"
	FilterInactive FilterMode = "inactive"
	FilterPaid     FilterMode = "paid"
)

var ErrInvalidFilterMode = errors.New("management: invalid filter mode")

// FilterModes lists the modes in the order the summary cards show them.
var FilterModes = []FilterMode{FilterAll, FilterActive, FilterInactive, FilterPaid}

// ParseFilterMode accepts a mode name case-insensitively.
func ParseFilterMode(s string) (FilterMode, error) {
	m := FilterMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case FilterAll, FilterActive, FilterInactive, FilterPaid:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFilterMode, s)
}

func (m FilterMode) match(c Company) bool {
	switch m {
	case FilterActive:
		return c.IsActive
	case FilterInactive:
		return !c.IsActive
	case FilterPaid:
		return c.IsPaid
	default:
		return true
	}
}

// Visible applies the status mode and then a case-insensitive substring match
// of term against company_name. Input order is preserved.
func Visible(companies []Company, mode FilterMode, term string) []Company {
	needle := strings.ToLower(term)
	out := make([]Company, 0, len(companies))
	for _, c := range companies {
		if !mode.match(c) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(c.CompanyName), needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

type visibleKey struct {
	version uint64
	mode    FilterMode
	term    string
}

// visibleMemo caches the last Visible result. The key includes the DataStore
// version, so any replacement of the list invalidates it.
type visibleMemo struct {
	valid bool
	key   visibleKey
	out   []Company
}

func (m *visibleMemo) get(version uint64, companies []Company, mode FilterMode, term string) []Company {
	k := visibleKey{version: version, mode: mode, term: term}
	if m.valid && m.key == k {
		return m.out
	}
	m.key, m.out, m.valid = k, Visible(companies, mode, term), true
	return m.out
}
