package management

// Summary holds the dashboard counts over the full company list.
type Summary struct {
	Total    int
	Active   int
	Inactive int
	Paid     int
}

// Count returns the count that belongs to a filter mode's summary card.
func (s Summary) Count(mode FilterMode) int {
	switch mode {
	case FilterActive:
		return s.Active
	case FilterInactive:
		return s.Inactive
	case FilterPaid:
		return s.Paid
	default:
		return s.Total
	}
}

// Summarize counts companies by status. It ignores any active filter or search.
func Summarize(companies []Company) Summary {
	s := Summary{Total: len(companies)}
	for _, c := range companies {
		if c.IsActive {
			s.Active++
		} else {
			s.Inactive++
		}
		if c.IsPaid {
			s.Paid++
		}
	}
	return s
}

type summaryMemo struct {
	valid   bool
	version uint64
	out     Summary
}

func (m *summaryMemo) get(version uint64, companies []Company) Summary {
	if m.valid && m.version == version {
		return m.out
	}
	m.version, m.out, m.valid = version, Summarize(companies), true
	return m.out
}
