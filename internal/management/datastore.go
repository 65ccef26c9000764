package management

// Ticket identifies one company load. Only the latest ticket may apply a result.
type Ticket uint64

// DataStore holds the loaded company list and its load status.
type DataStore struct {
	companies []Company
	loading   bool
	err       string
	inFlight  bool
	ticket    Ticket
	version   uint64
}

// NewDataStore returns a store in the initial loading state.
func NewDataStore() *DataStore {
	return &DataStore{loading: true}
}

// Begin issues a ticket for a new load. It refuses while another load is in flight.
func (s *DataStore) Begin() (Ticket, bool) {
	if s.inFlight {
		return 0, false
	}
	s.ticket++
	s.inFlight = true
	return s.ticket, true
}

// Finish applies a load result. Results for a stale or cancelled ticket are
// dropped and Finish reports false.
func (s *DataStore) Finish(t Ticket, companies []Company, err error) bool {
	if !s.inFlight || t != s.ticket {
		return false
	}
	s.inFlight = false
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return true
	}
	s.companies = append([]Company(nil), companies...)
	s.err = ""
	s.version++
	return true
}

// Cancel abandons the in-flight load, if any. Its result will be ignored.
func (s *DataStore) Cancel() {
	if s.inFlight {
		s.inFlight = false
		s.ticket++
	}
}

// Companies returns the stored list. Callers must not modify it.
func (s *DataStore) Companies() []Company { return s.companies }

// Loading reports whether the initial fetch is still pending.
func (s *DataStore) Loading() bool { return s.loading }

// InFlight reports whether any fetch is pending.
func (s *DataStore) InFlight() bool { return s.inFlight }

// Err returns the last load error message, empty after a successful load.
func (s *DataStore) Err() string { return s.err }

// Version changes every time the list is replaced.
func (s *DataStore) Version() uint64 { return s.version }

// Lookup finds a company by id.
func (s *DataStore) Lookup(id string) (Company, bool) {
	for _, c := range s.companies {
		if c.ID == id {
			return c, true
		}
	}
	return Company{}, false
}
