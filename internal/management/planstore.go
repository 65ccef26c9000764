package management

// PlanStore holds the selectable subscription plans. A failed load leaves it
// empty, which the form's required check then rejects.
type PlanStore struct {
	plans    []SubscriptionPlan
	err      error
	inFlight bool
}

// NewPlanStore returns an empty store with no load in flight.
func NewPlanStore() *PlanStore { return &PlanStore{} }

// Begin marks a load as started. It reports false if one is already running.
func (s *PlanStore) Begin() bool {
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

// Finish stores a load result. It reports false when no load was in flight,
// so results arriving after Cancel are dropped.
func (s *PlanStore) Finish(plans []SubscriptionPlan, err error) bool {
	if !s.inFlight {
		return false
	}
	s.inFlight = false
	s.err = err
	if err != nil {
		s.plans = nil
		return true
	}
	s.plans = append([]SubscriptionPlan(nil), plans...)
	return true
}

// Cancel abandons the in-flight load.
func (s *PlanStore) Cancel() { s.inFlight = false }

// Plans returns the loaded plans, empty after a failed load.
func (s *PlanStore) Plans() []SubscriptionPlan { return s.plans }

// Err returns the last load error, if any.
func (s *PlanStore) Err() error { return s.err }

// Lookup finds a plan by id.
func (s *PlanStore) Lookup(id string) (SubscriptionPlan, bool) {
	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return SubscriptionPlan{}, false
}
