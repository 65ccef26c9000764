// Package management holds the state of the tenant administration view:
// loaded data, derived filters and counts, the registration form, dialogs and
// the notification slot. It is independent of any rendering layer.
//
// All methods must be called from a single goroutine (the host event loop).
// Blocking work is handed back to the host as a Job; the host runs it wherever
// it likes and feeds the resulting Outcome to Apply.
package management

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Backend is the service the console consumes.
type Backend interface {
	FetchCompanies(ctx context.Context) ([]Company, error)
	FetchActivePlans(ctx context.Context) ([]SubscriptionPlan, error)
	RegisterCompany(ctx context.Context, form FormState) (RegisterResult, error)
}

// Job performs one backend call. It must not touch console state.
type Job func(ctx context.Context) Outcome

// Outcome is the result of a Job, applied with Console.Apply.
type Outcome interface{ outcome() }

// CompaniesLoaded carries a company fetch result.
type CompaniesLoaded struct {
	Ticket    Ticket
	Companies []Company
	Err       error
}

// PlansLoaded carries a plan fetch result.
type PlansLoaded struct {
	Plans []SubscriptionPlan
	Err   error
}

// Registered carries a registration result. Ticket identifies the submit
// that produced it.
type Registered struct {
	Ticket uint64
	Form   FormState
	Result RegisterResult
	Err    error
}

func (CompaniesLoaded) outcome() {}
func (PlansLoaded) outcome()     {}
func (Registered) outcome()      {}

const (
	registerFailedMessage    = "Error registering company"
	registerSucceededMessage = "Company registered successfully"
)

var (
	ErrAddDialogClosed = errors.New("management: add company dialog is not open")
	ErrCompanyNotFound = errors.New("management: company not found")
	ErrConsoleClosed   = errors.New("management: console closed")
)

// Console coordinates the view's state containers.
type Console struct {
	backend Backend
	log     *slog.Logger
	loc     *time.Location

	data    *DataStore
	plans   *PlanStore
	form    *FormController
	dialogs *DialogManager
	notice  *NotificationChannel
	layout  LayoutToggle

	mode   FilterMode
	search string

	visible visibleMemo
	summary summaryMemo

	// submitSeq numbers submits; pending is the one in flight and formTicket
	// the one the live form issued. Zero means none.
	submitSeq  uint64
	pending    uint64
	formTicket uint64

	closed bool
}

// Option configures a Console.
type Option func(*Console)

func WithLogger(l *slog.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLocation sets the zone timestamps are shown in.
func WithLocation(loc *time.Location) Option {
	return func(c *Console) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithLayout sets the initial layout mode.
func WithLayout(m LayoutMode) Option {
	return func(c *Console) { c.layout.set(m) }
}

func NewConsole(backend Backend, opts ...Option) *Console {
	c := &Console{
		backend: backend,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		loc:     time.UTC,
		data:    NewDataStore(),
		plans:   NewPlanStore(),
		form:    NewFormController(),
		dialogs: NewDialogManager(),
		notice:  NewNotificationChannel(),
		mode:    FilterAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate starts the independent company and plan loads.
func (c *Console) Activate() []Job {
	var jobs []Job
	if j := c.LoadCompanies(); j != nil {
		jobs = append(jobs, j)
	}
	if j := c.LoadPlans(); j != nil {
		jobs = append(jobs, j)
	}
	return jobs
}

// LoadCompanies returns a fetch Job, or nil if one is already in flight.
func (c *Console) LoadCompanies() Job {
	if c.closed {
		return nil
	}
	ticket, ok := c.data.Begin()
	if !ok {
		c.log.Debug("company load already in flight")
		return nil
	}
	backend := c.backend
	return func(ctx context.Context) Outcome {
		list, err := backend.FetchCompanies(ctx)
		return CompaniesLoaded{Ticket: ticket, Companies: list, Err: err}
	}
}

// reload supersedes any in-flight load so the newest data wins.
func (c *Console) reload() Job {
	c.data.Cancel()
	return c.LoadCompanies()
}

// LoadPlans returns a plan fetch Job, or nil if one is already in flight.
func (c *Console) LoadPlans() Job {
	if c.closed || !c.plans.Begin() {
		return nil
	}
	backend := c.backend
	return func(ctx context.Context) Outcome {
		plans, err := backend.FetchActivePlans(ctx)
		return PlansLoaded{Plans: plans, Err: err}
	}
}

// SubmitForm validates the form and returns the registration Job. Invalid
// forms return a *ValidationError and never reach the backend. Only one
// registration runs at a time, even across a cancelled and reopened dialog.
func (c *Console) SubmitForm() (Job, error) {
	if c.closed {
		return nil, ErrConsoleClosed
	}
	if !c.dialogs.AddOpen() {
		return nil, ErrAddDialogClosed
	}
	if c.pending != 0 {
		return nil, ErrSubmitInFlight
	}
	values, err := c.form.BeginSubmit()
	if err != nil {
		return nil, err
	}
	c.submitSeq++
	ticket := c.submitSeq
	c.pending, c.formTicket = ticket, ticket
	backend := c.backend
	return func(ctx context.Context) Outcome {
		res, err := backend.RegisterCompany(ctx, values)
		return Registered{Ticket: ticket, Form: values, Result: res, Err: err}
	}, nil
}

// Apply folds a finished Job into the state. It may return a follow-up Job.
// Results arriving after Close are dropped.
func (c *Console) Apply(o Outcome) Job {
	if c.closed {
		return nil
	}
	switch m := o.(type) {
	case CompaniesLoaded:
		if !c.data.Finish(m.Ticket, m.Companies, m.Err) {
			c.log.Debug("dropped stale company load", "ticket", m.Ticket)
			return nil
		}
		if m.Err != nil {
			c.log.Error("load companies", "error", m.Err)
			c.notice.Error(fmt.Sprintf("Error: %s", m.Err.Error()))
			return nil
		}
		c.log.Debug("companies loaded", "count", len(m.Companies))
	case PlansLoaded:
		if !c.plans.Finish(m.Plans, m.Err) {
			return nil
		}
		if m.Err != nil {
			c.log.Warn("load subscription plans", "error", m.Err)
		}
	case Registered:
		return c.applyRegistered(m)
	}
	return nil
}

func (c *Console) applyRegistered(m Registered) Job {
	if m.Ticket == c.pending {
		c.pending = 0
	}
	// the dialog may have been cancelled while the call was pending; a
	// reopened form is not the one that submitted
	owned := m.Ticket == c.formTicket && c.form.Status() == FormSubmitting
	if owned {
		c.formTicket = 0
	}
	if m.Err != nil {
		c.log.Error("register company", "company", m.Form.CompanyName, "error", m.Err)
		if owned {
			c.form.Fail()
		}
		c.notice.Error(registerFailedMessage)
		return nil
	}
	c.log.Info("company registered", "company", m.Form.CompanyName)
	if owned {
		c.form.Succeed()
		c.dialogs.closeAdd()
	}
	next := c.reload()
	msg := m.Result.Message
	if msg == "" {
		msg = registerSucceededMessage
	}
	c.notice.Success(msg)
	return next
}

// Close marks the view as torn down. Pending results are ignored afterwards.
func (c *Console) Close() {
	c.closed = true
	c.data.Cancel()
	c.plans.Cancel()
}

// Actions.

func (c *Console) SetFilterMode(m FilterMode) error {
	if _, err := ParseFilterMode(string(m)); err != nil {
		return err
	}
	c.mode = m
	return nil
}

func (c *Console) SetSearchTerm(term string) { c.search = term }

func (c *Console) SetLayoutMode(m LayoutMode) error {
	switch m {
	case LayoutGrid:
		c.layout.SelectGrid()
	case LayoutColumn:
		c.layout.SelectColumn()
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLayout, m)
	}
	return nil
}

func (c *Console) SelectGrid() bool   { return c.layout.SelectGrid() }
func (c *Console) SelectColumn() bool { return c.layout.SelectColumn() }

// OpenAddDialog opens the registration dialog with a fresh form.
func (c *Console) OpenAddDialog() {
	c.form.Reset()
	c.formTicket = 0
	c.dialogs.openAdd()
}

// CloseAddDialog cancels the registration dialog and discards the form.
func (c *Console) CloseAddDialog() {
	c.form.Reset()
	c.formTicket = 0
	c.dialogs.closeAdd()
}

func (c *Console) UpdateField(name, value string) error {
	return c.form.Update(name, value)
}

// ViewDetails opens the details dialog for a loaded company.
func (c *Console) ViewDetails(id string) error {
	comp, ok := c.data.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	}
	c.dialogs.openDetails(comp)
	return nil
}

func (c *Console) CloseDetails() { c.dialogs.closeDetails() }

func (c *Console) DismissNotification() { c.notice.Dismiss() }

// Read model.

func (c *Console) Companies() []Company { return c.data.Companies() }

// Visible returns the filtered and searched subset of the company list.
func (c *Console) Visible() []Company {
	return c.visible.get(c.data.Version(), c.data.Companies(), c.mode, c.search)
}

// Summary returns counts over the full list.
func (c *Console) Summary() Summary {
	return c.summary.get(c.data.Version(), c.data.Companies())
}

// Suggestion returns a closest-name hint when the search matches nothing.
func (c *Console) Suggestion() (string, bool) {
	if c.search == "" || len(c.Visible()) > 0 {
		return "", false
	}
	return Suggest(Visible(c.data.Companies(), c.mode, ""), c.search)
}

func (c *Console) Loading() bool              { return c.data.Loading() }
func (c *Console) LoadError() string          { return c.data.Err() }
func (c *Console) Refreshing() bool           { return c.data.InFlight() }
func (c *Console) FilterMode() FilterMode     { return c.mode }
func (c *Console) SearchTerm() string         { return c.search }
func (c *Console) Layout() LayoutMode         { return c.layout.Mode() }
func (c *Console) AddDialogOpen() bool        { return c.dialogs.AddOpen() }
func (c *Console) DetailsOpen() bool          { return c.dialogs.DetailsOpen() }
func (c *Console) Selected() (Company, bool)  { return c.dialogs.Selected() }
func (c *Console) FormValues() FormState      { return c.form.Values() }
func (c *Console) FormErrors() FormErrors     { return c.form.Errors() }
func (c *Console) FormStatus() FormStatus     { return c.form.Status() }
func (c *Console) Submitting() bool           { return c.pending != 0 }
func (c *Console) Plans() []SubscriptionPlan  { return c.plans.Plans() }
func (c *Console) Notification() Notification { return c.notice.Current() }
func (c *Console) Location() *time.Location   { return c.loc }

// PlanLabel resolves the selected plan id to its display name.
func (c *Console) PlanLabel(id string) string {
	if p, ok := c.plans.Lookup(id); ok {
		return p.PlanName
	}
	return id
}

// FormatTime renders a timestamp in the console's zone.
func (c *Console) FormatTime(t *time.Time) string {
	if t == nil {
		return FormatDate(nil)
	}
	local := t.In(c.loc)
	return FormatDate(&local)
}

// FormatDay renders a calendar date in the console's zone.
func (c *Console) FormatDay(t time.Time) string {
	if t.IsZero() {
		return FormatDay(t)
	}
	return FormatDay(t.In(c.loc))
}
