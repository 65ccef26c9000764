package management

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func activated(t *testing.T, b *stubBackend) *Console {
	t.Helper()
	c := NewConsole(b)
	jobs := c.Activate()
	require.Len(t, jobs, 2)
	for _, j := range jobs {
		run(c, j)
	}
	return c
}

func TestActivateLoadsCompaniesAndPlans(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		fetchCompaniesFn: func(context.Context) ([]Company, error) { return sampleCompanies(), nil },
		fetchPlansFn: func(context.Context) ([]SubscriptionPlan, error) {
			return []SubscriptionPlan{{ID: "plan-basic", PlanName: "Basic"}}, nil
		},
	}
	c := NewConsole(b)
	require.True(t, c.Loading())

	jobs := c.Activate()
	require.Len(t, jobs, 2)
	// plans first; the loads are independent
	run(c, jobs[1])
	require.True(t, c.Loading())
	run(c, jobs[0])

	require.False(t, c.Loading())
	require.Empty(t, c.LoadError())
	require.Len(t, c.Companies(), 4)
	require.Equal(t, "Basic", c.PlanLabel("plan-basic"))
	require.Equal(t, Summary{Total: 4, Active: 2, Inactive: 2, Paid: 2}, c.Summary())
}

func TestLoadCompaniesGuardsInFlight(t *testing.T) {
	t.Parallel()
	c := NewConsole(&stubBackend{})
	first := c.LoadCompanies()
	require.NotNil(t, first)
	require.Nil(t, c.LoadCompanies())

	run(c, first)
	require.NotNil(t, c.LoadCompanies())
}

func TestLoadErrorIsStoredAndNotified(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		fetchCompaniesFn: func(context.Context) ([]Company, error) { return nil, errors.New("boom") },
	}
	c := activated(t, b)

	require.False(t, c.Loading())
	require.Equal(t, "boom", c.LoadError())
	n := c.Notification()
	require.True(t, n.Open)
	require.Equal(t, SeverityError, n.Severity)

	// retry is user initiated and clears the error on success
	b.fetchCompaniesFn = func(context.Context) ([]Company, error) { return sampleCompanies(), nil }
	run(c, c.LoadCompanies())
	require.Empty(t, c.LoadError())
	require.Len(t, c.Companies(), 4)
}

func TestPlanLoadFailureDegradesToEmptySelector(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		fetchPlansFn: func(context.Context) ([]SubscriptionPlan, error) { return nil, errors.New("plans down") },
	}
	c := activated(t, b)
	require.Empty(t, c.Plans())
	require.False(t, c.Notification().Open)

	c.OpenAddDialog()
	_ = c.UpdateField(FieldCompanyName, "A")
	_ = c.UpdateField(FieldEmail, "a@b.c")
	_ = c.UpdateField(FieldPassword, "p")
	job, err := c.SubmitForm()
	require.Nil(t, job)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, FormErrors{FieldSubscriptionPlan: requiredMessage}, verr.Fields)
}

func TestSubmitInvalidDoesNotCallBackend(t *testing.T) {
	t.Parallel()
	b := &stubBackend{}
	c := activated(t, b)
	c.OpenAddDialog()
	_ = c.UpdateField(FieldEmail, "x@y.z")

	job, err := c.SubmitForm()
	require.Nil(t, job)
	require.Error(t, err)
	require.Equal(t, FormErrors{
		FieldCompanyName:      requiredMessage,
		FieldPassword:         requiredMessage,
		FieldSubscriptionPlan: requiredMessage,
	}, c.FormErrors())
	require.True(t, c.AddDialogOpen())
	require.Zero(t, b.registers.Load())
}

func TestSubmitSuccessResetsClosesReloadsAndNotifies(t *testing.T) {
	t.Parallel()
	var got FormState
	b := &stubBackend{
		fetchCompaniesFn: func(context.Context) ([]Company, error) { return sampleCompanies(), nil },
		registerFn: func(_ context.Context, f FormState) (RegisterResult, error) {
			got = f
			return RegisterResult{Message: "ok"}, nil
		},
	}
	c := activated(t, b)
	require.EqualValues(t, 1, b.fetches.Load())

	c.OpenAddDialog()
	fillForm(c)
	job, err := c.SubmitForm()
	require.NoError(t, err)
	require.Equal(t, FormSubmitting, c.FormStatus())
	run(c, job)

	require.Equal(t, "NewCo", got.CompanyName)
	require.Equal(t, "plan-basic", got.SubscriptionPlan)
	require.False(t, c.AddDialogOpen())
	require.Equal(t, FormState{}, c.FormValues())
	require.Empty(t, c.FormErrors())
	require.EqualValues(t, 2, b.fetches.Load())
	require.Equal(t, Notification{Open: true, Severity: SeveritySuccess, Message: "ok"}, c.Notification())
}

func TestSubmitFailureKeepsFormAndDialog(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		registerFn: func(context.Context, FormState) (RegisterResult, error) {
			return RegisterResult{}, errors.New("email taken")
		},
	}
	c := activated(t, b)
	c.OpenAddDialog()
	fillForm(c)
	before := c.FormValues()

	job, err := c.SubmitForm()
	require.NoError(t, err)
	run(c, job)

	n := c.Notification()
	require.True(t, n.Open)
	require.Equal(t, SeverityError, n.Severity)
	require.Equal(t, registerFailedMessage, n.Message)
	require.True(t, c.AddDialogOpen())
	require.Equal(t, before, c.FormValues())
	require.Equal(t, FormFailed, c.FormStatus())
	require.EqualValues(t, 1, b.fetches.Load())

	// operator may resubmit
	job, err = c.SubmitForm()
	require.NoError(t, err)
	require.NotNil(t, job)
}

func TestSubmitRejectsDuplicateWhileInFlight(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		registerFn: func(context.Context, FormState) (RegisterResult, error) { return RegisterResult{Message: "ok"}, nil },
	}
	c := activated(t, b)
	c.OpenAddDialog()
	fillForm(c)

	job, err := c.SubmitForm()
	require.NoError(t, err)
	second, err := c.SubmitForm()
	require.Nil(t, second)
	require.ErrorIs(t, err, ErrSubmitInFlight)

	run(c, job)
	require.EqualValues(t, 1, b.registers.Load())
}

func TestSubmitRequiresOpenDialog(t *testing.T) {
	t.Parallel()
	c := activated(t, &stubBackend{})
	_, err := c.SubmitForm()
	require.ErrorIs(t, err, ErrAddDialogClosed)
}

func TestSuccessAfterCancelLeavesNewDialogAlone(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		registerFn: func(context.Context, FormState) (RegisterResult, error) { return RegisterResult{Message: "done"}, nil },
	}
	c := activated(t, b)
	c.OpenAddDialog()
	fillForm(c)
	job, err := c.SubmitForm()
	require.NoError(t, err)

	c.CloseAddDialog()
	c.OpenAddDialog()
	_ = c.UpdateField(FieldCompanyName, "Second")

	run(c, job)
	require.True(t, c.AddDialogOpen())
	require.Equal(t, "Second", c.FormValues().CompanyName)
	require.Equal(t, "done", c.Notification().Message)
}

func TestReopenedDialogCannotSubmitWhileFirstPending(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		registerFn: func(_ context.Context, f FormState) (RegisterResult, error) {
			if f.CompanyName == "Second" {
				return RegisterResult{}, errors.New("duplicate")
			}
			return RegisterResult{Message: "done"}, nil
		},
	}
	c := activated(t, b)
	c.OpenAddDialog()
	fillForm(c)
	first, err := c.SubmitForm()
	require.NoError(t, err)

	c.CloseAddDialog()
	c.OpenAddDialog()
	fillForm(c)
	require.NoError(t, c.UpdateField(FieldCompanyName, "Second"))
	require.True(t, c.Submitting())

	job, err := c.SubmitForm()
	require.Nil(t, job)
	require.ErrorIs(t, err, ErrSubmitInFlight)
	require.NotEqual(t, FormSubmitting, c.FormStatus())

	// the first result must not close or reset the reopened form
	reload := c.Apply(first(context.Background()))
	require.NotNil(t, reload)
	require.False(t, c.Submitting())
	require.True(t, c.AddDialogOpen())
	require.Equal(t, "Second", c.FormValues().CompanyName)
	require.Equal(t, "done", c.Notification().Message)
	run(c, reload)

	second, err := c.SubmitForm()
	require.NoError(t, err)
	run(c, second)

	require.EqualValues(t, 2, b.registers.Load())
	require.True(t, c.AddDialogOpen())
	require.Equal(t, FormFailed, c.FormStatus())
	require.Equal(t, "Second", c.FormValues().CompanyName)
	n := c.Notification()
	require.Equal(t, SeverityError, n.Severity)
	require.Equal(t, registerFailedMessage, n.Message)
}

func TestReloadSupersedesInFlightLoad(t *testing.T) {
	t.Parallel()
	calls := 0
	b := &stubBackend{
		fetchCompaniesFn: func(context.Context) ([]Company, error) {
			calls++
			if calls == 1 {
				return sampleCompanies()[:1], nil
			}
			return sampleCompanies(), nil
		},
		registerFn: func(context.Context, FormState) (RegisterResult, error) { return RegisterResult{}, nil },
	}
	c := NewConsole(b)
	stale := c.LoadCompanies()
	staleOutcome := stale(context.Background())

	c.OpenAddDialog()
	fillForm(c)
	job, err := c.SubmitForm()
	require.NoError(t, err)
	reload := c.Apply(job(context.Background()))
	require.NotNil(t, reload)
	require.Equal(t, registerSucceededMessage, c.Notification().Message)

	// the superseded result arrives late and is ignored
	require.Nil(t, c.Apply(staleOutcome))
	require.True(t, c.Loading())

	run(c, reload)
	require.Len(t, c.Companies(), 4)
}

func TestApplyAfterCloseIsIgnored(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		fetchCompaniesFn: func(context.Context) ([]Company, error) { return sampleCompanies(), nil },
	}
	c := NewConsole(b)
	job := c.LoadCompanies()
	c.Close()

	require.Nil(t, c.Apply(job(context.Background())))
	require.Empty(t, c.Companies())
	require.Nil(t, c.LoadCompanies())
	_, err := c.SubmitForm()
	require.ErrorIs(t, err, ErrConsoleClosed)
}

func TestDialogLifecycle(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		fetchCompaniesFn: func(context.Context) ([]Company, error) { return sampleCompanies(), nil },
	}
	c := activated(t, b)

	c.OpenAddDialog()
	_ = c.UpdateField(FieldCompanyName, "draft")
	c.CloseAddDialog()
	require.False(t, c.AddDialogOpen())
	c.OpenAddDialog()
	require.Equal(t, FormState{}, c.FormValues())

	require.NoError(t, c.ViewDetails("3"))
	require.True(t, c.DetailsOpen())
	c.CloseDetails()
	require.False(t, c.DetailsOpen())
	sel, ok := c.Selected()
	require.True(t, ok)
	require.Equal(t, "Dormant Inc", sel.CompanyName)

	require.NoError(t, c.ViewDetails("1"))
	sel, _ = c.Selected()
	require.Equal(t, "Acme Corp", sel.CompanyName)

	require.ErrorIs(t, c.ViewDetails("missing"), ErrCompanyNotFound)
}

func TestFilterSearchAndLayoutActions(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		fetchCompaniesFn: func(context.Context) ([]Company, error) { return sampleCompanies(), nil },
	}
	c := activated(t, b)

	require.NoError(t, c.SetFilterMode(FilterPaid))
	require.NoError(t, c.SetFilterMode(FilterActive))
	require.Len(t, c.Visible(), 2)
	require.Equal(t, 4, c.Summary().Total)

	c.SetSearchTerm("ACME")
	require.Len(t, c.Visible(), 1)
	require.ErrorIs(t, c.SetFilterMode("expired"), ErrInvalidFilterMode)
	require.Equal(t, FilterActive, c.FilterMode())

	c.SetSearchTerm("acmw")
	require.Empty(t, c.Visible())
	hint, ok := c.Suggestion()
	require.True(t, ok)
	require.Equal(t, "Acme Corp", hint)

	require.Equal(t, LayoutGrid, c.Layout())
	require.False(t, c.SelectGrid())
	require.True(t, c.SelectColumn())
	require.False(t, c.SelectColumn())
	require.NoError(t, c.SetLayoutMode(LayoutGrid))
	require.Equal(t, LayoutGrid, c.Layout())
	require.ErrorIs(t, c.SetLayoutMode("masonry"), ErrInvalidLayout)
}

func TestNotificationOverwriteAndDismiss(t *testing.T) {
	t.Parallel()
	n := NewNotificationChannel()
	n.Success("first")
	n.Error("second")
	require.Equal(t, Notification{Message: "second", Severity: SeverityError, Open: true}, n.Current())

	n.Dismiss()
	require.Equal(t, Notification{Message: "second", Severity: SeverityError, Open: false}, n.Current())
}
