package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tenantadmin/internal/management"
)

// App hosts the tenant console inside a bubbletea program.
type App struct {
	ctx      context.Context
	cancel   context.CancelFunc
	console  *management.Console
	log      *slog.Logger
	keys     keyMap
	formKeys formKeyMap
	help     help.Model
	currency string

	search    textinput.Model
	searching bool
	form      addForm
	cursor    int
	width     int
	height    int
	status    string
}

// outcomeMsg carries a finished console Job back onto the event loop.
type outcomeMsg struct{ management.Outcome }

// Options configure the host.
type Options struct {
	Logger         *slog.Logger
	CurrencySymbol string
}

func New(ctx context.Context, console *management.Console, opts Options) *App {
	ctx, cancel := context.WithCancel(ctx)
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "$"
	}
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search companies"
	search.Cursor.SetMode(cursor.CursorStatic)

	return &App{
		ctx:      ctx,
		cancel:   cancel,
		console:  console,
		log:      opts.Logger.With("component", "tui"),
		keys:     newKeyMap(),
		formKeys: newFormKeyMap(),
		help:     help.New(),
		currency: opts.CurrencySymbol,
		search:   search,
		form:     newAddForm(),
		width:    100,
	}
}

func (a *App) Init() tea.Cmd {
	jobs := a.console.Activate()
	cmds := make([]tea.Cmd, 0, len(jobs))
	for _, j := range jobs {
		cmds = append(cmds, a.run(j))
	}
	return tea.Batch(cmds...)
}

// run turns a console Job into a command executed off the event loop.
func (a *App) run(job management.Job) tea.Cmd {
	if job == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		return outcomeMsg{job(ctx)}
	}
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.console.Close()
	a.cancel()
	return a, tea.Quit
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case outcomeMsg:
		next := a.console.Apply(m.Outcome)
		a.clampCursor()
		return a, a.run(next)
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, a.keys.ForceQuit) {
			return a.quit()
		}
		switch {
		case a.console.AddDialogOpen():
			return a.handleFormKey(m)
		case a.console.DetailsOpen():
			return a.handleDetailsKey(m)
		case a.searching:
			return a.handleSearchKey(m)
		}
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	switch {
	case key.Matches(m, a.keys.Quit):
		return a.quit()
	case key.Matches(m, a.keys.All):
		a.setFilter(management.FilterAll)
	case key.Matches(m, a.keys.Active):
		a.setFilter(management.FilterActive)
	case key.Matches(m, a.keys.Inactive):
		a.setFilter(management.FilterInactive)
	case key.Matches(m, a.keys.Paid):
		a.setFilter(management.FilterPaid)
	case key.Matches(m, a.keys.Search):
		a.searching = true
		a.search.Focus()
	case key.Matches(m, a.keys.Clear):
		a.search.SetValue("")
		a.console.SetSearchTerm("")
		a.clampCursor()
	case key.Matches(m, a.keys.Grid):
		a.console.SelectGrid()
	case key.Matches(m, a.keys.Column):
		a.console.SelectColumn()
	case key.Matches(m, a.keys.Add):
		a.form = newAddForm()
		a.console.OpenAddDialog()
	case key.Matches(m, a.keys.Details):
		a.openDetails()
	case key.Matches(m, a.keys.Dismiss):
		a.console.DismissNotification()
	case key.Matches(m, a.keys.Retry):
		if a.console.LoadError() == "" {
			return a, nil
		}
		return a, a.run(a.console.LoadCompanies())
	case key.Matches(m, a.keys.Up):
		a.moveCursor(-a.columns())
	case key.Matches(m, a.keys.Down):
		a.moveCursor(a.columns())
	case key.Matches(m, a.keys.Left):
		a.moveCursor(-1)
	case key.Matches(m, a.keys.Right):
		a.moveCursor(1)
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEnter, tea.KeyEsc:
		a.searching = false
		a.search.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.console.SetSearchTerm(a.search.Value())
	a.clampCursor()
	return a, cmd
}

func (a *App) handleDetailsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc", "enter", "v", "q":
		a.console.CloseDetails()
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.formKeys.Cancel):
		a.console.CloseAddDialog()
		return a, nil
	case key.Matches(m, a.formKeys.Next):
		a.form.move(1)
		return a, nil
	case key.Matches(m, a.formKeys.Prev):
		a.form.move(-1)
		return a, nil
	case key.Matches(m, a.formKeys.Submit):
		job, err := a.console.SubmitForm()
		if err != nil {
			var verr *management.ValidationError
			if !errors.As(err, &verr) && !errors.Is(err, management.ErrSubmitInFlight) {
				a.log.Error("submit form", "error", err)
			}
			return a, nil
		}
		return a, a.run(job)
	}
	if a.form.onPlan() {
		dir := 0
		switch {
		case key.Matches(m, a.formKeys.PlanPrev):
			dir = -1
		case key.Matches(m, a.formKeys.PlanNext):
			dir = 1
		}
		if dir != 0 {
			if id, ok := a.form.cyclePlan(a.console.Plans(), dir); ok {
				a.updateField(management.FieldSubscriptionPlan, id)
			}
		}
		return a, nil
	}
	field, value, cmd := a.form.update(m)
	a.updateField(field, value)
	return a, cmd
}

func (a *App) updateField(name, value string) {
	if err := a.console.UpdateField(name, value); err != nil {
		a.log.Error("update field", "field", name, "error", err)
	}
}

func (a *App) setFilter(mode management.FilterMode) {
	if err := a.console.SetFilterMode(mode); err != nil {
		a.log.Error("set filter", "mode", mode, "error", err)
		return
	}
	a.cursor = 0
}

func (a *App) openDetails() {
	visible := a.console.Visible()
	if a.cursor < 0 || a.cursor >= len(visible) {
		return
	}
	if err := a.console.ViewDetails(visible[a.cursor].ID); err != nil {
		a.status = err.Error()
	}
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clampCursor()
}

func (a *App) clampCursor() {
	n := len(a.console.Visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) columns() int {
	if a.console.Layout() == management.LayoutColumn {
		return 1
	}
	cols := a.width / (cardWidth + 2)
	if cols < 1 {
		return 1
	}
	return cols
}
