package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tenantadmin/internal/management"
)

const cardWidth = 34

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	statOnStyle   = statStyle.BorderForeground(lipgloss.Color("63")).Bold(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(cardWidth)
	cardOnStyle   = cardStyle.BorderForeground(lipgloss.Color("63"))
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1)
	successBar    = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("28")).Padding(0, 1)
	failureBar    = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("124")).Padding(0, 1)
	fieldErrStyle = errorStyle.Italic(true)
)

func (a *App) View() string {
	body := a.renderDashboard()
	switch {
	case a.console.AddDialogOpen():
		body += "\n\n" + a.renderAddDialog()
	case a.console.DetailsOpen():
		body += "\n\n" + a.renderDetails()
	}
	if n := a.console.Notification(); n.Open {
		body += "\n\n" + renderNotification(n)
	}
	return body
}

func (a *App) renderDashboard() string {
	title := titleStyle.Render("Tenant Administration")
	if a.console.Refreshing() && !a.console.Loading() {
		title += mutedStyle.Render("  refreshing…")
	}
	out := []string{title, a.renderSummary(), a.renderSearch()}

	switch {
	case a.console.Loading():
		out = append(out, mutedStyle.Render("Loading companies…"))
	case a.console.LoadError() != "":
		out = append(out, errorStyle.Render("Could not load companies: "+a.console.LoadError()), "[R] Retry")
	default:
		out = append(out, a.renderCompanies())
	}
	if a.status != "" {
		out = append(out, a.status)
	}
	out = append(out, a.help.View(a.keys))
	return strings.Join(out, "\n")
}

func (a *App) renderSummary() string {
	s := a.console.Summary()
	cards := make([]string, 0, len(management.FilterModes))
	labels := map[management.FilterMode]string{
		management.FilterAll:      "Total",
		management.FilterActive:   "Active",
		management.FilterInactive: "Inactive",
		management.FilterPaid:     "Paid",
	}
	for i, mode := range management.FilterModes {
		style := statStyle
		if a.console.FilterMode() == mode {
			style = statOnStyle
		}
		cards = append(cards, style.Render(fmt.Sprintf("[%d] %s\n%d", i+1, labels[mode], s.Count(mode))))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (a *App) renderSearch() string {
	if !a.searching && a.console.SearchTerm() == "" {
		return mutedStyle.Render("[/] search by company name")
	}
	line := a.search.View()
	if a.console.SearchTerm() != "" && len(a.console.Visible()) == 0 {
		if name, ok := a.console.Suggestion(); ok {
			line += mutedStyle.Render(fmt.Sprintf("  did you mean %q?", name))
		}
	}
	return line
}

func (a *App) renderCompanies() string {
	visible := a.console.Visible()
	if len(visible) == 0 {
		return mutedStyle.Render("No companies found")
	}
	cards := make([]string, 0, len(visible))
	for i, c := range visible {
		cards = append(cards, a.renderCard(c, i == a.cursor))
	}
	if a.console.Layout() == management.LayoutColumn {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	cols := a.columns()
	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderCard(c management.Company, selected bool) string {
	status := okStyle.Render("Active")
	if !c.IsActive {
		status = errorStyle.Render("Inactive")
	}
	if c.IsPaid {
		status += " · Paid"
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(c.CompanyName),
		mutedStyle.Render(c.SubdomainLabel()),
		status,
		"Plan: " + c.PlanName(),
	}
	if sub := c.SubscriptionPlan; sub != nil {
		lines = append(lines,
			"Registered: "+a.console.FormatDay(sub.StartDate),
			"Expires: "+a.console.FormatDay(sub.EndDate),
		)
	}
	lines = append(lines, c.RemainingLabel())
	style := cardStyle
	if selected {
		style = cardOnStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (a *App) renderAddDialog() string {
	errs := a.console.FormErrors()
	out := []string{titleStyle.Render("Add Company")}
	for i, tf := range textFields {
		marker := " "
		if a.form.focus == i {
			marker = ">"
		}
		out = append(out, fmt.Sprintf("%s %-13s %s", marker, tf.Label+":", a.form.inputs[i].View()))
		if msg, ok := errs[tf.Field]; ok {
			out = append(out, "  "+fieldErrStyle.Render(msg))
		}
	}

	marker := " "
	if a.form.onPlan() {
		marker = ">"
	}
	plan := mutedStyle.Render("choose with ←/→")
	if plans := a.console.Plans(); len(plans) == 0 {
		plan = mutedStyle.Render("No plans available")
	} else if id := a.console.FormValues().SubscriptionPlan; id != "" {
		plan = "‹ " + a.console.PlanLabel(id) + " ›"
	}
	out = append(out, fmt.Sprintf("%s %-13s %s", marker, "Plan:", plan))
	if msg, ok := errs[management.FieldSubscriptionPlan]; ok {
		out = append(out, "  "+fieldErrStyle.Render(msg))
	}

	if a.console.Submitting() {
		out = append(out, "", mutedStyle.Render("Registering…"))
	}
	out = append(out, "", a.help.ShortHelpView(a.formKeys.ShortHelp()))
	return modalStyle.Render(strings.Join(out, "\n"))
}

func (a *App) renderDetails() string {
	c, ok := a.console.Selected()
	if !ok {
		return ""
	}
	subdomain := c.Subdomain
	if subdomain == "" {
		subdomain = "N/A"
	}
	password := "N/A"
	if c.Password != "" {
		password = strings.Repeat("•", 8)
	}
	rows := [][2]string{
		{"Company", c.CompanyName},
		{"Subdomain", subdomain},
		{"Email", c.Email},
		{"Password", password},
		{"Paid", yesNo(c.IsPaid)},
		{"Active", yesNo(c.IsActive)},
		{"Last login", a.console.FormatTime(c.LastLogin)},
		{"Plan", c.PlanName()},
	}
	if sub := c.SubscriptionPlan; sub != nil {
		rows = append(rows,
			[2]string{"Price", fmt.Sprintf("%s%.2f", a.currency, sub.Price)},
			[2]string{"Days left", strconv.Itoa(c.DaysRemaining)},
			[2]string{"Time left", strconv.FormatFloat(c.TimeRemaining, 'f', -1, 64)},
			[2]string{"Start", a.console.FormatDay(sub.StartDate)},
			[2]string{"End", a.console.FormatDay(sub.EndDate)},
			[2]string{"Details", sub.PlanDetails},
		)
	}
	out := []string{titleStyle.Render("Company Details")}
	for _, r := range rows {
		out = append(out, fmt.Sprintf("%-11s %s", r[0]+":", r[1]))
	}
	out = append(out, "", "[esc] Close")
	return modalStyle.Render(strings.Join(out, "\n"))
}

func renderNotification(n management.Notification) string {
	style := successBar
	if n.Severity == management.SeverityError {
		style = failureBar
	}
	return style.Render(n.Message) + mutedStyle.Render("  [x] dismiss")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
