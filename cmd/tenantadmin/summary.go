package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jask/tenantadmin/internal/management"
)

var (
	summaryFilter string
	summarySearch string
)

func newSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print tenant counts, plans and the filtered company list",
		RunE:  runSummary,
	}
	cmd.Flags().StringVar(&summaryFilter, "filter", string(management.FilterAll), "all, active, inactive or paid")
	cmd.Flags().StringVar(&summarySearch, "search", "", "case-insensitive company name filter")
	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	mode, err := management.ParseFilterMode(summaryFilter)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, logCloser, err := newLogger(cfg, false)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logCloser.Close()
	loc, err := cfg.UI.Location()
	if err != nil {
		return err
	}

	backend, closer, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	var (
		companies []management.Company
		plans     []management.SubscriptionPlan
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		companies, err = backend.FetchCompanies(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		plans, err = backend.FetchActivePlans(ctx)
		if err != nil {
			// plans are optional for a snapshot
			log.Warn("load subscription plans", "error", err)
			plans = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load companies: %w", err)
	}

	out := cmd.OutOrStdout()
	printSummary(out, management.Summarize(companies))
	printPlans(out, plans, cfg.UI.CurrencySymbol)
	printCompanies(out, management.Visible(companies, mode, summarySearch), loc)
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func printSummary(w io.Writer, s management.Summary) {
	fmt.Fprintf(w, "Total: %d  Active: %d  Inactive: %d  Paid: %d\n\n", s.Total, s.Active, s.Inactive, s.Paid)
}

func printPlans(w io.Writer, plans []management.SubscriptionPlan, currency string) {
	if len(plans) == 0 {
		fmt.Fprintln(w, "No plans available")
		return
	}
	t := table.New().Border(lipgloss.NormalBorder()).
		StyleFunc(cellStyle).
		Headers("Plan", "Price", "Details")
	for _, p := range plans {
		t.Row(p.PlanName, fmt.Sprintf("%s%.2f", currency, p.Price), p.PlanDetails)
	}
	fmt.Fprintln(w, t.Render())
}

func printCompanies(w io.Writer, companies []management.Company, loc *time.Location) {
	if len(companies) == 0 {
		fmt.Fprintln(w, "No companies found")
		return
	}
	t := table.New().Border(lipgloss.NormalBorder()).
		StyleFunc(cellStyle).
		Headers("Company", "Subdomain", "Plan", "Active", "Paid", "Remaining", "Last login ("+loc.String()+")")
	for _, c := range companies {
		t.Row(c.CompanyName, c.Subdomain, c.PlanName(), strconv.FormatBool(c.IsActive), strconv.FormatBool(c.IsPaid),
			c.RemainingLabel(), lastLogin(c.LastLogin, loc))
	}
	fmt.Fprintln(w, t.Render())
}

func lastLogin(t *time.Time, loc *time.Location) string {
	if t == nil {
		return management.FormatDate(nil)
	}
	local := t.In(loc)
	return management.FormatDate(&local)
}

func cellStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return lipgloss.NewStyle().Padding(0, 1)
}
