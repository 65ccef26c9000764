package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/tenantadmin/internal/management"
)

func TestPrintCompaniesConvertsLastLogin(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	login := time.Date(2024, 3, 7, 7, 35, 0, 0, time.UTC)

	var buf bytes.Buffer
	printCompanies(&buf, []management.Company{
		{CompanyName: "Acme", Subdomain: "acme", IsActive: true, LastLogin: &login, DaysRemaining: 3},
		{CompanyName: "Nobody"},
	}, loc)
	out := buf.String()
	require.Contains(t, out, "07-03-24, Time: 1:05 pm")
	require.Contains(t, out, "3 Days Remaining")
	require.Contains(t, out, "No plan")
	require.Contains(t, out, "N/A")
}

func TestPrintEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	printPlans(&buf, nil, "$")
	printCompanies(&buf, nil, time.UTC)
	require.Equal(t, "No plans available\nNo companies found\n", buf.String())
}
