package calendar

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dentaplan/internal/cli"
	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/export"
	"github.com/julianstephens/dentaplan/internal/logger"
	"github.com/julianstephens/dentaplan/internal/reports"
	"github.com/julianstephens/dentaplan/internal/schedule"
	"github.com/julianstephens/dentaplan/internal/tui/components/calendar"
	"github.com/julianstephens/dentaplan/internal/tui/components/dashboard"
	reportsview "github.com/julianstephens/dentaplan/internal/tui/components/reports"
	"github.com/julianstephens/dentaplan/internal/utils"
)

type CalendarCmd struct {
	View   string `short:"v" default:"weekly" enum:"daily,weekly,monthly,minimal" help:"Calendar view (daily, weekly, monthly, minimal)."`
	Date   string `short:"d" help:"Anchor date (YYYY-MM-DD, today, tomorrow). Defaults to today."`
	Search string `short:"s" help:"Only show appointments for patients whose name contains this."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	mode, err := schedule.ParseViewMode(c.View)
	if err != nil {
		return err
	}
	date, err := utils.ResolveDate(c.Date, ctx.Now())
	if err != nil {
		return err
	}

	appts := st.Appointments
	if c.Search != "" {
		appts = reports.SearchByPatient(appts, st.Patients, c.Search)
	}

	fmt.Println(calendar.Render(calendar.Data{
		Settings:     st.Settings,
		Appointments: appts,
		Patients:     st.Patients,
		Today:        ctx.Now(),
	}, mode, date, nil))
	return nil
}

type DashboardCmd struct {
	Top int `default:"5" help:"Number of procedures to list."`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	if !st.Settings.IsConfigured {
		cli.Warn("Clinic is not configured yet. Run 'dentaplan setup'.")
	}
	fmt.Println(dashboard.Render(dashboard.Data{
		Settings:     st.Settings,
		Appointments: st.Appointments,
		Patients:     st.Patients,
		Now:          ctx.Now(),
		TopN:         c.Top,
	}))
	return nil
}

type ReportCmd struct {
	Range string `short:"r" default:"week" enum:"week,month,all" help:"Report window (week, month, all)."`
	JSON  bool   `help:"Print the report as JSON."`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	r, err := reports.ParseRange(c.Range)
	if err != nil {
		return err
	}

	report := reports.Summary(st.Appointments, st.Patients, r, ctx.Now())
	if c.JSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(reportsview.Render(report))
	return nil
}

type ExportCmd struct {
	Date string `short:"d" help:"Any day in the week to export. Defaults to today."`
	Out  string `short:"o" default:"." help:"Directory to write the schedule into."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDate(c.Date, ctx.Now())
	if err != nil {
		return err
	}
	dir, err := cli.ExpandPath(c.Out)
	if err != nil {
		return err
	}

	days := schedule.WeekDays(date)
	path, err := export.WriteFile(dir, st.Settings, st.Appointments, st.Patients, days)
	if err != nil {
		return err
	}
	logger.Info("Exported schedule", "path", path, "week", days[0].Format(constants.DateFormat))
	cli.Success("Schedule exported to %s", path)
	return nil
}
