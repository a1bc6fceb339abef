package settings

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/dentaplan/internal/cli"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/state"
	settingsview "github.com/julianstephens/dentaplan/internal/tui/components/settings"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Day          string `help:"Weekday(s) to change, e.g. 'mon' or 'mon,wed,fri'."`
	Start        *int   `help:"Opening hour (0-23) for --day."`
	End          *int   `help:"Closing hour (1-24) for --day."`
	Working      *bool  `help:"Mark --day as a working day." negatable:""`
	SlotDuration *int   `help:"Appointment slot length in minutes."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	settings := st.Settings.Clone()

	if c.List {
		printSettings(settings)
		return nil
	}

	updated := false
	if c.SlotDuration != nil {
		settings.SlotDuration = *c.SlotDuration
		updated = true
	}

	dayFlags := c.Start != nil || c.End != nil || c.Working != nil
	if dayFlags && c.Day == "" {
		return fmt.Errorf("--start, --end and --working require --day")
	}
	if c.Day != "" {
		days, err := cli.ParseWeekdays(c.Day)
		if err != nil {
			return err
		}
		for _, d := range days {
			ds := settings.WorkingHours[d]
			if c.Start != nil {
				ds.StartTime = *c.Start
			}
			if c.End != nil {
				ds.EndTime = *c.End
			}
			if c.Working != nil {
				ds.IsWorkingDay = *c.Working
			}
			settings.WorkingHours[d] = ds
		}
		updated = dayFlags || updated
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if _, err := ctx.Session.Dispatch(state.SaveSettings{Settings: settings}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cli.Success("Settings updated successfully.")
	return nil
}

func printSettings(s models.Settings) {
	fmt.Print(settingsview.Render(s))
}

// SetupCmd runs onboarding. Without flags it shows an interactive form.
type SetupCmd struct {
	Days         string `help:"Working days, e.g. 'mon,tue,wed,thu,fri'."`
	Start        *int   `help:"Opening hour (0-23) for every working day. Other days keep their hours."`
	End          *int   `help:"Closing hour (1-24) for every working day. Other days keep their hours."`
	SlotDuration *int   `help:"Appointment slot length in minutes."`
}

func (c *SetupCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	if st.Settings.IsConfigured {
		fmt.Println("Clinic is already configured; updating working hours.")
	}

	values := settingsview.DefaultValues(st.Settings)
	if c.Days == "" && c.Start == nil && c.End == nil && c.SlotDuration == nil {
		if err := settingsview.Form(&values).Run(); err != nil {
			return fmt.Errorf("setup cancelled: %w", err)
		}
	} else if err := c.applyFlags(&values); err != nil {
		return err
	}

	settings, err := values.Settings()
	if err != nil {
		return err
	}

	if _, err := ctx.Session.Dispatch(state.SaveSettings{Settings: settings}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cli.Success("Clinic schedule saved.")
	printSettings(ctx.Session.State().Settings)
	return nil
}

func (c *SetupCmd) applyFlags(v *settingsview.Values) error {
	if c.Days != "" {
		days, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		v.SetWorking(days)
	}
	v.SetHours(c.Start, c.End)
	if c.SlotDuration != nil {
		v.SlotDuration = strconv.Itoa(*c.SlotDuration)
	}
	return nil
}
