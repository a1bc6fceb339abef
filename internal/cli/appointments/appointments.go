package appointments

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dentaplan/internal/cli"
	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/reports"
	"github.com/julianstephens/dentaplan/internal/schedule"
	"github.com/julianstephens/dentaplan/internal/scheduler"
	"github.com/julianstephens/dentaplan/internal/state"
	"github.com/julianstephens/dentaplan/internal/utils"
)

type ApptCmd struct {
	Book   ApptBookCmd   `cmd:"" help:"Book an appointment."`
	Cancel ApptCancelCmd `cmd:"" help:"Cancel an appointment."`
	Show   ApptShowCmd   `cmd:"" help:"Show an appointment."`
	Now    ApptNowCmd    `cmd:"" help:"Book the current slot (rounded up to the slot length)."`
	Free   ApptFreeCmd   `cmd:"" help:"Find open slots."`
}

// BookingFlags are shared by book and now.
type BookingFlags struct {
	Patient   string `required:"" help:"Patient ID or name."`
	Procedure string `help:"Procedure (Filling, Cleaning, Extraction, Consultation, Root Canal, Crown, Whitening, Braces or Custom)."`
	Custom    string `help:"Custom procedure name. Implies --procedure Custom."`
	Notes     string `help:"Appointment notes."`
	Force     bool   `help:"Book even outside working hours or off the slot grid."`
}

type ApptBookCmd struct {
	Date string `required:"" help:"Date (YYYY-MM-DD, today or tomorrow)."`
	Time string `required:"" help:"Slot start (HH:MM)."`
	BookingFlags
}

func (c *ApptBookCmd) Run(ctx *cli.Context) error {
	day, err := utils.ResolveDate(c.Date, ctx.Now())
	if err != nil {
		return err
	}
	label, err := utils.NormalizeTimeLabel(c.Time)
	if err != nil {
		return err
	}
	return c.book(ctx, models.NewSlotKey(day, label))
}

type ApptNowCmd struct {
	BookingFlags
}

func (c *ApptNowCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	now := ctx.Now()
	label := schedule.NextSlotTime(now, st.Settings.SlotDuration)
	return c.book(ctx, models.NewSlotKey(now, label))
}

// ParseProcedure matches name against the preset procedures ignoring case.
func ParseProcedure(name, custom string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if strings.TrimSpace(custom) != "" {
			return constants.ProcedureCustom, nil
		}
		return "", fmt.Errorf("%w: --procedure or --custom is required", models.ErrInvalidAppointment)
	}
	if strings.EqualFold(name, constants.ProcedureCustom) {
		return constants.ProcedureCustom, nil
	}
	for _, p := range constants.Procedures {
		if strings.EqualFold(p, name) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown procedure %q", models.ErrInvalidAppointment, name)
}

func (f BookingFlags) book(ctx *cli.Context, key models.SlotKey) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	patient, err := cli.ResolvePatient(st, f.Patient)
	if err != nil {
		return err
	}
	procedure, err := ParseProcedure(f.Procedure, f.Custom)
	if err != nil {
		return err
	}

	if !f.Force {
		if err := checkSlot(st.Settings, key, ctx); err != nil {
			return err
		}
	}

	appt := models.Appointment{
		PatientID: patient.ID,
		Procedure: procedure,
		Notes:     f.Notes,
	}
	if procedure == constants.ProcedureCustom {
		appt.CustomProcedureName = strings.TrimSpace(f.Custom)
	}

	previous, occupied := st.Appointment(key)
	if _, err := ctx.Session.Dispatch(state.BookAppointment{Key: key, Appointment: appt}); err != nil {
		return err
	}

	if occupied {
		cli.Warn("Replaced %s for %s", previous.ProcedureName(), reports.PatientName(st.Patients, previous.PatientID))
	}
	cli.Success("Booked %s for %s on %s at %s", appt.ProcedureName(), patient.Name, key.Date, key.Time)
	return nil
}

func checkSlot(settings models.Settings, key models.SlotKey, ctx *cli.Context) error {
	day, err := key.Day(ctx.Location)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidAppointment, err)
	}
	if !schedule.IsOnGrid(settings, key.Time) {
		return fmt.Errorf("%w: %s is not a %d minute slot (use --force to book anyway)", models.ErrInvalidAppointment, key.Time, settings.SlotDuration)
	}
	if !schedule.IsWorkingSlot(settings, day.Weekday(), key.Time) {
		return fmt.Errorf("%w: %s %s is outside working hours (use --force to book anyway)", models.ErrInvalidAppointment, day.Weekday(), key.Time)
	}
	return nil
}

type SlotFlags struct {
	Date string `required:"" help:"Date (YYYY-MM-DD or today)."`
	Time string `required:"" help:"Slot start (HH:MM)."`
}

func (f SlotFlags) key(ctx *cli.Context) (models.SlotKey, error) {
	day, err := utils.ResolveDate(f.Date, ctx.Now())
	if err != nil {
		return models.SlotKey{}, err
	}
	label, err := utils.NormalizeTimeLabel(f.Time)
	if err != nil {
		return models.SlotKey{}, err
	}
	return models.NewSlotKey(day, label), nil
}

type ApptCancelCmd struct {
	SlotFlags
}

func (c *ApptCancelCmd) Run(ctx *cli.Context) error {
	key, err := c.key(ctx)
	if err != nil {
		return err
	}
	st, err := ctx.State()
	if err != nil {
		return err
	}
	appt, ok := st.Appointment(key)
	if !ok {
		return fmt.Errorf("no appointment on %s at %s", key.Date, key.Time)
	}

	if _, err := ctx.Session.Dispatch(state.CancelAppointment{Key: key}); err != nil {
		return err
	}
	cli.Success("Cancelled %s for %s", appt.ProcedureName(), reports.PatientName(st.Patients, appt.PatientID))
	return nil
}

type ApptShowCmd struct {
	SlotFlags
}

func (c *ApptShowCmd) Run(ctx *cli.Context) error {
	key, err := c.key(ctx)
	if err != nil {
		return err
	}
	st, err := ctx.State()
	if err != nil {
		return err
	}
	appt, ok := st.Appointment(key)
	if !ok {
		return fmt.Errorf("no appointment on %s at %s", key.Date, key.Time)
	}

	cli.Header("%s at %s", key.Date, key.Time)
	fmt.Printf("  Patient:   %s\n", reports.PatientName(st.Patients, appt.PatientID))
	fmt.Printf("  Procedure: %s\n", appt.ProcedureName())
	if appt.Notes != "" {
		fmt.Printf("  Notes:     %s\n", appt.Notes)
	}
	cli.Muted("  ID: %s", appt.ID)
	return nil
}

type ApptFreeCmd struct {
	Date string `help:"List the open slots of this day instead of searching ahead."`
	Days int    `default:"28" help:"How many days ahead to search."`
}

func (c *ApptFreeCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	sched := scheduler.New(st.Settings)

	if c.Date == "" {
		key, ok := sched.NextFree(st.Appointments, ctx.Now(), c.Days)
		if !ok {
			fmt.Printf("No free slot in the next %d days.\n", c.Days)
			return nil
		}
		cli.Success("Next free slot: %s at %s", key.Date, key.Time)
		return nil
	}

	day, err := utils.ResolveDate(c.Date, ctx.Now())
	if err != nil {
		return err
	}
	blocks := sched.FreeBlocks(st.Appointments, day)
	if len(blocks) == 0 {
		fmt.Printf("No free slots on %s.\n", day.Format(constants.DisplayHeaderFormat))
		return nil
	}
	cli.Header("Free on %s:", day.Format(constants.DisplayHeaderFormat))
	for _, b := range blocks {
		if b.Slots == 1 {
			fmt.Printf("  %s\n", b.Start)
			continue
		}
		fmt.Printf("  %s - %s (%d slots)\n", b.Start, b.End, b.Slots)
	}
	return nil
}
