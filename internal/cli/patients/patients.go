package patients

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"

	"github.com/julianstephens/dentaplan/internal/cli"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/schedule"
	"github.com/julianstephens/dentaplan/internal/state"
	patientlist "github.com/julianstephens/dentaplan/internal/tui/components/patients"
)

type PatientCmd struct {
	Add    PatientAddCmd    `cmd:"" help:"Register a new patient."`
	Edit   PatientEditCmd   `cmd:"" help:"Edit a patient."`
	Delete PatientDeleteCmd `cmd:"" help:"Delete a patient."`
	List   PatientListCmd   `cmd:"" help:"List patients."`
	Show   PatientShowCmd   `cmd:"" help:"Show a patient and their appointments."`
}

type PatientAddCmd struct {
	Name           string `help:"Full name. Omit to use the interactive form."`
	Phone          string `help:"Phone number."`
	Email          string `help:"Email address."`
	DOB            string `name:"dob" help:"Date of birth (YYYY-MM-DD)."`
	Address        string `help:"Postal address."`
	MedicalHistory string `help:"Medical history notes."`
}

func (c *PatientAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.State(); err != nil {
		return err
	}

	p := models.Patient{
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		DateOfBirth:    c.DOB,
		Address:        c.Address,
		MedicalHistory: c.MedicalHistory,
	}
	if p.Name == "" {
		if err := patientlist.Form(&p).Run(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}
	}
	p.ID = uuid.NewString()

	if _, err := ctx.Session.Dispatch(state.SavePatient{Patient: p}); err != nil {
		return err
	}
	cli.Success("Added patient %s (%s)", p.Name, p.ID)
	return nil
}

type PatientEditCmd struct {
	Patient        string  `arg:"" help:"Patient ID or name."`
	Name           *string `help:"New name."`
	Phone          *string `help:"New phone number."`
	Email          *string `help:"New email address."`
	DOB            *string `name:"dob" help:"New date of birth."`
	Address        *string `help:"New address."`
	MedicalHistory *string `help:"New medical history."`
}

func (c *PatientEditCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	p, err := cli.ResolvePatient(st, c.Patient)
	if err != nil {
		return err
	}

	fields := []struct {
		flag *string
		dst  *string
	}{
		{c.Name, &p.Name},
		{c.Phone, &p.Phone},
		{c.Email, &p.Email},
		{c.DOB, &p.DateOfBirth},
		{c.Address, &p.Address},
		{c.MedicalHistory, &p.MedicalHistory},
	}
	updated := false
	for _, f := range fields {
		if f.flag != nil {
			*f.dst = *f.flag
			updated = true
		}
	}
	if !updated {
		if err := patientlist.Form(&p).Run(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}
	}

	if _, err := ctx.Session.Dispatch(state.SavePatient{Patient: p}); err != nil {
		return err
	}
	cli.Success("Updated patient %s", p.Name)
	return nil
}

type PatientDeleteCmd struct {
	Patient string `arg:"" help:"Patient ID or name."`
	Yes     bool   `short:"y" help:"Skip confirmation."`
}

func (c *PatientDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	p, err := cli.ResolvePatient(st, c.Patient)
	if err != nil {
		return err
	}
	booked := len(st.AppointmentsFor(p.ID))

	if !c.Yes {
		confirmed := false
		desc := "This cannot be undone."
		if booked > 0 {
			desc = fmt.Sprintf("Their %d appointment(s) will stay on the calendar without a patient.", booked)
		}
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s?", p.Name)).
			Description(desc).
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if _, err := ctx.Session.Dispatch(state.DeletePatient{ID: p.ID}); err != nil {
		return err
	}
	cli.Success("Deleted patient %s", p.Name)
	if booked > 0 {
		cli.Warn("%d appointment(s) now have no patient", booked)
	}
	return nil
}

type PatientListCmd struct {
	Search string `short:"s" help:"Filter by name."`
}

func (c *PatientListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}

	list := patientlist.Filter(st.Patients, c.Search)
	if len(list) == 0 {
		fmt.Println("No patients found.")
		return nil
	}

	t := table.New().Headers("ID", "NAME", "PHONE", "EMAIL", "APPOINTMENTS")
	for _, p := range list {
		t.Row(p.ID, p.Name, p.Phone, p.Email, strconv.Itoa(len(st.AppointmentsFor(p.ID))))
	}
	fmt.Println(t.Render())
	return nil
}

type PatientShowCmd struct {
	Patient string `arg:"" help:"Patient ID or name."`
}

func (c *PatientShowCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	p, err := cli.ResolvePatient(st, c.Patient)
	if err != nil {
		return err
	}

	cli.Header("%s", p.Name)
	fmt.Printf("  ID:              %s\n", p.ID)
	fmt.Printf("  Phone:           %s\n", p.Phone)
	fmt.Printf("  Email:           %s\n", p.Email)
	fmt.Printf("  Date of Birth:   %s\n", p.DateOfBirth)
	fmt.Printf("  Address:         %s\n", p.Address)
	fmt.Printf("  Medical History: %s\n", p.MedicalHistory)

	keys := st.AppointmentsFor(p.ID)
	sort.Slice(keys, func(i, j int) bool { return keys[i].Compare(keys[j]) < 0 })
	fmt.Println()
	if len(keys) == 0 {
		cli.Muted("No appointments booked.")
		return nil
	}

	today := schedule.StartOfDay(ctx.Now())
	cli.Header("Appointments:")
	for _, k := range keys {
		a := st.Appointments[k]
		line := fmt.Sprintf("  %s %s  %s", k.Date, k.Time, a.ProcedureName())
		if day, err := k.Day(ctx.Location); err == nil && day.Before(today) {
			cli.Muted("%s", line)
			continue
		}
		fmt.Println(line)
	}
	return nil
}
