// Package settings shows and edits the clinic schedule.
package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/schedule"
)

type EditSettingsMsg struct{}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Render lists the slot length and each weekday's hours.
func Render(s models.Settings) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Current Settings:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Configured:     %v\n", s.IsConfigured)
	fmt.Fprintf(&b, "  Slot Duration:  %d min\n\n", s.SlotDuration)
	b.WriteString(headerStyle.Render("Working Hours:"))
	b.WriteString("\n")
	for d := time.Sunday; d <= time.Saturday; d++ {
		ds, _ := s.Day(d)
		if !ds.IsWorkingDay {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %-10s closed", d)))
			b.WriteString("\n")
			continue
		}
		hours := fmt.Sprintf("%s - %s", schedule.FormatMinutes(ds.StartTime*60), schedule.FormatMinutes(ds.EndTime*60))
		fmt.Fprintf(&b, "  %-10s %s\n", d, openStyle.Render(hours))
	}
	return b.String()
}

// DayValues is one weekday's row of the setup form. Hours are strings so
// huh selects can bind to them directly.
type DayValues struct {
	Working bool
	Start   string
	End     string
}

// Values backs the setup form, one DayValues per weekday indexed by
// time.Weekday.
type Values struct {
	Days         [7]DayValues
	SlotDuration string
}

// DefaultValues seeds the form from s. Weekdays missing from s fall back to
// the default schedule.
func DefaultValues(s models.Settings) Values {
	defaults := models.DefaultSettings()
	v := Values{SlotDuration: strconv.Itoa(s.SlotDuration)}
	for d := time.Sunday; d <= time.Saturday; d++ {
		ds, ok := s.Day(d)
		if !ok {
			ds = defaults.WorkingHours[d]
		}
		v.Days[d] = DayValues{
			Working: ds.IsWorkingDay,
			Start:   strconv.Itoa(ds.StartTime),
			End:     strconv.Itoa(ds.EndTime),
		}
	}
	return v
}

// Working lists the weekdays marked open.
func (v Values) Working() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if v.Days[d].Working {
			days = append(days, d)
		}
	}
	return days
}

// SetWorking opens exactly the given weekdays and closes the rest.
func (v *Values) SetWorking(days []time.Weekday) {
	for d := range v.Days {
		v.Days[d].Working = false
	}
	for _, d := range days {
		v.Days[d].Working = true
	}
}

// SetHours applies start and end to every open weekday. Nil leaves that
// bound untouched.
func (v *Values) SetHours(start, end *int) {
	for d := range v.Days {
		if !v.Days[d].Working {
			continue
		}
		if start != nil {
			v.Days[d].Start = strconv.Itoa(*start)
		}
		if end != nil {
			v.Days[d].End = strconv.Itoa(*end)
		}
	}
}

// Settings converts the form back into a schedule. Closed days keep their
// hours so reopening them restores the previous window.
func (v Values) Settings() (models.Settings, error) {
	slot, err := strconv.Atoi(v.SlotDuration)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: invalid slot duration %q", models.ErrInvalidSettings, v.SlotDuration)
	}

	s := models.DefaultSettings()
	s.SlotDuration = slot
	for d := time.Sunday; d <= time.Saturday; d++ {
		dv := v.Days[d]
		start, err := strconv.Atoi(dv.Start)
		if err != nil {
			return models.Settings{}, fmt.Errorf("%w: invalid %s start hour %q", models.ErrInvalidSettings, d, dv.Start)
		}
		end, err := strconv.Atoi(dv.End)
		if err != nil {
			return models.Settings{}, fmt.Errorf("%w: invalid %s end hour %q", models.ErrInvalidSettings, d, dv.End)
		}
		s.WorkingHours[d] = models.DaySetting{IsWorkingDay: dv.Working, StartTime: start, EndTime: end}
	}
	if !s.HasWorkingDay() {
		return models.Settings{}, fmt.Errorf("%w: at least one working day is required", models.ErrInvalidSettings)
	}
	return s, nil
}

func validateHours(dv *DayValues) func(string) error {
	return func(string) error {
		if !dv.Working {
			return nil
		}
		start, _ := strconv.Atoi(dv.Start)
		end, _ := strconv.Atoi(dv.End)
		if start >= end {
			return fmt.Errorf("closing time must be after opening time")
		}
		return nil
	}
}

// Form builds the onboarding form bound to v: the slot length first, then
// one group per weekday.
func Form(v *Values) *huh.Form {
	hourOptions := make([]huh.Option[string], 0, 25)
	for h := 0; h <= 24; h++ {
		hourOptions = append(hourOptions, huh.NewOption(schedule.FormatMinutes(h*60), strconv.Itoa(h)))
	}
	slotOptions := make([]huh.Option[string], 0, len(constants.SlotDurationOptions))
	for _, m := range constants.SlotDurationOptions {
		slotOptions = append(slotOptions, huh.NewOption(fmt.Sprintf("%d minutes", m), strconv.Itoa(m)))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to DentaPlan").
				Description("Set the clinic's working days and hours."),
			huh.NewSelect[string]().
				Title("Slot duration").
				Options(slotOptions...).
				Value(&v.SlotDuration),
		),
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		dv := &v.Days[d]
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title(d.String()).
				Affirmative("Open").
				Negative("Closed").
				Value(&dv.Working),
			huh.NewSelect[string]().
				Title("Opening time").
				Options(hourOptions[:24]...).
				Value(&dv.Start),
			huh.NewSelect[string]().
				Title("Closing time").
				Options(hourOptions[1:]...).
				Value(&dv.End).
				Validate(validateHours(dv)),
		))
	}
	return huh.NewForm(groups...)
}

type Model struct {
	settings models.Settings
	edit     key.Binding
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		width:  width,
		height: height,
	}
}

func (m *Model) SetSettings(s models.Settings) {
	m.settings = s
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.edit) {
		return m, func() tea.Msg { return EditSettingsMsg{} }
	}
	return m, nil
}

func (m Model) View() string {
	out := Render(m.settings)
	if !m.settings.IsConfigured {
		out += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("Clinic not configured yet.")
	}
	out += "\n" + mutedStyle.Render("e: edit schedule")
	return lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(m.height).Render(out)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
