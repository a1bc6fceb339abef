package patients

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dentaplan/internal/models"
)

type AddPatientMsg struct{}

type EditPatientMsg struct {
	Patient models.Patient
}

type DeletePatientMsg struct {
	ID string
}

// BookPatientMsg asks for a booking form preset to the patient.
type BookPatientMsg struct {
	ID string
}

type Item struct {
	Patient      models.Patient
	Appointments int
}

func (i Item) Title() string { return i.Patient.Name }
func (i Item) Description() string {
	desc := fmt.Sprintf("%d appointment(s)", i.Appointments)
	if i.Patient.Phone != "" {
		desc = i.Patient.Phone + " | " + desc
	}
	return desc
}
func (i Item) FilterValue() string { return i.Patient.Name }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Book   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Book: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "book"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Patients"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Book}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

// SetPatients replaces the listed patients. counts maps patient ID to the
// number of booked appointments.
func (m *Model) SetPatients(patients map[string]models.Patient, counts map[string]int) {
	sorted := Filter(patients, "")
	items := make([]list.Item, len(sorted))
	for i, p := range sorted {
		items[i] = Item{Patient: p, Appointments: counts[p.ID]}
	}
	m.list.SetItems(items)
}

// Selected returns the highlighted patient.
func (m Model) Selected() (models.Patient, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Patient, ok
}

// Filtering reports whether the search prompt has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddPatientMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if p, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditPatientMsg{Patient: p} }
			}
		case key.Matches(msg, m.keys.Delete):
			if p, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeletePatientMsg{ID: p.ID} }
			}
		case key.Matches(msg, m.keys.Book):
			if p, ok := m.Selected(); ok {
				return m, func() tea.Msg { return BookPatientMsg{ID: p.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No patients yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filter returns the patients whose name matches query, sorted by name.
func Filter(patients map[string]models.Patient, query string) []models.Patient {
	out := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Form edits p in place.
func Form(p *models.Patient) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&p.Name).
				Validate(func(s string) error {
					return models.Patient{Name: s}.Validate()
				}),
			huh.NewInput().Title("Phone").Value(&p.Phone),
			huh.NewInput().Title("Email").Value(&p.Email),
			huh.NewInput().Title("Date of birth").Placeholder("YYYY-MM-DD").Value(&p.DateOfBirth),
			huh.NewInput().Title("Address").Value(&p.Address),
			huh.NewText().Title("Medical history").Value(&p.MedicalHistory),
		),
	)
}
