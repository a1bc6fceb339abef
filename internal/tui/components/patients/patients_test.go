package patients

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dentaplan/internal/models"
)

func TestFilter(t *testing.T) {
	patients := map[string]models.Patient{
		"1": {ID: "1", Name: "Zoe Adams"},
		"2": {ID: "2", Name: "Adam Brown"},
		"3": {ID: "3", Name: "Carla Diaz"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"2", "3", "1"}},
		{"adam", []string{"2", "1"}},
		{"DIAZ", []string{"3"}},
		{"nobody", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(patients, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q) returned %d patients, want %d", tt.query, len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("Filter(%q)[%d] = %s, want %s", tt.query, i, got[i].ID, id)
				}
			}
		})
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelMessages(t *testing.T) {
	m := New(80, 20)
	m.SetPatients(map[string]models.Patient{
		"b": {ID: "b", Name: "Bob"},
		"a": {ID: "a", Name: "Alice"},
	}, map[string]int{"a": 2})

	p, ok := m.Selected()
	if !ok || p.ID != "a" {
		t.Fatalf("selected = %+v, want Alice", p)
	}

	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"a", AddPatientMsg{}},
		{"e", EditPatientMsg{Patient: models.Patient{ID: "a", Name: "Alice"}}},
		{"d", DeletePatientMsg{ID: "a"}},
		{"b", BookPatientMsg{ID: "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := m.Update(runes(tt.key))
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("msg = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestModelEmpty(t *testing.T) {
	m := New(80, 20)
	if _, cmd := m.Update(runes("d")); cmd != nil {
		if _, ok := cmd().(DeletePatientMsg); ok {
			t.Error("delete should not fire with no patients")
		}
	}
	if got := m.View(); got != "\n  No patients yet.\n  Press 'a' to add one." {
		t.Errorf("empty view = %q", got)
	}
}

func TestItemDescription(t *testing.T) {
	i := Item{Patient: models.Patient{Name: "Alice", Phone: "555"}, Appointments: 3}
	if got := i.Description(); got != "555 | 3 appointment(s)" {
		t.Errorf("Description() = %q", got)
	}
}
