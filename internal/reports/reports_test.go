package reports

import (
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/dentaplan/internal/models"
)

func key(date, tm string) models.SlotKey {
	return models.SlotKey{Date: date, Time: tm}
}

func appt(id, patient, procedure string) models.Appointment {
	return models.Appointment{ID: id, PatientID: patient, Procedure: procedure}
}

// Wednesday, June 4, 2025.
var now = time.Date(2025, 6, 4, 10, 15, 0, 0, time.UTC)

func fixture() map[models.SlotKey]models.Appointment {
	return map[models.SlotKey]models.Appointment{
		key("2025-06-04", "11:00"): appt("a1", "p1", "Cleaning"),
		key("2025-06-04", "09:00"): appt("a2", "p2", "Filling"),
		key("2025-06-02", "09:00"): appt("a3", "p1", "Cleaning"),
		key("2025-06-10", "14:00"): appt("a4", "p2", "Crown"),
		key("2025-05-30", "10:00"): appt("a5", "p1", "Filling"),
		{Date: "2025-06-05", Time: "09:30"}: {
			ID: "a6", PatientID: "p3", Procedure: "Custom", CustomProcedureName: "Implant",
		},
	}
}

func TestTodaysAppointments(t *testing.T) {
	got := TodaysAppointments(fixture(), now)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Key.Time != "09:00" || got[1].Key.Time != "11:00" {
		t.Errorf("not sorted by time: %v, %v", got[0].Key, got[1].Key)
	}
}

func TestNextAppointment(t *testing.T) {
	e, ok := NextAppointment(fixture(), now)
	if !ok || e.Appointment.ID != "a1" {
		t.Errorf("NextAppointment() = %+v, %v", e, ok)
	}

	late := time.Date(2025, 6, 4, 18, 0, 0, 0, time.UTC)
	if _, ok := NextAppointment(fixture(), late); ok {
		t.Error("expected no further appointments today")
	}
}

func TestProcedureSummary(t *testing.T) {
	got := ProcedureSummary(fixture())
	want := []Count{
		{"Cleaning", 2},
		{"Filling", 2},
		{"Crown", 1},
		{"Implant", 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ProcedureSummary() = %v, want %v", got, want)
	}
}

func TestProcedureSummaryCustomWithoutName(t *testing.T) {
	appts := map[models.SlotKey]models.Appointment{
		key("2025-06-02", "09:00"): appt("a1", "p1", "Custom"),
	}
	got := ProcedureSummary(appts)
	if len(got) != 1 || got[0].Name != "Custom" {
		t.Errorf("ProcedureSummary() = %v", got)
	}
}

func TestFilterByDateRange(t *testing.T) {
	appts := fixture()
	appts[models.SlotKey{Date: "garbage", Time: "09:00"}] = appt("bad", "p1", "Cleaning")

	tests := []struct {
		name string
		r    Range
		want int
	}{
		// Week of June 1 - 7.
		{"week", RangeWeek, 4},
		{"month", RangeMonth, 5},
		{"all", RangeAll, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByDateRange(appts, tt.r, now)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d: %v", len(got), tt.want, got)
			}
		})
	}
}

func TestFilterAllReturnsCopy(t *testing.T) {
	appts := fixture()
	got := FilterByDateRange(appts, RangeAll, now)
	delete(got, key("2025-06-02", "09:00"))
	if len(appts) != 6 {
		t.Error("filtering mutated the input map")
	}
}

func TestAppointmentsByDayOfWeek(t *testing.T) {
	got := AppointmentsByDayOfWeek(fixture())
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}
	want := map[string]int{"Sun": 0, "Mon": 1, "Tue": 1, "Wed": 2, "Thu": 1, "Fri": 1, "Sat": 0}
	for i, c := range got {
		if c.Name != []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}[i] {
			t.Errorf("bucket %d named %q", i, c.Name)
		}
		if c.Count != want[c.Name] {
			t.Errorf("%s = %d, want %d", c.Name, c.Count, want[c.Name])
		}
	}

	empty := AppointmentsByDayOfWeek(nil)
	for _, c := range empty {
		if c.Count != 0 {
			t.Errorf("empty input produced %v", c)
		}
	}
}

func TestBusiestDay(t *testing.T) {
	if got := BusiestDay(fixture()); got != (Count{"Wed", 2}) {
		t.Errorf("BusiestDay() = %v", got)
	}
	if got := BusiestDay(nil); got != Empty {
		t.Errorf("BusiestDay(nil) = %v, want %v", got, Empty)
	}

	tied := map[models.SlotKey]models.Appointment{
		key("2025-06-06", "09:00"): appt("a1", "p1", "Cleaning"), // Fri
		key("2025-06-03", "09:00"): appt("a2", "p1", "Cleaning"), // Tue
	}
	if got := BusiestDay(tied); got.Name != "Tue" {
		t.Errorf("tie should keep the earliest weekday, got %v", got)
	}
}

func TestTopProcedure(t *testing.T) {
	if got := TopProcedure(fixture()); got != (Count{"Cleaning", 2}) {
		t.Errorf("TopProcedure() = %v", got)
	}
	if got := TopProcedure(map[models.SlotKey]models.Appointment{}); got != (Count{"N/A", 0}) {
		t.Errorf("TopProcedure(empty) = %v", got)
	}
}

func TestWeekAgenda(t *testing.T) {
	settings := models.DefaultSettings()
	appts := fixture()
	appts[key("2025-06-07", "10:00")] = appt("sat", "p1", "Cleaning")

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC)
	}

	got := WeekAgenda(settings, appts, days)
	var ids []string
	for _, e := range got {
		ids = append(ids, e.Appointment.ID)
	}
	want := []string{"a3", "a2", "a1", "a6"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("WeekAgenda() ids = %v, want %v", ids, want)
	}
}

func TestPatientNameAndOrphans(t *testing.T) {
	patients := map[string]models.Patient{
		"p1": {ID: "p1", Name: "Jane Doe"},
		"p2": {ID: "p2", Name: "John Roe"},
	}

	if got := PatientName(patients, "p1"); got != "Jane Doe" {
		t.Errorf("PatientName() = %q", got)
	}
	if got := PatientName(patients, ""); got != "Unknown Patient" {
		t.Errorf("PatientName(empty) = %q", got)
	}

	orphans := Orphaned(fixture(), patients)
	if len(orphans) != 1 || orphans[0] != key("2025-06-05", "09:30") {
		t.Errorf("Orphaned() = %v", orphans)
	}
}

func TestCountByDay(t *testing.T) {
	got := CountByDay(fixture())
	if got["2025-06-04"] != 2 || got["2025-06-10"] != 1 {
		t.Errorf("CountByDay() = %v", got)
	}
}

func TestSummary(t *testing.T) {
	patients := map[string]models.Patient{"p1": {ID: "p1", Name: "Jane"}}
	r := Summary(fixture(), patients, RangeWeek, now)

	if r.TotalAppointments != 4 {
		t.Errorf("TotalAppointments = %d, want 4", r.TotalAppointments)
	}
	if r.TotalPatients != 1 {
		t.Errorf("TotalPatients = %d, want 1", r.TotalPatients)
	}
	if r.BusiestDay.Name != "Wed" {
		t.Errorf("BusiestDay = %v", r.BusiestDay)
	}
	if r.TopProcedure.Name != "Cleaning" {
		t.Errorf("TopProcedure = %v", r.TopProcedure)
	}
}

func TestParseRange(t *testing.T) {
	if r, err := ParseRange("Month"); err != nil || r != RangeMonth {
		t.Errorf("ParseRange() = %q, %v", r, err)
	}
	if _, err := ParseRange("year"); err == nil {
		t.Error("expected error")
	}
}

func TestSearchByPatient(t *testing.T) {
	patients := map[string]models.Patient{
		"p1": {ID: "p1", Name: "Jane Doe"},
		"p2": {ID: "p2", Name: "John Roe"},
	}
	appts := fixture()
	appts[key("2025-06-06", "09:00")] = appt("a7", "", "Crown")

	tests := []struct {
		query string
		want  int
	}{
		{"", 7},
		{"jane", 3},
		{"ROE", 2},
		{"o", 5},
		{"nobody", 0},
	}
	for _, tt := range tests {
		if got := SearchByPatient(appts, patients, tt.query); len(got) != tt.want {
			t.Errorf("SearchByPatient(%q) = %d appointments, want %d", tt.query, len(got), tt.want)
		}
	}
}
