package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/schedule"
	"github.com/julianstephens/dentaplan/internal/state"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidSettings        ConflictType = "invalid_settings"
	ConflictOrphanedAppointment    ConflictType = "orphaned_appointment"
	ConflictOffGridAppointment     ConflictType = "off_grid_appointment"
	ConflictOutsideWorkingHours    ConflictType = "outside_working_hours"
	ConflictInvalidSlotKey         ConflictType = "invalid_slot_key"
	ConflictUnknownProcedure       ConflictType = "unknown_procedure"
	ConflictDuplicateAppointmentID ConflictType = "duplicate_appointment_id"
)

// Conflict represents a detected problem in the stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string           // YYYY-MM-DD, when the conflict belongs to a day
	Keys        []models.SlotKey // slots involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of type t.
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Type, c.Description)
	}
	return b.String()
}

// Validator checks a scheduling state for inconsistencies that the
// transitions allow but a clinic would want to know about.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateState runs every check against st. Conflicts are ordered by slot.
func (v *Validator) ValidateState(st state.State) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if err := st.Settings.Validate(); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSettings,
			Description: err.Error(),
		})
	}

	keys := make([]models.SlotKey, 0, len(st.Appointments))
	for k := range st.Appointments {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Compare(keys[j]) < 0 })

	grid := make(map[string]bool)
	for _, label := range schedule.GenerateTimeSlots(st.Settings) {
		grid[label] = true
	}

	idSlots := make(map[string][]models.SlotKey)
	for _, k := range keys {
		a := st.Appointments[k]
		if a.ID != "" {
			idSlots[a.ID] = append(idSlots[a.ID], k)
		}

		day, err := k.Day(nil)
		if err != nil || k.Hour() < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidSlotKey,
				Description: fmt.Sprintf("Appointment %s has an invalid slot key %q", a.ID, k.String()),
				Keys:        []models.SlotKey{k},
			})
			continue
		}

		if _, ok := st.Patient(a.PatientID); !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanedAppointment,
				Description: fmt.Sprintf("%s %s: %s has no patient", k.Date, k.Time, a.ProcedureName()),
				Date:        k.Date,
				Keys:        []models.SlotKey{k},
			})
		}

		if !constants.IsKnownProcedure(a.Procedure) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownProcedure,
				Description: fmt.Sprintf("%s %s: unknown procedure %q", k.Date, k.Time, a.Procedure),
				Date:        k.Date,
				Keys:        []models.SlotKey{k},
			})
		}

		if !grid[k.Time] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOffGridAppointment,
				Description: fmt.Sprintf("%s %s is not on the %d minute slot grid", k.Date, k.Time, st.Settings.SlotDuration),
				Date:        k.Date,
				Keys:        []models.SlotKey{k},
			})
		}

		if !schedule.IsWorkingSlot(st.Settings, day.Weekday(), k.Time) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOutsideWorkingHours,
				Description: fmt.Sprintf("%s %s falls outside %s working hours", k.Date, k.Time, day.Weekday()),
				Date:        k.Date,
				Keys:        []models.SlotKey{k},
			})
		}
	}

	ids := make([]string, 0, len(idSlots))
	for id := range idSlots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		slots := idSlots[id]
		if len(slots) < 2 {
			continue
		}
		labels := make([]string, len(slots))
		for i, k := range slots {
			labels[i] = k.String()
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateAppointmentID,
			Description: fmt.Sprintf("Appointment ID %s is used by %d slots: %s", id, len(slots), strings.Join(labels, ", ")),
			Keys:        slots,
		})
	}

	return result
}
