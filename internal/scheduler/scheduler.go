// Package scheduler finds open appointment slots.
package scheduler

import (
	"time"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/schedule"
)

// DefaultHorizonDays bounds NextFree when the caller passes zero.
const DefaultHorizonDays = 28

// Block is a run of consecutive free slots. End is the label of the last
// free slot, not the time it finishes.
type Block struct {
	Start string
	End   string
	Slots int
}

type Scheduler struct {
	settings models.Settings
}

func New(settings models.Settings) *Scheduler {
	return &Scheduler{settings: settings}
}

// FreeSlots returns the working slots on day that have no appointment.
func (s *Scheduler) FreeSlots(appts map[models.SlotKey]models.Appointment, day time.Time) []string {
	var free []string
	for _, label := range schedule.GenerateTimeSlots(s.settings) {
		if !schedule.IsWorkingSlot(s.settings, day.Weekday(), label) {
			continue
		}
		if _, booked := appts[models.NewSlotKey(day, label)]; booked {
			continue
		}
		free = append(free, label)
	}
	return free
}

// FreeBlocks groups the free slots of day into contiguous runs. A booked or
// closed slot ends the current run.
func (s *Scheduler) FreeBlocks(appts map[models.SlotKey]models.Appointment, day time.Time) []Block {
	var blocks []Block
	var current *Block

	for _, label := range schedule.GenerateTimeSlots(s.settings) {
		_, booked := appts[models.NewSlotKey(day, label)]
		if booked || !schedule.IsWorkingSlot(s.settings, day.Weekday(), label) {
			current = nil
			continue
		}
		if current == nil {
			blocks = append(blocks, Block{Start: label})
			current = &blocks[len(blocks)-1]
		}
		current.End = label
		current.Slots++
	}
	return blocks
}

// NextFree returns the first free slot starting at or after from, looking
// at most horizonDays ahead.
func (s *Scheduler) NextFree(appts map[models.SlotKey]models.Appointment, from time.Time, horizonDays int) (models.SlotKey, bool) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	cutoff := from.Format(constants.TimeFormat)
	day := schedule.StartOfDay(from)

	for i := 0; i < horizonDays; i++ {
		for _, label := range s.FreeSlots(appts, day) {
			if i == 0 && label < cutoff {
				continue
			}
			return models.NewSlotKey(day, label), true
		}
		day = day.AddDate(0, 0, 1)
	}
	return models.SlotKey{}, false
}
