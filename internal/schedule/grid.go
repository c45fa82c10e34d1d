// Package schedule builds the weekly calendar grid the scheduling screen
// renders. The grid is a fixed 24x7 matrix: rows keyed by zero-padded hour
// "00".."23", columns keyed by date "2006-01-02" running Monday through
// Sunday.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/dentalpoint/clinic-service/internal/appointment"
)

const (
	hoursPerDay = 24
	daysPerWeek = 7

	dateLayout = "2006-01-02"
)

// Cell holds the appointments booked in one hour of one day, ordered by
// start time.
type Cell []Entry

// Entry pairs an appointment with its storage key so the grid stays
// addressable.
type Entry struct {
	Key         string                  `json:"key"`
	Appointment appointment.Appointment `json:"appointment"`
}

// Week is the full grid for one Monday-anchored week.
type Week struct {
	// Days lists the seven column dates in order, Monday first.
	Days []string `json:"days"`
	// Grid maps hour "00".."23" to date to cell. Every row and column
	// exists even when empty.
	Grid map[string]map[string]Cell `json:"grid"`
}

// WeekStart returns the Monday on or before the anchor date, at midnight in
// the anchor's location.
func WeekStart(anchor time.Time) time.Time {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	// time.Weekday puts Sunday at 0; shift so Monday is the week start.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// NewWeek builds an empty grid for the week containing anchor.
func NewWeek(anchor time.Time) *Week {
	start := WeekStart(anchor)

	days := make([]string, daysPerWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i).Format(dateLayout)
	}

	grid := make(map[string]map[string]Cell, hoursPerDay)
	for hour := 0; hour < hoursPerDay; hour++ {
		row := make(map[string]Cell, daysPerWeek)
		for _, day := range days {
			row[day] = Cell{}
		}
		grid[fmt.Sprintf("%02d", hour)] = row
	}

	return &Week{Days: days, Grid: grid}
}

// Populate places appointments into the grid by their storage keys. Keys
// falling outside the week's date range are ignored, as are keys too short
// to carry a date and hour. Cells stay sorted by start time.
func (w *Week) Populate(appts appointment.Collection) {
	for key, appt := range appts {
		day := appointment.KeyDate(key)
		hour := appointment.KeyHour(key)
		if day == "" || hour == "" {
			continue
		}
		row, ok := w.Grid[hour]
		if !ok {
			continue
		}
		cell, ok := row[day]
		if !ok {
			continue
		}
		row[day] = append(cell, Entry{Key: key, Appointment: appt})
	}

	for _, row := range w.Grid {
		for day, cell := range row {
			if len(cell) < 2 {
				continue
			}
			// The insert order above follows map iteration, so ties
			// fall back to the key to keep cell order deterministic.
			sort.Slice(cell, func(i, j int) bool {
				if !cell[i].Appointment.Date.Equal(cell[j].Appointment.Date) {
					return cell[i].Appointment.Date.Before(cell[j].Appointment.Date)
				}
				return cell[i].Key < cell[j].Key
			})
			row[day] = cell
		}
	}
}

// BuildWeek is the common path: an empty grid for anchor's week, populated.
func BuildWeek(anchor time.Time, appts appointment.Collection) *Week {
	w := NewWeek(anchor)
	w.Populate(appts)
	return w
}

// Shift returns the anchor moved by delta weeks. The scheduling screen pages
// backward and forward with delta -1 and +1.
func Shift(anchor time.Time, delta int) time.Time {
	return anchor.AddDate(0, 0, delta*daysPerWeek)
}
