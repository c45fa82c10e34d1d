package chart

import "time"

// ChartSize is the number of positions in an adult dental chart.
const ChartSize = 32

// Status describes the overall state of a tooth position.
type Status string

const (
	StatusIntact  Status = "intact"
	StatusMissing Status = "missing"
	StatusImplant Status = "implant"
)

// PreviousCare is one treatment event recorded on a tooth. PositionX and
// PositionY are percentage coordinates marking where on the tooth image the
// treatment is displayed.
type PreviousCare struct {
	Treatment   string    `json:"treatment"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	PositionX   float64   `json:"positionX"`
	PositionY   float64   `json:"positionY"`
}

// Tooth is one of the 32 fixed chart positions.
type Tooth struct {
	ID            int            `json:"id"`
	Status        Status         `json:"status"`
	PreviousCares []PreviousCare `json:"previousCares,omitempty"`
}

// NewPreviousCare returns a treatment event with the display marker centered.
func NewPreviousCare(treatment, description string, date time.Time) PreviousCare {
	return PreviousCare{
		Treatment:   treatment,
		Description: description,
		Date:        date,
		PositionX:   50,
		PositionY:   50,
	}
}

// IsDefault reports whether the tooth carries no information worth
// persisting: intact status and no treatment history.
func (t Tooth) IsDefault() bool {
	return (t.Status == "" || t.Status == StatusIntact) && len(t.PreviousCares) == 0
}

// NewChart returns a full 32-position chart of intact teeth.
func NewChart() []Tooth {
	teeth := make([]Tooth, ChartSize)
	for i := range teeth {
		teeth[i] = Tooth{ID: i + 1, Status: StatusIntact}
	}
	return teeth
}

// Sparse strips default positions from a chart, returning only the teeth
// that need to be persisted.
func Sparse(teeth []Tooth) []Tooth {
	var kept []Tooth
	for _, t := range teeth {
		if !t.IsDefault() {
			kept = append(kept, t)
		}
	}
	return kept
}

// Expand rebuilds the full 32-position chart from a sparse persisted form,
// synthesizing intact teeth for every position the store left implicit.
func Expand(sparse []Tooth) []Tooth {
	teeth := NewChart()
	for _, t := range sparse {
		if t.ID < 1 || t.ID > ChartSize {
			continue
		}
		if t.Status == "" {
			t.Status = StatusIntact
		}
		teeth[t.ID-1] = t
	}
	return teeth
}
