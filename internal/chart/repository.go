package chart

import (
	"context"
	"fmt"

	"github.com/dentalpoint/clinic-service/internal/store"
)

// Repository persists dental charts under the owning patient's document.
type Repository struct {
	store store.Interface
}

func NewRepository(s store.Interface) *Repository {
	return &Repository{store: s}
}

// GetChart loads a patient's tooth chart, expanded to all 32 positions.
// A patient with no chart yet gets the default chart.
func (r *Repository) GetChart(ctx context.Context, patientKey string) ([]Tooth, error) {
	path := fmt.Sprintf("patients/%s/toothChart", patientKey)
	var sparse []Tooth
	if _, err := r.store.Get(ctx, path, &sparse); err != nil {
		return nil, fmt.Errorf("failed to get tooth chart: %w", err)
	}
	return Expand(sparse), nil
}

// GetTooth loads one tooth by its chart position (1..32). Positions the
// store left implicit come back as the default tooth.
func (r *Repository) GetTooth(ctx context.Context, patientKey string, position int) (*Tooth, error) {
	if position < 1 || position > ChartSize {
		return nil, fmt.Errorf("tooth position %d out of range", position)
	}
	teeth, err := r.GetChart(ctx, patientKey)
	if err != nil {
		return nil, err
	}
	tooth := teeth[position-1]
	return &tooth, nil
}

// SaveChart replaces a patient's whole tooth chart. Only non-default teeth
// are written; the rest of the 32 positions stay implicit.
func (r *Repository) SaveChart(ctx context.Context, patientKey string, teeth []Tooth) error {
	path := fmt.Sprintf("patients/%s/toothChart", patientKey)
	if err := r.store.Put(ctx, path, Sparse(teeth)); err != nil {
		return fmt.Errorf("failed to save tooth chart: %w", err)
	}
	return nil
}

// SaveTooth replaces one tooth in the persisted chart. The stored array is
// sparse, so the position cannot address an array slot directly; the whole
// chart is rewritten instead.
func (r *Repository) SaveTooth(ctx context.Context, patientKey string, tooth Tooth) error {
	if tooth.ID < 1 || tooth.ID > ChartSize {
		return fmt.Errorf("tooth position %d out of range", tooth.ID)
	}
	teeth, err := r.GetChart(ctx, patientKey)
	if err != nil {
		return err
	}
	teeth[tooth.ID-1] = tooth
	return r.SaveChart(ctx, patientKey, teeth)
}

// SavePreviousCare writes one treatment event on the tooth at the given
// chart position. A care index equal to the current list length appends.
func (r *Repository) SavePreviousCare(ctx context.Context, patientKey string, position, careIndex int, care PreviousCare) error {
	tooth, err := r.GetTooth(ctx, patientKey, position)
	if err != nil {
		return err
	}
	if careIndex < 0 || careIndex > len(tooth.PreviousCares) {
		return fmt.Errorf("treatment index %d out of range", careIndex)
	}
	if careIndex == len(tooth.PreviousCares) {
		tooth.PreviousCares = append(tooth.PreviousCares, care)
	} else {
		tooth.PreviousCares[careIndex] = care
	}
	return r.SaveTooth(ctx, patientKey, *tooth)
}
