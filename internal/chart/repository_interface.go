package chart

import "context"

// RepositoryInterface defines the contract for chart data access
type RepositoryInterface interface {
	GetChart(ctx context.Context, patientKey string) ([]Tooth, error)
	GetTooth(ctx context.Context, patientKey string, position int) (*Tooth, error)
	SaveChart(ctx context.Context, patientKey string, teeth []Tooth) error
	SaveTooth(ctx context.Context, patientKey string, tooth Tooth) error
	SavePreviousCare(ctx context.Context, patientKey string, position, careIndex int, care PreviousCare) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
