package schedule

import (
	"context"
	"time"
)

type ServiceInterface interface {
	Week(ctx context.Context, anchor time.Time, delta int) (*Week, error)
}

var _ ServiceInterface = (*Service)(nil)
