package ports

import (
	"context"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

type RequestLog interface {
	Record(ctx context.Context, o domain.Outcome) error
	Summary(ctx context.Context) (domain.OutcomeSummary, error)
}

// OutcomeRecorder accepts outcomes without blocking the caller.
type OutcomeRecorder interface {
	RecordOutcome(o domain.Outcome)
}
