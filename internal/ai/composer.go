package ai

import (
	"context"

	"github.com/akarpov/jobtrack/internal/digest"
)

// Composer turns a generated digest into a ready-to-send email draft.
type Composer interface {
	Compose(ctx context.Context, dateKey string, entries []digest.Entry) (string, error)
}
