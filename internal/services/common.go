// Package services provides the orchestration layer: input validation,
// invariant enforcement and composition of the pure domain modules over
// the repository ports.
package services

import (
	"time"

	"github.com/google/uuid"

	"budgeteer/internal/core"
)

// Clock supplies the current instant. Tests inject a fixed one.
type Clock func() time.Time

func newID() string {
	return uuid.NewString()
}

func timestamp(now Clock) core.Timestamp {
	return core.Timestamp(now().UTC().Format(time.RFC3339))
}

func today(now Clock) core.DateString {
	return core.FormatDate(now())
}
