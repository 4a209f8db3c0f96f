package provider

import (
	"context"

	"github.com/sevenofnine/edupage-calendar-bridge/internal/domain"
)

// TimetableProvider produces the weekly lesson events served as a calendar
// feed. Each call fetches fresh data; implementations hold no per-request
// state and are safe for concurrent use.
type TimetableProvider interface {
	Name() string
	Events(ctx context.Context) ([]domain.LessonEvent, error)
}
