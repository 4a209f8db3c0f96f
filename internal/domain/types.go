package domain

import "time"

// LessonEvent is one weekly-recurring lesson occurrence projected onto the
// current calendar week. Instances are built fresh per request and owned by
// the caller.
type LessonEvent struct {
	UID       string    `json:"uid"`
	CreatedAt time.Time `json:"created_at"`
	Summary   string    `json:"summary"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	// Recurrence is an RRULE body such as "FREQ=WEEKLY", no DTSTART prefix.
	Recurrence string `json:"recurrence"`
}
