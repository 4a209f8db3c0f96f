package timetable

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/sevenofnine/edupage-calendar-bridge/internal/domain"
	"github.com/sevenofnine/edupage-calendar-bridge/internal/dynjson"
)

// noRoom is the room label used when a card's classroom cannot be resolved.
const noRoom = "NONE"

// Project walks the cards table and emits one weekly event per card that
// belongs to classID, in card order. The week is anchored to the Monday of
// now's calendar week, so results are stable for any now within the same
// Monday-to-Sunday window.
//
// Any failure to resolve a card's lesson, subject, period or weekday fails
// the whole projection; only classroom resolution degrades (room "NONE").
func Project(tables Tables, classID string, now time.Time) ([]domain.LessonEvent, error) {
	weekly, err := rrule.NewRRule(rrule.ROption{Freq: rrule.WEEKLY})
	if err != nil {
		return nil, fmt.Errorf("build weekly rule: %w", err)
	}

	cards, err := tables.Table("cards")
	if err != nil {
		return nil, err
	}

	events := make([]domain.LessonEvent, 0, len(cards))
	for _, card := range cards {
		lessonID, err := card.Field("lessonid").Str()
		if err != nil {
			return nil, fmt.Errorf("card lesson id (%v): %w", err, domain.ErrProtocol)
		}
		lesson, err := tables.RowByID("lessons", lessonID)
		if err != nil {
			return nil, err
		}
		match, err := lessonHasClass(lesson, classID)
		if err != nil {
			return nil, err
		}
		if !match {
			continue
		}

		subject, err := subjectName(tables, lesson)
		if err != nil {
			return nil, err
		}
		summary := subject + " " + roomLabel(tables, card)

		start, end, err := periodTimes(tables, card)
		if err != nil {
			return nil, err
		}
		weekday, err := cardWeekday(card)
		if err != nil {
			return nil, err
		}

		day := weekdayDate(now, weekday)
		events = append(events, domain.LessonEvent{
			UID:        uuid.NewString(),
			CreatedAt:  now.Truncate(time.Second),
			Summary:    summary,
			Start:      at(day, start),
			End:        at(day, end),
			Recurrence: weekly.String(),
		})
	}
	return events, nil
}

func lessonHasClass(lesson dynjson.Value, classID string) (bool, error) {
	classIDs, err := lesson.Field("classids").Array()
	if err != nil {
		return false, fmt.Errorf("lesson class ids (%v): %w", err, domain.ErrProtocol)
	}
	for _, el := range classIDs {
		// Non-string entries are skipped, not fatal.
		id, err := el.Str()
		if err == nil && id == classID {
			return true, nil
		}
	}
	return false, nil
}

func subjectName(tables Tables, lesson dynjson.Value) (string, error) {
	subjectID, err := lesson.Field("subjectid").Str()
	if err != nil {
		return "", fmt.Errorf("lesson subject id (%v): %w", err, domain.ErrProtocol)
	}
	subject, err := tables.RowByID("subjects", subjectID)
	if err != nil {
		return "", err
	}
	name, err := subject.Field("name").Str()
	if err != nil {
		return "", fmt.Errorf("subject name (%v): %w", err, domain.ErrProtocol)
	}
	return name, nil
}

// roomLabel resolves the card's first classroom to its short label. Every
// failure along the chain degrades to "NONE"; classrooms are informational
// and must never fail the feed.
func roomLabel(tables Tables, card dynjson.Value) string {
	roomID, err := card.Field("classroomids").Index(0).Str()
	if err != nil {
		return noRoom
	}
	room, err := tables.RowByID("classrooms", roomID)
	if err != nil {
		return noRoom
	}
	short, err := room.Field("short").Str()
	if err != nil {
		return noRoom
	}
	return short
}

func periodTimes(tables Tables, card dynjson.Value) (start, end time.Time, err error) {
	periodID, err := card.Field("period").Str()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("card period id (%v): %w", err, domain.ErrProtocol)
	}
	period, err := tables.RowByID("periods", periodID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err = wallClock(period, "starttime")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = wallClock(period, "endtime")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func wallClock(period dynjson.Value, field string) (time.Time, error) {
	raw, err := period.Field(field).Str()
	if err != nil {
		return time.Time{}, fmt.Errorf("period %s (%v): %w", field, err, domain.ErrProtocol)
	}
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("period %s %q: %w", field, raw, domain.ErrFormat)
	}
	return t, nil
}

// cardWeekday returns the zero-based ISO weekday (Monday=0) of the first '1'
// in the card's days string.
func cardWeekday(card dynjson.Value) (int, error) {
	days, err := card.Field("days").Str()
	if err != nil {
		return 0, fmt.Errorf("card days (%v): %w", err, domain.ErrProtocol)
	}
	idx := strings.IndexByte(days, '1')
	if idx < 0 || idx > 6 {
		return 0, fmt.Errorf("card days %q has no usable weekday marker: %w", days, domain.ErrFormat)
	}
	return idx, nil
}

// weekdayDate maps a zero-based ISO weekday onto the calendar week containing
// now: Monday of that week plus weekday days, even when that date already
// passed this week.
func weekdayDate(now time.Time, weekday int) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monday := day.AddDate(0, 0, -isoWeekday(day))
	return monday.AddDate(0, 0, weekday)
}

// isoWeekday converts Go's Sunday-based weekday to Monday=0 .. Sunday=6.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// at combines a calendar day with a parsed wall-clock time, in day's location.
func at(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, day.Location())
}
