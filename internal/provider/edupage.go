package provider

import (
	"context"
	"time"

	"github.com/sevenofnine/edupage-calendar-bridge/internal/domain"
	"github.com/sevenofnine/edupage-calendar-bridge/internal/dynjson"
	"github.com/sevenofnine/edupage-calendar-bridge/internal/timetable"
)

type documentFetcher interface {
	FetchTimetableDocument(ctx context.Context, year int) ([]dynjson.Value, error)
}

// EdupageProvider turns one school's published timetable into the lesson
// events of a single class.
type EdupageProvider struct {
	fetcher documentFetcher
	classID string
	year    int
	now     func() time.Time
}

func NewEdupageProvider(fetcher documentFetcher, classID string, year int) *EdupageProvider {
	return &EdupageProvider{fetcher: fetcher, classID: classID, year: year, now: time.Now}
}

func (p *EdupageProvider) Name() string { return "edupage" }

// Events fetches the timetable document and projects it onto the current
// week. The document is discarded once projection finishes; nothing is
// cached between requests.
func (p *EdupageProvider) Events(ctx context.Context) ([]domain.LessonEvent, error) {
	tables, err := p.fetcher.FetchTimetableDocument(ctx, p.year)
	if err != nil {
		return nil, err
	}
	return timetable.Project(timetable.NewTables(tables), p.classID, p.now())
}
