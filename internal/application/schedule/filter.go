package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/domain/models"
	"go.uber.org/zap"
)

const (
	scheduledAtSuffix = ".000Z"
	scheduledAtLayout = "2006-01-02T15:04:05"
)

var leaguePath = []string{"tournament", "serie", "league", "shortName"}

// Filter keeps the upcoming matches of the target leagues that start on the
// current local date.
type Filter struct {
	log     *zap.Logger
	leagues map[string]struct{}
	loc     *time.Location
	now     func() time.Time
}

func NewFilter(log *zap.Logger, leagues []string, loc *time.Location, now func() time.Time) *Filter {
	set := make(map[string]struct{}, len(leagues))
	for _, l := range leagues {
		set[l] = struct{}{}
	}
	if now == nil {
		now = time.Now
	}
	return &Filter{
		log:     log,
		leagues: set,
		loc:     loc,
		now:     now,
	}
}

func (f *Filter) Today(raw []models.RawMatch) models.Digest {
	today := f.now().In(f.loc)
	digest := models.Digest{
		Date: time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, f.loc),
	}

	for i, rec := range raw {
		match, ok, err := f.parse(rec, today)
		if err != nil {
			f.log.Debug("skipping upstream record",
				zap.Int("index", i),
				zap.String("reason", skipReason(err)),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			continue
		}
		digest.Add(match)
	}

	return digest
}

// parse returns ok=false for well-formed records that are simply not wanted
// today.
func (f *Filter) parse(rec models.RawMatch, today time.Time) (models.ScheduledMatch, bool, error) {
	league, err := lookupString(rec, leaguePath...)
	if err != nil {
		return models.ScheduledMatch{}, false, err
	}
	if _, ok := f.leagues[league]; !ok {
		return models.ScheduledMatch{}, false, nil
	}

	scheduledAt, err := lookupString(rec, "scheduledAt")
	if err != nil {
		return models.ScheduledMatch{}, false, err
	}
	startUTC, err := ParseScheduledAt(scheduledAt)
	if err != nil {
		return models.ScheduledMatch{}, false, err
	}

	local := startUTC.In(f.loc)
	if !sameDate(local, today) {
		return models.ScheduledMatch{}, false, nil
	}

	name, err := lookupString(rec, "name")
	if err != nil {
		return models.ScheduledMatch{}, false, err
	}

	return models.ScheduledMatch{
		Name:       name,
		League:     league,
		StartLocal: local,
	}, true, nil
}

// ParseScheduledAt accepts only the upstream's exact UTC format,
// YYYY-MM-DDTHH:MM:SS.000Z.
func ParseScheduledAt(value string) (time.Time, error) {
	trimmed, ok := strings.CutSuffix(value, scheduledAtSuffix)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", derr.ErrMalformedTimestamp, value)
	}

	t, err := time.Parse(scheduledAtLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", derr.ErrMalformedTimestamp, value)
	}

	return t.UTC(), nil
}

func lookupString(rec models.RawMatch, path ...string) (string, error) {
	var cur any = map[string]any(rec)
	for i, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: %s is not an object", derr.ErrMissingField, strings.Join(path[:i], "."))
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return "", fmt.Errorf("%w: %s", derr.ErrMissingField, strings.Join(path[:i+1], "."))
		}
	}

	s, ok := cur.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", derr.ErrMissingField, strings.Join(path, "."))
	}
	return s, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, derr.ErrMalformedTimestamp):
		return "malformed_timestamp"
	case errors.Is(err, derr.ErrMissingField):
		return "missing_field"
	default:
		return "unknown"
	}
}
