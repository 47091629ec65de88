package model

import "time"

// Time periods accepted by the "last modified" dashboard filter.
const (
	PeriodToday      = "today"
	PeriodLast7Days  = "last7days"
	PeriodLast30Days = "last30days"
	PeriodThisYear   = "thisyear"
)

// Filter narrows folder and document listings.
// DocTypes hold coarse type labels (pdf, word, excel, image, video, audio,
// archive, code); multiple selections are OR'd. Periods hold the constants
// above; multiple selections are OR'd by taking the earliest cutoff.
type Filter struct {
	DocTypes []string
	Periods  []string
}

// Empty reports whether the filter narrows anything at all.
func (f Filter) Empty() bool {
	return len(f.DocTypes) == 0 && len(f.Periods) == 0
}

// ModifiedCutoff resolves the selected periods to a single cutoff timestamp.
// Periods combine with OR, so the earliest cutoff wins. Unknown period
// values are ignored. The second return is false when no valid period is
// selected.
func (f Filter) ModifiedCutoff(now time.Time) (time.Time, bool) {
	var cutoff time.Time
	found := false

	for _, p := range f.Periods {
		var c time.Time
		switch p {
		case PeriodToday:
			c = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		case PeriodLast7Days:
			c = now.AddDate(0, 0, -7)
		case PeriodLast30Days:
			c = now.AddDate(0, 0, -30)
		case PeriodThisYear:
			c = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		default:
			continue
		}
		if !found || c.Before(cutoff) {
			cutoff = c
			found = true
		}
	}

	return cutoff, found
}
