package attendance

import "time"

// Percent is the canonical attendance formula: full days count 1, half days
// count 0.5. Every consumer must use this; no alternate formula exists.
func Percent(fullDays, halfDays, totalDays int) float64 {
	if totalDays <= 0 {
		return 0
	}
	return (float64(fullDays) + 0.5*float64(halfDays)) / float64(totalDays) * 100
}

type sessionKey struct {
	date    string
	session string
}

// Summarize collapses raw punches into one Summary.
//
// Duplicate (date, session) observations keep the first-seen value. A day with
// both sessions present is Full, with both absent is Absent, and Half
// otherwise; a day with a single observed session is Half by that same rule.
// Punches missing a person ID or a date are dropped and counted in Skipped.
func Summarize(punches []Punch) Summary {
	var sum Summary

	seen := make(map[sessionKey]bool, len(punches))
	type dayObs struct {
		observed int
		present  int
	}
	days := make(map[string]*dayObs)

	for _, p := range punches {
		if p.PersonID == "" || p.Date.IsZero() {
			sum.Skipped++
			continue
		}
		key := sessionKey{date: dayOf(p.Date), session: p.Session}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = p.Present

		obs, ok := days[key.date]
		if !ok {
			obs = &dayObs{}
			days[key.date] = obs
		}
		obs.observed++
		if p.Present {
			obs.present++
		}
	}

	for _, obs := range days {
		switch {
		case obs.observed == 2 && obs.present == 2:
			sum.FullDays++
		case obs.observed == 2 && obs.present == 0:
			sum.AbsentDays++
		default:
			sum.HalfDays++
		}
	}
	sum.TotalDays = sum.FullDays + sum.HalfDays + sum.AbsentDays
	sum.Percentage = Percent(sum.FullDays, sum.HalfDays, sum.TotalDays)
	return sum
}

func dayOf(t time.Time) string {
	return t.Format("2006-01-02")
}
