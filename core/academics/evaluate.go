package academics

import "github.com/kymoja/darasa/core"

// Passes applies the configured pass thresholds to one entry.
func Passes(e MarkEntry, th core.PassThresholds) bool {
	return e.Internal >= th.InternalMin && e.External >= th.ExternalMin && e.Total >= th.TotalMin
}

// Evaluate applies the pass rule per entry and folds the filtered entries into
// a Summary. The aggregate percentage is mark-weighted (sum of totals over sum
// of max marks), deliberately not per-subject-averaged: subjects with higher
// max marks weigh proportionally more. Entries missing a person ID or subject
// code are dropped and counted in Skipped.
func Evaluate(entries []MarkEntry, th core.PassThresholds) Summary {
	var sum Summary

	for _, e := range entries {
		if e.PersonID == "" || e.SubjectCode == "" {
			sum.Skipped++
			continue
		}
		passed := Passes(e, th)
		if passed {
			sum.PassCount++
		} else {
			sum.FailCount++
		}
		sum.Results = append(sum.Results, Result{Entry: e, Passed: passed})
		sum.TotalScore += int64(e.Total)
		sum.MaxScore += int64(e.Max)
	}

	if sum.MaxScore > 0 {
		sum.AggregatePercentage = float64(sum.TotalScore) / float64(sum.MaxScore) * 100
	}
	return sum
}
