package attendance

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		punches []Punch
		want    Summary
	}{
		{
			name: "no observations",
			want: Summary{},
		},
		{
			name: "full half absent week",
			punches: []Punch{
				{PersonID: "p1", Date: day(1), Session: SessionMorning, Present: true},
				{PersonID: "p1", Date: day(1), Session: SessionAfternoon, Present: true},
				{PersonID: "p1", Date: day(2), Session: SessionMorning, Present: true},
				{PersonID: "p1", Date: day(2), Session: SessionAfternoon, Present: false},
				{PersonID: "p1", Date: day(3), Session: SessionMorning, Present: false},
				{PersonID: "p1", Date: day(3), Session: SessionAfternoon, Present: false},
			},
			want: Summary{TotalDays: 3, FullDays: 1, HalfDays: 1, AbsentDays: 1, Percentage: 50.0},
		},
		{
			name: "single session observed is half",
			punches: []Punch{
				{PersonID: "p1", Date: day(1), Session: SessionMorning, Present: true},
			},
			want: Summary{TotalDays: 1, HalfDays: 1, Percentage: 50.0},
		},
		{
			name: "single absent session is still half",
			punches: []Punch{
				{PersonID: "p1", Date: day(1), Session: SessionMorning, Present: false},
			},
			want: Summary{TotalDays: 1, HalfDays: 1, Percentage: 50.0},
		},
		{
			name: "duplicate punch keeps first-seen value",
			punches: []Punch{
				{PersonID: "p1", Date: day(1), Session: SessionMorning, Present: true},
				{PersonID: "p1", Date: day(1), Session: SessionMorning, Present: false}, // bulk re-upload
				{PersonID: "p1", Date: day(1), Session: SessionAfternoon, Present: true},
			},
			want: Summary{TotalDays: 1, FullDays: 1, Percentage: 100.0},
		},
		{
			name: "malformed punches are skipped not fatal",
			punches: []Punch{
				{PersonID: "", Date: day(1), Session: SessionMorning, Present: true},
				{PersonID: "p1", Session: SessionMorning, Present: true},
				{PersonID: "p1", Date: day(2), Session: SessionMorning, Present: true},
				{PersonID: "p1", Date: day(2), Session: SessionAfternoon, Present: true},
			},
			want: Summary{TotalDays: 1, FullDays: 1, Percentage: 100.0, Skipped: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.punches); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	punches := []Punch{
		{PersonID: "p1", Date: day(1), Session: SessionMorning, Present: true},
		{PersonID: "p1", Date: day(1), Session: SessionAfternoon, Present: false},
		{PersonID: "p1", Date: day(2), Session: SessionMorning, Present: true},
	}
	first := Summarize(punches)
	second := Summarize(punches)
	if first != second {
		t.Errorf("Summarize() not idempotent: %+v != %+v", first, second)
	}
}

func TestSummarizeDuplicateInvariant(t *testing.T) {
	punches := []Punch{
		{PersonID: "p1", Date: day(1), Session: SessionMorning, Present: true},
		{PersonID: "p1", Date: day(1), Session: SessionAfternoon, Present: false},
	}
	base := Summarize(punches)

	// re-adding an identical punch must never change the summary
	dup := append(append([]Punch{}, punches...), punches[0])
	if got := Summarize(dup); got != base {
		t.Errorf("Summarize() with duplicate = %+v, want %+v", got, base)
	}
}

func TestPercentBounds(t *testing.T) {
	tests := []struct {
		full, half, total int
	}{
		{0, 0, 0},
		{0, 0, 10},
		{10, 0, 10},
		{0, 10, 10},
		{3, 4, 10},
	}
	for _, tt := range tests {
		got := Percent(tt.full, tt.half, tt.total)
		if got < 0 || got > 100 {
			t.Errorf("Percent(%d, %d, %d) = %v, out of [0,100]", tt.full, tt.half, tt.total, got)
		}
	}
}
