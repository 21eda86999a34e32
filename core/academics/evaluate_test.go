package academics

import (
	"testing"

	"github.com/kymoja/darasa/core"
)

var thresholds = core.PassThresholds{InternalMin: 14, ExternalMin: 21, TotalMin: 40}

func TestPasses(t *testing.T) {
	tests := []struct {
		name  string
		entry MarkEntry
		want  bool
	}{
		{
			name:  "all thresholds met",
			entry: MarkEntry{Internal: 18, External: 30, Total: 48, Max: 100},
			want:  true,
		},
		{
			name:  "internal below minimum",
			entry: MarkEntry{Internal: 10, External: 25, Total: 35, Max: 100},
			want:  false,
		},
		{
			name:  "external below minimum",
			entry: MarkEntry{Internal: 20, External: 15, Total: 45, Max: 100},
			want:  false,
		},
		{
			name:  "total below minimum",
			entry: MarkEntry{Internal: 14, External: 21, Total: 39, Max: 100},
			want:  false,
		},
		{
			name:  "exact thresholds pass",
			entry: MarkEntry{Internal: 14, External: 21, Total: 40, Max: 100},
			want:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Passes(tt.entry, thresholds); got != tt.want {
				t.Errorf("Passes(%+v) = %v, want %v", tt.entry, got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	entries := []MarkEntry{
		{PersonID: "p1", Term: 1, SubjectCode: "MA101", Internal: 20, External: 40, Total: 60, Max: 100},
		{PersonID: "p1", Term: 1, SubjectCode: "PH102", Internal: 10, External: 25, Total: 35, Max: 100},
		{PersonID: "p1", Term: 1, SubjectCode: "LB103", Internal: 20, External: 25, Total: 45, Max: 50},
	}
	sum := Evaluate(entries, thresholds)

	if sum.PassCount != 2 || sum.FailCount != 1 {
		t.Errorf("pass/fail = %d/%d, want 2/1", sum.PassCount, sum.FailCount)
	}
	// mark-weighted: (60+35+45)/(100+100+50) = 56%
	if sum.AggregatePercentage != 56.0 {
		t.Errorf("AggregatePercentage = %v, want 56.0", sum.AggregatePercentage)
	}
	if sum.AllPassed() {
		t.Error("AllPassed() = true with a failed subject")
	}
}

func TestEvaluateEmpty(t *testing.T) {
	sum := Evaluate(nil, thresholds)
	if sum.AggregatePercentage != 0 {
		t.Errorf("AggregatePercentage = %v, want 0", sum.AggregatePercentage)
	}
	if sum.HasEntries() {
		t.Error("HasEntries() = true for empty scope")
	}
	if sum.AllPassed() {
		t.Error("AllPassed() = true for empty scope; zero-entry persons count in neither mode")
	}
}

func TestEvaluateSkipsMalformed(t *testing.T) {
	entries := []MarkEntry{
		{PersonID: "", SubjectCode: "MA101", Internal: 20, External: 40, Total: 60, Max: 100},
		{PersonID: "p1", SubjectCode: "", Internal: 20, External: 40, Total: 60, Max: 100},
		{PersonID: "p1", SubjectCode: "MA101", Internal: 20, External: 40, Total: 60, Max: 100},
	}
	sum := Evaluate(entries, thresholds)
	if sum.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", sum.Skipped)
	}
	if sum.PassCount != 1 {
		t.Errorf("PassCount = %d, want 1", sum.PassCount)
	}
}

func TestEvaluatePercentageBounds(t *testing.T) {
	entries := []MarkEntry{
		{PersonID: "p1", SubjectCode: "MA101", Internal: 0, External: 0, Total: 0, Max: 100},
		{PersonID: "p1", SubjectCode: "PH102", Internal: 25, External: 75, Total: 100, Max: 100},
	}
	sum := Evaluate(entries, thresholds)
	if sum.AggregatePercentage < 0 || sum.AggregatePercentage > 100 {
		t.Errorf("AggregatePercentage = %v, out of [0,100]", sum.AggregatePercentage)
	}
}
