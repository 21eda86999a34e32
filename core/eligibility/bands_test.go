package eligibility

import (
	"testing"

	"github.com/kymoja/darasa/core"
)

var bands = core.AttendanceBands{Eligible: 75, Condonation: 65, Medical: 60}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		pct     float64
		hasData bool
		want    Band
	}{
		{name: "well above cutoff", pct: 92.3, hasData: true, want: BandEligible},
		{name: "exactly 75", pct: 75, hasData: true, want: BandEligible},
		{name: "just under 75", pct: 74.99, hasData: true, want: BandCondonation},
		{name: "exactly 65", pct: 65, hasData: true, want: BandCondonation},
		{name: "just under 65", pct: 64.99, hasData: true, want: BandMedical},
		{name: "exactly 60", pct: 60, hasData: true, want: BandMedical},
		{name: "just under 60", pct: 59.99, hasData: true, want: BandDetained},
		{name: "genuine zero attendance", pct: 0, hasData: true, want: BandDetained},
		{name: "no data is NA not detained", pct: 0, hasData: false, want: BandNA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.pct, tt.hasData, bands); got != tt.want {
				t.Errorf("Classify(%v, %v) = %s, want %s", tt.pct, tt.hasData, got, tt.want)
			}
		})
	}
}

func TestExamStatus(t *testing.T) {
	tests := []struct {
		band Band
		want ExamEligibility
	}{
		{BandEligible, ExamEligible},
		{BandCondonation, ExamEligible},
		{BandMedical, ExamConditional},
		{BandDetained, ExamNotEligible},
		{BandNA, ExamUnknown},
	}
	for _, tt := range tests {
		if got := tt.band.ExamStatus(); got != tt.want {
			t.Errorf("%s.ExamStatus() = %s, want %s", tt.band, got, tt.want)
		}
	}
}
