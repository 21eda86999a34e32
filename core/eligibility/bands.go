// Package eligibility maps attendance percentages to the named condonation
// bands that control exam entry. Classification is pure and stateless.
package eligibility

import "github.com/kymoja/darasa/core"

// Band is a named attendance-percentage range.
type Band string

const (
	BandEligible    Band = "eligible"            // exam-eligible, no fee
	BandCondonation Band = "condonation"         // exam-eligible, pays condonation fee
	BandMedical     Band = "medical_condonation" // conditionally eligible pending certificate
	BandDetained    Band = "detained"            // not exam-eligible
	BandNA          Band = "na"                  // no attendance data at all
)

// ExamEligibility is derived from the attendance band, never from fees.
type ExamEligibility string

const (
	ExamEligible    ExamEligibility = "eligible"
	ExamConditional ExamEligibility = "conditional"
	ExamNotEligible ExamEligibility = "not_eligible"
	ExamUnknown     ExamEligibility = "na"
)

// Classify maps an attendance percentage to its band. hasData distinguishes
// "no observations" from genuine zero attendance: zero-observation inputs get
// the NA band, never Detained.
func Classify(percentage float64, hasData bool, bands core.AttendanceBands) Band {
	if !hasData {
		return BandNA
	}
	switch {
	case percentage >= bands.Eligible:
		return BandEligible
	case percentage >= bands.Condonation:
		return BandCondonation
	case percentage >= bands.Medical:
		return BandMedical
	default:
		return BandDetained
	}
}

// ExamStatus derives exam eligibility from the band.
func (b Band) ExamStatus() ExamEligibility {
	switch b {
	case BandEligible, BandCondonation:
		return ExamEligible
	case BandMedical:
		return ExamConditional
	case BandDetained:
		return ExamNotEligible
	}
	return ExamUnknown
}
