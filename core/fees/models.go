package fees

import "time"

// Fee kinds
const (
	KindTuition = "tuition"
	KindExam    = "exam"
)

// Transaction is one payment event against a person's fee account.
// A zero Timestamp marks a synthetic opening-balance row.
type Transaction struct {
	PersonID   string    `json:"person_id"`
	Period     string    `json:"period"` // academic-year label, e.g. "2023-2024"
	Kind       string    `json:"kind"`
	TotalDue   int64     `json:"total_due"` // period total as known at transaction time
	AmountPaid int64     `json:"amount_paid"`
	Timestamp  time.Time `json:"timestamp"`
}

// Ledger row statuses
const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusDue     = "due"
)

// LedgerRow is one reconciled display row. Rows carry the running balance
// walked forward in time within their period.
type LedgerRow struct {
	Period      string    `json:"period"`
	Kind        string    `json:"kind"`
	TotalDue    int64     `json:"total_due"` // authoritative period total
	AmountPaid  int64     `json:"amount_paid"`
	RunningPaid int64     `json:"running_paid"`
	DueBalance  int64     `json:"due_balance"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
	Synthetic   bool      `json:"synthetic,omitempty"` // gap-filled opening row
}

// Meta reports rows dropped from aggregation.
type Meta struct {
	Skipped int `json:"skipped"`
}

// Schedule is the expected tuition program for one person: the standard
// academic-year periods derived from their admission year, and the annual
// amount from the department fee schedule.
type Schedule struct {
	Periods []string
	Annual  int64
}

// TuitionSchedule builds the standard schedule for a student admitted in
// admissionYear on a courseYears-long program.
func TuitionSchedule(admissionYear, courseYears int, annual int64) Schedule {
	if admissionYear == 0 || courseYears <= 0 {
		return Schedule{Annual: annual}
	}
	periods := make([]string, 0, courseYears)
	for i := 0; i < courseYears; i++ {
		periods = append(periods, PeriodLabel(admissionYear+i))
	}
	return Schedule{Periods: periods, Annual: annual}
}

// PeriodLabel formats the academic-year label starting at the given year.
func PeriodLabel(startYear int) string {
	return formatPeriod(startYear, startYear+1)
}
