package attendance

import "time"

// Session halves of a school day.
const (
	SessionMorning   = "morning"
	SessionAfternoon = "afternoon"
)

// Punch is one half-day observation for a person. Punches are append-only;
// the same (date, session) pair may be recorded more than once when manual
// and bulk-upload entry paths overlap.
type Punch struct {
	PersonID string    `json:"person_id"`
	Date     time.Time `json:"date"` // calendar day; time-of-day is ignored
	Session  string    `json:"session"`
	Present  bool      `json:"present"`
}

// DayStatus classifies one calendar day from its two session observations.
type DayStatus int

const (
	DayFull DayStatus = iota
	DayHalf
	DayAbsent
)

func (s DayStatus) String() string {
	switch s {
	case DayFull:
		return "full"
	case DayHalf:
		return "half"
	case DayAbsent:
		return "absent"
	}
	return "unknown"
}

// Summary is the derived attendance picture for one person over a range.
// TotalDays==0 means "no data": consumers must render N/A, not 0%.
type Summary struct {
	TotalDays  int     `json:"total_days"`
	FullDays   int     `json:"full_days"`
	HalfDays   int     `json:"half_days"`
	AbsentDays int     `json:"absent_days"`
	Percentage float64 `json:"percentage"`
	Skipped    int     `json:"skipped"` // malformed punches dropped from aggregation
}

// HasData reports whether any day was observed at all.
func (s Summary) HasData() bool { return s.TotalDays > 0 }
