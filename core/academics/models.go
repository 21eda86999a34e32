package academics

// MarkEntry is one subject result for one person in one term.
type MarkEntry struct {
	PersonID    string `json:"person_id"`
	Term        int    `json:"term"` // semester number
	SubjectCode string `json:"subject_code"`
	Internal    int    `json:"internal_score"`
	External    int    `json:"external_score"`
	Total       int    `json:"total_score"`
	Max         int    `json:"max_score"`
}

// Result pairs a mark entry with its pass determination.
type Result struct {
	Entry  MarkEntry `json:"entry"`
	Passed bool      `json:"passed"`
}

// Summary is the derived academic picture for one person over a filtered scope.
// TotalScore and MaxScore carry the raw sums so cohort folds can stay
// mark-weighted instead of averaging percentages.
type Summary struct {
	AggregatePercentage float64  `json:"aggregate_percentage"`
	PassCount           int      `json:"pass_count"` // entries passed
	FailCount           int      `json:"fail_count"` // entries failed
	TotalScore          int64    `json:"total_score"`
	MaxScore            int64    `json:"max_score"`
	Results             []Result `json:"results,omitempty"`
	Skipped             int      `json:"skipped"`
}

// HasEntries reports whether any entry fell within the filtered scope. A person
// with no entries contributes to neither cohort pass nor fail counts.
func (s Summary) HasEntries() bool { return s.PassCount+s.FailCount > 0 }

// AllPassed is the strict person-level determination: every filtered entry passed.
func (s Summary) AllPassed() bool { return s.HasEntries() && s.FailCount == 0 }

// RateMode selects the cohort pass-rate denominator. There are two valid modes
// and the caller must pick one explicitly for the active filter breadth.
type RateMode string

const (
	// RateByStudent divides students with every filtered entry passed by
	// students with any entry. Appropriate for narrow filters (one subject or
	// semester); too punishing for broad overviews.
	RateByStudent RateMode = "student"
	// RateByExamInstance divides passed entries by total entries. Appropriate
	// for broad "all subjects, all semesters" overviews.
	RateByExamInstance RateMode = "exam_instance"
)

func (m RateMode) Valid() bool {
	return m == RateByStudent || m == RateByExamInstance
}
