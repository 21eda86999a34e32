package report

import (
	"errors"
	"time"

	"github.com/kymoja/darasa/core"
	"github.com/kymoja/darasa/core/academics"
	"github.com/kymoja/darasa/core/attendance"
	"github.com/kymoja/darasa/core/eligibility"
	"github.com/kymoja/darasa/core/fees"
	"github.com/kymoja/darasa/core/registry"
)

var (
	// ErrAmbiguousFilter rejects a query that combines a person-ID filter with
	// cohort dimensions. This is a caller programming error and fails loudly
	// instead of silently picking one side.
	ErrAmbiguousFilter = errors.New("person filter cannot be combined with cohort filters")
)

// ScopeFilter selects the population and the data range a report covers.
// Cohort dimensions compose by AND; "all" or empty means no restriction.
// A person-ID filter supersedes and must not be combined with the cohort
// dimensions; semester and the date range remain valid either way since they
// narrow a person's own transactions, not the population.
type ScopeFilter struct {
	Institution   string `query:"institution" json:"institution"`
	Department    string `query:"department" json:"department"`
	AdmissionYear int    `query:"admission_year" json:"admission_year"`
	RollNo        string `query:"roll_no" json:"roll_no"`
	PersonID      string `query:"person_id" json:"person_id"`

	Semester int       `query:"semester" json:"semester"`
	DateFrom time.Time `query:"date_from" json:"date_from"`
	DateTo   time.Time `query:"date_to" json:"date_to"`
}

// Clean normalizes the filter: whitespace, case, and the "all" placeholder the
// dashboard sends for unrestricted dimensions.
func (f *ScopeFilter) Clean() {
	norm := func(s string) string {
		s = core.CleanString(s, true /* upper */)
		if s == "ALL" {
			return ""
		}
		return s
	}
	f.Institution = norm(f.Institution)
	f.Department = norm(f.Department)
	f.RollNo = core.CleanString(f.RollNo)
	f.PersonID = core.CleanString(f.PersonID)
}

func (f *ScopeFilter) hasCohortDims() bool {
	return f.Institution != "" || f.Department != "" || f.AdmissionYear != 0 || f.RollNo != ""
}

// Validate enforces the individual-vs-cohort mutual exclusion as an engine
// invariant, not a UI nicety.
func (f *ScopeFilter) Validate() error {
	if f.PersonID != "" && f.hasCohortDims() {
		return core.NewValidationError(
			ErrAmbiguousFilter,
			core.FieldError{Field: "person_id", Error: ErrAmbiguousFilter.Error()},
		)
	}
	return nil
}

func (f *ScopeFilter) registryFilter() registry.QueryFilter {
	return registry.QueryFilter{
		Institution:   f.Institution,
		Department:    f.Department,
		AdmissionYear: f.AdmissionYear,
		RollNo:        f.RollNo,
	}
}

// PersonReport is the full derived picture for one person. The same struct
// backs the detail view, the cohort fold and the export path.
type PersonReport struct {
	Person          registry.Person             `json:"person"`
	Attendance      attendance.Summary          `json:"attendance"`
	Band            eligibility.Band            `json:"band"`
	ExamEligibility eligibility.ExamEligibility `json:"exam_eligibility"`
	TuitionLedger   []fees.LedgerRow            `json:"tuition_ledger,omitempty"`
	ExamLedger      []fees.LedgerRow            `json:"exam_ledger,omitempty"`
	TuitionDue      int64                       `json:"tuition_due"`
	ExamFeeDue      int64                       `json:"exam_fee_due"`
	Academics       academics.Summary           `json:"academics"`

	feesSkipped int
}

// Skipped counts the malformed transactions dropped across all three logs.
func (r *PersonReport) Skipped() int {
	return r.Attendance.Skipped + r.Academics.Skipped + r.feesSkipped
}

// CohortAcademics carries both pass-rate modes; the caller picks the one
// matching its filter breadth (see academics.RateMode).
type CohortAcademics struct {
	AggregatePercentage  float64 `json:"aggregate_percentage"`
	PassedStudents       int     `json:"passed_students"`
	StudentsWithEntries  int     `json:"students_with_entries"`
	PassedEntries        int     `json:"passed_entries"`
	TotalEntries         int     `json:"total_entries"`
	StudentPassRate      float64 `json:"student_pass_rate"`
	ExamInstancePassRate float64 `json:"exam_instance_pass_rate"`
}

// Rate returns the pass rate for an explicit mode.
func (a CohortAcademics) Rate(mode academics.RateMode) (float64, error) {
	switch mode {
	case academics.RateByStudent:
		return a.StudentPassRate, nil
	case academics.RateByExamInstance:
		return a.ExamInstancePassRate, nil
	}
	return 0, core.NewValidationError(
		errors.New("unknown rate mode"),
		core.FieldError{Field: "rate_mode", Error: "must be one of: student, exam_instance"},
	)
}

// CohortSummary is the dashboard aggregate over the resolved population.
// An empty population is not an error: all counts are zero and the attendance
// summary reports no data.
type CohortSummary struct {
	Population int                      `json:"population"`
	Attendance attendance.Summary       `json:"attendance"`
	Bands      map[eligibility.Band]int `json:"bands"`
	TuitionDue int64                    `json:"tuition_due"`
	ExamFeeDue int64                    `json:"exam_fee_due"`
	Academics  CohortAcademics          `json:"academics"`
	Skipped    int                      `json:"skipped"`
}
