package report

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ExportColumns is the stable export header. Downstream spreadsheet consumers
// depend on this exact column order; append, never reorder.
var ExportColumns = []string{
	"person_id",
	"name",
	"kind",
	"institution",
	"department",
	"admission_year",
	"roll_no",
	"total_days",
	"full_days",
	"half_days",
	"absent_days",
	"attendance_pct",
	"band",
	"exam_eligibility",
	"tuition_due",
	"exam_fee_due",
	"marks_pct",
	"subjects_passed",
	"subjects_failed",
	"result",
}

// ExportRecord is one flattened row per person, ready for delimited
// serialization.
type ExportRecord struct {
	PersonID        string `json:"person_id"`
	Name            string `json:"name"`
	Kind            string `json:"kind"`
	Institution     string `json:"institution"`
	Department      string `json:"department"`
	AdmissionYear   int    `json:"admission_year"`
	RollNo          string `json:"roll_no"`
	TotalDays       int    `json:"total_days"`
	FullDays        int    `json:"full_days"`
	HalfDays        int    `json:"half_days"`
	AbsentDays      int    `json:"absent_days"`
	AttendancePct   string `json:"attendance_pct"` // "NA" when no data, never "0.00"
	Band            string `json:"band"`
	ExamEligibility string `json:"exam_eligibility"`
	TuitionDue      int64  `json:"tuition_due"`
	ExamFeeDue      int64  `json:"exam_fee_due"`
	MarksPct        string `json:"marks_pct"` // "NA" when no entries in scope
	SubjectsPassed  int    `json:"subjects_passed"`
	SubjectsFailed  int    `json:"subjects_failed"`
	Result          string `json:"result"` // pass, fail or NA
}

// Flatten collapses a person report into its export record.
func Flatten(rep PersonReport) ExportRecord {
	rec := ExportRecord{
		PersonID:        rep.Person.ID,
		Name:            rep.Person.Name,
		Kind:            rep.Person.Kind,
		Institution:     rep.Person.Scope.Institution,
		Department:      rep.Person.Scope.Department,
		AdmissionYear:   rep.Person.Scope.AdmissionYear,
		RollNo:          rep.Person.Scope.RollNo,
		TotalDays:       rep.Attendance.TotalDays,
		FullDays:        rep.Attendance.FullDays,
		HalfDays:        rep.Attendance.HalfDays,
		AbsentDays:      rep.Attendance.AbsentDays,
		AttendancePct:   "NA",
		Band:            string(rep.Band),
		ExamEligibility: string(rep.ExamEligibility),
		TuitionDue:      rep.TuitionDue,
		ExamFeeDue:      rep.ExamFeeDue,
		MarksPct:        "NA",
		SubjectsPassed:  rep.Academics.PassCount,
		SubjectsFailed:  rep.Academics.FailCount,
		Result:          "NA",
	}
	if rep.Attendance.HasData() {
		rec.AttendancePct = formatPct(rep.Attendance.Percentage)
	}
	if rep.Academics.HasEntries() {
		rec.MarksPct = formatPct(rep.Academics.AggregatePercentage)
		if rep.Academics.AllPassed() {
			rec.Result = "pass"
		} else {
			rec.Result = "fail"
		}
	}
	return rec
}

// Row serializes the record in ExportColumns order.
func (r ExportRecord) Row() []string {
	return []string{
		r.PersonID,
		r.Name,
		r.Kind,
		r.Institution,
		r.Department,
		strconv.Itoa(r.AdmissionYear),
		r.RollNo,
		strconv.Itoa(r.TotalDays),
		strconv.Itoa(r.FullDays),
		strconv.Itoa(r.HalfDays),
		strconv.Itoa(r.AbsentDays),
		r.AttendancePct,
		r.Band,
		r.ExamEligibility,
		strconv.FormatInt(r.TuitionDue, 10),
		strconv.FormatInt(r.ExamFeeDue, 10),
		r.MarksPct,
		strconv.Itoa(r.SubjectsPassed),
		strconv.Itoa(r.SubjectsFailed),
		r.Result,
	}
}

func formatPct(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 2, 64)
}

// Export flattens the filtered population. It shares Details' resolution and
// computation path, so exported numbers always match the dashboard's.
func (svc *Service) Export(ctx context.Context, f ScopeFilter) ([]ExportRecord, error) {
	reports, err := svc.Details(ctx, f)
	if err != nil {
		return nil, err
	}
	records := make([]ExportRecord, 0, len(reports))
	for _, rep := range reports {
		records = append(records, Flatten(rep))
	}
	return records, nil
}

// WriteCSV streams the records with the stable header.
func WriteCSV(w io.Writer, records []ExportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return errors.Wrap(err, "writing export header")
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return errors.Wrap(err, "writing export row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing export")
}
