package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kymoja/darasa/core"
	"github.com/kymoja/darasa/core/academics"
	"github.com/kymoja/darasa/core/attendance"
	"github.com/kymoja/darasa/core/eligibility"
	"github.com/kymoja/darasa/core/fees"
	"github.com/kymoja/darasa/core/registry"
	"github.com/kymoja/darasa/core/report"
	dummydb "github.com/kymoja/darasa/storage/database/dummy"
)

var testConf = &core.Config{
	PassMarks:   core.PassThresholds{InternalMin: 14, ExternalMin: 21, TotalMin: 40},
	Bands:       core.AttendanceBands{Eligible: 75, Condonation: 65, Medical: 60},
	FeeSchedule: map[string]int64{"CSE": 50000},
	CourseYears: 2,
}

func day(d int) time.Time {
	return time.Date(2022, time.February, d, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) *report.Service {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	ctx := context.Background()
	personRepo := dummydb.NewPersonRepository(db)
	regSvc := registry.NewService(personRepo)

	persons := []registry.NewPerson{
		{Name: "Asha Mwangi", Kind: registry.KindStudent, Institution: "GEC", Department: "CSE", AdmissionYear: 2021, Seq: 1},
		{Name: "Brian Otieno", Kind: registry.KindStudent, Institution: "GEC", Department: "CSE", AdmissionYear: 2021, Seq: 2},
		{Name: "Chiku Hassan", Kind: registry.KindStudent, Institution: "GEC", Department: "EEE", AdmissionYear: 2021, Seq: 1},
	}
	for _, np := range persons {
		if _, err := regSvc.Create(ctx, np); err != nil {
			t.Fatalf("setup() failed: %v", err)
		}
	}

	punchRepo := dummydb.NewPunchRepository(db)
	punchRepo.AppendPunches(
		// Asha: one full day, one half day
		attendance.Punch{PersonID: "GEC-CSE-2021-001", Date: day(1), Session: attendance.SessionMorning, Present: true},
		attendance.Punch{PersonID: "GEC-CSE-2021-001", Date: day(1), Session: attendance.SessionAfternoon, Present: true},
		attendance.Punch{PersonID: "GEC-CSE-2021-001", Date: day(2), Session: attendance.SessionMorning, Present: true},
		attendance.Punch{PersonID: "GEC-CSE-2021-001", Date: day(2), Session: attendance.SessionAfternoon, Present: false},
		// Chiku: one fully absent day
		attendance.Punch{PersonID: "GEC-EEE-2021-001", Date: day(1), Session: attendance.SessionMorning, Present: false},
		attendance.Punch{PersonID: "GEC-EEE-2021-001", Date: day(1), Session: attendance.SessionAfternoon, Present: false},
	)

	feeRepo := dummydb.NewFeeRepository(db)
	feeRepo.AppendTransactions(
		fees.Transaction{PersonID: "GEC-CSE-2021-001", Period: "2021-2022", Kind: fees.KindTuition, TotalDue: 50000, AmountPaid: 50000, Timestamp: day(3)},
		fees.Transaction{PersonID: "GEC-EEE-2021-001", Period: "2022-2023", Kind: fees.KindExam, TotalDue: 1500, AmountPaid: 500, Timestamp: day(4)},
	)

	markRepo := dummydb.NewMarkRepository(db)
	markRepo.AppendMarks(
		academics.MarkEntry{PersonID: "GEC-CSE-2021-001", Term: 1, SubjectCode: "MA101", Internal: 20, External: 40, Total: 60, Max: 100},
		academics.MarkEntry{PersonID: "GEC-CSE-2021-001", Term: 1, SubjectCode: "PH102", Internal: 10, External: 25, Total: 35, Max: 100},
		academics.MarkEntry{PersonID: "GEC-CSE-2021-002", Term: 2, SubjectCode: "MA201", Internal: 14, External: 21, Total: 40, Max: 100},
	)

	return report.NewService(
		regSvc,
		attendance.NewService(punchRepo),
		fees.NewService(feeRepo),
		academics.NewService(markRepo, testConf.PassMarks),
		testConf,
	)
}

func TestSummary(t *testing.T) {
	svc := setup(t)

	sum, err := svc.Summary(context.Background(), report.ScopeFilter{})
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}

	assert.Equal(t, 3, sum.Population)

	// attendance counts summed before the canonical formula
	assert.Equal(t, 3, sum.Attendance.TotalDays)
	assert.Equal(t, 1, sum.Attendance.FullDays)
	assert.Equal(t, 1, sum.Attendance.HalfDays)
	assert.Equal(t, 1, sum.Attendance.AbsentDays)
	assert.InDelta(t, 50.0, sum.Attendance.Percentage, 1e-9)

	assert.Equal(t, 1, sum.Bands[eligibility.BandEligible])
	assert.Equal(t, 1, sum.Bands[eligibility.BandNA])
	assert.Equal(t, 1, sum.Bands[eligibility.BandDetained])

	// Asha owes the gap-filled 2022-2023 year; Brian owes both scheduled years
	assert.Equal(t, int64(150000), sum.TuitionDue)
	assert.Equal(t, int64(1000), sum.ExamFeeDue)

	assert.Equal(t, 3, sum.Academics.TotalEntries)
	assert.Equal(t, 2, sum.Academics.PassedEntries)
	assert.Equal(t, 2, sum.Academics.StudentsWithEntries)
	assert.Equal(t, 1, sum.Academics.PassedStudents)
	assert.InDelta(t, 50.0, sum.Academics.StudentPassRate, 1e-9)
	assert.InDelta(t, 100.0*2/3, sum.Academics.ExamInstancePassRate, 1e-9)
	assert.InDelta(t, 45.0, sum.Academics.AggregatePercentage, 1e-9)
}

func TestSummaryEmptyPopulation(t *testing.T) {
	svc := setup(t)

	sum, err := svc.Summary(context.Background(), report.ScopeFilter{Department: "MECH"})
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	assert.Equal(t, 0, sum.Population)
	assert.False(t, sum.Attendance.HasData(), "empty population must report no data, not 0%")
	assert.Zero(t, sum.TuitionDue)
	assert.Zero(t, sum.Academics.TotalEntries)
}

func TestAmbiguousFilterRejected(t *testing.T) {
	svc := setup(t)

	_, err := svc.Summary(context.Background(), report.ScopeFilter{
		PersonID:   "GEC-CSE-2021-001",
		Department: "CSE",
	})
	if !assert.Error(t, err) {
		return
	}
	assert.IsType(t, &core.ValidationError{}, err)
}

func TestPersonNotFound(t *testing.T) {
	svc := setup(t)

	_, err := svc.Person(context.Background(), "GEC-CSE-2021-999", report.ScopeFilter{})
	assert.Equal(t, registry.ErrNotFound, err)
}

func TestAllFilterMeansNoRestriction(t *testing.T) {
	svc := setup(t)

	all, err := svc.Details(context.Background(), report.ScopeFilter{Institution: "all", Department: "all"})
	if err != nil {
		t.Fatalf("Details() failed: %v", err)
	}
	assert.Len(t, all, 3)
}

func TestCohortFilterComposition(t *testing.T) {
	svc := setup(t)

	cse, err := svc.Details(context.Background(), report.ScopeFilter{Institution: "GEC", Department: "CSE"})
	if err != nil {
		t.Fatalf("Details() failed: %v", err)
	}
	assert.Len(t, cse, 2)

	one, err := svc.Details(context.Background(), report.ScopeFilter{Department: "CSE", RollNo: "002"})
	if err != nil {
		t.Fatalf("Details() failed: %v", err)
	}
	if assert.Len(t, one, 1) {
		assert.Equal(t, "GEC-CSE-2021-002", one[0].Person.ID)
	}
}

func TestDateRangeNarrowsAttendance(t *testing.T) {
	svc := setup(t)

	rep, err := svc.Person(context.Background(), "GEC-CSE-2021-001", report.ScopeFilter{
		DateFrom: day(1), DateTo: day(1),
	})
	if err != nil {
		t.Fatalf("Person() failed: %v", err)
	}
	assert.Equal(t, 1, rep.Attendance.TotalDays)
	assert.Equal(t, 1, rep.Attendance.FullDays)
	assert.InDelta(t, 100.0, rep.Attendance.Percentage, 1e-9)
}

// Every consumer path must produce identical numbers for the same scope.
func TestPathsAgree(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	filter := report.ScopeFilter{Department: "CSE"}

	sum, err := svc.Summary(ctx, filter)
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	details, err := svc.Details(ctx, filter)
	if err != nil {
		t.Fatalf("Details() failed: %v", err)
	}
	records, err := svc.Export(ctx, filter)
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	assert.Equal(t, sum.Population, len(details))
	assert.Equal(t, sum.Population, len(records))

	var detailTuition int64
	var fullDays int
	for _, rep := range details {
		detailTuition += rep.TuitionDue
		fullDays += rep.Attendance.FullDays
	}
	assert.Equal(t, sum.TuitionDue, detailTuition)
	assert.Equal(t, sum.Attendance.FullDays, fullDays)

	var exportTuition int64
	for _, rec := range records {
		exportTuition += rec.TuitionDue
	}
	assert.Equal(t, sum.TuitionDue, exportTuition)
	assert.Equal(t, report.Fold(details), sum)
}

func TestExportRecordShape(t *testing.T) {
	svc := setup(t)

	records, err := svc.Export(context.Background(), report.ScopeFilter{PersonID: "GEC-CSE-2021-002"})
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if !assert.Len(t, records, 1) {
		return
	}
	rec := records[0]

	// Brian has no punches: N/A, never "0.00"
	assert.Equal(t, "NA", rec.AttendancePct)
	assert.Equal(t, string(eligibility.BandNA), rec.Band)
	assert.Equal(t, "pass", rec.Result)
	assert.Equal(t, "40.00", rec.MarksPct)
	assert.Equal(t, int64(100000), rec.TuitionDue)
	assert.Len(t, rec.Row(), len(report.ExportColumns))
}
