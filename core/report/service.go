package report

import (
	"context"

	"github.com/pkg/errors"

	"github.com/kymoja/darasa/core"
	"github.com/kymoja/darasa/core/academics"
	"github.com/kymoja/darasa/core/attendance"
	"github.com/kymoja/darasa/core/eligibility"
	"github.com/kymoja/darasa/core/fees"
	"github.com/kymoja/darasa/core/registry"
)

// Service is the cohort query engine. It composes the attendance, fee and
// academic evaluators over a population resolved from scope filters. The
// dashboard summary, the per-person detail table and the export all run
// through the same resolution and computation path, so they can never drift
// onto divergent formulas. The engine holds no state between calls; it only
// reads from the injected repositories.
type Service struct {
	reg  *registry.Service
	att  *attendance.Service
	fee  *fees.Service
	aca  *academics.Service
	conf *core.Config
}

func NewService(
	reg *registry.Service,
	att *attendance.Service,
	fee *fees.Service,
	aca *academics.Service,
	conf *core.Config,
) *Service {
	return &Service{reg: reg, att: att, fee: fee, aca: aca, conf: conf}
}

// resolve turns the filter into the matching population. A person-ID filter
// propagates registry.ErrNotFound so callers can branch on it explicitly.
func (svc *Service) resolve(ctx context.Context, f ScopeFilter) ([]registry.Person, error) {
	f.Clean()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.PersonID != "" {
		p, err := svc.reg.GetByID(ctx, f.PersonID)
		if err != nil {
			return nil, err
		}
		return []registry.Person{p}, nil
	}
	return svc.reg.Filter(ctx, f.registryFilter())
}

// personReport computes the full derived picture for one person.
func (svc *Service) personReport(ctx context.Context, p registry.Person, f ScopeFilter) (PersonReport, error) {
	rep := PersonReport{Person: p}

	att, err := svc.att.Summary(ctx, p.ID, f.DateFrom, f.DateTo)
	if err != nil {
		return PersonReport{}, errors.Wrap(err, "summarizing attendance")
	}
	rep.Attendance = att
	rep.Band = eligibility.Classify(att.Percentage, att.HasData(), svc.conf.Bands)
	rep.ExamEligibility = rep.Band.ExamStatus()

	schedule := svc.tuitionSchedule(p)
	tuition, tMeta, err := svc.fee.Ledger(ctx, p.ID, fees.KindTuition, schedule)
	if err != nil {
		return PersonReport{}, errors.Wrap(err, "reconciling tuition ledger")
	}
	rep.TuitionLedger = tuition
	rep.TuitionDue = fees.Outstanding(tuition)

	exam, eMeta, err := svc.fee.Ledger(ctx, p.ID, fees.KindExam, fees.Schedule{})
	if err != nil {
		return PersonReport{}, errors.Wrap(err, "reconciling exam-fee ledger")
	}
	rep.ExamLedger = exam
	rep.ExamFeeDue = fees.Outstanding(exam)
	rep.feesSkipped = tMeta.Skipped + eMeta.Skipped

	aca, err := svc.aca.Summary(ctx, p.ID, f.Semester)
	if err != nil {
		return PersonReport{}, errors.Wrap(err, "evaluating academics")
	}
	rep.Academics = aca

	return rep, nil
}

// tuitionSchedule derives the expected tuition program for gap-filling.
// Only students have one; staff and faculty pay no tuition.
func (svc *Service) tuitionSchedule(p registry.Person) fees.Schedule {
	if !p.IsStudent() {
		return fees.Schedule{}
	}
	annual := svc.conf.FeeSchedule[p.Scope.Department]
	if annual == 0 {
		return fees.Schedule{}
	}
	return fees.TuitionSchedule(p.Scope.AdmissionYear, svc.conf.CourseYears, annual)
}

// Details returns one report per matching person.
func (svc *Service) Details(ctx context.Context, f ScopeFilter) ([]PersonReport, error) {
	persons, err := svc.resolve(ctx, f)
	if err != nil {
		return nil, err
	}
	reports := make([]PersonReport, 0, len(persons))
	for _, p := range persons {
		rep, err := svc.personReport(ctx, p, f)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// Person computes the report for a single identifier. Zero registry matches
// surface as registry.ErrNotFound, an expected case in free-text search.
func (svc *Service) Person(ctx context.Context, id string, f ScopeFilter) (PersonReport, error) {
	p, err := svc.reg.GetByID(ctx, core.CleanString(id))
	if err != nil {
		return PersonReport{}, err
	}
	return svc.personReport(ctx, p, f)
}

// Summary folds the per-person reports into the dashboard aggregate.
func (svc *Service) Summary(ctx context.Context, f ScopeFilter) (CohortSummary, error) {
	reports, err := svc.Details(ctx, f)
	if err != nil {
		return CohortSummary{}, err
	}
	return Fold(reports), nil
}

// Fold aggregates per-person reports into a cohort summary. Attendance counts
// are summed before the canonical percentage is applied, keeping the cohort
// number consistent with every per-person number.
func Fold(reports []PersonReport) CohortSummary {
	sum := CohortSummary{
		Population: len(reports),
		Bands:      make(map[eligibility.Band]int),
	}
	var totalScore, maxScore int64

	for i := range reports {
		rep := &reports[i]

		sum.Attendance.FullDays += rep.Attendance.FullDays
		sum.Attendance.HalfDays += rep.Attendance.HalfDays
		sum.Attendance.AbsentDays += rep.Attendance.AbsentDays
		sum.Attendance.TotalDays += rep.Attendance.TotalDays
		sum.Bands[rep.Band]++

		sum.TuitionDue += rep.TuitionDue
		sum.ExamFeeDue += rep.ExamFeeDue

		sum.Academics.TotalEntries += rep.Academics.PassCount + rep.Academics.FailCount
		sum.Academics.PassedEntries += rep.Academics.PassCount
		if rep.Academics.HasEntries() {
			sum.Academics.StudentsWithEntries++
			if rep.Academics.AllPassed() {
				sum.Academics.PassedStudents++
			}
		}
		totalScore += rep.Academics.TotalScore
		maxScore += rep.Academics.MaxScore

		sum.Skipped += rep.Skipped()
	}

	sum.Attendance.Percentage = attendance.Percent(
		sum.Attendance.FullDays, sum.Attendance.HalfDays, sum.Attendance.TotalDays)

	if maxScore > 0 {
		sum.Academics.AggregatePercentage = float64(totalScore) / float64(maxScore) * 100
	}
	if sum.Academics.StudentsWithEntries > 0 {
		sum.Academics.StudentPassRate =
			float64(sum.Academics.PassedStudents) / float64(sum.Academics.StudentsWithEntries) * 100
	}
	if sum.Academics.TotalEntries > 0 {
		sum.Academics.ExamInstancePassRate =
			float64(sum.Academics.PassedEntries) / float64(sum.Academics.TotalEntries) * 100
	}
	return sum
}
