package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kymoja/darasa/core"
	"github.com/kymoja/darasa/core/report"
)

const dateParamLayout = "2006-01-02"

// bindScopeFilter parses the report scope from query params. Dates use the
// dashboard's YYYY-MM-DD format; integer params must parse or the request is
// rejected with a field error.
func bindScopeFilter(ctx echo.Context) (report.ScopeFilter, error) {
	params := ctx.QueryParams()

	f := report.ScopeFilter{
		Institution: params.Get("institution"),
		Department:  params.Get("department"),
		RollNo:      params.Get("roll_no"),
		PersonID:    params.Get("person_id"),
	}

	var fldErrs []core.FieldError

	intParam := func(name string) int {
		val := params.Get(name)
		if val == "" {
			return 0
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: name, Error: "must be an integer"})
			return 0
		}
		return i
	}
	dateParam := func(name string) time.Time {
		val := params.Get(name)
		if val == "" {
			return time.Time{}
		}
		t, err := time.Parse(dateParamLayout, val)
		if err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: name, Error: "must be a date (" + dateParamLayout + ")"})
			return time.Time{}
		}
		return t
	}

	f.AdmissionYear = intParam("admission_year")
	f.Semester = intParam("semester")
	f.DateFrom = dateParam("date_from")
	f.DateTo = dateParam("date_to")

	if len(fldErrs) > 0 {
		return report.ScopeFilter{}, core.NewValidationError(nil, fldErrs...)
	}
	return f, nil
}
