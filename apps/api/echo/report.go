package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kymoja/darasa/core/report"
)

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports", jwt)
	rg.GET("/summary", api.summary)
	rg.GET("/persons", api.details)
	rg.GET("/export", api.export)

	pg := g.Group("/persons", jwt)
	pg.GET("/:id", api.retrieve)
}

// Handlers

func (api *reportApi) summary(ctx echo.Context) error {
	filter, err := bindScopeFilter(ctx)
	if err != nil {
		return err
	}

	sum, err := api.svc.Summary(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "summarizing cohort")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *reportApi) details(ctx echo.Context) error {
	filter, err := bindScopeFilter(ctx)
	if err != nil {
		return err
	}

	reports, err := api.svc.Details(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "computing person reports")
	}
	return ctx.JSON(http.StatusOK, reports)
}

// export streams the flattened report as CSV. It runs through the same
// resolution path as summary and details, so the numbers always agree.
func (api *reportApi) export(ctx echo.Context) error {
	filter, err := bindScopeFilter(ctx)
	if err != nil {
		return err
	}

	records, err := api.svc.Export(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "exporting person reports")
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="report.csv"`)
	res.WriteHeader(http.StatusOK)
	return report.WriteCSV(res, records)
}

func (api *reportApi) retrieve(ctx echo.Context) error {
	filter, err := bindScopeFilter(ctx)
	if err != nil {
		return err
	}
	filter.PersonID = "" // the path param is authoritative here

	rep, err := api.svc.Person(ctx.Request().Context(), ctx.Param("id"), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rep)
}
