package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"sap-talent-backend/controllers"
	"sap-talent-backend/lib/assessment/result"
	"sap-talent-backend/lib/report"
	apimodels "sap-talent-backend/models/api"
)

type resultApiController struct {
	controllers.BaseAPIController
}

func InitResultApiRouters(app *fiber.App) {
	controller := resultApiController{}
	app.Route("results", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Get(":id/report", controller.report)
		router.Post(":id/send", controller.send)
	})
}

// @Summary List assessment results
// @Tags Results
// @Description List assessment results with verdicts
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]assessmentapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/results [get]
func (c *resultApiController) list(ctx *fiber.Ctx) error {
	list, err := result.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list results")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get an assessment result
// @Tags Results
// @Description Get an assessment result by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=assessmentapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/results/{id} [get]
func (c *resultApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := result.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get result")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Download the result report
// @Tags Results
// @Description PDF report for the result's candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/results/{id}/report [get]
func (c *resultApiController) report(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := result.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get result")
	}
	pdfFile, err := report.Instance.GetReportPDF(ctx.UserContext(), view.CandidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to render report")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "assessment-report-"+view.CandidateID+".pdf"))
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}

// @Summary Email the result report
// @Tags Results
// @Description Emails the PDF report to the configured hiring team address
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/results/{id}/send [post]
func (c *resultApiController) send(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := result.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get result")
	}
	if err := report.Instance.SendResultReport(ctx.UserContext(), view.CandidateID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to send report")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
