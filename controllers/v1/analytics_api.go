package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"sap-talent-backend/controllers"
	"sap-talent-backend/lib/analytics"
	xlsexport "sap-talent-backend/lib/export/xls"
	"sap-talent-backend/models"
	apimodels "sap-talent-backend/models/api"
)

type analyticsApiController struct {
	controllers.BaseAPIController
}

func InitAnalyticsApiRouters(app *fiber.App) {
	controller := analyticsApiController{}
	app.Route("analytics", func(router fiber.Router) {
		router.Get("comparison", controller.comparison)
	})
	app.Route("export", func(router fiber.Router) {
		router.Get("results", controller.exportResults)
	})
}

func levelFilter(ctx *fiber.Ctx) *models.SeniorityLevel {
	if value := ctx.Query("level"); value != "" {
		parsed := models.SeniorityLevel(value)
		return &parsed
	}
	return nil
}

// @Summary Candidate comparison
// @Tags Analytics
// @Description Scores, block breakdowns and approval rate across scored candidates
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   level          	query   string  false        "Junior/Pleno/Senior"
// @Success 200 {object} apimodels.Response{data=assessmentapimodels.ComparisonView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/analytics/comparison [get]
func (c *analyticsApiController) comparison(ctx *fiber.Ctx) error {
	view, err := analytics.Instance.Compare(levelFilter(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build comparison")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Export results to xlsx
// @Tags Analytics
// @Description Comparison table as an xlsx download
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   level          	query   string  false        "Junior/Pleno/Senior"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/export/results [get]
func (c *analyticsApiController) exportResults(ctx *fiber.Ctx) error {
	view, err := analytics.Instance.Compare(levelFilter(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build comparison")
	}
	buf, err := xlsexport.Instance.ExportComparison(view)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export results")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="assessment-results.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
