package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"sap-talent-backend/controllers"
	"sap-talent-backend/lib/candidate"
	"sap-talent-backend/models"
	apimodels "sap-talent-backend/models/api"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app *fiber.App) {
	controller := candidateApiController{}
	app.Route("candidates", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Delete(":id", controller.delete)
	})
}

// @Summary List candidates
// @Tags Candidates
// @Description List candidates, optionally filtered by status
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status          	query   string  false        "Pending/InProgress/Completed"
// @Success 200 {object} apimodels.Response{data=[]candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidates [get]
func (c *candidateApiController) list(ctx *fiber.Ctx) error {
	var status *models.CandidateStatus
	if value := ctx.Query("status"); value != "" {
		parsed := models.CandidateStatus(value)
		status = &parsed
	}
	list, err := candidate.Instance.List(status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list candidates")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get a candidate
// @Tags Candidates
// @Description Candidate card with the assessment result once one exists
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=assessmentapimodels.CandidateCardView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidates/{id} [get]
func (c *candidateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidate.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get candidate")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Delete a candidate
// @Tags Candidates
// @Description Delete a candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidates/{id} [delete]
func (c *candidateApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := candidate.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete candidate")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
