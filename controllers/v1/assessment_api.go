package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"sap-talent-backend/controllers"
	"sap-talent-backend/lib/assessment/composer"
	apimodels "sap-talent-backend/models/api"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
)

type assessmentApiController struct {
	controllers.BaseAPIController
}

func InitAssessmentApiRouters(app *fiber.App) {
	controller := assessmentApiController{}
	app.Route("assessments", func(router fiber.Router) {
		router.Post("", controller.compose)
		router.Get("", controller.list)
		router.Get(":id", controller.get)
	})
}

// @Summary Compose an assessment
// @Tags Assessments
// @Description Generates a question set, freezes it into a template and creates the candidate with a shareable test link
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		assessmentapimodels.ComposeRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=composer.ComposedView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assessments [post]
func (c *assessmentApiController) compose(ctx *fiber.Ctx) error {
	var payload assessmentapimodels.ComposeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := composer.Instance.ComposeAssessment(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to compose assessment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List assessment templates
// @Tags Assessments
// @Description List assessment templates
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]assessmentapimodels.TemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assessments [get]
func (c *assessmentApiController) list(ctx *fiber.Ctx) error {
	list, err := composer.Instance.ListTemplates()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list assessment templates")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get an assessment template
// @Tags Assessments
// @Description Get an assessment template by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=assessmentapimodels.TemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assessments/{id} [get]
func (c *assessmentApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := composer.Instance.GetTemplate(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get assessment template")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
