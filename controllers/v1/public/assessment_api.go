package public

import (
	"github.com/gofiber/fiber/v2"

	"sap-talent-backend/controllers"
	"sap-talent-backend/lib/assessment/session"
	apimodels "sap-talent-backend/models/api"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
)

type publicAssessmentApiController struct {
	controllers.BaseAPIController
}

func InitPublicAssessmentApiRouters(app *fiber.App) {
	controller := publicAssessmentApiController{}
	app.Route("assessment", func(router fiber.Router) {
		router.Get(":id", controller.resolve)
		router.Post(":id/start", controller.start)
		router.Put(":id/answer", controller.answer)
		router.Put(":id/seen", controller.seen)
		router.Post(":id/finish", controller.finish)
		router.Get(":id/state", controller.state)
	})
}

// @Summary Resolve a test link
// @Tags Public assessment
// @Description Entry state for a shareable link: questions, or the result when already finished
// @Param   id          		path    string 	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=assessmentapimodels.PublicAssessmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/assessment/{id} [get]
func (c *publicAssessmentApiController) resolve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := session.Instance.Resolve(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to resolve test link")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Start the assessment
// @Tags Public assessment
// @Description Starts the countdown; re-starting a running session resumes it
// @Param   id          		path    string 	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=assessmentapimodels.SessionStateView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/assessment/{id}/start [post]
func (c *publicAssessmentApiController) start(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := session.Instance.Start(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to start assessment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Record an answer
// @Tags Public assessment
// @Description Saves one question's selected option, last write wins
// @Param   id          		path    string 	true         "candidate ID"
// @Param	body				body		assessmentapimodels.AnswerRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/assessment/{id}/answer [put]
func (c *publicAssessmentApiController) answer(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assessmentapimodels.AnswerRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := session.Instance.Answer(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to record answer")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Mark a question as seen
// @Tags Public assessment
// @Description Records navigation order
// @Param   id          		path    string 	true         "candidate ID"
// @Param	body				body		assessmentapimodels.SeenRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/assessment/{id}/seen [put]
func (c *publicAssessmentApiController) seen(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assessmentapimodels.SeenRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := session.Instance.MarkVisited(id, payload.QuestionIndex); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to record navigation")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Finish the assessment
// @Tags Public assessment
// @Description Submits the session for scoring; repeated calls return the persisted result
// @Param   id          		path    string 	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=assessmentapimodels.PublicResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/assessment/{id}/finish [post]
func (c *publicAssessmentApiController) finish(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := session.Instance.Finish(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to finish assessment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Session state
// @Tags Public assessment
// @Description Remaining seconds and saved answers, for page reloads
// @Param   id          		path    string 	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=assessmentapimodels.SessionStateView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/assessment/{id}/state [get]
func (c *publicAssessmentApiController) state(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := session.Instance.State(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get session state")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
