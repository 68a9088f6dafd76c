package dict

import (
	"github.com/gofiber/fiber/v2"

	"sap-talent-backend/controllers"
	industryprovider "sap-talent-backend/lib/dicts/industry"
	apimodels "sap-talent-backend/models/api"
	dictapimodels "sap-talent-backend/models/api/dict"
)

type industryDictApiController struct {
	controllers.BaseAPIController
}

func InitIndustryDictApiRouters(app *fiber.App) {
	controller := industryDictApiController{}
	app.Route("industries", func(router fiber.Router) {
		router.Get("", controller.industryList)
		router.Post("", controller.industryAdd)
		router.Get(":id", controller.industryGet)
	})
}

// @Summary List industries
// @Tags Dictionaries. Industries
// @Description List industries
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.IndustryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/industries [get]
func (c *industryDictApiController) industryList(ctx *fiber.Ctx) error {
	list, err := industryprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list industries")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Add an industry
// @Tags Dictionaries. Industries
// @Description Add an industry
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.IndustryData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/industries [post]
func (c *industryDictApiController) industryAdd(ctx *fiber.Ctx) error {
	var payload dictapimodels.IndustryData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := industryprovider.Instance.Add(payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to add industry")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get an industry by ID
// @Tags Dictionaries. Industries
// @Description Get an industry by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.IndustryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/industries/{id} [get]
func (c *industryDictApiController) industryGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := industryprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get industry")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
