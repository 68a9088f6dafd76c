package dict

import (
	"github.com/gofiber/fiber/v2"

	"sap-talent-backend/controllers"
	sapmoduleprovider "sap-talent-backend/lib/dicts/sap-module"
	apimodels "sap-talent-backend/models/api"
	dictapimodels "sap-talent-backend/models/api/dict"
)

type moduleDictApiController struct {
	controllers.BaseAPIController
}

func InitModuleDictApiRouters(app *fiber.App) {
	controller := moduleDictApiController{}
	app.Route("modules", func(router fiber.Router) {
		router.Get("", controller.moduleList)
		router.Post("", controller.moduleAdd)
		router.Get(":id", controller.moduleGet)
	})
}

// @Summary List SAP modules
// @Tags Dictionaries. SAP modules
// @Description List SAP modules
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.SapModuleView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/modules [get]
func (c *moduleDictApiController) moduleList(ctx *fiber.Ctx) error {
	list, err := sapmoduleprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list SAP modules")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Add a SAP module
// @Tags Dictionaries. SAP modules
// @Description Add a SAP module
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.SapModuleData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/modules [post]
func (c *moduleDictApiController) moduleAdd(ctx *fiber.Ctx) error {
	var payload dictapimodels.SapModuleData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := sapmoduleprovider.Instance.Add(payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to add SAP module")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get a SAP module by ID
// @Tags Dictionaries. SAP modules
// @Description Get a SAP module by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.SapModuleView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/modules/{id} [get]
func (c *moduleDictApiController) moduleGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := sapmoduleprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get SAP module")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
