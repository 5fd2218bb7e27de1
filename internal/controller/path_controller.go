package controller

import (
	"learnpath-be/internal/dto"
	"learnpath-be/internal/pkg/serverutils"
	"learnpath-be/internal/service"
	"learnpath-be/pkg/markdown"

	"github.com/gofiber/fiber/v2"
)

type IPathController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	GenerateAssessment(ctx *fiber.Ctx) error
	EvaluateAssessment(ctx *fiber.Ctx) error
	Explain(ctx *fiber.Ctx) error
	Resources(ctx *fiber.Ctx) error
	Regenerate(ctx *fiber.Ctx) error
	UpdateItemNotes(ctx *fiber.Ctx) error
}

type pathController struct {
	service           service.IPathService
	assessmentService service.IAssessmentService
}

func NewPathController(service service.IPathService, assessmentService service.IAssessmentService) IPathController {
	return &pathController{service: service, assessmentService: assessmentService}
}

func (c *pathController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/paths", auth)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get("/stats", c.Stats)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/assessment", c.GenerateAssessment)
	h.Post("/:id/assessment/evaluate", c.EvaluateAssessment)
	h.Post("/:id/explain", c.Explain)
	h.Post("/:id/resources", c.Resources)
	h.Post("/:id/regenerate", c.Regenerate)
	h.Put("/:id/items/:index/notes", c.UpdateItemNotes)
}

func (c *pathController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all learning paths", res))
}

func (c *pathController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreatePathRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create learning path", res))
}

func (c *pathController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show learning path", res))
}

func (c *pathController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete learning path", nil))
}

func (c *pathController) Stats(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Stats(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get learning stats", res))
}

func (c *pathController) GenerateAssessment(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	topicIndex, err := topicIndexQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.assessmentService.GenerateForPath(ctx.UserContext(), userId, id, topicIndex)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate assessment", res))
}

func (c *pathController) EvaluateAssessment(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	topicIndex, err := topicIndexQuery(ctx)
	if err != nil {
		return err
	}

	var req dto.EvaluateAssessmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assessmentService.EvaluateForPath(ctx.UserContext(), userId, id, topicIndex, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success evaluate assessment", res))
}

func (c *pathController) Explain(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	topicIndex, err := topicIndexQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Explain(ctx.UserContext(), userId, id, topicIndex)
	if err != nil {
		return err
	}
	if res.ExplanationHtml, err = markdown.ToHTML(res.Explanation); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success explain topic", res))
}

func (c *pathController) Resources(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	topicIndex, err := topicIndexQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Resources(ctx.UserContext(), userId, id, topicIndex)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get topic resources", res))
}

func (c *pathController) Regenerate(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RegeneratePathRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Regenerate(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success regenerate learning path", res))
}

func (c *pathController) UpdateItemNotes(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	index, err := intParam(ctx, "index")
	if err != nil {
		return err
	}

	var req dto.UpdateItemNotesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateItemNotes(ctx.UserContext(), userId, id, index, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update notes", res))
}
