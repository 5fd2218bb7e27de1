package controller

import (
	"learnpath-be/internal/dto"
	"learnpath-be/internal/pkg/serverutils"
	"learnpath-be/internal/service"
	"learnpath-be/pkg/markdown"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Send(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/ai", auth)
	h.Post("/chat", c.Send)
	h.Get("/sessions", c.GetAllSessions)
	h.Get("/sessions/:id", c.ShowSession)
	h.Put("/sessions/:id", c.RenameSession)
	h.Delete("/sessions/:id", c.DeleteSession)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Send(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	if res.ReplyHtml, err = markdown.ToHTML(res.Reply); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) GetAllSessions(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAllSessions(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all chat sessions", res))
}

func (c *chatController) ShowSession(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse("Success show chat session", res))
}

func (c *chatController) RenameSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Rename(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rename chat session", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteSession(ctx.UserContext(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chat session", nil))
}
