package controller

import (
	"report-automation-be/internal/dto"
	"report-automation-be/internal/pkg/serverutils"
	"report-automation-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	ListForms(ctx *fiber.Ctx) error
	Start(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	SaveAnswers(ctx *fiber.Ctx) error
	Next(ctx *fiber.Ctx) error
	Prev(ctx *fiber.Ctx) error
	Check(ctx *fiber.Ctx) error
	Finalize(ctx *fiber.Ctx) error
	Abandon(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	r.Get("/forms/v1", c.ListForms)

	h := r.Group("/session/v1")
	h.Post("", c.Start)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Abandon)
	h.Put(":id/answers", c.SaveAnswers)
	h.Post(":id/next", c.Next)
	h.Post(":id/prev", c.Prev)
	h.Get(":id/check", c.Check)
	h.Post(":id/finalize", c.Finalize)
}

func (c *sessionController) ListForms(ctx *fiber.Ctx) error {
	res, err := c.service.ListForms(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list forms", res))
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success start session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Block(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) SaveAnswers(ctx *fiber.Ctx) error {
	req, err := answersFromBody(ctx, true)
	if err != nil {
		return err
	}

	res, err := c.service.SaveAnswers(ctx.Context(), ctx.Params("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save answers", res))
}

func (c *sessionController) Next(ctx *fiber.Ctx) error {
	req, err := answersFromBody(ctx, false)
	if err != nil {
		return err
	}

	res, err := c.service.Next(ctx.Context(), ctx.Params("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success next block", res))
}

func (c *sessionController) Prev(ctx *fiber.Ctx) error {
	req, err := answersFromBody(ctx, false)
	if err != nil {
		return err
	}

	res, err := c.service.Prev(ctx.Context(), ctx.Params("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success previous block", res))
}

func (c *sessionController) Check(ctx *fiber.Ctx) error {
	res, err := c.service.Check(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success check session", res))
}

func (c *sessionController) Finalize(ctx *fiber.Ctx) error {
	req, err := answersFromBody(ctx, false)
	if err != nil {
		return err
	}

	res, err := c.service.Finalize(ctx.Context(), ctx.Params("id"), req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success finalize report", res))
}

func (c *sessionController) Abandon(ctx *fiber.Ctx) error {
	if err := c.service.Abandon(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success abandon session", nil))
}

// answersFromBody reads pending answers. Navigation calls may come without a body.
func answersFromBody(ctx *fiber.Ctx, required bool) (*dto.SaveAnswersRequest, error) {
	if !required && len(ctx.Body()) == 0 {
		return nil, nil
	}

	var req dto.SaveAnswersRequest
	if err := parseBody(ctx, &req); err != nil {
		return nil, err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}
