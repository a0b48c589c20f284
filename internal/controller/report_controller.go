package controller

import (
	"strconv"

	"report-automation-be/internal/dto"
	"report-automation-be/internal/pkg/serverutils"
	"report-automation-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IReportService
}

func NewReportController(service service.IReportService) IReportController {
	return &reportController{service: service}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Post(":id/export", c.Export)
}

func (c *reportController) GetAll(ctx *fiber.Ctx) error {
	var req dto.ListReportsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all reports", res))
}

func (c *reportController) Show(ctx *fiber.Ctx) error {
	id, err := reportID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show report", res))
}

func (c *reportController) Delete(ctx *fiber.Ctx) error {
	id, err := reportID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete report", nil))
}

func (c *reportController) Export(ctx *fiber.Ctx) error {
	id, err := reportID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Export(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success export report", res))
}

func reportID(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid report id")
	}
	return id, nil
}
