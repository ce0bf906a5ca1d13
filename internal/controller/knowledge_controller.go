package controller

import (
	"admission-assistant-be/internal/dto"
	"admission-assistant-be/internal/pkg/serverutils"
	"admission-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{knowledgeService: knowledgeService}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/documents", c.Ingest)
	h.Get("/documents", c.GetAll)
	h.Delete("/documents/:id", c.Delete)
}

func (c *knowledgeController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.knowledgeService.Ingest(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for embedding", res))
}

func (c *knowledgeController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.knowledgeService.GetDocuments(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *knowledgeController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	if err := c.knowledgeService.DeleteDocument(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document deleted", nil))
}
