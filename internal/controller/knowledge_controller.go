package controller

import (
	"fmt"
	"os"
	"path/filepath"

	"kb-assistant-be/internal/dto"
	"kb-assistant-be/internal/pkg/serverutils"
	"kb-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
}

type knowledgeController struct {
	service   service.IKnowledgeService
	uploadDir string
}

func NewKnowledgeController(service service.IKnowledgeService, uploadDir string) IKnowledgeController {
	return &knowledgeController{service: service, uploadDir: uploadDir}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1", serverutils.JwtMiddleware)
	h.Get("/", c.GetAll)
	h.Post("/", c.Create)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/files", c.Upload)
	h.Get("/:id/files/:fileId/content", c.GetDocumentContent)
	h.Delete("/:id/files/:fileId", c.DeleteDocument)
}

func (c *knowledgeController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Knowledge bases", res))
}

func (c *knowledgeController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateKnowledgeBaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Knowledge base created", res))
}

func (c *knowledgeController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid knowledge base id"))
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Knowledge base", res))
}

func (c *knowledgeController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid knowledge base id"))
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Knowledge base deleted", nil))
}

func (c *knowledgeController) Upload(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid knowledge base id"))
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Multipart form required"))
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "At least one file is required"))
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	files := make([]service.UploadedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		storedName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(fh.Filename))
		storedPath := filepath.Join(c.uploadDir, storedName)
		if err := ctx.SaveFile(fh, storedPath); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
		files = append(files, service.UploadedFile{
			Name:       fh.Filename,
			StoredPath: storedPath,
			Size:       fh.Size,
		})
	}

	res, err := c.service.Upload(ctx.Context(), id, files)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Files uploaded", res))
}

func (c *knowledgeController) GetDocumentContent(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid knowledge base id"))
	}
	fileId, err := uuid.Parse(ctx.Params("fileId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid file id"))
	}

	res, err := c.service.GetDocumentContent(ctx.Context(), id, fileId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Document content", res))
}

func (c *knowledgeController) DeleteDocument(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid knowledge base id"))
	}
	fileId, err := uuid.Parse(ctx.Params("fileId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid file id"))
	}

	if err := c.service.DeleteDocument(ctx.Context(), id, fileId); err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Document deleted", nil))
}
