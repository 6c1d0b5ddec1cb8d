package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"kb-assistant-be/internal/dto"
	"kb-assistant-be/internal/pkg/serverutils"
	"kb-assistant-be/internal/service"
	"kb-assistant-be/pkg/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1", serverutils.JwtMiddleware)
	h.Get("/sessions", c.GetAllSessions)
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions/:id", c.GetSession)
	h.Delete("/sessions/:id", c.DeleteSession)
	h.Post("/sessions/:id/messages", c.SendMessage)
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("missing user id")
	}
	return uuid.Parse(raw)
}

func (c *chatController) GetAllSessions(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}

	res, err := c.service.GetAllSessions(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat sessions", res))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}

	res, err := c.service.CreateSession(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatController) GetSession(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session id"))
	}

	res, err := c.service.GetSession(ctx.Context(), userId, sessionId)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat session", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session id"))
	}

	if err := c.service.DeleteSession(ctx.Context(), userId, sessionId); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session deleted", nil))
}

// SendMessage streams the assistant reply over SSE. Ownership is verified
// before the stream starts so a bad session id still gets a plain 404.
func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session id"))
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.service.VerifySession(ctx.Context(), userId, sessionId); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	// The fiber context is invalid once this handler returns; everything the
	// stream writer needs is captured here.
	chatService := c.service
	content := req.Content

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		sink := stream.SinkFunc(func(ev stream.Event) error {
			data, err := json.Marshal(ev)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return err
			}
			return w.Flush()
		})

		// Errors are already surfaced to the subscriber through the sink.
		_ = chatService.SendMessage(context.Background(), userId, sessionId, content, sink)
	}))

	return nil
}
