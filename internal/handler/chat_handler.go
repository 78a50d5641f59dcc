package handler

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-chat-service/internal/models"
	"movie-chat-service/internal/service"
)

// ChatHandler handles HTTP requests for the chat service.
type ChatHandler struct {
	svc *service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health returns service health status.
func (h *ChatHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "ok",
		"service":      "movie-chat-service",
		"catalog_size": h.svc.CatalogSize(),
	})
}

// Chat processes one chat message and returns the bot reply.
func (h *ChatHandler) Chat(c fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body",
		})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "message is required",
		})
	}

	resp, err := h.svc.Chat(c.Context(), req)
	if err != nil {
		slog.Error("chat turn failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to process message",
		})
	}

	return c.JSON(resp)
}

// Welcome starts a new session and returns the greeting message.
func (h *ChatHandler) Welcome(c fiber.Ctx) error {
	return c.JSON(h.svc.Welcome())
}

// ListMovies returns the most popular catalog entries.
func (h *ChatHandler) ListMovies(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 20)
	return c.JSON(fiber.Map{
		"data": h.svc.ListMovies(limit),
	})
}

// RecordInteraction stores a like/dislike/watched/search signal.
func (h *ChatHandler) RecordInteraction(c fiber.Ctx) error {
	var req models.CreateInteractionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body",
		})
	}

	if err := h.svc.RecordInteraction(c.Context(), req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "interaction recorded",
	})
}
