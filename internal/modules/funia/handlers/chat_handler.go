package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/DevAstrumAI/Funia/internal/core/chat"
	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
)

type ChatHandler struct {
	chatService *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{chatService: svc}
}

// ChatRequest is the widget payload. Only the last user message is answered.
type ChatRequest struct {
	Messages []chat.Message `json:"messages"`
	Language string         `json:"language" example:"de" enums:"de,en,fr"`
}

type AssistantMessage struct {
	Role    string `json:"role" example:"assistant"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Message AssistantMessage `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type RateLimitResponse struct {
	Error             string `json:"error"`
	RetryAfterSeconds *int   `json:"retryAfterSeconds"`
}

// PostChat godoc
// @Summary Answer a chat message
// @Description Answers the latest user message from static FAQ data or the configured model providers
// @Tags Chat
// @Accept json
// @Produce json
// @Param data body ChatRequest true "Conversation and reply language"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} RateLimitResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/chat [post]
func (h *ChatHandler) PostChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		// An unreadable body is answered like an empty conversation.
		req = ChatRequest{}
	}
	lang := knowledge.ParseLang(req.Language)

	ctx := c.UserContext()
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		ctx = chat.WithRequestID(ctx, id)
	}

	reply, err := h.chatService.Handle(ctx, req.Messages, lang)
	if err != nil {
		var chatErr *chat.Error
		if !errors.As(err, &chatErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
		}
		if chatErr.Kind == chat.KindRateLimited {
			return c.Status(fiber.StatusTooManyRequests).JSON(RateLimitResponse{
				Error:             chatErr.Message,
				RetryAfterSeconds: chatErr.RetryAfter,
			})
		}
		return c.Status(statusFor(chatErr.Kind)).JSON(ErrorResponse{Error: chatErr.Message})
	}

	return c.JSON(ChatResponse{Message: AssistantMessage{Role: "assistant", Content: reply.Content}})
}

func statusFor(kind chat.ErrorKind) int {
	switch kind {
	case chat.KindValidation:
		return fiber.StatusBadRequest
	case chat.KindRateLimited:
		return fiber.StatusTooManyRequests
	case chat.KindEmptyResponse:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
