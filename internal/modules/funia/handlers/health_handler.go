package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/DevAstrumAI/Funia/internal/core/chat"
)

// Pinger is the secondary provider as seen by the health check.
type Pinger interface {
	Enabled() bool
	Model() string
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	chatService *chat.Service
	primary     string
	secondary   Pinger
}

// NewHealthHandler takes the primary provider name ("" when none is
// configured) and the secondary provider.
func NewHealthHandler(svc *chat.Service, primary string, secondary Pinger) *HealthHandler {
	return &HealthHandler{chatService: svc, primary: primary, secondary: secondary}
}

type SecondaryStatus struct {
	Enabled bool   `json:"enabled"`
	Model   string `json:"model"`
	Status  string `json:"status" example:"ok" enums:"ok,error,disabled"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status            string          `json:"status" example:"ok"`
	Service           string          `json:"service" example:"funia"`
	Primary           string          `json:"primary,omitempty" example:"Groq"`
	Secondary         SecondaryStatus `json:"secondary"`
	KnowledgeLoadedAt time.Time       `json:"knowledgeLoadedAt"`
}

// GetHealth godoc
// @Summary Service health check
// @Description Reports the configured providers, whether Ollama answers, and when the knowledge base was loaded
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	secondary := SecondaryStatus{Status: "disabled"}
	if h.secondary != nil && h.secondary.Enabled() {
		secondary.Enabled = true
		secondary.Model = h.secondary.Model()
		secondary.Status = "ok"
		if err := h.secondary.Ping(c.UserContext()); err != nil {
			secondary.Status = "error"
			secondary.Error = err.Error()
		}
	}

	return c.JSON(HealthResponse{
		Status:            "ok",
		Service:           "funia",
		Primary:           h.primary,
		Secondary:         secondary,
		KnowledgeLoadedAt: h.chatService.Knowledge().LoadedAt,
	})
}
