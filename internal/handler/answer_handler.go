package handler

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/engine"
	"github.com/mobilite-mtl/mobilite-backend-go/pkg/response"
)

// AnswerHandler exposes the question-answering pipeline over HTTP.
type AnswerHandler struct {
	engine *engine.Engine

	mu         sync.Mutex
	lastPeriod string
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(eng *engine.Engine) *AnswerHandler {
	return &AnswerHandler{engine: eng, lastPeriod: engine.DefaultPeriod}
}

// AnswerRequest is the POST /answer body.
type AnswerRequest struct {
	Question      string `json:"question" binding:"required"`
	Period        string `json:"period"`
	SkipAmbiguity bool   `json:"skip_ambiguity"`
}

// Answer handles POST /api/v1/answer.
func (h *AnswerHandler) Answer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "question is required")
		return
	}

	period := h.resolvePeriod(req.Period)
	payload := h.engine.Answer(c.Request.Context(), req.Question, period, req.SkipAmbiguity)
	response.Success(c, payload)
}

// resolvePeriod validates the UI period label. A custom label that claims
// to be a custom range but does not parse falls back to the last valid
// period this handler served, never to an error response.
func (h *AnswerHandler) resolvePeriod(label string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	label = strings.TrimSpace(label)
	switch {
	case label == "":
		return h.lastPeriod
	case engine.LooksCustom(label):
		if _, ok := engine.ParseCustomPeriod(label); !ok {
			return h.lastPeriod
		}
	}
	h.lastPeriod = label
	return label
}
