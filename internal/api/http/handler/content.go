package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// ContentGenerator runs a prompt against a model with the caller's stored key.
type ContentGenerator interface {
	Generate(ctx context.Context, params model.GenerateContentParams) (model.GeneratedContent, error)
}

// Content handles the content generation endpoint.
type Content struct {
	generator      ContentGenerator
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewContent(generator ContentGenerator, contextManager model.ContextManager, logger *logger.Logger) *Content {
	return &Content{
		generator:      generator,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Generate runs the prompt and reports the consumed tokens against the key quota.
func (h *Content) Generate(c *gin.Context) {
	identity, ok := identityFromContext(c, h.contextManager)
	if !ok {
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	var service model.Service
	if req.Service != "" {
		parsed, err := model.ParseService(req.Service)
		if err != nil {
			handleError(c, h.logger, err)
			return
		}
		service = parsed
	}

	out, err := h.generator.Generate(c.Request.Context(), model.GenerateContentParams{
		OwnerID:     identity.ID,
		Service:     service,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toGenerateResponse(out))
}
