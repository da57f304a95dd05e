package delivery

import (
	"errors"
	"net/http"

	"settlease-backend/internal/generation/usecase"

	"github.com/gin-gonic/gin"
)

// GenerationHandler serves the content generation endpoints
type GenerationHandler struct {
	generationUsecase usecase.GenerationUsecase
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(generationUsecase usecase.GenerationUsecase) *GenerationHandler {
	return &GenerationHandler{generationUsecase: generationUsecase}
}

// GenerateRequest is the body the recommendation requester posts
type GenerateRequest struct {
	SystemInstruction string `json:"system_instruction" binding:"required"`
	SearchPrompt      string `json:"search_prompt" binding:"required"`
}

// GenerateFileRequest asks for generation over a Drive file
type GenerateFileRequest struct {
	SystemInstruction string `json:"system_instruction" binding:"required"`
	FileID            string `json:"file_id" binding:"required"`
}

// GenerateContent responds with the generated JSON as-is
// POST /generate-content
func (h *GenerationHandler) GenerateContent(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.generationUsecase.Generate(c.Request.Context(), req.SystemInstruction, req.SearchPrompt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}

// GenerateContentFromFile POST /generate-content/file
func (h *GenerationHandler) GenerateContentFromFile(c *gin.Context) {
	var req GenerateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.generationUsecase.GenerateFromFile(c.Request.Context(), c.GetString("userID"), req.SystemInstruction, req.FileID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoAccessToken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrDownloadFailed), errors.Is(err, usecase.ErrGenerationFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}
