package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patternwork/patternwork-backend/internal/catalog"
)

// QuestionHandler serves the static question catalog.
type QuestionHandler struct{}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler() *QuestionHandler {
	return &QuestionHandler{}
}

// List godoc
// GET /api/v1/questions
func (h *QuestionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": catalog.Questions()})
}
