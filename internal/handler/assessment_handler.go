package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/patternwork/patternwork-backend/internal/model"
	"github.com/patternwork/patternwork-backend/internal/response"
	"github.com/patternwork/patternwork-backend/internal/service"
	"github.com/patternwork/patternwork-backend/internal/validator"
)

// AssessmentHandler owns the /save-assessment route.
type AssessmentHandler struct {
	assessmentService *service.AssessmentService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(assessmentService *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// Save godoc
// POST /save-assessment
func (h *AssessmentHandler) Save(c *gin.Context) {
	var req model.SubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		// A type mismatch on "answers" lands here (e.g. a string where
		// the mapping belongs), same as any broken JSON body.
		response.Error(c, http.StatusBadRequest, "Missing or invalid 'answers' payload.")
		return
	}

	result, err := h.assessmentService.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"assessmentId": result.AssessmentID.String(),
		"createdAt":    result.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

// Probe godoc
// GET /save-assessment
//
// Liveness probe for manual verification, not part of the functional
// contract.
func (h *AssessmentHandler) Probe(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{"route": "save-assessment"})
}

func (h *AssessmentHandler) writeSubmitError(c *gin.Context, err error) {
	var se *service.SubmissionError
	if !errors.As(err, &se) {
		response.Error(c, http.StatusInternalServerError, "Failed to process assessment.")
		return
	}

	switch {
	case errors.Is(se, service.ErrInvalidPayload):
		response.Error(c, http.StatusBadRequest, se.Message)
	case errors.Is(se, service.ErrStorageUnavailable):
		response.Error(c, http.StatusInternalServerError, se.Message)
	case errors.Is(se, service.ErrStorageError):
		response.ErrorWithDetail(c, http.StatusInternalServerError, se.Message, se.Detail)
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process assessment.")
	}
}
