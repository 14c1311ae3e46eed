package api

import (
	"net/http"

	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the shared exercise library and image uploads.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	unitService     service.UnitService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, unitService service.UnitService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, unitService: unitService}
}

// --- DTOs ---

type RequestImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// --- Handler Methods ---

// GetExercises lists the exercise library with image URLs resolved.
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	exercises, err := h.exerciseService.GetExercises(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// GetExerciseByID returns one exercise by its id.
func (h *ExerciseHandler) GetExerciseByID(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}
	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// RequestImageUpload returns a presigned PUT URL for attaching an image to an
// exercise.
func (h *ExerciseHandler) RequestImageUpload(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}
	var req RequestImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ticket, err := h.exerciseService.RequestImageUpload(c.Request.Context(), exerciseID, req.ContentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// GetRepetitionUnits lists the seeded repetition units.
func (h *ExerciseHandler) GetRepetitionUnits(c *gin.Context) {
	units, err := h.unitService.ListRepetitionUnits(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

// GetWeightUnits lists the seeded weight units.
func (h *ExerciseHandler) GetWeightUnits(c *gin.Context) {
	units, err := h.unitService.ListWeightUnits(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}
