package api

import (
	"net/http"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// RoutineHandler serves routine and routine day endpoints.
type RoutineHandler struct {
	routineService service.RoutineService
}

// NewRoutineHandler creates a new RoutineHandler.
func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// --- DTOs ---

type CreateRoutineRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateRoutineRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CreateRoutineDayRequest struct {
	Description string `json:"description" binding:"required"`
	Weekdays    []int  `json:"weekdays"`
}

type UpdateRoutineDayRequest struct {
	Description *string `json:"description"`
	Weekdays    *[]int  `json:"weekdays"`
}

// RoutineDetailResponse bundles a routine with its day templates.
type RoutineDetailResponse struct {
	Routine domain.Routine      `json:"routine"`
	Days    []domain.RoutineDay `json:"days"`
}

// --- Routine Handlers ---

// CreateRoutine creates a new, empty routine for the caller.
func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	routine, err := h.routineService.CreateRoutine(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, routine)
}

// GetRoutines lists the caller's routines.
func (h *RoutineHandler) GetRoutines(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	routines, err := h.routineService.GetRoutines(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, routines)
}

// GetRoutine returns one routine with its days.
func (h *RoutineHandler) GetRoutine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	routineID, ok := pathObjectID(c, "routineId")
	if !ok {
		return
	}

	routine, days, err := h.routineService.GetRoutine(c.Request.Context(), userID, routineID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, RoutineDetailResponse{Routine: *routine, Days: days})
}

// UpdateRoutine applies a partial update to a routine.
func (h *RoutineHandler) UpdateRoutine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	routineID, ok := pathObjectID(c, "routineId")
	if !ok {
		return
	}
	var req UpdateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	routine, err := h.routineService.UpdateRoutine(c.Request.Context(), userID, routineID, service.RoutineUpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, routine)
}

// DeleteRoutine removes a routine and everything under it.
func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	routineID, ok := pathObjectID(c, "routineId")
	if !ok {
		return
	}

	if err := h.routineService.DeleteRoutine(c.Request.Context(), userID, routineID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Routine Day Handlers ---

// CreateDay adds a day template to a routine.
func (h *RoutineHandler) CreateDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	routineID, ok := pathObjectID(c, "routineId")
	if !ok {
		return
	}
	var req CreateRoutineDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	day, err := h.routineService.CreateDay(c.Request.Context(), userID, routineID, req.Description, req.Weekdays)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, day)
}

// GetDay returns one day template with its groups and sets in order.
func (h *RoutineHandler) GetDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}

	aggregate, err := h.routineService.GetDay(c.Request.Context(), userID, dayID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggregate)
}

// UpdateDay applies a partial update to a day template.
func (h *RoutineHandler) UpdateDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}
	var req UpdateRoutineDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	day, err := h.routineService.UpdateDay(c.Request.Context(), userID, dayID, service.RoutineDayUpdateInput{
		Description: req.Description,
		Weekdays:    req.Weekdays,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// DeleteDay removes a day template and everything under it.
func (h *RoutineHandler) DeleteDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}

	if err := h.routineService.DeleteDay(c.Request.Context(), userID, dayID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
