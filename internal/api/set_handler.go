package api

import (
	"net/http"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetHandler serves individual set endpoints.
type SetHandler struct {
	setService service.SetService
}

// NewSetHandler creates a new SetHandler.
func NewSetHandler(setService service.SetService) *SetHandler {
	return &SetHandler{setService: setService}
}

// --- DTOs ---

type CreateSetRequest struct {
	ExerciseID       string          `json:"exerciseId" binding:"required"`
	Type             *domain.SetType `json:"type"`
	Reps             *int            `json:"reps"`
	RepetitionUnitID *string         `json:"repetitionUnitId"`
	Weight           *float64        `json:"weight"`
	WeightUnitID     *string         `json:"weightUnitId"`
	RestTime         *int            `json:"restTime"`
}

type UpdateSetRequest struct {
	Type             *domain.SetType `json:"type"`
	Reps             *int            `json:"reps"`
	RepetitionUnitID *string         `json:"repetitionUnitId"`
	Weight           *float64        `json:"weight"`
	WeightUnitID     *string         `json:"weightUnitId"`
	RestTime         *int            `json:"restTime"`
	Completed        *bool           `json:"completed"`
}

func parseOptionalID(c *gin.Context, raw *string, field string) (*primitive.ObjectID, bool) {
	if raw == nil {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(*raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+field+" format")
		return nil, false
	}
	return &id, true
}

// --- Handler Methods ---

// CreateSet appends a set to a group.
func (h *SetHandler) CreateSet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathObjectID(c, "groupId")
	if !ok {
		return
	}
	var req CreateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format")
		return
	}

	input := service.SetCreateInput{
		Type:     req.Type,
		Reps:     req.Reps,
		Weight:   req.Weight,
		RestTime: req.RestTime,
	}
	if input.RepetitionUnitID, ok = parseOptionalID(c, req.RepetitionUnitID, "repetitionUnitId"); !ok {
		return
	}
	if input.WeightUnitID, ok = parseOptionalID(c, req.WeightUnitID, "weightUnitId"); !ok {
		return
	}

	set, err := h.setService.Create(c.Request.Context(), userID, groupID, exerciseID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, set)
}

// UpdateSet applies a partial update to a set.
func (h *SetHandler) UpdateSet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	setID, ok := pathObjectID(c, "setId")
	if !ok {
		return
	}
	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input := service.SetUpdateInput{
		Type:      req.Type,
		Reps:      req.Reps,
		Weight:    req.Weight,
		RestTime:  req.RestTime,
		Completed: req.Completed,
	}
	if input.RepetitionUnitID, ok = parseOptionalID(c, req.RepetitionUnitID, "repetitionUnitId"); !ok {
		return
	}
	if input.WeightUnitID, ok = parseOptionalID(c, req.WeightUnitID, "weightUnitId"); !ok {
		return
	}

	set, err := h.setService.Update(c.Request.Context(), userID, setID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// DeleteSet removes a set. The response tells the client whether the group
// went with it.
func (h *SetHandler) DeleteSet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	setID, ok := pathObjectID(c, "setId")
	if !ok {
		return
	}

	result, err := h.setService.Delete(c.Request.Context(), userID, setID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ReorderSets renumbers a group's sets to match the posted id order.
func (h *SetHandler) ReorderSets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathObjectID(c, "groupId")
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ids, ok := parseIDList(c, req.IDs)
	if !ok {
		return
	}

	if err := h.setService.Reorder(c.Request.Context(), userID, groupID, ids); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
