package api

import (
	"net/http"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetGroupHandler serves set group endpoints. Creation and reordering are
// nested under the parent (routine day or session); everything else addresses
// the group directly.
type SetGroupHandler struct {
	setGroupService service.SetGroupService
}

// NewSetGroupHandler creates a new SetGroupHandler.
func NewSetGroupHandler(setGroupService service.SetGroupService) *SetGroupHandler {
	return &SetGroupHandler{setGroupService: setGroupService}
}

// --- DTOs ---

type CreateSetGroupRequest struct {
	Type       domain.SetGroupType `json:"type"`
	ExerciseID string              `json:"exerciseId" binding:"required"`
	NumSets    int                 `json:"numSets"`
}

type UpdateSetGroupRequest struct {
	Type    *domain.SetGroupType `json:"type"`
	Comment *string              `json:"comment"`
}

type ReorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type ReplaceExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
}

type BulkEditSetsRequest struct {
	Reps             *int     `json:"reps"`
	RepetitionUnitID *string  `json:"repetitionUnitId"`
	Weight           *float64 `json:"weight"`
	WeightUnitID     *string  `json:"weightUnitId"`
	RestTime         *int     `json:"restTime"`
}

func parseIDList(c *gin.Context, raw []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, len(raw))
	for i, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid id format: "+s)
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

// --- Parent-scoped Handlers ---

// CreateDayGroup appends a set group to a routine day template.
func (h *SetGroupHandler) CreateDayGroup(c *gin.Context) {
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}
	h.create(c, domain.TemplateParent(dayID))
}

// CreateSessionGroup appends a set group to a workout session.
func (h *SetGroupHandler) CreateSessionGroup(c *gin.Context) {
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}
	h.create(c, domain.SessionParent(sessionID))
}

func (h *SetGroupHandler) create(c *gin.Context, parent domain.SetGroupParent) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req CreateSetGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format")
		return
	}
	numSets := req.NumSets
	if numSets == 0 {
		numSets = 1
	}

	aggregate, err := h.setGroupService.Create(c.Request.Context(), userID, parent, req.Type, exerciseID, numSets)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, aggregate)
}

// ReorderDayGroups renumbers a day's groups to match the posted id order.
func (h *SetGroupHandler) ReorderDayGroups(c *gin.Context) {
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}
	h.reorder(c, domain.TemplateParent(dayID))
}

// ReorderSessionGroups renumbers a session's groups to match the posted id
// order.
func (h *SetGroupHandler) ReorderSessionGroups(c *gin.Context) {
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}
	h.reorder(c, domain.SessionParent(sessionID))
}

func (h *SetGroupHandler) reorder(c *gin.Context, parent domain.SetGroupParent) {
	userID, ok := currentUserID(c)
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

	if err := h.setGroupService.Reorder(c.Request.Context(), userID, parent, ids); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Group-scoped Handlers ---

// GetSetGroup returns a group with its sets in order.
func (h *SetGroupHandler) GetSetGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathObjectID(c, "groupId")
	if !ok {
		return
	}

	aggregate, err := h.setGroupService.Get(c.Request.Context(), userID, groupID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggregate)
}

// UpdateSetGroup applies a partial update to a group.
func (h *SetGroupHandler) UpdateSetGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathObjectID(c, "groupId")
	if !ok {
		return
	}
	var req UpdateSetGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	group, err := h.setGroupService.Update(c.Request.Context(), userID, groupID, service.SetGroupUpdateInput{
		Type:    req.Type,
		Comment: req.Comment,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteSetGroup removes a group and all of its sets.
func (h *SetGroupHandler) DeleteSetGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathObjectID(c, "groupId")
	if !ok {
		return
	}

	if err := h.setGroupService.Delete(c.Request.Context(), userID, groupID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReplaceExercise swaps the exercise on every set of a group.
func (h *SetGroupHandler) ReplaceExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathObjectID(c, "groupId")
	if !ok {
		return
	}
	var req ReplaceExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format")
		return
	}

	if err := h.setGroupService.ReplaceExercise(c.Request.Context(), userID, groupID, exerciseID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkEditSets applies the same partial field set to every set of a group.
func (h *SetGroupHandler) BulkEditSets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathObjectID(c, "groupId")
	if !ok {
		return
	}
	var req BulkEditSetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input := service.SetBulkEditInput{
		Reps:     req.Reps,
		Weight:   req.Weight,
		RestTime: req.RestTime,
	}
	if req.RepetitionUnitID != nil {
		id, err := primitive.ObjectIDFromHex(*req.RepetitionUnitID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid repetitionUnitId format")
			return
		}
		input.RepetitionUnitID = &id
	}
	if req.WeightUnitID != nil {
		id, err := primitive.ObjectIDFromHex(*req.WeightUnitID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid weightUnitId format")
			return
		}
		input.WeightUnitID = &id
	}

	if err := h.setGroupService.BulkEdit(c.Request.Context(), userID, groupID, input); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
