package api

import (
	"net/http"
	"time"

	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler serves workout session endpoints.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

type CreateSessionRequest struct {
	TemplateID *string    `json:"templateId"`
	Name       *string    `json:"name"`
	Notes      *string    `json:"notes"`
	StartTime  *time.Time `json:"startTime"`
}

type UpdateSessionRequest struct {
	Name       *string    `json:"name"`
	Notes      *string    `json:"notes"`
	Impression *int       `json:"impression"`
	StartTime  *time.Time `json:"startTime"`
	EndTime    *time.Time `json:"endTime"`
}

// --- Handler Methods ---

// CreateSession starts a new session, optionally instantiated from a routine
// day template.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input := service.SessionCreateInput{
		Name:      req.Name,
		Notes:     req.Notes,
		StartTime: req.StartTime,
	}
	if req.TemplateID != nil {
		templateID, err := primitive.ObjectIDFromHex(*req.TemplateID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid templateId format")
			return
		}
		input.TemplateID = &templateID
	}

	aggregate, err := h.sessionService.Create(c.Request.Context(), userID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, aggregate)
}

// GetSessions lists the caller's sessions.
func (h *SessionHandler) GetSessions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessions, err := h.sessionService.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession returns one session with its groups and sets in order.
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	aggregate, err := h.sessionService.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggregate)
}

// UpdateSession applies a partial update. Setting endTime finishes the
// session.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}
	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.sessionService.Update(c.Request.Context(), userID, sessionID, service.SessionUpdateInput{
		Name:       req.Name,
		Notes:      req.Notes,
		Impression: req.Impression,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession removes a session and everything under it.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), userID, sessionID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
