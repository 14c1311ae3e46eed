package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandleServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", service.ErrSetGroupNotFound, http.StatusNotFound},
		{"access denied", service.ErrAccessDenied, http.StatusForbidden},
		{"validation", fmt.Errorf("reps must be positive: %w", service.ErrValidationFailed), http.StatusBadRequest},
		{"precondition", service.ErrNoDefaultUnits, http.StatusPreconditionFailed},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			handleServiceError(c, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}
