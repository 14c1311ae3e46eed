package api

import (
	"net/http"

	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API routes on the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	routineService service.RoutineService,
	sessionService service.SessionService,
	setGroupService service.SetGroupService,
	setService service.SetService,
	exerciseService service.ExerciseService,
	unitService service.UnitService,
) {
	authHandler := NewAuthHandler(authService)
	routineHandler := NewRoutineHandler(routineService)
	sessionHandler := NewSessionHandler(sessionService)
	setGroupHandler := NewSetGroupHandler(setGroupService)
	setHandler := NewSetHandler(setService)
	exerciseHandler := NewExerciseHandler(exerciseService, unitService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, ok := currentUserID(c)
			if !ok {
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		// --- Exercise Library & Units (reference data) ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.GetExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExerciseByID)
			exerciseGroup.POST("/:exerciseId/image", exerciseHandler.RequestImageUpload)
		}
		unitGroup := protected.Group("/units")
		{
			unitGroup.GET("/repetition", exerciseHandler.GetRepetitionUnits)
			unitGroup.GET("/weight", exerciseHandler.GetWeightUnits)
		}

		// --- Routines & Day Templates ---
		routineGroup := protected.Group("/routines")
		{
			routineGroup.POST("", routineHandler.CreateRoutine)
			routineGroup.GET("", routineHandler.GetRoutines)
			routineGroup.GET("/:routineId", routineHandler.GetRoutine)
			routineGroup.PATCH("/:routineId", routineHandler.UpdateRoutine)
			routineGroup.DELETE("/:routineId", routineHandler.DeleteRoutine)
			routineGroup.POST("/:routineId/days", routineHandler.CreateDay)
		}
		dayGroup := protected.Group("/days")
		{
			dayGroup.GET("/:dayId", routineHandler.GetDay)
			dayGroup.PATCH("/:dayId", routineHandler.UpdateDay)
			dayGroup.DELETE("/:dayId", routineHandler.DeleteDay)
			dayGroup.POST("/:dayId/set-groups", setGroupHandler.CreateDayGroup)
			dayGroup.PUT("/:dayId/set-groups/reorder", setGroupHandler.ReorderDayGroups)
		}

		// --- Workout Sessions ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.CreateSession)
			sessionGroup.GET("", sessionHandler.GetSessions)
			sessionGroup.GET("/:sessionId", sessionHandler.GetSession)
			sessionGroup.PATCH("/:sessionId", sessionHandler.UpdateSession)
			sessionGroup.DELETE("/:sessionId", sessionHandler.DeleteSession)
			sessionGroup.POST("/:sessionId/set-groups", setGroupHandler.CreateSessionGroup)
			sessionGroup.PUT("/:sessionId/set-groups/reorder", setGroupHandler.ReorderSessionGroups)
		}

		// --- Set Groups & Sets ---
		groupGroup := protected.Group("/set-groups")
		{
			groupGroup.GET("/:groupId", setGroupHandler.GetSetGroup)
			groupGroup.PATCH("/:groupId", setGroupHandler.UpdateSetGroup)
			groupGroup.DELETE("/:groupId", setGroupHandler.DeleteSetGroup)
			groupGroup.PUT("/:groupId/exercise", setGroupHandler.ReplaceExercise)
			groupGroup.PATCH("/:groupId/sets", setGroupHandler.BulkEditSets)
			groupGroup.POST("/:groupId/sets", setHandler.CreateSet)
			groupGroup.PUT("/:groupId/sets/reorder", setHandler.ReorderSets)
		}
		setGroup := protected.Group("/sets")
		{
			setGroup.PATCH("/:setId", setHandler.UpdateSet)
			setGroup.DELETE("/:setId", setHandler.DeleteSet)
		}
	}
}
