package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftlog/workout-app/internal/api"
	"liftlog/workout-app/internal/config"
	"liftlog/workout-app/internal/repository/mongo"
	"liftlog/workout-app/internal/service"
	"liftlog/workout-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting workout app server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes & Seed Reference Data ---
	{
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureRoutineIndexes(ctx, appDB.Collection("routines"))
		mongo.EnsureRoutineDayIndexes(ctx, appDB.Collection("routine_days"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("workout_sessions"))
		mongo.EnsureSetGroupIndexes(ctx, appDB.Collection("set_groups"))
		mongo.EnsureSetIndexes(ctx, appDB.Collection("sets"))
		if err := mongo.SeedUnits(ctx, appDB); err != nil {
			cancel()
			log.Fatalf("FATAL: Failed to seed unit reference data: %v", err)
		}
		cancel()
		log.Println("Indexes ensured, unit tables seeded.")
	}

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	unitRepo := mongo.NewMongoUnitRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	routineDayRepo := mongo.NewMongoRoutineDayRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	setGroupRepo := mongo.NewMongoSetGroupRepository(appDB)
	setRepo := mongo.NewMongoSetRepository(appDB)
	txManager := mongo.NewMongoTxManager(dbClient)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo, fileStorage)
	unitService := service.NewUnitService(unitRepo)
	routineService := service.NewRoutineService(routineRepo, routineDayRepo, setGroupRepo, setRepo, txManager)
	sessionService := service.NewSessionService(sessionRepo, routineDayRepo, setGroupRepo, setRepo, txManager)
	setGroupService := service.NewSetGroupService(setGroupRepo, setRepo, sessionRepo, routineDayRepo, exerciseRepo, unitRepo, txManager)
	setService := service.NewSetService(setRepo, setGroupRepo, sessionRepo, exerciseRepo, unitRepo, txManager)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, routineService, sessionService, setGroupService, setService, exerciseService, unitService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
