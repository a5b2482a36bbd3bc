package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stayhub/config"
	"stayhub/controllers"
	"stayhub/jobs"
	"stayhub/repositories"
	"stayhub/routes"
	"stayhub/services"
	"stayhub/services/logger"
	"stayhub/services/notification"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not loaded, falling back to environment: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	appLogger, err := logger.NewZapLogger(os.Getenv("LOG_LEVEL"), "stayhub")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	reservationRepo := repositories.NewReservationRepository(config.DB)
	paymentRepo := repositories.NewPaymentRepository(config.DB)
	roomRepo := repositories.NewRoomRepository(config.DB)
	lodgingRepo := repositories.NewLodgingRepository(config.DB)
	cardRepo := repositories.NewCardRepository(config.DB)
	txManager := repositories.NewGormTxManager(config.DB)

	notifier := notification.NewNotifier(appLogger,
		notification.NewMelodySink(m),
		notification.NewLogSink(appLogger))

	availability := services.NewAvailabilityChecker(reservationRepo)
	paymentService := services.NewPaymentService(
		paymentRepo, reservationRepo, cardRepo, txManager, notifier, appLogger)
	orchestrator := services.NewBookingOrchestrator(
		lodgingRepo, roomRepo, reservationRepo, paymentRepo,
		availability, txManager, notifier, appLogger)

	jobs.SetPaymentSweeper(paymentService)
	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	bookingController := controllers.NewBookingController(
		orchestrator, availability, paymentService, roomRepo, config.RedisClient, appLogger)
	paymentController := controllers.NewPaymentController(paymentService)
	routes.SetupRoutes(router, bookingController, paymentController)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
