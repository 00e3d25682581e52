package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-reservation-api/config"
	"hotel-reservation-api/controllers"
	"hotel-reservation-api/routes"
	"hotel-reservation-api/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set. Cannot issue auth tokens.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB

	// Initialize services
	userService := services.NewUserService(db)
	roomClassService := services.NewRoomClassService(db)
	roomService := services.NewRoomService(db)
	reservationService := services.NewReservationService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(userService)
	userController := controllers.NewUserController(userService)
	roomClassController := controllers.NewRoomClassController(roomClassService)
	roomController := controllers.NewRoomController(roomService)
	reservationController := controllers.NewReservationController(reservationService)

	router := routes.SetupRouter(
		authController,
		userController,
		roomClassController,
		roomController,
		reservationController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
