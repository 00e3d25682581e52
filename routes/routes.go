package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-reservation-api/controllers"
	"hotel-reservation-api/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.AuthController,
	uc *controllers.UserController,
	rcc *controllers.RoomClassController,
	rc *controllers.RoomController,
	resc *controllers.ReservationController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", ac.Login)

	rooms := r.Group("/rooms", middleware.AuthJWT())
	{
		rooms.GET("", rc.GetRooms)
		rooms.GET("/:number", rc.GetRoom)
		rooms.POST("", middleware.RequireStaff(), rc.CreateRoom)
		rooms.PATCH("/:number", middleware.RequireStaff(), rc.UpdateRoom)
		rooms.PUT("/:number", middleware.RequireStaff(), rc.UpdateRoom)
		rooms.DELETE("/:number", middleware.RequireStaff(), rc.DeleteRoom)
	}

	roomClasses := r.Group("/room-classes", middleware.AuthJWT(), middleware.RequireStaff())
	{
		roomClasses.GET("", rcc.GetRoomClasses)
		roomClasses.POST("", rcc.CreateRoomClass)
		roomClasses.GET("/:code", rcc.GetRoomClass)
		roomClasses.PATCH("/:code", rcc.UpdateRoomClass)
		roomClasses.PUT("/:code", rcc.UpdateRoomClass)
		roomClasses.DELETE("/:code", rcc.DeleteRoomClass)
	}

	reservations := r.Group("/reservations", middleware.AuthJWT())
	{
		reservations.GET("", resc.GetReservations)
		reservations.POST("", resc.CreateReservation)
		reservations.GET("/:id", resc.GetReservation)
		reservations.PATCH("/:id", resc.UpdateReservation)
		reservations.PUT("/:id", resc.UpdateReservation)
		reservations.DELETE("/:id", resc.DeleteReservation)
	}

	users := r.Group("/users")
	{
		users.POST("", uc.CreateUser)
		users.GET("", middleware.AuthJWT(), middleware.RequireStaff(), uc.GetUsers)
		users.GET("/:id", middleware.AuthJWT(), uc.GetUser)
		users.PATCH("/:id", middleware.AuthJWT(), uc.UpdateUser)
		users.PUT("/:id", middleware.AuthJWT(), uc.UpdateUser)
		users.DELETE("/:id", middleware.AuthJWT(), uc.DeleteUser)
	}

	return r
}
