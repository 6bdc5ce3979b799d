package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-booking/internal/auth"
	"hotel-booking/internal/service"
)

// Options configures the HTTP edge.
type Options struct {
	// FrontendURL is the single origin allowed to make credentialed cross-origin requests.
	FrontendURL string
	// ClientDir holds the compiled browser client served for non-API paths.
	ClientDir string
	// SecureCookie marks the session cookie Secure; set in production.
	SecureCookie bool
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	hotels service.HotelService
	tokens *auth.TokenService
	opts   Options
	logger logrus.FieldLogger
}

func NewHandler(users service.UserService, hotels service.HotelService, tokens *auth.TokenService, opts Options, logger logrus.FieldLogger) *Handler {
	return &Handler{
		users:  users,
		hotels: hotels,
		tokens: tokens,
		opts:   opts,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger))
	if origin := strings.TrimRight(h.opts.FrontendURL, "/"); origin != "" {
		router.Use(corsMiddleware(origin))
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		users := api.Group("/users")
		users.POST("/register", h.register)
		users.GET("/me", h.requireSession(), h.me)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", h.login)
		authGroup.GET("/validate-token", h.requireSession(), h.validateToken)
		authGroup.POST("/logout", h.logout)

		myHotels := api.Group("/my-hotels", h.requireSession())
		myHotels.POST("", h.createHotel)
		myHotels.GET("", h.listHotels)
		myHotels.GET("/:id", h.getHotel)
		myHotels.PUT("/:id", h.updateHotel)
	}

	router.NoRoute(h.spaFallback)
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
