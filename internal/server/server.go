package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"poolbook/internal/api"
	"poolbook/internal/booking"
	"poolbook/internal/config"
	"poolbook/internal/email"
	"poolbook/internal/user"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	http   *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())

	// Unsupported methods answer 405, not 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		api.WriteError(c, api.NewError(api.KindMethodNotAllowed, "Method not allowed"))
	})

	authHandler := user.NewHandler(db)
	bookingHandler := booking.NewHandler(db, emailService)

	router.POST("/auth", authHandler.Handle)
	router.GET("/bookings", bookingHandler.List)
	router.POST("/bookings", bookingHandler.Handle)

	router.GET("/health", Health)
	router.GET("/health/db", DBHealth(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		http:   &http.Server{Handler: router},
	}
}

func (s *Server) Start(port string) error {
	s.http.Addr = ":" + port
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
