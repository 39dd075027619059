package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/CristiGvl/smcmon/internal/monitor"
	"github.com/CristiGvl/smcmon/internal/platform"
)

// requestTimeout bounds every handler's context
const requestTimeout = 10 * time.Second

// Server represents the API server
type Server struct {
	app     *fiber.App
	session *monitor.Session
}

// NewServer creates a new API server on top of an open session
func NewServer(session *monitor.Session) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		ServerHeader:          "smcmon",
		AppName:               "smcmon v1.0",
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "*",
		MaxAge:       86400, // 24 hours
	}))

	server := &Server{
		app:     app,
		session: session,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.app.Group("/api")

	api.Get("/temps", s.getTemps)
	api.Get("/fans", s.getFans)
	api.Get("/battery", s.getBattery)
	api.Get("/disk", s.getDisk)
	api.Get("/cpu", s.getCPU)
	api.Get("/memory", s.getMemory)
	api.Get("/snapshot", s.getSnapshot)
	api.Get("/sensors/:key", s.getSensor)

	// Health check
	api.Get("/health", s.healthCheck)
}

// App exposes the fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the API server
func (s *Server) Start(address string) error {
	return s.app.Listen(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Health check endpoint
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"platform":  platform.GetOS(),
		"timestamp": time.Now().Unix(),
	})
}
