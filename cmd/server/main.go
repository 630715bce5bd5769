// cmd/server/main.go
// This is the entry point for the league API server.
// The "cmd/server" directory follows a common Go convention: the cmd/ folder holds
// executable binaries, and internal/ holds reusable packages that are not meant to be
// imported by other projects.
package main

import (
	// fiber is a fast HTTP web framework inspired by Express.js
	"github.com/gofiber/fiber/v2"
	// cors handles Cross-Origin Resource Sharing — allows a browser frontend to talk
	// to the API even though they're running on different origins (hosts/ports)
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"
	// logrus is the structured application logger: startup, migrations, and
	// non-fatal oddities like skipped reversals on deletes
	"github.com/sirupsen/logrus"

	// Internal packages — our own code, imported by module path
	"github.com/fairwayleague/backend/internal/config"
	"github.com/fairwayleague/backend/internal/database"
	"github.com/fairwayleague/backend/internal/engine"
	"github.com/fairwayleague/backend/internal/handlers"
	"github.com/fairwayleague/backend/internal/store"
	"github.com/fairwayleague/backend/internal/websocket"
)

func main() {
	log := logrus.New()

	// Load configuration from environment variables (and optionally a .env file).
	cfg := config.Load()
	if cfg.Env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to PostgreSQL and bring the schema up to date. Running migrations on
	// startup ensures the database schema is always in sync when the server starts.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// The store is the engine's only view of persistence; everything below the
	// handlers works with it, never with *gorm.DB directly.
	st := store.NewGormStore(db, log)

	// The league rule book. One place to tweak when the rules committee meets.
	rules := engine.DefaultConfig()

	// The WebSocket Hub pushes freshly recomputed standings to connected viewers
	// after every submission or deletion. "go hub.Run()" starts its event loop as
	// a goroutine so it processes broadcasts in the background.
	hub := websocket.NewHub()
	go hub.Run()

	// Create a new Fiber app (our HTTP server).
	app := fiber.New(fiber.Config{
		AppName: "Fairway League API",
	})

	// --- Global middleware ---
	// logger.New() logs each HTTP request: method, path, status code, and duration.
	app.Use(logger.New())
	// cors.New() allows requests from any origin (needed for a browser frontend in
	// development). In production, lock this down to your specific domain.
	app.Use(cors.New())

	// GET /health is a liveness check used by load balancers to verify the server is up.
	app.Get("/health", handlers.HealthCheck)

	// Live update stream: clients connect to /ws/standings or /ws/history and
	// receive fresh payloads after every submission or deletion.
	app.Use("/ws", websocket.UpgradeRequired)
	app.Get("/ws/:topic", websocket.Serve(hub, log))

	// --- API routes ---
	// Route group pattern: app.Group(prefix) registers every route under one prefix.
	api := app.Group("/api/v1")

	// Roster
	api.Get("/players", handlers.GetPlayers(st))
	api.Post("/players", handlers.CreatePlayer(st))
	api.Delete("/players/:name", handlers.DeletePlayer(st, hub, rules))

	// Submissions — each produces one atomic match group
	api.Post("/rounds", handlers.SubmitRound(st, hub, rules))
	api.Post("/duels", handlers.SubmitDuel(st, hub, rules))
	api.Post("/alliances", handlers.SubmitAlliance(st, hub, rules))
	api.Delete("/rounds/:groupID", handlers.DeleteRoundGroup(st, hub, rules))

	// Read side — recomputed from the full history on every request
	api.Get("/standings", handlers.GetStandings(st, rules))
	api.Get("/awards", handlers.GetAwards(st, rules))
	api.Get("/history", handlers.GetHistory(st))

	// Start listening for HTTP connections on the configured port.
	log.WithField("port", cfg.Port).Info("starting server")
	log.Fatal(app.Listen(":" + cfg.Port))
}
