// Package handlers contains the HTTP route handler functions for the league API.
// Each handler corresponds to one API endpoint and is responsible for reading the
// request, validating it at the boundary, calling into the engine, and writing a
// response. Handlers follow the "handler factory" pattern: an exported function
// takes its dependencies (store, hub, rule config) and returns a fiber.Handler,
// so nothing here relies on global variables.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// It returns a simple JSON response indicating the server is alive and reachable.
// This endpoint is intentionally lightweight — no database queries. It's used by:
//   - Docker/Kubernetes readiness and liveness probes
//   - Load balancers deciding whether to send traffic to this instance
//   - Developers checking if the server started correctly
func HealthCheck(c *fiber.Ctx) error {
	// fiber.Map is just a shorthand for map[string]interface{}.
	return c.JSON(fiber.Map{"status": "ok"})
}
