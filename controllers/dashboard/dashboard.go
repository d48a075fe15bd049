package dashboardController

import (
	"kesharadmin/middleware"
	"kesharadmin/models"
	"kesharadmin/platform"

	"github.com/gofiber/fiber/v2"
)

var client *platform.Client

// Setup wires the platform client. Called once from main.
func Setup(c *platform.Client) {
	client = c
}

// GetStats fetches the aggregate metrics for the landing screen.
func GetStats(c *fiber.Ctx) error {
	token := c.Locals("session").(*models.Session).Token

	data, err := client.GetDashboardStats(c.Context(), token)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats.", data)
}
