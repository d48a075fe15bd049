package dashboardRoutes

import (
	dashboardController "kesharadmin/controllers/dashboard"
	"kesharadmin/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/dashboard")

	dashboardGroup.Get("/stats", middleware.SessionMiddleware, dashboardController.GetStats)
}
