package uploadRoutes

import (
	uploadController "kesharadmin/controllers/upload"
	"kesharadmin/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUploadRoutes(app *fiber.App) {
	uploadGroup := app.Group("/uploads")

	uploadGroup.Post("/direct", middleware.SessionMiddleware, uploadController.Direct)
}
