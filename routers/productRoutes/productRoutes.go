package productRoutes

import (
	productController "kesharadmin/controllers/product"
	"kesharadmin/middleware"
	courseValidator "kesharadmin/validators/course"
	productValidator "kesharadmin/validators/product"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(app *fiber.App) {
	productGroup := app.Group("/products")

	productGroup.Post("/list", productValidator.ListProducts(), middleware.SessionMiddleware, productController.ListProducts)
	productGroup.Post("/add", productValidator.CreateProduct(), middleware.SessionMiddleware, productController.CreateProduct)
	productGroup.Put("/update", productValidator.UpdateProduct(), middleware.SessionMiddleware, productController.UpdateProduct)
	productGroup.Delete("/delete", courseValidator.DeleteRecord(), middleware.SessionMiddleware, productController.DeleteProduct)

	productGroup.Get("/:productId/gallery", middleware.SessionMiddleware, productController.ListGallery)
	productGroup.Post("/gallery/upload", middleware.SessionMiddleware, productController.UploadGalleryImage)
	productGroup.Post("/gallery/save", productValidator.SaveGallery(), middleware.SessionMiddleware, productController.SaveGallery)
	productGroup.Delete("/gallery/delete", productValidator.DeleteGalleryImage(), middleware.SessionMiddleware, productController.DeleteGalleryImage)
}
