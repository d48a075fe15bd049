package courseRoutes

import (
	courseController "kesharadmin/controllers/course"
	"kesharadmin/middleware"
	courseValidator "kesharadmin/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	courseGroup.Get("/list", middleware.SessionMiddleware, courseController.ListCourses)
	courseGroup.Post("/add", courseValidator.CreateCourse(), middleware.SessionMiddleware, courseController.CreateCourse)
	courseGroup.Put("/update", courseValidator.UpdateCourse(), middleware.SessionMiddleware, courseController.UpdateCourse)
	courseGroup.Delete("/delete", courseValidator.DeleteRecord(), middleware.SessionMiddleware, courseController.DeleteCourse)
	courseGroup.Get("/:courseId/curriculum", middleware.SessionMiddleware, courseController.GetCurriculum)

	courseGroup.Post("/modules/save", courseValidator.SaveModule(), middleware.SessionMiddleware, courseController.SaveModule)
	courseGroup.Delete("/modules/delete", courseValidator.DeleteRecord(), middleware.SessionMiddleware, courseController.DeleteModule)

	courseGroup.Post("/videos/list", middleware.SessionMiddleware, courseController.ListVideos)
	courseGroup.Post("/videos/save", courseValidator.SaveVideo(), middleware.SessionMiddleware, courseController.SaveVideo)
	courseGroup.Delete("/videos/delete", courseValidator.DeleteRecord(), middleware.SessionMiddleware, courseController.DeleteVideo)
}
