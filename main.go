package main

import (
	"log"
	"time"

	"kesharadmin/authflow"
	"kesharadmin/config"
	authController "kesharadmin/controllers/auth"
	courseController "kesharadmin/controllers/course"
	dashboardController "kesharadmin/controllers/dashboard"
	productController "kesharadmin/controllers/product"
	uploadController "kesharadmin/controllers/upload"
	"kesharadmin/database"
	"kesharadmin/models"
	"kesharadmin/platform"
	authRoutes "kesharadmin/routers/authRoutes"
	courseRoutes "kesharadmin/routers/courseRoutes"
	dashboardRoutes "kesharadmin/routers/dashboardRoutes"
	productRoutes "kesharadmin/routers/productRoutes"
	uploadRoutes "kesharadmin/routers/uploadRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/robfig/cron/v3"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	client := platform.New(
		config.AppConfig.PlatformApiURL,
		time.Duration(config.AppConfig.PlatformTimeoutSec)*time.Second,
	)
	flows := authflow.NewStore(time.Duration(config.AppConfig.FlowTTLMin) * time.Minute)

	authController.Setup(client, flows)
	courseController.Setup(client)
	productController.Setup(client)
	dashboardController.Setup(client)
	uploadController.Setup(client)

	app := fiber.New(fiber.Config{
		BodyLimit: 512 * 1024 * 1024, // video files arrive through multipart
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	dashboardRoutes.SetupDashboardRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	productRoutes.SetupProductRoutes(app)
	uploadRoutes.SetupUploadRoutes(app)

	c := cron.New()
	if _, err := c.AddFunc("@every 5m", func() {
		if removed := flows.Sweep(); removed > 0 {
			log.Printf("Swept %d expired auth flows", removed)
		}
		result := database.Database.Db.Unscoped().
			Where("expires_at < ?", time.Now()).
			Delete(&models.Session{})
		if result.RowsAffected > 0 {
			log.Printf("Removed %d expired sessions", result.RowsAffected)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule cleanup job: %v", err)
	}
	c.Start()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
